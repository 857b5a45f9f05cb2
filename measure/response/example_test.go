package response_test

import (
	"fmt"

	"github.com/cwbudde/polycoeffs/dsp/polyphase"
	"github.com/cwbudde/polycoeffs/measure/response"
)

func ExampleAnalyze() {
	d, err := polyphase.New(polyphase.DefaultConfig())
	if err != nil {
		panic(err)
	}

	res, err := response.Analyze(d.Quantized, response.Config{Gain: 2, Cutoff: 0.5, Phases: 2})
	if err != nil {
		panic(err)
	}

	fmt.Printf("DC %.4f, phases %.4f %.4f, stopband %v\n",
		res.DCGain, res.PhaseDCGains[0], res.PhaseDCGains[1], res.HasStopband())
	// Output:
	// DC 2.0000, phases 1.0000 1.0000, stopband false
}
