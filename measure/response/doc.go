// Package response measures the frequency response of a designed FIR kernel.
//
// The kernel is zero-padded to a power-of-two FFT length and transformed
// once. Frequencies are expressed in cycles per sample at the kernel's own
// (upsampled) rate, so 0.5 is Nyquist.
//
// Reported metrics:
//
//   - DCGain: sum of the taps, H(0)
//   - PhaseDCGains: sum of each polyphase row; equal rows mean no DC imaging
//   - PassbandRippleDB: peak-to-peak deviation over [0, Cutoff/2]
//   - StopbandAttenuationDB: worst rejection over [3*Cutoff/2, 0.5]
//   - Cutoff6dB: first frequency where |H| falls to half the nominal gain
//   - SymmetryError: largest |h[n] - h[N-1-n]|
//   - PeakTap: index of the largest-magnitude tap
//
// # Usage
//
//	res, err := response.Analyze(kernel, response.Config{Gain: 2, Cutoff: 0.5, Phases: 2})
//	fmt.Printf("ripple %.4f dB, -6 dB at %.3f\n", res.PassbandRippleDB, res.Cutoff6dB)
package response
