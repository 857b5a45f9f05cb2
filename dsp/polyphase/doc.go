// Package polyphase designs fixed-point polyphase FIR coefficient tables for
// integer-factor upsamplers using the windowed-sinc (Kaiser) method.
//
// The design is a linear pipeline:
//
//  1. Synthesize: ideal lowpass sinc at cutoff 1/factor, Kaiser windowed,
//     normalized to a DC gain equal to the upsample factor.
//  2. Quantize: every tap snapped to a 2^-bits grid (see package fixedpoint).
//  3. Decompose: the kernel split into factor interleaved phase rows.
//
// Presets:
//
//	preset  factor  taps  taps/phase  source rates
//	hd      2       24    12          88.2 kHz, 96 kHz
//	sd      4       48    12          44.1 kHz, 48 kHz
//
// Usage:
//
//	d, err := polyphase.New(polyphase.DefaultConfig())
//	// d.Phases[0], d.Phases[1] hold 12 taps each.
package polyphase
