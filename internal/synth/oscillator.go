// Package synth converts segment streams into PCM samples.
//
// The Oscillator renders (frequency, duration) segments into floating
// point samples with phase preserved across segment boundaries, so a
// frequency change never produces a discontinuity in the waveform. The
// Quantizer then maps those floats onto signed 8- or 16-bit integers
// with triangular dither.
package synth

import "math"

const (
	tau    = 2 * math.Pi
	msPerS = 1000.0
)

// Oscillator is a streaming phase-accumulating sine generator. Its only
// state is the running phase and a fractional-sample accumulator; the
// accumulator carries the sub-sample remainder of each segment into the
// next so emitted duration never drifts from intended duration.
type Oscillator struct {
	sampleRate float64
	phase      float64 // radians
	acc        float64 // fractional samples pending, in [0, 1)
}

// NewOscillator creates an oscillator for the given output sample rate.
func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{sampleRate: sampleRate}
}

// Reset clears phase and the fractional accumulator.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.acc = 0
}

// SampleCount returns how many whole samples a segment of durMS would
// emit right now, given the pending fractional remainder.
func (o *Oscillator) SampleCount(durMS float64) int {
	return int(o.acc + o.sampleRate/msPerS*durMS)
}

// Render appends the samples for one segment to dst and returns the
// extended slice. A zero frequency renders silence while still advancing
// the accumulator; the phase is left untouched so the following tone
// resumes where the last one ended.
func (o *Oscillator) Render(freqHz, durMS float64, dst []float64) []float64 {
	o.acc += o.sampleRate / msPerS * durMS
	n := int(o.acc)
	o.acc -= float64(n)

	if freqHz == 0 {
		for k := 0; k < n; k++ {
			dst = append(dst, 0)
		}
		return dst
	}

	omega := tau * freqHz / o.sampleRate
	for k := 0; k < n; k++ {
		dst = append(dst, math.Sin(float64(k)*omega+o.phase))
	}

	// Advance to the analytical end phase of this segment, reduced to
	// keep the argument small over long transmissions.
	o.phase = math.Mod(o.phase+float64(n)*omega, tau)
	return dst
}
