// Package testutil provides reusable test helpers for SSTV encoder tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sstv/internal/segment"
)

// Default tolerances for frequency and duration comparisons.
const (
	FreqTolerance = 1e-9
	DurTolerance  = 1e-9
)

// SolidFrame builds a frame filled with one RGB color (components in [0, 1]).
func SolidFrame(width, height int, r, g, b float64) *segment.Frame {
	f := &segment.Frame{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
	return f
}

// SetPixel sets one pixel of a frame.
func SetPixel(f *segment.Frame, x, y int, r, g, b float64) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// Collect drains a stream into a slice, failing the test if it yields
// more than limit segments (runaway-iterator guard).
func Collect(t *testing.T, s *segment.Stream, limit int) []segment.Segment {
	t.Helper()
	var out []segment.Segment
	for {
		seg, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, seg)
		require.LessOrEqual(t, len(out), limit, "stream produced more than %d segments", limit)
	}
}

// SumMS returns the total duration of the segments in milliseconds.
func SumMS(segs []segment.Segment) float64 {
	var total float64
	for _, s := range segs {
		total += s.DurMS
	}
	return total
}

// AssertTone checks a segment against an expected fixed tone.
func AssertTone(t *testing.T, seg segment.Segment, freq, durMS float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := assert.InDelta(t, freq, seg.Freq, FreqTolerance, msgAndArgs...)
	return assert.InDelta(t, durMS, seg.DurMS, DurTolerance, msgAndArgs...) && ok
}

// AssertBand checks that every segment is silence or within the SSTV band
// with positive duration.
func AssertBand(t *testing.T, segs []segment.Segment) {
	t.Helper()
	for i, s := range segs {
		if s.Freq != 0 && (s.Freq < 1100 || s.Freq > 2300) {
			assert.Fail(t, "frequency out of band", "segment %d: %v Hz", i, s.Freq)
			return
		}
		if s.DurMS <= 0 {
			assert.Fail(t, "non-positive duration", "segment %d: %v ms", i, s.DurMS)
			return
		}
	}
}

// CountTone returns how many segments match the given tone frequency.
func CountTone(segs []segment.Segment, freq float64) int {
	n := 0
	for _, s := range segs {
		if s.Freq == freq {
			n++
		}
	}
	return n
}
