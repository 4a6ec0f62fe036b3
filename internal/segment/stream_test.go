package segment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sstv/internal/mode"
	"github.com/tphakala/go-sstv/internal/segment"
	"github.com/tphakala/go-sstv/internal/testutil"
)

// Collection limit generous enough for the largest mode under test.
const segmentLimit = 4_000_000

func descByName(t *testing.T, name string) mode.Descriptor {
	t.Helper()
	d, ok := mode.ByName(name)
	require.True(t, ok, "mode %s not found", name)
	return d
}

func solidStream(t *testing.T, name string, r, g, b float64, vox bool, fskid []byte) (*segment.Stream, mode.Descriptor) {
	t.Helper()
	d := descByName(t, name)
	f := testutil.SolidFrame(d.Width, d.Height, r, g, b)
	return segment.NewStream(d, f, vox, fskid), d
}

func TestByteToFreq(t *testing.T) {
	assert.InDelta(t, 1500.0, segment.ByteToFreq(0), 1e-12)
	assert.InDelta(t, 2300.0, segment.ByteToFreq(255), 1e-12)
	assert.InDelta(t, 1901.57, segment.ByteToFreq(128), 0.1)
}

// visLength is the number of segments in the VIS preamble: four header
// elements, seven code bits, parity, stop.
const visLength = 4 + 7 + 1 + 1

func TestVISHeader(t *testing.T) {
	for i := 0; i < mode.Count(); i++ {
		d := mode.Get(i)
		t.Run(d.Name, func(t *testing.T) {
			f := testutil.SolidFrame(d.Width, d.Height, 0, 0, 0)
			s := segment.NewStream(d, f, false, nil)

			var segs []segment.Segment
			for len(segs) < visLength {
				seg, ok := s.Next()
				require.True(t, ok)
				segs = append(segs, seg)
			}

			testutil.AssertTone(t, segs[0], 1900, 300, "leader")
			testutil.AssertTone(t, segs[1], 1200, 10, "break")
			testutil.AssertTone(t, segs[2], 1900, 300, "leader")
			testutil.AssertTone(t, segs[3], 1200, 30, "start bit")

			// Code bits LSB-first, 1 -> 1100 Hz, 0 -> 1300 Hz.
			ones := 0
			for bit := 0; bit < 7; bit++ {
				want := 1300.0
				if (d.VISCode>>bit)&1 == 1 {
					want = 1100.0
					ones++
				}
				testutil.AssertTone(t, segs[4+bit], want, 30, "bit %d", bit)
			}

			// Even parity: 1100 Hz iff the code has odd popcount.
			parityWant := 1300.0
			if ones%2 == 1 {
				parityWant = 1100.0
			}
			testutil.AssertTone(t, segs[11], parityWant, 30, "parity")
			testutil.AssertTone(t, segs[12], 1200, 30, "stop bit")
		})
	}
}

func TestVOXPreamble(t *testing.T) {
	s, _ := solidStream(t, "Robot8BW", 0, 0, 0, true, nil)

	want := []segment.Segment{
		{Freq: 1900, DurMS: 100}, {Freq: 1500, DurMS: 100},
		{Freq: 1900, DurMS: 100}, {Freq: 1500, DurMS: 100},
		{Freq: 2300, DurMS: 100}, {Freq: 1500, DurMS: 100},
		{Freq: 2300, DurMS: 100}, {Freq: 1500, DurMS: 100},
	}
	for i, w := range want {
		seg, ok := s.Next()
		require.True(t, ok)
		testutil.AssertTone(t, seg, w.Freq, w.DurMS, "vox segment %d", i)
	}

	// The VIS leader follows directly.
	seg, ok := s.Next()
	require.True(t, ok)
	testutil.AssertTone(t, seg, 1900, 300)
}

func TestGrayscaleStructure(t *testing.T) {
	s, d := solidStream(t, "Robot8BW", 0, 0, 0, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	testutil.AssertBand(t, segs)

	body := segs[visLength:]
	require.Len(t, body, d.Height*(1+d.Width))

	pixelMS := d.ScanMS / float64(d.Width)
	for y := 0; y < d.Height; y++ {
		line := body[y*(1+d.Width) : (y+1)*(1+d.Width)]
		testutil.AssertTone(t, line[0], 1200, 7.0, "line %d sync", y)
		for x, p := range line[1:] {
			if !assert.InDelta(t, 1500.0, p.Freq, 1e-9, "line %d pixel %d", y, x) {
				t.FailNow()
			}
			if !assert.InDelta(t, pixelMS, p.DurMS, 1e-9) {
				t.FailNow()
			}
		}
	}
}

func TestMartinM1Structure(t *testing.T) {
	s, d := solidStream(t, "MartinM1", 1, 1, 1, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	testutil.AssertBand(t, segs)

	// Per line: sync, gap, G-scan, gap, B-scan, gap, R-scan, gap.
	perLine := 1 + 4 + 3*d.Width
	body := segs[visLength:]
	require.Len(t, body, d.Height*perLine)

	line := body[:perLine]
	testutil.AssertTone(t, line[0], 1200, 4.862, "sync")
	testutil.AssertTone(t, line[1], 1500, 0.572, "leading gap")

	gaps, pixels := 0, 0
	for _, seg := range line {
		switch {
		case seg.Freq == 1500 && seg.DurMS == 0.572:
			gaps++
		case seg.DurMS > 0.4 && seg.DurMS < 0.5:
			// 146.432/320 = 0.4576 ms pixel segments; white image.
			pixels++
			assert.InDelta(t, 2300.0, seg.Freq, 1e-9)
		}
	}
	assert.Equal(t, 4, gaps, "gap segments per line")
	assert.Equal(t, 3*d.Width, pixels, "pixel segments per line")
}

func TestScottieS1Structure(t *testing.T) {
	s, d := solidStream(t, "ScottieS1", 0.2, 0.4, 0.6, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	testutil.AssertBand(t, segs)

	// Per line: sync-before-red, R-scan, gap, G-scan, gap, B-scan.
	// No top-level sync and no trailing gap.
	perLine := 1 + 2 + 3*d.Width
	body := segs[visLength:]
	require.Len(t, body, d.Height*perLine)

	line := body[:perLine]
	testutil.AssertTone(t, line[0], 1200, 9.0, "sync before red")

	pixelMS := d.ScanMS / float64(d.Width)
	rFreq := segment.ByteToFreq(uint8(math.Round(0.2 * 255)))
	gFreq := segment.ByteToFreq(uint8(math.Round(0.4 * 255)))
	bFreq := segment.ByteToFreq(uint8(math.Round(0.6 * 255)))

	assert.InDelta(t, rFreq, line[1].Freq, 1e-9, "red first")
	assert.InDelta(t, pixelMS, line[1].DurMS, 1e-9)
	testutil.AssertTone(t, line[1+d.Width], 1500, 1.5, "gap after red")
	assert.InDelta(t, gFreq, line[2+d.Width].Freq, 1e-9, "green second")
	testutil.AssertTone(t, line[2+2*d.Width], 1500, 1.5, "gap after green")
	assert.InDelta(t, bFreq, line[3+2*d.Width].Freq, 1e-9, "blue third")
	assert.InDelta(t, bFreq, line[perLine-1].Freq, 1e-9, "line ends on blue")
}

// The very first per-line segment after the VIS trailer is the 9 ms sync
// pulse, not a gap.
func TestScottieFirstLineSegment(t *testing.T) {
	s, _ := solidStream(t, "ScottieS2", 0, 0, 0, false, nil)
	for i := 0; i < visLength; i++ {
		_, ok := s.Next()
		require.True(t, ok)
	}
	seg, ok := s.Next()
	require.True(t, ok)
	testutil.AssertTone(t, seg, 1200, 9.0)
}

func TestRobot36Structure(t *testing.T) {
	d := descByName(t, "Robot36")
	f := testutil.SolidFrame(d.Width, d.Height, 0.5, 0.5, 0.5)
	s := segment.NewStream(d, f, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	testutil.AssertBand(t, segs)

	// Per line: sync, sync porch, Y scan, separator, porch, chroma scan.
	perLine := 4 + 2*d.Width
	body := segs[visLength:]
	require.Len(t, body, d.Height*perLine)

	for y := 0; y < d.Height; y++ {
		line := body[y*perLine : (y+1)*perLine]
		testutil.AssertTone(t, line[0], 1200, 9.0, "line %d sync", y)
		testutil.AssertTone(t, line[1], 1500, 3.0, "line %d sync porch", y)

		sep := line[2+d.Width]
		if y%2 == 0 {
			testutil.AssertTone(t, sep, 1500, 4.5, "line %d Cr separator", y)
		} else {
			testutil.AssertTone(t, sep, 2300, 4.5, "line %d Cb separator", y)
		}
		testutil.AssertTone(t, line[3+d.Width], 1900, 1.5, "line %d porch", y)

		yMS := d.YScanMS / float64(d.Width)
		cMS := d.CScanMS / float64(d.Width)
		assert.InDelta(t, yMS, line[2].DurMS, 1e-9)
		assert.InDelta(t, cMS, line[perLine-1].DurMS, 1e-9)
	}
}

// Line 0 solid red: first Y pixel is byteToFreq(round(0.299*255)) and the
// separator before the line's Cr scan is the black tone.
func TestRobot36RedLine(t *testing.T) {
	d := descByName(t, "Robot36")
	f := testutil.SolidFrame(d.Width, d.Height, 0, 0, 0)
	for x := 0; x < d.Width; x++ {
		testutil.SetPixel(f, x, 0, 1, 0, 0)
	}
	s := segment.NewStream(d, f, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)

	line := segs[visLength:]
	firstY := line[2]
	assert.InDelta(t, 1738.4, firstY.Freq, 0.1)
	testutil.AssertTone(t, line[2+d.Width], 1500, 4.5, "Cr separator")
}

func TestPD120Structure(t *testing.T) {
	s, d := solidStream(t, "PD120", 0, 0, 0, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	testutil.AssertBand(t, segs)

	// Per transmitted line: sync, porch, Y0, Cr, Cb, Y1 scans.
	perLine := 2 + 4*d.Width
	lines := d.Height / 2
	assert.Equal(t, 248, lines)

	body := segs[visLength:]
	require.Len(t, body, lines*perLine)

	line := body[:perLine]
	testutil.AssertTone(t, line[0], 1200, 20.0, "sync")
	testutil.AssertTone(t, line[1], 1500, 2.08, "porch")
	for _, p := range line[2:] {
		assert.InDelta(t, d.PixelMS, p.DurMS, 1e-9)
	}
}

// An odd trailing source line transmits nothing.
func TestPDOddHeightDropsLastLine(t *testing.T) {
	d := descByName(t, "PD90")
	d.Height = 5
	f := testutil.SolidFrame(d.Width, d.Height, 0, 0, 0)
	s := segment.NewStream(d, f, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)

	perLine := 2 + 4*d.Width
	assert.Len(t, segs[visLength:], 2*perLine)
}

// PD chroma scans carry the per-column average of the two source lines.
func TestPDChromaAveraging(t *testing.T) {
	d := descByName(t, "PD90")
	d.Height = 2
	f := testutil.SolidFrame(d.Width, d.Height, 0, 0, 0)
	for x := 0; x < d.Width; x++ {
		testutil.SetPixel(f, x, 0, 1, 0, 0) // line 0 red
		testutil.SetPixel(f, x, 1, 0, 0, 1) // line 1 blue
	}
	s := segment.NewStream(d, f, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)
	body := segs[visLength:]

	// Cr: red 0.5*1+0.5 = 1.0, blue -0.081312+0.5; averaged.
	crAvg := (1.0 + (-0.081312 + 0.5)) / 2
	wantCr := segment.ByteToFreq(uint8(math.Round(crAvg * 255)))
	assert.InDelta(t, wantCr, body[2+d.Width].Freq, 1e-9, "Cr average")

	// Cb: red -0.168736+0.5, blue 0.5+0.5 = 1.0; averaged.
	cbAvg := ((-0.168736 + 0.5) + 1.0) / 2
	wantCb := segment.ByteToFreq(uint8(math.Round(cbAvg * 255)))
	assert.InDelta(t, wantCb, body[2+2*d.Width].Freq, 1e-9, "Cb average")

	// Y0 red, Y1 blue.
	wantY0 := segment.ByteToFreq(uint8(math.Round(0.299 * 255)))
	wantY1 := segment.ByteToFreq(uint8(math.Round(0.114 * 255)))
	assert.InDelta(t, wantY0, body[2].Freq, 1e-9, "Y0")
	assert.InDelta(t, wantY1, body[2+3*d.Width].Freq, 1e-9, "Y1")
}

// Solid gray at half intensity scans at byteToFreq(128).
func TestGrayscaleHalfIntensity(t *testing.T) {
	s, _ := solidStream(t, "Robot8BW", 0.5, 0.5, 0.5, false, nil)
	segs := testutil.Collect(t, s, segmentLimit)

	body := segs[visLength:]
	testutil.AssertTone(t, body[0], 1200, 7.0, "first sync")
	assert.InDelta(t, 1901.57, body[1].Freq, 0.1, "first pixel")
}

func TestFSKIDTrailer(t *testing.T) {
	payload := segment.AppendPayload(nil, "A")
	assert.Equal(t, []byte{0x20, 0x2A, 0x21, 0x01}, payload)

	s, _ := solidStream(t, "Robot8BW", 0, 0, 0, false, payload)
	segs := testutil.Collect(t, s, segmentLimit)

	trailer := segs[len(segs)-len(payload)*6:]
	require.Len(t, trailer, 24)
	for i, seg := range trailer {
		assert.InDelta(t, 22.0, seg.DurMS, 1e-9, "bit %d duration", i)
		assert.Contains(t, []float64{1900, 2100}, seg.Freq, "bit %d tone", i)
	}

	// 0x21 = 0b100001: LSB is 1 -> 1900 Hz.
	charBits := trailer[12:18]
	assert.InDelta(t, 1900.0, charBits[0].Freq, 1e-9)
	assert.InDelta(t, 2100.0, charBits[1].Freq, 1e-9)
	assert.InDelta(t, 1900.0, charBits[5].Freq, 1e-9)
}

func TestFSKIDAppendPreservesLeader(t *testing.T) {
	payload := segment.AppendPayload(nil, "AB")
	payload = segment.AppendPayload(payload, "C")
	assert.Equal(t, []byte{
		0x20, 0x2A, 0x21, 0x22, 0x01,
		0x20, 0x2A, 0x23, 0x01,
	}, payload)
}

func TestStreamReset(t *testing.T) {
	s, _ := solidStream(t, "Robot8BW", 0.3, 0.3, 0.3, true, segment.AppendPayload(nil, "K"))
	first := testutil.Collect(t, s, segmentLimit)
	s.Reset()
	second := testutil.Collect(t, s, segmentLimit)
	assert.Equal(t, first, second)
}

func TestTotalMS(t *testing.T) {
	s, _ := solidStream(t, "Robot8BW", 0, 0, 0, false, nil)

	// VIS 910 ms plus 120 lines of 7 + 60 ms.
	want := 910.0 + 120*67.0
	assert.InDelta(t, want, s.TotalMS(), 1e-6)

	// TotalMS does not disturb the cursor.
	segs := testutil.Collect(t, s, segmentLimit)
	assert.InDelta(t, want, testutil.SumMS(segs), 1e-6)
}

func TestAllModesProduceValidStreams(t *testing.T) {
	for i := 0; i < mode.Count(); i++ {
		d := mode.Get(i)
		t.Run(d.Name, func(t *testing.T) {
			f := testutil.SolidFrame(d.Width, d.Height, 0.7, 0.2, 0.9)
			s := segment.NewStream(d, f, false, nil)
			segs := testutil.Collect(t, s, segmentLimit)
			testutil.AssertBand(t, segs)
			assert.Greater(t, testutil.SumMS(segs), 0.0)

			// Sync pulses appear once per transmitted line, wherever
			// the family keeps them.
			syncPerLine := testutil.CountTone(segs, 1200) - 3 // break, start, stop
			assert.Equal(t, d.Lines(), syncPerLine, "sync pulses")
		})
	}
}
