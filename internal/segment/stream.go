package segment

import (
	"math/bits"

	"github.com/tphakala/go-sstv/internal/mode"
)

// phase enumerates the top-level sections of a transmission.
type phase int

const (
	phaseVOX phase = iota
	phaseVIS
	phaseBody
	phaseFSKID
	phaseDone
)

// op is one step of a line body: either a fixed tone (scan == nil) or a
// pixel scan of n segments, each durMS long with the frequency supplied
// by scan. A line is at most a handful of ops, so building the op list
// per line keeps the stream lazy while the family dispatch stays a flat
// branch instead of a type hierarchy.
type op struct {
	freq  float64
	durMS float64
	scan  func(x int) float64
	n     int
}

func tone(freq, durMS float64) op {
	return op{freq: freq, durMS: durMS, n: 1}
}

func scan(width int, pixelMS float64, fn func(x int) float64) op {
	return op{durMS: pixelMS, scan: fn, n: width}
}

// Stream is the lazy segment producer for one transmission. It is a
// hand-written pull iterator: each Next call yields exactly one segment
// and advances the cursor; no section of the signal is buffered.
type Stream struct {
	desc  mode.Descriptor
	frame *Frame
	vox   bool
	fskid []byte

	phase phase
	idx   int // cursor within VOX, VIS, or FSKID

	y   int  // next source line for the body
	ops []op // ops of the line in flight
	oi  int  // current op
	x   int  // current pixel within a scan op
}

// NewStream creates a segment stream for the given descriptor and
// prepared frame. fskid is the framed trailer payload (possibly nil);
// see AppendPayload.
func NewStream(desc mode.Descriptor, frame *Frame, vox bool, fskid []byte) *Stream {
	s := &Stream{
		desc:  desc,
		frame: frame,
		vox:   vox,
		fskid: fskid,
	}
	s.Reset()
	return s
}

// Reset rewinds the stream to the first segment.
func (s *Stream) Reset() {
	s.phase = phaseVIS
	if s.vox {
		s.phase = phaseVOX
	}
	s.idx = 0
	s.y = 0
	s.ops = s.ops[:0]
	s.oi = 0
	s.x = 0
}

// Next returns the next segment of the transmission. The second result
// is false once the stream is exhausted.
func (s *Stream) Next() (Segment, bool) {
	for {
		switch s.phase {
		case phaseVOX:
			if s.idx < len(voxPreamble) {
				seg := voxPreamble[s.idx]
				s.idx++
				return seg, true
			}
			s.phase = phaseVIS
			s.idx = 0

		case phaseVIS:
			if seg, ok := s.nextVIS(); ok {
				return seg, true
			}
			s.phase = phaseBody

		case phaseBody:
			if seg, ok := s.nextBody(); ok {
				return seg, true
			}
			s.phase = phaseFSKID
			s.idx = 0

		case phaseFSKID:
			if s.idx < len(s.fskid)*fskidBitsPerByte {
				b := s.fskid[s.idx/fskidBitsPerByte]
				bit := (b >> (s.idx % fskidBitsPerByte)) & 1
				s.idx++
				return fskidBitSegment(bit), true
			}
			s.phase = phaseDone

		default:
			return Segment{}, false
		}
	}
}

// VIS element indices: 0..3 header, 4..10 code bits LSB-first, 11 parity,
// 12 stop bit.
const (
	visIdxBits   = len(visHeader)
	visIdxParity = visIdxBits + visBits
	visIdxStop   = visIdxParity + 1
)

func (s *Stream) nextVIS() (Segment, bool) {
	i := s.idx
	s.idx++
	switch {
	case i < visIdxBits:
		return visHeader[i], true
	case i < visIdxParity:
		bit := (s.desc.VISCode >> (i - visIdxBits)) & 1
		return visBitSegment(bit), true
	case i == visIdxParity:
		// Even parity over the 7 transmitted bits.
		parity := uint8(bits.OnesCount8(s.desc.VISCode&0x7F) & 1)
		return visBitSegment(parity), true
	case i == visIdxStop:
		return Segment{ToneSync, visBitMS}, true
	default:
		return Segment{}, false
	}
}

// nextBody steps through the current line's ops, building the next line
// when the current one is exhausted.
func (s *Stream) nextBody() (Segment, bool) {
	for {
		if s.oi < len(s.ops) {
			o := &s.ops[s.oi]
			if o.scan == nil {
				s.oi++
				return Segment{o.freq, o.durMS}, true
			}
			if s.x < o.n {
				seg := Segment{o.scan(s.x), o.durMS}
				s.x++
				return seg, true
			}
			s.oi++
			s.x = 0
			continue
		}
		if !s.buildLine() {
			return Segment{}, false
		}
	}
}

// buildLine assembles the ops for the next transmitted line, returning
// false when the image is exhausted.
func (s *Stream) buildLine() bool {
	d := &s.desc
	if s.desc.Family == mode.FamilyPD {
		// Two source lines per transmitted line; an odd trailing line
		// is dropped.
		if s.y+1 >= d.Height {
			return false
		}
	} else if s.y >= d.Height {
		return false
	}

	y := s.y
	f := s.frame
	w := d.Width
	s.ops = s.ops[:0]
	s.oi = 0
	s.x = 0

	// Top-of-line horizontal sync, for families that declare one.
	if d.SyncMS > 0 {
		s.ops = append(s.ops, tone(ToneSync, d.SyncMS))
	}

	switch d.Family {
	case mode.FamilyGrayscale:
		s.ops = append(s.ops, scan(w, d.ScanMS/float64(w), func(x int) float64 {
			return ByteToFreq(f.luma(x, y))
		}))

	case mode.FamilyMartin:
		// Gap before green, then one after every channel.
		pix := d.ScanMS / float64(w)
		s.ops = append(s.ops, tone(ToneBlack, d.GapMS))
		for _, c := range [3]int{1, 2, 0} { // G, B, R
			s.ops = append(s.ops,
				scan(w, pix, func(x int) float64 {
					return ByteToFreq(f.channel(x, y, c))
				}),
				tone(ToneBlack, d.GapMS))
		}

	case mode.FamilyScottie:
		// Sync precedes the red channel; the line ends on blue with no
		// trailing gap.
		pix := d.ScanMS / float64(w)
		s.ops = append(s.ops, tone(ToneSync, d.SyncBeforeRedMS))
		for i, c := range [3]int{0, 1, 2} { // R, G, B
			if i > 0 {
				s.ops = append(s.ops, tone(ToneBlack, d.GapMS))
			}
			s.ops = append(s.ops, scan(w, pix, func(x int) float64 {
				return ByteToFreq(f.channel(x, y, c))
			}))
		}

	case mode.FamilyRobot36:
		// Even lines carry Cr, odd lines Cb. The separator tone tells
		// the receiver which one follows: black before Cr, white
		// before Cb.
		even := y%2 == 0
		sep := float64(ToneWhite)
		chroma := f.cbByte
		if even {
			sep = ToneBlack
			chroma = f.crByte
		}
		s.ops = append(s.ops,
			tone(ToneSync, robot36SyncMS),
			tone(ToneBlack, d.SyncPorchMS),
			scan(w, d.YScanMS/float64(w), func(x int) float64 {
				return ByteToFreq(f.luma(x, y))
			}),
			tone(sep, d.GapMS),
			tone(ToneLeader, d.PorchMS),
			scan(w, d.CScanMS/float64(w), func(x int) float64 {
				return ByteToFreq(chroma(x, y))
			}))

	case mode.FamilyPD:
		s.ops = append(s.ops,
			tone(ToneBlack, d.PorchMS),
			scan(w, d.PixelMS, func(x int) float64 {
				return ByteToFreq(f.luma(x, y))
			}),
			scan(w, d.PixelMS, func(x int) float64 {
				return ByteToFreq(f.crAvg(x, y))
			}),
			scan(w, d.PixelMS, func(x int) float64 {
				return ByteToFreq(f.cbAvg(x, y))
			}),
			scan(w, d.PixelMS, func(x int) float64 {
				return ByteToFreq(f.luma(x, y+1))
			}))
	}

	if d.Family == mode.FamilyPD {
		s.y += 2
	} else {
		s.y++
	}
	return true
}

// Robot 36 carries its sync pulse inside the body (SyncMS is zero at the
// descriptor level so the generic loop stays quiet).
const robot36SyncMS = 9.0

// TotalMS returns the duration in milliseconds of the complete stream an
// identically-configured fresh iterator would produce. The receiver's
// cursor is not disturbed.
func (s *Stream) TotalMS() float64 {
	c := NewStream(s.desc, s.frame, s.vox, s.fskid)
	var total float64
	for {
		seg, ok := c.Next()
		if !ok {
			return total
		}
		total += seg.DurMS
	}
}
