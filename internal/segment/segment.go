// Package segment produces the symbolic SSTV signal as a lazy stream of
// (frequency, duration) pairs.
//
// A Stream assembles, in order: an optional VOX preamble, the VIS header,
// the mode-specific per-line body, and an optional FSKID trailer. The
// whole stream is a composed pull iterator: nothing beyond the segment in
// flight is materialized, so encoding a PD290 frame costs the same memory
// as encoding a Robot 8BW thumbnail.
package segment

// Fixed control tones in Hz.
const (
	ToneVISBit1 = 1100 // VIS bit value 1
	ToneSync    = 1200 // horizontal sync, VIS break/start/stop
	ToneVISBit0 = 1300 // VIS bit value 0
	ToneBlack   = 1500 // black level, porches, inter-channel gaps
	ToneLeader  = 1900 // VIS leader, FSKID bit value 1
	ToneFSKBit0 = 2100 // FSKID bit value 0
	ToneWhite   = 2300 // white level
)

// Pixel value to frequency mapping bounds.
const (
	freqBlack = 1500.0 // byte value 0
	freqSpan  = 800.0  // byte value 255 maps to 2300
)

// VIS header timing in milliseconds.
const (
	visLeaderMS = 300.0
	visBreakMS  = 10.0
	visBitMS    = 30.0
	visBits     = 7
)

// FSKID bit duration in milliseconds.
const fskidBitMS = 22.0

// VOX preamble tone duration in milliseconds.
const voxToneMS = 100.0

// Segment is one symbolic element of the signal: a tone held for a
// duration. Freq zero means silence; the synthesizer still advances its
// sample accumulator for silent segments.
type Segment struct {
	Freq  float64 // Hz; 0 for silence, otherwise within [1100, 2300]
	DurMS float64 // milliseconds, > 0
}

// ByteToFreq maps an 8-bit pixel value onto the SSTV luminance range:
// 0 -> 1500 Hz (black), 255 -> 2300 Hz (white).
func ByteToFreq(v uint8) float64 {
	return freqBlack + freqSpan*float64(v)/255.0
}

// voxPreamble is the fixed alternating-tone pattern used to key
// voice-operated transmit circuitry ahead of the VIS header.
var voxPreamble = [8]Segment{
	{ToneLeader, voxToneMS},
	{ToneBlack, voxToneMS},
	{ToneLeader, voxToneMS},
	{ToneBlack, voxToneMS},
	{ToneWhite, voxToneMS},
	{ToneBlack, voxToneMS},
	{ToneWhite, voxToneMS},
	{ToneBlack, voxToneMS},
}

// visHeader is the fixed leader/break/leader/start sequence preceding the
// VIS code bits.
var visHeader = [4]Segment{
	{ToneLeader, visLeaderMS},
	{ToneSync, visBreakMS},
	{ToneLeader, visLeaderMS},
	{ToneSync, visBitMS},
}

// visBitSegment returns the 30 ms segment for one VIS data or parity bit.
func visBitSegment(bit uint8) Segment {
	if bit != 0 {
		return Segment{ToneVISBit1, visBitMS}
	}
	return Segment{ToneVISBit0, visBitMS}
}

// fskidBitSegment returns the 22 ms segment for one FSKID payload bit.
func fskidBitSegment(bit uint8) Segment {
	if bit != 0 {
		return Segment{ToneLeader, fskidBitMS}
	}
	return Segment{ToneFSKBit0, fskidBitMS}
}
