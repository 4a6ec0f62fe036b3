package sstv

// Defaults used by the convenience constructors and the command-line
// tools. 11025 Hz is the customary rate for SSTV soundcard work; the
// whole 1100-2300 Hz band sits comfortably below its Nyquist limit.
const (
	DefaultSampleRate = 11025
	DefaultBitDepth   = 16

	// DefaultDitherSeed seeds the quantizer's dither ring when the
	// caller does not supply one, keeping encodings reproducible by
	// default.
	DefaultDitherSeed uint64 = 0x53535456
)

// Supported PCM bit depths.
const (
	BitDepth8  = 8
	BitDepth16 = 16
)

// Frequency band of the emitted signal in Hz. Every non-silent segment
// lies within these bounds.
const (
	MinFreq = 1100.0
	MaxFreq = 2300.0
)

const rgbChannels = 3
