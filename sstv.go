package sstv

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tphakala/go-sstv/internal/mode"
	"github.com/tphakala/go-sstv/internal/segment"
	"github.com/tphakala/go-sstv/internal/synth"
)

// Errors returned during encoder construction and use. Validation happens
// once, up front; the encoding pipeline itself cannot fail mid-stream.
var (
	// ErrUnsupportedBitDepth indicates a bit depth other than 8 or 16.
	// Invalid depths are rejected, never coerced.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrImageDimensions indicates the supplied pixel field does not
	// match the mode's native geometry. Mismatches are rejected, never
	// cropped or padded.
	ErrImageDimensions = errors.New("image dimensions mismatch")

	// ErrUnknownMode indicates an unrecognized mode name.
	ErrUnknownMode = errors.New("unknown SSTV mode")

	// ErrEncodingStarted indicates a mutation attempted after the first
	// sample was pulled.
	ErrEncodingStarted = errors.New("encoding already started")
)

// Config holds per-encoding parameters.
type Config struct {
	// SampleRate is the output PCM rate in Hz. Must be positive.
	SampleRate int

	// BitDepth is the output sample width, 8 or 16.
	BitDepth int

	// VOX prepends the alternating-tone preamble that keys
	// voice-operated transmit circuitry before the VIS header.
	VOX bool

	// DitherSeed seeds the quantizer's dither ring. Zero selects
	// DefaultDitherSeed; identical seeds give bit-identical output.
	DitherSeed uint64
}

// DefaultConfig returns the configuration used by the convenience
// constructors: 11025 Hz, 16-bit, no VOX.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		BitDepth:   DefaultBitDepth,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %d Hz", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.BitDepth != BitDepth8 && c.BitDepth != BitDepth16 {
		return fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, c.BitDepth)
	}
	return nil
}

// Encoder converts one prepared image into an SSTV PCM stream. It is a
// single-threaded pull pipeline: Read requests samples, which requests
// the next segment, which requests the next pixel. Only the segment in
// flight and the fixed dither ring are retained between calls.
//
// An Encoder encodes exactly one transmission and is not safe for
// concurrent use; create one per encoding.
type Encoder struct {
	mode  Mode
	desc  mode.Descriptor
	cfg   Config
	frame *segment.Frame
	fskid []byte

	stream  *segment.Stream
	osc     *synth.Oscillator
	quant   *synth.Quantizer
	started bool

	floatBuf []float64
	pending  []int
	pendOff  int
}

// New creates an encoder for the given mode and prepared image. The
// image must be exactly the mode's native size. A nil cfg selects
// DefaultConfig.
func New(m Mode, img *Image, cfg *Config) (*Encoder, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: Mode(%d)", ErrUnknownMode, int(m))
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := m.descriptor()
	if img == nil {
		return nil, fmt.Errorf("%w: nil image, want %dx%d", ErrImageDimensions, d.Width, d.Height)
	}
	if img.Width != d.Width || img.Height != d.Height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrImageDimensions, img.Width, img.Height, d.Width, d.Height)
	}
	if len(img.Pix) != img.Width*img.Height*rgbChannels {
		return nil, fmt.Errorf("%w: pixel buffer has %d samples, want %d",
			ErrImageDimensions, len(img.Pix), img.Width*img.Height*rgbChannels)
	}

	seed := cfg.DitherSeed
	if seed == 0 {
		seed = DefaultDitherSeed
	}

	return &Encoder{
		mode: m,
		desc: d,
		cfg:  *cfg,
		frame: &segment.Frame{
			Width:  img.Width,
			Height: img.Height,
			Pix:    img.Pix,
		},
		osc:   synth.NewOscillator(float64(cfg.SampleRate)),
		quant: synth.NewQuantizer(cfg.BitDepth, seed),
	}, nil
}

// Mode returns the encoder's transmission mode.
func (e *Encoder) Mode() Mode {
	return e.mode
}

// AddFSKIDText appends a frequency-shift-keyed station identifier to the
// trailer. Each call appends a complete frame with its own leader.
// Returns ErrEncodingStarted once samples have been pulled.
func (e *Encoder) AddFSKIDText(text string) error {
	if e.started {
		return ErrEncodingStarted
	}
	e.fskid = segment.AppendPayload(e.fskid, text)
	return nil
}

// Duration returns the length of the transmission.
func (e *Encoder) Duration() time.Duration {
	s := segment.NewStream(e.desc, e.frame, e.cfg.VOX, e.fskid)
	return time.Duration(s.TotalMS() * float64(time.Millisecond))
}

func (e *Encoder) start() {
	if e.started {
		return
	}
	e.stream = segment.NewStream(e.desc, e.frame, e.cfg.VOX, e.fskid)
	e.started = true
}

// Read fills buf with the next PCM samples and returns how many were
// written. Samples are signed, within the configured bit depth's range.
// It returns io.EOF once the transmission is complete.
func (e *Encoder) Read(buf []int) (int, error) {
	e.start()
	n := 0
	for n < len(buf) {
		if e.pendOff < len(e.pending) {
			c := copy(buf[n:], e.pending[e.pendOff:])
			n += c
			e.pendOff += c
			continue
		}
		seg, ok := e.stream.Next()
		if !ok {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		e.floatBuf = e.osc.Render(seg.Freq, seg.DurMS, e.floatBuf[:0])
		e.pending = e.quant.Quantize(e.floatBuf, e.pending[:0])
		e.pendOff = 0
	}
	return n, nil
}

// EncodeAll drains the encoder into one slice. Capacity is preallocated
// from the analytical duration, so the append path never reallocates.
func (e *Encoder) EncodeAll() []int {
	total := int(math.Round(float64(e.cfg.SampleRate) * e.Duration().Seconds()))
	out := make([]int, 0, total+1)
	buf := make([]int, encodeChunkSize)
	for {
		n, err := e.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			return out
		}
	}
}

// encodeChunkSize is the Read granularity used by EncodeAll.
const encodeChunkSize = 8192
