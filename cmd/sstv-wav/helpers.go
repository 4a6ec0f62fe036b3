package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"

	// Image decoders for the formats hams actually send.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gopkg.in/yaml.v3"

	sstv "github.com/tphakala/go-sstv"
	"github.com/tphakala/go-sstv/internal/imaging"
)

const (
	// Read granularity for streaming samples into the WAV encoder.
	chunkSize = 32768

	monoChannels   = 1
	stereoChannels = 2

	wavAudioFormatPCM = 1
)

// options are the resolved encoding parameters after merging defaults,
// station config, and flags.
type options struct {
	Mode       string
	SampleRate int
	BitDepth   int
	VOX        bool
	Callsign   string
}

func defaultOptions() options {
	return options{
		Mode:       "",
		SampleRate: sstv.DefaultSampleRate,
		BitDepth:   sstv.DefaultBitDepth,
	}
}

// stationConfig is the YAML station file: per-operator defaults that
// rarely change between transmissions.
type stationConfig struct {
	Callsign   string `yaml:"callsign"`
	Mode       string `yaml:"mode"`
	SampleRate int    `yaml:"sample_rate"`
	BitDepth   int    `yaml:"bit_depth"`
	VOX        bool   `yaml:"vox"`
}

func loadStationConfig(path string) (*stationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read station config: %w", err)
	}
	var cfg stationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse station config %s: %w", path, err)
	}
	return &cfg, nil
}

// apply overlays non-zero station config values onto the options.
func (o *options) apply(cfg *stationConfig) {
	if cfg.Mode != "" {
		o.Mode = cfg.Mode
	}
	if cfg.SampleRate > 0 {
		o.SampleRate = cfg.SampleRate
	}
	if cfg.BitDepth > 0 {
		o.BitDepth = cfg.BitDepth
	}
	if cfg.VOX {
		o.VOX = true
	}
	if cfg.Callsign != "" {
		o.Callsign = cfg.Callsign
	}
}

// newEncoder loads and prepares the input image and builds the encoder.
func newEncoder(inputPath string, opts options, seed uint64, verbose bool) (*sstv.Encoder, error) {
	m, err := sstv.LookupMode(opts.Mode)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input image: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", inputPath, err)
	}
	if verbose {
		b := src.Bounds()
		log.Printf("Input image: %s, %dx%d", format, b.Dx(), b.Dy())
	}

	img := imaging.PrepareForMode(src, m)

	return sstv.NewWithCallsign(m, img, &sstv.Config{
		SampleRate: opts.SampleRate,
		BitDepth:   opts.BitDepth,
		VOX:        opts.VOX,
		DitherSeed: seed,
	}, opts.Callsign)
}

// writeWAV streams the encoder's samples into a PCM WAV file, optionally
// duplicating each sample across two channels. Returns the number of
// mono samples written.
func writeWAV(path string, enc *sstv.Encoder, sampleRate, bitDepth int, stereo bool) (written int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	channels := monoChannels
	if stereo {
		channels = stereoChannels
	}

	w := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavAudioFormatPCM)
	buf := make([]int, chunkSize)
	frame := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}
	var stereoBuf []int

	for {
		n, readErr := enc.Read(buf)
		if n > 0 {
			data := buf[:n]
			if stereo {
				stereoBuf = duplicateStereo(data, stereoBuf)
				data = stereoBuf
			}
			frame.Data = data
			if werr := w.Write(frame); werr != nil {
				return written, fmt.Errorf("failed to write audio data: %w", werr)
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
	}

	if err := w.Close(); err != nil {
		return written, fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return written, nil
}

// duplicateStereo interleaves each mono sample into both channels,
// reusing dst's backing array when possible.
func duplicateStereo(mono, dst []int) []int {
	need := len(mono) * stereoChannels
	if cap(dst) < need {
		dst = make([]int, need)
	}
	dst = dst[:need]
	for i, s := range mono {
		dst[i*stereoChannels] = s
		dst[i*stereoChannels+1] = s
	}
	return dst
}

// listModes prints the mode table.
func listModes() {
	fmt.Printf("%-10s  %-4s  %-9s\n", "Mode", "VIS", "Size")
	for _, m := range sstv.Modes() {
		w, h := m.Size()
		fmt.Printf("%-10s  0x%02X  %dx%d\n", m, m.VISCode(), w, h)
	}
}
