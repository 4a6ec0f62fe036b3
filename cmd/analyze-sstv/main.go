// Command analyze-sstv prints the dominant-frequency timeline of an SSTV
// WAV file. It is a debugging aid: the VIS header, sync pulses, and scan
// structure of an encoded transmission are visible in the tone runs
// without a real SSTV receiver.
//
// Usage:
//
//	analyze-sstv tx.wav
//	analyze-sstv -window 10 -min-run 3 tx.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	defaultWindowMS = 5.0
	defaultMinRun   = 2

	// Tone matching tolerance when labeling runs, in Hz.
	labelTolerance = 30.0

	readChunk = 65536
)

// knownTones maps the fixed SSTV control tones to labels.
var knownTones = []struct {
	freq  float64
	label string
}{
	{1100, "vis-bit-1"},
	{1200, "sync"},
	{1300, "vis-bit-0"},
	{1500, "black"},
	{1900, "leader"},
	{2100, "fskid-bit-0"},
	{2300, "white"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	windowMS := flag.Float64("window", defaultWindowMS, "Analysis window in milliseconds")
	minRun := flag.Int("min-run", defaultMinRun, "Minimum consecutive windows to report a run")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	samples, rate, err := readMonoWAV(flag.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d samples at %d Hz (%.2fs)\n\n",
		flag.Arg(0), len(samples), rate, float64(len(samples))/float64(rate))

	printTimeline(samples, rate, *windowMS, *minRun)
	return nil
}

// readMonoWAV decodes the first channel of a WAV file into floats.
func readMonoWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	format := decoder.Format()
	channels := format.NumChannels
	scale := 1.0 / float64(int(1)<<(decoder.BitDepth-1))

	buf := &audio.IntBuffer{
		Format: format,
		Data:   make([]int, readChunk*channels),
	}
	var samples []float64
	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}
		// n counts frames; take the first channel of each.
		for i := 0; i < n*channels; i += channels {
			samples = append(samples, float64(buf.Data[i])*scale)
		}
	}
	return samples, format.SampleRate, nil
}

// printTimeline estimates the dominant frequency per window and prints
// the distinct tone runs.
func printTimeline(samples []float64, rate int, windowMS float64, minRun int) {
	n := int(float64(rate) * windowMS / 1000.0)
	if n < 16 {
		n = 16
	}
	fft := fourier.NewFFT(n)
	window := make([]float64, n)

	fmt.Printf("%-10s  %-9s  %-9s  %s\n", "start", "len ms", "freq Hz", "label")

	var (
		runFreq  float64
		runStart int
		runCount int
	)
	flush := func() {
		if runCount < minRun {
			return
		}
		startS := float64(runStart*n) / float64(rate)
		lenMS := float64(runCount*n) / float64(rate) * 1000.0
		fmt.Printf("%9.3fs  %9.1f  %9.1f  %s\n", startS, lenMS, runFreq, labelFor(runFreq))
	}

	windows := len(samples) / n
	for w := 0; w < windows; w++ {
		copy(window, samples[w*n:(w+1)*n])
		freq := dominantFreq(fft, window, rate)

		if runCount > 0 && math.Abs(freq-runFreq) <= labelTolerance {
			runCount++
			continue
		}
		flush()
		runFreq = freq
		runStart = w
		runCount = 1
	}
	flush()
}

// dominantFreq returns the peak-bin frequency of one window, refined by
// parabolic interpolation on the magnitude spectrum.
func dominantFreq(fft *fourier.FFT, window []float64, rate int) float64 {
	coeffs := fft.Coefficients(nil, window)

	peak := 1
	peakMag := 0.0
	for i := 1; i < len(coeffs); i++ {
		m := cmplxAbs(coeffs[i])
		if m > peakMag {
			peakMag = m
			peak = i
		}
	}

	binHz := float64(rate) / float64(len(window))
	offset := 0.0
	if peak > 0 && peak < len(coeffs)-1 {
		// Parabolic fit through the peak and its neighbors.
		a := cmplxAbs(coeffs[peak-1])
		b := peakMag
		c := cmplxAbs(coeffs[peak+1])
		denom := a - 2*b + c
		if denom != 0 {
			offset = 0.5 * (a - c) / denom
		}
	}
	return (float64(peak) + offset) * binHz
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// labelFor names a frequency if it sits near a known control tone.
func labelFor(freq float64) string {
	for _, t := range knownTones {
		if math.Abs(freq-t.freq) <= labelTolerance {
			return t.label
		}
	}
	if freq >= 1500 && freq <= 2300 {
		return "pixel"
	}
	return ""
}
