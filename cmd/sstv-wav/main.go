// Command sstv-wav encodes an image file into an SSTV transmission WAV.
//
// Usage:
//
//	sstv-wav -mode MartinM1 input.png output.wav
//	sstv-wav -mode Robot36 -rate 44100 -fskid N0CALL photo.jpg out.wav
//	sstv-wav -mode PD120 -vox -stereo input.png output.wav
//	sstv-wav -config station.yaml input.png output.wav
//	sstv-wav -list
//
// The optional YAML station config provides defaults (mode, rate, bit
// depth, VOX, callsign); explicitly set flags override it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	minRequiredArgs = 2

	defaultModeName = "MartinM1"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	modeName := flag.String("mode", defaultModeName, "SSTV mode (see -list)")
	rate := flag.Int("rate", 0, "Output sample rate in Hz (default 11025)")
	bits := flag.Int("bits", 0, "Output bit depth, 8 or 16 (default 16)")
	vox := flag.Bool("vox", false, "Prepend the VOX tone preamble")
	fskid := flag.String("fskid", "", "Append an FSKID station identifier (e.g. a callsign)")
	stereo := flag.Bool("stereo", false, "Write two channels by sample duplication")
	seed := flag.Uint64("seed", 0, "Dither seed (0 = default, reproducible)")
	configPath := flag.String("config", "", "YAML station config with defaults")
	list := flag.Bool("list", false, "List supported modes and exit")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *list {
		listModes()
		return nil
	}

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input-image output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -mode ScottieS1 photo.png tx.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode Robot36 -fskid N0CALL photo.jpg tx.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	inputPath := args[0]
	outputPath := args[1]

	// Merge station config under the flags: a flag the user set wins.
	opts := defaultOptions()
	if *configPath != "" {
		station, err := loadStationConfig(*configPath)
		if err != nil {
			return err
		}
		opts.apply(station)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["mode"] || opts.Mode == "" {
		opts.Mode = *modeName
	}
	if set["rate"] {
		opts.SampleRate = *rate
	}
	if set["bits"] {
		opts.BitDepth = *bits
	}
	if set["vox"] {
		opts.VOX = *vox
	}
	if set["fskid"] {
		opts.Callsign = *fskid
	}

	enc, err := newEncoder(inputPath, opts, *seed, *verbose)
	if err != nil {
		return err
	}

	if *verbose {
		w, h := enc.Mode().Size()
		log.Printf("Mode: %s (VIS 0x%02X, %dx%d)", enc.Mode(), enc.Mode().VISCode(), w, h)
		log.Printf("Output: %d Hz, %d-bit, stereo=%v", opts.SampleRate, opts.BitDepth, *stereo)
		log.Printf("Signal duration: %s", enc.Duration().Round(time.Millisecond))
	}

	start := time.Now()
	written, err := writeWAV(outputPath, enc, opts.SampleRate, opts.BitDepth, *stereo)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Encoded %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s, %d Hz, %d-bit, %.1fs of audio\n",
		enc.Mode(), opts.SampleRate, opts.BitDepth, enc.Duration().Seconds())
	fmt.Printf("  %d samples in %.2fs\n", written, elapsed.Seconds())

	return nil
}
