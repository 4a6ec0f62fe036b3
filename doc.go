// Package sstv encodes raster images into Slow-Scan Television audio
// waveforms in pure Go.
//
// The encoder produces a single-channel PCM stream that, demodulated by
// a standard SSTV receiver, reconstructs the source image. Thirteen
// historical modes are supported: Robot 8BW/24BW, Robot 36, Martin
// M1/M2, Scottie S1/S2, and PD 90/120/160/180/240/290.
//
// # Features
//
//   - Modes expressed as data: one descriptor row per mode, dispatched
//     through a small family variant instead of a type hierarchy
//   - Lazy pull pipeline: descriptor -> segments -> floats -> PCM, with
//     only the segment in flight held in memory
//   - Phase-continuous sine synthesis, so frequency transitions never
//     produce audible clicks
//   - TPDF-dithered quantization to signed 8- or 16-bit samples at any
//     sample rate
//   - Optional VOX preamble and FSKID station-identifier trailer
//   - Bit-exactly reproducible output for identical inputs and seed
//
// # Quick Start
//
// One-shot encoding of a prepared image:
//
//	pcm, err := sstv.EncodeToPCM("MartinM1", img, 11025, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Streaming with explicit configuration:
//
//	enc, err := sstv.New(sstv.ScottieS1, img, &sstv.Config{
//	    SampleRate: 44100,
//	    BitDepth:   16,
//	    VOX:        true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enc.AddFSKIDText("N0CALL")
//
//	buf := make([]int, 8192)
//	for {
//	    n, err := enc.Read(buf)
//	    writeOutput(buf[:n])
//	    if err != nil {
//	        break
//	    }
//	}
//
// # Image Preparation
//
// An [Encoder] consumes an [Image]: interleaved RGB floats in [0, 1] at
// exactly the mode's native geometry. The encoder neither resizes nor
// pads; mismatched dimensions are an error. The imaging collaborator
// used by cmd/sstv-wav decodes, composites over white, and letterboxes
// standard image files to mode geometry; generated content can fill an
// Image directly via [Image.SetRGB].
//
// # Signal Structure
//
// Every transmission is: optional VOX tones, VIS header (leader, break,
// 7-bit mode code with even parity), the per-line image body in the
// mode's family structure, and an optional FSKID trailer. Pixel values
// map linearly onto 1500-2300 Hz; sync and VIS bit tones use
// 1100-1300 Hz, and the VIS leader and FSKID bits use 1900 and 2100 Hz.
//
// # Determinism
//
// For a given mode, image, sample rate, bit depth, VOX flag, FSKID text,
// and dither seed, the produced PCM stream is bit-exactly reproducible.
// The dither seed defaults to a fixed constant and can be set in
// [Config] for golden-output testing.
package sstv
