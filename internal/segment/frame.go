package segment

import "math"

// Frame is the prepared pixel field consumed by the segment producer:
// interleaved RGB float64 samples in [0, 1], exactly Width*Height*3 long.
// The producer only reads from it; preparation (decode, resize, letterbox)
// is the collaborator's job.
type Frame struct {
	Width  int
	Height int
	Pix    []float64
}

// JFIF color transform coefficients.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114

	cbR = -0.168736
	cbG = -0.331264
	cbB = 0.5

	crR = 0.5
	crG = -0.418688
	crB = -0.081312

	chromaOffset = 0.5
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toByte quantizes a [0, 1] sample to its 8-bit transmission value.
func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255.0))
}

func (f *Frame) rgb(x, y int) (r, g, b float64) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// channel returns the 8-bit value of color channel c (0=R, 1=G, 2=B).
func (f *Frame) channel(x, y, c int) uint8 {
	return toByte(f.Pix[(y*f.Width+x)*3+c])
}

// lumaAt returns the JFIF luma of the pixel as a float in [0, 1].
func (f *Frame) lumaAt(x, y int) float64 {
	r, g, b := f.rgb(x, y)
	return lumaR*r + lumaG*g + lumaB*b
}

// luma returns the 8-bit JFIF luma. For fields prepared from a single
// gray channel this degenerates to that channel's value.
func (f *Frame) luma(x, y int) uint8 {
	r, g, b := f.rgb(x, y)
	if r == g && g == b {
		return toByte(r)
	}
	return toByte(f.lumaAt(x, y))
}

// chromaAt returns the JFIF color-difference pair of the pixel as floats
// in [0, 1] (offset by +0.5, unclamped; callers clamp at quantization).
func (f *Frame) chromaAt(x, y int) (cb, cr float64) {
	r, g, b := f.rgb(x, y)
	cb = cbR*r + cbG*g + cbB*b + chromaOffset
	cr = crR*r + crG*g + crB*b + chromaOffset
	return cb, cr
}

// cbByte and crByte return the quantized chroma channels.
func (f *Frame) cbByte(x, y int) uint8 {
	cb, _ := f.chromaAt(x, y)
	return toByte(cb)
}

func (f *Frame) crByte(x, y int) uint8 {
	_, cr := f.chromaAt(x, y)
	return toByte(cr)
}

// cbAvg and crAvg return the chroma of column x averaged across source
// lines y and y+1, as used by the PD family.
func (f *Frame) cbAvg(x, y int) uint8 {
	cb0, _ := f.chromaAt(x, y)
	cb1, _ := f.chromaAt(x, y+1)
	return toByte((cb0 + cb1) / 2)
}

func (f *Frame) crAvg(x, y int) uint8 {
	_, cr0 := f.chromaAt(x, y)
	_, cr1 := f.chromaAt(x, y+1)
	return toByte((cr0 + cr1) / 2)
}
