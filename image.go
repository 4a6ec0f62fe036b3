package sstv

// Image is the prepared pixel field an Encoder consumes: interleaved RGB
// float64 samples in [0, 1], exactly Width*Height*3 long. It must already
// be at the target mode's native geometry; the encoder neither crops nor
// pads. Use the imaging package to prepare one from a decoded raster
// image, or fill it directly for generated content.
type Image struct {
	Width  int
	Height int
	Pix    []float64 // interleaved RGB, length Width*Height*3
}

// NewImage allocates a black pixel field of the given geometry.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*rgbChannels),
	}
}

// SetRGB sets one pixel. Values outside [0, 1] are clamped at encode
// time, not here.
func (im *Image) SetRGB(x, y int, r, g, b float64) {
	i := (y*im.Width + x) * rgbChannels
	im.Pix[i] = r
	im.Pix[i+1] = g
	im.Pix[i+2] = b
}

// SetGray sets one pixel to a gray value, for luma-only content.
func (im *Image) SetGray(x, y int, v float64) {
	im.SetRGB(x, y, v, v, v)
}

// Fill sets every pixel to the given color.
func (im *Image) Fill(r, g, b float64) {
	for i := 0; i < len(im.Pix); i += rgbChannels {
		im.Pix[i] = r
		im.Pix[i+1] = g
		im.Pix[i+2] = b
	}
}
