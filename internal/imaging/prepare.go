// Package imaging prepares raster images for SSTV encoding: compositing
// over white, aspect-preserving resize, and white letterbox padding to
// the target mode's native geometry.
package imaging

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"golang.org/x/image/draw"

	sstv "github.com/tphakala/go-sstv"
)

const maxChannelValue = 0xFFFF // 16-bit channel range of color.Color.RGBA

// Prepare converts src into a pixel field of the given geometry. The
// source is scaled to fit while preserving aspect ratio, centered, and
// padded with white; alpha is composited over white as well, matching
// what a receiver renders for transparent regions.
func Prepare(src image.Image, width, height int) *sstv.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	sb := src.Bounds()
	if sb.Dx() > 0 && sb.Dy() > 0 {
		target := fitRect(sb.Dx(), sb.Dy(), width, height)
		draw.CatmullRom.Scale(canvas, target, src, sb, draw.Over, nil)
	}

	out := sstv.NewImage(width, height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := canvas.At(x, y).RGBA()
			out.Pix[i] = float64(r) / maxChannelValue
			out.Pix[i+1] = float64(g) / maxChannelValue
			out.Pix[i+2] = float64(b) / maxChannelValue
			i += 3
		}
	}
	return out
}

// PrepareForMode is Prepare at the mode's native geometry.
func PrepareForMode(src image.Image, m sstv.Mode) *sstv.Image {
	w, h := m.Size()
	return Prepare(src, w, h)
}

// fitRect returns the centered rectangle of the largest w x h scaling of
// a srcW x srcH image that fits the canvas.
func fitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	// Compare aspect ratios without floating point: srcW/srcH vs dstW/dstH.
	if srcW*dstH >= srcH*dstW {
		// Source is wider: full width, letterbox top and bottom.
		h := srcH * dstW / srcW
		y0 := (dstH - h) / 2
		return image.Rect(0, y0, dstW, y0+h)
	}
	// Source is taller: full height, pillarbox left and right.
	w := srcW * dstH / srcH
	x0 := (dstW - w) / 2
	return image.Rect(x0, 0, x0+w, dstH)
}
