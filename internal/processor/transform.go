package processor

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned for a source image with a zero-sized bound.
var ErrEmptyImage = errors.New("image has no pixels")

// resampleFilter is the filter used by Transform.
var resampleFilter = imaging.Lanczos

// Transform scales img so that it covers size while keeping its aspect ratio,
// then crops the centre. The result is always exactly size.Width x size.Height.
func Transform(img image.Image, size Size) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, ErrNonPositiveDimension
	}

	rw, rh := CoverSize(b.Dx(), b.Dy(), size.Width, size.Height)
	resized := imaging.Resize(img, rw, rh, resampleFilter)

	// rw >= Width and rh >= Height by construction of CoverSize
	cx := (rw - size.Width) / 2
	cy := (rh - size.Height) / 2

	return imaging.Crop(resized, image.Rect(cx, cy, cx+size.Width, cy+size.Height)), nil
}

// CoverSize returns the smallest aspect-preserving size for an ow x oh image
// that matches one target dimension exactly and is at least as large as the
// target in the other.
func CoverSize(ow, oh, tw, th int) (int, int) {
	w, h, cw, ch := uint64(ow), uint64(oh), uint64(tw), uint64(th)
	if w*ch > h*cw {
		// wider than the target: fix the height
		return int(roundDiv(w*ch, h)), th
	}
	return tw, int(roundDiv(h*cw, w))
}

func roundDiv(n, d uint64) uint64 {
	q := n / d
	if 2*(n%d) >= d {
		q++
	}
	return q
}
