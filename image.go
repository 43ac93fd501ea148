package displaylist

import "image"

// Image is a shared handle to pixel data referenced by image draw ops.
// The handle is immutable; concurrent dispatch of a display list may read
// it from multiple goroutines.
//
// Pixels may be nil for images that live on the GPU; Width/Height and
// Opaque must still be populated so bounds and opacity analysis work.
type Image struct {
	// Width and Height are the dimensions in pixels.
	Width, Height int

	// Opaque reports that no pixel has alpha below 1. Opacity analysis
	// uses this to decide whether a drawImage distributes over a group
	// opacity.
	Opaque bool

	// Pixels optionally carries the decoded pixel data for CPU backends.
	Pixels image.Image
}

// NewImage creates an image handle from decoded pixel data.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	img := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: src,
	}
	if o, ok := src.(interface{ Opaque() bool }); ok {
		img.Opaque = o.Opaque()
	}
	return img
}

// Bounds returns the image bounds as a rectangle at the origin.
func (img *Image) Bounds() Rect {
	return MakeRectWH(0, 0, float32(img.Width), float32(img.Height))
}

// SamplingMode selects how image draws interpolate between pixels.
type SamplingMode uint8

const (
	// SamplingNearest picks the nearest pixel.
	SamplingNearest SamplingMode = iota
	// SamplingLinear interpolates bilinearly.
	SamplingLinear
	// SamplingMipmapLinear interpolates bilinearly between mip levels.
	SamplingMipmapLinear
	// SamplingCubic uses a cubic resampler.
	SamplingCubic
)

// String returns a human-readable name for the sampling mode.
func (m SamplingMode) String() string {
	switch m {
	case SamplingNearest:
		return "Nearest"
	case SamplingLinear:
		return "Linear"
	case SamplingMipmapLinear:
		return "MipmapLinear"
	case SamplingCubic:
		return "Cubic"
	default:
		return unknownStr
	}
}
