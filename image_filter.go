package displaylist

// ImageFilter post-processes the rasterized output of a draw op or
// saveLayer, potentially moving pixels (blur, matrix). This is a sealed
// interface: only types in this package implement it.
type ImageFilter interface {
	// imageFilterMarker is an unexported method that seals this interface.
	imageFilterMarker()

	// MapBounds returns the device bounds the filtered output can cover
	// given input content bounds. The result is conservative: it always
	// contains the true output bounds.
	MapBounds(input Rect) Rect

	// EqualImageFilter reports structural equality with another filter.
	EqualImageFilter(other ImageFilter) bool
}

// blurSigmaScale is the multiple of sigma a Gaussian blur is treated as
// covering on each side. Three sigmas retain >99.7% of the energy.
const blurSigmaScale = 3

// BlurImageFilter applies a Gaussian blur with independent horizontal and
// vertical sigmas.
type BlurImageFilter struct {
	SigmaX float32
	SigmaY float32
	Tile   TileMode
}

func (*BlurImageFilter) imageFilterMarker() {}

// MapBounds expands the input by three sigmas on each side.
func (f *BlurImageFilter) MapBounds(input Rect) Rect {
	if input.IsEmpty() {
		return input
	}
	return input.Expand(blurSigmaScale*max32(f.SigmaX, 0), blurSigmaScale*max32(f.SigmaY, 0))
}

// EqualImageFilter reports structural equality with another filter.
func (f *BlurImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*BlurImageFilter)
	return ok && *f == *o
}

// DilateImageFilter grows the covered region by the given radii.
type DilateImageFilter struct {
	RadiusX float32
	RadiusY float32
}

func (*DilateImageFilter) imageFilterMarker() {}

// MapBounds expands the input by the dilation radii.
func (f *DilateImageFilter) MapBounds(input Rect) Rect {
	if input.IsEmpty() {
		return input
	}
	return input.Expand(max32(f.RadiusX, 0), max32(f.RadiusY, 0))
}

// EqualImageFilter reports structural equality with another filter.
func (f *DilateImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*DilateImageFilter)
	return ok && *f == *o
}

// ErodeImageFilter shrinks the covered region by the given radii.
type ErodeImageFilter struct {
	RadiusX float32
	RadiusY float32
}

func (*ErodeImageFilter) imageFilterMarker() {}

// MapBounds returns the input unchanged: erosion never grows coverage,
// and returning the input keeps the bounds conservative.
func (f *ErodeImageFilter) MapBounds(input Rect) Rect {
	return input
}

// EqualImageFilter reports structural equality with another filter.
func (f *ErodeImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*ErodeImageFilter)
	return ok && *f == *o
}

// MatrixImageFilter transforms the filtered output through a matrix.
type MatrixImageFilter struct {
	Matrix Matrix
}

func (*MatrixImageFilter) imageFilterMarker() {}

// MapBounds maps the input bounds through the matrix.
func (f *MatrixImageFilter) MapBounds(input Rect) Rect {
	if input.IsEmpty() {
		return input
	}
	return f.Matrix.MapRect(input)
}

// EqualImageFilter reports structural equality with another filter.
func (f *MatrixImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*MatrixImageFilter)
	return ok && *f == *o
}

// ComposeImageFilter applies Inner first, then Outer.
type ComposeImageFilter struct {
	Outer ImageFilter
	Inner ImageFilter
}

func (*ComposeImageFilter) imageFilterMarker() {}

// MapBounds chains the bounds transforms of both filters.
func (f *ComposeImageFilter) MapBounds(input Rect) Rect {
	out := input
	if f.Inner != nil {
		out = f.Inner.MapBounds(out)
	}
	if f.Outer != nil {
		out = f.Outer.MapBounds(out)
	}
	return out
}

// EqualImageFilter reports structural equality with another filter.
func (f *ComposeImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*ComposeImageFilter)
	return ok && imageFiltersEqual(f.Outer, o.Outer) && imageFiltersEqual(f.Inner, o.Inner)
}

// ColorFilterImageFilter wraps a ColorFilter as an image filter stage so
// it can participate in filter composition.
type ColorFilterImageFilter struct {
	Filter ColorFilter
}

func (*ColorFilterImageFilter) imageFilterMarker() {}

// MapBounds returns the input unchanged; color filters do not move
// pixels. A filter that modifies transparent black is unbounded, which
// saveLayer handling accounts for separately.
func (f *ColorFilterImageFilter) MapBounds(input Rect) Rect {
	return input
}

// EqualImageFilter reports structural equality with another filter.
func (f *ColorFilterImageFilter) EqualImageFilter(other ImageFilter) bool {
	o, ok := other.(*ColorFilterImageFilter)
	return ok && colorFiltersEqual(f.Filter, o.Filter)
}

func imageFiltersEqual(a, b ImageFilter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualImageFilter(b)
}
