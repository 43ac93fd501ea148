package displaylist

// ColorFilter transforms the source color of every pixel a draw op
// produces. This is a sealed interface: only types in this package
// implement it.
type ColorFilter interface {
	// colorFilterMarker is an unexported method that seals this interface.
	colorFilterMarker()

	// ModifiesTransparentBlack reports whether the filter can turn fully
	// transparent pixels into visible ones. Such filters make a saveLayer
	// unbounded: every pixel of the layer, drawn or not, may become
	// visible.
	ModifiesTransparentBlack() bool

	// CanCommuteWithOpacity reports whether applying a group opacity
	// before the filter is equivalent to applying it after.
	CanCommuteWithOpacity() bool

	// EqualColorFilter reports structural equality with another filter.
	EqualColorFilter(other ColorFilter) bool
}

// BlendColorFilter composites a constant color over every source pixel
// with the given blend mode.
type BlendColorFilter struct {
	Color Color
	Mode  BlendMode
}

func (*BlendColorFilter) colorFilterMarker() {}

// ModifiesTransparentBlack reports whether the blend can produce visible
// output from transparent input.
func (f *BlendColorFilter) ModifiesTransparentBlack() bool {
	// dst = transparent: any mode whose output includes a source term
	// independent of dst coverage can light up untouched pixels.
	switch f.Mode {
	case BlendDst, BlendSrcOver, BlendDstOver, BlendSrcATop, BlendXor,
		BlendPlus, BlendSrcIn, BlendDstIn, BlendSrcOut, BlendDstOut,
		BlendDstATop, BlendClear, BlendModulate:
		// These either keep transparent black transparent or only darken.
		switch f.Mode {
		case BlendSrcOver, BlendDstOver, BlendPlus, BlendSrcOut, BlendDstATop:
			return f.Color.Alpha() != 0
		}
		return false
	case BlendSrc:
		return f.Color.Alpha() != 0
	default:
		// Advanced modes depend on both operands; treat as modifying.
		return f.Color.Alpha() != 0
	}
}

// CanCommuteWithOpacity reports whether the filter distributes over alpha
// modulation.
func (f *BlendColorFilter) CanCommuteWithOpacity() bool {
	switch f.Mode {
	case BlendClear, BlendDst, BlendSrcIn, BlendDstIn, BlendDstOut, BlendSrcATop, BlendModulate:
		return true
	case BlendSrc, BlendSrcOver:
		return f.Color.Alpha() == 0
	default:
		return false
	}
}

// EqualColorFilter reports structural equality with another filter.
func (f *BlendColorFilter) EqualColorFilter(other ColorFilter) bool {
	o, ok := other.(*BlendColorFilter)
	return ok && *f == *o
}

// MatrixColorFilter transforms colors through a 5x4 matrix in row-major
// order; each output channel is a weighted sum of the input channels plus
// a bias term (the fifth column, in 0..255 channel units).
type MatrixColorFilter struct {
	Matrix [20]float32
}

func (*MatrixColorFilter) colorFilterMarker() {}

// ModifiesTransparentBlack reports whether the matrix produces non-zero
// output for a zero input vector, i.e. whether any bias term is non-zero.
func (f *MatrixColorFilter) ModifiesTransparentBlack() bool {
	return f.Matrix[4] != 0 || f.Matrix[9] != 0 || f.Matrix[14] != 0 || f.Matrix[19] != 0
}

// CanCommuteWithOpacity reports whether alpha scaling passes through the
// matrix unchanged: the alpha row must be {0, 0, 0, a, 0}.
func (f *MatrixColorFilter) CanCommuteWithOpacity() bool {
	return f.Matrix[15] == 0 && f.Matrix[16] == 0 && f.Matrix[17] == 0 && f.Matrix[19] == 0
}

// EqualColorFilter reports structural equality with another filter.
func (f *MatrixColorFilter) EqualColorFilter(other ColorFilter) bool {
	o, ok := other.(*MatrixColorFilter)
	return ok && *f == *o
}

func colorFiltersEqual(a, b ColorFilter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualColorFilter(b)
}
