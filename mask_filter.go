package displaylist

// BlurStyle selects which side of the geometry edge a mask blur affects.
type BlurStyle uint8

const (
	// BlurStyleNormal blurs inside and outside the edge.
	BlurStyleNormal BlurStyle = iota
	// BlurStyleSolid keeps the interior solid and blurs outward.
	BlurStyleSolid
	// BlurStyleOuter blurs outward only, leaving the interior empty.
	BlurStyleOuter
	// BlurStyleInner blurs inward only.
	BlurStyleInner
)

// String returns a human-readable name for the blur style.
func (s BlurStyle) String() string {
	switch s {
	case BlurStyleNormal:
		return "Normal"
	case BlurStyleSolid:
		return "Solid"
	case BlurStyleOuter:
		return "Outer"
	case BlurStyleInner:
		return "Inner"
	default:
		return unknownStr
	}
}

// MaskFilter blurs the coverage mask of a draw op before the paint is
// applied. This is a sealed interface: only types in this package
// implement it.
type MaskFilter interface {
	// maskFilterMarker is an unexported method that seals this interface.
	maskFilterMarker()

	// BoundsPad returns the padding the mask adds on each side of the
	// geometry bounds.
	BoundsPad() float32

	// EqualMaskFilter reports structural equality with another filter.
	EqualMaskFilter(other MaskFilter) bool
}

// BlurMaskFilter is a Gaussian coverage blur.
type BlurMaskFilter struct {
	Style BlurStyle
	Sigma float32
}

func (*BlurMaskFilter) maskFilterMarker() {}

// BoundsPad returns three sigmas of padding. Inner blurs never grow
// coverage, but the conservative pad is kept for them too; tightening it
// is not worth special-casing.
func (f *BlurMaskFilter) BoundsPad() float32 {
	return blurSigmaScale * max32(f.Sigma, 0)
}

// EqualMaskFilter reports structural equality with another filter.
func (f *BlurMaskFilter) EqualMaskFilter(other MaskFilter) bool {
	o, ok := other.(*BlurMaskFilter)
	return ok && *f == *o
}

func maskFiltersEqual(a, b MaskFilter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualMaskFilter(b)
}
