package displaylist

// TileMode selects how a color source samples outside its defined region.
type TileMode uint8

const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)

// String returns a human-readable name for the tile mode.
func (t TileMode) String() string {
	switch t {
	case TileClamp:
		return "Clamp"
	case TileRepeat:
		return "Repeat"
	case TileMirror:
		return "Mirror"
	case TileDecal:
		return "Decal"
	default:
		return unknownStr
	}
}

// GradientStop is a single color stop along a gradient.
type GradientStop struct {
	Offset float32
	Color  Color
}

// ColorSource generates per-pixel source colors for a draw op, replacing
// the flat paint color. This is a sealed interface: only types in this
// package implement it.
//
// Sources are immutable after construction and shared between the paint
// attribute state and the recorded ops that reference them.
type ColorSource interface {
	// colorSourceMarker is an unexported method that seals this interface.
	colorSourceMarker()

	// IsOpaque reports whether every generated color is fully opaque.
	IsOpaque() bool

	// EqualColorSource reports structural equality with another source.
	EqualColorSource(other ColorSource) bool
}

// LinearGradientSource is a linear gradient between two points.
type LinearGradientSource struct {
	Start Point
	End   Point
	Stops []GradientStop
	Tile  TileMode
}

func (*LinearGradientSource) colorSourceMarker() {}

// IsOpaque reports whether every stop color is opaque.
func (s *LinearGradientSource) IsOpaque() bool {
	return stopsOpaque(s.Stops)
}

// EqualColorSource reports structural equality with another source.
func (s *LinearGradientSource) EqualColorSource(other ColorSource) bool {
	o, ok := other.(*LinearGradientSource)
	return ok && s.Start == o.Start && s.End == o.End &&
		s.Tile == o.Tile && stopsEqual(s.Stops, o.Stops)
}

// RadialGradientSource is a radial gradient around a center point.
type RadialGradientSource struct {
	Center Point
	Radius float32
	Stops  []GradientStop
	Tile   TileMode
}

func (*RadialGradientSource) colorSourceMarker() {}

// IsOpaque reports whether every stop color is opaque.
func (s *RadialGradientSource) IsOpaque() bool {
	return stopsOpaque(s.Stops)
}

// EqualColorSource reports structural equality with another source.
func (s *RadialGradientSource) EqualColorSource(other ColorSource) bool {
	o, ok := other.(*RadialGradientSource)
	return ok && s.Center == o.Center && s.Radius == o.Radius &&
		s.Tile == o.Tile && stopsEqual(s.Stops, o.Stops)
}

// SweepGradientSource is an angular gradient around a center point.
// Angles are in degrees.
type SweepGradientSource struct {
	Center     Point
	StartAngle float32
	EndAngle   float32
	Stops      []GradientStop
	Tile       TileMode
}

func (*SweepGradientSource) colorSourceMarker() {}

// IsOpaque reports whether every stop color is opaque.
func (s *SweepGradientSource) IsOpaque() bool {
	return stopsOpaque(s.Stops)
}

// EqualColorSource reports structural equality with another source.
func (s *SweepGradientSource) EqualColorSource(other ColorSource) bool {
	o, ok := other.(*SweepGradientSource)
	return ok && s.Center == o.Center && s.StartAngle == o.StartAngle &&
		s.EndAngle == o.EndAngle && s.Tile == o.Tile &&
		stopsEqual(s.Stops, o.Stops)
}

// ImageColorSource samples colors from an image.
type ImageColorSource struct {
	Image *Image
	TileX TileMode
	TileY TileMode
}

func (*ImageColorSource) colorSourceMarker() {}

// IsOpaque reports whether the backing image has no alpha.
func (s *ImageColorSource) IsOpaque() bool {
	return s.Image != nil && s.Image.Opaque
}

// EqualColorSource reports structural equality with another source.
// Images compare by identity; they are opaque shared handles.
func (s *ImageColorSource) EqualColorSource(other ColorSource) bool {
	o, ok := other.(*ImageColorSource)
	return ok && s.Image == o.Image && s.TileX == o.TileX && s.TileY == o.TileY
}

func stopsOpaque(stops []GradientStop) bool {
	for _, s := range stops {
		if !s.Color.IsOpaque() {
			return false
		}
	}
	return true
}

func stopsEqual(a, b []GradientStop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func colorSourcesEqual(a, b ColorSource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualColorSource(b)
}
