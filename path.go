package displaylist

// PathVerb represents a path construction command.
type PathVerb uint8

// Path verb constants.
const (
	// VerbMoveTo moves the current point without drawing.
	VerbMoveTo PathVerb = iota
	// VerbLineTo draws a line to the specified point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// String returns a human-readable name for the verb.
func (v PathVerb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return unknownStr
	}
}

// PointCount returns the number of float32 values this verb consumes.
func (v PathVerb) PointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 2
	case VerbQuadTo:
		return 4
	case VerbCubicTo:
		return 6
	default:
		return 0
	}
}

// FillType selects how a path's interior is determined.
type FillType uint8

const (
	// FillWinding uses the non-zero winding rule.
	FillWinding FillType = iota
	// FillEvenOdd uses the even-odd rule.
	FillEvenOdd
	// FillInverseWinding fills the complement of the winding interior.
	FillInverseWinding
	// FillInverseEvenOdd fills the complement of the even-odd interior.
	FillInverseEvenOdd
)

// String returns a human-readable name for the fill type.
func (ft FillType) String() string {
	switch ft {
	case FillWinding:
		return "Winding"
	case FillEvenOdd:
		return "EvenOdd"
	case FillInverseWinding:
		return "InverseWinding"
	case FillInverseEvenOdd:
		return "InverseEvenOdd"
	default:
		return unknownStr
	}
}

// IsInverse returns true for the complement fill rules.
func (ft FillType) IsInverse() bool {
	return ft == FillInverseWinding || ft == FillInverseEvenOdd
}

// Inverted returns the fill type with its inside and outside swapped.
func (ft FillType) Inverted() FillType {
	switch ft {
	case FillWinding:
		return FillInverseWinding
	case FillEvenOdd:
		return FillInverseEvenOdd
	case FillInverseWinding:
		return FillWinding
	case FillInverseEvenOdd:
		return FillEvenOdd
	default:
		return ft
	}
}

// Path is a vector path built from move/line/quad/cubic/close commands.
// Verbs and coordinate data are stored separately for compact storage and
// cheap structural comparison.
//
// A Path is mutable while being built and must not be modified after it
// has been recorded into a display list.
type Path struct {
	verbs    []PathVerb
	points   []float32
	bounds   Rect
	fillType FillType
	start    [2]float32 // start of current subpath for Close
	cursor   [2]float32 // current position
}

// NewPath creates a new empty path with the winding fill rule.
func NewPath() *Path {
	return &Path{
		verbs:  make([]PathVerb, 0, 16),
		points: make([]float32, 0, 64),
		bounds: EmptyRect(),
	}
}

// Reset clears the path for reuse without deallocating memory.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.bounds = EmptyRect()
	p.fillType = FillWinding
	p.start = [2]float32{0, 0}
	p.cursor = [2]float32{0, 0}
}

// SetFillType sets the fill rule.
func (p *Path) SetFillType(ft FillType) *Path {
	p.fillType = ft
	return p
}

// FillType returns the fill rule.
func (p *Path) FillType() FillType {
	return p.fillType
}

// MoveTo begins a new subpath at the specified point.
func (p *Path) MoveTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(x, y)
	p.start = [2]float32{x, y}
	p.cursor = [2]float32{x, y}
	return p
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(x, y)
	p.cursor = [2]float32{x, y}
	return p
}

// QuadTo draws a quadratic Bezier curve through control point (cx, cy)
// to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	// Union with control points is a conservative approximation of the
	// curve extrema.
	p.bounds = p.bounds.UnionPoint(cx, cy)
	p.bounds = p.bounds.UnionPoint(x, y)
	p.cursor = [2]float32{x, y}
	return p
}

// CubicTo draws a cubic Bezier curve through two control points to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.bounds = p.bounds.UnionPoint(c1x, c1y)
	p.bounds = p.bounds.UnionPoint(c2x, c2y)
	p.bounds = p.bounds.UnionPoint(x, y)
	p.cursor = [2]float32{x, y}
	return p
}

// Close closes the current subpath with a line back to its start.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	p.cursor = p.start
	return p
}

// AddRect appends a closed rectangular contour.
func (p *Path) AddRect(r Rect) *Path {
	r = r.Sorted()
	p.MoveTo(r.MinX, r.MinY)
	p.LineTo(r.MaxX, r.MinY)
	p.LineTo(r.MaxX, r.MaxY)
	p.LineTo(r.MinX, r.MaxY)
	return p.Close()
}

// AddOval appends a closed oval contour inscribed in r, approximated with
// four cubic segments.
func (p *Path) AddOval(r Rect) *Path {
	r = r.Sorted()
	// Magic constant for circular arcs as cubics.
	const k = 0.5522848
	cx, cy := (r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2
	rx, ry := r.Width()/2, r.Height()/2
	kx, ky := rx*k, ry*k
	p.MoveTo(cx, r.MinY)
	p.CubicTo(cx+kx, r.MinY, r.MaxX, cy-ky, r.MaxX, cy)
	p.CubicTo(r.MaxX, cy+ky, cx+kx, r.MaxY, cx, r.MaxY)
	p.CubicTo(cx-kx, r.MaxY, r.MinX, cy+ky, r.MinX, cy)
	p.CubicTo(r.MinX, cy-ky, cx-kx, r.MinY, cx, r.MinY)
	return p.Close()
}

// IsEmpty returns true if the path has no verbs.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// VerbCount returns the number of verbs.
func (p *Path) VerbCount() int {
	return len(p.verbs)
}

// Verbs returns the verb slice. The caller must not modify it.
func (p *Path) Verbs() []PathVerb {
	return p.verbs
}

// Points returns the coordinate slice. The caller must not modify it.
func (p *Path) Points() []float32 {
	return p.points
}

// Bounds returns the conservative bounding box of the path geometry.
// For inverse fill types the geometry bounds are still returned; callers
// that need coverage bounds must treat inverse paths as unbounded.
func (p *Path) Bounds() Rect {
	if len(p.verbs) == 0 {
		return EmptyRect()
	}
	return p.bounds
}

// Equal reports structural equality of two paths: same fill type, same
// verb sequence, and identical coordinates.
func (p *Path) Equal(other *Path) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	if p.fillType != other.fillType ||
		len(p.verbs) != len(other.verbs) ||
		len(p.points) != len(other.points) {
		return false
	}
	for i := range p.verbs {
		if p.verbs[i] != other.verbs[i] {
			return false
		}
	}
	for i := range p.points {
		if p.points[i] != other.points[i] {
			return false
		}
	}
	return true
}

// asRect reports whether the path is exactly one closed axis-aligned
// rectangular contour, returning the rectangle when it is.
func (p *Path) asRect() (Rect, bool) {
	if len(p.verbs) != 5 ||
		p.verbs[0] != VerbMoveTo ||
		p.verbs[1] != VerbLineTo || p.verbs[2] != VerbLineTo ||
		p.verbs[3] != VerbLineTo || p.verbs[4] != VerbClose {
		return Rect{}, false
	}
	xs := p.points
	type pt struct{ x, y float32 }
	q := [4]pt{
		{xs[0], xs[1]}, {xs[2], xs[3]}, {xs[4], xs[5]}, {xs[6], xs[7]},
	}
	// Each edge must be axis-aligned and alternate direction.
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		dx := a.x != b.x
		dy := a.y != b.y
		if dx == dy {
			return Rect{}, false
		}
	}
	r := EmptyRect()
	for _, c := range q {
		r = r.UnionPoint(c.x, c.y)
	}
	return r, true
}
