package displaylist

// RoundRect is a rectangle with independent elliptical corner radii.
// Radii are stored as (x, y) pairs per corner in clockwise order starting
// from the upper left.
type RoundRect struct {
	Rect  Rect
	Radii [4]Point // upper-left, upper-right, lower-right, lower-left
}

// Corner indices into RoundRect.Radii.
const (
	CornerUpperLeft = iota
	CornerUpperRight
	CornerLowerRight
	CornerLowerLeft
)

// MakeRoundRect creates a round rect with a uniform circular radius.
func MakeRoundRect(rect Rect, radius float32) RoundRect {
	return MakeRoundRectXY(rect, radius, radius)
}

// MakeRoundRectXY creates a round rect with the same elliptical radius at
// every corner.
func MakeRoundRectXY(rect Rect, rx, ry float32) RoundRect {
	p := Point{X: rx, Y: ry}
	return RoundRect{Rect: rect, Radii: [4]Point{p, p, p, p}}.normalized()
}

// MakeOval creates a round rect whose radii make it an ellipse inscribed
// in rect.
func MakeOval(rect Rect) RoundRect {
	s := rect.Sorted()
	return MakeRoundRectXY(s, s.Width()/2, s.Height()/2)
}

// normalized clamps negative radii to zero and scales radii down so that
// adjacent corners never overlap, matching canvas round-rect semantics.
func (rr RoundRect) normalized() RoundRect {
	rr.Rect = rr.Rect.Sorted()
	w := rr.Rect.Width()
	h := rr.Rect.Height()
	for i := range rr.Radii {
		rr.Radii[i].X = max32(rr.Radii[i].X, 0)
		rr.Radii[i].Y = max32(rr.Radii[i].Y, 0)
	}
	scale := float32(1)
	check := func(limit, a, b float32) {
		if sum := a + b; sum > limit && sum > 0 {
			scale = min32(scale, limit/sum)
		}
	}
	check(w, rr.Radii[CornerUpperLeft].X, rr.Radii[CornerUpperRight].X)
	check(w, rr.Radii[CornerLowerLeft].X, rr.Radii[CornerLowerRight].X)
	check(h, rr.Radii[CornerUpperLeft].Y, rr.Radii[CornerLowerLeft].Y)
	check(h, rr.Radii[CornerUpperRight].Y, rr.Radii[CornerLowerRight].Y)
	if scale < 1 {
		for i := range rr.Radii {
			rr.Radii[i] = rr.Radii[i].Mul(scale)
		}
	}
	return rr
}

// IsEmpty returns true if the bounding rectangle is empty.
func (rr RoundRect) IsEmpty() bool {
	return rr.Rect.IsEmpty()
}

// IsRect returns true if every corner radius is zero, i.e. the round rect
// is a plain rectangle.
func (rr RoundRect) IsRect() bool {
	if rr.Rect.IsEmpty() {
		return false
	}
	for _, r := range rr.Radii {
		if r.X > 0 && r.Y > 0 {
			return false
		}
	}
	return true
}

// IsOval returns true if the radii make the round rect an ellipse
// inscribed in its bounds.
func (rr RoundRect) IsOval() bool {
	if rr.Rect.IsEmpty() {
		return false
	}
	rx := rr.Rect.Width() / 2
	ry := rr.Rect.Height() / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	for _, r := range rr.Radii {
		if r.X != rx || r.Y != ry {
			return false
		}
	}
	return true
}

// Bounds returns the bounding rectangle.
func (rr RoundRect) Bounds() Rect {
	return rr.Rect
}

// ContainsRect returns true if the given rectangle lies entirely inside
// the rounded shape, corner cutouts included. Used to decide whether a
// clip round rect fully covers a cull rectangle.
func (rr RoundRect) ContainsRect(r Rect) bool {
	if r.IsEmpty() || !rr.Rect.ContainsRect(r) {
		return false
	}
	corners := [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	for _, c := range corners {
		if !rr.containsPoint(c) {
			return false
		}
	}
	return true
}

// containsPoint tests a point against the rounded shape. Points on the
// straight edges count as inside; points past a corner ellipse do not.
func (rr RoundRect) containsPoint(p Point) bool {
	if p.X < rr.Rect.MinX || p.X > rr.Rect.MaxX ||
		p.Y < rr.Rect.MinY || p.Y > rr.Rect.MaxY {
		return false
	}
	type corner struct {
		center Point
		radii  Point
		dx, dy float32
	}
	cs := [4]corner{
		{Point{rr.Rect.MinX + rr.Radii[CornerUpperLeft].X, rr.Rect.MinY + rr.Radii[CornerUpperLeft].Y}, rr.Radii[CornerUpperLeft], -1, -1},
		{Point{rr.Rect.MaxX - rr.Radii[CornerUpperRight].X, rr.Rect.MinY + rr.Radii[CornerUpperRight].Y}, rr.Radii[CornerUpperRight], 1, -1},
		{Point{rr.Rect.MaxX - rr.Radii[CornerLowerRight].X, rr.Rect.MaxY - rr.Radii[CornerLowerRight].Y}, rr.Radii[CornerLowerRight], 1, 1},
		{Point{rr.Rect.MinX + rr.Radii[CornerLowerLeft].X, rr.Rect.MaxY - rr.Radii[CornerLowerLeft].Y}, rr.Radii[CornerLowerLeft], -1, 1},
	}
	for _, c := range cs {
		if c.radii.X <= 0 || c.radii.Y <= 0 {
			continue
		}
		dx := (p.X - c.center.X) * c.dx
		dy := (p.Y - c.center.Y) * c.dy
		if dx <= 0 || dy <= 0 {
			continue // not in this corner's quadrant
		}
		nx := dx / c.radii.X
		ny := dy / c.radii.Y
		if nx*nx+ny*ny > 1 {
			return false
		}
	}
	return true
}
