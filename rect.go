package displaylist

import "math"

// Rect is an axis-aligned rectangle in the gg/scene layout: MinX/MinY is
// the top-left corner, MaxX/MaxY the bottom-right.
//
// An empty rectangle (MinX >= MaxX or MinY >= MaxY) represents "nothing";
// unions skip it and intersections produce it. Rectangles containing NaN
// coordinates are treated as empty everywhere.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// MakeRect creates a rectangle from two corner coordinates. The corners
// are used as given; call Sorted to normalize an inverted rectangle.
func MakeRect(minX, minY, maxX, maxY float32) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// MakeRectWH creates a rectangle from origin and size.
func MakeRectWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// EmptyRect returns an empty rectangle usable as the identity for Union.
func EmptyRect() Rect {
	return Rect{
		MinX: math.MaxFloat32,
		MinY: math.MaxFloat32,
		MaxX: -math.MaxFloat32,
		MaxY: -math.MaxFloat32,
	}
}

// IsEmpty returns true if the rectangle has no area. Rectangles with NaN
// coordinates are empty.
func (r Rect) IsEmpty() bool {
	return !(r.MinX < r.MaxX && r.MinY < r.MaxY)
}

// IsFinite returns true if all four coordinates are finite.
func (r Rect) IsFinite() bool {
	return isFinite32(r.MinX) && isFinite32(r.MinY) &&
		isFinite32(r.MaxX) && isFinite32(r.MaxY)
}

// HasNaN returns true if any coordinate is NaN.
func (r Rect) HasNaN() bool {
	return isNaN32(r.MinX) || isNaN32(r.MinY) || isNaN32(r.MaxX) || isNaN32(r.MaxY)
}

// Sorted returns the rectangle with its corners swapped as needed so that
// MinX <= MaxX and MinY <= MaxY. A rectangle given with inverted edges
// describes the same geometry as its sorted form. The EmptyRect sentinel
// stays empty rather than sorting into a near-infinite rectangle.
func (r Rect) Sorted() Rect {
	if r == EmptyRect() {
		return r
	}
	return Rect{
		MinX: min32(r.MinX, r.MaxX),
		MinY: min32(r.MinY, r.MaxY),
		MaxX: max32(r.MinX, r.MaxX),
		MaxY: max32(r.MinY, r.MaxY),
	}
}

// Width returns the width of the rectangle, zero if empty.
func (r Rect) Width() float32 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle, zero if empty.
func (r Rect) Height() float32 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Area returns the area of the rectangle, zero if empty.
func (r Rect) Area() float32 {
	if r.IsEmpty() {
		return 0
	}
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest rectangle containing both r and other.
// Empty operands are skipped.
func (r Rect) Union(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Rect{
		MinX: min32(r.MinX, other.MinX),
		MinY: min32(r.MinY, other.MinY),
		MaxX: max32(r.MaxX, other.MaxX),
		MaxY: max32(r.MaxY, other.MaxY),
	}
}

// UnionPoint expands the rectangle to include the point.
func (r Rect) UnionPoint(x, y float32) Rect {
	return Rect{
		MinX: min32(r.MinX, x),
		MinY: min32(r.MinY, y),
		MaxX: max32(r.MaxX, x),
		MaxY: max32(r.MaxY, y),
	}
}

// Intersect returns the overlap of r and other, or an empty rectangle if
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	if r.IsEmpty() || other.IsEmpty() {
		return EmptyRect()
	}
	out := Rect{
		MinX: max32(r.MinX, other.MinX),
		MinY: max32(r.MinY, other.MinY),
		MaxX: min32(r.MaxX, other.MaxX),
		MaxY: min32(r.MaxY, other.MaxY),
	}
	if out.IsEmpty() {
		return EmptyRect()
	}
	return out
}

// Intersects returns true if r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.MinX < other.MaxX && other.MinX < r.MaxX &&
		r.MinY < other.MaxY && other.MinY < r.MaxY
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return !r.IsEmpty() &&
		x >= r.MinX && x < r.MaxX &&
		y >= r.MinY && y < r.MaxY
}

// ContainsRect returns true if other lies entirely within r.
// An empty other is contained by any non-empty rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() {
		return false
	}
	if other.IsEmpty() {
		return true
	}
	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// Expand returns the rectangle outset by dx horizontally and dy
// vertically on each side. Negative values inset.
func (r Rect) Expand(dx, dy float32) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		MinX: r.MinX - dx,
		MinY: r.MinY - dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}

// RoundOut returns the smallest integer-aligned rectangle containing r.
// Anti-aliased intersect clips use this to avoid cutting partially
// covered edge pixels.
func (r Rect) RoundOut() Rect {
	if r.IsEmpty() {
		return EmptyRect()
	}
	return Rect{
		MinX: floor32(r.MinX),
		MinY: floor32(r.MinY),
		MaxX: ceil32(r.MaxX),
		MaxY: ceil32(r.MaxY),
	}
}

// RoundIn returns the largest integer-aligned rectangle contained by r.
// Anti-aliased difference clips use this so that partially covered edge
// pixels stay drawable.
func (r Rect) RoundIn() Rect {
	if r.IsEmpty() {
		return EmptyRect()
	}
	return Rect{
		MinX: ceil32(r.MinX),
		MinY: ceil32(r.MinY),
		MaxX: floor32(r.MaxX),
		MaxY: floor32(r.MaxY),
	}
}

// maxCullRect is the conservative "everything is visible" sentinel used
// when a cull rectangle cannot be computed (perspective transforms).
func maxCullRect() Rect {
	const h = 1e9
	return Rect{MinX: -h, MinY: -h, MaxX: h, MaxY: h}
}
