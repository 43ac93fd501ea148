package displaylist

import "math"

// Point represents a 2D point or vector in device-independent coordinates.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return sqrt32(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// IsFinite returns true if both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite32(p.X) && isFinite32(p.Y)
}

// RSTransform is a compressed rotation+scale+translation transform used by
// DrawAtlas. It maps the sprite rectangle through:
//
//	x' = SCos*x - SSin*y + TX
//	y' = SSin*x + SCos*y + TY
type RSTransform struct {
	SCos, SSin float32
	TX, TY     float32
}

// MapPoint applies the transform to a point.
func (t RSTransform) MapPoint(p Point) Point {
	return Point{
		X: t.SCos*p.X - t.SSin*p.Y + t.TX,
		Y: t.SSin*p.X + t.SCos*p.Y + t.TY,
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func abs32(a float32) float32 {
	return float32(math.Abs(float64(a)))
}

func sqrt32(a float32) float32 {
	return float32(math.Sqrt(float64(a)))
}

func isFinite32(a float32) bool {
	return !math.IsNaN(float64(a)) && !math.IsInf(float64(a), 0)
}

func isNaN32(a float32) bool {
	return math.IsNaN(float64(a))
}

func floor32(a float32) float32 {
	return float32(math.Floor(float64(a)))
}

func ceil32(a float32) float32 {
	return float32(math.Ceil(float64(a)))
}
