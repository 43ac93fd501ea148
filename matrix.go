package displaylist

import "math"

// Matrix is a 4x4 transformation matrix stored in row-major order and
// applied to column vectors (x, y, z, 1):
//
//	| m0  m1  m2  m3  |   | x |
//	| m4  m5  m6  m7  | * | y |
//	| m8  m9  m10 m11 |   | z |
//	| m12 m13 m14 m15 |   | 1 |
//
// Display list content is 2D: unless perspective is explicitly introduced,
// the z row and column stay at their identity values so that the matrix is
// equivalent to a 2D affine transform.
type Matrix struct {
	M [16]float32
}

// IdentityMatrix returns the identity transformation.
func IdentityMatrix() Matrix {
	return Matrix{M: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// TranslateMatrix creates a translation transformation.
func TranslateMatrix(tx, ty float32) Matrix {
	m := IdentityMatrix()
	m.M[3] = tx
	m.M[7] = ty
	return m
}

// ScaleMatrix creates a scaling transformation.
func ScaleMatrix(sx, sy float32) Matrix {
	m := IdentityMatrix()
	m.M[0] = sx
	m.M[5] = sy
	return m
}

// RotateMatrix creates a rotation by the given angle in degrees.
func RotateMatrix(degrees float32) Matrix {
	rad := float64(degrees) * math.Pi / 180
	sin := float32(math.Sin(rad))
	cos := float32(math.Cos(rad))
	m := IdentityMatrix()
	m.M[0] = cos
	m.M[1] = -sin
	m.M[4] = sin
	m.M[5] = cos
	return m
}

// SkewMatrix creates a skew transformation.
func SkewMatrix(sx, sy float32) Matrix {
	m := IdentityMatrix()
	m.M[1] = sx
	m.M[4] = sy
	return m
}

// AffineMatrix creates a matrix from the six coefficients of a 2D affine
// transform:
//
//	x' = mxx*x + mxy*y + mxt
//	y' = myx*x + myy*y + myt
func AffineMatrix(mxx, mxy, mxt, myx, myy, myt float32) Matrix {
	m := IdentityMatrix()
	m.M[0] = mxx
	m.M[1] = mxy
	m.M[3] = mxt
	m.M[4] = myx
	m.M[5] = myy
	m.M[7] = myt
	return m
}

// PerspectiveMatrix creates a matrix from all sixteen entries in row-major
// order.
func PerspectiveMatrix(entries [16]float32) Matrix {
	return Matrix{M: entries}
}

// IsIdentity returns true if this is the identity transformation.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// HasPerspective returns true if the matrix maps 2D points with a
// non-trivial homogeneous divide, i.e. its bottom row differs from
// {0, 0, *, 1} in the x/y entries or the w entry.
func (m Matrix) HasPerspective() bool {
	return m.M[12] != 0 || m.M[13] != 0 || m.M[15] != 1
}

// IsFinite returns true if every entry is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range m.M {
		if !isFinite32(v) {
			return false
		}
	}
	return true
}

// Concat returns m * other, the matrix that applies other first and then m.
// The builder pre-concatenates transform ops onto the current matrix this
// way.
func (m Matrix) Concat(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.M[r*4+k] * other.M[k*4+c]
			}
			out.M[r*4+c] = sum
		}
	}
	return out
}

// MapPoint transforms a point, applying the homogeneous divide when the
// matrix has perspective.
func (m Matrix) MapPoint(p Point) Point {
	x := m.M[0]*p.X + m.M[1]*p.Y + m.M[3]
	y := m.M[4]*p.X + m.M[5]*p.Y + m.M[7]
	if !m.HasPerspective() {
		return Point{X: x, Y: y}
	}
	w := m.M[12]*p.X + m.M[13]*p.Y + m.M[15]
	if w == 0 || isNaN32(w) {
		return Point{X: float32(math.Inf(1)), Y: float32(math.Inf(1))}
	}
	return Point{X: x / w, Y: y / w}
}

// MapRect maps the four corners of the rectangle and returns their
// axis-aligned bounding box. The input is sorted first so inverted
// rectangles map like their canonical form. Degenerate perspective maps
// produce the conservative maximum cull rectangle.
func (m Matrix) MapRect(r Rect) Rect {
	r = r.Sorted()
	if r.HasNaN() {
		return EmptyRect()
	}
	if m.IsIdentity() {
		return r
	}
	corners := [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	out := EmptyRect()
	for _, c := range corners {
		p := m.MapPoint(c)
		if !p.IsFinite() {
			return maxCullRect()
		}
		out = out.UnionPoint(p.X, p.Y)
	}
	// A mapped rect may be degenerate (zero scale); keep it as given so
	// that intersections still empty out naturally.
	return Rect{MinX: out.MinX, MinY: out.MinY, MaxX: out.MaxX, MaxY: out.MaxY}
}

// Invert returns the inverse transformation. It only succeeds for
// non-singular 2D affine matrices; perspective matrices report false and
// callers fall back to conservative behavior.
func (m Matrix) Invert() (Matrix, bool) {
	if m.HasPerspective() {
		return Matrix{}, false
	}
	a, b, tx := m.M[0], m.M[1], m.M[3]
	c, d, ty := m.M[4], m.M[5], m.M[7]
	det := a*d - b*c
	if det == 0 || !isFinite32(det) {
		return Matrix{}, false
	}
	inv := 1 / det
	out := IdentityMatrix()
	out.M[0] = d * inv
	out.M[1] = -b * inv
	out.M[4] = -c * inv
	out.M[5] = a * inv
	out.M[3] = (b*ty - d*tx) * inv
	out.M[7] = (c*tx - a*ty) * inv
	return out, true
}

// affineCoefficients returns the six 2D affine coefficients
// (mxx, mxy, mxt, myx, myy, myt). Only meaningful when HasPerspective is
// false.
func (m Matrix) affineCoefficients() [6]float32 {
	return [6]float32{m.M[0], m.M[1], m.M[3], m.M[4], m.M[5], m.M[7]}
}
