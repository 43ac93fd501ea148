package displaylist

// matrixClipState is one saved frame of transform and clip state.
type matrixClipState struct {
	matrix Matrix
	cull   Rect // device-space clip bounds, conservative
}

// MatrixClipTracker tracks the current transform matrix and a
// conservative device-space clip rectangle through a sequence of
// transform, clip, and save/restore operations. It mirrors the state a
// rendering backend would hold so recorded content can be measured and
// culled without touching pixels.
type MatrixClipTracker struct {
	current matrixClipState
	stack   []matrixClipState
}

// NewMatrixClipTracker returns a tracker whose clip starts at cull and
// whose transform starts at matrix.
func NewMatrixClipTracker(cull Rect, matrix Matrix) *MatrixClipTracker {
	return &MatrixClipTracker{
		current: matrixClipState{matrix: matrix, cull: cull.Sorted()},
	}
}

// Save pushes the current transform and clip.
func (t *MatrixClipTracker) Save() {
	t.stack = append(t.stack, t.current)
}

// Restore pops to the most recently saved transform and clip. Restoring
// past the bottom of the stack is a no-op.
func (t *MatrixClipTracker) Restore() {
	if n := len(t.stack); n > 0 {
		t.current = t.stack[n-1]
		t.stack = t.stack[:n-1]
	}
}

// SaveCount reports how many saved frames are on the stack.
func (t *MatrixClipTracker) SaveCount() int {
	return len(t.stack)
}

// Matrix returns the current transform.
func (t *MatrixClipTracker) Matrix() Matrix {
	return t.current.matrix
}

// Translate concatenates a translation.
func (t *MatrixClipTracker) Translate(tx, ty float32) {
	t.current.matrix = t.current.matrix.Concat(TranslateMatrix(tx, ty))
}

// Scale concatenates a scale.
func (t *MatrixClipTracker) Scale(sx, sy float32) {
	t.current.matrix = t.current.matrix.Concat(ScaleMatrix(sx, sy))
}

// Rotate concatenates a clockwise rotation in degrees.
func (t *MatrixClipTracker) Rotate(degrees float32) {
	t.current.matrix = t.current.matrix.Concat(RotateMatrix(degrees))
}

// Skew concatenates a skew.
func (t *MatrixClipTracker) Skew(sx, sy float32) {
	t.current.matrix = t.current.matrix.Concat(SkewMatrix(sx, sy))
}

// Transform2DAffine concatenates a row-major 2x3 affine matrix.
func (t *MatrixClipTracker) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32) {
	t.current.matrix = t.current.matrix.Concat(AffineMatrix(mxx, mxy, mxt, myx, myy, myt))
}

// TransformFullPerspective concatenates a row-major 4x4 matrix.
func (t *MatrixClipTracker) TransformFullPerspective(m [16]float32) {
	t.current.matrix = t.current.matrix.Concat(PerspectiveMatrix(m))
}

// TransformReset replaces the current transform with identity.
func (t *MatrixClipTracker) TransformReset() {
	t.current.matrix = IdentityMatrix()
}

// SetTransform replaces the current transform.
func (t *MatrixClipTracker) SetTransform(m Matrix) {
	t.current.matrix = m
}

// MapRect maps a local-space rect to device space through the current
// transform, conservatively.
func (t *MatrixClipTracker) MapRect(r Rect) Rect {
	return t.current.matrix.MapRect(r)
}

// DeviceCullRect returns the current conservative device-space clip.
func (t *MatrixClipTracker) DeviceCullRect() Rect {
	return t.current.cull
}

// LocalCullRect returns the current clip mapped back into local space.
// When the transform is not invertible it returns an effectively
// unbounded rect, since no local content can be proven clipped out.
func (t *MatrixClipTracker) LocalCullRect() Rect {
	inv, ok := t.current.matrix.Invert()
	if !ok {
		return maxCullRect()
	}
	return inv.MapRect(t.current.cull)
}

// ContentCulled reports whether local-space content bounds can be
// proven to land entirely outside the current clip.
func (t *MatrixClipTracker) ContentCulled(contentBounds Rect) bool {
	if t.current.cull.IsEmpty() {
		return true
	}
	if contentBounds.IsEmpty() {
		return true
	}
	return !t.MapRect(contentBounds).Intersects(t.current.cull)
}

// Coverage predicates. An intersect clip whose shape fully covers the
// current cull cannot restrict any recordable content, so the builder
// elides the clip op entirely.

// RectCoversCull reports whether the local-space rect covers the whole
// device cull under the current transform.
func (t *MatrixClipTracker) RectCoversCull(r Rect) bool {
	local, ok := t.localCullForCoverage()
	return ok && r.Sorted().ContainsRect(local)
}

// OvalCoversCull reports whether the ellipse inscribed in bounds covers
// the whole device cull under the current transform.
func (t *MatrixClipTracker) OvalCoversCull(bounds Rect) bool {
	return t.RoundRectCoversCull(MakeOval(bounds))
}

// RoundRectCoversCull reports whether the rounded shape, corner cutouts
// included, covers the whole device cull under the current transform.
func (t *MatrixClipTracker) RoundRectCoversCull(rr RoundRect) bool {
	local, ok := t.localCullForCoverage()
	return ok && rr.ContainsRect(local)
}

// localCullForCoverage maps the device cull back to local space for the
// coverage predicates. Perspective and non-invertible transforms give
// up: the preimage of the cull is no longer a rectangle there, so
// coverage cannot be proven.
func (t *MatrixClipTracker) localCullForCoverage() (Rect, bool) {
	if t.current.cull.IsEmpty() || t.current.matrix.HasPerspective() {
		return Rect{}, false
	}
	inv, ok := t.current.matrix.Invert()
	if !ok {
		return Rect{}, false
	}
	return inv.MapRect(t.current.cull), true
}

// setCull replaces the tracked device clip. Used when content renders
// into a layer whose output can land outside the surrounding clip.
func (t *MatrixClipTracker) setCull(r Rect) {
	t.current.cull = r
}

// ClipEmpty reports whether the current clip is empty.
func (t *MatrixClipTracker) ClipEmpty() bool {
	return t.current.cull.IsEmpty()
}

// ClipRect narrows or carves the clip by a local-space rect.
func (t *MatrixClipTracker) ClipRect(rect Rect, op ClipOp, aa bool) {
	switch op {
	case ClipIntersect:
		t.intersectDevice(t.deviceClipBounds(rect, aa))
	case ClipDifference:
		t.differenceRect(rect, aa)
	}
}

// ClipRRect narrows or carves the clip by a local-space round rect. A
// difference round rect cannot narrow the tracked bounds, since the
// remaining area surrounds it.
func (t *MatrixClipTracker) ClipRRect(rrect RoundRect, op ClipOp, aa bool) {
	if op != ClipIntersect {
		return
	}
	t.intersectDevice(t.deviceClipBounds(rrect.Rect, aa))
}

// ClipPath narrows or carves the clip by a path's bounds. Difference
// path clips leave the tracked bounds untouched.
func (t *MatrixClipTracker) ClipPath(path *Path, op ClipOp, aa bool) {
	if path == nil {
		return
	}
	ft := path.FillType()
	bounds := path.Bounds()
	if ft.IsInverse() {
		// An inverse fill covers everything outside the path, so it
		// behaves like a difference clip of the path's bounds.
		if op == ClipIntersect {
			op = ClipDifference
		} else {
			op = ClipIntersect
		}
	}
	switch op {
	case ClipIntersect:
		t.intersectDevice(t.deviceClipBounds(bounds, aa))
	case ClipDifference:
		// The fill-type flip above already accounts for inversion, so
		// only the contour geometry matters here.
		if r, ok := path.asRect(); ok {
			t.differenceRect(r, aa)
		}
	}
}

// deviceClipBounds maps local clip bounds to device space and applies
// the anti-aliasing convention: AA intersect clips round out to cover
// every partially-covered pixel, non-AA clips keep exact bounds. Under
// perspective the corner-mapped box is not a reliable superset of the
// clip's image (w may change sign), so the clip cannot narrow the
// tracked cull and an unbounded rect is returned instead.
func (t *MatrixClipTracker) deviceClipBounds(r Rect, aa bool) Rect {
	if t.current.matrix.HasPerspective() {
		return maxCullRect()
	}
	mapped := t.MapRect(r.Sorted())
	if aa {
		return mapped.RoundOut()
	}
	return mapped
}

// intersectDevice narrows the clip to its intersection with a
// device-space rect.
func (t *MatrixClipTracker) intersectDevice(r Rect) {
	t.current.cull = t.current.cull.Intersect(r)
}

// differenceRect carves a local-space rect out of the clip. A single
// rect difference can only narrow the tracked rectangular bounds when
// the carved rect spans the clip across one full axis; otherwise the
// remaining region is non-rectangular and the bounds stay as they are.
func (t *MatrixClipTracker) differenceRect(rect Rect, aa bool) {
	if t.current.matrix.HasPerspective() {
		return
	}
	carved := t.MapRect(rect.Sorted())
	if aa {
		// AA difference keeps only fully-carved pixels out.
		carved = carved.RoundIn()
	}
	if carved.IsEmpty() {
		return
	}
	cull := t.current.cull
	spansX := carved.MinX <= cull.MinX && carved.MaxX >= cull.MaxX
	spansY := carved.MinY <= cull.MinY && carved.MaxY >= cull.MaxY
	if spansX && spansY {
		t.current.cull = EmptyRect()
		return
	}
	if spansX {
		if carved.MinY <= cull.MinY && carved.MaxY > cull.MinY {
			cull.MinY = carved.MaxY
		}
		if carved.MaxY >= cull.MaxY && carved.MinY < cull.MaxY {
			cull.MaxY = carved.MinY
		}
	} else if spansY {
		if carved.MinX <= cull.MinX && carved.MaxX > cull.MinX {
			cull.MinX = carved.MaxX
		}
		if carved.MaxX >= cull.MaxX && carved.MinX < cull.MaxX {
			cull.MaxX = carved.MinX
		}
	}
	if cull.IsEmpty() {
		cull = EmptyRect()
	}
	t.current.cull = cull
}
