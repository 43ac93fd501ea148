package displaylist

// Builder records canvas operations into an immutable DisplayList. It
// deduplicates attribute changes, elides no-op state mutations, defers
// save emission until the saved scope actually changes state, and
// measures the device-space bounds of everything drawn.
//
// A Builder is not safe for concurrent use. Build returns the finished
// list and resets the Builder for reuse.
type Builder struct {
	buf     opsBuffer
	cull    Rect
	tracker *MatrixClipTracker

	paint   paintState // requested attribute state
	emitted paintState // attribute state the recorded ops have produced

	saves  []builderSave
	layers []layerInfo

	leaves      []rtreeLeaf
	recordIndex int // index of the next record in the op stream

	opCount     int
	nestedOps   int // extra ops contributed by nested lists
	nestedBytes int // bytes held by nested lists
}

// builderSave is one entry of the save stack. Plain saves stay
// uncommitted, emitting nothing, until a state mutation inside their
// scope forces them into the stream.
type builderSave struct {
	committed bool
	isLayer   bool
	paint     paintState
	emitted   paintState
}

// layerInfo tracks bounds accumulation and group-opacity compatibility
// for one layer. The base layer sits at index 0 and never pops.
type layerInfo struct {
	accum     Rect // device-space bounds of content so far
	savedCull Rect // device clip when the layer began

	filter      ImageFilter // deferred layer filter, applied on restore
	blend       BlendMode   // layer composite mode
	hasBackdrop bool
	unbounded   bool // content escaped any measurable bounds

	opacityCompatible  bool
	paintBlocksOpacity bool // layer paint carries a non-commuting color filter
}

// NewBuilder returns a Builder whose recording is culled to cull. An
// empty cull rect means unculled recording.
func NewBuilder(cull Rect) *Builder {
	b := &Builder{}
	b.init(cull)
	return b
}

func (b *Builder) init(cull Rect) {
	cull = cull.Sorted()
	if cull.IsEmpty() {
		cull = maxCullRect()
	}
	b.buf.reset()
	b.cull = cull
	b.tracker = NewMatrixClipTracker(cull, IdentityMatrix())
	b.paint = defaultPaintState()
	b.emitted = defaultPaintState()
	b.saves = b.saves[:0]
	b.layers = append(b.layers[:0], layerInfo{
		accum:             EmptyRect(),
		savedCull:         cull,
		blend:             BlendSrcOver,
		opacityCompatible: true,
	})
	b.leaves = b.leaves[:0]
	b.recordIndex = 0
	b.opCount = 0
	b.nestedOps = 0
	b.nestedBytes = 0
}

func (b *Builder) currentLayer() *layerInfo {
	return &b.layers[len(b.layers)-1]
}

// inFilteredLayer reports whether any enclosing layer defers a filter,
// in which case content bounds accumulate without clipping so the
// filter outset applied on restore sees the true content extent.
func (b *Builder) inFilteredLayer() bool {
	for i := len(b.layers) - 1; i > 0; i-- {
		if b.layers[i].filter != nil {
			return true
		}
	}
	return false
}

// commitSaves emits the Save op for the innermost save whose scope is
// about to change state. Outer pending saves stay unemitted: the
// committed inner pair brackets the mutation and its Restore undoes
// it, so their scopes remain untouched until a later mutation commits
// them in turn. Saves whose scopes never change state never reach the
// stream, which collapses redundant save nesting to a single pair.
func (b *Builder) commitSaves() {
	if n := len(b.saves); n > 0 && !b.saves[n-1].committed {
		b.saves[n-1].committed = true
		allocMarker(&b.buf, opSave)
		b.recordIndex++
		b.opCount++
	}
}

// Attribute setters. These only update the requested state; ops are
// emitted lazily before the next draw that depends on them, so
// redundant or unconsumed changes cost nothing.

// SetAntiAlias sets whether edges are anti-aliased.
func (b *Builder) SetAntiAlias(aa bool) { b.paint.antiAlias = aa }

// SetDither sets whether gradients are dithered.
func (b *Builder) SetDither(dither bool) { b.paint.dither = dither }

// SetInvertColors sets whether rendered colors are inverted.
func (b *Builder) SetInvertColors(invert bool) { b.paint.invertColors = invert }

// SetColor sets the paint color.
func (b *Builder) SetColor(color Color) { b.paint.color = color }

// SetBlendMode sets the blend mode used by attribute-sensitive draws.
func (b *Builder) SetBlendMode(mode BlendMode) { b.paint.blendMode = mode }

// SetDrawStyle selects filling, stroking, or both.
func (b *Builder) SetDrawStyle(style DrawStyle) { b.paint.drawStyle = style }

// SetStrokeWidth sets the stroke width. A width of 0 draws hairlines.
func (b *Builder) SetStrokeWidth(width float32) { b.paint.strokeWidth = width }

// SetStrokeMiter sets the miter limit for miter joins.
func (b *Builder) SetStrokeMiter(limit float32) { b.paint.strokeMiter = limit }

// SetStrokeCap sets the stroke cap.
func (b *Builder) SetStrokeCap(cap LineCap) { b.paint.strokeCap = cap }

// SetStrokeJoin sets the stroke join.
func (b *Builder) SetStrokeJoin(join LineJoin) { b.paint.strokeJoin = join }

// SetColorSource sets the color source, or clears it when nil.
func (b *Builder) SetColorSource(source ColorSource) { b.paint.colorSource = source }

// SetColorFilter sets the color filter, or clears it when nil.
func (b *Builder) SetColorFilter(filter ColorFilter) { b.paint.colorFilter = filter }

// SetImageFilter sets the image filter, or clears it when nil.
func (b *Builder) SetImageFilter(filter ImageFilter) { b.paint.imageFilter = filter }

// SetMaskFilter sets the mask filter, or clears it when nil.
func (b *Builder) SetMaskFilter(filter MaskFilter) { b.paint.maskFilter = filter }

// SetPathEffect sets the path effect, or clears it when nil.
func (b *Builder) SetPathEffect(effect PathEffect) { b.paint.pathEffect = effect }

// paintDirty reports whether any requested attribute differs from the
// state the recorded ops produce.
func (b *Builder) paintDirty() bool {
	p, e := &b.paint, &b.emitted
	return p.antiAlias != e.antiAlias ||
		p.dither != e.dither ||
		p.invertColors != e.invertColors ||
		p.color != e.color ||
		p.blendMode != e.blendMode ||
		p.drawStyle != e.drawStyle ||
		p.strokeWidth != e.strokeWidth ||
		p.strokeMiter != e.strokeMiter ||
		p.strokeCap != e.strokeCap ||
		p.strokeJoin != e.strokeJoin ||
		!colorSourcesEqual(p.colorSource, e.colorSource) ||
		!colorFiltersEqual(p.colorFilter, e.colorFilter) ||
		!imageFiltersEqual(p.imageFilter, e.imageFilter) ||
		!maskFiltersEqual(p.maskFilter, e.maskFilter) ||
		!pathEffectsEqual(p.pathEffect, e.pathEffect)
}

func (b *Builder) emitFlag(kind opKind, v bool) {
	op := allocOp[flagOp](&b.buf, kind)
	if v {
		op.value = 1
	}
	b.recordIndex++
}

func (b *Builder) emitEnum(kind opKind, v uint32) {
	allocOp[enumOp](&b.buf, kind).value = v
	b.recordIndex++
}

func (b *Builder) emitScalar(kind opKind, v float32) {
	allocOp[scalarOp](&b.buf, kind).value = v
	b.recordIndex++
}

func (b *Builder) emitRef(kind opKind, v any) {
	ref := noRef
	if v != nil {
		ref = b.buf.addRef(v)
	}
	allocOp[refOp](&b.buf, kind).ref = ref
	b.recordIndex++
}

// emitOutstanding flushes requested attribute changes into the stream.
// Called before every attribute-sensitive draw.
func (b *Builder) emitOutstanding() {
	if !b.paintDirty() {
		return
	}
	b.commitSaves()
	p, e := &b.paint, &b.emitted
	if p.antiAlias != e.antiAlias {
		b.emitFlag(opSetAntiAlias, p.antiAlias)
		e.antiAlias = p.antiAlias
	}
	if p.dither != e.dither {
		b.emitFlag(opSetDither, p.dither)
		e.dither = p.dither
	}
	if p.invertColors != e.invertColors {
		b.emitFlag(opSetInvertColors, p.invertColors)
		e.invertColors = p.invertColors
	}
	if p.color != e.color {
		allocOp[colorOp](&b.buf, opSetColor).color = p.color
		b.recordIndex++
		e.color = p.color
	}
	if p.blendMode != e.blendMode {
		b.emitEnum(opSetBlendMode, uint32(p.blendMode))
		e.blendMode = p.blendMode
	}
	if p.drawStyle != e.drawStyle {
		b.emitEnum(opSetDrawStyle, uint32(p.drawStyle))
		e.drawStyle = p.drawStyle
	}
	if p.strokeWidth != e.strokeWidth {
		b.emitScalar(opSetStrokeWidth, p.strokeWidth)
		e.strokeWidth = p.strokeWidth
	}
	if p.strokeMiter != e.strokeMiter {
		b.emitScalar(opSetStrokeMiter, p.strokeMiter)
		e.strokeMiter = p.strokeMiter
	}
	if p.strokeCap != e.strokeCap {
		b.emitEnum(opSetStrokeCap, uint32(p.strokeCap))
		e.strokeCap = p.strokeCap
	}
	if p.strokeJoin != e.strokeJoin {
		b.emitEnum(opSetStrokeJoin, uint32(p.strokeJoin))
		e.strokeJoin = p.strokeJoin
	}
	if !colorSourcesEqual(p.colorSource, e.colorSource) {
		if p.colorSource == nil {
			b.emitRef(opSetColorSource, nil)
		} else {
			b.emitRef(opSetColorSource, p.colorSource)
		}
		e.colorSource = p.colorSource
	}
	if !colorFiltersEqual(p.colorFilter, e.colorFilter) {
		if p.colorFilter == nil {
			b.emitRef(opSetColorFilter, nil)
		} else {
			b.emitRef(opSetColorFilter, p.colorFilter)
		}
		e.colorFilter = p.colorFilter
	}
	if !imageFiltersEqual(p.imageFilter, e.imageFilter) {
		if p.imageFilter == nil {
			b.emitRef(opSetImageFilter, nil)
		} else {
			b.emitRef(opSetImageFilter, p.imageFilter)
		}
		e.imageFilter = p.imageFilter
	}
	if !maskFiltersEqual(p.maskFilter, e.maskFilter) {
		if p.maskFilter == nil {
			b.emitRef(opSetMaskFilter, nil)
		} else {
			b.emitRef(opSetMaskFilter, p.maskFilter)
		}
		e.maskFilter = p.maskFilter
	}
	if !pathEffectsEqual(p.pathEffect, e.pathEffect) {
		if p.pathEffect == nil {
			b.emitRef(opSetPathEffect, nil)
		} else {
			b.emitRef(opSetPathEffect, p.pathEffect)
		}
		e.pathEffect = p.pathEffect
	}
}

// Save pushes the full graphics state. Emission is deferred: a save
// whose scope never changes state leaves no trace in the recording.
func (b *Builder) Save() {
	b.saves = append(b.saves, builderSave{
		paint:   b.paint,
		emitted: b.emitted,
	})
	b.tracker.Save()
}

// SaveLayer pushes state and redirects subsequent draws into a new
// layer composited on Restore. bounds, when non-nil, hints the layer's
// content extent. When withPaint is true the current attributes apply
// to the composite; in particular a paint image filter moves the
// layer's output, so content bounds are measured unclipped and the
// filter outset is applied when the layer pops. backdrop, when
// non-nil, filters the captured background, which makes the layer's
// visible bounds the clip itself.
func (b *Builder) SaveLayer(bounds *Rect, withPaint bool, backdrop ImageFilter) {
	b.commitSaves()
	layer := layerInfo{
		accum:             EmptyRect(),
		savedCull:         b.tracker.DeviceCullRect(),
		blend:             BlendSrcOver,
		hasBackdrop:       backdrop != nil,
		opacityCompatible: true,
	}
	if withPaint {
		b.emitOutstanding()
		layer.blend = b.paint.blendMode
		layer.filter = b.paint.imageFilter
		if blendModifiesTransparentBlack(b.paint.blendMode) ||
			(b.paint.colorFilter != nil && b.paint.colorFilter.ModifiesTransparentBlack()) {
			// The composite can change pixels the layer content never
			// covered, so the layer's effect spans its whole clip.
			layer.unbounded = true
		}
		if b.paint.colorFilter != nil && !b.paint.colorFilter.CanCommuteWithOpacity() {
			layer.paintBlocksOpacity = true
		}
	}

	flags := uint32(0)
	op := allocOp[saveLayerOp](&b.buf, opSaveLayer)
	if bounds != nil {
		flags |= saveLayerHasBounds
		op.bounds = bounds.Sorted()
	}
	if withPaint {
		flags |= saveLayerWithPaint
	}
	op.backdropRef = noRef
	if backdrop != nil {
		flags |= saveLayerHasBackdrop
		op.backdropRef = b.buf.addRef(backdrop)
	}
	op.flags = flags
	b.recordIndex++
	b.opCount++

	b.saves = append(b.saves, builderSave{
		committed: true,
		isLayer:   true,
		paint:     b.paint,
		emitted:   b.emitted,
	})
	b.tracker.Save()
	if layer.filter != nil {
		// Filtered output can land outside the surrounding clip, so
		// content inside records against an unbounded cull.
		b.tracker.setCull(maxCullRect())
	}
	// Draws inside the layer depend on fresh attribute emission only
	// for the attributes the layer resets; state carries over, so the
	// emitted snapshot needs no adjustment here.
	b.layers = append(b.layers, layer)
}

// Restore pops the most recent Save or SaveLayer. Restoring with no
// saves outstanding is a no-op.
func (b *Builder) Restore() {
	n := len(b.saves)
	if n == 0 {
		return
	}
	entry := b.saves[n-1]
	b.saves = b.saves[:n-1]
	b.tracker.Restore()
	b.paint = entry.paint
	b.emitted = entry.emitted

	if entry.isLayer {
		layer := *b.currentLayer()
		b.layers = b.layers[:len(b.layers)-1]
		allocMarker(&b.buf, opRestore)
		b.recordIndex++
		b.opCount++

		bounds := layer.accum
		if layer.hasBackdrop || layer.unbounded {
			bounds = layer.savedCull
		}
		if layer.filter != nil {
			bounds = layer.filter.MapBounds(bounds)
		}
		bounds = bounds.Intersect(layer.savedCull)
		if !bounds.IsEmpty() {
			parent := b.currentLayer()
			compatible := layer.blend == BlendSrcOver && !layer.paintBlocksOpacity
			b.accumulateDevice(parent, bounds, compatible)
		}
		return
	}
	if entry.committed {
		allocMarker(&b.buf, opRestore)
		b.recordIndex++
		b.opCount++
	}
}

// SaveCount reports the number of saves currently outstanding.
func (b *Builder) SaveCount() int {
	return len(b.saves)
}

// Transform ops. Identity mutations are elided entirely.

// Translate concatenates a translation onto the current transform.
func (b *Builder) Translate(tx, ty float32) {
	if tx == 0 && ty == 0 || !isFinite32(tx) || !isFinite32(ty) {
		return
	}
	b.commitSaves()
	b.tracker.Translate(tx, ty)
	op := allocOp[translateOp](&b.buf, opTranslate)
	op.tx, op.ty = tx, ty
	b.recordIndex++
	b.opCount++
}

// Scale concatenates a scale onto the current transform.
func (b *Builder) Scale(sx, sy float32) {
	if sx == 1 && sy == 1 || !isFinite32(sx) || !isFinite32(sy) {
		return
	}
	b.commitSaves()
	b.tracker.Scale(sx, sy)
	op := allocOp[scaleOp](&b.buf, opScale)
	op.sx, op.sy = sx, sy
	b.recordIndex++
	b.opCount++
}

// Rotate concatenates a clockwise rotation in degrees. Whole turns are
// elided.
func (b *Builder) Rotate(degrees float32) {
	if !isFinite32(degrees) {
		return
	}
	if turns := degrees / 360; turns == floor32(turns) {
		return
	}
	b.commitSaves()
	b.tracker.Rotate(degrees)
	allocOp[rotateOp](&b.buf, opRotate).degrees = degrees
	b.recordIndex++
	b.opCount++
}

// Skew concatenates a skew onto the current transform.
func (b *Builder) Skew(sx, sy float32) {
	if sx == 0 && sy == 0 || !isFinite32(sx) || !isFinite32(sy) {
		return
	}
	b.commitSaves()
	b.tracker.Skew(sx, sy)
	op := allocOp[skewOp](&b.buf, opSkew)
	op.sx, op.sy = sx, sy
	b.recordIndex++
	b.opCount++
}

// Transform2DAffine concatenates a row-major 2x3 affine matrix.
func (b *Builder) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32) {
	for _, v := range [6]float32{mxx, mxy, mxt, myx, myy, myt} {
		if !isFinite32(v) {
			return
		}
	}
	if mxx == 1 && mxy == 0 && mxt == 0 && myx == 0 && myy == 1 && myt == 0 {
		return
	}
	b.commitSaves()
	b.tracker.Transform2DAffine(mxx, mxy, mxt, myx, myy, myt)
	allocOp[affineOp](&b.buf, opTransform2DAffine).coeffs = [6]float32{mxx, mxy, mxt, myx, myy, myt}
	b.recordIndex++
	b.opCount++
}

// TransformFullPerspective concatenates a row-major 4x4 matrix.
func (b *Builder) TransformFullPerspective(m [16]float32) {
	for _, v := range m {
		if !isFinite32(v) {
			return
		}
	}
	if PerspectiveMatrix(m) == IdentityMatrix() {
		return
	}
	b.commitSaves()
	b.tracker.TransformFullPerspective(m)
	allocOp[perspectiveOp](&b.buf, opTransformFullPerspective).entries = m
	b.recordIndex++
	b.opCount++
}

// TransformReset replaces the current transform with identity.
func (b *Builder) TransformReset() {
	b.commitSaves()
	b.tracker.TransformReset()
	allocMarker(&b.buf, opTransformReset)
	b.recordIndex++
	b.opCount++
}

// Transform returns the current transform matrix.
func (b *Builder) Transform() Matrix {
	return b.tracker.Matrix()
}

// Clip ops.

// ClipRect narrows or carves the clip by a rect. An intersect clip that
// fully covers the current cull restricts nothing and records no op.
func (b *Builder) ClipRect(rect Rect, op ClipOp, aa bool) {
	rect = rect.Sorted()
	if op == ClipIntersect && b.tracker.RectCoversCull(rect) {
		return
	}
	b.commitSaves()
	b.tracker.ClipRect(rect, op, aa)
	rec := allocOp[clipRectOp](&b.buf, opClipRect)
	rec.rect = rect
	rec.op = uint32(op)
	if aa {
		rec.aa = 1
	}
	b.recordIndex++
	b.opCount++
}

// ClipRRect narrows or carves the clip by a round rect. Degenerate
// round rects record as the simpler shape, and an intersect clip that
// fully covers the current cull records no op.
func (b *Builder) ClipRRect(rrect RoundRect, op ClipOp, aa bool) {
	rrect = rrect.normalized()
	if rrect.IsRect() {
		b.ClipRect(rrect.Rect, op, aa)
		return
	}
	if op == ClipIntersect {
		covers := false
		if rrect.IsOval() {
			covers = b.tracker.OvalCoversCull(rrect.Rect)
		} else {
			covers = b.tracker.RoundRectCoversCull(rrect)
		}
		if covers {
			return
		}
	}
	b.commitSaves()
	b.tracker.ClipRRect(rrect, op, aa)
	rec := allocOp[clipRRectOp](&b.buf, opClipRRect)
	rec.rrect = rrect
	rec.op = uint32(op)
	if aa {
		rec.aa = 1
	}
	b.recordIndex++
	b.opCount++
}

// ClipPath narrows or carves the clip by a path. A rectangular path
// records as a rect clip; inverse fill types flip the clip op.
func (b *Builder) ClipPath(path *Path, op ClipOp, aa bool) {
	if path == nil {
		return
	}
	if r, ok := path.asRect(); ok && !path.FillType().IsInverse() {
		b.ClipRect(r, op, aa)
		return
	}
	b.commitSaves()
	b.tracker.ClipPath(path, op, aa)
	rec := allocOp[clipPathOp](&b.buf, opClipPath)
	rec.ref = b.buf.addRef(path)
	rec.op = uint32(op)
	if aa {
		rec.aa = 1
	}
	b.recordIndex++
	b.opCount++
}

// Bounds accumulation.

// adjustForPaint outsets local-space geometry bounds for the current
// attributes: stroke width (with miter allowance when the geometry has
// joins), mask blur, and image filter, in that order.
func (b *Builder) adjustForPaint(local Rect, stroked, withJoins bool) Rect {
	if stroked && b.paint.drawStyle != StyleFill {
		pad := b.paint.strokeBoundsPad(withJoins)
		local = local.Expand(pad, pad)
	}
	if b.paint.maskFilter != nil {
		pad := b.paint.maskFilter.BoundsPad()
		local = local.Expand(pad, pad)
	}
	if b.paint.imageFilter != nil {
		local = b.paint.imageFilter.MapBounds(local)
	}
	return local
}

// accumulateDevice folds device-space draw bounds into a layer and
// updates its group-opacity compatibility. compatible is whether the op
// itself composites like srcOver; overlap with earlier content defeats
// group opacity regardless.
func (b *Builder) accumulateDevice(layer *layerInfo, device Rect, compatible bool) {
	if device.IsEmpty() {
		return
	}
	if !compatible || device.Intersects(layer.accum) {
		layer.opacityCompatible = false
	}
	layer.accum = layer.accum.Union(device)
}

// recordDrawBounds measures an attribute-sensitive draw: local bounds
// are paint-adjusted, mapped to device space, clipped (unless a
// deferred layer filter needs the unclipped extent), indexed, and
// accumulated. It returns false when the draw provably renders nothing
// and should not be recorded.
func (b *Builder) recordDrawBounds(local Rect, stroked, withJoins bool) bool {
	return b.recordDeviceBounds(b.tracker.MapRect(b.adjustForPaint(local, stroked, withJoins)))
}

func (b *Builder) recordDeviceBounds(device Rect) bool {
	if b.tracker.ClipEmpty() {
		return false
	}
	unclipped := b.inFilteredLayer()
	clipped := device.Intersect(b.tracker.DeviceCullRect())
	if !unclipped && clipped.IsEmpty() {
		return false
	}
	leafBounds := clipped
	if unclipped {
		leafBounds = device
	}
	b.leaves = append(b.leaves, rtreeLeaf{bounds: leafBounds, id: b.recordIndex})
	b.accumulateDevice(b.currentLayer(), leafBounds, b.paintOpacityCompatible())
	return true
}

// paintOpacityCompatible reports whether a draw with the current
// attributes still renders correctly when a single group opacity is
// folded into it: the blend must be srcOver and any color filter must
// commute with alpha modulation.
func (b *Builder) paintOpacityCompatible() bool {
	if b.paint.blendMode != BlendSrcOver {
		return false
	}
	if b.paint.colorFilter != nil && !b.paint.colorFilter.CanCommuteWithOpacity() {
		return false
	}
	return true
}

// recordUnbounded marks the current layer as covering its whole clip,
// for draws with no intrinsic bounds.
func (b *Builder) recordUnbounded(compatible bool) bool {
	if b.tracker.ClipEmpty() {
		return false
	}
	cull := b.tracker.DeviceCullRect()
	layer := b.currentLayer()
	layer.unbounded = true
	b.leaves = append(b.leaves, rtreeLeaf{bounds: cull, id: b.recordIndex})
	b.accumulateDevice(layer, cull, compatible)
	return true
}

// Draw ops.

// DrawPaint fills the current clip with the current attributes.
func (b *Builder) DrawPaint() {
	b.emitOutstanding()
	if !b.recordUnbounded(b.paintOpacityCompatible()) {
		return
	}
	allocMarker(&b.buf, opDrawPaint)
	b.recordIndex++
	b.opCount++
}

// DrawColor fills the current clip with color through mode, ignoring
// the current attributes.
func (b *Builder) DrawColor(color Color, mode BlendMode) {
	if !b.recordUnbounded(mode == BlendSrcOver) {
		return
	}
	op := allocOp[drawColorOp](&b.buf, opDrawColor)
	op.color = color
	op.mode = uint32(mode)
	b.recordIndex++
	b.opCount++
}

// lineBoundsPad is the stroke padding for line-like geometry, which
// strokes regardless of the current draw style.
func (b *Builder) lineBoundsPad(withJoins bool) float32 {
	half := max32(b.paint.strokeWidth, 1) / 2
	if withJoins && b.paint.strokeJoin == LineJoinMiter && b.paint.strokeMiter > 1 {
		return half * b.paint.strokeMiter
	}
	return half
}

// DrawLine draws a stroked line segment from a to b regardless of the
// current draw style.
func (b *Builder) DrawLine(p0, p1 Point) {
	b.emitOutstanding()
	local := MakeRect(p0.X, p0.Y, p1.X, p1.Y).Sorted()
	pad := b.lineBoundsPad(false)
	local = local.Expand(pad, pad)
	if b.paint.maskFilter != nil {
		mpad := b.paint.maskFilter.BoundsPad()
		local = local.Expand(mpad, mpad)
	}
	if b.paint.imageFilter != nil {
		local = b.paint.imageFilter.MapBounds(local)
	}
	if !b.recordDeviceBounds(b.tracker.MapRect(local)) {
		return
	}
	op := allocOp[drawLineOp](&b.buf, opDrawLine)
	op.a, op.b = p0, p1
	b.recordIndex++
	b.opCount++
}

// DrawRect draws a rectangle.
func (b *Builder) DrawRect(rect Rect) {
	b.emitOutstanding()
	rect = rect.Sorted()
	if !b.recordDrawBounds(rect, true, true) {
		return
	}
	allocOp[drawRectOp](&b.buf, opDrawRect).rect = rect
	b.recordIndex++
	b.opCount++
}

// DrawOval draws the ellipse inscribed in bounds.
func (b *Builder) DrawOval(bounds Rect) {
	b.emitOutstanding()
	bounds = bounds.Sorted()
	if !b.recordDrawBounds(bounds, true, false) {
		return
	}
	allocOp[drawRectOp](&b.buf, opDrawOval).rect = bounds
	b.recordIndex++
	b.opCount++
}

// DrawCircle draws a circle.
func (b *Builder) DrawCircle(center Point, radius float32) {
	b.emitOutstanding()
	local := MakeRect(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	if !b.recordDrawBounds(local, true, false) {
		return
	}
	op := allocOp[drawCircleOp](&b.buf, opDrawCircle)
	op.center, op.radius = center, radius
	b.recordIndex++
	b.opCount++
}

// DrawRRect draws a round rect. Degenerate round rects record as the
// simpler shape.
func (b *Builder) DrawRRect(rrect RoundRect) {
	rrect = rrect.normalized()
	if rrect.IsRect() {
		b.DrawRect(rrect.Rect)
		return
	}
	if rrect.IsOval() {
		b.DrawOval(rrect.Rect)
		return
	}
	b.emitOutstanding()
	if !b.recordDrawBounds(rrect.Rect, true, false) {
		return
	}
	allocOp[drawRRectOp](&b.buf, opDrawRRect).rrect = rrect
	b.recordIndex++
	b.opCount++
}

// DrawDRRect fills the area between outer and inner.
func (b *Builder) DrawDRRect(outer, inner RoundRect) {
	b.emitOutstanding()
	outer = outer.normalized()
	inner = inner.normalized()
	if !b.recordDrawBounds(outer.Rect, true, false) {
		return
	}
	op := allocOp[drawDRRectOp](&b.buf, opDrawDRRect)
	op.outer, op.inner = outer, inner
	b.recordIndex++
	b.opCount++
}

// DrawPath draws a path. Paths with inverse fill types cover the whole
// clip.
func (b *Builder) DrawPath(path *Path) {
	if path == nil {
		return
	}
	b.emitOutstanding()
	if path.FillType().IsInverse() {
		if !b.recordUnbounded(b.paintOpacityCompatible()) {
			return
		}
	} else if !b.recordDrawBounds(path.Bounds(), true, true) {
		return
	}
	allocOp[refOp](&b.buf, opDrawPath).ref = b.buf.addRef(path)
	b.recordIndex++
	b.opCount++
}

// DrawArc draws an arc of the ellipse inscribed in oval, starting at
// start degrees and sweeping sweep degrees, as a wedge when useCenter.
func (b *Builder) DrawArc(oval Rect, start, sweep float32, useCenter bool) {
	b.emitOutstanding()
	oval = oval.Sorted()
	if !b.recordDrawBounds(oval, true, useCenter) {
		return
	}
	op := allocOp[drawArcOp](&b.buf, opDrawArc)
	op.oval = oval
	op.start, op.sweep = start, sweep
	if useCenter {
		op.useCenter = 1
	}
	b.recordIndex++
	b.opCount++
}

// DrawPoints draws points, line segments, or a polyline. Two points in
// line mode record as a single line op.
func (b *Builder) DrawPoints(mode PointMode, points []Point) {
	if len(points) == 0 {
		return
	}
	if mode == PointModeLines && len(points) == 2 {
		b.DrawLine(points[0], points[1])
		return
	}
	b.emitOutstanding()
	local := EmptyRect()
	for _, p := range points {
		local = local.UnionPoint(p.X, p.Y)
	}
	pad := b.lineBoundsPad(mode == PointModePolygon)
	local = local.Expand(pad, pad)
	if b.paint.maskFilter != nil {
		mpad := b.paint.maskFilter.BoundsPad()
		local = local.Expand(mpad, mpad)
	}
	if b.paint.imageFilter != nil {
		local = b.paint.imageFilter.MapBounds(local)
	}
	if !b.recordDeviceBounds(b.tracker.MapRect(local)) {
		return
	}
	op, tail := allocOpTail[drawPointsOp](&b.buf, opDrawPoints, len(points)*8)
	op.mode = uint32(mode)
	op.count = uint32(len(points))
	copy(pointBytes(tail), points)
	b.recordIndex++
	b.opCount++
}

// DrawVertices draws a triangle mesh blended with the current color
// source through mode. Vertex meshes can self-overlap, so they always
// defeat group opacity.
func (b *Builder) DrawVertices(vertices *Vertices, mode BlendMode) {
	if vertices == nil || len(vertices.Positions) == 0 {
		return
	}
	b.emitOutstanding()
	device := b.tracker.MapRect(b.adjustForPaint(vertices.Bounds(), false, false))
	if !b.recordDeviceBounds(device) {
		return
	}
	b.currentLayer().opacityCompatible = false
	op := allocOp[drawVerticesOp](&b.buf, opDrawVertices)
	op.ref = b.buf.addRef(vertices)
	op.mode = uint32(mode)
	b.recordIndex++
	b.opCount++
}

// DrawImage draws image with its top-left corner at topLeft.
func (b *Builder) DrawImage(image *Image, topLeft Point, sampling SamplingMode) {
	if image == nil {
		return
	}
	b.emitOutstanding()
	local := MakeRectWH(topLeft.X, topLeft.Y, float32(image.Width), float32(image.Height))
	if !b.recordDrawBounds(local, false, false) {
		return
	}
	op := allocOp[drawImageOp](&b.buf, opDrawImage)
	op.ref = b.buf.addRef(image)
	op.sampling = uint32(sampling)
	op.x, op.y = topLeft.X, topLeft.Y
	b.recordIndex++
	b.opCount++
}

// DrawImageRect draws the src portion of image scaled into dst.
func (b *Builder) DrawImageRect(image *Image, src, dst Rect, sampling SamplingMode) {
	if image == nil {
		return
	}
	b.emitOutstanding()
	dst = dst.Sorted()
	if !b.recordDrawBounds(dst, false, false) {
		return
	}
	op := allocOp[drawImageRectOp](&b.buf, opDrawImageRect)
	op.ref = b.buf.addRef(image)
	op.sampling = uint32(sampling)
	op.src = src.Sorted()
	op.dst = dst
	b.recordIndex++
	b.opCount++
}

// DrawImageNine draws image as a nine-patch with stretchable center
// into dst.
func (b *Builder) DrawImageNine(image *Image, center, dst Rect, sampling SamplingMode) {
	if image == nil {
		return
	}
	b.emitOutstanding()
	dst = dst.Sorted()
	if !b.recordDrawBounds(dst, false, false) {
		return
	}
	op := allocOp[drawImageNineOp](&b.buf, opDrawImageNine)
	op.ref = b.buf.addRef(image)
	op.sampling = uint32(sampling)
	op.center = center.Sorted()
	op.dst = dst
	b.recordIndex++
	b.opCount++
}

// DrawAtlas draws sprites from image. transforms and texs must have
// equal length; colors is empty or the same length and modulates each
// sprite through mode. cull, when non-nil, bounds the whole output.
// Atlas sprites routinely overlap, so the op defeats group opacity.
func (b *Builder) DrawAtlas(image *Image, transforms []RSTransform, texs []Rect, colors []Color, mode BlendMode, sampling SamplingMode, cull *Rect) {
	if image == nil || len(transforms) == 0 || len(transforms) != len(texs) {
		return
	}
	if len(colors) != 0 && len(colors) != len(transforms) {
		return
	}
	b.emitOutstanding()
	local := EmptyRect()
	if cull != nil {
		local = cull.Sorted()
	} else {
		for i, xf := range transforms {
			t := texs[i].Sorted()
			w, h := t.Width(), t.Height()
			for _, c := range [4]Point{{0, 0}, {w, 0}, {0, h}, {w, h}} {
				mapped := xf.MapPoint(c)
				local = local.UnionPoint(mapped.X, mapped.Y)
			}
		}
	}
	if !b.recordDrawBounds(local, false, false) {
		return
	}
	b.currentLayer().opacityCompatible = false

	n := len(transforms)
	tailLen := n*16 + n*16
	if len(colors) != 0 {
		tailLen += alignUp(n * 4)
	}
	op, tail := allocOpTail[drawAtlasOp](&b.buf, opDrawAtlas, tailLen)
	op.ref = b.buf.addRef(image)
	op.count = uint32(n)
	op.blend = uint32(mode)
	op.sampling = uint32(sampling)
	if len(colors) != 0 {
		op.hasColors = 1
	}
	if cull != nil {
		op.hasCull = 1
		op.cull = cull.Sorted()
	}
	copy(rsTransformBytes(tail[:n*16]), transforms)
	copy(rectBytes(tail[n*16:n*32]), texs)
	if len(colors) != 0 {
		copy(colorBytes(tail[n*32:n*32+n*4]), colors)
	}
	b.recordIndex++
	b.opCount++
}

// DrawDisplayList replays a nested list modulated by opacity. Empty
// lists and fully transparent replays record nothing.
func (b *Builder) DrawDisplayList(list *DisplayList, opacity float32) {
	if list == nil || list.OpCount() == 0 {
		return
	}
	if isNaN32(opacity) || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	device := b.tracker.MapRect(list.Bounds())
	if b.tracker.ClipEmpty() {
		return
	}
	unclipped := b.inFilteredLayer()
	clipped := device.Intersect(b.tracker.DeviceCullRect())
	if !unclipped && clipped.IsEmpty() {
		return
	}
	leafBounds := clipped
	if unclipped {
		leafBounds = device
	}
	b.leaves = append(b.leaves, rtreeLeaf{bounds: leafBounds, id: b.recordIndex})
	b.accumulateDevice(b.currentLayer(), leafBounds, list.CanApplyGroupOpacity())

	op := allocOp[drawDisplayListOp](&b.buf, opDrawDisplayList)
	op.ref = b.buf.addRef(list)
	op.opacity = opacity
	b.recordIndex++
	b.opCount++
	b.nestedOps += list.DeepOpCount() - 1
	b.nestedBytes += list.DeepByteCount()
}

// DrawTextBlob draws shaped glyphs with their origin at (x, y).
func (b *Builder) DrawTextBlob(blob *TextBlob, x, y float32) {
	if blob == nil || blob.GlyphCount() == 0 {
		return
	}
	b.emitOutstanding()
	local := blob.Bounds()
	local = MakeRect(local.MinX+x, local.MinY+y, local.MaxX+x, local.MaxY+y)
	if !b.recordDrawBounds(local, true, true) {
		return
	}
	op := allocOp[drawTextBlobOp](&b.buf, opDrawTextBlob)
	op.ref = b.buf.addRef(blob)
	op.x, op.y = x, y
	b.recordIndex++
	b.opCount++
}

// DrawShadow draws the shadow cast by an occluder shaped like path.
// Shadow geometry depends on elevation and light position, so the
// recorded bounds are the path bounds with a spread allowance and are
// intentionally conservative rather than exact.
func (b *Builder) DrawShadow(path *Path, color Color, elevation float32, transparentOccluder bool, dpr float32) {
	if path == nil || path.IsEmpty() {
		return
	}
	spread := shadowSpread(elevation, dpr)
	local := path.Bounds().Expand(spread, spread)
	if !b.recordDeviceBounds(b.tracker.MapRect(local)) {
		return
	}
	op := allocOp[drawShadowOp](&b.buf, opDrawShadow)
	op.ref = b.buf.addRef(path)
	op.color = color
	op.elevation = elevation
	op.dpr = dpr
	if transparentOccluder {
		op.transparentOccluder = 1
	}
	b.recordIndex++
	b.opCount++
}

// Shadow spread model: a fixed overhead light at kShadowLightHeight
// above the plane, offset vertically by kShadowLightRadius, matching
// the classic physical-shadow approximation.
const (
	shadowLightHeight = 600
	shadowLightRadius = 800
)

// shadowSpread returns a conservative outset covering both the umbra
// offset and the penumbra blur for an occluder at elevation.
func shadowSpread(elevation, dpr float32) float32 {
	if elevation <= 0 {
		return 0
	}
	if dpr <= 0 {
		dpr = 1
	}
	occluderZ := elevation * dpr
	if occluderZ >= shadowLightHeight {
		occluderZ = shadowLightHeight - 1
	}
	scale := shadowLightHeight / (shadowLightHeight - occluderZ)
	blur := shadowLightRadius * occluderZ / (shadowLightHeight - occluderZ)
	// Translation of the shadow plus its blur, at the projected scale.
	return (scale-1)*shadowLightRadius + blur
}

// Build finalizes the recording and returns the immutable DisplayList.
// Unbalanced saves are restored first. The Builder resets for reuse.
func (b *Builder) Build() *DisplayList {
	for len(b.saves) > 0 {
		b.Restore()
	}
	base := b.layers[0]
	bounds := base.accum
	if base.unbounded {
		bounds = b.cull
	}
	bounds = bounds.Intersect(b.cull)
	if bounds.IsEmpty() {
		bounds = EmptyRect()
	}

	dl := &DisplayList{
		id:           nextDisplayListID(),
		data:         append([]byte(nil), b.buf.data...),
		refs:         append([]any(nil), b.buf.refs...),
		cull:         b.cull,
		bounds:       bounds,
		opCount:      b.opCount,
		nestedOps:    b.nestedOps,
		nestedBytes:  b.nestedBytes,
		rtree:        newRTree(b.leaves),
		groupOpacity: base.opacityCompatible,
	}
	b.init(b.cull)
	return dl
}
