package displaylist

// Dispatcher receives the ops of a DisplayList during replay. Implement
// it to rasterize, re-record, analyze, or serialize a recorded scene.
// Methods are invoked in recorded order; attribute values persist until
// changed, and Save/SaveLayer/Restore pairs are always balanced.
//
// Implementations that only care about a subset of ops can embed one or
// more of the Ignore* adapters to absorb the rest.
type Dispatcher interface {
	AttributeDispatcher
	TransformDispatcher
	ClipDispatcher
	DrawDispatcher

	// Save pushes the full graphics state: attributes, transform, and
	// clip.
	Save()
	// SaveLayer pushes state and redirects subsequent rendering into a
	// new layer. bounds, when non-nil, hints the layer's content extent
	// in the local coordinate space. withPaint indicates the current
	// attributes apply to the layer when it is composited. backdrop,
	// when non-nil, is applied to the captured background before the
	// layer's content renders.
	SaveLayer(bounds *Rect, withPaint bool, backdrop ImageFilter)
	// Restore pops the most recent Save or SaveLayer.
	Restore()
}

// AttributeDispatcher receives paint attribute changes.
type AttributeDispatcher interface {
	SetAntiAlias(aa bool)
	SetDither(dither bool)
	SetInvertColors(invert bool)
	SetColor(color Color)
	SetBlendMode(mode BlendMode)
	SetDrawStyle(style DrawStyle)
	SetStrokeWidth(width float32)
	SetStrokeMiter(limit float32)
	SetStrokeCap(cap LineCap)
	SetStrokeJoin(join LineJoin)
	// SetColorSource installs a color source, or clears it when nil.
	SetColorSource(source ColorSource)
	SetColorFilter(filter ColorFilter)
	SetImageFilter(filter ImageFilter)
	SetMaskFilter(filter MaskFilter)
	SetPathEffect(effect PathEffect)
}

// TransformDispatcher receives transform mutations.
type TransformDispatcher interface {
	Translate(tx, ty float32)
	Scale(sx, sy float32)
	// Rotate rotates about the origin by degrees clockwise.
	Rotate(degrees float32)
	Skew(sx, sy float32)
	// Transform2DAffine concatenates a row-major 2x3 affine matrix.
	Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32)
	// TransformFullPerspective concatenates a row-major 4x4 matrix.
	TransformFullPerspective(m [16]float32)
	// TransformReset replaces the current transform with identity.
	TransformReset()
}

// ClipDispatcher receives clip mutations.
type ClipDispatcher interface {
	ClipRect(rect Rect, op ClipOp, aa bool)
	ClipRRect(rrect RoundRect, op ClipOp, aa bool)
	ClipPath(path *Path, op ClipOp, aa bool)
}

// DrawDispatcher receives draw ops.
type DrawDispatcher interface {
	// DrawPaint fills the current clip with the current attributes.
	DrawPaint()
	// DrawColor fills the current clip with a color and blend mode,
	// ignoring the current attributes.
	DrawColor(color Color, mode BlendMode)
	DrawLine(a, b Point)
	DrawRect(rect Rect)
	DrawOval(bounds Rect)
	DrawCircle(center Point, radius float32)
	DrawRRect(rrect RoundRect)
	// DrawDRRect fills the area between the outer and inner round rects.
	DrawDRRect(outer, inner RoundRect)
	DrawPath(path *Path)
	// DrawArc draws an arc of the ellipse inscribed in oval, starting at
	// start degrees and sweeping sweep degrees. When useCenter is true
	// the arc is closed through the ellipse center as a wedge.
	DrawArc(oval Rect, start, sweep float32, useCenter bool)
	DrawPoints(mode PointMode, points []Point)
	DrawVertices(vertices *Vertices, mode BlendMode)
	DrawImage(image *Image, topLeft Point, sampling SamplingMode)
	DrawImageRect(image *Image, src, dst Rect, sampling SamplingMode)
	// DrawImageNine draws image stretched per the nine-patch division
	// given by center, into dst.
	DrawImageNine(image *Image, center, dst Rect, sampling SamplingMode)
	// DrawAtlas draws sprites from image. texs[i] selects the sprite for
	// transforms[i]; colors, when non-empty, modulate each sprite through
	// mode. cull, when non-nil, bounds the composite output.
	DrawAtlas(image *Image, transforms []RSTransform, texs []Rect, colors []Color, mode BlendMode, sampling SamplingMode, cull *Rect)
	// DrawDisplayList replays a nested list modulated by opacity.
	DrawDisplayList(list *DisplayList, opacity float32)
	DrawTextBlob(blob *TextBlob, x, y float32)
	// DrawShadow draws the shadow cast by an occluder shaped like path,
	// raised elevation logical pixels at the given device pixel ratio.
	DrawShadow(path *Path, color Color, elevation float32, transparentOccluder bool, dpr float32)
}

// IgnoreAttributes absorbs all attribute callbacks. Embed it in a
// Dispatcher that does not track paint state.
type IgnoreAttributes struct{}

func (IgnoreAttributes) SetAntiAlias(bool)          {}
func (IgnoreAttributes) SetDither(bool)             {}
func (IgnoreAttributes) SetInvertColors(bool)       {}
func (IgnoreAttributes) SetColor(Color)             {}
func (IgnoreAttributes) SetBlendMode(BlendMode)     {}
func (IgnoreAttributes) SetDrawStyle(DrawStyle)     {}
func (IgnoreAttributes) SetStrokeWidth(float32)     {}
func (IgnoreAttributes) SetStrokeMiter(float32)     {}
func (IgnoreAttributes) SetStrokeCap(LineCap)       {}
func (IgnoreAttributes) SetStrokeJoin(LineJoin)     {}
func (IgnoreAttributes) SetColorSource(ColorSource) {}
func (IgnoreAttributes) SetColorFilter(ColorFilter) {}
func (IgnoreAttributes) SetImageFilter(ImageFilter) {}
func (IgnoreAttributes) SetMaskFilter(MaskFilter)   {}
func (IgnoreAttributes) SetPathEffect(PathEffect)   {}

// IgnoreTransforms absorbs all transform callbacks.
type IgnoreTransforms struct{}

func (IgnoreTransforms) Translate(tx, ty float32)                               {}
func (IgnoreTransforms) Scale(sx, sy float32)                                   {}
func (IgnoreTransforms) Rotate(degrees float32)                                 {}
func (IgnoreTransforms) Skew(sx, sy float32)                                    {}
func (IgnoreTransforms) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32) {}
func (IgnoreTransforms) TransformFullPerspective(m [16]float32)                 {}
func (IgnoreTransforms) TransformReset()                                        {}

// IgnoreClips absorbs all clip callbacks.
type IgnoreClips struct{}

func (IgnoreClips) ClipRect(Rect, ClipOp, bool)       {}
func (IgnoreClips) ClipRRect(RoundRect, ClipOp, bool) {}
func (IgnoreClips) ClipPath(*Path, ClipOp, bool)      {}

// IgnoreDraws absorbs all draw callbacks.
type IgnoreDraws struct{}

func (IgnoreDraws) DrawPaint()                                     {}
func (IgnoreDraws) DrawColor(Color, BlendMode)                     {}
func (IgnoreDraws) DrawLine(a, b Point)                            {}
func (IgnoreDraws) DrawRect(Rect)                                  {}
func (IgnoreDraws) DrawOval(Rect)                                  {}
func (IgnoreDraws) DrawCircle(Point, float32)                      {}
func (IgnoreDraws) DrawRRect(RoundRect)                            {}
func (IgnoreDraws) DrawDRRect(outer, inner RoundRect)              {}
func (IgnoreDraws) DrawPath(*Path)                                 {}
func (IgnoreDraws) DrawArc(Rect, float32, float32, bool)           {}
func (IgnoreDraws) DrawPoints(PointMode, []Point)                  {}
func (IgnoreDraws) DrawVertices(*Vertices, BlendMode)              {}
func (IgnoreDraws) DrawImage(*Image, Point, SamplingMode)          {}
func (IgnoreDraws) DrawImageRect(*Image, Rect, Rect, SamplingMode) {}
func (IgnoreDraws) DrawImageNine(*Image, Rect, Rect, SamplingMode) {}
func (IgnoreDraws) DrawAtlas(*Image, []RSTransform, []Rect, []Color, BlendMode, SamplingMode, *Rect) {
}
func (IgnoreDraws) DrawDisplayList(*DisplayList, float32)           {}
func (IgnoreDraws) DrawTextBlob(*TextBlob, float32, float32)        {}
func (IgnoreDraws) DrawShadow(*Path, Color, float32, bool, float32) {}
