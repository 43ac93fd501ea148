package displaylist

import (
	"bytes"
	"sync/atomic"
	"unsafe"
)

// byteCountHeader is the fixed per-list overhead included in byte
// counts, so even an empty list reports the storage it retains.
const byteCountHeader = int(unsafe.Sizeof(DisplayList{}))

var displayListIDs atomic.Uint64

func nextDisplayListID() uint64 {
	return displayListIDs.Add(1)
}

// DisplayList is an immutable recording of canvas operations, produced
// by a Builder. Lists are cheap to share between goroutines, replay
// any number of times through a Dispatcher, and carry precomputed
// bounds and a spatial index over their draw ops.
type DisplayList struct {
	id   uint64
	data []byte
	refs []any

	cull   Rect
	bounds Rect

	opCount     int
	nestedOps   int
	nestedBytes int

	rtree        *RTree
	groupOpacity bool
}

// UniqueID returns an identifier distinct from any other list built in
// this process.
func (dl *DisplayList) UniqueID() uint64 {
	return dl.id
}

// CullRect returns the cull rect the list was recorded against.
func (dl *DisplayList) CullRect() Rect {
	return dl.cull
}

// Bounds returns the device-space bounds of everything the list draws,
// clipped to the cull rect.
func (dl *DisplayList) Bounds() Rect {
	return dl.bounds
}

// IsEmpty reports whether the list contains no ops.
func (dl *DisplayList) IsEmpty() bool {
	return len(dl.data) == 0
}

// OpCount returns the number of recorded ops, excluding attribute
// changes.
func (dl *DisplayList) OpCount() int {
	return dl.opCount
}

// DeepOpCount returns the op count with every nested list's ops
// counted in place of its DrawDisplayList op.
func (dl *DisplayList) DeepOpCount() int {
	return dl.opCount + dl.nestedOps
}

// ByteCount returns the storage held by this list: the op stream plus
// the fixed list overhead.
func (dl *DisplayList) ByteCount() int {
	return byteCountHeader + len(dl.data)
}

// DeepByteCount returns the storage including every nested list, each
// counted with its own overhead.
func (dl *DisplayList) DeepByteCount() int {
	return byteCountHeader + len(dl.data) + dl.nestedBytes
}

// RTree returns the spatial index over the list's draw ops. Ids are op
// record indices in recording order.
func (dl *DisplayList) RTree() *RTree {
	return dl.rtree
}

// CanApplyGroupOpacity reports whether replaying the list modulated by
// a single opacity value produces the same result as compositing it
// through an opacity layer: true when no two rendering ops overlap and
// every op composites like srcOver.
func (dl *DisplayList) CanApplyGroupOpacity() bool {
	return dl.groupOpacity
}

// Equal reports whether two lists replay identically: the same op
// stream byte for byte and structurally equal referenced objects.
// Lists recorded through different call sequences compare equal when
// the recording optimizations reduce them to the same stream.
func (dl *DisplayList) Equal(other *DisplayList) bool {
	if dl == other {
		return true
	}
	if dl == nil || other == nil {
		return false
	}
	if dl.opCount != other.opCount || len(dl.refs) != len(other.refs) {
		return false
	}
	if !bytes.Equal(dl.data, other.data) {
		return false
	}
	for i := range dl.refs {
		if !refsEqual(dl.refs[i], other.refs[i]) {
			return false
		}
	}
	return true
}

// refsEqual compares two referenced objects structurally, by identity
// for images.
func refsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Path:
		y, ok := b.(*Path)
		return ok && x.Equal(y)
	case *Image:
		y, ok := b.(*Image)
		if !ok {
			return false
		}
		return x == y || (x.Width == y.Width && x.Height == y.Height && x.Opaque == y.Opaque && x.Pixels == y.Pixels)
	case *Vertices:
		y, ok := b.(*Vertices)
		return ok && x.Equal(y)
	case *TextBlob:
		y, ok := b.(*TextBlob)
		return ok && x.Equal(y)
	case *DisplayList:
		y, ok := b.(*DisplayList)
		return ok && x.Equal(y)
	case ColorSource:
		y, ok := b.(ColorSource)
		return ok && x.EqualColorSource(y)
	case ColorFilter:
		y, ok := b.(ColorFilter)
		return ok && x.EqualColorFilter(y)
	case ImageFilter:
		y, ok := b.(ImageFilter)
		return ok && x.EqualImageFilter(y)
	case MaskFilter:
		y, ok := b.(MaskFilter)
		return ok && x.EqualMaskFilter(y)
	case PathEffect:
		y, ok := b.(PathEffect)
		return ok && pathEffectsEqual(x, y)
	}
	return false
}

// ref resolution helpers

func (dl *DisplayList) refAt(i uint32) any {
	if i == noRef {
		return nil
	}
	return dl.refs[i]
}

func (dl *DisplayList) pathAt(i uint32) *Path {
	if v := dl.refAt(i); v != nil {
		return v.(*Path)
	}
	return nil
}

func (dl *DisplayList) imageAt(i uint32) *Image {
	if v := dl.refAt(i); v != nil {
		return v.(*Image)
	}
	return nil
}

func (dl *DisplayList) imageFilterAt(i uint32) ImageFilter {
	if v := dl.refAt(i); v != nil {
		return v.(ImageFilter)
	}
	return nil
}

// Dispatch replays every recorded op through d in recording order.
func (dl *DisplayList) Dispatch(d Dispatcher) {
	dl.dispatch(d, nil)
}

// DispatchCulled replays the list through d, skipping draw ops whose
// device bounds provably miss cull. State ops always dispatch, so the
// receiver sees the same attribute, transform, clip, and layer
// structure it would under a full replay.
func (dl *DisplayList) DispatchCulled(d Dispatcher, cull Rect) {
	cull = cull.Sorted()
	if cull.IsEmpty() {
		return
	}
	if cull.ContainsRect(dl.bounds) {
		dl.dispatch(d, nil)
		return
	}
	keep := dl.rtree.Search(cull)
	dl.dispatch(d, keep)
}

// dispatch walks the op stream. keep, when non-nil, is the ascending
// set of record indices whose draw ops should be replayed.
func (dl *DisplayList) dispatch(d Dispatcher, keep []int) {
	culled := keep != nil
	it := opIter{data: dl.data}
	for index := 0; ; index++ {
		rec, ok := it.next()
		if !ok {
			return
		}
		if culled && rec.kind.isDraw() {
			for len(keep) > 0 && keep[0] < index {
				keep = keep[1:]
			}
			if len(keep) == 0 || keep[0] != index {
				continue
			}
		}
		dl.dispatchRecord(d, rec)
	}
}

func (dl *DisplayList) dispatchRecord(d Dispatcher, rec opRecord) {
	switch rec.kind {
	case opSetAntiAlias:
		d.SetAntiAlias(payload[flagOp](rec).value != 0)
	case opSetDither:
		d.SetDither(payload[flagOp](rec).value != 0)
	case opSetInvertColors:
		d.SetInvertColors(payload[flagOp](rec).value != 0)
	case opSetColor:
		d.SetColor(payload[colorOp](rec).color)
	case opSetBlendMode:
		d.SetBlendMode(BlendMode(payload[enumOp](rec).value))
	case opSetDrawStyle:
		d.SetDrawStyle(DrawStyle(payload[enumOp](rec).value))
	case opSetStrokeWidth:
		d.SetStrokeWidth(payload[scalarOp](rec).value)
	case opSetStrokeMiter:
		d.SetStrokeMiter(payload[scalarOp](rec).value)
	case opSetStrokeCap:
		d.SetStrokeCap(LineCap(payload[enumOp](rec).value))
	case opSetStrokeJoin:
		d.SetStrokeJoin(LineJoin(payload[enumOp](rec).value))
	case opSetColorSource:
		if v := dl.refAt(payload[refOp](rec).ref); v != nil {
			d.SetColorSource(v.(ColorSource))
		} else {
			d.SetColorSource(nil)
		}
	case opSetColorFilter:
		if v := dl.refAt(payload[refOp](rec).ref); v != nil {
			d.SetColorFilter(v.(ColorFilter))
		} else {
			d.SetColorFilter(nil)
		}
	case opSetImageFilter:
		d.SetImageFilter(dl.imageFilterAt(payload[refOp](rec).ref))
	case opSetMaskFilter:
		if v := dl.refAt(payload[refOp](rec).ref); v != nil {
			d.SetMaskFilter(v.(MaskFilter))
		} else {
			d.SetMaskFilter(nil)
		}
	case opSetPathEffect:
		if v := dl.refAt(payload[refOp](rec).ref); v != nil {
			d.SetPathEffect(v.(PathEffect))
		} else {
			d.SetPathEffect(nil)
		}

	case opSave:
		d.Save()
	case opSaveLayer:
		op := payload[saveLayerOp](rec)
		var bounds *Rect
		if op.flags&saveLayerHasBounds != 0 {
			r := op.bounds
			bounds = &r
		}
		d.SaveLayer(bounds, op.flags&saveLayerWithPaint != 0, dl.imageFilterAt(op.backdropRef))
	case opRestore:
		d.Restore()

	case opTranslate:
		op := payload[translateOp](rec)
		d.Translate(op.tx, op.ty)
	case opScale:
		op := payload[scaleOp](rec)
		d.Scale(op.sx, op.sy)
	case opRotate:
		d.Rotate(payload[rotateOp](rec).degrees)
	case opSkew:
		op := payload[skewOp](rec)
		d.Skew(op.sx, op.sy)
	case opTransform2DAffine:
		c := payload[affineOp](rec).coeffs
		d.Transform2DAffine(c[0], c[1], c[2], c[3], c[4], c[5])
	case opTransformFullPerspective:
		d.TransformFullPerspective(payload[perspectiveOp](rec).entries)
	case opTransformReset:
		d.TransformReset()

	case opClipRect:
		op := payload[clipRectOp](rec)
		d.ClipRect(op.rect, ClipOp(op.op), op.aa != 0)
	case opClipRRect:
		op := payload[clipRRectOp](rec)
		d.ClipRRect(op.rrect, ClipOp(op.op), op.aa != 0)
	case opClipPath:
		op := payload[clipPathOp](rec)
		d.ClipPath(dl.pathAt(op.ref), ClipOp(op.op), op.aa != 0)

	case opDrawPaint:
		d.DrawPaint()
	case opDrawColor:
		op := payload[drawColorOp](rec)
		d.DrawColor(op.color, BlendMode(op.mode))
	case opDrawLine:
		op := payload[drawLineOp](rec)
		d.DrawLine(op.a, op.b)
	case opDrawRect:
		d.DrawRect(payload[drawRectOp](rec).rect)
	case opDrawOval:
		d.DrawOval(payload[drawRectOp](rec).rect)
	case opDrawCircle:
		op := payload[drawCircleOp](rec)
		d.DrawCircle(op.center, op.radius)
	case opDrawRRect:
		d.DrawRRect(payload[drawRRectOp](rec).rrect)
	case opDrawDRRect:
		op := payload[drawDRRectOp](rec)
		d.DrawDRRect(op.outer, op.inner)
	case opDrawPath:
		d.DrawPath(dl.pathAt(payload[refOp](rec).ref))
	case opDrawArc:
		op := payload[drawArcOp](rec)
		d.DrawArc(op.oval, op.start, op.sweep, op.useCenter != 0)
	case opDrawPoints:
		op := payload[drawPointsOp](rec)
		pts := tailSlice[drawPointsOp, Point](rec, int(op.count))
		d.DrawPoints(PointMode(op.mode), pts)
	case opDrawVertices:
		op := payload[drawVerticesOp](rec)
		d.DrawVertices(dl.refAt(op.ref).(*Vertices), BlendMode(op.mode))
	case opDrawImage:
		op := payload[drawImageOp](rec)
		d.DrawImage(dl.imageAt(op.ref), Pt(op.x, op.y), SamplingMode(op.sampling))
	case opDrawImageRect:
		op := payload[drawImageRectOp](rec)
		d.DrawImageRect(dl.imageAt(op.ref), op.src, op.dst, SamplingMode(op.sampling))
	case opDrawImageNine:
		op := payload[drawImageNineOp](rec)
		d.DrawImageNine(dl.imageAt(op.ref), op.center, op.dst, SamplingMode(op.sampling))
	case opDrawAtlas:
		op := payload[drawAtlasOp](rec)
		n := int(op.count)
		xforms := tailSlice[drawAtlasOp, RSTransform](rec, n)
		rest := rec.data[atlasTexOffset(n):]
		texs := rectBytes(rest[:n*16])
		var colors []Color
		if op.hasColors != 0 {
			colors = colorBytes(rest[n*16 : n*16+n*4])
		}
		var cull *Rect
		if op.hasCull != 0 {
			r := op.cull
			cull = &r
		}
		d.DrawAtlas(dl.imageAt(op.ref), xforms, texs, colors, BlendMode(op.blend), SamplingMode(op.sampling), cull)
	case opDrawDisplayList:
		op := payload[drawDisplayListOp](rec)
		d.DrawDisplayList(dl.refAt(op.ref).(*DisplayList), op.opacity)
	case opDrawTextBlob:
		op := payload[drawTextBlobOp](rec)
		d.DrawTextBlob(dl.refAt(op.ref).(*TextBlob), op.x, op.y)
	case opDrawShadow:
		op := payload[drawShadowOp](rec)
		d.DrawShadow(dl.pathAt(op.ref), op.color, op.elevation, op.transparentOccluder != 0, op.dpr)
	}
}
