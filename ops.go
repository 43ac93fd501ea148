package displaylist

import (
	"unsafe"

	"honnef.co/go/safeish"
)

// opKind identifies the type of a recorded op.
type opKind uint16

const (
	// Attribute ops
	opSetAntiAlias opKind = iota
	opSetDither
	opSetInvertColors
	opSetColor
	opSetBlendMode
	opSetDrawStyle
	opSetStrokeWidth
	opSetStrokeMiter
	opSetStrokeCap
	opSetStrokeJoin
	opSetColorSource
	opSetColorFilter
	opSetImageFilter
	opSetMaskFilter
	opSetPathEffect

	// Stack ops
	opSave
	opSaveLayer
	opRestore

	// Transform ops
	opTranslate
	opScale
	opRotate
	opSkew
	opTransform2DAffine
	opTransformFullPerspective
	opTransformReset

	// Clip ops
	opClipRect
	opClipRRect
	opClipPath

	// Draw ops
	opDrawPaint
	opDrawColor
	opDrawLine
	opDrawRect
	opDrawOval
	opDrawCircle
	opDrawRRect
	opDrawDRRect
	opDrawPath
	opDrawArc
	opDrawPoints
	opDrawVertices
	opDrawImage
	opDrawImageRect
	opDrawImageNine
	opDrawAtlas
	opDrawDisplayList
	opDrawTextBlob
	opDrawShadow

	opKindCount
)

// opKindNames maps opKind values to their string representation.
var opKindNames = [opKindCount]string{
	opSetAntiAlias:             "SetAntiAlias",
	opSetDither:                "SetDither",
	opSetInvertColors:          "SetInvertColors",
	opSetColor:                 "SetColor",
	opSetBlendMode:             "SetBlendMode",
	opSetDrawStyle:             "SetDrawStyle",
	opSetStrokeWidth:           "SetStrokeWidth",
	opSetStrokeMiter:           "SetStrokeMiter",
	opSetStrokeCap:             "SetStrokeCap",
	opSetStrokeJoin:            "SetStrokeJoin",
	opSetColorSource:           "SetColorSource",
	opSetColorFilter:           "SetColorFilter",
	opSetImageFilter:           "SetImageFilter",
	opSetMaskFilter:            "SetMaskFilter",
	opSetPathEffect:            "SetPathEffect",
	opSave:                     "Save",
	opSaveLayer:                "SaveLayer",
	opRestore:                  "Restore",
	opTranslate:                "Translate",
	opScale:                    "Scale",
	opRotate:                   "Rotate",
	opSkew:                     "Skew",
	opTransform2DAffine:        "Transform2DAffine",
	opTransformFullPerspective: "TransformFullPerspective",
	opTransformReset:           "TransformReset",
	opClipRect:                 "ClipRect",
	opClipRRect:                "ClipRRect",
	opClipPath:                 "ClipPath",
	opDrawPaint:                "DrawPaint",
	opDrawColor:                "DrawColor",
	opDrawLine:                 "DrawLine",
	opDrawRect:                 "DrawRect",
	opDrawOval:                 "DrawOval",
	opDrawCircle:               "DrawCircle",
	opDrawRRect:                "DrawRRect",
	opDrawDRRect:               "DrawDRRect",
	opDrawPath:                 "DrawPath",
	opDrawArc:                  "DrawArc",
	opDrawPoints:               "DrawPoints",
	opDrawVertices:             "DrawVertices",
	opDrawImage:                "DrawImage",
	opDrawImageRect:            "DrawImageRect",
	opDrawImageNine:            "DrawImageNine",
	opDrawAtlas:                "DrawAtlas",
	opDrawDisplayList:          "DrawDisplayList",
	opDrawTextBlob:             "DrawTextBlob",
	opDrawShadow:               "DrawShadow",
}

// String returns a human-readable name for the op kind.
func (k opKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return unknownStr
}

// isAttribute returns true for purely state-setting attribute ops, which
// are excluded from the op count.
func (k opKind) isAttribute() bool {
	return k <= opSetPathEffect
}

// isDraw returns true for ops that produce pixels.
func (k opKind) isDraw() bool {
	return k >= opDrawPaint
}

// ClipOp selects how a clip shape combines with the current clip.
type ClipOp uint8

const (
	// ClipIntersect keeps the area inside the shape.
	ClipIntersect ClipOp = iota
	// ClipDifference keeps the area outside the shape.
	ClipDifference
)

// String returns a human-readable name for the clip op.
func (op ClipOp) String() string {
	switch op {
	case ClipIntersect:
		return "Intersect"
	case ClipDifference:
		return "Difference"
	default:
		return unknownStr
	}
}

// PointMode selects how DrawPoints interprets its point array.
type PointMode uint8

const (
	// PointModePoints draws each point individually.
	PointModePoints PointMode = iota
	// PointModeLines draws each pair of points as a line segment.
	PointModeLines
	// PointModePolygon draws an open polyline through the points.
	PointModePolygon
)

// String returns a human-readable name for the point mode.
func (m PointMode) String() string {
	switch m {
	case PointModePoints:
		return "Points"
	case PointModeLines:
		return "Lines"
	case PointModePolygon:
		return "Polygon"
	default:
		return unknownStr
	}
}

// opAlign is the alignment of op records in the arena. Every record size
// is rounded up to this, so a record offset is always aligned.
const opAlign = 8

// opHeaderSize is the fixed {kind, size} prefix of every record.
const opHeaderSize = 8

// opHeader is the fixed prefix of every record in the op arena.
type opHeader struct {
	kind opKind
	_    uint16
	size uint32 // total record size including header and tail, multiple of opAlign
}

// noRef marks a ref slot as "no object" (nil attribute values).
const noRef = ^uint32(0)

// Payload layouts. All fields are 4-byte scalars so the structs pack
// identically on every supported platform; records are reinterpreted
// in-place from the byte arena.

type flagOp struct {
	value uint32 // 0 or 1
}

type colorOp struct {
	color Color
}

type enumOp struct {
	value uint32
}

type scalarOp struct {
	value float32
}

type refOp struct {
	ref uint32 // index into refs, or noRef
}

// saveLayerOp flags.
const (
	saveLayerHasBounds uint32 = 1 << iota
	saveLayerWithPaint
	saveLayerHasBackdrop
)

type saveLayerOp struct {
	flags       uint32
	backdropRef uint32 // index into refs, or noRef
	bounds      Rect
}

type translateOp struct {
	tx, ty float32
}

type scaleOp struct {
	sx, sy float32
}

type rotateOp struct {
	degrees float32
}

type skewOp struct {
	sx, sy float32
}

type affineOp struct {
	coeffs [6]float32
}

type perspectiveOp struct {
	entries [16]float32
}

type clipRectOp struct {
	rect Rect
	op   uint32
	aa   uint32
}

type clipRRectOp struct {
	rrect RoundRect
	op    uint32
	aa    uint32
}

type clipPathOp struct {
	ref uint32
	op  uint32
	aa  uint32
}

type drawColorOp struct {
	color Color
	mode  uint32
}

type drawLineOp struct {
	a, b Point
}

type drawRectOp struct {
	rect Rect
}

type drawCircleOp struct {
	center Point
	radius float32
}

type drawRRectOp struct {
	rrect RoundRect
}

type drawDRRectOp struct {
	outer RoundRect
	inner RoundRect
}

type drawArcOp struct {
	oval      Rect
	start     float32
	sweep     float32
	useCenter uint32
}

// drawPointsOp is followed by count Points inline in the record tail.
type drawPointsOp struct {
	mode  uint32
	count uint32
}

type drawVerticesOp struct {
	ref  uint32
	mode uint32 // BlendMode
}

type drawImageOp struct {
	ref      uint32
	sampling uint32
	x, y     float32
}

type drawImageRectOp struct {
	ref      uint32
	sampling uint32
	src      Rect
	dst      Rect
}

type drawImageNineOp struct {
	ref      uint32
	sampling uint32
	center   Rect
	dst      Rect
}

// drawAtlasOp is followed inline by count RSTransforms, count tex Rects,
// and, if hasColors is set, count Colors.
type drawAtlasOp struct {
	ref       uint32
	count     uint32
	blend     uint32
	sampling  uint32
	hasColors uint32
	hasCull   uint32
	cull      Rect
}

type drawDisplayListOp struct {
	ref     uint32
	opacity float32
}

type drawTextBlobOp struct {
	ref  uint32
	x, y float32
}

type drawShadowOp struct {
	ref                 uint32
	color               Color
	elevation           float32
	dpr                 float32
	transparentOccluder uint32
}

// opsBuffer is the growing byte arena ops are recorded into, plus the
// side array of heap references the packed records point at.
type opsBuffer struct {
	data []byte
	refs []any
}

func (b *opsBuffer) reset() {
	b.data = b.data[:0]
	for i := range b.refs {
		b.refs[i] = nil
	}
	b.refs = b.refs[:0]
}

// addRef stores a heap reference and returns its slot index.
func (b *opsBuffer) addRef(v any) uint32 {
	b.refs = append(b.refs, v)
	return uint32(len(b.refs) - 1)
}

func alignUp(n int) int {
	return (n + opAlign - 1) &^ (opAlign - 1)
}

// allocOp appends a record with a zeroed payload of type T and no tail,
// returning the payload for the caller to fill in. The returned pointer
// is only valid until the next allocation.
func allocOp[T any](b *opsBuffer, kind opKind) *T {
	p, _ := allocOpTail[T](b, kind, 0)
	return p
}

// allocOpTail appends a record with a payload of type T followed by a
// tail of the given byte length. It returns the payload and the tail
// bytes; both are zeroed and only valid until the next allocation.
func allocOpTail[T any](b *opsBuffer, kind opKind, tail int) (*T, []byte) {
	payload := int(unsafe.Sizeof(*new(T)))
	size := alignUp(opHeaderSize + payload + tail)
	off := len(b.data)
	b.data = append(b.data, make([]byte, size)...)
	hdr := safeish.Cast[*opHeader](&b.data[off])
	hdr.kind = kind
	hdr.size = uint32(size)
	tailOff := off + opHeaderSize + payload
	return safeish.Cast[*T](&b.data[off+opHeaderSize]), b.data[tailOff : tailOff+tail]
}

// allocMarker appends a payload-free record (Save, Restore, DrawPaint,
// TransformReset).
func allocMarker(b *opsBuffer, kind opKind) {
	off := len(b.data)
	b.data = append(b.data, make([]byte, opHeaderSize)...)
	hdr := safeish.Cast[*opHeader](&b.data[off])
	hdr.kind = kind
	hdr.size = opHeaderSize
}

// opRecord is one decoded record view into an op arena.
type opRecord struct {
	kind opKind
	data []byte // payload plus tail, without the header
}

// payload reinterprets the record payload as type T.
func payload[T any](r opRecord) *T {
	return safeish.Cast[*T](&r.data[0])
}

// tail returns the record's inline tail as a slice of T, starting after
// the payload type P.
func tailSlice[P, T any](r opRecord, count int) []T {
	off := int(unsafe.Sizeof(*new(P)))
	elem := int(unsafe.Sizeof(*new(T)))
	return safeish.SliceCast[[]T](r.data[off : off+count*elem])
}

// atlasTexOffset is the byte offset, within a DrawAtlas record's data,
// of the tex rect array that follows the payload and n transforms.
func atlasTexOffset(n int) int {
	return int(unsafe.Sizeof(drawAtlasOp{})) + n*16
}

// Typed views over raw tail bytes, for writing inline arrays.

func pointBytes(b []byte) []Point             { return safeish.SliceCast[[]Point](b) }
func rectBytes(b []byte) []Rect               { return safeish.SliceCast[[]Rect](b) }
func colorBytes(b []byte) []Color             { return safeish.SliceCast[[]Color](b) }
func rsTransformBytes(b []byte) []RSTransform { return safeish.SliceCast[[]RSTransform](b) }

// opIter walks the records of an op arena in recorded order.
type opIter struct {
	data []byte
	off  int
}

// next returns the next record, or ok == false at the end of the arena.
func (it *opIter) next() (opRecord, bool) {
	if it.off >= len(it.data) {
		return opRecord{}, false
	}
	hdr := safeish.Cast[*opHeader](&it.data[it.off])
	rec := opRecord{
		kind: hdr.kind,
		data: it.data[it.off+opHeaderSize : it.off+int(hdr.size)],
	}
	it.off += int(hdr.size)
	return rec, true
}
