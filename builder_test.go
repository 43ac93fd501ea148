package displaylist

import (
	"fmt"
	"strings"
	"testing"
)

func eventNames(dl *DisplayList) []string {
	var c captureDispatcher
	dl.Dispatch(&c)
	names := make([]string, len(c.events))
	for i, e := range c.events {
		if idx := strings.IndexByte(e, '('); idx >= 0 {
			names[i] = e[:idx]
		} else {
			names[i] = e
		}
	}
	return names
}

func TestBuilderEmptyBuild(t *testing.T) {
	dl := NewBuilder(MakeRect(0, 0, 100, 100)).Build()
	if !dl.IsEmpty() {
		t.Error("empty build should produce an empty list")
	}
	if dl.OpCount() != 0 {
		t.Errorf("OpCount() = %d, want 0", dl.OpCount())
	}
	if !dl.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %+v, want empty", dl.Bounds())
	}
}

func TestBuilderUnconsumedAttributesLeaveNoTrace(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetColor(ARGB(255, 10, 20, 30))
	b.SetStrokeWidth(7)
	b.SetAntiAlias(true)
	dl := b.Build()
	if !dl.IsEmpty() {
		t.Errorf("unconsumed attributes recorded %d bytes", dl.ByteCount())
	}
}

func TestBuilderAttributeDeduplication(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetColor(ARGB(255, 10, 20, 30))
	b.DrawRect(MakeRect(0, 0, 10, 10))
	b.SetColor(ARGB(255, 10, 20, 30)) // same value again
	b.DrawRect(MakeRect(20, 0, 30, 10))
	names := eventNames(b.Build())
	want := []string{"SetColor", "DrawRect", "DrawRect"}
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBuilderAttributeRevertElided(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	def := defaultPaintState()
	b.SetColor(ARGB(255, 200, 0, 0))
	b.SetColor(def.color) // back to the default before any draw
	b.DrawRect(MakeRect(0, 0, 10, 10))
	names := eventNames(b.Build())
	if len(names) != 1 || names[0] != "DrawRect" {
		t.Errorf("events = %v, want [DrawRect]", names)
	}
}

func TestBuilderNoOpTransformsElided(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.Translate(0, 0)
	b.Scale(1, 1)
	b.Rotate(0)
	b.Rotate(360)
	b.Rotate(-720)
	b.Skew(0, 0)
	b.Transform2DAffine(1, 0, 0, 0, 1, 0)
	dl := b.Build()
	if !dl.IsEmpty() {
		t.Errorf("identity transforms recorded %d ops", dl.OpCount())
	}
}

func TestBuilderRRectNormalization(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRRect(MakeRoundRectXY(MakeRect(10, 10, 50, 50), 0, 0))
	b.DrawRRect(MakeRoundRectXY(MakeRect(10, 10, 50, 50), 20, 20))
	b.DrawRRect(MakeRoundRectXY(MakeRect(10, 10, 50, 50), 8, 8))
	names := eventNames(b.Build())
	want := []string{"DrawRect", "DrawOval", "DrawRRect"}
	for i := range want {
		if i >= len(names) || names[i] != want[i] {
			t.Fatalf("events = %v, want %v", names, want)
		}
	}
}

func TestBuilderClipRRectNormalization(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.ClipRRect(MakeRoundRectXY(MakeRect(10, 10, 50, 50), 0, 0), ClipIntersect, false)
	names := eventNames(b.Build())
	if len(names) != 1 || names[0] != "ClipRect" {
		t.Errorf("events = %v, want [ClipRect]", names)
	}
}

func TestBuilderPointPairBecomesLine(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawPoints(PointModeLines, []Point{Pt(0, 0), Pt(10, 10)})
	b.DrawPoints(PointModeLines, []Point{Pt(0, 0), Pt(10, 10), Pt(20, 20), Pt(30, 30)})
	names := eventNames(b.Build())
	want := []string{"DrawLine", "DrawPoints"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("events = %v, want %v", names, want)
	}
}

func TestBuilderOpCountExcludesAttributes(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.SetColor(ARGB(255, 9, 9, 9))
	b.ClipRect(MakeRect(0, 0, 400, 400), ClipIntersect, false)
	b.Save()
	b.Translate(10, 10)
	b.DrawRect(MakeRect(0, 0, 50, 50))
	b.Restore()
	dl := b.Build()
	// clip, save, translate, draw, restore; SetColor is state only.
	if dl.OpCount() != 5 {
		t.Errorf("OpCount() = %d, want 5", dl.OpCount())
	}
}

func TestBuilderBoundsSimple(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.DrawRect(MakeRect(10, 20, 30, 40))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(10, 20, 30, 40) {
		t.Errorf("Bounds() = %+v, want the drawn rect", got)
	}
}

func TestBuilderBoundsClippedToClip(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.ClipRect(MakeRect(0, 0, 25, 25), ClipIntersect, false)
	b.DrawRect(MakeRect(10, 10, 100, 100))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(10, 10, 25, 25) {
		t.Errorf("Bounds() = %+v, want (10,10,25,25)", got)
	}
}

func TestBuilderBoundsTransformed(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.Translate(100, 100)
	b.Scale(2, 2)
	b.DrawRect(MakeRect(0, 0, 10, 10))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(100, 100, 120, 120) {
		t.Errorf("Bounds() = %+v, want (100,100,120,120)", got)
	}
}

func TestBuilderBoundsStrokePadding(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.SetDrawStyle(StyleStroke)
	b.SetStrokeWidth(4)
	// Default join is miter with limit 4: joined geometry pads by
	// half-width times the limit.
	b.DrawRect(MakeRect(10, 10, 20, 20))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(2, 2, 28, 28) {
		t.Errorf("stroked Bounds() = %+v, want (2,2,28,28)", got)
	}
}

func TestBuilderBoundsHairlineLine(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.DrawLine(Pt(10, 10), Pt(20, 10))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(9.5, 9.5, 20.5, 10.5) {
		t.Errorf("hairline Bounds() = %+v, want (9.5,9.5,20.5,10.5)", got)
	}
}

func TestBuilderBoundsMaskBlur(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.SetMaskFilter(&BlurMaskFilter{Style: BlurStyleNormal, Sigma: 2})
	b.DrawRect(MakeRect(100, 100, 110, 110))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(94, 94, 116, 116) {
		t.Errorf("mask blurred Bounds() = %+v, want three sigmas of outset", got)
	}
}

func TestBuilderBoundsFilteredSaveLayer(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.ClipRect(MakeRect(100, 100, 200, 200), ClipIntersect, false)
	b.SetImageFilter(&BlurImageFilter{SigmaX: 10, SigmaY: 10})
	b.SaveLayer(nil, true, nil)
	b.SetImageFilter(nil)
	// Content partly outside the clip: the layer blur can smear it
	// back in, so accumulation inside the layer ignores the clip and
	// the filter outset applies when the layer pops.
	b.DrawRect(MakeRect(50, 140, 101, 160))
	b.Restore()
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(100, 110, 131, 190) {
		t.Errorf("filtered layer Bounds() = %+v, want (100,110,131,190)", got)
	}
	if dl.OpCount() != 4 {
		t.Errorf("OpCount() = %d, want 4", dl.OpCount())
	}
}

func TestBuilderBoundsFilteredSaveLayerFullyClipped(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.ClipRect(MakeRect(100, 100, 200, 200), ClipIntersect, false)
	b.SetImageFilter(&BlurImageFilter{SigmaX: 3, SigmaY: 3})
	b.SaveLayer(nil, true, nil)
	b.SetImageFilter(nil)
	// Content 9 units of outset away from the clip edge stays outside.
	b.DrawRect(MakeRect(50, 140, 90, 160))
	b.Restore()
	dl := b.Build()
	// The blurred content reaches x=99, one unit short of the clip.
	if !dl.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %+v, want empty", dl.Bounds())
	}
}

func TestBuilderBackdropLayerCoversClip(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.ClipRect(MakeRect(100, 100, 200, 200), ClipIntersect, false)
	b.SaveLayer(nil, false, &BlurImageFilter{SigmaX: 5, SigmaY: 5})
	b.Restore()
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(100, 100, 200, 200) {
		t.Errorf("backdrop layer Bounds() = %+v, want the clip", got)
	}
}

func TestBuilderDrawPaintCoversClip(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 300, 300))
	b.ClipRect(MakeRect(50, 50, 100, 100), ClipIntersect, false)
	b.DrawPaint()
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(50, 50, 100, 100) {
		t.Errorf("DrawPaint Bounds() = %+v, want the clip", got)
	}
}

func TestBuilderDrawSuppressedByEmptyClip(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.ClipRect(MakeRect(200, 200, 300, 300), ClipIntersect, false)
	b.DrawRect(MakeRect(0, 0, 50, 50))
	b.DrawPaint()
	dl := b.Build()
	// Only the clip survives.
	if dl.OpCount() != 1 {
		t.Errorf("OpCount() = %d, want 1", dl.OpCount())
	}
	names := eventNames(dl)
	if len(names) != 1 || names[0] != "ClipRect" {
		t.Errorf("events = %v, want [ClipRect]", names)
	}
}

func TestBuilderDrawOutsideCullElided(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRect(MakeRect(200, 200, 300, 300))
	dl := b.Build()
	if !dl.IsEmpty() {
		t.Error("draw entirely outside the cull rect should not record")
	}
}

func TestBuilderUnbalancedSavesClosedOnBuild(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.Save()
	b.Translate(10, 10)
	b.DrawRect(MakeRect(0, 0, 10, 10))
	dl := b.Build()
	names := eventNames(dl)
	if names[len(names)-1] != "Restore" {
		t.Errorf("events = %v, want trailing Restore", names)
	}
}

func TestBuilderResetAfterBuild(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetColor(ARGB(255, 1, 2, 3))
	b.Translate(5, 5)
	b.DrawRect(MakeRect(0, 0, 10, 10))
	first := b.Build()
	second := b.Build()
	if first.IsEmpty() {
		t.Error("first build should hold the recording")
	}
	if !second.IsEmpty() {
		t.Error("builder should reset after Build")
	}
}

func TestBuilderDrawColorBypassesAttributes(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetColor(ARGB(255, 200, 0, 0))
	b.DrawColor(ARGB(255, 0, 0, 200), BlendSrcOver)
	names := eventNames(b.Build())
	if len(names) != 1 || names[0] != "DrawColor" {
		t.Errorf("events = %v, want [DrawColor]", names)
	}
}

func TestGroupOpacityDisjointDraws(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRect(MakeRect(0, 0, 10, 10))
	b.DrawRect(MakeRect(20, 0, 30, 10))
	if !b.Build().CanApplyGroupOpacity() {
		t.Error("disjoint srcOver draws should support group opacity")
	}
}

func TestGroupOpacityOverlappingDraws(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRect(MakeRect(0, 0, 10, 10))
	b.DrawRect(MakeRect(5, 5, 15, 15))
	if b.Build().CanApplyGroupOpacity() {
		t.Error("overlapping draws should defeat group opacity")
	}
}

func TestGroupOpacitySingleDraw(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRect(MakeRect(0, 0, 50, 50))
	if !b.Build().CanApplyGroupOpacity() {
		t.Error("a single draw always supports group opacity")
	}
}

func TestGroupOpacityIncompatibleBlend(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetBlendMode(BlendMultiply)
	b.DrawRect(MakeRect(0, 0, 10, 10))
	if b.Build().CanApplyGroupOpacity() {
		t.Error("non-srcOver blending should defeat group opacity")
	}
}

func TestGroupOpacitySaveLayerAbsorbsOverlap(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SaveLayer(nil, false, nil)
	b.DrawRect(MakeRect(0, 0, 10, 10))
	b.DrawRect(MakeRect(5, 5, 15, 15))
	b.Restore()
	if !b.Build().CanApplyGroupOpacity() {
		t.Error("a layer composites atomically; inner overlap should not leak out")
	}
}

func TestGroupOpacityVertices(t *testing.T) {
	v := NewVertices(VertexModeTriangles, []Point{Pt(0, 0), Pt(10, 0), Pt(0, 10)}, nil, nil, nil)
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawVertices(v, BlendSrcOver)
	if b.Build().CanApplyGroupOpacity() {
		t.Error("vertex meshes should defeat group opacity")
	}
}

func TestNestedListCounts(t *testing.T) {
	inner := NewBuilder(MakeRect(0, 0, 100, 100))
	inner.DrawRect(MakeRect(0, 0, 10, 10))
	inner.DrawRect(MakeRect(20, 0, 30, 10))
	inner.DrawRect(MakeRect(40, 0, 50, 10))
	child := inner.Build()
	if child.DeepOpCount() != 3 {
		t.Fatalf("child DeepOpCount() = %d, want 3", child.DeepOpCount())
	}

	outer := NewBuilder(MakeRect(0, 0, 100, 100))
	outer.DrawDisplayList(child, 1)
	parent := outer.Build()
	if parent.OpCount() != 1 {
		t.Errorf("parent OpCount() = %d, want 1", parent.OpCount())
	}
	if parent.DeepOpCount() != 3 {
		t.Errorf("parent DeepOpCount() = %d, want 3", parent.DeepOpCount())
	}
	wantBytes := parent.ByteCount() + child.DeepByteCount()
	if parent.DeepByteCount() != wantBytes {
		t.Errorf("parent DeepByteCount() = %d, want %d", parent.DeepByteCount(), wantBytes)
	}
}

func TestNestedListSkippedWhenInvisible(t *testing.T) {
	inner := NewBuilder(MakeRect(0, 0, 100, 100))
	inner.DrawRect(MakeRect(0, 0, 10, 10))
	child := inner.Build()

	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawDisplayList(child, 0)
	b.DrawDisplayList(nil, 1)
	b.DrawDisplayList(NewBuilder(MakeRect(0, 0, 100, 100)).Build(), 1)
	if !b.Build().IsEmpty() {
		t.Error("invisible or empty nested lists should not record")
	}
}

func TestBuilderRTreeIndexesDraws(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 500, 500))
	b.DrawRect(MakeRect(10, 10, 20, 20))
	b.DrawRect(MakeRect(100, 100, 120, 120))
	dl := b.Build()
	rt := dl.RTree()
	if rt.LeafCount() != 2 {
		t.Fatalf("LeafCount() = %d, want 2", rt.LeafCount())
	}
	if got := rt.Search(MakeRect(0, 0, 50, 50)); len(got) != 1 || got[0] != 0 {
		t.Errorf("Search = %v, want [0]", got)
	}
	if got := rt.Search(MakeRect(0, 0, 150, 150)); len(got) != 2 {
		t.Errorf("Search = %v, want both draws", got)
	}
}

func TestBuilderSaveLayerBoundsHintRoundTrip(t *testing.T) {
	hint := MakeRect(10, 10, 90, 90)
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SaveLayer(&hint, false, nil)
	b.DrawRect(MakeRect(20, 20, 40, 40))
	b.Restore()
	dl := b.Build()

	var c captureDispatcher
	dl.Dispatch(&c)
	if c.events[0] != "SaveLayer(bounds=true,paint=false,backdrop=false)" {
		t.Errorf("first event = %q", c.events[0])
	}
}

func TestBuilderUnboundedLayerColorFilter(t *testing.T) {
	var m [20]float32
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	m[19] = 128 // alpha bias: transparent pixels become visible

	b := NewBuilder(MakeRect(0, 0, 1000, 1000))
	b.ClipRect(MakeRect(100, 100, 200, 200), ClipIntersect, true)
	b.SetColorFilter(&MatrixColorFilter{Matrix: m})
	b.SaveLayer(nil, true, nil)
	b.DrawRect(MakeRect(120, 120, 130, 130))
	b.Restore()
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(100, 100, 200, 200) {
		t.Errorf("Bounds() = %+v, want the full clip", got)
	}
}

func TestBuilderUnboundedLayerBlendClear(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 1000, 1000))
	b.ClipRect(MakeRect(100, 100, 200, 200), ClipIntersect, true)
	b.SetBlendMode(BlendClear)
	b.SaveLayer(nil, true, nil)
	b.DrawRect(MakeRect(120, 120, 130, 130))
	b.Restore()
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(100, 100, 200, 200) {
		t.Errorf("Bounds() = %+v, want the full clip", got)
	}
}

func TestBuilderGroupOpacityColorFilter(t *testing.T) {
	var m [20]float32
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	m[15] = 0.5 // alpha depends on red: opacity cannot commute

	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.SetColorFilter(&MatrixColorFilter{Matrix: m})
	b.DrawRect(MakeRect(0, 0, 10, 10))
	if dl := b.Build(); dl.CanApplyGroupOpacity() {
		t.Error("non-commuting color filter should defeat group opacity")
	}

	b.SetColorFilter(&BlendColorFilter{Color: ARGB(255, 0, 0, 0), Mode: BlendDstIn})
	b.DrawRect(MakeRect(0, 0, 10, 10))
	if dl := b.Build(); !dl.CanApplyGroupOpacity() {
		t.Error("commuting color filter on a single draw stays compatible")
	}
}

func TestBuilderCoveringClipElided(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.ClipRect(MakeRect(-10, -10, 110, 110), ClipIntersect, true)
	b.ClipRRect(MakeRoundRect(MakeRect(-20, -20, 120, 120), 10), ClipIntersect, true)
	b.ClipRRect(MakeOval(MakeRect(-100, -100, 200, 200)), ClipIntersect, true)
	b.DrawRect(MakeRect(10, 10, 50, 50))
	dl := b.Build()
	checkEvents(t, eventNames(dl), []string{"DrawRect"})
	if dl.OpCount() != 1 {
		t.Errorf("OpCount() = %d, want 1", dl.OpCount())
	}
}

func TestBuilderNonCoveringClipRecorded(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.Translate(50, 0)
	b.ClipRect(MakeRect(-40, 0, 50, 100), ClipIntersect, false)
	b.DrawRect(MakeRect(0, 10, 20, 30))
	dl := b.Build()
	checkEvents(t, eventNames(dl), []string{"Translate", "ClipRect", "DrawRect"})
}

func TestBuilderInvertedRectDrawSorted(t *testing.T) {
	b := NewBuilder(MakeRect(0, 0, 100, 100))
	b.DrawRect(MakeRect(60, 60, 20, 20))
	dl := b.Build()
	if got := dl.Bounds(); got != MakeRect(20, 20, 60, 60) {
		t.Errorf("Bounds() = %+v, want (20,20,60,60)", got)
	}
	var c captureDispatcher
	dl.Dispatch(&c)
	checkEvents(t, c.events, []string{
		fmt.Sprintf("DrawRect(%v)", MakeRect(20, 20, 60, 60)),
	})
}
