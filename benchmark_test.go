package displaylist

import "testing"

// nopDispatcher absorbs every callback without recording anything.
type nopDispatcher struct {
	IgnoreAttributes
	IgnoreTransforms
	IgnoreClips
	IgnoreDraws
}

func (nopDispatcher) Save()                              {}
func (nopDispatcher) SaveLayer(*Rect, bool, ImageFilter) {}
func (nopDispatcher) Restore()                           {}

func buildGrid(n int) *DisplayList {
	b := NewBuilder(MakeRect(0, 0, 1000, 1000))
	for i := 0; i < n; i++ {
		x := float32(i%10) * 100
		y := float32(i/10%10) * 100
		b.SetColor(ARGB(255, uint8(i), uint8(i>>8), 0))
		b.DrawRect(MakeRect(x+10, y+10, x+90, y+90))
	}
	return b.Build()
}

func BenchmarkBuilder_DrawRect(b *testing.B) {
	bld := NewBuilder(MakeRect(0, 0, 1000, 1000))
	r := MakeRect(10, 10, 90, 90)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bld.DrawRect(r)
	}
}

func BenchmarkBuilder_AttributeChurn(b *testing.B) {
	bld := NewBuilder(MakeRect(0, 0, 1000, 1000))
	r := MakeRect(10, 10, 90, 90)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bld.SetColor(ARGB(255, uint8(i), 0, 0))
		bld.SetStrokeWidth(float32(i%8) + 1)
		bld.DrawRect(r)
	}
}

func BenchmarkBuild_100Rects(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = buildGrid(100)
	}
}

func BenchmarkDispatch_100Rects(b *testing.B) {
	dl := buildGrid(100)
	var d nopDispatcher

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dl.Dispatch(d)
	}
}

func BenchmarkDispatchCulled_SmallQuery(b *testing.B) {
	dl := buildGrid(100)
	var d nopDispatcher
	query := MakeRect(0, 0, 100, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dl.DispatchCulled(d, query)
	}
}

func BenchmarkRTree_Search(b *testing.B) {
	dl := buildGrid(100)
	rt := dl.RTree()
	query := MakeRect(250, 250, 450, 450)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rt.Search(query)
	}
}
