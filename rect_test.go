package displaylist

import (
	"math"
	"testing"
)

func TestMakeRect(t *testing.T) {
	r := MakeRect(1, 2, 3, 4)
	if r.MinX != 1 || r.MinY != 2 || r.MaxX != 3 || r.MaxY != 4 {
		t.Errorf("MakeRect(1,2,3,4) = %+v", r)
	}
	if r.Width() != 2 || r.Height() != 2 {
		t.Errorf("Width() = %v, Height() = %v, want 2, 2", r.Width(), r.Height())
	}
}

func TestMakeRectWH(t *testing.T) {
	r := MakeRectWH(10, 20, 30, 40)
	want := MakeRect(10, 20, 40, 60)
	if r != want {
		t.Errorf("MakeRectWH(10,20,30,40) = %+v, want %+v", r, want)
	}
}

func TestEmptyRect(t *testing.T) {
	if !EmptyRect().IsEmpty() {
		t.Error("EmptyRect() should be empty")
	}
	if !MakeRect(5, 5, 5, 10).IsEmpty() {
		t.Error("zero-width rect should be empty")
	}
	if !MakeRect(10, 10, 5, 20).IsEmpty() {
		t.Error("inverted rect should be empty")
	}
	if MakeRect(0, 0, 1, 1).IsEmpty() {
		t.Error("unit rect should not be empty")
	}
}

func TestRectNaNIsEmpty(t *testing.T) {
	nan := float32(math.NaN())
	if !MakeRect(0, 0, nan, 10).IsEmpty() {
		t.Error("rect with NaN extent should be empty")
	}
	if !MakeRect(nan, nan, nan, nan).IsEmpty() {
		t.Error("all-NaN rect should be empty")
	}
}

func TestRectSorted(t *testing.T) {
	r := MakeRect(10, 20, 3, 4).Sorted()
	want := MakeRect(3, 4, 10, 20)
	if r != want {
		t.Errorf("Sorted() = %+v, want %+v", r, want)
	}
	r = MakeRect(1, 2, 3, 4)
	if r.Sorted() != r {
		t.Errorf("Sorted() changed an already sorted rect: %+v", r.Sorted())
	}
}

func TestRectUnion(t *testing.T) {
	a := MakeRect(0, 0, 10, 10)
	b := MakeRect(5, 5, 20, 20)
	want := MakeRect(0, 0, 20, 20)
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(EmptyRect()); got != a {
		t.Errorf("union with empty = %+v, want %+v", got, a)
	}
	if got := EmptyRect().Union(b); got != b {
		t.Errorf("empty union rect = %+v, want %+v", got, b)
	}
}

func TestRectIntersect(t *testing.T) {
	a := MakeRect(0, 0, 10, 10)
	b := MakeRect(5, 5, 20, 20)
	want := MakeRect(5, 5, 10, 10)
	if got := a.Intersect(b); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	c := MakeRect(20, 20, 30, 30)
	if got := a.Intersect(c); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
}

func TestRectIntersects(t *testing.T) {
	a := MakeRect(0, 0, 10, 10)
	if !a.Intersects(MakeRect(5, 5, 15, 15)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(MakeRect(10, 0, 20, 10)) {
		t.Error("edge-adjacent rects should not intersect")
	}
	if a.Intersects(EmptyRect()) {
		t.Error("nothing intersects an empty rect")
	}
}

func TestRectContainsRect(t *testing.T) {
	a := MakeRect(0, 0, 100, 100)
	if !a.ContainsRect(MakeRect(10, 10, 90, 90)) {
		t.Error("inner rect should be contained")
	}
	if !a.ContainsRect(a) {
		t.Error("rect should contain itself")
	}
	if a.ContainsRect(MakeRect(10, 10, 110, 90)) {
		t.Error("overhanging rect should not be contained")
	}
}

func TestRectExpand(t *testing.T) {
	r := MakeRect(10, 10, 20, 20).Expand(5, 3)
	want := MakeRect(5, 7, 25, 23)
	if r != want {
		t.Errorf("Expand(5,3) = %+v, want %+v", r, want)
	}
}

func TestRectRoundOut(t *testing.T) {
	r := MakeRect(10.3, 10.7, 20.1, 20.9).RoundOut()
	want := MakeRect(10, 10, 21, 21)
	if r != want {
		t.Errorf("RoundOut() = %+v, want %+v", r, want)
	}
}

func TestRectRoundIn(t *testing.T) {
	r := MakeRect(10.3, 10.7, 20.9, 21.1).RoundIn()
	want := MakeRect(11, 11, 20, 21)
	if r != want {
		t.Errorf("RoundIn() = %+v, want %+v", r, want)
	}
}

func TestRectUnionPoint(t *testing.T) {
	r := EmptyRect().UnionPoint(5, 5).UnionPoint(-1, 10)
	want := MakeRect(-1, 5, 5, 10)
	if r != want {
		t.Errorf("UnionPoint chain = %+v, want %+v", r, want)
	}
}

func TestRectSortedPreservesEmptySentinel(t *testing.T) {
	if got := EmptyRect().Sorted(); !got.IsEmpty() {
		t.Errorf("EmptyRect().Sorted() = %+v, want empty", got)
	}
	if got := MakeRect(30, 40, 10, 20).Sorted(); got != MakeRect(10, 20, 30, 40) {
		t.Errorf("Sorted() = %+v, want (10,20,30,40)", got)
	}
}
