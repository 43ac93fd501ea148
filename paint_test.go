package displaylist

import "testing"

func TestColorChannels(t *testing.T) {
	c := ARGB(0x80, 0x12, 0x34, 0x56)
	if c != 0x80123456 {
		t.Errorf("ARGB() = %08X, want 80123456", uint32(c))
	}
	if c.Alpha() != 0x80 {
		t.Errorf("Alpha() = %02X, want 80", c.Alpha())
	}
	if c.IsOpaque() {
		t.Error("IsOpaque() = true for alpha 0x80")
	}
	if !ColorRed.IsOpaque() {
		t.Error("IsOpaque() = false for ColorRed")
	}
	if got := c.WithAlpha(0xFF); got != 0xFF123456 {
		t.Errorf("WithAlpha(FF) = %08X, want FF123456", uint32(got))
	}
}

func TestColorModulateAlpha(t *testing.T) {
	c := ARGB(200, 10, 20, 30)
	if got := c.ModulateAlpha(1); got != c {
		t.Errorf("ModulateAlpha(1) = %08X, want unchanged", uint32(got))
	}
	if got := c.ModulateAlpha(2); got != c {
		t.Errorf("ModulateAlpha(2) = %08X, want unchanged", uint32(got))
	}
	if got := c.ModulateAlpha(0); got.Alpha() != 0 {
		t.Errorf("ModulateAlpha(0) alpha = %d, want 0", got.Alpha())
	}
	if got := c.ModulateAlpha(0.5); got.Alpha() != 100 {
		t.Errorf("ModulateAlpha(0.5) alpha = %d, want 100", got.Alpha())
	}
	// Only the alpha channel changes.
	if got := c.ModulateAlpha(0.5); uint32(got)&0x00FFFFFF != uint32(c)&0x00FFFFFF {
		t.Errorf("ModulateAlpha(0.5) = %08X, color channels changed", uint32(got))
	}
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{BlendSrcOver.String(), "SrcOver"},
		{BlendMultiply.String(), "Multiply"},
		{BlendMode(250).String(), "Unknown"},
		{StyleFill.String(), "Fill"},
		{StyleStroke.String(), "Stroke"},
		{LineCapButt.String(), "Butt"},
		{LineCapRound.String(), "Round"},
		{LineJoinMiter.String(), "Miter"},
		{LineJoinBevel.String(), "Bevel"},
		{ClipIntersect.String(), "Intersect"},
		{ClipDifference.String(), "Difference"},
		{PointModeLines.String(), "Lines"},
		{VerbQuadTo.String(), "QuadTo"},
		{FillEvenOdd.String(), "EvenOdd"},
		{SamplingCubic.String(), "Cubic"},
		{VertexModeTriangleFan.String(), "TriangleFan"},
		{BlurStyleOuter.String(), "Outer"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("String() = %q, want %q", c.got, c.want)
		}
	}
}

func TestDefaultPaintStrokePad(t *testing.T) {
	p := defaultPaintState()
	if got := p.strokeBoundsPad(true); got != 0 {
		t.Errorf("fill style pad = %v, want 0", got)
	}
	p.drawStyle = StyleStroke
	p.strokeWidth = 4
	p.strokeJoin = LineJoinRound
	if got := p.strokeBoundsPad(false); got != 2 {
		t.Errorf("stroke pad = %v, want 2", got)
	}
	// Miter joins extend the pad by the miter limit.
	p.strokeJoin = LineJoinMiter
	p.strokeMiter = 4
	if got := p.strokeBoundsPad(true); got != 8 {
		t.Errorf("miter pad = %v, want 8", got)
	}
	// Hairline strokes still cover at least a pixel.
	p.strokeWidth = 0
	p.strokeJoin = LineJoinRound
	if got := p.strokeBoundsPad(false); got != 0.5 {
		t.Errorf("hairline pad = %v, want 0.5", got)
	}
}
