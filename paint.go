package displaylist

// Color is a 32-bit ARGB color in the 0xAARRGGBB layout.
type Color uint32

// Common colors.
const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)

// ARGB creates a color from individual channel values.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// IsOpaque returns true if the alpha channel is fully opaque.
func (c Color) IsOpaque() bool {
	return c.Alpha() == 0xFF
}

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(c)&0x00FFFFFF | uint32(a)<<24)
}

// ModulateAlpha returns the color with its alpha scaled by opacity in
// [0, 1].
func (c Color) ModulateAlpha(opacity float32) Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return c.WithAlpha(0)
	}
	return c.WithAlpha(uint8(float32(c.Alpha())*opacity + 0.5))
}

// BlendMode selects the Porter-Duff or advanced compositing function used
// when a draw op is merged into the destination.
type BlendMode uint8

// Blend mode constants. BlendSrcOver is the attribute default.
const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

// blendModeNames maps BlendMode values to their string representation.
var blendModeNames = [...]string{
	BlendClear:      "Clear",
	BlendSrc:        "Src",
	BlendDst:        "Dst",
	BlendSrcOver:    "SrcOver",
	BlendDstOver:    "DstOver",
	BlendSrcIn:      "SrcIn",
	BlendDstIn:      "DstIn",
	BlendSrcOut:     "SrcOut",
	BlendDstOut:     "DstOut",
	BlendSrcATop:    "SrcATop",
	BlendDstATop:    "DstATop",
	BlendXor:        "Xor",
	BlendPlus:       "Plus",
	BlendModulate:   "Modulate",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendMultiply:   "Multiply",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

// String returns a human-readable name for the blend mode.
func (mode BlendMode) String() string {
	if int(mode) < len(blendModeNames) {
		return blendModeNames[mode]
	}
	return unknownStr
}

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// blendModifiesTransparentBlack reports whether compositing through mode
// can change destination pixels the source never covered: with src fully
// transparent, the result still differs from dst.
func blendModifiesTransparentBlack(mode BlendMode) bool {
	switch mode {
	case BlendClear, BlendSrc, BlendSrcIn, BlendDstIn, BlendSrcOut,
		BlendDstATop, BlendModulate:
		return true
	}
	return false
}

// DrawStyle selects whether geometry is filled, stroked, or both.
type DrawStyle uint8

const (
	// StyleFill fills the interior of the geometry.
	StyleFill DrawStyle = iota
	// StyleStroke strokes the boundary of the geometry.
	StyleStroke
	// StyleStrokeAndFill strokes and fills.
	StyleStrokeAndFill
)

// String returns a human-readable name for the style.
func (s DrawStyle) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return unknownStr
	}
}

// LineCap represents stroke endpoint shapes.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// String returns a human-readable name for the cap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return unknownStr
	}
}

// LineJoin represents stroke join shapes.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// String returns a human-readable name for the join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return unknownStr
	}
}

// paintState is the full attribute tuple tracked by the builder. The zero
// value is not the default; use defaultPaintState.
type paintState struct {
	antiAlias    bool
	dither       bool
	invertColors bool
	color        Color
	blendMode    BlendMode
	drawStyle    DrawStyle
	strokeWidth  float32
	strokeMiter  float32
	strokeCap    LineCap
	strokeJoin   LineJoin
	colorSource  ColorSource
	colorFilter  ColorFilter
	imageFilter  ImageFilter
	maskFilter   MaskFilter
	pathEffect   PathEffect
}

// defaultPaintState returns the canonical attribute defaults; the builder
// resets to these on Build.
func defaultPaintState() paintState {
	return paintState{
		color:       ColorBlack,
		blendMode:   BlendSrcOver,
		drawStyle:   StyleFill,
		strokeWidth: 0,
		strokeMiter: 4,
		strokeCap:   LineCapButt,
		strokeJoin:  LineJoinMiter,
	}
}

// strokeBoundsPad returns the outward padding stroked geometry needs on
// each side: half the stroke width, further expanded by the miter limit
// when miter joins can spike. withJoins is set for path-like geometry
// where joins occur.
func (p *paintState) strokeBoundsPad(withJoins bool) float32 {
	if p.drawStyle == StyleFill {
		return 0
	}
	// Hairline strokes still cover roughly one pixel.
	half := max32(p.strokeWidth, 1) / 2
	if withJoins && p.strokeJoin == LineJoinMiter && p.strokeMiter > 1 {
		return half * p.strokeMiter
	}
	return half
}
