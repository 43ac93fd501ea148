package displaylist

// VertexMode selects how a vertex array is assembled into triangles.
type VertexMode uint8

const (
	// VertexModeTriangles assembles independent triangles.
	VertexModeTriangles VertexMode = iota
	// VertexModeTriangleStrip shares the last two vertices.
	VertexModeTriangleStrip
	// VertexModeTriangleFan shares the first vertex.
	VertexModeTriangleFan
)

// String returns a human-readable name for the vertex mode.
func (m VertexMode) String() string {
	switch m {
	case VertexModeTriangles:
		return "Triangles"
	case VertexModeTriangleStrip:
		return "TriangleStrip"
	case VertexModeTriangleFan:
		return "TriangleFan"
	default:
		return unknownStr
	}
}

// Vertices is an immutable triangle mesh for DrawVertices. TexCoords and
// Colors are optional; when present they must match the length of
// Positions. Indices are optional.
type Vertices struct {
	Mode      VertexMode
	Positions []Point
	TexCoords []Point
	Colors    []Color
	Indices   []uint16

	bounds Rect
}

// NewVertices creates a vertex mesh and precomputes its bounds.
func NewVertices(mode VertexMode, positions []Point, texCoords []Point, colors []Color, indices []uint16) *Vertices {
	v := &Vertices{
		Mode:      mode,
		Positions: positions,
		TexCoords: texCoords,
		Colors:    colors,
		Indices:   indices,
		bounds:    EmptyRect(),
	}
	for _, p := range positions {
		v.bounds = v.bounds.UnionPoint(p.X, p.Y)
	}
	return v
}

// Bounds returns the bounding box of the vertex positions.
func (v *Vertices) Bounds() Rect {
	return v.bounds
}

// Equal reports structural equality of two meshes.
func (v *Vertices) Equal(other *Vertices) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	if v.Mode != other.Mode ||
		len(v.Positions) != len(other.Positions) ||
		len(v.TexCoords) != len(other.TexCoords) ||
		len(v.Colors) != len(other.Colors) ||
		len(v.Indices) != len(other.Indices) {
		return false
	}
	for i := range v.Positions {
		if v.Positions[i] != other.Positions[i] {
			return false
		}
	}
	for i := range v.TexCoords {
		if v.TexCoords[i] != other.TexCoords[i] {
			return false
		}
	}
	for i := range v.Colors {
		if v.Colors[i] != other.Colors[i] {
			return false
		}
	}
	for i := range v.Indices {
		if v.Indices[i] != other.Indices[i] {
			return false
		}
	}
	return true
}
