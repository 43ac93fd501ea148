package displaylist

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/math/fixed"
)

// GlyphID is a glyph index within a font face.
type GlyphID uint32

// GlyphRun is a sequence of positioned glyphs sharing one face and size.
// Positions are fixed-point offsets relative to the blob origin, in the
// 26.6 format text rasterizers use.
//
// Shaping happens upstream; the display list stores the shaped result and
// treats the face as an opaque shared handle. font.Face is not safe for
// concurrent mutation, but dispatch only reads the pointer.
type GlyphRun struct {
	Face     *font.Face
	Size     float32
	Language language.Language
	Glyphs   []GlyphID
	Offsets  []fixed.Point26_6
}

// TextBlob is an immutable collection of glyph runs with precomputed
// bounds relative to the blob origin. Blobs are shared handles: ops hold
// a pointer and dispatch may read the blob from multiple goroutines.
type TextBlob struct {
	Runs   []GlyphRun
	bounds Rect
}

// NewTextBlob creates a blob from shaped runs and their combined bounds.
// The bounds come from the shaper's glyph metrics and must contain every
// glyph's ink extents.
func NewTextBlob(runs []GlyphRun, bounds Rect) *TextBlob {
	return &TextBlob{Runs: runs, bounds: bounds}
}

// Bounds returns the ink bounds relative to the blob origin.
func (b *TextBlob) Bounds() Rect {
	return b.bounds
}

// GlyphCount returns the total number of glyphs across all runs.
func (b *TextBlob) GlyphCount() int {
	n := 0
	for _, r := range b.Runs {
		n += len(r.Glyphs)
	}
	return n
}

// Equal reports structural equality of two blobs: same runs with the same
// faces (by identity), sizes, languages, glyphs, and positions.
func (b *TextBlob) Equal(other *TextBlob) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	if b.bounds != other.bounds || len(b.Runs) != len(other.Runs) {
		return false
	}
	for i := range b.Runs {
		r, o := &b.Runs[i], &other.Runs[i]
		if r.Face != o.Face || r.Size != o.Size || r.Language != o.Language ||
			len(r.Glyphs) != len(o.Glyphs) || len(r.Offsets) != len(o.Offsets) {
			return false
		}
		for j := range r.Glyphs {
			if r.Glyphs[j] != o.Glyphs[j] {
				return false
			}
		}
		for j := range r.Offsets {
			if r.Offsets[j] != o.Offsets[j] {
				return false
			}
		}
	}
	return true
}
