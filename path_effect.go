package displaylist

// PathEffect rewrites stroked geometry before rasterization. This is a
// sealed interface: only types in this package implement it.
type PathEffect interface {
	// pathEffectMarker is an unexported method that seals this interface.
	pathEffectMarker()

	// EqualPathEffect reports structural equality with another effect.
	EqualPathEffect(other PathEffect) bool
}

// DashPathEffect turns a stroke into a dash pattern. Intervals alternate
// between "on" and "off" lengths; Phase offsets the start of the pattern.
type DashPathEffect struct {
	Intervals []float32
	Phase     float32
}

func (*DashPathEffect) pathEffectMarker() {}

// EqualPathEffect reports structural equality with another effect.
func (e *DashPathEffect) EqualPathEffect(other PathEffect) bool {
	o, ok := other.(*DashPathEffect)
	if !ok || e.Phase != o.Phase || len(e.Intervals) != len(o.Intervals) {
		return false
	}
	for i := range e.Intervals {
		if e.Intervals[i] != o.Intervals[i] {
			return false
		}
	}
	return true
}

func pathEffectsEqual(a, b PathEffect) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualPathEffect(b)
}
