// Package displaylist records 2D drawing commands into compact,
// immutable display lists that can be measured, compared, culled, and
// replayed any number of times.
//
// A Builder offers a familiar canvas API with draws, clips, transforms,
// saves, and layers. Recording packs each op into a contiguous byte
// buffer, elides redundant state changes, measures device-space bounds
// through a MatrixClipTracker, and indexes every draw in an RTree. The
// finished DisplayList replays through any Dispatcher implementation.
//
// Example:
//
//	b := NewBuilder(MakeRect(0, 0, 1024, 768))
//	b.SetColor(ARGB(255, 0, 128, 255))
//	b.ClipRect(MakeRect(0, 0, 512, 768), ClipIntersect, true)
//	b.DrawRect(MakeRect(100, 100, 300, 300))
//	list := b.Build()
//	list.Dispatch(myDispatcher)
package displaylist
