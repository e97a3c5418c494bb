// Package buffer holds the flat, non-indexed coordinate arrays behind a
// model's surface, outline and normals overlay, together with the derived
// data computed from them.
//
// Every triangle of a surface buffer stores its own copy of each corner, so
// one triangle can be rewritten without disturbing its neighbours. Offsets
// used throughout the editor are scalar offsets into these arrays: the
// coordinate at offset o occupies o, o+1 and o+2.
package buffer

import (
	"github.com/RoaringBitmap/roaring/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// ItemSize is the number of scalars per coordinate.
	ItemSize = 3
	// TriangleSize is the number of scalars per non-indexed triangle.
	TriangleSize = 3 * ItemSize
	// SegmentSize is the number of scalars per non-indexed line segment.
	SegmentSize = 2 * ItemSize
)

// Attribute is a flat array of xyz triples with change tracking. Writers go
// through SetTriple so that the renderer can re-upload only the touched
// items; MarkNeedsUpdate bumps the version the renderer compares against.
type Attribute struct {
	array    []float64
	version  uint64
	dirty    *roaring.Bitmap
	disposed bool
}

// NewAttribute wraps array without copying it.
func NewAttribute(array []float64) *Attribute {
	return &Attribute{
		array: array,
		dirty: roaring.New(),
	}
}

// Array returns the live backing array.
func (a *Attribute) Array() []float64 {
	return a.array
}

// Len returns the number of scalars.
func (a *Attribute) Len() int {
	return len(a.array)
}

// Count returns the number of xyz items.
func (a *Attribute) Count() int {
	return len(a.array) / ItemSize
}

// Triple returns the coordinate stored at scalar offset.
func (a *Attribute) Triple(offset int) v3.Vec {
	return v3.Vec{X: a.array[offset], Y: a.array[offset+1], Z: a.array[offset+2]}
}

// SetTriple overwrites the coordinate at scalar offset and records the item
// as dirty.
func (a *Attribute) SetTriple(offset int, v v3.Vec) {
	a.array[offset] = v.X
	a.array[offset+1] = v.Y
	a.array[offset+2] = v.Z
	a.dirty.Add(uint32(offset / ItemSize))
}

// MarkNeedsUpdate flags the attribute for re-upload.
func (a *Attribute) MarkNeedsUpdate() {
	a.version++
}

// Version increases every time MarkNeedsUpdate is called.
func (a *Attribute) Version() uint64 {
	return a.version
}

// DirtyItems returns the item indices written since the last ClearDirty, in
// ascending order.
func (a *Attribute) DirtyItems() []uint32 {
	return a.dirty.ToArray()
}

// DirtyRange returns the smallest scalar range [start, end) covering every
// item written since the last ClearDirty.
func (a *Attribute) DirtyRange() (start, end int, ok bool) {
	if a.dirty.IsEmpty() {
		return 0, 0, false
	}
	start = int(a.dirty.Minimum()) * ItemSize
	end = (int(a.dirty.Maximum()) + 1) * ItemSize
	return start, end, true
}

// ClearDirty forgets the written items, typically after an upload.
func (a *Attribute) ClearDirty() {
	a.dirty.Clear()
}

// Replace swaps in a new backing array, marking every item dirty.
func (a *Attribute) Replace(array []float64) {
	a.array = array
	a.dirty.Clear()
	if n := len(array) / ItemSize; n > 0 {
		a.dirty.AddRange(0, uint64(n))
	}
	a.version++
}

// Dispose releases the backing array. A disposed attribute is empty.
func (a *Attribute) Dispose() {
	a.array = nil
	a.dirty.Clear()
	a.disposed = true
}

// Disposed reports whether Dispose has been called.
func (a *Attribute) Disposed() bool {
	return a.disposed
}
