// Package weld builds the correspondence between the vertex samples of a
// model's surface buffer and its outline buffer. Both buffers duplicate
// every logical vertex once per triangle or edge that uses it; welding
// collapses those samples into one Record per logical vertex so that moving
// the vertex can be written back to every sample.
package weld

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/geom"
)

// Tolerance is the per-axis distance under which two samples are the same
// vertex. The comparison is inclusive.
const Tolerance = 1e-3

// Record is one logical vertex.
type Record struct {
	// Coords is the first sample seen for this vertex. It is never averaged
	// with later samples.
	Coords v3.Vec
	// Primary lists scalar offsets into the surface buffer, in scan order.
	Primary []int
	// Secondary lists scalar offsets into the outline buffer, in scan order.
	Secondary []int
}

// Build welds primary (surface) and secondary (outline) samples.
//
// The primary buffer is scanned first; each sample joins the first record
// within Tolerance or starts a new one. The secondary buffer is then matched
// against those records only: a secondary sample matching no record is
// dropped without creating a record.
//
// Both passes scan the record list linearly, so Build is quadratic in the
// vertex count. Use BuildIndexed for larger meshes.
func Build(primary, secondary []float64) []*Record {
	var records []*Record

	for i := 0; i+buffer.ItemSize <= len(primary); i += buffer.ItemSize {
		p := triple(primary, i)
		if r := firstMatch(records, p); r != nil {
			r.Primary = append(r.Primary, i)
			continue
		}
		records = append(records, &Record{Coords: p, Primary: []int{i}})
	}

	for i := 0; i+buffer.ItemSize <= len(secondary); i += buffer.ItemSize {
		if r := firstMatch(records, triple(secondary, i)); r != nil {
			r.Secondary = append(r.Secondary, i)
		}
	}

	return records
}

// Dropped counts the secondary samples that match no record, i.e. the
// samples Build discards.
func Dropped(records []*Record, secondary []float64) int {
	matched := 0
	for _, r := range records {
		matched += len(r.Secondary)
	}
	return len(secondary)/buffer.ItemSize - matched
}

func firstMatch(records []*Record, p v3.Vec) *Record {
	for _, r := range records {
		if geom.Near(r.Coords, p, Tolerance) {
			return r
		}
	}
	return nil
}

func triple(a []float64, i int) v3.Vec {
	return v3.Vec{X: a[i], Y: a[i+1], Z: a[i+2]}
}
