package weld

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/geom"
)

// cellSize is twice Tolerance, so a sample can only match records whose
// canonical coordinate lies in the 27 cells around its own.
const cellSize = 2 * Tolerance

// cell is a grid coordinate.
type cell struct {
	x, y, z int64
}

func cellOf(p v3.Vec) cell {
	return cell{
		x: int64(math.Floor(p.X / cellSize)),
		y: int64(math.Floor(p.Y / cellSize)),
		z: int64(math.Floor(p.Z / cellSize)),
	}
}

// index maps grid cells to the positions (in creation order) of the records
// whose canonical coordinate falls inside them.
type index struct {
	records []*Record
	cells   map[cell][]int
}

// first returns the earliest-created record within Tolerance of p.
func (ix *index) first(p v3.Vec) *Record {
	c := cellOf(p)
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, ri := range ix.cells[cell{c.x + dx, c.y + dy, c.z + dz}] {
					if best >= 0 && ri >= best {
						break
					}
					if geom.Near(ix.records[ri].Coords, p, Tolerance) {
						best = ri
						break
					}
				}
			}
		}
	}
	if best < 0 {
		return nil
	}
	return ix.records[best]
}

func (ix *index) add(r *Record) {
	c := cellOf(r.Coords)
	ix.cells[c] = append(ix.cells[c], len(ix.records))
	ix.records = append(ix.records, r)
}

// BuildIndexed produces the same records as Build using a uniform grid
// instead of a linear scan. The rules are unchanged: the first sample of a
// vertex is canonical, a sample joins the earliest-created matching record,
// and unmatched secondary samples are dropped.
func BuildIndexed(primary, secondary []float64) []*Record {
	ix := &index{cells: make(map[cell][]int)}

	for i := 0; i+buffer.ItemSize <= len(primary); i += buffer.ItemSize {
		p := triple(primary, i)
		if r := ix.first(p); r != nil {
			r.Primary = append(r.Primary, i)
			continue
		}
		ix.add(&Record{Coords: p, Primary: []int{i}})
	}

	for i := 0; i+buffer.ItemSize <= len(secondary); i += buffer.ItemSize {
		if r := ix.first(triple(secondary, i)); r != nil {
			r.Secondary = append(r.Secondary, i)
		}
	}

	return ix.records
}
