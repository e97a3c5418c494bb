package model

import (
	"fmt"

	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/weld"
)

// NewHandle returns the draggable proxy for record i, placed at the
// record's canonical coordinate.
func NewHandle(i int, r *weld.Record, size float64) *scene.Node {
	h := scene.NewHandle(fmt.Sprintf("vertex-%d", i), r.Coords, size)
	h.UserData = r
	return h
}

// RecordOf returns the vertex record behind a handle, or nil.
func RecordOf(n *scene.Node) *weld.Record {
	r, _ := n.UserData.(*weld.Record)
	return r
}
