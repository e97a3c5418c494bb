package kernel

import "fmt"

// Mesh is a triangle mesh as produced by a kernel.
// Vertices has 3 floats per vertex (x,y,z). When Indices is empty the mesh
// is non-indexed: every 3 vertices form a triangle. Otherwise Indices holds
// 3 vertex indices per triangle.
type Mesh struct {
	Vertices []float64 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles, optional
	Name     string    `json:"name"`     // which shape this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m.Indexed() {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 9
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Indexed reports whether triangles are described by Indices.
func (m *Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// Validate checks array lengths and index bounds.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("kernel: %d vertex scalars is not a multiple of 3", len(m.Vertices))
	}
	if !m.Indexed() {
		if len(m.Vertices)%9 != 0 {
			return fmt.Errorf("kernel: %d vertices do not form whole triangles", m.VertexCount())
		}
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("kernel: %d indices is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("kernel: index %d at %d out of range [0,%d)", idx, i, n)
		}
	}
	return nil
}

// NonIndexed returns a flat triangle buffer in which every triangle carries
// its own copy of each corner. For a non-indexed mesh the result is a copy
// of Vertices.
func (m *Mesh) NonIndexed() []float64 {
	if !m.Indexed() {
		return append([]float64(nil), m.Vertices...)
	}
	out := make([]float64, 0, len(m.Indices)*3)
	for _, idx := range m.Indices {
		o := int(idx) * 3
		out = append(out, m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2])
	}
	return out
}
