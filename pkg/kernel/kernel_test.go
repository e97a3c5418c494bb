package kernel

import (
	"errors"
	"reflect"
	"testing"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float64
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float64{1, 2, 3}, 1},
		{"four vertices", []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	quad := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	tests := []struct {
		name string
		mesh Mesh
		want int
	}{
		{"empty", Mesh{}, 0},
		{"non-indexed", Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}}, 1},
		{"indexed one", Mesh{Vertices: quad, Indices: []uint32{0, 1, 2}}, 1},
		{"indexed two", Mesh{Vertices: quad, Indices: []uint32{0, 1, 2, 2, 3, 0}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float64{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshNonIndexed(t *testing.T) {
	quad := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	m := &Mesh{Vertices: quad, Indices: []uint32{0, 1, 2, 2, 3, 0}}
	want := []float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		1, 1, 0, 0, 1, 0, 0, 0, 0,
	}
	if got := m.NonIndexed(); !reflect.DeepEqual(got, want) {
		t.Errorf("NonIndexed() = %v, want %v", got, want)
	}

	flat := &Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}}
	got := flat.NonIndexed()
	got[0] = 42
	if flat.Vertices[0] != 0 {
		t.Error("NonIndexed() aliased the vertex array")
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    Mesh
		wantErr bool
	}{
		{"empty", Mesh{}, false},
		{"triangle", Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}}, false},
		{"ragged vertices", Mesh{Vertices: []float64{0, 0}}, true},
		{"partial triangle", Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0}}, true},
		{"ragged indices", Mesh{Vertices: []float64{0, 0, 0}, Indices: []uint32{0, 0}}, true},
		{"index out of range", Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, Indices: []uint32{0, 1, 3}}, true},
		{"indexed", Mesh{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, Indices: []uint32{0, 1, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes {
		got, err := ParseShape(string(s))
		if err != nil || got != s {
			t.Errorf("ParseShape(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseShape("torus"); err == nil {
		t.Error("ParseShape(torus) succeeded, want error")
	}
}

// stubKernel records which primitive was requested.
type stubKernel struct {
	called string
	err    error
}

func (k *stubKernel) Name() string { return "stub" }

func (k *stubKernel) Box(w, h, d float64) (*Mesh, error) {
	k.called = "box"
	return &Mesh{}, k.err
}

func (k *stubKernel) Sphere(r float64) (*Mesh, error) {
	k.called = "sphere"
	return &Mesh{}, k.err
}

func (k *stubKernel) Tetrahedron(r float64) (*Mesh, error) {
	k.called = "tetrahedron"
	return &Mesh{}, k.err
}

func TestBuild(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{ShapeCube, "box"},
		{ShapeSphere, "sphere"},
		{ShapePyramid, "tetrahedron"},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			k := &stubKernel{}
			m, err := Build(k, tt.shape)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if k.called != tt.want {
				t.Errorf("called %s, want %s", k.called, tt.want)
			}
			if m.Name != string(tt.shape) {
				t.Errorf("Name = %q, want %q", m.Name, tt.shape)
			}
		})
	}

	t.Run("unknown shape", func(t *testing.T) {
		if _, err := Build(&stubKernel{}, Shape("torus")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("kernel error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Build(&stubKernel{err: boom}, ShapeCube)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want wrapping %v", err, boom)
		}
	})
}
