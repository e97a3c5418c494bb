package scene

// Scene is the root of everything the renderer draws.
type Scene struct {
	root *Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{root: NewGroup("scene")}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches n to the root.
func (s *Scene) Add(n *Node) {
	s.root.Add(n)
}

// Remove detaches n from the root. Dispose n first.
func (s *Scene) Remove(n *Node) {
	s.root.Remove(n)
}

// Objects returns the root's children.
func (s *Scene) Objects() []*Node {
	return s.root.Children()
}
