package scene

import "github.com/go-gl/mathgl/mgl64"

// Node is a scene-graph element. A node with a Geometry and Material is a mesh;
// otherwise it only groups its children.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	Position mgl64.Vec3
	// Rotation holds Euler angles in radians, applied in X, Y, Z order.
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Visible  bool

	Geometry      *Geometry
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool

	UserData map[string]any
}

func NewGroup(name string) *Node {
	return &Node{
		Name:     name,
		Scale:    mgl64.Vec3{1, 1, 1},
		Visible:  true,
		UserData: map[string]any{},
	}
}

func NewMesh(name string, geometry *Geometry, material *Material) *Node {
	n := NewGroup(name)
	n.Geometry = geometry
	n.Material = material
	return n
}

func (n *Node) IsMesh() bool {
	return n != nil && n.Geometry != nil && n.Material != nil
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	if n == nil {
		return
	}
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.Parent != nil {
			c.Parent.Remove(c)
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

func (n *Node) Remove(child *Node) bool {
	if n == nil || child == nil {
		return false
	}
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Traverse visits n and all descendants depth first.
func (n *Node) Traverse(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}

// HasAncestorNamed walks the parent chain upward, starting above n.
func (n *Node) HasAncestorNamed(name string) bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Name == name {
			return true
		}
	}
	return false
}

// RotateX adds angle around the local X axis.
func (n *Node) RotateX(angle float64) {
	n.Rotation[0] += angle
}

func (n *Node) Flag(key string) bool {
	if n == nil || n.UserData == nil {
		return false
	}
	v, ok := n.UserData[key].(bool)
	return ok && v
}

func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := mgl64.HomogRotate3DX(n.Rotation[0]).
		Mul4(mgl64.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation[2]))
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n == nil {
		return mgl64.Ident4()
	}
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Scene is the root of everything drawn in a frame.
type Scene struct {
	Root        *Node
	Ambient     []AmbientLight
	Directional []DirectionalLight
	Environment *Environment
}

func NewScene(name string) *Scene {
	return &Scene{Root: NewGroup(name)}
}

func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

func (s *Scene) Children() []*Node {
	if s == nil || s.Root == nil {
		return nil
	}
	return s.Root.Children
}
