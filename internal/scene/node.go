// Package scene provides the scene graph the viewer renders: nodes with
// translation/rotation/scale transforms, mesh attachments and the stage
// layout around the character model.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a transform in the scene graph. Meshes attached to a node are drawn
// with the node's world matrix.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Visible  bool

	Meshes []*Mesh
	Skin   *Skin

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It is a no-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// SetYaw replaces the rotation with a rotation of angle radians about +Y.
func (n *Node) SetYaw(angle float32) {
	n.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// LocalMatrix returns T * R * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldVisible reports whether n and all of its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// Traverse calls fn for n and every descendant, depth first, parents before
// children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseWorld is like Traverse but also passes each node's world matrix,
// computed incrementally from the parent's.
func (n *Node) TraverseWorld(fn func(node *Node, world mgl32.Mat4)) {
	parent := mgl32.Ident4()
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	}
	n.traverseWorld(parent, fn)
}

func (n *Node) traverseWorld(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.traverseWorld(world, fn)
	}
}

// Find returns the first node in the subtree named name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}
