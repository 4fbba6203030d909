package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/scene"
)

// drawItem is one mesh instance to draw this frame.
type drawItem struct {
	node  *scene.Node
	mesh  *scene.Mesh
	world mgl32.Mat4
	// depth is the view-space distance along -Z, used to sort transparents.
	depth float32
}

// collect walks the visible graph under root and splits its meshes into
// opaque items (graph order) and transparent items (far to near).
func collect(root *scene.Node, view mgl32.Mat4) (opaque, transparent []drawItem) {
	var walk func(n *scene.Node, parent mgl32.Mat4)
	walk = func(n *scene.Node, parent mgl32.Mat4) {
		if !n.Visible {
			return
		}
		world := parent.Mul4(n.LocalMatrix())
		for _, m := range n.Meshes {
			if m.VertexCount() == 0 {
				continue
			}
			it := drawItem{node: n, mesh: m, world: world}
			if m.Material != nil && m.Material.Transparent {
				center := world.Col(3)
				it.depth = -view.Mul4x1(center).Z()
				transparent = append(transparent, it)
			} else {
				opaque = append(opaque, it)
			}
		}
		for _, c := range n.Children() {
			walk(c, world)
		}
	}

	parent := mgl32.Ident4()
	if p := root.Parent(); p != nil {
		parent = p.WorldMatrix()
	}
	walk(root, parent)

	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].depth > transparent[j].depth
	})
	return opaque, transparent
}
