// Package asset loads glTF/GLB character models into scene graph nodes and
// animation clips.
package asset

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/animation"
	"github.com/Faultbox/glowstage/internal/scene"
)

// ErrAssetLoad wraps every failure to open or decode a model.
var ErrAssetLoad = errors.New("asset load failed")

// Asset is a decoded model.
type Asset struct {
	Path string

	root   *scene.Node
	nodes  []*scene.Node
	meshes []*scene.Mesh
	clips  []*animation.Clip
}

// Model returns the root node holding the asset's scene.
func (a *Asset) Model() *scene.Node { return a.root }

// Nodes returns the asset's nodes in file order; clip channels index into it.
func (a *Asset) Nodes() []*scene.Node { return a.nodes }

// Meshes returns every mesh primitive in the asset.
func (a *Asset) Meshes() []*scene.Mesh { return a.meshes }

// Clips returns the embedded animation clips in file order.
func (a *Asset) Clips() []*animation.Clip { return a.clips }

// GlowStyle is the emissive override applied to glow parts of the model.
type GlowStyle struct {
	// Keywords are matched case-insensitively against mesh names and the
	// names of the nodes that carry them.
	Keywords  []string
	Color     mgl32.Vec3
	Intensity float32
}

// DefaultGlow lights up the chest reactor.
func DefaultGlow() GlowStyle {
	return GlowStyle{
		Keywords:  []string{"reactor", "chest"},
		Color:     scene.MustColor("#72fff7"),
		Intensity: 3.5,
	}
}

// New assembles an asset from an existing node graph. Meshes are gathered
// from root's subtree; clip channels index into nodes.
func New(path string, root *scene.Node, nodes []*scene.Node, clips []*animation.Clip) *Asset {
	a := &Asset{Path: path, root: root, nodes: nodes, clips: clips}
	root.Traverse(func(n *scene.Node) {
		a.meshes = append(a.meshes, n.Meshes...)
	})
	return a
}
