package asset

import (
	"strings"

	"github.com/Faultbox/glowstage/internal/scene"
)

// applyGlow gives every mesh named for a glow part, or carried by a node
// named for one, its own copy of the material with the glow emissive. Only
// the node's own meshes are styled, never its descendants. It returns the
// number of meshes styled.
func applyGlow(a *Asset, glow GlowStyle) int {
	if len(glow.Keywords) == 0 {
		return 0
	}

	styled := 0
	a.root.Traverse(func(n *scene.Node) {
		nodeMatch := matchesAny(n.Name, glow.Keywords)
		for _, m := range n.Meshes {
			if !nodeMatch && !matchesAny(m.Name, glow.Keywords) {
				continue
			}
			mat := *m.Material
			mat.Emissive = glow.Color
			mat.EmissiveIntensity = glow.Intensity
			m.Material = &mat
			styled++
		}
	})
	return styled
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
