package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Skin binds a mesh's vertices to a set of joint nodes.
type Skin struct {
	Joints      []*Node
	InverseBind []mgl32.Mat4
}

// JointMatrices returns, for each joint, the matrix that takes a bind-pose
// vertex into the mesh node's local space under the current pose:
// inverse(meshWorld) * jointWorld * inverseBind.
func (s *Skin) JointMatrices(meshWorld mgl32.Mat4) []mgl32.Mat4 {
	inv := meshWorld.Inv()
	out := make([]mgl32.Mat4, len(s.Joints))
	for i, j := range s.Joints {
		ib := mgl32.Ident4()
		if i < len(s.InverseBind) {
			ib = s.InverseBind[i]
		}
		out[i] = inv.Mul4(j.WorldMatrix()).Mul4(ib)
	}
	return out
}

// Deform writes skinned positions and normals for mesh into pos and nrm,
// which must have the mesh's vertex count. Vertices whose weights sum to zero
// keep their bind-pose values.
func Deform(mesh *Mesh, joints []mgl32.Mat4, pos, nrm [][3]float32) {
	for v := range mesh.Positions {
		var m mgl32.Mat4
		var total float32
		for k := 0; k < 4; k++ {
			w := mesh.Weights[v][k]
			j := int(mesh.Joints[v][k])
			if w == 0 || j >= len(joints) {
				continue
			}
			total += w
			for e := range m {
				m[e] += joints[j][e] * w
			}
		}

		p := mgl32.Vec3(mesh.Positions[v])
		if total == 0 {
			pos[v] = p
			if v < len(mesh.Normals) {
				nrm[v] = mesh.Normals[v]
			}
			continue
		}

		pos[v] = mgl32.TransformCoordinate(p, m)
		if v < len(mesh.Normals) {
			n := mgl32.TransformNormal(mgl32.Vec3(mesh.Normals[v]), m)
			if n.Len() > 0 {
				n = n.Normalize()
			}
			nrm[v] = n
		}
	}
}
