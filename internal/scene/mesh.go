package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Material describes how a mesh is shaded.
type Material struct {
	Name string

	// BaseColor is linear RGB; alpha is taken from Opacity.
	BaseColor mgl32.Vec3
	Opacity   float32

	// Transparent meshes are drawn after opaque ones with blending enabled
	// and depth writes disabled.
	Transparent bool

	Emissive          mgl32.Vec3
	EmissiveIntensity float32

	// Map is an optional base color texture in sRGB.
	Map       image.Image
	MapRepeat mgl32.Vec2

	// Unlit materials ignore the light rig (flat color * texture).
	Unlit bool
}

// NewMaterial returns an opaque white lit material.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		BaseColor: mgl32.Vec3{1, 1, 1},
		Opacity:   1,
		MapRepeat: mgl32.Vec2{1, 1},
	}
}

// Mesh is CPU-side triangle geometry. The renderer owns the GPU copy.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Joints    [][4]uint16
	Weights   [][4]float32
	Indices   []uint32

	Material *Material

	CastShadow    bool
	ReceiveShadow bool
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Skinned reports whether the mesh carries joint influences.
func (m *Mesh) Skinned() bool {
	return len(m.Joints) == len(m.Positions) && len(m.Weights) == len(m.Positions) && len(m.Positions) > 0
}

// ComputeNormals replaces Normals with smooth per-vertex normals averaged
// from the faces that share each vertex.
func (m *Mesh) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))

	face := func(a, b, c uint32) {
		pa := mgl32.Vec3(m.Positions[a])
		pb := mgl32.Vec3(m.Positions[b])
		pc := mgl32.Vec3(m.Positions[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			face(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(m.Positions); i += 3 {
			face(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	m.Normals = make([][3]float32, len(normals))
	for i, n := range normals {
		if n.Len() > 0 {
			n = n.Normalize()
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		m.Normals[i] = n
	}
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi
}

// NewPlane builds a width x height quad in the XY plane facing +Z, centred on
// the origin, with UVs spanning [0,1].
func NewPlane(name string, width, height float32, mat *Material) *Mesh {
	hw, hh := width/2, height/2
	return &Mesh{
		Name: name,
		Positions: [][3]float32{
			{-hw, hh, 0}, {hw, hh, 0}, {-hw, -hh, 0}, {hw, -hh, 0},
		},
		Normals: [][3]float32{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		},
		UVs: [][2]float32{
			{0, 1}, {1, 1}, {0, 0}, {1, 0},
		},
		Indices:  []uint32{0, 2, 1, 2, 3, 1},
		Material: mat,
	}
}
