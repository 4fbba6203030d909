package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/scene"
)

// floatsPerVertex is position(3) + normal(3) + uv(2).
const floatsPerVertex = 8

// gpuMesh is the GL copy of a scene.Mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertexCount   int32

	// Skinned meshes are deformed on the CPU and re-uploaded each frame.
	skinned  bool
	pos, nrm [][3]float32
	scratch  []float32
}

// interleave packs vertex attributes into dst, growing it if needed. Missing
// normals or UVs are written as zero.
func interleave(dst []float32, pos, nrm [][3]float32, uv [][2]float32) []float32 {
	n := len(pos) * floatsPerVertex
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i, p := range pos {
		v := dst[i*floatsPerVertex : (i+1)*floatsPerVertex]
		copy(v[0:3], p[:])
		if i < len(nrm) {
			copy(v[3:6], nrm[i][:])
		} else {
			v[3], v[4], v[5] = 0, 0, 0
		}
		if i < len(uv) {
			copy(v[6:8], uv[i][:])
		} else {
			v[6], v[7] = 0, 0
		}
	}
	return dst
}

func uploadMesh(m *scene.Mesh) *gpuMesh {
	g := &gpuMesh{
		vertexCount: int32(m.VertexCount()),
		indexCount:  int32(len(m.Indices)),
		skinned:     m.Skinned(),
	}
	if g.skinned {
		g.pos = make([][3]float32, len(m.Positions))
		g.nrm = make([][3]float32, len(m.Positions))
	}

	g.scratch = interleave(g.scratch, m.Positions, m.Normals, m.UVs)

	usage := uint32(gl.STATIC_DRAW)
	if g.skinned {
		usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.scratch)*4, unsafe.Pointer(&g.scratch[0]), usage)

	stride := int32(floatsPerVertex * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	if g.indexCount > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	if !g.skinned {
		g.scratch = nil
	}
	return g
}

// deform poses a skinned mesh for the current frame and re-uploads it.
func (g *gpuMesh) deform(m *scene.Mesh, skin *scene.Skin, world mgl32.Mat4) {
	scene.Deform(m, skin.JointMatrices(world), g.pos, g.nrm)
	g.scratch = interleave(g.scratch, g.pos, g.nrm, m.UVs)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(g.scratch)*4, unsafe.Pointer(&g.scratch[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	if g.indexCount > 0 {
		gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, g.vertexCount)
	}
}

func (g *gpuMesh) destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}
