package shader

import (
	"embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/logger"
)

//go:embed glsl/*.vert glsl/*.frag
var sources embed.FS

// Program names and the stage sources they link.
var programs = map[string][2]string{
	"lit":       {"lit.vert", "lit.frag"},
	"depth":     {"depth.vert", "depth.frag"},
	"bright":    {"fullscreen.vert", "bright.frag"},
	"blur":      {"fullscreen.vert", "blur.frag"},
	"composite": {"fullscreen.vert", "composite.frag"},
}

// Source returns an embedded GLSL file by name, e.g. "lit.frag".
func Source(name string) (string, error) {
	b, err := sources.ReadFile("glsl/" + name)
	if err != nil {
		return "", fmt.Errorf("shader source %q: %w", name, err)
	}
	return string(b), nil
}

// Sources returns the vertex and fragment source of a named program.
func Sources(program string) (vertex, fragment string, err error) {
	files, ok := programs[program]
	if !ok {
		return "", "", fmt.Errorf("unknown shader program %q", program)
	}
	if vertex, err = Source(files[0]); err != nil {
		return "", "", err
	}
	if fragment, err = Source(files[1]); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// Program is a linked GL program with cached uniform locations.
type Program struct {
	Name     string
	ID       uint32
	uniforms map[string]int32
}

// Load compiles and links a named embedded program.
func Load(name string) (*Program, error) {
	vs, fs, err := Sources(name)
	if err != nil {
		return nil, err
	}
	id, err := link(name, vs, fs)
	if err != nil {
		return nil, err
	}
	logger.Debug("shader program linked", zap.String("program", name), zap.Uint32("id", id))
	return &Program{Name: name, ID: id, uniforms: make(map[string]int32)}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Destroy deletes the GL program.
func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Debug("inactive uniform", zap.String("program", p.Name), zap.String("uniform", name))
	}
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.location(name), v[0], v[1])
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

// SetMat3 sets a mat3 uniform.
func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.location(name), 1, false, &m[0])
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// SetFloats sets a float[] uniform from v.
func (p *Program) SetFloats(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(p.location(name), int32(len(v)), &v[0])
}

// SetVec3s sets a vec3[] uniform from a flat slice of xyz triples.
func (p *Program) SetVec3s(name string, v []float32) {
	if len(v) < 3 {
		return
	}
	gl.Uniform3fv(p.location(name), int32(len(v)/3), &v[0])
}
