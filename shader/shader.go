// Package shader compiles and links the library's built-in GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glazegl/glaze/vecmath"
)

// SceneVertexSource is the vertex stage for textured geometry under a
// model/view/projection transform.
const SceneVertexSource = `#version 410 core
layout (location = 0) in vec3 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 frag_uv;
uniform mat4 u_model;
uniform mat4 u_view;
uniform mat4 u_projection;
void main() {
    frag_uv = in_uv;
    gl_Position = u_projection * u_view * u_model * vec4(in_pos, 1.0);
}
`

// SceneFragmentSource samples the bound texture.
const SceneFragmentSource = `#version 410 core
in vec2 frag_uv;
out vec4 out_color;
uniform sampler2D u_texture;
void main() {
    out_color = texture(u_texture, frag_uv);
}
`

// TextVertexSource positions glyph quads in pixel space under an
// orthographic projection.
const TextVertexSource = `#version 410 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 frag_uv;
uniform mat4 u_projection;
void main() {
    frag_uv = in_uv;
    gl_Position = u_projection * vec4(in_pos, 0.0, 1.0);
}
`

// TextFragmentSource colors glyph coverage from the atlas's red channel.
const TextFragmentSource = `#version 410 core
in vec2 frag_uv;
out vec4 out_color;
uniform sampler2D u_atlas;
uniform vec4 u_color;
void main() {
    float coverage = texture(u_atlas, frag_uv).r;
    out_color = vec4(u_color.rgb, u_color.a * coverage);
}
`

// Program wraps a linked GL program handle. Zero is the disposed sentinel.
type Program struct {
	id uint32
}

// NewProgram compiles both stages and links them.
//
// Requires a current GL context.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := Compile(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := Compile(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("failed to link program: %v", infoLog)
	}

	return &Program{id: program}, nil
}

// Compile builds a single shader stage and returns its handle.
func Compile(source string, shaderType uint32) (uint32, error) {
	handle := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("failed to compile shader: %v", infoLog)
	}
	return handle, nil
}

// ID returns the GL program handle, zero if disposed.
func (p *Program) ID() uint32 { return p.id }

// Use makes the program current.
func (p *Program) Use() { gl.UseProgram(p.id) }

// UniformLocation resolves a uniform by name, -1 if absent.
func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

// SetMat4 uploads a matrix uniform. The program must be current.
func (p *Program) SetMat4(name string, m vecmath.Mat4) {
	if loc := p.UniformLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v vecmath.Vec3) {
	if loc := p.UniformLocation(name); loc != -1 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetVec4 uploads a vec4 uniform.
func (p *Program) SetVec4(name string, v vecmath.Vec4) {
	if loc := p.UniformLocation(name); loc != -1 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetInt uploads an int uniform (sampler bindings included).
func (p *Program) SetInt(name string, v int32) {
	if loc := p.UniformLocation(name); loc != -1 {
		gl.Uniform1i(loc, v)
	}
}

// Dispose deletes the program and resets the handle to the sentinel.
// Idempotent.
func (p *Program) Dispose() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
}
