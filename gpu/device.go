// The gpu package holds the Device interface, which is the one place the rest of
// the module talks to the graphics driver through.
//
// Binding state (current program, bound vertex array, active texture unit...) lives in
// the driver and is mutated by most calls here. Making the device an explicit value
// lets tests swap in a recording implementation (see gpu/gputest) and keeps the
// 'which context does this touch' question visible at every call site.
//
// Enum parameters are raw OpenGL enums (e.g. gl.VERTEX_SHADER), so callers are expected
// to convert their own typed enums using helpers like shaders.ShaderType.ToGl.
package gpu

import "unsafe"

type Device interface {

	// Shaders
	CreateShader(shaderType uint32) uint32
	ShaderSource(shaderId uint32, src string)
	CompileShader(shaderId uint32)
	ShaderCompiled(shaderId uint32) bool
	ShaderInfoLog(shaderId uint32) string
	DeleteShader(shaderId uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(progId, shaderId uint32)
	LinkProgram(progId uint32)
	ProgramLinked(progId uint32) bool
	ProgramInfoLog(progId uint32) string
	UseProgram(progId uint32)
	DeleteProgram(progId uint32)

	// Uniforms
	GetUniformLocation(progId uint32, name string) int32
	ProgramUniform1i(progId uint32, loc int32, val int32)
	ProgramUniform1f(progId uint32, loc int32, val float32)
	ProgramUniform3fv(progId uint32, loc int32, val *[3]float32)
	ProgramUniformMatrix4fv(progId uint32, loc int32, val *[4][4]float32)

	// Buffers and vertex arrays
	GenBuffer() uint32
	BindBuffer(target, bufId uint32)
	BufferData(target uint32, sizeInBytes int, data unsafe.Pointer, usage uint32)
	DeleteBuffer(bufId uint32)

	GenVertexArray() uint32
	BindVertexArray(vaoId uint32)
	DeleteVertexArray(vaoId uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, compCount int32, glType uint32, normalized bool, stride int32, offset uintptr)

	// Textures
	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texId uint32)
	TexParameteri(target, param uint32, val int32)
	TexImage2D(target uint32, internalFormat int32, width, height int32, format, glType uint32, pixels unsafe.Pointer)
	GenerateMipmap(target uint32)
	DeleteTexture(texId uint32)

	// Draw calls
	DrawElements(mode uint32, count int32, indexType uint32, offset uintptr)
}
