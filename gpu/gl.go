package gpu

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ Device = &GL{}

// GL is the Device backed by the OpenGL 4.1 core bindings. It assumes gl.Init
// has been called on the current thread with a valid context (see engine.CreateOpenGLWindowCentered)
type GL struct{}

func NewGL() *GL {
	return &GL{}
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	return gl.CreateShader(shaderType)
}

func (g *GL) ShaderSource(shaderId uint32, src string) {
	cStr, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shaderId, 1, cStr, nil)
}

func (g *GL) CompileShader(shaderId uint32) {
	gl.CompileShader(shaderId)
}

func (g *GL) ShaderCompiled(shaderId uint32) bool {
	var status int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (g *GL) ShaderInfoLog(shaderId uint32) string {

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)
	return gl.GoStr(log)
}

func (g *GL) DeleteShader(shaderId uint32) {
	gl.DeleteShader(shaderId)
}

func (g *GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (g *GL) AttachShader(progId, shaderId uint32) {
	gl.AttachShader(progId, shaderId)
}

func (g *GL) LinkProgram(progId uint32) {
	gl.LinkProgram(progId)
}

func (g *GL) ProgramLinked(progId uint32) bool {
	var status int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (g *GL) ProgramInfoLog(progId uint32) string {

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)
	return gl.GoStr(log)
}

func (g *GL) UseProgram(progId uint32) {
	gl.UseProgram(progId)
}

func (g *GL) DeleteProgram(progId uint32) {
	gl.DeleteProgram(progId)
}

func (g *GL) GetUniformLocation(progId uint32, name string) int32 {
	return gl.GetUniformLocation(progId, gl.Str(name+"\x00"))
}

func (g *GL) ProgramUniform1i(progId uint32, loc int32, val int32) {
	gl.ProgramUniform1i(progId, loc, val)
}

func (g *GL) ProgramUniform1f(progId uint32, loc int32, val float32) {
	gl.ProgramUniform1f(progId, loc, val)
}

func (g *GL) ProgramUniform3fv(progId uint32, loc int32, val *[3]float32) {
	gl.ProgramUniform3fv(progId, loc, 1, &val[0])
}

func (g *GL) ProgramUniformMatrix4fv(progId uint32, loc int32, val *[4][4]float32) {
	gl.ProgramUniformMatrix4fv(progId, loc, 1, false, &val[0][0])
}

func (g *GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (g *GL) BindBuffer(target, bufId uint32) {
	gl.BindBuffer(target, bufId)
}

func (g *GL) BufferData(target uint32, sizeInBytes int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, sizeInBytes, data, usage)
}

func (g *GL) DeleteBuffer(bufId uint32) {
	gl.DeleteBuffers(1, &bufId)
}

func (g *GL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (g *GL) BindVertexArray(vaoId uint32) {
	gl.BindVertexArray(vaoId)
}

func (g *GL) DeleteVertexArray(vaoId uint32) {
	gl.DeleteVertexArrays(1, &vaoId)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (g *GL) VertexAttribPointer(index uint32, compCount int32, glType uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, compCount, glType, normalized, stride, offset)
}

func (g *GL) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (g *GL) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (g *GL) BindTexture(target, texId uint32) {
	gl.BindTexture(target, texId)
}

func (g *GL) TexParameteri(target, param uint32, val int32) {
	gl.TexParameteri(target, param, val)
}

func (g *GL) TexImage2D(target uint32, internalFormat int32, width, height int32, format, glType uint32, pixels unsafe.Pointer) {
	gl.TexImage2D(target, 0, internalFormat, width, height, 0, format, glType, pixels)
}

func (g *GL) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (g *GL) DeleteTexture(texId uint32) {
	gl.DeleteTextures(1, &texId)
}

func (g *GL) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, indexType, offset)
}
