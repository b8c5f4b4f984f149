// Package gputest provides a recording gpu.Device that needs no graphics context.
//
// It emulates just enough driver behavior for the core packages to be tested:
// shaders 'compile' unless their source has a '#error' directive, programs link unless
// LinkFailLog is set (or a stage is missing), active uniforms are discovered from the
// attached sources, and binding state (program, vao, buffers, texture units) is tracked.
// Every call is also appended to Calls.
package gputest

import (
	"fmt"
	"regexp"
	"strings"
	"unsafe"

	"github.com/bloeys/learngl/gpu"
)

var _ gpu.Device = &Device{}

// Raw GL enum values, duplicated here so this package doesn't need cgo
const (
	glVertexShader       uint32 = 0x8B31
	glFragmentShader     uint32 = 0x8B30
	glArrayBuffer        uint32 = 0x8892
	glElementArrayBuffer uint32 = 0x8893
	glTexture0           uint32 = 0x84C0
)

var uniformDeclRegex = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

type Call struct {
	Name string
	Args []any
}

type Shader struct {
	Type     uint32
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

type Program struct {
	Shaders  []uint32
	Linked   bool
	Log      string
	Deleted  bool
	Uniforms map[string]int32
	// Values holds the last value set per uniform location
	Values map[int32]any
}

type Buffer struct {
	Target  uint32
	Usage   uint32
	Data    []byte
	Uploads int
	Deleted bool
}

type Attrib struct {
	Index      uint32
	CompCount  int32
	GLType     uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
	Enabled    bool
}

type VertexArray struct {
	Attribs       map[uint32]*Attrib
	ElementBuffer uint32
	Deleted       bool
}

type Texture struct {
	Target        uint32
	Width, Height int32
	Pixels        []byte
	Params        map[uint32]int32
	HasMipmaps    bool
	Deleted       bool
}

type Device struct {
	// LinkFailLog, when not empty, makes every LinkProgram call fail with this log
	LinkFailLog string
	// GenFails makes GenBuffer, GenVertexArray and GenTexture return 0, like a driver with no current context
	GenFails bool

	Calls []Call

	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]*VertexArray
	Textures     map[uint32]*Texture

	CurrentProgram uint32
	BoundVao       uint32
	ActiveUnit     uint32
	BoundBuffers   map[uint32]uint32
	// UnitTextures maps a texture unit index (0 based) to the texture bound on it
	UnitTextures map[uint32]uint32

	lastId uint32
}

func NewDevice() *Device {
	return &Device{
		Shaders:      map[uint32]*Shader{},
		Programs:     map[uint32]*Program{},
		Buffers:      map[uint32]*Buffer{},
		VertexArrays: map[uint32]*VertexArray{},
		Textures:     map[uint32]*Texture{},
		BoundBuffers: map[uint32]uint32{},
		UnitTextures: map[uint32]uint32{},
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) newId() uint32 {
	d.lastId++
	return d.lastId
}

// CallsNamed returns all recorded calls with the given name, in order
func (d *Device) CallsNamed(name string) []Call {

	out := make([]Call, 0)
	for i := 0; i < len(d.Calls); i++ {
		if d.Calls[i].Name == name {
			out = append(out, d.Calls[i])
		}
	}

	return out
}

func (d *Device) CountCalls(name string) int {
	return len(d.CallsNamed(name))
}

func (d *Device) ResetCalls() {
	d.Calls = d.Calls[:0]
}

// DeclareUniform makes name an active uniform of the program. Useful for names the
// source scanner doesn't understand, like struct members ('material.texture_diffuse0')
func (d *Device) DeclareUniform(progId uint32, name string) int32 {

	p := d.Programs[progId]
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}

	loc := int32(len(p.Uniforms))
	p.Uniforms[name] = loc
	return loc
}

// LiveShaders returns the number of shader objects created and not yet deleted
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.Shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

func (d *Device) LivePrograms() int {
	n := 0
	for _, p := range d.Programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

func (d *Device) LiveBuffers() int {
	n := 0
	for _, b := range d.Buffers {
		if !b.Deleted {
			n++
		}
	}
	return n
}

func (d *Device) LiveVertexArrays() int {
	n := 0
	for _, v := range d.VertexArrays {
		if !v.Deleted {
			n++
		}
	}
	return n
}

func (d *Device) LiveTextures() int {
	n := 0
	for _, t := range d.Textures {
		if !t.Deleted {
			n++
		}
	}
	return n
}

//
// Shaders
//

func (d *Device) CreateShader(shaderType uint32) uint32 {

	d.record("CreateShader", shaderType)
	if shaderType != glVertexShader && shaderType != glFragmentShader {
		return 0
	}

	id := d.newId()
	d.Shaders[id] = &Shader{Type: shaderType}
	return id
}

func (d *Device) ShaderSource(shaderId uint32, src string) {
	d.record("ShaderSource", shaderId, src)
	d.Shaders[shaderId].Source = src
}

func (d *Device) CompileShader(shaderId uint32) {

	d.record("CompileShader", shaderId)

	s := d.Shaders[shaderId]
	errLines := make([]string, 0)
	for i, line := range strings.Split(s.Source, "\n") {

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#error") {
			continue
		}

		msg := strings.TrimSpace(strings.TrimPrefix(trimmed, "#error"))
		errLines = append(errLines, fmt.Sprintf("ERROR: 0:%d: '#error' : %s", i+1, msg))
	}

	s.Compiled = len(errLines) == 0
	if !s.Compiled {
		s.Log = strings.Join(errLines, "\n") + "\n"
	}
}

func (d *Device) ShaderCompiled(shaderId uint32) bool {
	d.record("ShaderCompiled", shaderId)
	return d.Shaders[shaderId].Compiled
}

func (d *Device) ShaderInfoLog(shaderId uint32) string {
	d.record("ShaderInfoLog", shaderId)
	return d.Shaders[shaderId].Log
}

func (d *Device) DeleteShader(shaderId uint32) {

	d.record("DeleteShader", shaderId)
	if s, ok := d.Shaders[shaderId]; ok {
		s.Deleted = true
	}
}

//
// Programs
//

func (d *Device) CreateProgram() uint32 {

	d.record("CreateProgram")

	id := d.newId()
	d.Programs[id] = &Program{
		Uniforms: map[string]int32{},
		Values:   map[int32]any{},
	}
	return id
}

func (d *Device) AttachShader(progId, shaderId uint32) {
	d.record("AttachShader", progId, shaderId)
	d.Programs[progId].Shaders = append(d.Programs[progId].Shaders, shaderId)
}

func (d *Device) LinkProgram(progId uint32) {

	d.record("LinkProgram", progId)

	p := d.Programs[progId]
	if d.LinkFailLog != "" {
		p.Linked = false
		p.Log = d.LinkFailLog
		return
	}

	hasVert, hasFrag := false, false
	for _, shaderId := range p.Shaders {

		s := d.Shaders[shaderId]
		if !s.Compiled {
			p.Linked = false
			p.Log = fmt.Sprintf("ERROR: shader %d is not compiled\n", shaderId)
			return
		}

		hasVert = hasVert || s.Type == glVertexShader
		hasFrag = hasFrag || s.Type == glFragmentShader

		for _, m := range uniformDeclRegex.FindAllStringSubmatch(s.Source, -1) {
			if _, ok := p.Uniforms[m[1]]; !ok {
				p.Uniforms[m[1]] = int32(len(p.Uniforms))
			}
		}
	}

	if !hasVert || !hasFrag {
		p.Linked = false
		p.Log = "ERROR: program needs both a vertex and a fragment shader\n"
		return
	}

	p.Linked = true
}

func (d *Device) ProgramLinked(progId uint32) bool {
	d.record("ProgramLinked", progId)
	return d.Programs[progId].Linked
}

func (d *Device) ProgramInfoLog(progId uint32) string {
	d.record("ProgramInfoLog", progId)
	return d.Programs[progId].Log
}

func (d *Device) UseProgram(progId uint32) {
	d.record("UseProgram", progId)
	d.CurrentProgram = progId
}

func (d *Device) DeleteProgram(progId uint32) {

	d.record("DeleteProgram", progId)
	if p, ok := d.Programs[progId]; ok {
		p.Deleted = true
	}

	if d.CurrentProgram == progId {
		d.CurrentProgram = 0
	}
}

//
// Uniforms
//

func (d *Device) GetUniformLocation(progId uint32, name string) int32 {

	d.record("GetUniformLocation", progId, name)

	p, ok := d.Programs[progId]
	if !ok || !p.Linked {
		return -1
	}

	loc, ok := p.Uniforms[name]
	if !ok {
		return -1
	}

	return loc
}

func (d *Device) ProgramUniform1i(progId uint32, loc int32, val int32) {
	d.record("ProgramUniform1i", progId, loc, val)
	d.Programs[progId].Values[loc] = val
}

func (d *Device) ProgramUniform1f(progId uint32, loc int32, val float32) {
	d.record("ProgramUniform1f", progId, loc, val)
	d.Programs[progId].Values[loc] = val
}

func (d *Device) ProgramUniform3fv(progId uint32, loc int32, val *[3]float32) {
	d.record("ProgramUniform3fv", progId, loc, *val)
	d.Programs[progId].Values[loc] = *val
}

func (d *Device) ProgramUniformMatrix4fv(progId uint32, loc int32, val *[4][4]float32) {
	d.record("ProgramUniformMatrix4fv", progId, loc, *val)
	d.Programs[progId].Values[loc] = *val
}

//
// Buffers and vertex arrays
//

func (d *Device) GenBuffer() uint32 {

	d.record("GenBuffer")
	if d.GenFails {
		return 0
	}

	id := d.newId()
	d.Buffers[id] = &Buffer{}
	return id
}

func (d *Device) BindBuffer(target, bufId uint32) {

	d.record("BindBuffer", target, bufId)
	d.BoundBuffers[target] = bufId

	// Element buffer binding is part of vao state
	if target == glElementArrayBuffer && d.BoundVao != 0 {
		d.VertexArrays[d.BoundVao].ElementBuffer = bufId
	}
}

func (d *Device) BufferData(target uint32, sizeInBytes int, data unsafe.Pointer, usage uint32) {

	d.record("BufferData", target, sizeInBytes, usage)

	b := d.Buffers[d.BoundBuffers[target]]
	b.Target = target
	b.Usage = usage
	b.Uploads++
	b.Data = make([]byte, sizeInBytes)
	if data != nil && sizeInBytes > 0 {
		copy(b.Data, unsafe.Slice((*byte)(data), sizeInBytes))
	}
}

func (d *Device) DeleteBuffer(bufId uint32) {

	d.record("DeleteBuffer", bufId)
	if b, ok := d.Buffers[bufId]; ok {
		b.Deleted = true
	}
}

func (d *Device) GenVertexArray() uint32 {

	d.record("GenVertexArray")
	if d.GenFails {
		return 0
	}

	id := d.newId()
	d.VertexArrays[id] = &VertexArray{Attribs: map[uint32]*Attrib{}}
	return id
}

func (d *Device) BindVertexArray(vaoId uint32) {

	d.record("BindVertexArray", vaoId)
	d.BoundVao = vaoId

	if vaoId != 0 {
		d.BoundBuffers[glElementArrayBuffer] = d.VertexArrays[vaoId].ElementBuffer
	}
}

func (d *Device) DeleteVertexArray(vaoId uint32) {

	d.record("DeleteVertexArray", vaoId)
	if v, ok := d.VertexArrays[vaoId]; ok {
		v.Deleted = true
	}

	if d.BoundVao == vaoId {
		d.BoundVao = 0
	}
}

func (d *Device) attrib(index uint32) *Attrib {

	vao := d.VertexArrays[d.BoundVao]
	a, ok := vao.Attribs[index]
	if !ok {
		a = &Attrib{Index: index}
		vao.Attribs[index] = a
	}

	return a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	d.attrib(index).Enabled = true
}

func (d *Device) VertexAttribPointer(index uint32, compCount int32, glType uint32, normalized bool, stride int32, offset uintptr) {

	d.record("VertexAttribPointer", index, compCount, glType, normalized, stride, offset)

	a := d.attrib(index)
	a.CompCount = compCount
	a.GLType = glType
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.BoundBuffers[glArrayBuffer]
}

//
// Textures
//

func (d *Device) GenTexture() uint32 {

	d.record("GenTexture")
	if d.GenFails {
		return 0
	}

	id := d.newId()
	d.Textures[id] = &Texture{Params: map[uint32]int32{}}
	return id
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture", unit)
	d.ActiveUnit = unit - glTexture0
}

func (d *Device) BindTexture(target, texId uint32) {

	d.record("BindTexture", target, texId)
	d.UnitTextures[d.ActiveUnit] = texId

	if t, ok := d.Textures[texId]; ok {
		t.Target = target
	}
}

func (d *Device) TexParameteri(target, param uint32, val int32) {
	d.record("TexParameteri", target, param, val)
	d.Textures[d.UnitTextures[d.ActiveUnit]].Params[param] = val
}

func (d *Device) TexImage2D(target uint32, internalFormat int32, width, height int32, format, glType uint32, pixels unsafe.Pointer) {

	d.record("TexImage2D", target, internalFormat, width, height, format, glType)

	t := d.Textures[d.UnitTextures[d.ActiveUnit]]
	t.Width = width
	t.Height = height

	// Assumes 4 bytes per pixel, which is what the assets package uploads
	size := int(width) * int(height) * 4
	t.Pixels = make([]byte, size)
	if pixels != nil && size > 0 {
		copy(t.Pixels, unsafe.Slice((*byte)(pixels), size))
	}
}

func (d *Device) GenerateMipmap(target uint32) {
	d.record("GenerateMipmap", target)
	d.Textures[d.UnitTextures[d.ActiveUnit]].HasMipmaps = true
}

func (d *Device) DeleteTexture(texId uint32) {

	d.record("DeleteTexture", texId)
	if t, ok := d.Textures[texId]; ok {
		t.Deleted = true
	}
}

//
// Draw calls
//

func (d *Device) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {
	d.record("DrawElements", mode, count, indexType, offset)
}
