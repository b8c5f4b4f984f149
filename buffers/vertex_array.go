package buffers

import (
	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/logging"
)

// VertexArray owns the vertex buffers and index buffer added to it, and deletes them in Delete
type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
	dev         gpu.Device
}

func (va *VertexArray) Bind() {
	va.dev.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	va.dev.BindVertexArray(0)
}

// AddVertexBuffer enables one attribute per layout element of the vbo, with attribute locations
// continuing after the ones used by previously added vbos
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	firstLoc := 0
	for i := 0; i < len(va.Vbos); i++ {
		firstLoc += len(va.Vbos[i].layout)
	}

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		loc := uint32(firstLoc + i)

		va.dev.EnableVertexAttribArray(loc)
		va.dev.VertexAttribPointer(loc, l.ElementType.CompCount(), l.ElementType.GLType(), false, vbo.Stride, uintptr(l.Offset))
	}

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

func (va *VertexArray) Delete() {

	if va.Id == 0 {
		return
	}

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}
	va.Vbos = nil

	va.IndexBuffer.Delete()

	va.dev.DeleteVertexArray(va.Id)
	va.Id = 0
}

func NewVertexArray(dev gpu.Device) VertexArray {

	vao := VertexArray{dev: dev}

	vao.Id = dev.GenVertexArray()
	if vao.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return vao
}
