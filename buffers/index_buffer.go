package buffers

import (
	"unsafe"

	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
	dev           gpu.Device
}

func (ib *IndexBuffer) Bind() {
	ib.dev.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	ib.dev.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// SetData uploads uint32 indices. The element array binding is vao state, so the
// vao this buffer belongs to should be bound first (see VertexArray.SetIndexBuffer)
func (ib *IndexBuffer) SetData(values []uint32) {

	ib.Bind()

	sizeInBytes := len(values) * 4
	ib.IndexBufCount = int32(len(values))

	if sizeInBytes == 0 {
		ib.dev.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, BufUsage_Static_Draw.ToGL())
	} else {
		ib.dev.BufferData(gl.ELEMENT_ARRAY_BUFFER, sizeInBytes, unsafe.Pointer(&values[0]), BufUsage_Static_Draw.ToGL())
	}
}

func (ib *IndexBuffer) Delete() {

	if ib.Id == 0 {
		return
	}

	ib.dev.DeleteBuffer(ib.Id)
	ib.Id = 0
}

func NewIndexBuffer(dev gpu.Device) IndexBuffer {

	ib := IndexBuffer{dev: dev}

	ib.Id = dev.GenBuffer()
	if ib.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	return ib
}
