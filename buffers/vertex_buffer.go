package buffers

import (
	"unsafe"

	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
	dev    gpu.Device
}

func (vb *VertexBuffer) Bind() {
	vb.dev.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	vb.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	if len(values) == 0 {
		vb.SetRawData(nil, 0, usage)
		return
	}

	vb.SetRawData(unsafe.Pointer(&values[0]), len(values)*4, usage)
}

// SetRawData uploads sizeInBytes bytes starting at data, which is how structs of
// interleaved vertex attributes get uploaded without copying into a []float32 first
func (vb *VertexBuffer) SetRawData(data unsafe.Pointer, sizeInBytes int, usage BufUsage) {
	vb.Bind()
	vb.dev.BufferData(gl.ARRAY_BUFFER, sizeInBytes, data, usage.ToGL())
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout sets the elements of one vertex, in order, and computes their offsets and the stride
func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	vb.dev.DeleteBuffer(vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(dev gpu.Device, layout ...Element) VertexBuffer {

	vb := VertexBuffer{dev: dev}

	vb.Id = dev.GenBuffer()
	if vb.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	vb.SetLayout(layout...)
	return vb
}
