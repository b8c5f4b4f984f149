package buffers

import (
	"encoding/binary"
	"testing"

	"github.com/bloeys/learngl/gpu/gputest"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLayoutOffsetsAndStride(t *testing.T) {

	dev := gputest.NewDevice()
	vbo := NewVertexBuffer(dev,
		Element{ElementType: DataTypeVec3}, // Position
		Element{ElementType: DataTypeVec3}, // Normal
		Element{ElementType: DataTypeVec2}, // UV0
	)

	assert.Equal(t, int32(32), vbo.Stride)

	layout := vbo.GetLayout()
	require.Len(t, layout, 3)
	assert.Equal(t, 0, layout[0].Offset)
	assert.Equal(t, 12, layout[1].Offset)
	assert.Equal(t, 24, layout[2].Offset)

	// GetLayout hands out a copy
	layout[0].Offset = 99
	assert.Equal(t, 0, vbo.GetLayout()[0].Offset)
}

func TestElementTypes(t *testing.T) {

	tests := []struct {
		dt        ElementType
		compCount int32
		size      int32
		glType    uint32
	}{
		{DataTypeUint32, 1, 4, gl.UNSIGNED_INT},
		{DataTypeInt32, 1, 4, gl.INT},
		{DataTypeFloat32, 1, 4, gl.FLOAT},
		{DataTypeVec2, 2, 8, gl.FLOAT},
		{DataTypeVec3, 3, 12, gl.FLOAT},
		{DataTypeVec4, 4, 16, gl.FLOAT},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.compCount, tt.dt.CompCount())
			assert.Equal(t, tt.size, tt.dt.Size())
			assert.Equal(t, tt.glType, tt.dt.GLType())
		})
	}

	assert.Panics(t, func() { DataTypeUnknown.Size() })
	assert.Panics(t, func() { BufUsage_Unknown.ToGL() })
}

func TestVertexArrayAttributes(t *testing.T) {

	dev := gputest.NewDevice()

	vbo := NewVertexBuffer(dev, Element{ElementType: DataTypeVec3}, Element{ElementType: DataTypeVec2})
	vbo.SetData([]float32{1, 2, 3, 4, 5}, BufUsage_Static_Draw)

	ibo := NewIndexBuffer(dev)

	vao := NewVertexArray(dev)
	vao.AddVertexBuffer(vbo)
	vao.SetIndexBuffer(ibo)
	ibo.SetData([]uint32{0, 1, 2})

	v := dev.VertexArrays[vao.Id]
	require.Len(t, v.Attribs, 2)

	pos := v.Attribs[0]
	assert.True(t, pos.Enabled)
	assert.Equal(t, int32(3), pos.CompCount)
	assert.Equal(t, int32(20), pos.Stride)
	assert.Equal(t, uintptr(0), pos.Offset)
	assert.Equal(t, vbo.Id, pos.Buffer)

	uv := v.Attribs[1]
	assert.Equal(t, int32(2), uv.CompCount)
	assert.Equal(t, uintptr(12), uv.Offset)

	assert.Equal(t, ibo.Id, v.ElementBuffer)

	b := dev.Buffers[vbo.Id]
	assert.Equal(t, uint32(gl.STATIC_DRAW), b.Usage)
	assert.Len(t, b.Data, 20)

	idx := dev.Buffers[ibo.Id]
	require.Len(t, idx.Data, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(idx.Data[8:]))
}

func TestSecondVertexBufferContinuesLocations(t *testing.T) {

	dev := gputest.NewDevice()
	vao := NewVertexArray(dev)

	vao.AddVertexBuffer(NewVertexBuffer(dev, Element{ElementType: DataTypeVec3}, Element{ElementType: DataTypeVec3}))
	vao.AddVertexBuffer(NewVertexBuffer(dev, Element{ElementType: DataTypeVec4}))

	v := dev.VertexArrays[vao.Id]
	require.Len(t, v.Attribs, 3)
	assert.Equal(t, int32(4), v.Attribs[2].CompCount)
	assert.Equal(t, vao.Vbos[1].Id, v.Attribs[2].Buffer)
}

func TestVertexArrayDeleteReleasesEverything(t *testing.T) {

	dev := gputest.NewDevice()

	vao := NewVertexArray(dev)
	vao.AddVertexBuffer(NewVertexBuffer(dev, Element{ElementType: DataTypeVec3}))
	vao.SetIndexBuffer(NewIndexBuffer(dev))

	assert.Equal(t, 2, dev.LiveBuffers())
	assert.Equal(t, 1, dev.LiveVertexArrays())

	vao.Delete()
	vao.Delete()

	assert.Equal(t, 0, dev.LiveBuffers())
	assert.Equal(t, 0, dev.LiveVertexArrays())
	assert.Equal(t, 1, dev.CountCalls("DeleteVertexArray"))
	assert.Equal(t, 2, dev.CountCalls("DeleteBuffer"))
}

func TestFailedCreationIsLoggedNotFatal(t *testing.T) {

	dev := gputest.NewDevice()
	dev.GenFails = true

	var vbo VertexBuffer
	var ibo IndexBuffer
	var vao VertexArray
	assert.NotPanics(t, func() {
		vbo = NewVertexBuffer(dev, Element{ElementType: DataTypeVec3})
		ibo = NewIndexBuffer(dev)
		vao = NewVertexArray(dev)
	})

	assert.Zero(t, vbo.Id)
	assert.Zero(t, ibo.Id)
	assert.Zero(t, vao.Id)

	// Zero ids are never handed to the driver for deletion
	vbo.Delete()
	ibo.Delete()
	vao.Delete()
	assert.Equal(t, 0, dev.CountCalls("DeleteBuffer"))
	assert.Equal(t, 0, dev.CountCalls("DeleteVertexArray"))
}
