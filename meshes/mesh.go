package meshes

import (
	"fmt"
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/assert"
	"github.com/bloeys/learngl/buffers"
	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex is uploaded as is, so its memory layout is the vertex buffer layout:
//   - Loc0: Pos (offset 0)
//   - Loc1: Normal (offset 12)
//   - Loc2: TexCoord (offset 24)
//
// For a stride of 32 bytes.
type Vertex struct {
	Pos      gglm.Vec3
	Normal   gglm.Vec3
	TexCoord gglm.Vec2
}

const VertexSize = int32(unsafe.Sizeof(Vertex{}))

type TextureRole uint8

const (
	TextureRole_Diffuse TextureRole = iota
	TextureRole_Specular
)

// UniformPrefix is the name used for textures of this role in the 'material' struct of shaders
func (r TextureRole) UniformPrefix() string {

	switch r {
	case TextureRole_Diffuse:
		return "texture_diffuse"
	case TextureRole_Specular:
		return "texture_specular"
	}

	assert.T(false, "Unknown texture role '%d'", r)
	return ""
}

type Texture struct {
	Id   uint32
	Role TextureRole
}

type Mesh struct {
	Name     string
	Vao      buffers.VertexArray
	Textures []Texture

	// IndexCount is the number of indices drawn by Draw
	IndexCount int32

	// Sampler uniform name per texture index, refreshed by Draw when Textures changes
	texUnifs []texUnif
	dev      gpu.Device
}

type texUnif struct {
	role TextureRole
	name string
}

func vertexLayout() []buffers.Element {
	return []buffers.Element{
		{ElementType: buffers.DataTypeVec3}, // Position
		{ElementType: buffers.DataTypeVec3}, // Normal
		{ElementType: buffers.DataTypeVec2}, // UV0
	}
}

// NewMesh uploads the vertices and indices once into static buffers owned by the mesh.
//
// Indices are not validated here (see ValidateIndices), an index that is out of range
// is undefined behavior on the GPU.
func NewMesh(dev gpu.Device, vertices []Vertex, indices []uint32, textures []Texture) Mesh {

	mesh := Mesh{
		Vao:        buffers.NewVertexArray(dev),
		Textures:   textures,
		IndexCount: int32(len(indices)),
		texUnifs:   make([]texUnif, 0, len(textures)),
		dev:        dev,
	}

	vbo := buffers.NewVertexBuffer(dev, vertexLayout()...)
	assert.T(vbo.Stride == VertexSize, "Vertex layout stride (%d) does not match the size of Vertex (%d)", vbo.Stride, VertexSize)

	if len(vertices) > 0 {
		vbo.SetRawData(unsafe.Pointer(&vertices[0]), len(vertices)*int(VertexSize), buffers.BufUsage_Static_Draw)
	} else {
		vbo.SetRawData(nil, 0, buffers.BufUsage_Static_Draw)
	}

	mesh.Vao.AddVertexBuffer(vbo)

	// Vao is still bound from AddVertexBuffer, so the upload also attaches the ibo to it
	ibo := buffers.NewIndexBuffer(dev)
	ibo.SetData(indices)
	mesh.Vao.SetIndexBuffer(ibo)

	// This is needed so that if you create meshes one after the other the
	// following mesh doesn't attach its vbo/ibo to this vao
	mesh.Vao.UnBind()

	return mesh
}

// Draw binds texture i to texture unit i and points the 'material.<role><i>' sampler
// uniform of the shader at it, then draws all indices as triangles.
//
// Texture unit and vao bindings are left as they are after the draw.
func (m *Mesh) Draw(shader *shaders.ShaderProgram) {

	for i := 0; i < len(m.Textures); i++ {
		m.dev.ActiveTexture(gl.TEXTURE0 + uint32(i))
		m.dev.BindTexture(gl.TEXTURE_2D, m.Textures[i].Id)
		shader.SetUnifInt32(m.texUnifName(i), int32(i))
	}

	m.Vao.Bind()
	m.dev.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, 0)
}

// texUnifName returns 'material.<role><i>' for texture i. Names are only formatted again
// when a texture is added or its role changes, since Draw runs every frame
func (m *Mesh) texUnifName(i int) string {

	role := m.Textures[i].Role
	if i < len(m.texUnifs) && m.texUnifs[i].role == role {
		return m.texUnifs[i].name
	}

	tu := texUnif{
		role: role,
		name: fmt.Sprintf("material.%s%d", role.UniformPrefix(), i),
	}

	// Draw asks for indices in order, so a new index is always the next one
	if i < len(m.texUnifs) {
		m.texUnifs[i] = tu
	} else {
		m.texUnifs = append(m.texUnifs, tu)
	}

	return tu.name
}

// Delete releases the vao and the vertex/index buffers. Textures can be shared between
// meshes and so are left alone, use DeleteWithTextures if this mesh is their only user
func (m *Mesh) Delete() {
	m.Vao.Delete()
}

func (m *Mesh) DeleteWithTextures() {

	m.Delete()

	for i := 0; i < len(m.Textures); i++ {

		if m.Textures[i].Id == 0 {
			continue
		}

		m.dev.DeleteTexture(m.Textures[i].Id)
		m.Textures[i].Id = 0
	}
}

// ValidateIndices returns an error if any index is out of range of vertexCount
func ValidateIndices(indices []uint32, vertexCount int) error {

	for i := 0; i < len(indices); i++ {
		if int(indices[i]) >= vertexCount {
			return fmt.Errorf("index %d at position %d is out of range. Vertex count: %d", indices[i], i, vertexCount)
		}
	}

	return nil
}

// FloatsPerVertex is the number of floats per vertex in interleaved data given to VerticesFromFloats
const FloatsPerVertex = 8

// VerticesFromFloats converts interleaved rows of 'pos.xyz, normal.xyz, uv.xy' into vertices
func VerticesFromFloats(data []float32) ([]Vertex, error) {

	if len(data)%FloatsPerVertex != 0 {
		return nil, fmt.Errorf("vertex data length must be a multiple of %d, but got %d floats", FloatsPerVertex, len(data))
	}

	verts := make([]Vertex, len(data)/FloatsPerVertex)
	for i := 0; i < len(verts); i++ {

		row := data[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
		verts[i] = Vertex{
			Pos:      gglm.NewVec3(row[0], row[1], row[2]),
			Normal:   gglm.NewVec3(row[3], row[4], row[5]),
			TexCoord: gglm.NewVec2(row[6], row[7]),
		}
	}

	return verts, nil
}

// SequentialIndices returns 0,1,...,n-1, for vertex data that is already a plain triangle list
func SequentialIndices(n int) []uint32 {

	indices := make([]uint32, n)
	for i := 0; i < n; i++ {
		indices[i] = uint32(i)
	}

	return indices
}
