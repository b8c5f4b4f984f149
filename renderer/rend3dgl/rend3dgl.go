package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/materials"
	"github.com/bloeys/learngl/meshes"
	"github.com/bloeys/learngl/renderer"
)

var _ renderer.Render = &Rend3DGL{}

// ModelMatUniform is the name of the model matrix uniform set for every drawn mesh
const ModelMatUniform = "model"

type Rend3DGL struct {
	BoundMatId uint32
	DrawCalls  uint32
}

// DrawMesh binds the material (unless it was the last one bound this frame), sets
// the model matrix and lets the mesh bind its textures and draw itself
func (r *Rend3DGL) DrawMesh(mesh *meshes.Mesh, modelMat *gglm.TrMat, mat *materials.Material) {

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}

	mat.SetUnifMat4(ModelMatUniform, &modelMat.Mat4)
	mesh.Draw(&mat.ShaderProg)
	r.DrawCalls++
}

// FrameEnd forgets the bound material, since anything outside the renderer may change it between frames
func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundMatId = 0
	r3d.DrawCalls = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
