package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/materials"
	"github.com/bloeys/learngl/meshes"
)

type Render interface {
	DrawMesh(mesh *meshes.Mesh, modelMat *gglm.TrMat, mat *materials.Material)
	FrameEnd()
}
