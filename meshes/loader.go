package meshes

import (
	"errors"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/assert"
	"github.com/bloeys/learngl/gpu"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a mesh regardless
	// of what post process flags are passed to LoadMesh.
	//
	// Draw only knows how to draw triangle lists, so this must keep triangulation on
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate
)

// LoadMesh imports a model file and merges all of its meshes into one Mesh, with
// the indices of each scene mesh offset by the number of vertices before it.
//
// Scene meshes that have no normals or no uv0 get zeros for them.
func LoadMesh(dev gpu.Device, name, modelPath string, postProcessFlags asig.PostProcess, textures []Texture) (Mesh, error) {

	vertices, indices, err := loadVertices(modelPath, DefaultMeshLoadFlags|postProcessFlags)
	if err != nil {
		return Mesh{}, err
	}

	mesh := NewMesh(dev, vertices, indices, textures)
	mesh.Name = name
	return mesh, nil
}

func loadVertices(modelPath string, flags asig.PostProcess) ([]Vertex, []uint32, error) {

	scene, release, err := asig.ImportFile(modelPath, flags)
	if err != nil {
		return nil, nil, errors.New("Failed to load model. Err: " + err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, nil, errors.New("No meshes found in file: " + modelPath)
	}

	// Initial sizes assume 3 indices per face and are based on the first mesh
	vertices := make([]Vertex, 0, len(scene.Meshes[0].Vertices))
	indices := make([]uint32, 0, len(scene.Meshes[0].Faces)*3)

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		if len(sceneMesh.Faces) == 0 {
			continue
		}

		baseVertex := uint32(len(vertices))
		hasNormals := len(sceneMesh.Normals) == len(sceneMesh.Vertices)
		hasUv0 := len(sceneMesh.TexCoords[0]) == len(sceneMesh.Vertices)

		for v := 0; v < len(sceneMesh.Vertices); v++ {

			vert := Vertex{Pos: sceneMesh.Vertices[v]}

			if hasNormals {
				vert.Normal = sceneMesh.Normals[v]
			}

			if hasUv0 {
				vert.TexCoord = v3ToV2(&sceneMesh.TexCoords[0][v])
			}

			vertices = append(vertices, vert)
		}

		faceIndices := flattenFaces(sceneMesh.Faces)
		for j := 0; j < len(faceIndices); j++ {
			indices = append(indices, baseVertex+faceIndices[j])
		}
	}

	return vertices, indices, nil
}

func v3ToV2(v3 *gglm.Vec3) gglm.Vec2 {
	return gglm.Vec2{
		Data: [2]float32{v3.X(), v3.Y()},
	}
}

func flattenFaces(faces []asig.Face) []uint32 {

	assert.T(len(faces[0].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[0].Indices))

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {
		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints
}
