package materials

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/logging"
	"github.com/bloeys/learngl/shaders"
)

var (
	lastMatId uint32
)

// Material is a shader program plus the lighting properties uploaded to its 'material' struct.
//
// Uniform locations are looked up once per name and cached, including names the
// program doesn't have (which are reported once and then silently skipped).
type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram

	UnifLocs map[string]int32

	// Shininess of specular highlights
	Shininess float32
}

func (m *Material) Bind() {
	m.ShaderProg.Use()
}

func (m *Material) UnBind() {
	m.ShaderProg.UnBind()
}

func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	loc = m.ShaderProg.GetUniformLocation(uniformName)
	if loc == shaders.InvalidUniformLocation {
		logging.WarnLog.Printf("Uniform '%s' doesn't exist (or isn't used) on material '%s'\n", uniformName, m.Name)
	}

	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	m.ShaderProg.SetUnifInt32Loc(m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	m.ShaderProg.SetUnifFloat32Loc(m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	m.ShaderProg.SetUnifVec3Loc(m.GetUnifLoc(uniformName), vec3)
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	m.ShaderProg.SetUnifMat4Loc(m.GetUnifLoc(uniformName), mat4)
}

// SetSamplers points 'material.diffuse' and 'material.specular' at the given texture units,
// for shaders that sample one diffuse and one specular map
func (m *Material) SetSamplers(diffuseUnit, specularUnit int32) {
	m.SetUnifInt32("material.diffuse", diffuseUnit)
	m.SetUnifInt32("material.specular", specularUnit)
}

func (m *Material) UploadShininess() {
	m.SetUnifFloat32("material.shininess", m.Shininess)
}

// SetCamera sets the view/projection matrices and the camera position used for specular lighting
func (m *Material) SetCamera(view, projection *gglm.Mat4, camPos *gglm.Vec3) {
	m.SetUnifMat4("view", view)
	m.SetUnifMat4("projection", projection)
	m.SetUnifVec3("cameraPos", camPos)
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func NewMaterial(matName string, shaderProg shaders.ShaderProgram) Material {
	return Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shaderProg,
		UnifLocs:   make(map[string]int32),
		Shininess:  32,
	}
}
