package materials

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/gpu/gputest"
	"github.com/bloeys/learngl/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	litVertSrc = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
	gl_Position = projection * view * model * vec4(aPos, 1.0);
}
`

	litFragSrc = `#version 410 core
out vec4 FragColor;

uniform vec3 cameraPos;

void main()
{
	FragColor = vec4(cameraPos, 1.0);
}
`
)

func newTestMaterial(t *testing.T, dev *gputest.Device) Material {
	t.Helper()

	prog, err := shaders.NewShaderProgramFromSource(dev, []byte(litVertSrc), []byte(litFragSrc))
	require.NoError(t, err)
	return NewMaterial("lit", prog)
}

func TestUniformLocationsAreCached(t *testing.T) {

	dev := gputest.NewDevice()
	mat := newTestMaterial(t, dev)

	loc := mat.GetUnifLoc("model")
	assert.GreaterOrEqual(t, loc, int32(0))
	assert.Equal(t, loc, mat.GetUnifLoc("model"))

	assert.Equal(t, shaders.InvalidUniformLocation, mat.GetUnifLoc("doesNotExist"))
	assert.Equal(t, shaders.InvalidUniformLocation, mat.GetUnifLoc("doesNotExist"))

	// One lookup per name
	assert.Equal(t, 2, dev.CountCalls("GetUniformLocation"))
}

func TestMissingUniformIsSkipped(t *testing.T) {

	dev := gputest.NewDevice()
	mat := newTestMaterial(t, dev)

	dev.ResetCalls()
	mat.SetUnifFloat32("material.shininess", 64)
	assert.Equal(t, 0, dev.CountCalls("ProgramUniform1f"))
}

func TestSetCameraAndShininess(t *testing.T) {

	dev := gputest.NewDevice()
	mat := newTestMaterial(t, dev)
	shininessLoc := dev.DeclareUniform(mat.ShaderProg.Id, "material.shininess")

	view := gglm.NewTrMatId()
	proj := gglm.NewTrMatId()
	camPos := gglm.NewVec3(1, 2, 3)

	mat.Bind()
	mat.SetCamera(&view.Mat4, &proj.Mat4, &camPos)
	mat.UploadShininess()

	values := dev.Programs[mat.ShaderProg.Id].Values
	assert.Equal(t, [3]float32{1, 2, 3}, values[mat.GetUnifLoc("cameraPos")])
	assert.Equal(t, view.Data, values[mat.GetUnifLoc("view")])
	assert.Equal(t, float32(32), values[shininessLoc])
	assert.Equal(t, mat.ShaderProg.Id, dev.CurrentProgram)
}

func TestSetSamplers(t *testing.T) {

	dev := gputest.NewDevice()
	mat := newTestMaterial(t, dev)
	diffuseLoc := dev.DeclareUniform(mat.ShaderProg.Id, "material.diffuse")
	specularLoc := dev.DeclareUniform(mat.ShaderProg.Id, "material.specular")

	mat.SetSamplers(0, 1)

	values := dev.Programs[mat.ShaderProg.Id].Values
	assert.Equal(t, int32(0), values[diffuseLoc])
	assert.Equal(t, int32(1), values[specularLoc])
}

func TestLightsSetOnMaterial(t *testing.T) {

	dev := gputest.NewDevice()
	mat := newTestMaterial(t, dev)

	declare := func(names ...string) map[string]int32 {
		locs := map[string]int32{}
		for _, n := range names {
			locs[n] = dev.DeclareUniform(mat.ShaderProg.Id, n)
		}
		return locs
	}

	locs := declare(
		"dirLight.direction", "dirLight.ambient", "dirLight.diffuse", "dirLight.specular",
		"pointLight.position", "pointLight.constant", "pointLight.linear", "pointLight.quadratic",
		"spotLight.position", "spotLight.direction", "spotLight.cutOff", "spotLight.outerCutOff",
	)

	colors := LightColors{
		Ambient:  gglm.NewVec3(0.1, 0.1, 0.1),
		Diffuse:  gglm.NewVec3(0.5, 0.5, 0.5),
		Specular: gglm.NewVec3(1, 1, 1),
	}

	dir := DirLight{Dir: gglm.NewVec3(0, -1, 0), LightColors: colors}
	point := PointLight{Pos: gglm.NewVec3(1, 2, 3), LightColors: colors, Attenuation: Attenuation50}
	spot := SpotLight{
		Pos:         gglm.NewVec3(0, 0, 3),
		Dir:         gglm.NewVec3(0, 0, -1),
		LightColors: colors,
		Attenuation: Attenuation50,
		InnerCutoff: 12.5,
		OuterCutoff: 17.5,
	}

	dir.SetOnMaterial(&mat, "dirLight")
	point.SetOnMaterial(&mat, "pointLight")
	spot.SetOnMaterial(&mat, "spotLight")

	values := dev.Programs[mat.ShaderProg.Id].Values
	assert.Equal(t, [3]float32{0, -1, 0}, values[locs["dirLight.direction"]])
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, values[locs["dirLight.diffuse"]])

	assert.Equal(t, [3]float32{1, 2, 3}, values[locs["pointLight.position"]])
	assert.Equal(t, float32(1), values[locs["pointLight.constant"]])
	assert.Equal(t, float32(0.032), values[locs["pointLight.quadratic"]])

	assert.Equal(t, [3]float32{0, 0, -1}, values[locs["spotLight.direction"]])
	assert.InDelta(t, math.Cos(12.5*math.Pi/180), values[locs["spotLight.cutOff"]], 1e-5)
	assert.InDelta(t, math.Cos(17.5*math.Pi/180), values[locs["spotLight.outerCutOff"]], 1e-5)
}

func TestMaterialIds(t *testing.T) {

	dev := gputest.NewDevice()
	a := newTestMaterial(t, dev)
	b := newTestMaterial(t, dev)
	assert.NotEqual(t, a.Id, b.Id)

	a.Delete()
	a.Delete()
	assert.Equal(t, 1, dev.LivePrograms())
}
