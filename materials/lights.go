package materials

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// LightColors are the phong terms shared by all light casters
type LightColors struct {
	Ambient  gglm.Vec3
	Diffuse  gglm.Vec3
	Specular gglm.Vec3
}

func (c *LightColors) setOnMaterial(m *Material, structName string) {
	m.SetUnifVec3(structName+".ambient", &c.Ambient)
	m.SetUnifVec3(structName+".diffuse", &c.Diffuse)
	m.SetUnifVec3(structName+".specular", &c.Specular)
}

// Attenuation is the 'constant + linear*d + quadratic*d^2' falloff of point and spot lights
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

func (a *Attenuation) setOnMaterial(m *Material, structName string) {
	m.SetUnifFloat32(structName+".constant", a.Constant)
	m.SetUnifFloat32(structName+".linear", a.Linear)
	m.SetUnifFloat32(structName+".quadratic", a.Quadratic)
}

// Attenuation50 is roughly a 50 unit range
var Attenuation50 = Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}

type DirLight struct {
	Dir gglm.Vec3
	LightColors
}

func (l *DirLight) SetOnMaterial(m *Material, structName string) {
	m.SetUnifVec3(structName+".direction", &l.Dir)
	l.LightColors.setOnMaterial(m, structName)
}

type PointLight struct {
	Pos gglm.Vec3
	LightColors
	Attenuation
}

func (l *PointLight) SetOnMaterial(m *Material, structName string) {
	m.SetUnifVec3(structName+".position", &l.Pos)
	l.LightColors.setOnMaterial(m, structName)
	l.Attenuation.setOnMaterial(m, structName)
}

type SpotLight struct {
	Pos gglm.Vec3
	Dir gglm.Vec3
	LightColors
	Attenuation

	// Cutoffs are angles in degrees from Dir. Full intensity inside InnerCutoff,
	// fading to zero at OuterCutoff
	InnerCutoff float32
	OuterCutoff float32
}

// SetOnMaterial uploads the cutoffs as cosines, which is what shaders compare the
// light to fragment angle against
func (l *SpotLight) SetOnMaterial(m *Material, structName string) {
	m.SetUnifVec3(structName+".position", &l.Pos)
	m.SetUnifVec3(structName+".direction", &l.Dir)
	l.LightColors.setOnMaterial(m, structName)
	l.Attenuation.setOnMaterial(m, structName)
	m.SetUnifFloat32(structName+".cutOff", cosDeg(l.InnerCutoff))
	m.SetUnifFloat32(structName+".outerCutOff", cosDeg(l.OuterCutoff))
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg * gglm.Deg2Rad)))
}
