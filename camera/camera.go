package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

const (
	// Pitch is kept away from +-90 so front never becomes parallel to the world up,
	// at which point the look-at basis flips
	MinPitch float32 = -89
	MaxPitch float32 = 89

	MinFov float32 = 5
	MaxFov float32 = 120
)

// Camera is a free-look (fps style) camera. Angles are in degrees.
//
// Orientation is stored as yaw and pitch and the direction vectors are derived from them
// after every change, so mouse deltas accumulate in angle space and the pitch clamp always holds.
type Camera struct {
	Pos gglm.Vec3

	WorldUp gglm.Vec3

	front gglm.Vec3
	right gglm.Vec3
	up    gglm.Vec3

	fov   float32
	yaw   float32
	pitch float32
}

func New(pos gglm.Vec3, fov, yaw, pitch float32) Camera {

	c := Camera{
		Pos:     pos,
		WorldUp: gglm.NewVec3(0, 1, 0),
		fov:     gglm.Clamp(fov, MinFov, MaxFov),
		yaw:     yaw,
		pitch:   gglm.Clamp(pitch, MinPitch, MaxPitch),
	}

	c.updateVectors()
	return c
}

func (c *Camera) Front() gglm.Vec3 {
	return c.front
}

func (c *Camera) Right() gglm.Vec3 {
	return c.right
}

func (c *Camera) Up() gglm.Vec3 {
	return c.up
}

func (c *Camera) Fov() float32 {
	return c.fov
}

func (c *Camera) Yaw() float32 {
	return c.yaw
}

func (c *Camera) Pitch() float32 {
	return c.pitch
}

// MoveForward moves along the front vector. Negative distances move backwards
func (c *Camera) MoveForward(distance float32) {
	c.Pos.Add(c.front.Clone().Scale(distance))
}

// MoveSideways moves along the right vector (front x world up). Negative distances move left
func (c *Camera) MoveSideways(distance float32) {
	c.Pos.Add(c.right.Clone().Scale(distance))
}

// Look adds the deltas to yaw and pitch, clamps pitch and then recomputes the direction vectors.
// Yaw is left unbounded since the trig functions wrap it anyway.
func (c *Camera) Look(deltaYaw, deltaPitch float32) {

	c.yaw += deltaYaw
	c.pitch = gglm.Clamp(c.pitch+deltaPitch, MinPitch, MaxPitch)

	c.updateVectors()
}

func (c *Camera) Zoom(deltaFov float32) {
	c.fov = gglm.Clamp(c.fov+deltaFov, MinFov, MaxFov)
}

// ViewMatrix is computed from the current state on every call, so call it after any mutations
func (c *Camera) ViewMatrix() gglm.Mat4 {
	target := c.Pos.Clone().Add(&c.front)
	return gglm.LookAtRH(&c.Pos, target, &c.up).Mat4
}

// ViewMatrixManual builds the same matrix as ViewMatrix, but by hand as
// rotation(right, up, -front) * translation(-pos)
func (c *Camera) ViewMatrixManual() gglm.Mat4 {

	r := c.right
	u := c.up
	d := gglm.NewVec3(-c.front.X(), -c.front.Y(), -c.front.Z())

	return gglm.Mat4{
		Data: [4][4]float32{
			{r.X(), u.X(), d.X(), 0},
			{r.Y(), u.Y(), d.Y(), 0},
			{r.Z(), u.Z(), d.Z(), 0},
			{-gglm.DotVec3(&r, &c.Pos), -gglm.DotVec3(&u, &c.Pos), -gglm.DotVec3(&d, &c.Pos), 1},
		},
	}
}

// ProjMatrix returns a perspective projection using the current fov
func (c *Camera) ProjMatrix(aspectRatio, nearClip, farClip float32) gglm.Mat4 {
	projMat := gglm.Perspective(c.fov*gglm.Deg2Rad, aspectRatio, nearClip, farClip)
	return *projMat.Clone()
}

func (c *Camera) updateVectors() {

	yawRad := float64(c.yaw) * math.Pi / 180
	pitchRad := float64(c.pitch) * math.Pi / 180

	c.front = gglm.NewVec3(
		float32(math.Cos(pitchRad)*math.Cos(yawRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Cos(pitchRad)*math.Sin(yawRad)),
	)
	c.front.Normalize()

	c.right = gglm.Cross(&c.front, &c.WorldUp)
	c.right.Normalize()

	c.up = gglm.Cross(&c.right, &c.front)
	c.up.Normalize()
}
