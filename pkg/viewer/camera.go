package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
)

const (
	DefaultNear   = 0.1
	DefaultFar    = 100.0
	DefaultWidth  = 800
	DefaultHeight = 600

	minSurface  = 2
	maxDistance = 40.0

	// DefaultMinDistance is the closest zoom for a solid of radius 1
	DefaultMinDistance = 1.2
)

// Camera is a perspective camera orbiting a target
type Camera struct {
	Eye    geometry.Vector3
	Target geometry.Vector3
	Up     geometry.Vector3
	FOV    float64 // vertical field of view in degrees
	Near   float64
	Far    float64
	Width  float64 // render surface in pixels
	Height float64
	// MinDistance is the closest the eye may zoom to the target
	MinDistance float64
}

// NewCamera creates a camera in the resolved default pose
func NewCamera(view schema.View) *Camera {
	c := &Camera{
		Up:          geometry.Up,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MinDistance: DefaultMinDistance,
	}
	c.Apply(view)
	return c
}

// Apply moves the camera to the pose of view without touching the surface size
func (c *Camera) Apply(view schema.View) {
	c.FOV = view.FOV
	c.Eye = view.CameraPos
	c.Target = view.CameraTarget
}

// Position returns the eye position
func (c *Camera) Position() geometry.Vector3 {
	return c.Eye
}

// Resize updates the render surface size, never below 2x2 pixels
func (c *Camera) Resize(width, height float64) {
	c.Width = math.Max(minSurface, math.Floor(width))
	c.Height = math.Max(minSurface, math.Floor(height))
}

// Aspect returns width over height
func (c *Camera) Aspect() float64 {
	return c.Width / c.Height
}

func (c *Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye.Vec3(), c.Target.Vec3(), c.Up.Vec3())
}

func (c *Camera) projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

// ViewProjection returns projection × view
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.projection().Mul4(c.view())
}

// Project maps a world point to normalized device coordinates. The flag is false
// for points behind the camera.
func (c *Camera) Project(p geometry.Vector3) (geometry.Vector3, bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec3().Vec4(1))
	if clip.W() <= 0 {
		return geometry.Vector3{}, false
	}
	return geometry.FromVec3(clip.Vec3().Mul(1 / clip.W())), true
}

// ToScreen maps a world point to pixel coordinates, origin at the top left.
// The flag is false for points behind the camera.
func (c *Camera) ToScreen(p geometry.Vector3) (x, y float64, ok bool) {
	ndc, ok := c.Project(p)
	if !ok {
		return 0, 0, false
	}
	x, y = c.NDCToScreen(ndc.X, ndc.Y)
	return x, y, true
}

// NDCToScreen converts normalized device coordinates to pixels
func (c *Camera) NDCToScreen(ndcX, ndcY float64) (x, y float64) {
	return (ndcX*0.5 + 0.5) * c.Width, (-ndcY*0.5 + 0.5) * c.Height
}

// ScreenToNDC converts pixels to normalized device coordinates
func (c *Camera) ScreenToNDC(x, y float64) (ndcX, ndcY float64) {
	return x/c.Width*2 - 1, -(y/c.Height*2 - 1)
}

// Unproject maps normalized device coordinates back into world space
func (c *Camera) Unproject(ndc geometry.Vector3) geometry.Vector3 {
	inv := c.ViewProjection().Inv()
	v := inv.Mul4x1(ndc.Vec3().Vec4(1))
	return geometry.FromVec3(v.Vec3().Mul(1 / v.W()))
}

// Ray returns the pick ray from the eye through a point in normalized device coordinates
func (c *Camera) Ray(ndcX, ndcY float64) geometry.Ray {
	through := c.Unproject(geometry.NewVector3(ndcX, ndcY, 0.5))
	return geometry.NewRay(c.Eye, through.Sub(c.Eye))
}

// Basis returns the camera's right, up and forward unit vectors in world space
func (c *Camera) Basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Distance returns the distance from the eye to the target
func (c *Camera) Distance() float64 {
	return c.Eye.Distance(c.Target)
}

// Rotate orbits the eye around the target by the given polar and azimuth deltas in radians
func (c *Camera) Rotate(deltaPolar, deltaAzimuth float64) {
	offset := c.Eye.Sub(c.Target)
	distance := offset.Length()
	if distance == 0 {
		return
	}

	polar := math.Asin(clamp(offset.Y/distance, -1, 1)) + deltaPolar
	azimuth := math.Atan2(offset.X, offset.Z) + deltaAzimuth

	// Clamp polar rotation to keep the up vector well defined
	maxAngle := math.Pi/2 - 0.1
	polar = clamp(polar, -maxAngle, maxAngle)

	c.Eye = c.Target.Add(geometry.NewVector3(
		distance*math.Cos(polar)*math.Sin(azimuth),
		distance*math.Sin(polar),
		distance*math.Cos(polar)*math.Cos(azimuth),
	))
}

// Zoom scales the eye distance by (1 + delta), staying within [MinDistance, 40]
func (c *Camera) Zoom(delta float64) {
	offset := c.Eye.Sub(c.Target)
	distance := offset.Length()
	if distance == 0 {
		return
	}
	next := clamp(distance*(1.0+delta), c.MinDistance, math.Max(c.MinDistance, maxDistance))
	c.Eye = c.Target.Add(offset.Mul(next / distance))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
