package overlay

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/compositor/internal/scene3d"
	"github.com/gogpu/compositor/surface"
)

// CubeStep is the rotation, in radians, added around the X and Y axes on
// every Render.
const CubeStep = 0.01

// Camera parameters of the cube scene.
const (
	cubeFOV      = 75
	cubeNear     = 0.1
	cubeFar      = 1000
	cubeDistance = 5
)

// Cube renders a spinning unit cube whose faces are colored by their normals.
type Cube struct {
	surf   surface.Surface
	box    *scene3d.Object
	camera *scene3d.PerspectiveCamera
	steps  uint64
}

// NewCube creates a Cube painting into a width x height private surface.
func NewCube(width, height int) *Cube {
	s := surface.NewImageSurface(width, height)
	cam := scene3d.NewPerspectiveCamera(cubeFOV,
		float64(s.Width())/float64(s.Height()), cubeNear, cubeFar)
	cam.Position = scene3d.Vec3{Z: cubeDistance}

	return &Cube{
		surf:   s,
		box:    &scene3d.Object{Mesh: scene3d.NewBox(1, 1, 1)},
		camera: cam,
	}
}

// Surface returns the private surface.
func (c *Cube) Surface() surface.Surface {
	return c.surf
}

// Angle returns the current rotation around each of the X and Y axes,
// reduced to [0, 2*pi).
func (c *Cube) Angle() float64 {
	return math.Mod(float64(c.steps)*CubeStep, 2*math.Pi)
}

// Render advances the rotation by CubeStep, redraws the scene and composites
// it onto target.
func (c *Cube) Render(target surface.Surface) {
	dc := c.surf.Context()
	if dc == nil {
		return
	}
	c.steps++
	a := c.Angle()
	c.box.Rotation = scene3d.Euler{X: a, Y: a}

	c.surf.Clear(color.Transparent)
	if err := scene3d.Render(dc, c.box, c.camera); err != nil {
		gg.Logger().Debug("overlay: cube render failed", "err", err)
	}

	target.CopyFrom(c.surf)
}

// Close releases the private surface.
func (c *Cube) Close() error {
	return c.surf.Close()
}
