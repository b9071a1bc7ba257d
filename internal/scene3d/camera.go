package scene3d

import "math"

// PerspectiveCamera looks down the -Z axis from Position.
type PerspectiveCamera struct {
	FOV      float64 // vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position Vec3
}

// NewPerspectiveCamera creates a camera at the origin.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far}
}

// Project maps a world point to normalized device coordinates in [-1, 1].
// ok is false when the point lies outside the near and far planes.
func (c *PerspectiveCamera) Project(p Vec3) (x, y float64, ok bool) {
	v := p.Sub(c.Position)
	depth := -v.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	return f / c.Aspect * v.X / depth, f * v.Y / depth, true
}

// ToScreen maps a world point to pixel coordinates of a width x height
// viewport with the origin at the top left.
func (c *PerspectiveCamera) ToScreen(p Vec3, width, height float64) (sx, sy float64, ok bool) {
	x, y, ok := c.Project(p)
	if !ok {
		return 0, 0, false
	}
	return (x + 1) / 2 * width, (1 - y) / 2 * height, true
}
