// Package scene3d is a minimal flat-shaded 3D renderer on top of gg.
//
// It knows exactly what the cube overlay needs: a box mesh, Euler rotation,
// a perspective camera looking down -Z and a normal-colored material. Faces
// are culled, sorted back to front and filled as 2D polygons.
package scene3d

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Euler is a rotation in radians applied in XYZ order, i.e. the rotation
// matrix is Rx * Ry * Rz.
type Euler struct {
	X, Y, Z float64
}

// Apply rotates v.
func (e Euler) Apply(v Vec3) Vec3 {
	// Rz
	sz, cz := math.Sincos(e.Z)
	v = Vec3{v.X*cz - v.Y*sz, v.X*sz + v.Y*cz, v.Z}
	// Ry
	sy, cy := math.Sincos(e.Y)
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
	// Rx
	sx, cx := math.Sincos(e.X)
	return Vec3{v.X, v.Y*cx - v.Z*sx, v.Y*sx + v.Z*cx}
}
