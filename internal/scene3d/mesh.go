package scene3d

// Quad is a planar four-sided face. Indices run counter-clockwise when seen
// from the side Normal points to.
type Quad struct {
	Indices [4]int
	Normal  Vec3
}

// Mesh is an indexed quad mesh in object space.
type Mesh struct {
	Vertices []Vec3
	Faces    []Quad
}

// NewBox returns an axis-aligned box centered on the origin.
func NewBox(width, height, depth float64) *Mesh {
	x, y, z := width/2, height/2, depth/2
	return &Mesh{
		Vertices: []Vec3{
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}, // front
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, // back
		},
		Faces: []Quad{
			{Indices: [4]int{0, 1, 2, 3}, Normal: Vec3{0, 0, 1}},
			{Indices: [4]int{5, 4, 7, 6}, Normal: Vec3{0, 0, -1}},
			{Indices: [4]int{1, 5, 6, 2}, Normal: Vec3{1, 0, 0}},
			{Indices: [4]int{4, 0, 3, 7}, Normal: Vec3{-1, 0, 0}},
			{Indices: [4]int{3, 2, 6, 7}, Normal: Vec3{0, 1, 0}},
			{Indices: [4]int{4, 5, 1, 0}, Normal: Vec3{0, -1, 0}},
		},
	}
}

// Object places a mesh in the world.
type Object struct {
	Mesh     *Mesh
	Position Vec3
	Rotation Euler
}

// world transforms an object-space point.
func (o *Object) world(p Vec3) Vec3 {
	return o.Rotation.Apply(p).Add(o.Position)
}
