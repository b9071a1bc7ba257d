package scene3d

import (
	"sort"

	"github.com/gogpu/gg"
)

// NormalColor maps a unit normal to a color the way a normal material does:
// each component in [-1, 1] becomes a channel in [0, 1].
func NormalColor(n Vec3) gg.RGBA {
	return gg.RGB((n.X+1)/2, (n.Y+1)/2, (n.Z+1)/2)
}

type visibleFace struct {
	points [4]Vec3
	normal Vec3
	dist   float64
}

// VisibleFaces returns the indices of the faces of o that face the camera.
func VisibleFaces(o *Object, cam *PerspectiveCamera) []int {
	var out []int
	for i := range o.Mesh.Faces {
		if _, ok := faceToCamera(o, i, cam); ok {
			out = append(out, i)
		}
	}
	return out
}

func faceToCamera(o *Object, i int, cam *PerspectiveCamera) (visibleFace, bool) {
	q := o.Mesh.Faces[i]
	var vf visibleFace
	var center Vec3
	for k, idx := range q.Indices {
		vf.points[k] = o.world(o.Mesh.Vertices[idx])
		center = center.Add(vf.points[k])
	}
	center = center.Scale(0.25)
	vf.normal = o.Rotation.Apply(q.Normal).Normalize()
	toCam := cam.Position.Sub(center)
	vf.dist = toCam.Len()
	return vf, vf.normal.Dot(toCam) > 0
}

// Render draws o onto dc as seen by cam. The viewport is the whole context.
// Faces crossing the near plane are skipped.
func Render(dc *gg.Context, o *Object, cam *PerspectiveCamera) error {
	w, h := float64(dc.Width()), float64(dc.Height())

	faces := make([]visibleFace, 0, 3)
	for i := range o.Mesh.Faces {
		if vf, ok := faceToCamera(o, i, cam); ok {
			faces = append(faces, vf)
		}
	}
	sort.Slice(faces, func(a, b int) bool { return faces[a].dist > faces[b].dist })

	for _, f := range faces {
		var xs, ys [4]float64
		clipped := false
		for k, p := range f.points {
			x, y, ok := cam.ToScreen(p, w, h)
			if !ok {
				clipped = true
				break
			}
			xs[k], ys[k] = x, y
		}
		if clipped {
			continue
		}

		dc.ClearPath()
		dc.MoveTo(xs[0], ys[0])
		for k := 1; k < 4; k++ {
			dc.LineTo(xs[k], ys[k])
		}
		dc.ClosePath()
		dc.SetColor(NormalColor(f.normal).Color())
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}
