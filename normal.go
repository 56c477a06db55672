package texemit

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/kdtree"
)

var upNormal = mgl64.Vec3{0, 1, 0}

// NormalLookup picks the normal used to orient a particle spawned at pos.
type NormalLookup interface {
	NormalAt(pos mgl64.Vec3) mgl64.Vec3
}

// DotNormalLookup returns the normal of the vertex whose dot product with pos
// is smallest, starting from a best score of 100. It is not a distance metric:
// unless the vertices are normalised it regularly picks a vertex on the far
// side of the mesh. Kept for parity with existing effect setups; prefer
// NearestNormalLookup for new ones.
type DotNormalLookup struct {
	mesh *Mesh
}

func NewDotNormalLookup(mesh *Mesh) *DotNormalLookup {
	return &DotNormalLookup{mesh: mesh}
}

func (l *DotNormalLookup) NormalAt(pos mgl64.Vec3) mgl64.Vec3 {
	if len(l.mesh.Normals) == 0 {
		return upNormal
	}
	closestIndex := 0
	closestPoint := 100.0
	for i, v := range l.mesh.Vertices {
		if d := pos.Dot(v); d < closestPoint {
			closestPoint = d
			closestIndex = i
		}
	}
	return l.mesh.Normals[closestIndex]
}

// NearestNormalLookup returns the normal of the vertex closest to pos, found
// with a k-d tree over the vertex positions. Vertices sharing a position
// resolve to the lowest index.
type NearestNormalLookup struct {
	mesh    *Mesh
	tree    *kdtree.Tree
	indexOf map[[3]float64]int
}

func NewNearestNormalLookup(mesh *Mesh) *NearestNormalLookup {
	l := &NearestNormalLookup{
		mesh:    mesh,
		indexOf: make(map[[3]float64]int, len(mesh.Vertices)),
	}
	points := make(kdtree.Points, 0, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		key := [3]float64{v[0], v[1], v[2]}
		if _, found := l.indexOf[key]; found {
			continue
		}
		l.indexOf[key] = i
		points = append(points, kdtree.Point{v[0], v[1], v[2]})
	}
	if len(points) > 0 {
		l.tree = kdtree.New(points, false)
	}
	return l
}

func (l *NearestNormalLookup) NormalAt(pos mgl64.Vec3) mgl64.Vec3 {
	if len(l.mesh.Normals) == 0 || l.tree == nil {
		return upNormal
	}
	got, _ := l.tree.Nearest(kdtree.Point{pos[0], pos[1], pos[2]})
	p, ok := got.(kdtree.Point)
	if !ok {
		return upNormal
	}
	return l.mesh.Normals[l.indexOf[[3]float64{p[0], p[1], p[2]}]]
}
