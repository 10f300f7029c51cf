package rigid

import (
	"github.com/go-gl/mathgl/mgl32"
)

type GeometryKind int

const (
	GeometrySphere GeometryKind = iota
	GeometryCapsule
	GeometryConvexMesh
	GeometryTriangleMesh
)

func (k GeometryKind) String() string {
	switch k {
	case GeometrySphere:
		return "sphere"
	case GeometryCapsule:
		return "capsule"
	case GeometryConvexMesh:
		return "convex_mesh"
	case GeometryTriangleMesh:
		return "triangle_mesh"
	}
	return "unknown"
}

// Geometry is an immutable collision shape description. The set of
// implementations is closed to this package.
type Geometry interface {
	Kind() GeometryKind
	// Valid reports whether the geometry can be attached to a body.
	Valid() bool
	// Bounds returns the shape-space axis-aligned bounding box.
	Bounds() (min, max mgl32.Vec3)

	spheres(pose Transform, dst []sphereProxy) []sphereProxy
}

// SphereGeometry is centered on the shape origin.
type SphereGeometry struct {
	Radius float32
}

func (g SphereGeometry) Kind() GeometryKind { return GeometrySphere }
func (g SphereGeometry) Valid() bool        { return finite(g.Radius) && g.Radius > 0 }

func (g SphereGeometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	r := g.Radius
	return mgl32.Vec3{-r, -r, -r}, mgl32.Vec3{r, r, r}
}

func (g SphereGeometry) spheres(pose Transform, dst []sphereProxy) []sphereProxy {
	return append(dst, sphereProxy{center: pose.Position, radius: g.Radius})
}

// CapsuleGeometry is a swept sphere whose core segment runs along the shape
// X axis from -HalfHeight to +HalfHeight.
type CapsuleGeometry struct {
	Radius     float32
	HalfHeight float32
}

func (g CapsuleGeometry) Kind() GeometryKind { return GeometryCapsule }

func (g CapsuleGeometry) Valid() bool {
	return finite(g.Radius) && finite(g.HalfHeight) && g.Radius > 0 && g.HalfHeight >= 0
}

func (g CapsuleGeometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	r, h := g.Radius, g.HalfHeight
	return mgl32.Vec3{-h - r, -r, -r}, mgl32.Vec3{h + r, r, r}
}

const maxCapsuleSamples = 16

func (g CapsuleGeometry) spheres(pose Transform, dst []sphereProxy) []sphereProxy {
	n := int(2*g.HalfHeight/g.Radius) + 2
	if n > maxCapsuleSamples {
		n = maxCapsuleSamples
	}
	a := pose.Apply(mgl32.Vec3{-g.HalfHeight, 0, 0})
	b := pose.Apply(mgl32.Vec3{g.HalfHeight, 0, 0})
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n-1)
		dst = append(dst, sphereProxy{center: a.Add(b.Sub(a).Mul(t)), radius: g.Radius})
	}
	return dst
}

// ConvexMeshGeometry wraps a cooked convex mesh.
type ConvexMeshGeometry struct {
	Mesh *ConvexMesh
}

func (g ConvexMeshGeometry) Kind() GeometryKind { return GeometryConvexMesh }
func (g ConvexMeshGeometry) Valid() bool        { return g.Mesh != nil }

// Bounds is zero for a geometry without a mesh.
func (g ConvexMeshGeometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if g.Mesh == nil {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return g.Mesh.min, g.Mesh.max
}

func (g ConvexMeshGeometry) spheres(pose Transform, dst []sphereProxy) []sphereProxy {
	return append(dst, sphereProxy{center: pose.Apply(g.Mesh.center), radius: g.Mesh.radius})
}

// TriangleMeshGeometry wraps a cooked triangle mesh. Triangle meshes only
// collide against sphere-backed geometry.
type TriangleMeshGeometry struct {
	Mesh *TriangleMesh
}

func (g TriangleMeshGeometry) Kind() GeometryKind { return GeometryTriangleMesh }
func (g TriangleMeshGeometry) Valid() bool        { return g.Mesh != nil }

// Bounds is zero for a geometry without a mesh.
func (g TriangleMeshGeometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if g.Mesh == nil {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return g.Mesh.min, g.Mesh.max
}

func (g TriangleMeshGeometry) spheres(pose Transform, dst []sphereProxy) []sphereProxy {
	return dst
}

type sphereProxy struct {
	center mgl32.Vec3
	radius float32
}

// worldBounds transforms local bounds by pose and returns the enclosing
// world-space box.
func worldBounds(lmin, lmax mgl32.Vec3, pose Transform) (mgl32.Vec3, mgl32.Vec3) {
	corners := [8]mgl32.Vec3{
		{lmin.X(), lmin.Y(), lmin.Z()},
		{lmax.X(), lmin.Y(), lmin.Z()},
		{lmin.X(), lmax.Y(), lmin.Z()},
		{lmax.X(), lmax.Y(), lmin.Z()},
		{lmin.X(), lmin.Y(), lmax.Z()},
		{lmax.X(), lmin.Y(), lmax.Z()},
		{lmin.X(), lmax.Y(), lmax.Z()},
		{lmax.X(), lmax.Y(), lmax.Z()},
	}
	inf := float32(1e30)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}
	for _, c := range corners {
		w := pose.Apply(c)
		for i := 0; i < 3; i++ {
			wMin[i] = min(wMin[i], w[i])
			wMax[i] = max(wMax[i], w[i])
		}
	}
	return wMin, wMax
}
