package pxhost

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pxhost/rigid"
)

func SphereGeometry(radius float32) rigid.SphereGeometry {
	return rigid.SphereGeometry{Radius: radius}
}

// CapsuleGeometry builds a capsule along the local X axis.
func CapsuleGeometry(radius, halfHeight float32) rigid.CapsuleGeometry {
	return rigid.CapsuleGeometry{Radius: radius, HalfHeight: halfHeight}
}

// ConvexMeshGeometry wraps a cooked hull. A nil mesh is rejected.
func ConvexMeshGeometry(mesh *rigid.ConvexMesh) (rigid.ConvexMeshGeometry, error) {
	if mesh == nil {
		return rigid.ConvexMeshGeometry{}, fmt.Errorf("%w: nil convex mesh", ErrInvalidGeometry)
	}
	return rigid.ConvexMeshGeometry{Mesh: mesh}, nil
}

// TriangleMeshGeometry wraps a cooked triangle mesh. A nil mesh is rejected.
func TriangleMeshGeometry(mesh *rigid.TriangleMesh) (rigid.TriangleMeshGeometry, error) {
	if mesh == nil {
		return rigid.TriangleMeshGeometry{}, fmt.Errorf("%w: nil triangle mesh", ErrInvalidGeometry)
	}
	return rigid.TriangleMeshGeometry{Mesh: mesh}, nil
}

// CreateConvexMesh cooks a hull from a point cloud. The cooker holds no
// state, so this runs without the engine lock.
func (e *Engine) CreateConvexMesh(points []mgl32.Vec3) (*rigid.ConvexMesh, error) {
	if e.cooker == nil {
		return nil, ErrNoScene
	}
	mesh, err := e.cooker.CookConvexMesh(points)
	if err != nil {
		e.log.Warnf("convex mesh cooking failed for %d points: %v", len(points), err)
		return nil, fmt.Errorf("%w: %w", ErrCookingFailed, err)
	}
	return mesh, nil
}

func (e *Engine) CreateTriangleMesh(vertices []mgl32.Vec3, indices []uint32) (*rigid.TriangleMesh, error) {
	if e.cooker == nil {
		return nil, ErrNoScene
	}
	mesh, err := e.cooker.CookTriangleMesh(vertices, indices)
	if err != nil {
		e.log.Warnf("triangle mesh cooking failed (%d vertices, %d indices): %v", len(vertices), len(indices), err)
		return nil, fmt.Errorf("%w: %w", ErrCookingFailed, err)
	}
	return mesh, nil
}

func (e *Engine) CreateConvexMeshGeometry(points []mgl32.Vec3) (rigid.ConvexMeshGeometry, error) {
	mesh, err := e.CreateConvexMesh(points)
	if err != nil {
		return rigid.ConvexMeshGeometry{}, err
	}
	return ConvexMeshGeometry(mesh)
}

func (e *Engine) CreateTriangleMeshGeometry(vertices []mgl32.Vec3, indices []uint32) (rigid.TriangleMeshGeometry, error) {
	mesh, err := e.CreateTriangleMesh(vertices, indices)
	if err != nil {
		return rigid.TriangleMeshGeometry{}, err
	}
	return TriangleMeshGeometry(mesh)
}

// BoxPoints returns the eight corners of an axis-aligned box with the given
// half extents, ready for CreateConvexMesh.
func BoxPoints(halfExtents mgl32.Vec3) []mgl32.Vec3 {
	x, y, z := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	return []mgl32.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {-x, y, -z}, {x, y, -z},
		{-x, -y, z}, {x, -y, z}, {-x, y, z}, {x, y, z},
	}
}

// GridMesh returns a flat square grid in the XZ plane at height y with
// cells x cells quads of the given size, wound so normals face +Y.
func GridMesh(cells int, size, y float32) ([]mgl32.Vec3, []uint32) {
	if cells < 1 {
		cells = 1
	}
	half := float32(cells) * size / 2
	stride := cells + 1
	vertices := make([]mgl32.Vec3, 0, stride*stride)
	for i := 0; i <= cells; i++ {
		for j := 0; j <= cells; j++ {
			vertices = append(vertices, mgl32.Vec3{float32(j)*size - half, y, float32(i)*size - half})
		}
	}
	indices := make([]uint32, 0, cells*cells*6)
	for i := 0; i < cells; i++ {
		for j := 0; j < cells; j++ {
			a := uint32(i*stride + j)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return vertices, indices
}
