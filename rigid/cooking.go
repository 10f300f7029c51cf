package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultVertexLimit = 256

type CookingParams struct {
	// VertexLimit caps the number of distinct points a convex mesh may be
	// cooked from.
	VertexLimit int
}

func DefaultCookingParams() CookingParams {
	return CookingParams{VertexLimit: DefaultVertexLimit}
}

// Cooker turns raw point clouds and index buffers into collision-ready
// meshes. A Cooker holds no mutable state and may be shared between
// goroutines.
type Cooker struct {
	params CookingParams
}

func NewCooker(params CookingParams) (*Cooker, error) {
	if params.VertexLimit < 4 {
		return nil, fmt.Errorf("%w: vertex limit %d below 4", ErrInvalidCookingParams, params.VertexLimit)
	}
	return &Cooker{params: params}, nil
}

func (c *Cooker) Params() CookingParams { return c.params }

// ConvexMesh is a cooked convex point set. Collision treats it through its
// bounding sphere; Vertices keeps the distinct input points for drawing.
type ConvexMesh struct {
	vertices []mgl32.Vec3
	min, max mgl32.Vec3
	center   mgl32.Vec3
	radius   float32
}

func (m *ConvexMesh) NumVertices() int { return len(m.vertices) }

func (m *ConvexMesh) Vertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.vertices))
	copy(out, m.vertices)
	return out
}

func (m *ConvexMesh) Bounds() (mgl32.Vec3, mgl32.Vec3) { return m.min, m.max }

// CookConvexMesh validates a point cloud and builds a convex mesh from it.
// Duplicate points are collapsed before the limit is checked.
func (c *Cooker) CookConvexMesh(points []mgl32.Vec3) (*ConvexMesh, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrCookingTooFewPoints, len(points))
	}

	seen := make(map[mgl32.Vec3]struct{}, len(points))
	unique := make([]mgl32.Vec3, 0, len(points))
	for _, p := range points {
		if !finiteVec(p) {
			return nil, ErrCookingNonFinite
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	if len(unique) < 4 {
		return nil, fmt.Errorf("%w: %d distinct points", ErrCookingTooFewPoints, len(unique))
	}
	if len(unique) > c.params.VertexLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrCookingVertexLimit, len(unique), c.params.VertexLimit)
	}

	lo, hi := boundsOf(unique)
	if !spansVolume(unique, hi.Sub(lo).Len()) {
		return nil, ErrCookingDegenerate
	}

	center := lo.Add(hi).Mul(0.5)
	var radius float32
	for _, p := range unique {
		radius = max(radius, p.Sub(center).Len())
	}

	return &ConvexMesh{
		vertices: unique,
		min:      lo,
		max:      hi,
		center:   center,
		radius:   radius,
	}, nil
}

// TriangleMesh is a cooked, indexed triangle soup. Degenerate triangles are
// dropped during cooking.
type TriangleMesh struct {
	vertices  []mgl32.Vec3
	triangles [][3]uint32
	normals   []mgl32.Vec3
	min, max  mgl32.Vec3
}

func (m *TriangleMesh) NumVertices() int  { return len(m.vertices) }
func (m *TriangleMesh) NumTriangles() int { return len(m.triangles) }

// Triangle returns the corners of triangle i in mesh space.
func (m *TriangleMesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	t := m.triangles[i]
	return m.vertices[t[0]], m.vertices[t[1]], m.vertices[t[2]]
}

func (m *TriangleMesh) Normal(i int) mgl32.Vec3 { return m.normals[i] }

func (m *TriangleMesh) Vertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.vertices))
	copy(out, m.vertices)
	return out
}

func (m *TriangleMesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.triangles)*3)
	for _, t := range m.triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

func (m *TriangleMesh) Bounds() (mgl32.Vec3, mgl32.Vec3) { return m.min, m.max }

// CookTriangleMesh validates vertex and index buffers and builds a triangle
// mesh. indices holds three entries per triangle.
func (c *Cooker) CookTriangleMesh(vertices []mgl32.Vec3, indices []uint32) (*TriangleMesh, error) {
	if len(vertices) < 3 || len(indices) == 0 {
		return nil, fmt.Errorf("%w: %d vertices, %d indices", ErrCookingIndices, len(vertices), len(indices))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrCookingIndices, len(indices))
	}
	for _, v := range vertices {
		if !finiteVec(v) {
			return nil, ErrCookingNonFinite
		}
	}

	verts := make([]mgl32.Vec3, len(vertices))
	copy(verts, vertices)

	lo, hi := boundsOf(verts)
	eps := areaEpsilon(hi.Sub(lo).Len())

	mesh := &TriangleMesh{vertices: verts, min: lo, max: hi}
	for i := 0; i < len(indices); i += 3 {
		tri := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		for _, idx := range tri {
			if int(idx) >= len(verts) {
				return nil, fmt.Errorf("%w: index %d out of range (%d vertices)", ErrCookingIndices, idx, len(verts))
			}
		}
		a, b, cc := verts[tri[0]], verts[tri[1]], verts[tri[2]]
		n := b.Sub(a).Cross(cc.Sub(a))
		if n.Len() <= eps {
			continue
		}
		mesh.triangles = append(mesh.triangles, tri)
		mesh.normals = append(mesh.normals, n.Normalize())
	}
	if len(mesh.triangles) == 0 {
		return nil, ErrCookingDegenerate
	}
	return mesh, nil
}

func boundsOf(points []mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

func lengthEpsilon(extent float32) float32 { return 1e-5 * max(1, extent) }
func areaEpsilon(extent float32) float32   { return lengthEpsilon(extent) * lengthEpsilon(extent) }

// spansVolume reports whether the points contain four affinely independent
// members: a far pair, a point off their line and a point off their plane.
func spansVolume(points []mgl32.Vec3, extent float32) bool {
	eps := lengthEpsilon(extent)
	p0 := points[0]

	var p1 mgl32.Vec3
	var best float32
	for _, p := range points {
		if d := p.Sub(p0).Len(); d > best {
			best, p1 = d, p
		}
	}
	if best <= eps {
		return false
	}

	axis := p1.Sub(p0).Normalize()
	var p2 mgl32.Vec3
	best = 0
	for _, p := range points {
		if d := p.Sub(p0).Cross(axis).Len(); d > best {
			best, p2 = d, p
		}
	}
	if best <= eps {
		return false
	}

	normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	for _, p := range points {
		if absf(p.Sub(p0).Dot(normal)) > eps {
			return true
		}
	}
	return false
}
