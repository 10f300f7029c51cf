package rigid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestPointOnTriangle(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{2, 0, 0}
	c := mgl32.Vec3{0, 0, 2}

	cases := []struct {
		name string
		p    mgl32.Vec3
		want mgl32.Vec3
	}{
		{"face", mgl32.Vec3{0.5, 3, 0.5}, mgl32.Vec3{0.5, 0, 0.5}},
		{"vertex a", mgl32.Vec3{-1, 1, -1}, a},
		{"vertex b", mgl32.Vec3{3, 0, -1}, b},
		{"vertex c", mgl32.Vec3{-1, 0, 3}, c},
		{"edge ab", mgl32.Vec3{1, -1, -2}, mgl32.Vec3{1, 0, 0}},
		{"edge ac", mgl32.Vec3{-2, 5, 1}, mgl32.Vec3{0, 0, 1}},
		{"edge bc", mgl32.Vec3{2, 0, 2}, mgl32.Vec3{1, 0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertVecNear(t, tc.want, closestPointOnTriangle(tc.p, a, b, c), 1e-5)
		})
	}
}

func TestCapsuleProxies(t *testing.T) {
	g := CapsuleGeometry{Radius: 0.5, HalfHeight: 2}
	proxies := g.spheres(IdentityTransform(), nil)
	// 2*hh/r + 2 samples.
	require.Len(t, proxies, 10)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, proxies[0].center)
	assertVecNear(t, mgl32.Vec3{2, 0, 0}, proxies[len(proxies)-1].center, 1e-6)

	long := CapsuleGeometry{Radius: 0.01, HalfHeight: 10}
	assert.Len(t, long.spheres(IdentityTransform(), nil), maxCapsuleSamples)
}

func TestCollide_CapsuleOnMesh(t *testing.T) {
	mat, _ := NewMaterial(0.5, 0.5, 0)
	cooker, _ := NewCooker(DefaultCookingParams())
	mesh, err := cooker.CookTriangleMesh(
		[]mgl32.Vec3{{-5, 0, -5}, {5, 0, -5}, {-5, 0, 5}, {5, 0, 5}},
		[]uint32{0, 2, 1, 1, 2, 3},
	)
	require.NoError(t, err)

	ground, _ := NewStaticBody(IdentityTransform())
	require.NoError(t, ground.AttachShape(Shape{Geometry: TriangleMeshGeometry{Mesh: mesh}, Material: mat}))
	capsule, _ := NewDynamicBody(Translation(mgl32.Vec3{0, 0.4, 0}))
	require.NoError(t, capsule.AttachShape(Shape{Geometry: CapsuleGeometry{Radius: 0.5, HalfHeight: 1}, Material: mat}))

	var buf proxyBuffers
	c, ok := collide(capsule, ground, &buf)
	require.True(t, ok)
	assert.InDelta(t, 0.1, c.depth, 1e-5)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, c.normal, 1e-6)

	// Swapping the bodies flips the normal so it still points at a.
	c, ok = collide(ground, capsule, &buf)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{0, -1, 0}, c.normal, 1e-6)

	require.NoError(t, capsule.SetGlobalPose(Translation(mgl32.Vec3{0, 0.6, 0})))
	_, ok = collide(capsule, ground, &buf)
	assert.False(t, ok)
}
