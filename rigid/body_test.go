package rigid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBodies(t *testing.T) {
	s, err := NewStaticBody(Translation(mgl32.Vec3{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, BodyStatic, s.Type())
	assert.Equal(t, "static", s.Type().String())
	assert.Zero(t, s.Mass())

	d, err := NewDynamicBody(IdentityTransform())
	require.NoError(t, err)
	assert.Equal(t, "dynamic", d.Type().String())
	assert.Equal(t, float32(1), d.Mass())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, d.MassSpaceInertiaTensor())

	_, err = NewDynamicBody(Translation(mgl32.Vec3{float32(math.NaN()), 0, 0}))
	assert.ErrorIs(t, err, ErrInvalidPose)
}

func TestBody_AttachShape(t *testing.T) {
	mat, err := NewMaterial(0.5, 0.4, 0.3)
	require.NoError(t, err)
	cooker, err := NewCooker(DefaultCookingParams())
	require.NoError(t, err)
	mesh, err := cooker.CookTriangleMesh([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}, []uint32{0, 2, 1})
	require.NoError(t, err)

	b, _ := NewDynamicBody(IdentityTransform())
	assert.ErrorIs(t, b.AttachShape(Shape{Geometry: SphereGeometry{Radius: 1}}), ErrInvalidShape, "missing material")
	assert.ErrorIs(t, b.AttachShape(Shape{Material: mat}), ErrInvalidShape, "missing geometry")
	assert.ErrorIs(t, b.AttachShape(Shape{Geometry: SphereGeometry{Radius: -1}, Material: mat}), ErrInvalidShape)
	assert.ErrorIs(t, b.AttachShape(Shape{Geometry: ConvexMeshGeometry{}, Material: mat}), ErrInvalidShape)
	assert.ErrorIs(t, b.AttachShape(Shape{Geometry: TriangleMeshGeometry{Mesh: mesh}, Material: mat}), ErrInvalidShape)
	bad := NewTransform(mgl32.Vec3{}, mgl32.Quat{W: float32(math.NaN())})
	assert.ErrorIs(t, b.AttachShape(Shape{Geometry: SphereGeometry{Radius: 1}, LocalPose: bad, Material: mat}), ErrInvalidShape)
	assert.Zero(t, b.NumShapes())

	b.SetKinematic(true)
	assert.NoError(t, b.AttachShape(Shape{Geometry: TriangleMeshGeometry{Mesh: mesh}, Material: mat}))
	assert.NoError(t, b.AttachShape(Shape{Geometry: SphereGeometry{Radius: 1}, LocalPose: Translation(mgl32.Vec3{0, 3, 0}), Material: mat}))
	assert.Equal(t, 2, b.NumShapes())

	lo, hi := b.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, 0, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 4, 1}, hi)

	shapes := b.Shapes()
	shapes[0].Material = nil
	assert.NotNil(t, b.Shapes()[0].Material, "Shapes returns a copy")
}

func TestBody_MassProperties(t *testing.T) {
	s, _ := NewStaticBody(IdentityTransform())
	assert.ErrorIs(t, s.SetMass(1), ErrInvalidMass)
	assert.ErrorIs(t, s.SetMassSpaceInertiaTensor(mgl32.Vec3{1, 1, 1}), ErrInvalidMass)

	d, _ := NewDynamicBody(IdentityTransform())
	assert.ErrorIs(t, d.SetMass(0), ErrInvalidMass)
	assert.ErrorIs(t, d.SetMass(float32(math.Inf(1))), ErrInvalidMass)
	require.NoError(t, d.SetMass(4))
	assert.Equal(t, float32(4), d.Mass())

	assert.ErrorIs(t, d.SetMassSpaceInertiaTensor(mgl32.Vec3{1, -1, 1}), ErrInvalidMass)
	require.NoError(t, d.SetMassSpaceInertiaTensor(mgl32.Vec3{2, 0, 3}))
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, d.MassSpaceInertiaTensor())

	assert.ErrorIs(t, d.SetLinearDamping(-0.1), ErrInvalidDamping)
	assert.ErrorIs(t, d.SetAngularDamping(float32(math.NaN())), ErrInvalidDamping)
	require.NoError(t, d.SetLinearDamping(0.2))
	require.NoError(t, d.SetAngularDamping(0.3))
	assert.Equal(t, float32(0.2), d.LinearDamping())
	assert.Equal(t, float32(0.3), d.AngularDamping())
}

func TestBody_VelocityAndKinematic(t *testing.T) {
	s, _ := NewStaticBody(IdentityTransform())
	s.SetLinearVelocity(mgl32.Vec3{1, 0, 0})
	s.SetKinematic(true)
	assert.Equal(t, mgl32.Vec3{}, s.LinearVelocity())
	assert.False(t, s.IsKinematic())

	d, _ := NewDynamicBody(IdentityTransform())
	d.SetLinearVelocity(mgl32.Vec3{1, 2, 3})
	d.SetAngularVelocity(mgl32.Vec3{0, 1, 0})
	d.SetLinearVelocity(mgl32.Vec3{float32(math.NaN()), 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, d.LinearVelocity(), "NaN velocity is ignored")
	d.AddForce(mgl32.Vec3{5, 0, 0})

	d.SetKinematic(true)
	assert.True(t, d.IsKinematic())
	assert.Equal(t, mgl32.Vec3{}, d.LinearVelocity())
	assert.Equal(t, mgl32.Vec3{}, d.AngularVelocity())
	assert.Equal(t, mgl32.Vec3{}, d.AccumulatedForce())

	d.AddForce(mgl32.Vec3{5, 0, 0})
	assert.Equal(t, mgl32.Vec3{}, d.AccumulatedForce(), "kinematic bodies ignore forces")
}

func TestBody_SetGlobalPose(t *testing.T) {
	d, _ := NewDynamicBody(IdentityTransform())
	d.sleeping = true
	require.NoError(t, d.SetGlobalPose(NewTransform(mgl32.Vec3{1, 1, 1}, mgl32.Quat{W: 3})))
	assert.False(t, d.IsSleeping())
	assert.Equal(t, mgl32.QuatIdent(), d.GlobalPose().Rotation)
	assert.ErrorIs(t, d.SetGlobalPose(Translation(mgl32.Vec3{0, float32(math.Inf(-1)), 0})), ErrInvalidPose)
}
