package pxhost

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/pxhost/rigid"
)

func TestLiftAndDrag(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}

	t.Run("at rest", func(t *testing.T) {
		assert.Equal(t, mgl32.Vec3{}, liftAndDrag(mgl32.Vec3{}, up, AeroDesc{Lift: 1, Drag: 1}))
	})

	t.Run("drag opposes velocity with speed squared", func(t *testing.T) {
		f := liftAndDrag(mgl32.Vec3{3, 0, 0}, up, AeroDesc{Drag: 0.5})
		assert.InDelta(t, -4.5, f.X(), 1e-5)
		assert.InDelta(t, 0, f.Y(), 1e-6)
		assert.InDelta(t, 0, f.Z(), 1e-6)

		f2 := liftAndDrag(mgl32.Vec3{6, 0, 0}, up, AeroDesc{Drag: 0.5})
		assert.InDelta(t, 4*f.X(), f2.X(), 1e-4)
	})

	t.Run("lift is perpendicular to velocity", func(t *testing.T) {
		v := mgl32.Vec3{2, -1, 0}
		f := liftAndDrag(v, up, AeroDesc{Lift: 0.25})
		assert.InDelta(t, 0, f.Dot(v), 1e-5)
		assert.Greater(t, f.Y(), float32(0))
		assert.InDelta(t, 0.25*v.LenSqr(), f.Len(), 1e-5)
	})

	t.Run("no lift when moving along the up axis", func(t *testing.T) {
		f := liftAndDrag(mgl32.Vec3{0, -4, 0}, up, AeroDesc{Lift: 1})
		assert.Equal(t, mgl32.Vec3{}, f)
	})
}

func TestAerodynamicActors(t *testing.T) {
	e := newTestEngine(t, nil)
	ball := []Component{{Geometry: SphereGeometry(0.5)}}
	desc := DynamicDesc{
		Mass:           1,
		Inertia:        InertiaTensorSolidSphere(0.5, 1),
		LinearVelocity: mgl32.Vec3{5, 0, 0},
	}

	plain, err := e.AddRigidDynamic(rigid.Translation(mgl32.Vec3{0, 0, 0}), ball, desc, Wood)
	require.NoError(t, err)
	dragged, err := e.AddRigidAerodynamic(rigid.Translation(mgl32.Vec3{0, 10, 0}), ball, desc, Wood, AeroDesc{Drag: 0.2})
	require.NoError(t, err)
	lifted, err := e.AddRigidAerodynamic(rigid.Translation(mgl32.Vec3{0, 20, 0}), ball, desc, Wood, AeroDesc{Lift: 0.2})
	require.NoError(t, err)

	waitTicks(t, e, 20)

	assert.InDelta(t, 5, plain.LinearVelocity().X(), 1e-4, "no aerodynamics without registration")
	assert.Less(t, dragged.LinearVelocity().X(), float32(5))
	assert.Greater(t, lifted.LinearVelocity().Y(), float32(0))
	assert.Equal(t, AeroDesc{Lift: 0.2}, lifted.Aero())
}

func TestAerodynamicActors_Validation(t *testing.T) {
	e := newTestEngine(t, nil)
	ball := []Component{{Geometry: SphereGeometry(0.5)}}
	_, err := e.AddRigidAerodynamic(rigid.IdentityTransform(), ball, DynamicDesc{Mass: 1}, Wood, AeroDesc{Drag: -1})
	assert.ErrorIs(t, err, ErrInvalidAero)
	assert.Zero(t, e.ActorCount())
}

func waitTicks(t *testing.T, e *Engine, n uint64) {
	t.Helper()
	start := e.Stats().Ticks
	require.Eventually(t, func() bool {
		return e.Stats().Ticks >= start+n
	}, 5*time.Second, time.Millisecond)
}
