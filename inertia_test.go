package pxhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInertiaTensorSolidSphere(t *testing.T) {
	for _, tc := range []struct{ r, m float32 }{{1, 1}, {0.5, 10}, {2, 3}} {
		want := 0.4 * tc.m * tc.r * tc.r
		got := InertiaTensorSolidSphere(tc.r, tc.m)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, want, got[i], 1e-6, "r=%g m=%g axis %d", tc.r, tc.m, i)
		}
	}
}

func TestInertiaTensorHollowSphere(t *testing.T) {
	got := InertiaTensorHollowSphere(1, 1)
	assert.InDelta(t, 2.0/3.0, got.X(), 1e-6)
	assert.Equal(t, got.X(), got.Y())
	assert.Equal(t, got.X(), got.Z())

	// A shell resists rotation more than a solid ball of the same mass.
	assert.Greater(t, got.X(), InertiaTensorSolidSphere(1, 1).X())
}

func TestInertiaTensorSolidCube(t *testing.T) {
	got := InertiaTensorSolidCube(2, 10)
	want := float32(10 * 4.0 / 6.0)
	assert.InDelta(t, want, got.X(), 1e-5)
	assert.InDelta(t, want, got.Y(), 1e-5)
	assert.InDelta(t, want, got.Z(), 1e-5)
}

func TestInertiaTensorSolidCapsule(t *testing.T) {
	t.Run("zero half height is a sphere", func(t *testing.T) {
		got := InertiaTensorSolidCapsule(1.5, 0, 4)
		want := InertiaTensorSolidSphere(1.5, 4)
		assert.InDelta(t, want.X(), got.X(), 1e-5)
		assert.InDelta(t, want.Y(), got.Y(), 1e-5)
		assert.InDelta(t, want.Z(), got.Z(), 1e-5)
	})

	t.Run("long axis is X", func(t *testing.T) {
		got := InertiaTensorSolidCapsule(0.5, 2, 1)
		assert.Less(t, got.X(), got.Y())
		assert.Equal(t, got.Y(), got.Z())
	})

	t.Run("mass split by volume", func(t *testing.T) {
		r, hh, m := float32(1), float32(1), float32(1)
		// Cylinder 2 : caps 4/3, so m_cyl = 0.6 and m_cap = 0.4.
		mCyl, mCap := float32(0.6), float32(0.4)
		got := InertiaTensorSolidCapsule(r, hh, m)
		assert.InDelta(t, 0.5*mCyl+0.4*mCap, got.X(), 1e-5)
		assert.InDelta(t, mCyl*(0.25+1.0/3.0)+mCap*(0.4+1+0.75), got.Y(), 1e-5)
	})

	t.Run("scales linearly with mass", func(t *testing.T) {
		a := InertiaTensorSolidCapsule(0.3, 0.7, 1)
		b := InertiaTensorSolidCapsule(0.3, 0.7, 5)
		assert.InDelta(t, 5*a.X(), b.X(), 1e-5)
		assert.InDelta(t, 5*a.Y(), b.Y(), 1e-5)
	})
}
