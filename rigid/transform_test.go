package rigid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], float64(eps), "component %d of %v vs %v", i, got, want)
	}
}

func TestTransform_ZeroValueIsIdentity(t *testing.T) {
	var tr Transform
	p := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, p, tr.Apply(p))
	assert.Equal(t, p, tr.ApplyInverse(p))
	assert.Equal(t, mgl32.Ident4(), tr.Mat4())
}

func TestTransform_ApplyRoundTrip(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{1, -2, 3}, mgl32.QuatRotate(0.7, mgl32.Vec3{1, 1, 0}.Normalize()))
	p := mgl32.Vec3{0.5, 4, -1}

	assertVecNear(t, p, tr.ApplyInverse(tr.Apply(p)), 1e-5)
	assertVecNear(t, tr.Apply(p), tr.Mat4().Mul4x1(p.Vec4(1)).Vec3(), 1e-5)
}

func TestTransform_Mul(t *testing.T) {
	parent := NewTransform(mgl32.Vec3{10, 0, 0}, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}))
	child := Translation(mgl32.Vec3{1, 0, 0})

	world := parent.Mul(child)
	// Rotating +X by 90 degrees about Y gives -Z.
	assertVecNear(t, mgl32.Vec3{10, 0, -1}, world.Position, 1e-5)

	p := mgl32.Vec3{0, 1, 2}
	assertVecNear(t, parent.Apply(child.Apply(p)), world.Apply(p), 1e-5)
}

func TestTransform_Normalized(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.Quat{W: 2})
	n, ok := tr.Normalized()
	assert.True(t, ok)
	assert.Equal(t, mgl32.QuatIdent(), n.Rotation)

	var zero Transform
	n, ok = zero.Normalized()
	assert.True(t, ok)
	assert.Equal(t, mgl32.QuatIdent(), n.Rotation)

	nan := float32(math.NaN())
	_, ok = Translation(mgl32.Vec3{nan, 0, 0}).Normalized()
	assert.False(t, ok)
	_, ok = NewTransform(mgl32.Vec3{}, mgl32.Quat{W: float32(math.Inf(1))}).Normalized()
	assert.False(t, ok)
	_, ok = NewTransform(mgl32.Vec3{}, mgl32.Quat{W: 1e-9}).Normalized()
	assert.False(t, ok)
}
