package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid pose: a rotation followed by a translation.
// The zero value is the identity transform.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat) Transform {
	return Transform{Position: position, Rotation: rotation}
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// Translation returns an unrotated transform at p.
func Translation(p mgl32.Vec3) Transform {
	return Transform{Position: p, Rotation: mgl32.QuatIdent()}
}

// rotation treats the zero quaternion as identity so zero-valued
// transforms behave.
func (t Transform) rotation() mgl32.Quat {
	if t.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return t.Rotation
}

// Normalized returns t with a unit rotation. ok is false when the
// transform holds NaN/Inf components.
func (t Transform) Normalized() (Transform, bool) {
	if !finiteVec(t.Position) || !finiteVec(t.Rotation.V) || !finite(t.Rotation.W) {
		return t, false
	}
	q := t.rotation()
	if q.Len() < 1e-6 {
		return t, false
	}
	return Transform{Position: t.Position, Rotation: q.Normalize()}, true
}

// Apply maps a point from local space into the space of t.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.rotation().Rotate(p).Add(t.Position)
}

// ApplyInverse maps a point from the space of t back into local space.
func (t Transform) ApplyInverse(p mgl32.Vec3) mgl32.Vec3 {
	return t.rotation().Conjugate().Rotate(p.Sub(t.Position))
}

// Mul composes t with a transform expressed in t's local space.
func (t Transform) Mul(local Transform) Transform {
	q := t.rotation()
	return Transform{
		Position: q.Rotate(local.Position).Add(t.Position),
		Rotation: q.Mul(local.rotation()).Normalize(),
	}
}

// Mat4 returns the object-to-world matrix, M = T * R.
func (t Transform) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	return translate.Mul4(t.rotation().Mat4())
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func sqrtf(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
