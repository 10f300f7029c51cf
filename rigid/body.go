package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type BodyType int

const (
	// BodyStatic bodies never move and have no mass properties.
	BodyStatic BodyType = iota
	// BodyDynamic bodies are driven by gravity, forces and contacts unless
	// flagged kinematic.
	BodyDynamic
)

func (t BodyType) String() string {
	if t == BodyStatic {
		return "static"
	}
	return "dynamic"
}

// Shape places a geometry on a body at a local pose with a material.
type Shape struct {
	Geometry  Geometry
	LocalPose Transform
	Material  *Material
}

// Body is a rigid actor. Bodies are not safe for concurrent use; the owner
// serializes access together with Scene.Step.
type Body struct {
	typ    BodyType
	pose   Transform
	shapes []Shape

	linVel mgl32.Vec3
	angVel mgl32.Vec3

	mass       float32
	invMass    float32
	inertia    mgl32.Vec3
	invInertia mgl32.Vec3

	linDamping float32
	angDamping float32
	kinematic  bool

	force  mgl32.Vec3
	torque mgl32.Vec3

	sleeping bool
	idleTime float32

	aabbMin, aabbMax mgl32.Vec3

	scene *Scene
}

func NewStaticBody(pose Transform) (*Body, error) {
	return newBody(BodyStatic, pose)
}

// NewDynamicBody creates a unit-mass dynamic body with a unit inertia
// tensor.
func NewDynamicBody(pose Transform) (*Body, error) {
	b, err := newBody(BodyDynamic, pose)
	if err != nil {
		return nil, err
	}
	b.mass, b.invMass = 1, 1
	b.inertia, b.invInertia = mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}
	return b, nil
}

func newBody(typ BodyType, pose Transform) (*Body, error) {
	p, ok := pose.Normalized()
	if !ok {
		return nil, ErrInvalidPose
	}
	return &Body{typ: typ, pose: p}, nil
}

// AttachShape adds a shape to a body that is not yet in a scene.
func (b *Body) AttachShape(s Shape) error {
	if b.scene != nil {
		return ErrBodyInScene
	}
	if s.Geometry == nil || !s.Geometry.Valid() {
		return fmt.Errorf("%w: missing or invalid geometry", ErrInvalidShape)
	}
	if s.Material == nil {
		return fmt.Errorf("%w: missing material", ErrInvalidShape)
	}
	if b.typ == BodyDynamic && !b.kinematic && s.Geometry.Kind() == GeometryTriangleMesh {
		return fmt.Errorf("%w: triangle meshes need a static or kinematic body", ErrInvalidShape)
	}
	local, ok := s.LocalPose.Normalized()
	if !ok {
		return fmt.Errorf("%w: local pose", ErrInvalidShape)
	}
	s.LocalPose = local
	b.shapes = append(b.shapes, s)
	b.updateBounds()
	return nil
}

func (b *Body) Type() BodyType              { return b.typ }
func (b *Body) GlobalPose() Transform       { return b.pose }
func (b *Body) NumShapes() int              { return len(b.shapes) }
func (b *Body) LinearVelocity() mgl32.Vec3  { return b.linVel }
func (b *Body) AngularVelocity() mgl32.Vec3 { return b.angVel }
func (b *Body) Mass() float32               { return b.mass }
func (b *Body) LinearDamping() float32      { return b.linDamping }
func (b *Body) AngularDamping() float32     { return b.angDamping }
func (b *Body) IsKinematic() bool           { return b.kinematic }
func (b *Body) IsSleeping() bool            { return b.sleeping }

// MassSpaceInertiaTensor returns the diagonal inertia tensor.
func (b *Body) MassSpaceInertiaTensor() mgl32.Vec3 { return b.inertia }

func (b *Body) Shapes() []Shape {
	out := make([]Shape, len(b.shapes))
	copy(out, b.shapes)
	return out
}

// Bounds returns the cached world-space bounding box of all shapes.
func (b *Body) Bounds() (mgl32.Vec3, mgl32.Vec3) { return b.aabbMin, b.aabbMax }

// SetGlobalPose teleports the body and wakes it, along with any sleeping
// body near its old or new position.
func (b *Body) SetGlobalPose(pose Transform) error {
	p, ok := pose.Normalized()
	if !ok {
		return ErrInvalidPose
	}
	oldMin, oldMax := b.aabbMin, b.aabbMax
	b.pose = p
	b.updateBounds()
	b.WakeUp()
	if b.scene != nil {
		b.scene.wakeAround(b, oldMin, oldMax)
		b.scene.wakeAround(b, b.aabbMin, b.aabbMax)
	}
	return nil
}

func (b *Body) SetMass(mass float32) error {
	if b.typ == BodyStatic {
		return fmt.Errorf("%w: static body", ErrInvalidMass)
	}
	if !finite(mass) || mass <= 0 {
		return fmt.Errorf("%w: mass %g", ErrInvalidMass, mass)
	}
	b.mass, b.invMass = mass, 1/mass
	return nil
}

// SetMassSpaceInertiaTensor sets the diagonal inertia tensor. A zero
// component locks rotation about that axis.
func (b *Body) SetMassSpaceInertiaTensor(inertia mgl32.Vec3) error {
	if b.typ == BodyStatic {
		return fmt.Errorf("%w: static body", ErrInvalidMass)
	}
	if !finiteVec(inertia) {
		return fmt.Errorf("%w: non-finite inertia", ErrInvalidMass)
	}
	var inv mgl32.Vec3
	for i := 0; i < 3; i++ {
		if inertia[i] < 0 {
			return fmt.Errorf("%w: negative inertia %v", ErrInvalidMass, inertia)
		}
		if inertia[i] > 0 {
			inv[i] = 1 / inertia[i]
		}
	}
	b.inertia, b.invInertia = inertia, inv
	return nil
}

func (b *Body) SetLinearVelocity(v mgl32.Vec3) {
	if b.typ == BodyStatic || !finiteVec(v) {
		return
	}
	b.linVel = v
	b.WakeUp()
}

func (b *Body) SetAngularVelocity(w mgl32.Vec3) {
	if b.typ == BodyStatic || !finiteVec(w) {
		return
	}
	b.angVel = w
	b.WakeUp()
}

func (b *Body) SetLinearDamping(d float32) error {
	if !finite(d) || d < 0 {
		return fmt.Errorf("%w: linear %g", ErrInvalidDamping, d)
	}
	b.linDamping = d
	return nil
}

func (b *Body) SetAngularDamping(d float32) error {
	if !finite(d) || d < 0 {
		return fmt.Errorf("%w: angular %g", ErrInvalidDamping, d)
	}
	b.angDamping = d
	return nil
}

// SetKinematic marks a dynamic body as animated: it keeps its pose until
// moved with SetGlobalPose and behaves as infinitely heavy in contacts.
func (b *Body) SetKinematic(kinematic bool) {
	if b.typ == BodyStatic {
		return
	}
	b.kinematic = kinematic
	if kinematic {
		b.linVel, b.angVel = mgl32.Vec3{}, mgl32.Vec3{}
		b.ClearForces()
	}
}

// AddForce accumulates a world-space force for the next step only.
func (b *Body) AddForce(f mgl32.Vec3) {
	if !b.movable() || !finiteVec(f) {
		return
	}
	b.force = b.force.Add(f)
	b.WakeUp()
}

// AddTorque accumulates a world-space torque for the next step only.
func (b *Body) AddTorque(t mgl32.Vec3) {
	if !b.movable() || !finiteVec(t) {
		return
	}
	b.torque = b.torque.Add(t)
	b.WakeUp()
}

// AccumulatedForce returns the force queued for the next step.
func (b *Body) AccumulatedForce() mgl32.Vec3 { return b.force }

func (b *Body) ClearForces() {
	b.force = mgl32.Vec3{}
	b.torque = mgl32.Vec3{}
}

func (b *Body) WakeUp() {
	b.sleeping = false
	b.idleTime = 0
}

func (b *Body) movable() bool {
	return b.typ == BodyDynamic && !b.kinematic
}

func (b *Body) contactInverseMass() float32 {
	if !b.movable() {
		return 0
	}
	return b.invMass
}

// applyInverseInertia multiplies a world-space vector by the world inverse
// inertia tensor, I_world^-1 = R * I_local^-1 * R^T.
func (b *Body) applyInverseInertia(v mgl32.Vec3) mgl32.Vec3 {
	if !b.movable() {
		return mgl32.Vec3{}
	}
	q := b.pose.rotation()
	local := q.Conjugate().Rotate(v)
	local = mgl32.Vec3{local[0] * b.invInertia[0], local[1] * b.invInertia[1], local[2] * b.invInertia[2]}
	return q.Rotate(local)
}

func (b *Body) integrate(dt float32, gravity mgl32.Vec3) {
	if !b.movable() {
		b.ClearForces()
		return
	}
	if b.sleeping {
		return
	}

	accel := gravity.Add(b.force.Mul(b.invMass))
	b.linVel = b.linVel.Add(accel.Mul(dt))
	b.angVel = b.angVel.Add(b.applyInverseInertia(b.torque).Mul(dt))

	b.linVel = b.linVel.Mul(1 / (1 + dt*b.linDamping))
	b.angVel = b.angVel.Mul(1 / (1 + dt*b.angDamping))

	b.pose.Position = b.pose.Position.Add(b.linVel.Mul(dt))
	if b.angVel.Len() > 0 {
		spin := mgl32.Quat{W: 0, V: b.angVel.Mul(0.5 * dt)}
		b.pose.Rotation = b.pose.Rotation.Add(spin.Mul(b.pose.Rotation)).Normalize()
	}

	b.ClearForces()
}

func (b *Body) updateBounds() {
	if len(b.shapes) == 0 {
		b.aabbMin, b.aabbMax = b.pose.Position, b.pose.Position
		return
	}
	inf := float32(1e30)
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, s := range b.shapes {
		lmin, lmax := s.Geometry.Bounds()
		wmin, wmax := worldBounds(lmin, lmax, b.pose.Mul(s.LocalPose))
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], wmin[i])
			hi[i] = max(hi[i], wmax[i])
		}
	}
	b.aabbMin, b.aabbMax = lo, hi
}
