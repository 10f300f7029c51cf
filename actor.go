package pxhost

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pxhost/rigid"
)

type ActorKind int

const (
	ActorStatic ActorKind = iota
	ActorDynamic
	// ActorAerodynamic is a dynamic actor that also receives lift and drag
	// every tick.
	ActorAerodynamic
)

func (k ActorKind) String() string {
	switch k {
	case ActorStatic:
		return "static"
	case ActorDynamic:
		return "dynamic"
	case ActorAerodynamic:
		return "aerodynamic"
	}
	return fmt.Sprintf("ActorKind(%d)", int(k))
}

// InfiniteMass passed as DynamicDesc.Mass creates a kinematic actor. Any
// larger value, including +Inf, means the same.
const InfiniteMass = math.MaxFloat32

// Component is one collision shape of an actor, placed relative to the
// actor pose.
type Component struct {
	Geometry  rigid.Geometry
	LocalPose rigid.Transform
}

// At places a geometry at a local offset without rotation.
func At(g rigid.Geometry, offset mgl32.Vec3) Component {
	return Component{Geometry: g, LocalPose: rigid.Translation(offset)}
}

// DynamicDesc carries the mass properties and initial motion of a dynamic
// actor. Inertia is the diagonal mass-space tensor and is used as given.
type DynamicDesc struct {
	Mass            float32
	Inertia         mgl32.Vec3
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	LinearDamping   float32
	AngularDamping  float32
}

func (d DynamicDesc) kinematic() bool {
	return d.Mass >= InfiniteMass
}

type AeroDesc struct {
	Lift float32
	Drag float32
}

// Actor is a body registered with an Engine. ID, Kind, Material and
// Components never change and can be read freely; everything else goes
// through the engine lock.
type Actor struct {
	id         string
	kind       ActorKind
	material   MaterialID
	components []Component
	mass       float32
	inertia    mgl32.Vec3
	aero       AeroDesc

	engine  *Engine
	body    *rigid.Body
	removed bool
}

func (a *Actor) ID() string           { return a.id }
func (a *Actor) Kind() ActorKind      { return a.kind }
func (a *Actor) Material() MaterialID { return a.material }
func (a *Actor) Aero() AeroDesc       { return a.aero }

// Mass is the mass used by the solver; kinematic actors report 1.
func (a *Actor) Mass() float32 { return a.mass }

func (a *Actor) Inertia() mgl32.Vec3 { return a.inertia }

func (a *Actor) Components() []Component {
	out := make([]Component, len(a.components))
	copy(out, a.components)
	return out
}

func (a *Actor) Pose() rigid.Transform {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.body.GlobalPose()
}

func (a *Actor) LinearVelocity() mgl32.Vec3 {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.body.LinearVelocity()
}

func (a *Actor) AngularVelocity() mgl32.Vec3 {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.body.AngularVelocity()
}

func (a *Actor) IsKinematic() bool {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.body.IsKinematic()
}

// State copies the actor's current state under the engine lock.
func (a *Actor) State() ActorState {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.stateLocked()
}

func (a *Actor) stateLocked() ActorState {
	return ActorState{
		ID:              a.id,
		Kind:            a.kind,
		Material:        a.material,
		Pose:            a.body.GlobalPose(),
		LinearVelocity:  a.body.LinearVelocity(),
		AngularVelocity: a.body.AngularVelocity(),
		Kinematic:       a.body.IsKinematic(),
		Sleeping:        a.body.IsSleeping(),
		Components:      a.Components(),
	}
}

// SetPose teleports the actor. It is how kinematic actors are animated.
func (a *Actor) SetPose(pose rigid.Transform) error {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	if err := a.checkLocked(); err != nil {
		return err
	}
	if a.kind == ActorStatic {
		return fmt.Errorf("%w: static actor %s cannot move", ErrInvalidPose, a.id)
	}
	if err := a.body.SetGlobalPose(pose); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPose, err)
	}
	return nil
}

// AddForce queues a world-space force for the next tick only. It is
// ignored by static and kinematic actors.
func (a *Actor) AddForce(f mgl32.Vec3) error {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	if err := a.checkLocked(); err != nil {
		return err
	}
	a.body.AddForce(f)
	return nil
}

func (a *Actor) checkLocked() error {
	if a.engine.closed {
		return ErrClosed
	}
	if a.removed {
		return fmt.Errorf("%w: %s", ErrActorNotFound, a.id)
	}
	if err := a.engine.sched.failedLocked(); err != nil {
		return fmt.Errorf("%w: %w", ErrStepFailed, err)
	}
	return nil
}

// ActorState is a point-in-time copy of an actor for renderers.
type ActorState struct {
	ID              string
	Kind            ActorKind
	Material        MaterialID
	Pose            rigid.Transform
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Kinematic       bool
	Sleeping        bool
	Components      []Component
}
