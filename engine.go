package pxhost

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/pxhost/rigid"
)

// Engine owns a simulation scene and steps it on a background goroutine.
// All methods are safe for concurrent use. A single mutex serializes scene
// access: client calls block while a step is in progress.
//
// An Engine whose initialization failed has no scene. Its operations
// return ErrNoScene and change nothing.
type Engine struct {
	mu sync.Mutex

	log       Logger
	cfg       Config
	materials *materialRegistry
	cooker    *rigid.Cooker

	// Guarded by mu.
	scene     *scene
	frequency uint32
	closed    bool

	sched *scheduler
}

type Option func(*Engine)

func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New builds the scene and starts the scheduler. When initialization
// fails the returned engine is usable but degraded, and err says why.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, frequency: cfg.FrequencyHz}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = NewDefaultLogger("pxhost", cfg.Debug)
	}

	if err := e.init(); err != nil {
		e.log.Errorf("engine init failed, running without a scene: %v", err)
		return e, err
	}

	e.sched = newScheduler(&e.mu, e.frequency, e.log, e.stepLocked)
	e.sched.start()
	e.log.Infof("engine started: %d Hz, gravity %v", e.frequency, e.cfg.GravityVec())
	return e, nil
}

// init acquires resources in order and keeps only what succeeded.
func (e *Engine) init() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	materials, err := newMaterialRegistry(e.cfg.Materials)
	if err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	e.materials = materials

	cooker, err := rigid.NewCooker(rigid.CookingParams{VertexLimit: e.cfg.Cooking.VertexLimit})
	if err != nil {
		return fmt.Errorf("cooking: %w", err)
	}
	e.cooker = cooker

	sc, err := newScene(e.cfg)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	e.scene = sc
	return nil
}

func (e *Engine) stepLocked(dt float32) error {
	if e.scene == nil {
		return ErrNoScene
	}
	return e.scene.step(dt)
}

func (e *Engine) usableLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.scene == nil {
		return ErrNoScene
	}
	return nil
}

// mutableLocked is usableLocked for operations that change the scene. It
// also fails once a step error has stopped the scheduler; reads still work.
func (e *Engine) mutableLocked() error {
	if err := e.usableLocked(); err != nil {
		return err
	}
	if err := e.sched.failedLocked(); err != nil {
		return fmt.Errorf("%w: %w", ErrStepFailed, err)
	}
	return nil
}

// Degraded reports whether the engine has no running simulation: either
// initialization failed or a step failed and stopped the scheduler.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched == nil || e.sched.failedLocked() != nil
}

func (e *Engine) Logger() Logger { return e.log }

// AddRigidStatic adds an immovable actor made of the given components.
func (e *Engine) AddRigidStatic(pose rigid.Transform, components []Component, material MaterialID) (*Actor, error) {
	return e.addActor(ActorStatic, pose, components, DynamicDesc{}, material, AeroDesc{})
}

// AddRigidDynamic adds a simulated actor. A Mass of InfiniteMass makes it
// kinematic with mass 1; otherwise Mass and Inertia are used as given.
func (e *Engine) AddRigidDynamic(pose rigid.Transform, components []Component, desc DynamicDesc, material MaterialID) (*Actor, error) {
	return e.addActor(ActorDynamic, pose, components, desc, material, AeroDesc{})
}

// AddRigidAerodynamic adds a dynamic actor that receives lift and drag on
// every tick.
func (e *Engine) AddRigidAerodynamic(pose rigid.Transform, components []Component, desc DynamicDesc, material MaterialID, aero AeroDesc) (*Actor, error) {
	if !finite32(aero.Lift) || !finite32(aero.Drag) || aero.Drag < 0 {
		return nil, fmt.Errorf("%w: lift %g, drag %g", ErrInvalidAero, aero.Lift, aero.Drag)
	}
	return e.addActor(ActorAerodynamic, pose, components, desc, material, aero)
}

// AddCollisionSphere adds a dynamic actor with a single sphere.
func (e *Engine) AddCollisionSphere(pose rigid.Transform, radius float32, desc DynamicDesc, material MaterialID) (*Actor, error) {
	return e.AddRigidDynamic(pose, []Component{{Geometry: SphereGeometry(radius)}}, desc, material)
}

// AddCollisionCapsule adds a dynamic actor with a single capsule lying
// along its local X axis.
func (e *Engine) AddCollisionCapsule(pose rigid.Transform, radius, halfHeight float32, desc DynamicDesc, material MaterialID) (*Actor, error) {
	return e.AddRigidDynamic(pose, []Component{{Geometry: CapsuleGeometry(radius, halfHeight)}}, desc, material)
}

// AddCollisionMesh cooks a hull from points and adds it as a dynamic
// actor. No actor is created when cooking fails.
func (e *Engine) AddCollisionMesh(pose rigid.Transform, points []mgl32.Vec3, desc DynamicDesc, material MaterialID) (*Actor, error) {
	g, err := e.CreateConvexMeshGeometry(points)
	if err != nil {
		return nil, err
	}
	return e.AddRigidDynamic(pose, []Component{{Geometry: g}}, desc, material)
}

func (e *Engine) addActor(kind ActorKind, pose rigid.Transform, components []Component, desc DynamicDesc, material MaterialID, aero AeroDesc) (*Actor, error) {
	if e.materials == nil {
		return nil, ErrNoScene
	}
	mtl, err := e.materials.lookup(material)
	if err != nil {
		return nil, err
	}

	// The body is private until inserted, so it is built without the lock.
	a := &Actor{
		id:         uuid.NewString(),
		kind:       kind,
		material:   material,
		components: make([]Component, len(components)),
		aero:       aero,
		engine:     e,
	}
	copy(a.components, components)
	if err := a.build(pose, desc, mtl); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mutableLocked(); err != nil {
		return nil, err
	}
	if _, err := e.scene.addActor(a); err != nil {
		return nil, err
	}
	if e.log.DebugEnabled() {
		e.log.Debugf("added %s actor %s (%d components, %s)", kind, a.id, len(components), material)
	}
	return a, nil
}

// build creates the backing body. It fails without side effects.
func (a *Actor) build(pose rigid.Transform, desc DynamicDesc, mtl *rigid.Material) error {
	if len(a.components) == 0 {
		return fmt.Errorf("%w: actor needs at least one component", ErrInvalidGeometry)
	}
	for i, c := range a.components {
		if c.Geometry == nil || !c.Geometry.Valid() {
			return fmt.Errorf("%w: component %d", ErrInvalidGeometry, i)
		}
	}

	var body *rigid.Body
	var err error
	if a.kind == ActorStatic {
		body, err = rigid.NewStaticBody(pose)
	} else {
		body, err = rigid.NewDynamicBody(pose)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPose, err)
	}

	if a.kind != ActorStatic {
		if err := a.applyDynamics(body, desc); err != nil {
			return err
		}
	}

	for i, c := range a.components {
		err := body.AttachShape(rigid.Shape{Geometry: c.Geometry, LocalPose: c.LocalPose, Material: mtl})
		if err != nil {
			return fmt.Errorf("%w: component %d: %w", ErrInvalidGeometry, i, err)
		}
	}

	if a.kind != ActorStatic && !desc.kinematic() {
		body.SetLinearVelocity(desc.LinearVelocity)
		body.SetAngularVelocity(desc.AngularVelocity)
	}
	a.body = body
	return nil
}

func (a *Actor) applyDynamics(body *rigid.Body, desc DynamicDesc) error {
	mass := desc.Mass
	if desc.kinematic() {
		// Must precede AttachShape so triangle meshes are accepted.
		body.SetKinematic(true)
		mass = 1
	}
	if err := body.SetMass(mass); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMass, err)
	}
	if err := body.SetMassSpaceInertiaTensor(desc.Inertia); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMass, err)
	}
	if err := body.SetLinearDamping(desc.LinearDamping); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDamping, err)
	}
	if err := body.SetAngularDamping(desc.AngularDamping); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDamping, err)
	}
	if !finiteVec32(desc.LinearVelocity) || !finiteVec32(desc.AngularVelocity) {
		return fmt.Errorf("%w: non-finite initial velocity", ErrInvalidMass)
	}
	a.mass = mass
	a.inertia = desc.Inertia
	return nil
}

// RemoveActor takes an actor out of the scene. Its handle stays readable
// but SetPose and AddForce then fail with ErrActorNotFound.
func (e *Engine) RemoveActor(a *Actor) error {
	if a == nil || a.engine != e {
		return ErrActorNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mutableLocked(); err != nil {
		return err
	}
	if !e.scene.removeActor(a) {
		return fmt.Errorf("%w: %s", ErrActorNotFound, a.id)
	}
	a.removed = true
	return nil
}

// Actors returns a copy of the current actor list. The list is not kept in
// sync with later additions or removals.
func (e *Engine) Actors() []*Actor {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.usableLocked() != nil {
		return nil
	}
	return e.scene.snapshot()
}

// Snapshot copies the state of every actor in one critical section, so
// all states come from the same step.
func (e *Engine) Snapshot() []ActorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.usableLocked() != nil {
		return nil
	}
	states := make([]ActorState, 0, len(e.scene.actors))
	for _, a := range e.scene.actors {
		states = append(states, a.stateLocked())
	}
	return states
}

func (e *Engine) ActorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.usableLocked() != nil {
		return 0
	}
	return len(e.scene.actors)
}

// SetGravity replaces the gravity vector from the next step on.
func (e *Engine) SetGravity(g mgl32.Vec3) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mutableLocked(); err != nil {
		return err
	}
	if err := e.scene.setGravity(g); err != nil {
		return fmt.Errorf("gravity %v: %w", g, err)
	}
	return nil
}

func (e *Engine) Gravity() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.usableLocked() != nil {
		return mgl32.Vec3{}
	}
	return e.scene.gravity()
}

// SetFrequency changes the tick rate. A step already in progress keeps its
// period; the new one applies from the next tick. hz must be in
// 1..MaxFrequencyHz.
func (e *Engine) SetFrequency(hz uint32) error {
	if !validFrequency(hz) {
		return fmt.Errorf("%w: %d Hz", ErrInvalidFrequency, hz)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mutableLocked(); err != nil {
		return err
	}
	e.frequency = hz
	e.sched.setPeriodLocked(hz)
	e.log.Debugf("frequency set to %d Hz", hz)
	return nil
}

func (e *Engine) Frequency() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frequency
}

// MaterialProperties returns the coefficients resolved for id at start.
func (e *Engine) MaterialProperties(id MaterialID) (MaterialProperties, error) {
	if e.materials == nil {
		return MaterialProperties{}, ErrNoScene
	}
	p, ok := e.materials.properties(id)
	if !ok {
		return MaterialProperties{}, fmt.Errorf("%w: %d", ErrInvalidMaterial, int(id))
	}
	return p, nil
}

type Stats struct {
	Ticks    uint64
	Overruns uint64
	LastStep time.Duration
	Actors   int
	State    SchedulerState
}

func (e *Engine) Stats() Stats {
	st := Stats{Actors: e.ActorCount()}
	if e.sched != nil {
		st.Ticks = e.sched.ticks.Load()
		st.Overruns = e.sched.overruns.Load()
		st.LastStep = time.Duration(e.sched.lastStep.Load())
		st.State = e.sched.currentState()
	}
	return st
}

// Close stops the scheduler, waits for any step in progress and releases
// the scene. No step runs after Close returns. Calling it again is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	if e.sched != nil {
		e.sched.stop()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scene != nil {
		e.scene.release()
	}
	if e.sched != nil {
		e.log.Infof("engine closed after %d ticks", e.sched.ticks.Load())
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func finite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func finiteVec32(v mgl32.Vec3) bool {
	return finite32(v[0]) && finite32(v[1]) && finite32(v[2])
}
