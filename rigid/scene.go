package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type SceneDesc struct {
	Gravity mgl32.Vec3
	// Bodies slower than SleepThreshold (linear and angular) for SleepTime
	// seconds are put to sleep. A zero SleepTime disables sleeping.
	SleepThreshold float32
	SleepTime      float32
	// CellSize is the broad-phase grid spacing in meters.
	CellSize float32
}

func DefaultSceneDesc() SceneDesc {
	return SceneDesc{
		Gravity:        mgl32.Vec3{0, 0, 0},
		SleepThreshold: 0.05,
		SleepTime:      1.0,
		CellSize:       2.0,
	}
}

const wakeMargin = 0.05

// Scene is a simulated world. It is not safe for concurrent use: callers
// serialize every method, including Step, behind their own lock.
type Scene struct {
	gravity        mgl32.Vec3
	sleepThreshold float32
	sleepTime      float32

	bodies   []*Body
	grid     *spatialGrid
	proxies  proxyBuffers
	steps    uint64
	released bool
}

func NewScene(desc SceneDesc) (*Scene, error) {
	if !finiteVec(desc.Gravity) {
		return nil, fmt.Errorf("%w: gravity %v", ErrInvalidScene, desc.Gravity)
	}
	if !finite(desc.SleepThreshold) || desc.SleepThreshold < 0 || !finite(desc.SleepTime) || desc.SleepTime < 0 {
		return nil, fmt.Errorf("%w: sleep threshold %g, time %g", ErrInvalidScene, desc.SleepThreshold, desc.SleepTime)
	}
	if !finite(desc.CellSize) || desc.CellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %g", ErrInvalidScene, desc.CellSize)
	}
	return &Scene{
		gravity:        desc.Gravity,
		sleepThreshold: desc.SleepThreshold,
		sleepTime:      desc.SleepTime,
		grid:           newSpatialGrid(desc.CellSize),
	}, nil
}

func (s *Scene) Gravity() mgl32.Vec3 { return s.gravity }

// SetGravity replaces the gravity vector and wakes every body so the change
// applies from the next step.
func (s *Scene) SetGravity(g mgl32.Vec3) error {
	if !finiteVec(g) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidScene, g)
	}
	s.gravity = g
	for _, b := range s.bodies {
		b.WakeUp()
	}
	return nil
}

func (s *Scene) AddBody(b *Body) error {
	if s.released {
		return ErrSceneReleased
	}
	if b.scene != nil {
		return ErrBodyInScene
	}
	b.scene = s
	b.updateBounds()
	s.bodies = append(s.bodies, b)
	s.wakeAround(b, b.aabbMin, b.aabbMax)
	return nil
}

// RemoveBody detaches b and wakes the bodies that were touching it. It
// reports false when b is not in this scene.
func (s *Scene) RemoveBody(b *Body) bool {
	if b.scene != s {
		return false
	}
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			b.scene = nil
			s.wakeAround(b, b.aabbMin, b.aabbMax)
			return true
		}
	}
	return false
}

// wakeAround wakes every sleeping body other than skip whose bounds come
// within wakeMargin of [lo, hi].
func (s *Scene) wakeAround(skip *Body, lo, hi mgl32.Vec3) {
	m := mgl32.Vec3{wakeMargin, wakeMargin, wakeMargin}
	lo, hi = lo.Sub(m), hi.Add(m)
	for _, b := range s.bodies {
		if b != skip && b.sleeping && overlaps(lo, hi, b.aabbMin, b.aabbMax) {
			b.WakeUp()
		}
	}
}

func (s *Scene) NumBodies() int { return len(s.bodies) }

func (s *Scene) Bodies() []*Body {
	out := make([]*Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Steps returns how many times Step has completed.
func (s *Scene) Steps() uint64 { return s.steps }

// Step advances the scene by dt seconds: integrate, find contacts, resolve
// them, then update sleep state. Forces queued with AddForce are consumed.
func (s *Scene) Step(dt float32) error {
	if s.released {
		return ErrSceneReleased
	}
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTimestep, dt)
	}

	for _, b := range s.bodies {
		b.integrate(dt, s.gravity)
		b.updateBounds()
	}

	for _, c := range s.findContacts() {
		c.resolve()
	}

	for _, b := range s.bodies {
		if b.movable() && !b.sleeping {
			b.updateBounds()
			s.trySleep(b, dt)
		}
	}

	s.steps++
	return nil
}

// Release drops every body. The scene cannot be stepped afterwards.
func (s *Scene) Release() {
	for _, b := range s.bodies {
		b.scene = nil
	}
	s.bodies = nil
	s.released = true
}

func (s *Scene) findContacts() []contact {
	s.grid.clear()
	for i, b := range s.bodies {
		s.grid.insert(i, b.aabbMin, b.aabbMax)
	}

	seen := make(map[[2]int]struct{})
	var contacts []contact
	for i, a := range s.bodies {
		if !a.movable() || a.sleeping {
			continue
		}
		for _, j := range s.grid.query(a.aabbMin, a.aabbMax) {
			if i == j {
				continue
			}
			key := [2]int{min(i, j), max(i, j)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			b := s.bodies[j]
			if !overlaps(a.aabbMin, a.aabbMax, b.aabbMin, b.aabbMax) {
				continue
			}
			c, ok := collide(a, b, &s.proxies)
			if !ok {
				continue
			}
			if b.sleeping {
				b.WakeUp()
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// trySleep puts a body to sleep once it has stayed slow for sleepTime.
func (s *Scene) trySleep(b *Body, dt float32) {
	if s.sleepTime <= 0 {
		return
	}
	if b.linVel.Len() < s.sleepThreshold && b.angVel.Len() < s.sleepThreshold {
		b.idleTime += dt
		if b.idleTime > s.sleepTime {
			b.sleeping = true
			b.linVel = mgl32.Vec3{}
			b.angVel = mgl32.Vec3{}
		}
	} else {
		b.idleTime = 0
	}
}
