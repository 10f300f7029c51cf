package pxhost

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pxhost/rigid"
)

// scene is the live world. Every method requires the engine lock.
type scene struct {
	world  *rigid.Scene
	actors []*Actor
	aero   []*Actor
}

func newScene(cfg Config) (*scene, error) {
	desc := rigid.DefaultSceneDesc()
	desc.Gravity = cfg.GravityVec()
	desc.SleepThreshold = cfg.Sleep.Threshold
	desc.SleepTime = cfg.Sleep.Time
	desc.CellSize = cfg.CellSize
	world, err := rigid.NewScene(desc)
	if err != nil {
		return nil, err
	}
	return &scene{world: world}, nil
}

// step applies this tick's aerodynamic forces, then advances the world.
func (s *scene) step(dt float32) error {
	applyLiftAndDrag(s.aero)
	return s.world.Step(dt)
}

func (s *scene) gravity() mgl32.Vec3 { return s.world.Gravity() }

func (s *scene) setGravity(g mgl32.Vec3) error {
	return s.world.SetGravity(g)
}

// addActor inserts a fully built actor. On error nothing is registered.
func (s *scene) addActor(a *Actor) (*Actor, error) {
	if err := s.world.AddBody(a.body); err != nil {
		return nil, err
	}
	s.actors = append(s.actors, a)
	if a.kind == ActorAerodynamic {
		s.aero = append(s.aero, a)
	}
	return a, nil
}

func (s *scene) removeActor(a *Actor) bool {
	i := slices.Index(s.actors, a)
	if i < 0 {
		return false
	}
	s.world.RemoveBody(a.body)
	s.actors = slices.Delete(s.actors, i, i+1)
	if j := slices.Index(s.aero, a); j >= 0 {
		s.aero = slices.Delete(s.aero, j, j+1)
	}
	return true
}

// snapshot returns a copy of the actor list that is safe to use after the
// lock is released.
func (s *scene) snapshot() []*Actor {
	out := make([]*Actor, len(s.actors))
	copy(out, s.actors)
	return out
}

func (s *scene) release() {
	s.world.Release()
	s.actors = nil
	s.aero = nil
}
