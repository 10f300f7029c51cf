package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pxhost"
	"github.com/gekko3d/pxhost/rigid"
)

const (
	groundCells = 16
	groundSize  = 2.0
)

// populateDemo drops a handful of shapes onto a concrete floor. The ground
// is returned last so plots list the moving actors first.
func populateDemo(e *pxhost.Engine) ([]*pxhost.Actor, error) {
	var actors []*pxhost.Actor

	cube, err := e.AddCollisionMesh(
		rigid.Translation(mgl32.Vec3{10, 5, -10}),
		pxhost.BoxPoints(mgl32.Vec3{0.5, 0.5, 0.5}),
		pxhost.DynamicDesc{Mass: 1, Inertia: pxhost.InertiaTensorSolidCube(1, 1)},
		pxhost.Wood,
	)
	if err != nil {
		return nil, err
	}
	actors = append(actors, cube)

	tilt := mgl32.QuatRotate(math.Pi/6, mgl32.Vec3{0, 0, 1})
	capsule, err := e.AddCollisionCapsule(
		rigid.NewTransform(mgl32.Vec3{0, 8, 0}, tilt),
		0.25, 0.75,
		pxhost.DynamicDesc{Mass: 2, Inertia: pxhost.InertiaTensorSolidCapsule(0.25, 0.75, 2)},
		pxhost.SolidPVC,
	)
	if err != nil {
		return nil, err
	}
	actors = append(actors, capsule)

	steel, err := e.AddCollisionSphere(
		rigid.Translation(mgl32.Vec3{-3, 6, 2}),
		0.5,
		pxhost.DynamicDesc{Mass: 8, Inertia: pxhost.InertiaTensorSolidSphere(0.5, 8)},
		pxhost.SolidSteel,
	)
	if err != nil {
		return nil, err
	}
	actors = append(actors, steel)

	shell, err := e.AddCollisionSphere(
		rigid.Translation(mgl32.Vec3{3, 10, 3}),
		0.5,
		pxhost.DynamicDesc{
			Mass:           0.5,
			Inertia:        pxhost.InertiaTensorHollowSphere(0.5, 0.5),
			LinearVelocity: mgl32.Vec3{-1, 0, 0},
		},
		pxhost.HollowPVC,
	)
	if err != nil {
		return nil, err
	}
	actors = append(actors, shell)

	glider, err := e.AddRigidAerodynamic(
		rigid.Translation(mgl32.Vec3{-8, 12, -4}),
		[]pxhost.Component{
			{Geometry: pxhost.CapsuleGeometry(0.1, 1.5)},
			pxhost.At(pxhost.SphereGeometry(0.2), mgl32.Vec3{0, 0.1, 0}),
		},
		pxhost.DynamicDesc{
			Mass:           0.4,
			Inertia:        pxhost.InertiaTensorSolidCapsule(0.1, 1.5, 0.4),
			LinearVelocity: mgl32.Vec3{0, 0, 6},
			AngularDamping: 0.5,
		},
		pxhost.HollowSteel,
		pxhost.AeroDesc{Lift: 0.08, Drag: 0.02},
	)
	if err != nil {
		return nil, err
	}
	actors = append(actors, glider)

	vertices, indices := pxhost.GridMesh(groundCells, groundSize, 0)
	floor, err := e.CreateTriangleMeshGeometry(vertices, indices)
	if err != nil {
		return nil, err
	}
	ground, err := e.AddRigidStatic(rigid.IdentityTransform(), []pxhost.Component{{Geometry: floor}}, pxhost.Concrete)
	if err != nil {
		return nil, err
	}
	actors = append(actors, ground)

	return actors, nil
}
