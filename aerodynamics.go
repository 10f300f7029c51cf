package pxhost

import "github.com/go-gl/mathgl/mgl32"

// minAeroSpeed is the speed below which no aerodynamic force is produced.
const minAeroSpeed = 1e-4

// liftAndDrag returns the aerodynamic force on a body moving with velocity
// v whose local +Y axis points along up. Drag opposes v with magnitude
// Cd*|v|^2. Lift has magnitude Cl*|v|^2 and acts along up with its
// component along v removed.
func liftAndDrag(v, up mgl32.Vec3, c AeroDesc) mgl32.Vec3 {
	speed := v.Len()
	if speed < minAeroSpeed {
		return mgl32.Vec3{}
	}
	force := v.Mul(-c.Drag * speed)

	dir := v.Mul(1 / speed)
	n := up.Sub(dir.Mul(up.Dot(dir)))
	if l := n.Len(); l > 1e-6 {
		force = force.Add(n.Mul(c.Lift * speed * speed / l))
	}
	return force
}

// applyLiftAndDrag queues this tick's aerodynamic force on every awake,
// force-driven actor in the list. Forces are consumed by the next step.
func applyLiftAndDrag(actors []*Actor) {
	for _, a := range actors {
		b := a.body
		if b.IsKinematic() || b.IsSleeping() {
			continue
		}
		up := b.GlobalPose().Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		f := liftAndDrag(b.LinearVelocity(), up, a.aero)
		if f.LenSqr() > 0 {
			b.AddForce(f)
		}
	}
}
