package pxhost

import "github.com/go-gl/mathgl/mgl32"

// Inertia tensor helpers return the diagonal of the mass-space inertia
// tensor for uniform solids centered on the body origin. They do not
// validate their inputs.

func InertiaTensorSolidSphere(radius, mass float32) mgl32.Vec3 {
	i := 0.4 * mass * radius * radius
	return mgl32.Vec3{i, i, i}
}

// InertiaTensorHollowSphere is for a thin spherical shell.
func InertiaTensorHollowSphere(radius, mass float32) mgl32.Vec3 {
	i := 2.0 / 3.0 * mass * radius * radius
	return mgl32.Vec3{i, i, i}
}

// InertiaTensorSolidCube is for a cube with edge length width.
func InertiaTensorSolidCube(width, mass float32) mgl32.Vec3 {
	i := mass * width * width / 6
	return mgl32.Vec3{i, i, i}
}

// InertiaTensorSolidCapsule approximates a capsule lying along X as a
// cylinder of length 2*halfHeight plus two hemispherical caps, with the mass
// split in proportion to their volumes.
func InertiaTensorSolidCapsule(radius, halfHeight, mass float32) mgl32.Vec3 {
	cylLen := 2 * halfHeight
	capLen := 4.0 / 3.0 * radius // sphere volume over disk area
	total := cylLen + capLen
	if total <= 0 {
		return mgl32.Vec3{}
	}
	mCyl := mass * cylLen / total
	mCap := mass * capLen / total
	rr := radius * radius

	axial := rr * (0.5*mCyl + 0.4*mCap)
	// Each hemisphere's centroid sits 3r/8 beyond the cylinder end; the
	// parallel axis shift is folded into the hh and 0.75*hh*r terms.
	transverse := mCyl*(rr/4+halfHeight*halfHeight/3) +
		mCap*(0.4*rr+halfHeight*halfHeight+0.75*halfHeight*radius)
	return mgl32.Vec3{axial, transverse, transverse}
}
