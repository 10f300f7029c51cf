package rigid

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Penetration tolerated before positional correction kicks in.
	contactSlop = 0.005
	// Fraction of the remaining penetration removed per step.
	correctionRate = 0.8
	// Approach speeds below this do not bounce.
	bounceThreshold = 0.5
)

// contact between two bodies. normal points from b towards a.
type contact struct {
	a, b   *Body
	matA   *Material
	matB   *Material
	normal mgl32.Vec3
	point  mgl32.Vec3
	depth  float32
}

// collide returns the deepest contact between any shape pair of the two
// bodies.
func collide(a, b *Body, buf *proxyBuffers) (contact, bool) {
	var best contact
	found := false
	for _, sa := range a.shapes {
		poseA := a.pose.Mul(sa.LocalPose)
		for _, sb := range b.shapes {
			poseB := b.pose.Mul(sb.LocalPose)

			var c contact
			var ok bool
			switch {
			case sa.Geometry.Kind() == GeometryTriangleMesh && sb.Geometry.Kind() == GeometryTriangleMesh:
				continue
			case sb.Geometry.Kind() == GeometryTriangleMesh:
				buf.a = sa.Geometry.spheres(poseA, buf.a[:0])
				c, ok = spheresVsMesh(buf.a, sb.Geometry.(TriangleMeshGeometry).Mesh, poseB)
			case sa.Geometry.Kind() == GeometryTriangleMesh:
				buf.b = sb.Geometry.spheres(poseB, buf.b[:0])
				c, ok = spheresVsMesh(buf.b, sa.Geometry.(TriangleMeshGeometry).Mesh, poseA)
				c.normal = c.normal.Mul(-1)
			default:
				buf.a = sa.Geometry.spheres(poseA, buf.a[:0])
				buf.b = sb.Geometry.spheres(poseB, buf.b[:0])
				c, ok = spheresVsSpheres(buf.a, buf.b)
			}
			if !ok || (found && c.depth <= best.depth) {
				continue
			}
			c.a, c.b = a, b
			c.matA, c.matB = sa.Material, sb.Material
			best, found = c, true
		}
	}
	return best, found
}

type proxyBuffers struct {
	a, b []sphereProxy
}

func spheresVsSpheres(as, bs []sphereProxy) (contact, bool) {
	var best contact
	found := false
	for _, sa := range as {
		for _, sb := range bs {
			d := sa.center.Sub(sb.center)
			dist := d.Len()
			depth := sa.radius + sb.radius - dist
			if depth <= 0 || (found && depth <= best.depth) {
				continue
			}
			n := mgl32.Vec3{0, 1, 0}
			if dist > 1e-6 {
				n = d.Mul(1 / dist)
			}
			best = contact{
				normal: n,
				point:  sb.center.Add(n.Mul(sb.radius - depth*0.5)),
				depth:  depth,
			}
			found = true
		}
	}
	return best, found
}

// spheresVsMesh tests sphere proxies against a triangle mesh placed at
// pose. The normal points from the mesh towards the spheres.
func spheresVsMesh(spheres []sphereProxy, mesh *TriangleMesh, pose Transform) (contact, bool) {
	var best contact
	found := false
	q := pose.rotation()
	for _, s := range spheres {
		local := pose.ApplyInverse(s.center)
		rr := s.radius * s.radius
		for i := range mesh.triangles {
			a, b, c := mesh.Triangle(i)
			p := closestPointOnTriangle(local, a, b, c)
			d := local.Sub(p)
			distSq := d.LenSqr()
			if distSq >= rr {
				continue
			}
			dist := sqrtf(distSq)
			depth := s.radius - dist
			if found && depth <= best.depth {
				continue
			}
			n := mesh.normals[i]
			if dist > 1e-6 {
				n = d.Mul(1 / dist)
			}
			best = contact{
				normal: q.Rotate(n),
				point:  pose.Apply(p),
				depth:  depth,
			}
			found = true
		}
	}
	return best, found
}

// closestPointOnTriangle follows the Voronoi region walk from Ericson,
// Real-Time Collision Detection, 5.1.5.
func closestPointOnTriangle(p, a, b, c mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1, d2 := ab.Dot(ap), ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3, d4 := ab.Dot(bp), ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5, d6 := ab.Dot(cp), ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// resolve applies a normal impulse with restitution, a Coulomb friction
// impulse and a positional correction.
func (c *contact) resolve() {
	a, b := c.a, c.b
	n := c.normal

	invMassA := a.contactInverseMass()
	invMassB := b.contactInverseMass()
	if invMassA+invMassB == 0 {
		return
	}

	rA := c.point.Sub(a.pose.Position)
	rB := c.point.Sub(b.pose.Position)

	relVel := velocityAt(a, rA).Sub(velocityAt(b, rB))
	vn := relVel.Dot(n)

	if vn < 0 {
		staticMu, dynamicMu, restitution := combine(c.matA, c.matB)
		if -vn < bounceThreshold {
			restitution = 0
		}

		kn := effectiveMass(a, b, rA, rB, n, invMassA, invMassB)
		j := -(1 + restitution) * vn / kn
		applyImpulse(a, b, rA, rB, n.Mul(j))

		// Friction against the post-impulse tangential velocity.
		relVel = velocityAt(a, rA).Sub(velocityAt(b, rB))
		tangent := relVel.Sub(n.Mul(relVel.Dot(n)))
		if tangent.Len() > 1e-4 {
			tangent = tangent.Normalize()
			kt := effectiveMass(a, b, rA, rB, tangent, invMassA, invMassB)
			jt := -relVel.Dot(tangent) / kt
			// tangent is aligned with the slip, so jt is never positive.
			if -jt > staticMu*j {
				jt = -dynamicMu * j
			}
			applyImpulse(a, b, rA, rB, tangent.Mul(jt))
		}
	}

	if corr := c.depth - contactSlop; corr > 0 {
		push := n.Mul(corr * correctionRate / (invMassA + invMassB))
		a.pose.Position = a.pose.Position.Add(push.Mul(invMassA))
		b.pose.Position = b.pose.Position.Sub(push.Mul(invMassB))
	}
}

func velocityAt(b *Body, r mgl32.Vec3) mgl32.Vec3 {
	if !b.movable() {
		return mgl32.Vec3{}
	}
	return b.linVel.Add(b.angVel.Cross(r))
}

func effectiveMass(a, b *Body, rA, rB, dir mgl32.Vec3, invMassA, invMassB float32) float32 {
	k := invMassA + invMassB
	k += a.applyInverseInertia(rA.Cross(dir)).Cross(rA).Dot(dir)
	k += b.applyInverseInertia(rB.Cross(dir)).Cross(rB).Dot(dir)
	return k
}

func applyImpulse(a, b *Body, rA, rB, impulse mgl32.Vec3) {
	if a.movable() {
		a.linVel = a.linVel.Add(impulse.Mul(a.invMass))
		a.angVel = a.angVel.Add(a.applyInverseInertia(rA.Cross(impulse)))
	}
	if b.movable() {
		b.linVel = b.linVel.Sub(impulse.Mul(b.invMass))
		b.angVel = b.angVel.Sub(b.applyInverseInertia(rB.Cross(impulse)))
	}
}
