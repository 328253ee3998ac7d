package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/geom"
)

type Shape interface {
	// bounds returns the half extents of the shape's bounding box.
	bounds() mgl64.Vec3
}

// Capsule is a Y-aligned capsule. Height is the length of the cylindrical
// part, so the full height is Height + 2*Radius.
type Capsule struct {
	Radius float64
	Height float64
}

func (c Capsule) bounds() mgl64.Vec3 {
	return mgl64.Vec3{c.Radius, c.Height/2 + c.Radius, c.Radius}
}

func (c Capsule) segment(center mgl64.Vec3) (bottom, top mgl64.Vec3) {
	half := mgl64.Vec3{0, c.Height / 2, 0}
	return center.Sub(half), center.Add(half)
}

// Box is an axis-aligned box.
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) bounds() mgl64.Vec3 {
	return b.HalfExtents
}

func boxRay(center mgl64.Vec3, half mgl64.Vec3, from, delta mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	origin := from.Sub(center)
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	normal := geom.Zero

	for axis := 0; axis < 3; axis++ {
		if math.Abs(delta[axis]) < 1e-12 {
			if math.Abs(origin[axis]) > half[axis] {
				return 0, geom.Zero, false
			}
			continue
		}

		t1 := (-half[axis] - origin[axis]) / delta[axis]
		t2 := (half[axis] - origin[axis]) / delta[axis]
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tMin {
			tMin = t1
			normal = geom.Zero
			normal[axis] = sign
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, geom.Zero, false
		}
	}

	// tMin < 0 means the ray starts inside the box or the box is behind it.
	if tMin < 0 || tMin > 1 {
		return 0, geom.Zero, false
	}
	return tMin, normal, true
}

func sphereRay(center mgl64.Vec3, radius float64, from, delta mgl64.Vec3) (float64, bool) {
	m := from.Sub(center)
	a := delta.Dot(delta)
	b := m.Dot(delta)
	c := m.Dot(m) - radius*radius
	if a < 1e-12 {
		return 0, false
	}

	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func capsuleRay(center mgl64.Vec3, c Capsule, from, delta mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	bottom, top := c.segment(center)
	if pointSegmentDistance(from, bottom, top) <= c.Radius {
		return 0, geom.Zero, false
	}

	best := math.Inf(1)
	var normal mgl64.Vec3

	// cylinder wall
	o := from.Sub(center)
	a := delta.X()*delta.X() + delta.Z()*delta.Z()
	if a > 1e-12 {
		b := 2 * (o.X()*delta.X() + o.Z()*delta.Z())
		cc := o.X()*o.X() + o.Z()*o.Z() - c.Radius*c.Radius
		disc := b*b - 4*a*cc
		if disc >= 0 {
			t := (-b - math.Sqrt(disc)) / (2 * a)
			y := o.Y() + t*delta.Y()
			if t >= 0 && t <= 1 && math.Abs(y) <= c.Height/2 {
				best = t
				p := o.Add(delta.Mul(t))
				normal = geom.Normalize(mgl64.Vec3{p.X(), 0, p.Z()})
			}
		}
	}

	for _, end := range []mgl64.Vec3{bottom, top} {
		t, ok := sphereRay(end, c.Radius, from, delta)
		if !ok || t >= best {
			continue
		}
		best = t
		normal = geom.Normalize(from.Add(delta.Mul(t)).Sub(end))
	}

	if math.IsInf(best, 1) {
		return 0, geom.Zero, false
	}
	return best, normal, true
}

func pointSegmentDistance(p, a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	length := ab.Dot(ab)
	if length < 1e-12 {
		return p.Sub(a).Len()
	}
	t := geom.Clamp(p.Sub(a).Dot(ab)/length, 0, 1)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// capsuleBoxClosest returns the closest points between a vertical capsule
// segment and a box.
func capsuleBoxClosest(center mgl64.Vec3, c Capsule, boxCenter, half mgl64.Vec3) (onSegment, onBox mgl64.Vec3) {
	bottom, top := c.segment(center)
	minY := boxCenter.Y() - half.Y()
	maxY := boxCenter.Y() + half.Y()

	qx := geom.Clamp(center.X(), boxCenter.X()-half.X(), boxCenter.X()+half.X())
	qz := geom.Clamp(center.Z(), boxCenter.Z()-half.Z(), boxCenter.Z()+half.Z())

	var sy, qy float64
	switch {
	case bottom.Y() > maxY:
		sy, qy = bottom.Y(), maxY
	case top.Y() < minY:
		sy, qy = top.Y(), minY
	default:
		lo := math.Max(bottom.Y(), minY)
		hi := math.Min(top.Y(), maxY)
		sy = geom.Clamp(center.Y(), lo, hi)
		qy = sy
	}

	return mgl64.Vec3{center.X(), sy, center.Z()}, mgl64.Vec3{qx, qy, qz}
}

func capsulesDistance(a mgl64.Vec3, ca Capsule, b mgl64.Vec3, cb Capsule) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	dy := math.Max(0, math.Abs(a.Y()-b.Y())-(ca.Height+cb.Height)/2)
	return math.Sqrt(dx*dx+dy*dy+dz*dz) - ca.Radius - cb.Radius
}

func aabbOverlap(a, ha, b, hb mgl64.Vec3, margin float64) bool {
	for axis := 0; axis < 3; axis++ {
		if math.Abs(a[axis]-b[axis]) > ha[axis]+hb[axis]+margin {
			return false
		}
	}
	return true
}

// minimumTranslation returns the smallest push that separates box a from box
// b, or false if they do not overlap.
func minimumTranslation(a, ha, b, hb mgl64.Vec3) (mgl64.Vec3, bool) {
	best := math.Inf(1)
	var push mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		d := a[axis] - b[axis]
		overlap := ha[axis] + hb[axis] - math.Abs(d)
		if overlap <= 0 {
			return geom.Zero, false
		}
		if overlap < best {
			best = overlap
			push = geom.Zero
			if d >= 0 {
				push[axis] = overlap
			} else {
				push[axis] = -overlap
			}
		}
	}
	return push, true
}
