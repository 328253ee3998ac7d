package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sasha-s/go-deadlock"

	"github.com/cfoust/frag/pkg/geom"
)

// DefaultMargin is how far apart two shapes may be and still count as
// touching in ContactTest.
const DefaultMargin = 0.05

// BodyDef describes a body to add to a Space. A Mass of zero makes the body
// static.
type BodyDef struct {
	Shape    Shape
	Position mgl64.Vec3
	Mass     float64
	// GravityScale multiplies the space's gravity for this body.
	GravityScale float64
	// Friction damps horizontal velocity while the body rests on something.
	Friction float64
}

type body struct {
	BodyDef
	velocity   mgl64.Vec3
	generation uint32
	alive      bool
}

func (b *body) static() bool {
	return b.Mass <= 0
}

// Space is a small physics world: axis-aligned boxes and upright capsules,
// integrated with explicit Euler and pushed out of static geometry. It is
// safe for concurrent use.
type Space struct {
	mutex   deadlock.RWMutex
	gravity mgl64.Vec3
	margin  float64
	bodies  []body
	free    []uint32
}

var _ Engine = (*Space)(nil)

func NewSpace(gravity mgl64.Vec3) *Space {
	return &Space{
		gravity: gravity,
		margin:  DefaultMargin,
	}
}

func (s *Space) Add(def BodyDef) Handle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if def.Shape == nil {
		panic("physics: body has no shape")
	}

	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = uint32(len(s.bodies))
		s.bodies = append(s.bodies, body{})
	}

	slot := &s.bodies[index]
	generation := slot.generation + 1
	*slot = body{
		BodyDef:    def,
		generation: generation,
		alive:      true,
	}

	return Handle{Index: index, Generation: generation}
}

// Remove deletes a body. It returns false if the handle was stale.
func (s *Space) Remove(h Handle) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b := s.get(h)
	if b == nil {
		return false
	}
	b.alive = false
	s.free = append(s.free, h.Index)
	return true
}

func (s *Space) Contains(h Handle) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.get(h) != nil
}

// NumBodies returns the number of live bodies.
func (s *Space) NumBodies() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.bodies) - len(s.free)
}

func (s *Space) get(h Handle) *body {
	if !h.Valid() || int(h.Index) >= len(s.bodies) {
		return nil
	}
	b := &s.bodies[h.Index]
	if !b.alive || b.generation != h.Generation {
		return nil
	}
	return b
}

func (s *Space) handle(index int) Handle {
	return Handle{Index: uint32(index), Generation: s.bodies[index].generation}
}

func (s *Space) RayTest(from, to mgl64.Vec3) (Hit, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	delta := to.Sub(from)
	best := Hit{Fraction: math.Inf(1)}
	found := false

	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.alive {
			continue
		}

		var (
			t      float64
			normal mgl64.Vec3
			ok     bool
		)
		switch shape := b.Shape.(type) {
		case Box:
			t, normal, ok = boxRay(b.Position, shape.HalfExtents, from, delta)
		case Capsule:
			t, normal, ok = capsuleRay(b.Position, shape, from, delta)
		}
		if !ok || t >= best.Fraction {
			continue
		}

		found = true
		best = Hit{
			Point:    from.Add(delta.Mul(t)),
			Normal:   normal,
			Body:     s.handle(i),
			Fraction: t,
		}
	}

	return best, found
}

// distance returns the separation between two bodies; negative values mean
// they overlap.
func distance(a, b *body) float64 {
	switch sa := a.Shape.(type) {
	case Capsule:
		switch sb := b.Shape.(type) {
		case Capsule:
			return capsulesDistance(a.Position, sa, b.Position, sb)
		case Box:
			p, q := capsuleBoxClosest(a.Position, sa, b.Position, sb.HalfExtents)
			return p.Sub(q).Len() - sa.Radius
		}
	case Box:
		if sb, ok := b.Shape.(Capsule); ok {
			p, q := capsuleBoxClosest(b.Position, sb, a.Position, sa.HalfExtents)
			return p.Sub(q).Len() - sb.Radius
		}
	}

	// boxes, conservatively by bounds
	ha, hb := a.Shape.bounds(), b.Shape.bounds()
	gap := math.Inf(-1)
	for axis := 0; axis < 3; axis++ {
		gap = math.Max(gap, math.Abs(a.Position[axis]-b.Position[axis])-ha[axis]-hb[axis])
	}
	return gap
}

func (s *Space) ContactTest(h Handle) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	target := s.get(h)
	if target == nil {
		return false
	}

	for i := range s.bodies {
		other := &s.bodies[i]
		if !other.alive || int(h.Index) == i {
			continue
		}
		if !aabbOverlap(target.Position, target.Shape.bounds(), other.Position, other.Shape.bounds(), s.margin) {
			continue
		}
		if distance(target, other) <= s.margin {
			return true
		}
	}
	return false
}

func (s *Space) LinearVelocity(h Handle) mgl64.Vec3 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if b := s.get(h); b != nil {
		return b.velocity
	}
	return geom.Zero
}

func (s *Space) SetLinearVelocity(h Handle, velocity mgl64.Vec3) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if b := s.get(h); b != nil && !b.static() {
		b.velocity = velocity
	}
}

// ApplyCentralImpulse changes a dynamic body's velocity by impulse/mass.
// Static bodies ignore impulses.
func (s *Space) ApplyCentralImpulse(h Handle, impulse mgl64.Vec3) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if b := s.get(h); b != nil && !b.static() {
		b.velocity = b.velocity.Add(impulse.Mul(1 / b.Mass))
	}
}

func (s *Space) Position(h Handle) mgl64.Vec3 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if b := s.get(h); b != nil {
		return b.Position
	}
	return geom.Zero
}

func (s *Space) SetPosition(h Handle, position mgl64.Vec3) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if b := s.get(h); b != nil {
		b.Position = position
	}
}

// Step integrates every dynamic body by dt seconds and resolves penetration
// against static bodies.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.alive || b.static() {
			continue
		}

		b.velocity = b.velocity.Add(s.gravity.Mul(b.GravityScale * dt))
		b.Position = b.Position.Add(b.velocity.Mul(dt))

		for j := range s.bodies {
			other := &s.bodies[j]
			if i == j || !other.alive || !other.static() {
				continue
			}
			s.resolve(b, other, dt)
		}
	}
}

func (s *Space) resolve(b, static *body, dt float64) {
	if !aabbOverlap(b.Position, b.Shape.bounds(), static.Position, static.Shape.bounds(), 0) {
		return
	}

	var push mgl64.Vec3
	capsule, isCapsule := b.Shape.(Capsule)
	box, isBox := static.Shape.(Box)

	switch {
	case isCapsule && isBox:
		p, q := capsuleBoxClosest(b.Position, capsule, static.Position, box.HalfExtents)
		d := p.Sub(q)
		dist := d.Len()
		if dist >= capsule.Radius {
			return
		}
		if dist > 1e-9 {
			push = d.Mul((capsule.Radius - dist) / dist)
			break
		}
		// the segment itself is inside the box
		var ok bool
		push, ok = minimumTranslation(b.Position, capsule.bounds(), static.Position, box.HalfExtents)
		if !ok {
			return
		}
	default:
		var ok bool
		push, ok = minimumTranslation(b.Position, b.Shape.bounds(), static.Position, static.Shape.bounds())
		if !ok {
			return
		}
	}

	b.Position = b.Position.Add(push)

	normal := geom.Normalize(push)
	if into := b.velocity.Dot(normal); into < 0 {
		b.velocity = b.velocity.Sub(normal.Mul(into))
	}

	if normal.Y() > 0.7 && b.Friction > 0 {
		damping := math.Max(0, 1-b.Friction*dt)
		b.velocity = mgl64.Vec3{b.velocity.X() * damping, b.velocity.Y(), b.velocity.Z() * damping}
	}
}
