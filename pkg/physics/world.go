package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle addresses a body in a world. The generation changes every time an
// arena slot is reused, so handles to removed bodies never alias new ones.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero handle. No body ever has it.
var Nil Handle

func (h Handle) Valid() bool {
	return h.Generation != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("body(%d:%d)", h.Index, h.Generation)
}

// Hit is the closest intersection of a ray test.
type Hit struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Body   Handle
	// Fraction of the segment travelled before the hit, in [0, 1].
	Fraction float64
}

// World is the query and mutation surface the simulation needs from a
// physics engine.
type World interface {
	// RayTest returns the closest body hit along the segment from -> to.
	RayTest(from, to mgl64.Vec3) (Hit, bool)
	// ContactTest reports whether body touches any other body.
	ContactTest(body Handle) bool

	LinearVelocity(body Handle) mgl64.Vec3
	SetLinearVelocity(body Handle, velocity mgl64.Vec3)
	ApplyCentralImpulse(body Handle, impulse mgl64.Vec3)

	Position(body Handle) mgl64.Vec3
	SetPosition(body Handle, position mgl64.Vec3)
}

// Stepper is a World that can also advance time.
type Stepper interface {
	World
	Step(dt float64)
}

// Engine is a Stepper that owns its bodies.
type Engine interface {
	Stepper
	Add(def BodyDef) Handle
	Remove(body Handle) bool
}
