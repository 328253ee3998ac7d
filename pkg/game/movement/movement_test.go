package movement

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/physics"
)

var floorBody = physics.Handle{Index: 99, Generation: 1}

type fakeWorld struct {
	ground   bool
	contact  bool
	mass     float64
	velocity map[physics.Handle]mgl64.Vec3
	position map[physics.Handle]mgl64.Vec3
	rays     [][2]mgl64.Vec3
}

var _ physics.World = &fakeWorld{}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		mass:     10,
		velocity: map[physics.Handle]mgl64.Vec3{},
		position: map[physics.Handle]mgl64.Vec3{},
	}
}

func (w *fakeWorld) RayTest(from, to mgl64.Vec3) (physics.Hit, bool) {
	w.rays = append(w.rays, [2]mgl64.Vec3{from, to})
	if !w.ground {
		return physics.Hit{}, false
	}
	return physics.Hit{Point: to, Normal: mgl64.Vec3{0, 1, 0}, Body: floorBody}, true
}

func (w *fakeWorld) ContactTest(physics.Handle) bool { return w.contact }

func (w *fakeWorld) LinearVelocity(h physics.Handle) mgl64.Vec3 { return w.velocity[h] }

func (w *fakeWorld) SetLinearVelocity(h physics.Handle, v mgl64.Vec3) { w.velocity[h] = v }

func (w *fakeWorld) ApplyCentralImpulse(h physics.Handle, impulse mgl64.Vec3) {
	w.velocity[h] = w.velocity[h].Add(impulse.Mul(1 / w.mass))
}

func (w *fakeWorld) Position(h physics.Handle) mgl64.Vec3 { return w.position[h] }

func (w *fakeWorld) SetPosition(h physics.Handle, p mgl64.Vec3) { w.position[h] = p }

func newActor(w *fakeWorld) *player.Actor {
	a := player.New("test", mgl64.Vec3{0, 3.25, 0}, player.DefaultConfig())
	a.Body = physics.Handle{Index: 1, Generation: 1}
	w.position[a.Body] = a.Position
	return a
}

func TestAccelerateTargetMet(t *testing.T) {
	dir := mgl64.Vec3{1, 0, 0}
	v := mgl64.Vec3{10, 0, 0}

	for i := 0; i < 10; i++ {
		v = Accelerate(dir, v, 10, 200, 0.016)
	}
	assert.Equal(t, mgl64.Vec3{10, 0, 0}, v)

	faster := mgl64.Vec3{12, 0, 0}
	assert.Equal(t, faster, Accelerate(dir, faster, 10, 200, 0.016))
}

func TestAccelerateCapped(t *testing.T) {
	dir := mgl64.Vec3{1, 0, 0}

	v := Accelerate(dir, mgl64.Vec3{}, 10, 200, 0.01)
	assert.InDelta(t, 10, v.X(), 1e-9, "capped by the missing speed")

	v = Accelerate(dir, mgl64.Vec3{}, 10, 200, 0.001)
	assert.InDelta(t, 2, v.X(), 1e-9, "capped by the budget")
	assert.Equal(t, 0.0, v.Y())
}

func TestAirStrafeGainsSpeed(t *testing.T) {
	prev := mgl64.Vec3{5, 0, 0}
	v := Accelerate(mgl64.Vec3{0, 0, 1}, prev, 5, 100, 0.01)

	assert.InDelta(t, 5, v.X(), 1e-9)
	assert.InDelta(t, 5, v.Z(), 1e-9)
	assert.Greater(t, v.Len(), prev.Len())
}

func TestDirectionAccumulation(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)
	a.Facing = mgl64.Vec3{0, 0, -1}

	s.MoveForward(a)
	assert.InDelta(t, -1, a.MoveDirection.Z(), 1e-9)

	s.MoveRight(a)
	assert.InDelta(t, 1, a.MoveDirection.Len(), 1e-9)
	assert.InDelta(t, a.MoveDirection.X(), -a.MoveDirection.Z(), 1e-9)
	assert.Greater(t, a.MoveDirection.X(), 0.0)

	s.Prestep(a)
	assert.Equal(t, mgl64.Vec3{}, a.MoveDirection)

	s.MoveForward(a)
	s.MoveBackward(a)
	assert.Equal(t, mgl64.Vec3{}, a.MoveDirection, "opposite input cancels out")

	s.Prestep(a)
	a.Facing = mgl64.Vec3{1, 1, 0}.Normalize()
	s.MoveLeft(a)
	assert.InDelta(t, 0, a.MoveDirection.Y(), 1e-9, "looking up does not move vertically")
	assert.InDelta(t, -1, a.MoveDirection.Z(), 1e-9)
}

func TestJumpGating(t *testing.T) {
	w := newFakeWorld()
	w.ground = true
	w.contact = true
	s := New(w, DefaultConfig())
	a := newActor(w)

	s.Update(a, 0.02)
	require.True(t, a.OnGround)
	assert.False(t, s.CanJump(a), "recharge timer starts empty")

	for i := 0; i < 3; i++ {
		s.Update(a, 0.02)
	}
	assert.Equal(t, 80*time.Millisecond, a.JumpRecharge)
	assert.False(t, s.CanJump(a))

	s.Update(a, 0.02)
	require.True(t, s.CanJump(a))

	w.velocity[a.Body] = mgl64.Vec3{1, -3, 1}
	require.True(t, s.Jump(a))
	assert.False(t, a.OnGround)
	assert.Equal(t, time.Duration(0), a.JumpRecharge)
	assert.False(t, s.CanJump(a))
	assert.False(t, s.Jump(a))

	assert.InDelta(t, 20, w.velocity[a.Body].Y(), 1e-9, "vertical velocity is zeroed before the impulse")
	assert.InDelta(t, 1, w.velocity[a.Body].X(), 1e-9)
	assert.InDelta(t, 3.36, a.Position.Y(), 1e-9)
	assert.Equal(t, a.Position, w.position[a.Body])
}

func TestDeadCannotJump(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)
	a.JumpRecharge = time.Second
	a.Dead = true

	assert.False(t, s.CanJump(a))
}

func TestHalfGravity(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)

	w.velocity[a.Body] = mgl64.Vec3{0, 2, 0}
	s.Update(a, 0.02)
	assert.InDelta(t, 2-9.81*0.5*0.02, w.velocity[a.Body].Y(), 1e-9)
	assert.InDelta(t, 2, a.Velocity.Y(), 1e-9)
}

func TestGroundProbe(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)

	a.OnGround = false
	a.SincePreserve = time.Second
	w.ground = true
	assert.True(t, s.ProbeGround(a))
	assert.Equal(t, time.Duration(0), a.SincePreserve, "landing resets the preserve timer")

	require.Len(t, w.rays, 1)
	assert.InDelta(t, 3.25-2.25, w.rays[0][0].Y(), 1e-9)
	assert.InDelta(t, 3.25-2.25-1.5, w.rays[0][1].Y(), 1e-9)

	a.SincePreserve = time.Second
	assert.True(t, s.ProbeGround(a))
	assert.Equal(t, time.Second, a.SincePreserve)

	w.ground = false
	assert.False(t, s.ProbeGround(a))
}

func TestPreserveWindow(t *testing.T) {
	w := newFakeWorld()
	w.ground = true
	w.contact = true
	s := New(w, DefaultConfig())
	a := newActor(w)
	a.OnGround = false

	// moving fast with no input: air movement keeps speed for the first
	// 100ms after landing, then friction starts to bite
	a.Velocity = mgl64.Vec3{20, 0, 0}
	for i := 0; i < 5; i++ {
		s.Update(a, 0.02)
		assert.InDelta(t, 20, a.Velocity.X(), 1e-9)
	}

	s.Update(a, 0.02)
	assert.InDelta(t, 20, a.Velocity.X(), 1e-9)
	s.Update(a, 0.02)
	assert.Less(t, a.Velocity.X(), 20.0)
}

func TestAirborneNeverUsesFriction(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)
	a.Velocity = mgl64.Vec3{0, 0, 8}

	for i := 0; i < 50; i++ {
		s.Update(a, 0.02)
	}
	assert.InDelta(t, 8, a.Velocity.Z(), 1e-9)
	assert.False(t, a.OnGround)
}

func TestDeadActorsAreFrozen(t *testing.T) {
	w := newFakeWorld()
	s := New(w, DefaultConfig())
	a := newActor(w)
	a.Dead = true
	a.MoveDirection = mgl64.Vec3{1, 0, 0}

	s.Update(a, 0.02)
	assert.Equal(t, mgl64.Vec3{}, a.Velocity)
	assert.Equal(t, mgl64.Vec3{}, w.velocity[a.Body])
}

func TestWalkOnFloor(t *testing.T) {
	space := physics.NewSpace(mgl64.Vec3{0, -9.81, 0})
	space.Add(physics.BodyDef{
		Shape:    physics.Box{HalfExtents: mgl64.Vec3{100, 0.5, 100}},
		Position: mgl64.Vec3{0, -0.5, 0},
	})

	s := New(space, DefaultConfig())
	a := player.New("walker", mgl64.Vec3{0, 3.25, 0}, player.DefaultConfig())
	a.Body = space.Add(a.BodyDef())
	a.Facing = mgl64.Vec3{0, 0, -1}

	for i := 0; i < 100; i++ {
		s.Prestep(a)
		s.MoveForward(a)
		s.Update(a, 0.02)
		space.Step(0.02)
		a.SyncFromBody(space)
	}

	assert.True(t, a.OnGround)
	assert.InDelta(t, 3.25, a.Position.Y(), 0.01)
	assert.Less(t, a.Position.Z(), -1.0)
	assert.InDelta(t, 0, a.Position.X(), 1e-9)
}
