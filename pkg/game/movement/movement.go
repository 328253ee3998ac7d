package movement

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/geom"
	"github.com/cfoust/frag/pkg/physics"
)

type Config struct {
	// GroundProbeLength is how far below the lower capsule point the ground
	// probe reaches.
	GroundProbeLength float64
	// VelocityPreserveDelay is how long an actor keeps air movement after
	// touching something before ground friction applies.
	VelocityPreserveDelay time.Duration
	JumpRechargeTime      time.Duration

	GroundSpeed        float64
	GroundAcceleration float64
	AirSpeed           float64
	AirAcceleration    float64

	Friction            float64
	LateralDeceleration float64

	Gravity     float64
	JumpImpulse float64
	// JumpLift raises the actor before the jump so the ground probe does not
	// catch the floor again on the same tick.
	JumpLift float64
}

func DefaultConfig() Config {
	return Config{
		GroundProbeLength:     1.5,
		VelocityPreserveDelay: 100 * time.Millisecond,
		JumpRechargeTime:      100 * time.Millisecond,
		GroundSpeed:           10,
		GroundAcceleration:    200,
		AirSpeed:              10 / 2,
		AirAcceleration:       200 / 2,
		Friction:              1,
		LateralDeceleration:   0.95,
		Gravity:               9.81,
		JumpImpulse:           200,
		JumpLift:              0.11,
	}
}

// Simulator turns directional input into actor velocity.
type Simulator struct {
	world  physics.World
	config Config
}

func New(world physics.World, config Config) *Simulator {
	return &Simulator{
		world:  world,
		config: config,
	}
}

func (s *Simulator) Config() Config {
	return s.config
}

// Accelerate adds speed along dir until the velocity's projection on dir
// reaches wishSpeed. At most wishSpeed*accel*dt is added per call. Because
// only the projection is capped, turning dir away from the velocity lets the
// total speed keep growing.
func Accelerate(dir, prev mgl64.Vec3, wishSpeed, accel, dt float64) mgl64.Vec3 {
	current := prev.Dot(dir)
	addSpeed := wishSpeed - current
	if addSpeed <= 0 {
		return prev
	}

	accelSpeed := wishSpeed * accel * dt
	if accelSpeed > addSpeed {
		accelSpeed = addSpeed
	}

	return prev.Add(dir.Mul(accelSpeed))
}

// MoveGround applies friction to prev and then accelerates toward dir.
func (s *Simulator) MoveGround(dir, prev mgl64.Vec3, dt float64) mgl64.Vec3 {
	speed := geom.HorizontalSpeedSq(prev)
	if speed != 0 {
		drop := speed * s.config.Friction * dt
		prev = prev.Mul(s.config.LateralDeceleration * math.Max(speed-drop, 0) / speed)
	}
	return Accelerate(dir, prev, s.config.GroundSpeed, s.config.GroundAcceleration, dt)
}

// MoveAir accelerates toward dir with the air budget.
func (s *Simulator) MoveAir(dir, prev mgl64.Vec3, dt float64) mgl64.Vec3 {
	return Accelerate(dir, prev, s.config.AirSpeed, s.config.AirAcceleration, dt)
}

// Prestep clears the input accumulated during the previous tick.
func (s *Simulator) Prestep(a *player.Actor) {
	a.MoveDirection = geom.Zero
}

// Move adds a direction to the tick's input and renormalizes it, so
// diagonal input is no faster than straight input.
func (s *Simulator) Move(a *player.Actor, direction mgl64.Vec3) {
	a.MoveDirection = geom.Normalize(a.MoveDirection.Add(direction))
}

func (s *Simulator) MoveForward(a *player.Actor) {
	s.Move(a, geom.Normalize(geom.Horizontal(a.Facing)))
}

func (s *Simulator) MoveBackward(a *player.Actor) {
	s.Move(a, geom.Normalize(geom.Horizontal(a.Facing)).Mul(-1))
}

func (s *Simulator) MoveLeft(a *player.Actor) {
	s.Move(a, geom.Up.Cross(geom.Horizontal(a.Facing)))
}

func (s *Simulator) MoveRight(a *player.Actor) {
	s.Move(a, geom.Up.Cross(geom.Horizontal(a.Facing)).Mul(-1))
}

// ProbeGround casts a short ray down from the bottom of the capsule's
// cylinder and records whether it found ground.
func (s *Simulator) ProbeGround(a *player.Actor) bool {
	from := a.Position.Add(mgl64.Vec3{0, -a.Capsule.Height / 2, 0})
	to := from.Add(mgl64.Vec3{0, -s.config.GroundProbeLength, 0})

	hit, ok := s.world.RayTest(from, to)
	grounded := ok && hit.Body != a.Body

	if !a.OnGround && grounded {
		a.SincePreserve = 0
	}
	a.OnGround = grounded
	return grounded
}

func seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}

// Update runs one movement tick of dt seconds for the actor.
func (s *Simulator) Update(a *player.Actor, dt float64) {
	if a.Dead || !a.Body.Valid() {
		return
	}

	a.SyncFromBody(s.world)

	linear := s.world.LinearVelocity(a.Body)
	s.ProbeGround(a)
	touching := s.world.ContactTest(a.Body)

	vertical := linear.Y()
	a.SpeedSq = geom.HorizontalSpeedSq(linear)

	if touching && a.SincePreserve > s.config.VelocityPreserveDelay {
		a.Velocity = s.MoveGround(a.MoveDirection, a.Velocity, dt)
	} else {
		a.Velocity = s.MoveAir(a.MoveDirection, a.Velocity, dt)
		a.SincePreserve += seconds(dt)
	}

	a.Velocity = geom.WithY(a.Velocity, vertical)

	if a.JumpRecharge < s.config.JumpRechargeTime {
		a.JumpRecharge += seconds(dt)
	}

	// half gravity, once per tick
	s.world.SetLinearVelocity(a.Body, geom.WithY(a.Velocity, vertical-s.config.Gravity*0.5*dt))
}

func (s *Simulator) CanJump(a *player.Actor) bool {
	if a.Dead {
		return false
	}
	return a.OnGround && a.JumpRecharge >= s.config.JumpRechargeTime
}

// Jump launches the actor if CanJump allows it.
func (s *Simulator) Jump(a *player.Actor) bool {
	if !s.CanJump(a) {
		return false
	}

	linear := s.world.LinearVelocity(a.Body)
	s.world.SetLinearVelocity(a.Body, geom.WithY(linear, 0))
	s.world.ApplyCentralImpulse(a.Body, mgl64.Vec3{0, s.config.JumpImpulse, 0})

	a.OnGround = false
	a.JumpRecharge = 0

	position := s.world.Position(a.Body).Add(mgl64.Vec3{0, s.config.JumpLift, 0})
	s.world.SetPosition(a.Body, position)
	a.Position = position
	return true
}
