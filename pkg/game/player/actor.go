package player

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/game/weapon"
	"github.com/cfoust/frag/pkg/geom"
	"github.com/cfoust/frag/pkg/physics"
	"github.com/cfoust/frag/pkg/timer"
)

type ID uint32

type Config struct {
	Radius float64
	// Height is the length of the capsule's cylindrical part.
	Height float64
	Mass   float64
	// EyeOffset is the height of the eyes above the actor's center.
	EyeOffset    float64
	MaxHealth    int32
	RespawnDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Radius:       1,
		Height:       4.5,
		Mass:         10,
		EyeOffset:    0.8,
		MaxHealth:    100,
		RespawnDelay: 5 * time.Second,
	}
}

// Motion is the per-actor state owned by the movement simulator.
type Motion struct {
	// MoveDirection accumulates directional input for the current tick.
	MoveDirection mgl64.Vec3
	// JumpRecharge counts up to the jump recharge time after a jump.
	JumpRecharge time.Duration
	// SincePreserve is the time spent off the ground (or recently landed)
	// since ground friction last applied.
	SincePreserve time.Duration
	// SpeedSq is the horizontal speed squared read from the body.
	SpeedSq float64
}

// Actor is a player or a dummy.
type Actor struct {
	ID   ID
	Name string
	Body physics.Handle

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// Facing is the unit look direction, written by input.
	Facing   mgl64.Vec3
	OnGround bool

	Health        int32
	Dead          bool
	SpawnPosition mgl64.Vec3
	// LifeSequence changes on every death and respawn.
	LifeSequence int32
	// Local is true for the actor controlled from this client.
	Local bool

	Capsule   physics.Capsule
	Mass      float64
	EyeOffset float64
	Weapons   *weapon.Loadout

	Motion

	equipSequence int32
}

// New creates an actor at spawn with full health, zero velocity and a full
// loadout. It has no body until it is added to a world.
func New(name string, spawn mgl64.Vec3, config Config) *Actor {
	return &Actor{
		Name:          name,
		Position:      spawn,
		Facing:        mgl64.Vec3{0, 0, -1},
		OnGround:      true,
		Health:        config.MaxHealth,
		SpawnPosition: spawn,
		Capsule:       physics.Capsule{Radius: config.Radius, Height: config.Height},
		Mass:          config.Mass,
		EyeOffset:     config.EyeOffset,
		Weapons:       weapon.NewLoadout(),
	}
}

// BodyDef describes the actor's capsule. Actor bodies have no gravity and
// no friction; the movement simulator applies both itself.
func (a *Actor) BodyDef() physics.BodyDef {
	return physics.BodyDef{
		Shape:    a.Capsule,
		Position: a.Position,
		Mass:     a.Mass,
	}
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s (%d)", a.Name, a.ID)
}

func (a *Actor) Alive() bool {
	return !a.Dead
}

// Weapon returns the equipped weapon.
func (a *Actor) Weapon() *weapon.Weapon {
	return a.Weapons.Current()
}

// Equip selects the weapon in slot. Changing weapons invalidates any
// EquipToken handed out before.
func (a *Actor) Equip(slot int) (w *weapon.Weapon, changed bool, ok bool) {
	w, changed, ok = a.Weapons.Equip(slot)
	if changed {
		a.equipSequence++
	}
	return
}

// Eye returns the world-space eye position.
func (a *Actor) Eye() mgl64.Vec3 {
	return a.Position.Add(mgl64.Vec3{0, a.EyeOffset, 0})
}

// Look sets the facing direction. Zero and non-finite vectors are ignored.
func (a *Actor) Look(direction mgl64.Vec3) {
	if n := geom.Normalize(direction); !geom.IsZero(n) && geom.IsFinite(n) {
		a.Facing = n
	}
}

// LifeToken stays valid until the actor dies or respawns.
func (a *Actor) LifeToken() timer.Token {
	sequence := a.LifeSequence
	return timer.TokenFunc(func() bool {
		return a.LifeSequence == sequence
	})
}

// EquipToken stays valid while the actor is in the same life and holds the
// same weapon.
func (a *Actor) EquipToken() timer.Token {
	life, equip := a.LifeSequence, a.equipSequence
	return timer.TokenFunc(func() bool {
		return a.LifeSequence == life && a.equipSequence == equip
	})
}

// SyncFromBody copies the body's position into the actor.
func (a *Actor) SyncFromBody(world physics.World) {
	if a.Body.Valid() {
		a.Position = world.Position(a.Body)
	}
}
