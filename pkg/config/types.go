package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/game"
	"github.com/cfoust/frag/pkg/game/combat"
	"github.com/cfoust/frag/pkg/game/movement"
	"github.com/cfoust/frag/pkg/game/player"
)

func millis(ms uint) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type Simulation struct {
	TickRate      uint
	MaxStepMs     uint
	Seed          int64
	Dummies       uint
	DummyDistance float64
	DummyLift     float64
}

// TickInterval is the wall time between two frames of the run loop.
func (s Simulation) TickInterval() time.Duration {
	if s.TickRate == 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

type Physics struct {
	Gravity float64
}

func (p Physics) GravityVector() mgl64.Vec3 {
	return mgl64.Vec3{0, p.Gravity, 0}
}

type Actor struct {
	Radius         float64
	Height         float64
	Mass           float64
	EyeOffset      float64
	MaxHealth      int32
	RespawnDelayMs uint
}

func (a Actor) Player() player.Config {
	return player.Config{
		Radius:       a.Radius,
		Height:       a.Height,
		Mass:         a.Mass,
		EyeOffset:    a.EyeOffset,
		MaxHealth:    a.MaxHealth,
		RespawnDelay: millis(a.RespawnDelayMs),
	}
}

type Movement struct {
	GroundProbeLength   float64
	VelocityPreserveMs  uint
	JumpRechargeMs      uint
	GroundSpeed         float64
	GroundAcceleration  float64
	AirSpeed            float64
	AirAcceleration     float64
	Friction            float64
	LateralDeceleration float64
	Gravity             float64
	JumpImpulse         float64
	JumpLift            float64
}

func (m Movement) Simulator() movement.Config {
	return movement.Config{
		GroundProbeLength:     m.GroundProbeLength,
		VelocityPreserveDelay: millis(m.VelocityPreserveMs),
		JumpRechargeTime:      millis(m.JumpRechargeMs),
		GroundSpeed:           m.GroundSpeed,
		GroundAcceleration:    m.GroundAcceleration,
		AirSpeed:              m.AirSpeed,
		AirAcceleration:       m.AirAcceleration,
		Friction:              m.Friction,
		LateralDeceleration:   m.LateralDeceleration,
		Gravity:               m.Gravity,
		JumpImpulse:           m.JumpImpulse,
		JumpLift:              m.JumpLift,
	}
}

type Combat struct {
	HeadshotThreshold float64
	HeadshotDamage    int32
	BodyshotDamage    int32
	ImpulseScale      float64
	SplatterStart     float64
	SplatterEnd       float64
	FloorProbe        float64
}

func (c Combat) Resolver() combat.Config {
	return combat.Config{
		HeadshotThreshold: c.HeadshotThreshold,
		HeadshotDamage:    c.HeadshotDamage,
		BodyshotDamage:    c.BodyshotDamage,
		ImpulseScale:      c.ImpulseScale,
		SplatterStart:     c.SplatterStart,
		SplatterEnd:       c.SplatterEnd,
		FloorProbe:        c.FloorProbe,
	}
}

type Config struct {
	Simulation Simulation
	Physics    Physics
	Actor      Actor
	Movement   Movement
	Combat     Combat
}

// Game builds the frame driver's configuration.
func (c *Config) Game() game.Config {
	return game.Config{
		MaxStep:       millis(c.Simulation.MaxStepMs),
		Player:        c.Actor.Player(),
		Movement:      c.Movement.Simulator(),
		Combat:        c.Combat.Resolver(),
		DummyDistance: c.Simulation.DummyDistance,
		DummyLift:     c.Simulation.DummyLift,
		Seed:          c.Simulation.Seed,
	}
}
