package player

import (
	"github.com/rs/zerolog/log"

	"github.com/cfoust/frag/pkg/geom"
	"github.com/cfoust/frag/pkg/physics"
	"github.com/cfoust/frag/pkg/timer"
)

// Lifecycle moves actors between Alive and Dead. Respawns are scheduled on
// the engine clock and dropped if the actor's life changed in the meantime.
type Lifecycle struct {
	world     physics.World
	scheduler *timer.Scheduler
	config    Config

	// OnDeath and OnRespawn, if set, are called after each transition.
	OnDeath   func(*Actor)
	OnRespawn func(*Actor)
}

func NewLifecycle(world physics.World, scheduler *timer.Scheduler, config Config) *Lifecycle {
	return &Lifecycle{
		world:     world,
		scheduler: scheduler,
		config:    config,
	}
}

// TakeDamage subtracts amount from the actor's health and kills it once
// health drops to zero. Dead actors take no damage. It returns true if this
// call killed the actor.
func (l *Lifecycle) TakeDamage(a *Actor, amount int32) bool {
	if a.Dead {
		return false
	}

	a.Health -= amount
	log.Debug().
		Str("actor", a.Name).
		Int32("damage", amount).
		Int32("health", a.Health).
		Msg("actor hit")

	if a.Health <= 0 {
		l.Die(a)
		return true
	}
	return false
}

// Die freezes the actor and schedules its respawn.
func (l *Lifecycle) Die(a *Actor) {
	if a.Dead {
		return
	}

	a.Dead = true
	a.LifeSequence++
	a.Velocity = geom.Zero
	a.MoveDirection = geom.Zero
	if a.Body.Valid() {
		l.world.SetLinearVelocity(a.Body, geom.Zero)
	}

	log.Info().Str("actor", a.Name).Msg("actor died")

	l.scheduler.Schedule(l.config.RespawnDelay, l.respawnToken(a), func() {
		l.Respawn(a)
	})

	if l.OnDeath != nil {
		l.OnDeath(a)
	}
}

func (l *Lifecycle) respawnToken(a *Actor) timer.Token {
	life := a.LifeToken()
	return timer.TokenFunc(func() bool {
		return a.Dead && life.Valid()
	})
}

// Respawn restores the actor to full health at its spawn point.
func (l *Lifecycle) Respawn(a *Actor) {
	a.Health = l.config.MaxHealth
	a.Dead = false
	a.LifeSequence++
	a.Position = a.SpawnPosition
	a.Velocity = geom.Zero
	a.Motion = Motion{}
	a.OnGround = false

	if a.Body.Valid() {
		l.world.SetPosition(a.Body, a.SpawnPosition)
		l.world.SetLinearVelocity(a.Body, geom.Zero)
	}

	log.Info().Str("actor", a.Name).Msg("actor respawned")

	if l.OnRespawn != nil {
		l.OnRespawn(a)
	}
}
