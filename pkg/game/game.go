package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/cfoust/frag/pkg/game/combat"
	"github.com/cfoust/frag/pkg/game/events"
	"github.com/cfoust/frag/pkg/game/movement"
	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/game/sound"
	"github.com/cfoust/frag/pkg/game/weapon"
	"github.com/cfoust/frag/pkg/geom"
	"github.com/cfoust/frag/pkg/physics"
	"github.com/cfoust/frag/pkg/timer"
)

type Config struct {
	// MaxStep caps the simulation step of a single frame. Engine time still
	// advances by the full elapsed time.
	MaxStep time.Duration

	Player   player.Config
	Movement movement.Config
	Combat   combat.Config

	// DummyDistance and DummyLift place spawned dummies in front of and
	// above the current player.
	DummyDistance float64
	DummyLift     float64

	// Seed drives the respawn cue choice.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		MaxStep:       20 * time.Millisecond,
		Player:        player.DefaultConfig(),
		Movement:      movement.DefaultConfig(),
		Combat:        combat.DefaultConfig(),
		DummyDistance: 10,
		DummyLift:     2,
		Seed:          1,
	}
}

// Game drives one simulation tick for every actor per frame and collects
// the tick's side effects into a frame of events.
type Game struct {
	config Config

	world     physics.Engine
	scheduler *timer.Scheduler
	registry  *player.Registry
	lifecycle *player.Lifecycle
	movement  *movement.Simulator
	combat    *combat.Resolver
	events    *events.Buffer

	current *player.Actor
	command Command
	// trigger is the fire state of the previous frame.
	trigger bool

	tick    uint64
	dummies int
	random  *rand.Rand
	logs    *rate.Limiter
}

func New(world physics.Engine, config Config) *Game {
	g := &Game{
		config:    config,
		world:     world,
		scheduler: timer.NewScheduler(),
		registry:  player.NewRegistry(),
		events:    &events.Buffer{},
		random:    rand.New(rand.NewSource(config.Seed)),
		logs:      rate.NewLimiter(rate.Every(time.Second), 1),
	}

	g.lifecycle = player.NewLifecycle(world, g.scheduler, config.Player)
	g.lifecycle.OnDeath = g.onDeath
	g.lifecycle.OnRespawn = g.onRespawn
	g.movement = movement.New(world, config.Movement)
	g.combat = combat.New(world, g.registry, g.lifecycle, g.events, config.Combat)
	return g
}

func (g *Game) World() physics.Engine {
	return g.world
}

func (g *Game) Scheduler() *timer.Scheduler {
	return g.scheduler
}

func (g *Game) Registry() *player.Registry {
	return g.registry
}

func (g *Game) Lifecycle() *player.Lifecycle {
	return g.lifecycle
}

func (g *Game) Movement() *movement.Simulator {
	return g.movement
}

func (g *Game) Combat() *combat.Resolver {
	return g.combat
}

func (g *Game) Current() *player.Actor {
	return g.current
}

// Now returns the engine time.
func (g *Game) Now() time.Duration {
	return g.scheduler.Now()
}

// Tick returns the number of frames run so far.
func (g *Game) Tick() uint64 {
	return g.tick
}

// AddActor registers an actor that already has a body in the world.
func (g *Game) AddActor(a *player.Actor) player.ID {
	if !a.Body.Valid() {
		panic("game: actor " + a.Name + " doesn't have a body")
	}
	return g.registry.Add(a)
}

// Spawn creates an actor at position, gives it a body and adds it to the
// game.
func (g *Game) Spawn(name string, position mgl64.Vec3) *player.Actor {
	a := player.New(name, position, g.config.Player)
	a.Body = g.world.Add(a.BodyDef())
	g.AddActor(a)

	log.Info().
		Str("actor", a.String()).
		Msgf("spawned at %v", position)
	return a
}

// SetCurrent makes a the locally controlled actor.
func (g *Game) SetCurrent(a *player.Actor) {
	if g.current != nil {
		g.current.Local = false
	}
	g.current = a
	g.trigger = false
	if a != nil {
		a.Local = true
	}
}

// SpawnDummy places a new uncontrolled actor in front of the current
// player.
func (g *Game) SpawnDummy() *player.Actor {
	origin := mgl64.Vec3{}
	direction := mgl64.Vec3{0, 0, -1}
	if g.current != nil {
		origin = g.current.Position
		if facing := geom.Normalize(geom.Horizontal(g.current.Facing)); !geom.IsZero(facing) {
			direction = facing
		}
	}

	position := origin.
		Add(direction.Mul(g.config.DummyDistance)).
		Add(mgl64.Vec3{0, g.config.DummyLift, 0})

	g.dummies++
	return g.Spawn(fmt.Sprintf("dummy%d", g.dummies), position)
}

// Input sets the command the current player executes on the next Update.
func (g *Game) Input(command Command) {
	g.command = command
}

func (g *Game) cue(a *player.Actor, id sound.ID) {
	if !a.Local || id == sound.None {
		return
	}
	g.events.Cue(events.Cue{Actor: a.ID, Sound: id})
}

// Equip switches the actor's weapon. Changing weapons cancels any reload
// still in progress.
func (g *Game) Equip(a *player.Actor, slot int) bool {
	w, changed, ok := a.Equip(slot)
	if !ok {
		return false
	}
	if changed {
		g.cue(a, w.DeploySound)
	}
	return true
}

// Reload refills the equipped weapon. The local player hears the reload as
// a sequence of cues spread over the reload animation.
func (g *Game) Reload(a *player.Actor) bool {
	if a.Dead {
		return false
	}

	w := a.Weapon()
	if !w.Reload() {
		return false
	}
	if !a.Local {
		return true
	}

	token := a.EquipToken()
	for _, stage := range w.ReloadStages {
		if stage.After <= 0 {
			g.cue(a, stage.Sound)
			continue
		}

		id := stage.Sound
		g.scheduler.Schedule(stage.After, token, func() {
			g.cue(a, id)
		})
	}
	return true
}

// Shoot fires the actor's weapon now and requests a decal where a bullet
// struck the world.
func (g *Game) Shoot(a *player.Actor) combat.Result {
	result := g.combat.AttemptShoot(a, g.Now())
	if result.WantsDecal() && !result.Weapon.Melee {
		g.events.Decal(events.Decal{
			Shooter:  a.ID,
			Weapon:   result.Weapon.ID,
			Position: result.Position.Value,
			Normal:   result.Normal,
		})
	}
	return result
}

func (g *Game) onDeath(a *player.Actor) {
	g.events.Death(events.Death{Actor: a.ID})
	if a == g.current {
		g.trigger = false
	}
}

func (g *Game) onRespawn(a *player.Actor) {
	g.events.Respawn(events.Respawn{Actor: a.ID, Position: a.Position})
	if a.Local {
		g.cue(a, sound.Respawns[g.random.Intn(len(sound.Respawns))])
	}
}

func (g *Game) applyCommand(a *player.Actor, command Command) {
	if command.SpawnDummy {
		g.SpawnDummy()
	}

	if a.Dead {
		return
	}

	a.Look(command.Look)

	if command.Slot != 0 {
		g.Equip(a, command.Slot)
	}
	if command.Reload {
		g.Reload(a)
	}

	if command.Forward {
		g.movement.MoveForward(a)
	}
	if command.Backward {
		g.movement.MoveBackward(a)
	}
	if command.Left {
		g.movement.MoveLeft(a)
	}
	if command.Right {
		g.movement.MoveRight(a)
	}
	if command.Jump {
		g.movement.Jump(a)
	}

	pressed := command.Fire && !g.trigger
	g.trigger = command.Fire
	if pressed || (command.Fire && a.Weapon().FireMode == weapon.Automatic) {
		g.Shoot(a)
	}
}

// Update advances the game by elapsed wall time and returns everything
// that happened during the frame.
func (g *Game) Update(elapsed time.Duration) events.Frame {
	if elapsed < 0 {
		elapsed = 0
	}

	// Deferred callbacks run before anything moves.
	g.scheduler.Advance(elapsed)

	step := elapsed
	if step > g.config.MaxStep {
		step = g.config.MaxStep
	}
	dt := step.Seconds()

	command := g.command
	g.command = Command{}

	if current := g.current; current != nil {
		g.movement.Prestep(current)
		g.applyCommand(current, command)
		g.movement.Update(current, dt)
	} else if command.SpawnDummy {
		g.SpawnDummy()
	}

	g.world.Step(dt)

	for _, a := range g.registry.All() {
		if a == g.current {
			continue
		}
		g.movement.Update(a, dt)
	}

	for _, a := range g.registry.Living() {
		a.SyncFromBody(g.world)
	}

	frame := g.events.Flush(g.tick, g.Now())
	g.tick++

	if g.logs.Allow() {
		log.Debug().
			Uint64("tick", frame.Tick).
			Dur("now", frame.Time).
			Float64("dt", dt).
			Int("actors", g.registry.Len()).
			Int("pending", g.scheduler.Pending()).
			Msg("frame")
	}

	return frame
}
