package combat

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"

	"github.com/cfoust/frag/pkg/game/events"
	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/game/sound"
	"github.com/cfoust/frag/pkg/game/weapon"
	"github.com/cfoust/frag/pkg/geom"
	"github.com/cfoust/frag/pkg/physics"
)

// Target classifies what a hitscan ray struck.
type Target int

const (
	TargetNone Target = iota
	// TargetSelf is the shooter's own body.
	TargetSelf
	// TargetPlayer is another living actor.
	TargetPlayer
	// TargetCorpse is an actor that is already dead. Hits produce effects
	// but no damage.
	TargetCorpse
	// TargetWorld is anything that is not an actor.
	TargetWorld
)

func (t Target) String() string {
	switch t {
	case TargetSelf:
		return "self"
	case TargetPlayer:
		return "player"
	case TargetCorpse:
		return "corpse"
	case TargetWorld:
		return "world"
	default:
		return "none"
	}
}

type Config struct {
	// HeadshotThreshold is the height above the victim's center beyond which
	// a hit counts as a headshot.
	HeadshotThreshold float64
	HeadshotDamage    int32
	BodyshotDamage    int32
	// ImpulseScale multiplies the shot vector to get the impulse given to
	// world bodies.
	ImpulseScale float64

	// SplatterStart and SplatterEnd bound the ray cast behind a victim to
	// find a wall, measured from the victim's center.
	SplatterStart float64
	SplatterEnd   float64
	// FloorProbe is the length of the fallback ray toward the floor.
	FloorProbe float64
}

func DefaultConfig() Config {
	return Config{
		HeadshotThreshold: 2.0,
		HeadshotDamage:    100,
		BodyshotDamage:    15,
		ImpulseScale:      25,
		SplatterStart:     1.2,
		SplatterEnd:       2.5,
		FloorProbe:        3.5,
	}
}

// Result describes one shot attempt. It is not kept after the frame.
type Result struct {
	Hit      bool
	Position opt.Option[mgl64.Vec3]
	Normal   mgl64.Vec3
	Weapon   *weapon.Weapon
	Target   Target
	Body     physics.Handle
	// Victim is set when Target is TargetPlayer or TargetCorpse.
	Victim   player.ID
	Headshot bool
}

// WantsDecal reports whether the renderer should mark the surface that was
// hit.
func (r Result) WantsDecal() bool {
	return r.Hit && r.Target == TargetWorld
}

// Resolver turns shot attempts into hits, damage and effect requests.
type Resolver struct {
	world     physics.World
	registry  *player.Registry
	lifecycle *player.Lifecycle
	sink      events.Sink
	config    Config
}

func New(
	world physics.World,
	registry *player.Registry,
	lifecycle *player.Lifecycle,
	sink events.Sink,
	config Config,
) *Resolver {
	return &Resolver{
		world:     world,
		registry:  registry,
		lifecycle: lifecycle,
		sink:      sink,
		config:    config,
	}
}

func (r *Resolver) cue(a *player.Actor, id sound.ID) {
	if !a.Local || id == sound.None {
		return
	}
	r.sink.Cue(events.Cue{Actor: a.ID, Sound: id})
}

// Ray returns the segment a shot from the actor's current weapon travels.
// It starts at eye height, pushed forward far enough to clear the actor's
// own capsule.
func (r *Resolver) Ray(a *player.Actor) (from, to mgl64.Vec3) {
	w := a.Weapon()
	facing := geom.Normalize(a.Facing)
	from = a.Eye().Add(facing.Mul(w.MuzzleOffset))
	to = from.Add(facing.Mul(w.Range))
	return
}

// AttemptShoot fires the actor's equipped weapon at time now and resolves
// the shot.
func (r *Resolver) AttemptShoot(a *player.Actor, now time.Duration) Result {
	w := a.Weapon()
	result := Result{
		Weapon:   w,
		Position: opt.None[mgl64.Vec3](),
	}

	if a.Dead {
		return result
	}

	if a.Local && w.Empty() {
		if w.DryFire(now) {
			r.cue(a, w.DryFireSound)
		}
		return result
	}

	if !w.Fire(now) {
		return result
	}

	from, to := r.Ray(a)
	hit, ok := r.world.RayTest(from, to)
	if !ok {
		r.cue(a, w.ShootSound)
		if w.Melee {
			r.cue(a, sound.KnifeSlash)
		}
		return result
	}

	result.Hit = true
	result.Position = opt.Some(hit.Point)
	result.Normal = hit.Normal
	result.Body = hit.Body

	victim, isActor := r.registry.ByBody(hit.Body)
	switch {
	case isActor && victim == a:
		result.Target = TargetSelf
		return result
	case isActor && victim.Dead:
		// Corpses still bleed and make noise but take no damage.
		result.Target = TargetCorpse
		result.Victim = victim.ID
		r.cue(a, w.ShootSound)
		if w.Melee {
			r.cue(a, sound.KnifeHitPlayer)
		}
		r.splatter(victim, geom.Normalize(hit.Point.Sub(from)))
		return result
	case isActor:
		r.cue(a, w.ShootSound)
		r.hitPlayer(a, victim, from, hit, &result)
		return result
	}

	result.Target = TargetWorld
	r.cue(a, w.ShootSound)
	if w.Melee {
		r.cue(a, sound.KnifeHitWall)
	}
	r.world.ApplyCentralImpulse(hit.Body, hit.Point.Sub(from).Mul(r.config.ImpulseScale))
	return result
}

func (r *Resolver) hitPlayer(shooter, victim *player.Actor, from mgl64.Vec3, hit physics.Hit, result *Result) {
	w := shooter.Weapon()
	result.Target = TargetPlayer
	result.Victim = victim.ID

	if w.Melee {
		r.cue(shooter, sound.KnifeHitPlayer)
	}

	relative := hit.Point.Y() - victim.Position.Y()
	headshot := relative > r.config.HeadshotThreshold
	damage := r.config.BodyshotDamage
	if headshot {
		damage = r.config.HeadshotDamage
	}
	result.Headshot = headshot

	log.Debug().
		Str("shooter", shooter.Name).
		Str("victim", victim.Name).
		Float64("relativeY", relative).
		Bool("headshot", headshot).
		Msg("hit player")

	lethal := r.lifecycle.TakeDamage(victim, damage)
	r.sink.Damage(events.Damage{
		Attacker: shooter.ID,
		Victim:   victim.ID,
		Weapon:   w.ID,
		Amount:   damage,
		Headshot: headshot,
		Lethal:   lethal,
		Health:   victim.Health,
	})

	r.splatter(victim, geom.Normalize(hit.Point.Sub(from)))
}

// splatter looks for a wall just behind the victim along the shot, and
// falls back to the floor beneath them.
func (r *Resolver) splatter(victim *player.Actor, direction mgl64.Vec3) {
	start := victim.Position.Add(direction.Mul(r.config.SplatterStart))
	end := victim.Position.Add(direction.Mul(r.config.SplatterEnd))
	if r.placeSplatter(victim, start, end) {
		return
	}

	floor := victim.Position.Add(geom.Down.Mul(r.config.FloorProbe))
	r.placeSplatter(victim, victim.Position, floor)
}

func (r *Resolver) placeSplatter(victim *player.Actor, from, to mgl64.Vec3) bool {
	hit, ok := r.world.RayTest(from, to)
	if !ok || hit.Body == victim.Body {
		return false
	}

	r.sink.Splatter(events.Splatter{
		Victim:   victim.ID,
		Position: hit.Point,
		Normal:   hit.Normal,
	})
	return true
}

// CanResetRecoil reports whether the weapon has rested long enough for the
// view's recoil to recover.
func (r *Resolver) CanResetRecoil(a *player.Actor, now time.Duration) bool {
	if a.Dead {
		return false
	}
	w := a.Weapon()
	elapsed, fired := w.SinceLastFire(now)
	return !fired || elapsed > 2*w.RateOfFire
}
