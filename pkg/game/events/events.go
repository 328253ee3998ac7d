package events

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/game/sound"
	"github.com/cfoust/frag/pkg/game/weapon"
)

// Cue asks the audio layer to play a sound for an actor.
type Cue struct {
	Actor player.ID `cbor:"1,keyasint"`
	Sound sound.ID  `cbor:"2,keyasint"`
}

// Splatter asks the renderer to place a blood splatter on a surface.
type Splatter struct {
	Victim   player.ID  `cbor:"1,keyasint"`
	Position mgl64.Vec3 `cbor:"2,keyasint"`
	Normal   mgl64.Vec3 `cbor:"3,keyasint"`
}

// Decal asks the renderer to place a bullet hole on world geometry.
type Decal struct {
	Shooter  player.ID  `cbor:"1,keyasint"`
	Weapon   weapon.ID  `cbor:"2,keyasint"`
	Position mgl64.Vec3 `cbor:"3,keyasint"`
	Normal   mgl64.Vec3 `cbor:"4,keyasint"`
}

// Damage is reported for every hit on another living actor.
type Damage struct {
	Attacker player.ID `cbor:"1,keyasint"`
	Victim   player.ID `cbor:"2,keyasint"`
	Weapon   weapon.ID `cbor:"3,keyasint"`
	Amount   int32     `cbor:"4,keyasint"`
	Headshot bool      `cbor:"5,keyasint"`
	Lethal   bool      `cbor:"6,keyasint"`
	// Health is the victim's health after the hit.
	Health int32 `cbor:"7,keyasint"`
}

type Death struct {
	Actor player.ID `cbor:"1,keyasint"`
}

type Respawn struct {
	Actor    player.ID  `cbor:"1,keyasint"`
	Position mgl64.Vec3 `cbor:"2,keyasint"`
}

// Sink receives the side effects of the simulation. The simulation never
// plays audio or renders anything itself.
type Sink interface {
	Cue(Cue)
	Splatter(Splatter)
	Decal(Decal)
	Damage(Damage)
	Death(Death)
	Respawn(Respawn)
}

// Discard is a Sink that drops everything.
type Discard struct{}

var _ Sink = Discard{}

func (Discard) Cue(Cue)           {}
func (Discard) Splatter(Splatter) {}
func (Discard) Decal(Decal)       {}
func (Discard) Damage(Damage)     {}
func (Discard) Death(Death)       {}
func (Discard) Respawn(Respawn)   {}

// Frame holds everything emitted during one simulation tick.
type Frame struct {
	Tick      uint64        `cbor:"1,keyasint"`
	Time      time.Duration `cbor:"2,keyasint"`
	Cues      []Cue         `cbor:"3,keyasint,omitempty"`
	Splatters []Splatter    `cbor:"4,keyasint,omitempty"`
	Decals    []Decal       `cbor:"5,keyasint,omitempty"`
	Damage    []Damage      `cbor:"6,keyasint,omitempty"`
	Deaths    []Death       `cbor:"7,keyasint,omitempty"`
	Respawns  []Respawn     `cbor:"8,keyasint,omitempty"`
}

func (f *Frame) Empty() bool {
	return len(f.Cues) == 0 &&
		len(f.Splatters) == 0 &&
		len(f.Decals) == 0 &&
		len(f.Damage) == 0 &&
		len(f.Deaths) == 0 &&
		len(f.Respawns) == 0
}

// Buffer is a Sink that collects events into a Frame until it is flushed.
type Buffer struct {
	frame Frame
}

var _ Sink = (*Buffer)(nil)

func (b *Buffer) Cue(e Cue)           { b.frame.Cues = append(b.frame.Cues, e) }
func (b *Buffer) Splatter(e Splatter) { b.frame.Splatters = append(b.frame.Splatters, e) }
func (b *Buffer) Decal(e Decal)       { b.frame.Decals = append(b.frame.Decals, e) }
func (b *Buffer) Damage(e Damage)     { b.frame.Damage = append(b.frame.Damage, e) }
func (b *Buffer) Death(e Death)       { b.frame.Deaths = append(b.frame.Deaths, e) }
func (b *Buffer) Respawn(e Respawn)   { b.frame.Respawns = append(b.frame.Respawns, e) }

// Peek returns the events collected so far without clearing them.
func (b *Buffer) Peek() *Frame {
	return &b.frame
}

// Flush returns the collected events stamped with tick and time, and starts
// a new frame.
func (b *Buffer) Flush(tick uint64, now time.Duration) Frame {
	frame := b.frame
	frame.Tick = tick
	frame.Time = now
	b.frame = Frame{}
	return frame
}
