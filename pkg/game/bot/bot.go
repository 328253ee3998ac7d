package bot

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go"

	"github.com/cfoust/frag/pkg/game"
	"github.com/cfoust/frag/pkg/game/player"
	"github.com/cfoust/frag/pkg/game/weapon"
	"github.com/cfoust/frag/pkg/geom"
)

const knifeSlot = 3

// Bot plays as the current player. It strafes back and forth, jumps now and
// then, keeps its aim on the nearest living actor and fires at it. When the
// ranged weapon runs dry it reloads, and once the reserve is gone it closes
// in with the knife.
type Bot struct {
	game *game.Game

	// StrafeTicks is how many frames the bot strafes in one direction. Zero
	// keeps it strafing left.
	StrafeTicks uint64
	// JumpTicks is the number of frames between jumps. Zero disables
	// jumping.
	JumpTicks uint64
	// AimHeight is where the bot aims, measured from the target's center.
	AimHeight float64

	tick uint64
}

func New(g *game.Game) *Bot {
	return &Bot{
		game:        g,
		StrafeTicks: 60,
		JumpTicks:   90,
		AimHeight:   1,
	}
}

// Target returns the living actor closest to the current player.
func (b *Bot) Target() (*player.Actor, bool) {
	self := b.game.Current()
	if self == nil {
		return nil, false
	}

	others := fp.Filter(func(a *player.Actor) bool {
		return a != self
	})(b.game.Registry().Living())

	var (
		best     *player.Actor
		distance float64
	)
	for _, other := range others {
		d := geom.Distance(self.Position, other.Position)
		if best == nil || d < distance {
			best, distance = other, d
		}
	}
	return best, best != nil
}

// Next returns the command for the coming frame.
func (b *Bot) Next() game.Command {
	tick := b.tick
	b.tick++

	self := b.game.Current()
	if self == nil || self.Dead {
		return game.Command{}
	}

	var command game.Command
	if b.StrafeTicks == 0 || (tick/b.StrafeTicks)%2 == 0 {
		command.Left = true
	} else {
		command.Right = true
	}
	if b.JumpTicks > 0 && tick%b.JumpTicks == b.JumpTicks-1 {
		command.Jump = true
	}

	target, ok := b.Target()
	if !ok {
		return command
	}

	aim := target.Position.Add(mgl64.Vec3{0, b.AimHeight, 0})
	command.Look = aim.Sub(self.Eye())

	w := self.Weapon()
	switch {
	case w.Melee:
		command.Left, command.Right = false, false
		command.Forward = true
		// Single-action: release the trigger every other frame.
		command.Fire = tick%2 == 0
	case !w.Empty():
		command.Fire = true
	case w.TotalAmmo > 0:
		command.Reload = true
	default:
		command.Slot = knifeSlot
	}

	if w.FireMode == weapon.SingleAction && !w.Melee {
		command.Fire = command.Fire && tick%2 == 0
	}
	return command
}
