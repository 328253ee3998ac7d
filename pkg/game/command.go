package game

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Command is the input for the current player during one frame.
type Command struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	// Look replaces the facing direction unless it is zero.
	Look mgl64.Vec3

	// Fire is the trigger state. Automatic weapons fire for as long as it is
	// held; single-action weapons fire once per press.
	Fire   bool
	Reload bool
	// Slot equips a loadout slot, 1 to weapon.NumSlots. Zero keeps the
	// current weapon.
	Slot int

	SpawnDummy bool
}
