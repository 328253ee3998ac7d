package weapon

import (
	"time"

	"github.com/cfoust/frag/pkg/game/sound"
)

type ID int32

const (
	AK47 ID = iota
	USP
	Knife
	numWeapons
)

type FireMode int32

const (
	Automatic FireMode = iota
	SingleAction
)

func (m FireMode) String() string {
	if m == Automatic {
		return "auto"
	}
	return "single"
}

// A Stage is one step of a staged cue sequence, played After the sequence
// started.
type Stage struct {
	After time.Duration
	Sound sound.ID
}

// Spec holds the static properties of a weapon type.
type Spec struct {
	ID         ID
	Name       string
	FireMode   FireMode
	RateOfFire time.Duration
	ClipSize   int32
	Reserve    int32
	Melee      bool
	// Range is the length of the hitscan ray.
	Range float64
	// MuzzleOffset pushes the ray origin forward so it starts outside the
	// shooter's own capsule.
	MuzzleOffset float64

	ShootSound   sound.ID
	DryFireSound sound.ID
	DeploySound  sound.ID
	ReloadStages []Stage
}

var byID = map[ID]Spec{
	AK47: {
		ID:           AK47,
		Name:         "AK47",
		FireMode:     Automatic,
		RateOfFire:   100 * time.Millisecond,
		ClipSize:     30,
		Reserve:      90,
		Range:        10000,
		MuzzleOffset: 2.0,
		ShootSound:   sound.ShootAK47,
		DryFireSound: sound.DryFireRifle,
		DeploySound:  sound.DeployAK47,
		ReloadStages: []Stage{
			{0, sound.AK47ClipOut},
			{1000 * time.Millisecond, sound.AK47ClipIn},
			{1800 * time.Millisecond, sound.AK47BoltPull},
		},
	},
	USP: {
		ID:           USP,
		Name:         "Usp",
		FireMode:     SingleAction,
		RateOfFire:   100 * time.Millisecond,
		ClipSize:     15,
		Reserve:      45,
		Range:        10000,
		MuzzleOffset: 2.0,
		ShootSound:   sound.ShootUSP,
		DryFireSound: sound.DryFirePistol,
		DeploySound:  sound.DeployUSP,
		ReloadStages: []Stage{
			{0, sound.USPClipOut},
			{600 * time.Millisecond, sound.USPClipIn},
			{1100 * time.Millisecond, sound.USPSlideBack},
		},
	},
	Knife: {
		ID:           Knife,
		Name:         "Knife",
		FireMode:     SingleAction,
		RateOfFire:   200 * time.Millisecond,
		Melee:        true,
		Range:        2,
		MuzzleOffset: 1.5,
		DeploySound:  sound.DeployKnife,
	},
}

func ByID(id ID) Spec {
	if id < AK47 || id >= numWeapons {
		return byID[AK47]
	}
	return byID[id]
}

// Weapon is the mutable ammo and cooldown state of one weapon owned by an
// actor.
type Weapon struct {
	Spec

	ClipAmmo  int32
	TotalAmmo int32
	LastFire  time.Duration

	fired bool
}

// New returns a weapon with a full clip and full reserve.
func New(spec Spec) *Weapon {
	return &Weapon{
		Spec:      spec,
		ClipAmmo:  spec.ClipSize,
		TotalAmmo: spec.Reserve,
	}
}

func (w *Weapon) cooledDown(now time.Duration) bool {
	return !w.fired || now-w.LastFire >= w.RateOfFire
}

func (w *Weapon) CanFire(now time.Duration) bool {
	if w.Melee {
		return w.cooledDown(now)
	}
	return w.ClipAmmo > 0 && w.cooledDown(now)
}

// Fire is the only way ammo leaves the clip. It returns false and leaves the
// weapon untouched if the weapon is cooling down or empty.
func (w *Weapon) Fire(now time.Duration) bool {
	if !w.CanFire(now) {
		return false
	}

	w.LastFire = now
	w.fired = true
	if !w.Melee {
		w.ClipAmmo--
	}
	return true
}

// DryFire reports whether an empty ranged weapon should click. The click
// shares the fire cooldown but never touches ammo.
func (w *Weapon) DryFire(now time.Duration) bool {
	if w.Melee || w.ClipAmmo > 0 || !w.cooledDown(now) {
		return false
	}
	w.LastFire = now
	w.fired = true
	return true
}

func (w *Weapon) Empty() bool {
	return !w.Melee && w.ClipAmmo <= 0
}

// Reload moves as much reserve ammo into the clip as fits. The fire cooldown
// is left alone.
func (w *Weapon) Reload() bool {
	if w.Melee {
		return false
	}

	needed := w.ClipSize - w.ClipAmmo
	if needed <= 0 || w.TotalAmmo <= 0 {
		return false
	}

	amount := needed
	if w.TotalAmmo < amount {
		amount = w.TotalAmmo
	}
	w.ClipAmmo += amount
	w.TotalAmmo -= amount
	return true
}

// SinceLastFire returns the time elapsed since the last shot, or false if the
// weapon never fired.
func (w *Weapon) SinceLastFire(now time.Duration) (time.Duration, bool) {
	if !w.fired {
		return 0, false
	}
	return now - w.LastFire, true
}
