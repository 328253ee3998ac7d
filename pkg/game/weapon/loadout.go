package weapon

const NumSlots = 3

// Loadout is the fixed set of weapons an actor carries. Slots are numbered
// from 1 like the number keys that select them.
type Loadout struct {
	weapons [NumSlots]*Weapon
	current int
}

func NewLoadout() *Loadout {
	return &Loadout{
		weapons: [NumSlots]*Weapon{
			New(ByID(AK47)),
			New(ByID(USP)),
			New(ByID(Knife)),
		},
	}
}

func (l *Loadout) Current() *Weapon {
	return l.weapons[l.current]
}

func (l *Loadout) CurrentSlot() int {
	return l.current + 1
}

func (l *Loadout) Slot(slot int) (*Weapon, bool) {
	if slot < 1 || slot > NumSlots {
		return nil, false
	}
	return l.weapons[slot-1], true
}

// Equip selects the weapon in slot. changed is false when the slot was
// already equipped.
func (l *Loadout) Equip(slot int) (w *Weapon, changed bool, ok bool) {
	w, ok = l.Slot(slot)
	if !ok {
		return nil, false, false
	}
	changed = l.current != slot-1
	l.current = slot - 1
	return w, changed, true
}

func (l *Loadout) ForEach(f func(slot int, w *Weapon)) {
	for i, w := range l.weapons {
		f(i+1, w)
	}
}
