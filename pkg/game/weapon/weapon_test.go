package weapon

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func TestFireRateAndAmmo(t *testing.T) {
	w := New(ByID(AK47))
	require.Equal(t, int32(30), w.ClipAmmo)
	require.Equal(t, int32(90), w.TotalAmmo)

	assert.True(t, w.CanFire(0))
	assert.True(t, w.Fire(0))
	assert.False(t, w.Fire(0), "same timestamp must not fire twice")
	assert.False(t, w.Fire(99*ms))
	assert.True(t, w.Fire(100*ms))
	assert.Equal(t, int32(28), w.ClipAmmo)
	assert.Equal(t, int32(90), w.TotalAmmo)
}

func TestEmptyClip(t *testing.T) {
	w := New(ByID(USP))
	w.ClipAmmo = 0

	assert.False(t, w.CanFire(time.Second))
	assert.False(t, w.Fire(time.Second))
	assert.True(t, w.Empty())

	assert.True(t, w.DryFire(time.Second))
	assert.False(t, w.DryFire(time.Second+50*ms))
	assert.Equal(t, int32(0), w.ClipAmmo)
	assert.Equal(t, int32(45), w.TotalAmmo)
}

func TestMeleeIgnoresAmmo(t *testing.T) {
	w := New(ByID(Knife))

	assert.True(t, w.Fire(0))
	assert.False(t, w.Fire(199*ms))
	assert.True(t, w.Fire(200*ms))
	assert.Equal(t, int32(0), w.ClipAmmo)
	assert.Equal(t, int32(0), w.TotalAmmo)

	assert.False(t, w.Reload())
	assert.False(t, w.DryFire(time.Hour))
	assert.False(t, w.Empty())
}

func TestReload(t *testing.T) {
	w := New(ByID(AK47))
	w.ClipAmmo = 10
	w.TotalAmmo = 5
	w.LastFire = 42 * ms

	assert.True(t, w.Reload())
	assert.Equal(t, int32(15), w.ClipAmmo)
	assert.Equal(t, int32(0), w.TotalAmmo)
	assert.Equal(t, 42*ms, w.LastFire, "reload leaves the fire cooldown alone")

	assert.False(t, w.Reload())
}

func TestReloadFullClip(t *testing.T) {
	w := New(ByID(AK47))
	assert.False(t, w.Reload())
	assert.Equal(t, int32(30), w.ClipAmmo)
	assert.Equal(t, int32(90), w.TotalAmmo)
}

func TestAmmoBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, id := range []ID{AK47, USP, Knife} {
		w := New(ByID(id))
		now := time.Duration(0)
		for i := 0; i < 2000; i++ {
			now += time.Duration(rng.Intn(150)) * ms
			if rng.Intn(4) == 0 {
				w.Reload()
			} else {
				w.Fire(now)
			}

			require.GreaterOrEqual(t, w.ClipAmmo, int32(0))
			require.LessOrEqual(t, w.ClipAmmo, w.ClipSize)
			require.GreaterOrEqual(t, w.TotalAmmo, int32(0))
		}
	}
}

func TestSinceLastFire(t *testing.T) {
	w := New(ByID(USP))
	_, fired := w.SinceLastFire(time.Second)
	assert.False(t, fired)

	w.Fire(time.Second)
	elapsed, fired := w.SinceLastFire(1500 * ms)
	assert.True(t, fired)
	assert.Equal(t, 500*ms, elapsed)
}

func TestLoadout(t *testing.T) {
	l := NewLoadout()
	require.Equal(t, 1, l.CurrentSlot())
	assert.Equal(t, "AK47", l.Current().Name)

	w, changed, ok := l.Equip(3)
	require.True(t, ok)
	assert.True(t, changed)
	assert.True(t, w.Melee)

	_, changed, ok = l.Equip(3)
	assert.True(t, ok)
	assert.False(t, changed)

	_, _, ok = l.Equip(4)
	assert.False(t, ok)
	_, _, ok = l.Equip(0)
	assert.False(t, ok)
	assert.Equal(t, 3, l.CurrentSlot())

	names := []string{}
	l.ForEach(func(_ int, w *Weapon) { names = append(names, w.Name) })
	assert.Equal(t, []string{"AK47", "Usp", "Knife"}, names)
}

func TestByIDFallback(t *testing.T) {
	assert.Equal(t, AK47, ByID(ID(99)).ID)
	assert.Equal(t, Knife, ByID(Knife).ID)
}
