package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfoust/frag/pkg/physics"
)

func TestRegistry(t *testing.T) {
	space := physics.NewSpace(mgl64.Vec3{})
	registry := NewRegistry()

	a := New("a", mgl64.Vec3{}, DefaultConfig())
	a.Body = space.Add(a.BodyDef())
	b := New("b", mgl64.Vec3{10, 0, 0}, DefaultConfig())
	b.Body = space.Add(b.BodyDef())

	assert.Equal(t, ID(0), registry.Add(a))
	assert.Equal(t, ID(1), registry.Add(b))
	assert.Equal(t, 2, registry.Len())

	found, ok := registry.ByBody(b.Body)
	require.True(t, ok)
	assert.Same(t, b, found)

	wall := space.Add(physics.BodyDef{Shape: physics.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}})
	_, ok = registry.ByBody(wall)
	assert.False(t, ok)

	_, ok = registry.Get(7)
	assert.False(t, ok)

	b.Dead = true
	living := registry.Living()
	require.Len(t, living, 1)
	assert.Same(t, a, living[0])
}

func TestRegistryRequiresBody(t *testing.T) {
	registry := NewRegistry()
	a := New("ghost", mgl64.Vec3{}, DefaultConfig())

	assert.Panics(t, func() { registry.Add(a) })
}

func TestLook(t *testing.T) {
	a := New("a", mgl64.Vec3{}, DefaultConfig())
	a.Look(mgl64.Vec3{0, 0, 5})
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, a.Facing)

	a.Look(mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, a.Facing)

	a.Look(mgl64.Vec3{math.NaN(), 0, 1})
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, a.Facing)

	assert.Equal(t, mgl64.Vec3{0, 0.8, 0}, a.Eye())
}
