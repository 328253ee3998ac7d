package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cfoust/frag/pkg/game"
	"github.com/cfoust/frag/pkg/physics"
)

var spawnPosition = mgl64.Vec3{0, 5, 8}

// buildArena lays out a walled floor and a row of loose crates.
func buildArena(space *physics.Space) {
	const (
		size   = 60.0
		height = 10.0
	)

	space.Add(physics.BodyDef{
		Shape:    physics.Box{HalfExtents: mgl64.Vec3{size, 0.5, size}},
		Position: mgl64.Vec3{0, -0.5, 0},
	})

	walls := []mgl64.Vec3{
		{size, height / 2, 0},
		{-size, height / 2, 0},
		{0, height / 2, size},
		{0, height / 2, -size},
	}
	for _, position := range walls {
		half := mgl64.Vec3{0.5, height / 2, size}
		if position.X() == 0 {
			half = mgl64.Vec3{size, height / 2, 0.5}
		}
		space.Add(physics.BodyDef{
			Shape:    physics.Box{HalfExtents: half},
			Position: position,
		})
	}

	for j := 1; j < 10; j++ {
		space.Add(physics.BodyDef{
			Shape:        physics.Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			Position:     mgl64.Vec3{10 + float64(j)*2.5, 5, 46},
			Mass:         25,
			GravityScale: 1,
			Friction:     0.5,
		})
	}
}

// spawnDummies spreads n dummies in a circle around the current player.
func spawnDummies(g *game.Game, n int) {
	self := g.Current()
	facing := self.Facing
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		self.Look(mgl64.Vec3{math.Sin(angle), 0, -math.Cos(angle)})
		g.SpawnDummy()
	}
	self.Look(facing)
}
