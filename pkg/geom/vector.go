package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

var (
	Zero = mgl64.Vec3{0, 0, 0}
	Up   = mgl64.Vec3{0, 1, 0}
	Down = mgl64.Vec3{0, -1, 0}
)

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged instead of turning into NaNs.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length < epsilon {
		return Zero
	}
	return v.Mul(1 / length)
}

// Horizontal drops the vertical component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// HorizontalSpeedSq is x² + z².
func HorizontalSpeedSq(v mgl64.Vec3) float64 {
	return v.X()*v.X() + v.Z()*v.Z()
}

func WithY(v mgl64.Vec3, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), y, v.Z()}
}

func Distance(from, to mgl64.Vec3) float64 {
	return from.Sub(to).Len()
}

func IsZero(v mgl64.Vec3) bool {
	return v.X() == 0 && v.Y() == 0 && v.Z() == 0
}

// IsFinite reports whether every component is a real number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
