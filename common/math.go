package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// minSmoothTime keeps SmoothDamp away from a division by zero when the
// configured smoothing is 0.
const minSmoothTime = 0.0001

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SignVector reduces v to its compass direction, one sign per axis.
func SignVector(v cp.Vector) cp.Vector {
	return cp.Vector{X: Sign(v.X), Y: Sign(v.Y)}
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity is the caller-owned accumulator and is updated in place. The
// result never overshoots target.
func SmoothDamp(current, target cp.Vector, velocity *cp.Vector, smoothTime, dt float64) cp.Vector {
	if velocity == nil {
		return target
	}
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mult(omega)).Mult(dt)
	*velocity = velocity.Sub(temp.Mult(omega)).Mult(decay)
	out := target.Add(change.Add(temp).Mult(decay))

	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = cp.Vector{}
	}
	return out
}
