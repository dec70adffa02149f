// pkg/physics/angle.go
package physics

import "math"

// NormalizeAngle wraps an angle into the half-open range (-Pi, Pi]
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle <= -math.Pi {
		angle += 2 * math.Pi
	} else if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// AngleBetween returns the unsigned shortest-arc difference of two headings, in [0, Pi]
func AngleBetween(a, b float64) float64 {
	return math.Abs(NormalizeAngle(b - a))
}

// TurnToward rotates current toward target along the shortest arc,
// moving by at most maxStep radians.
func TurnToward(current, target, maxStep float64) float64 {
	diff := NormalizeAngle(target - current)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(target)
	}
	if diff > 0 {
		return NormalizeAngle(current + maxStep)
	}
	return NormalizeAngle(current - maxStep)
}
