// File: utils/geometry.go
package utils

import "math"

const TwoPi = 2 * math.Pi

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Length returns the magnitude of a 2D vector.
func Length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Dot returns the dot product of two 2D vectors.
func Dot(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// NormalizeAngle maps an angle onto [0, 2π).
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, TwoPi)
	if angle < 0 {
		angle += TwoPi
	}
	return angle
}

// AngleFromTop returns the angle of the vector (dx, dy), measured from the
// top (negative y in screen coordinates) going clockwise, in [0, 2π).
func AngleFromTop(dx, dy float64) float64 {
	return NormalizeAngle(math.Atan2(dx, -dy))
}

// PolarToCartesian converts an angle-from-top plus radius into a screen
// offset from the center. Inverse of AngleFromTop for the unit circle.
func PolarToCartesian(angle, radius float64) (dx, dy float64) {
	return radius * math.Sin(angle), -radius * math.Cos(angle)
}

// AngleWithin reports whether angle lies inside [start, end] after all three
// are normalized, handling spans that wrap past 2π.
func AngleWithin(angle, start, end float64) bool {
	angle = NormalizeAngle(angle)
	start = NormalizeAngle(start)
	end = NormalizeAngle(end)
	if start <= end {
		return angle >= start && angle <= end
	}
	return angle >= start || angle <= end
}
