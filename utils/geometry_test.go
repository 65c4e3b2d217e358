// File: utils/geometry_test.go
package utils

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	testCases := []struct {
		x1, y1, x2, y2 float64
		expected       float64
	}{
		{0, 0, 3, 4, 5},
		{1, 1, 1, 1, 0},
		{-2, -3, 2, 0, 5},
	}
	for _, tc := range testCases {
		result := Distance(tc.x1, tc.y1, tc.x2, tc.y2)
		if math.Abs(result-tc.expected) > 1e-9 {
			t.Errorf("Distance(%v,%v,%v,%v) = %v, want %v", tc.x1, tc.y1, tc.x2, tc.y2, result, tc.expected)
		}
	}
}

func TestAngleFromTop(t *testing.T) {
	testCases := []struct {
		name     string
		dx, dy   float64
		expected float64
	}{
		{"straight up", 0, -1, 0},
		{"right", 1, 0, math.Pi / 2},
		{"down", 0, 1, math.Pi},
		{"left", -1, 0, 3 * math.Pi / 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := AngleFromTop(tc.dx, tc.dy)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("AngleFromTop(%v, %v) = %v, want %v", tc.dx, tc.dy, result, tc.expected)
			}
		})
	}
}

func TestPolarToCartesianRoundTrip(t *testing.T) {
	angles := []float64{0, 0.5, math.Pi / 2, math.Pi, 4.5, TwoPi - 0.01}
	for _, angle := range angles {
		dx, dy := PolarToCartesian(angle, 10)
		back := AngleFromTop(dx, dy)
		if math.Abs(back-angle) > 1e-9 {
			t.Errorf("Round trip for angle %v returned %v", angle, back)
		}
		if math.Abs(Length(dx, dy)-10) > 1e-9 {
			t.Errorf("Radius not preserved for angle %v: got %v", angle, Length(dx, dy))
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	testCases := []struct {
		angle    float64
		expected float64
	}{
		{0, 0},
		{TwoPi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{3 * TwoPi, 0},
		{TwoPi + 1, 1},
	}
	for _, tc := range testCases {
		result := NormalizeAngle(tc.angle)
		if math.Abs(result-tc.expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tc.angle, result, tc.expected)
		}
	}
}

func TestAngleWithin(t *testing.T) {
	testCases := []struct {
		name               string
		angle, start, end  float64
		expected           bool
	}{
		{"inside plain span", 1.0, 0.5, 1.5, true},
		{"outside plain span", 2.0, 0.5, 1.5, false},
		{"inside wrapped span", 0.1, TwoPi - 0.5, 0.5, true},
		{"inside wrapped span before wrap", TwoPi - 0.2, TwoPi - 0.5, 0.5, true},
		{"outside wrapped span", math.Pi, TwoPi - 0.5, 0.5, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AngleWithin(tc.angle, tc.start, tc.end); got != tc.expected {
				t.Errorf("AngleWithin(%v, %v, %v) = %v, want %v", tc.angle, tc.start, tc.end, got, tc.expected)
			}
		})
	}
}
