package core

import (
	"math"
	"testing"
)

func TestNearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny positive", NewVec3(1e-9, 1e-9, 1e-9), true},
		{"tiny negative", NewVec3(-1e-9, 0, 1e-9), true},
		{"one large component", NewVec3(0, 0, 1e-3), false},
		{"large negative", NewVec3(-1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearZero(tt.v); got != tt.expected {
				t.Errorf("NearZero(%v) = %v, expected %v", tt.v, got, tt.expected)
			}
		})
	}
}

func TestSanitizeRadiance(t *testing.T) {
	got := SanitizeRadiance(NewVec3(math.NaN(), -0.5, 0.25))
	if got != NewVec3(0, 0, 0.25) {
		t.Errorf("Expected NaN and negative components zeroed, got %v", got)
	}
	got = SanitizeRadiance(NewVec3(math.Inf(1), 1, 0))
	if got != NewVec3(0, 1, 0) {
		t.Errorf("Expected infinite component zeroed, got %v", got)
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	if got := ray.At(1.5); got != NewVec3(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}

func TestHitSetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	var front Hit
	front.SetFaceNormal(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Ray against the normal should be front facing, got %+v", front)
	}

	var back Hit
	back.SetFaceNormal(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), outward)
	if back.FrontFace || back.Normal != NewVec3(0, 0, -1) {
		t.Errorf("Ray along the normal should be back facing with flipped normal, got %+v", back)
	}
}

func TestLerp(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := NewVec3(0.5, 0.7, 1.0)
	if Lerp(a, b, 0) != a || Lerp(a, b, 1) != b {
		t.Error("Lerp endpoints should reproduce inputs")
	}
	mid := Lerp(a, b, 0.5)
	if math.Abs(mid.X-0.75) > 1e-12 || math.Abs(mid.Y-0.85) > 1e-12 || mid.Z != 1 {
		t.Errorf("Unexpected midpoint %v", mid)
	}
}
