package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name      string
		direction core.Vec3
		normal    core.Vec3
	}{
		{"45 degrees", core.NewVec3(0, -1, -1), core.NewVec3(0, 0, 1)},
		{"head on", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)},
		{"oblique normal", core.NewVec3(2, -1, 0.5), r3.Unit(core.NewVec3(-1, 1, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 1), tt.direction)
			hit := core.Hit{Point: core.NewVec3(0, 0, 0), Normal: tt.normal, T: 1, FrontFace: true}

			scatter := metal.Scatter(rayIn, hit, sampler)

			// r = d - 2(d·n)n, on the raw incident direction
			d := tt.direction
			expected := r3.Sub(d, r3.Scale(2*r3.Dot(d, tt.normal), tt.normal))
			if r3.Norm(r3.Sub(scatter.Scattered.Direction, expected)) > 1e-12 {
				t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	fuzz := 0.5
	metal := NewMetal(albedo, fuzz)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -2, -2))
	normal := core.NewVec3(0, 1, 0)
	hit := core.Hit{Point: core.NewVec3(0, 0, 0), Normal: normal, T: 1, FrontFace: true}
	mirror := r3.Unit(core.NewVec3(0, 1, -1))

	distinct := false
	var first core.Vec3
	for i := 0; i < 200; i++ {
		scatter := metal.Scatter(rayIn, hit, sampler)
		offset := r3.Norm(r3.Sub(scatter.Scattered.Direction, mirror))
		if math.Abs(offset-fuzz) > 1e-9 {
			t.Fatalf("Fuzzed direction should be the unit mirror direction plus a fuzz-length offset, got offset %f", offset)
		}
		if i == 0 {
			first = scatter.Scattered.Direction
		} else if scatter.Scattered.Direction != first {
			distinct = true
		}
	}
	if !distinct {
		t.Error("Fuzzy metal should produce varying directions")
	}
}

func TestMetal_Validate(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	tests := []struct {
		name    string
		metal   *Metal
		wantErr bool
	}{
		{"mirror", &Metal{Albedo: albedo, Fuzz: 0}, false},
		{"fully fuzzy", &Metal{Albedo: albedo, Fuzz: 1}, false},
		{"negative fuzz", &Metal{Albedo: albedo, Fuzz: -0.1}, true},
		{"fuzz above one", &Metal{Albedo: albedo, Fuzz: 1.1}, true},
		{"NaN fuzz", &Metal{Albedo: albedo, Fuzz: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.metal.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
