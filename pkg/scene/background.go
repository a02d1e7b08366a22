package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Background is the sky seen by rays that escape the scene: a vertical
// gradient from Horizon (straight down and level) to Zenith (straight up).
type Background struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background radiance along a direction of any length
func (b Background) Color(direction core.Vec3) core.Vec3 {
	unit := r3.Unit(direction)
	t := 0.5 * (unit.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return core.Lerp(b.Horizon, b.Zenith, t)
}
