package material

import "github.com/df07/go-pathtracer/pkg/core"

// sequenceSampler replays fixed values in order, repeating the last one
type sequenceSampler struct {
	values []float64
	next   int
	calls1 int
}

func (s *sequenceSampler) value() float64 {
	v := s.values[min(s.next, len(s.values)-1)]
	s.next++
	return v
}

func (s *sequenceSampler) Get1D() float64 {
	s.calls1++
	return s.value()
}

func (s *sequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value(), s.value())
}
