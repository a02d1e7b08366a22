package renderer

import (
	"context"
	"sync/atomic"
	"time"
)

// Progress counts traced pixels across all workers
type Progress struct {
	done  atomic.Int64
	total atomic.Int64
}

// Add records n more traced pixels
func (p *Progress) Add(n int) {
	p.done.Add(int64(n))
}

// SetTotal sets the number of pixels the render will trace
func (p *Progress) SetTotal(total int) {
	p.total.Store(int64(total))
}

// Done returns the number of traced pixels
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the number of pixels the render will trace
func (p *Progress) Total() int64 {
	return p.total.Load()
}

// Fraction returns the completed fraction in [0, 1]
func (p *Progress) Fraction() float64 {
	total := p.Total()
	if total <= 0 {
		return 0
	}
	return min(1, float64(p.Done())/float64(total))
}

// Watch calls report every interval until ctx is done
func (p *Progress) Watch(ctx context.Context, interval time.Duration, report func(done, total int64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report(p.Done(), p.Total())
		}
	}
}
