// Package simulator provides the latency model used to stand in for real
// processing cost. Delays come from a DelaySource so tests can make timing
// deterministic.
package simulator

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 4000 * time.Millisecond
)

// DelaySource yields the simulated processing time of the next task.
type DelaySource interface {
	Next() time.Duration
}

// Uniform draws delays uniformly from [Min, Max).
type Uniform struct {
	min time.Duration
	max time.Duration
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewUniform returns a source drawing from [min, max). If max <= min every
// draw returns min.
func NewUniform(min, max time.Duration) *Uniform {
	return &Uniform{
		min: min,
		max: max,
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeededUniform is NewUniform with a fixed seed, for reproducible runs.
func NewSeededUniform(min, max time.Duration, seed uint64) *Uniform {
	u := NewUniform(min, max)
	u.rnd = rand.New(rand.NewPCG(seed, seed))
	return u
}

// Default is the 1s to 4s source used by the worker.
func Default() *Uniform {
	return NewUniform(DefaultMinDelay, DefaultMaxDelay)
}

func (u *Uniform) Next() time.Duration {
	span := u.max - u.min
	if span <= 0 {
		return u.min
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.min + time.Duration(u.rnd.Int64N(int64(span)))
}

// Fixed always returns the same delay.
type Fixed time.Duration

func (f Fixed) Next() time.Duration {
	return time.Duration(f)
}

// Sequence returns its delays in order. Once exhausted it keeps returning the
// last one.
type Sequence struct {
	mu     sync.Mutex
	delays []time.Duration
	next   int
}

func NewSequence(delays ...time.Duration) *Sequence {
	return &Sequence{delays: delays}
}

func (s *Sequence) Next() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.delays) == 0 {
		return 0
	}
	d := s.delays[s.next]
	if s.next < len(s.delays)-1 {
		s.next++
	}
	return d
}
