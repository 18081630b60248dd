package simulator_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/pkg/simulator"
)

var _ = Describe("Uniform", func() {
	const draws = 20000

	// Given the default delay source
	// When many delays are drawn
	// Then every delay should lie in [1s, 4s)
	It("should stay within the half-open interval", func() {
		src := simulator.Default()

		for range draws {
			d := src.Next()
			Expect(d).To(BeNumerically(">=", simulator.DefaultMinDelay))
			Expect(d).To(BeNumerically("<", simulator.DefaultMaxDelay))
		}
	})

	// Given the default delay source
	// When many delays are drawn and bucketed into three 1s buckets
	// Then each bucket should hold roughly a third of the draws
	It("should be approximately uniform", func() {
		src := simulator.NewSeededUniform(simulator.DefaultMinDelay, simulator.DefaultMaxDelay, 42)

		buckets := make([]int, 3)
		var sum time.Duration
		for range draws {
			d := src.Next()
			sum += d
			buckets[int((d-simulator.DefaultMinDelay)/time.Second)]++
		}

		for _, b := range buckets {
			Expect(float64(b) / draws).To(BeNumerically("~", 1.0/3, 0.03))
		}
		mean := sum / draws
		Expect(mean).To(BeNumerically("~", 2500*time.Millisecond, 50*time.Millisecond))
	})

	It("should not be a constant", func() {
		src := simulator.Default()

		seen := map[time.Duration]struct{}{}
		for range 100 {
			seen[src.Next()] = struct{}{}
		}
		Expect(len(seen)).To(BeNumerically(">", 1))
	})

	It("should return min when the interval is empty", func() {
		src := simulator.NewUniform(time.Second, time.Second)
		Expect(src.Next()).To(Equal(time.Second))
	})
})

var _ = Describe("Sequence", func() {
	It("should replay delays in order and repeat the last one", func() {
		src := simulator.NewSequence(3*time.Millisecond, 1*time.Millisecond)

		Expect(src.Next()).To(Equal(3 * time.Millisecond))
		Expect(src.Next()).To(Equal(1 * time.Millisecond))
		Expect(src.Next()).To(Equal(1 * time.Millisecond))
	})

	It("should return zero when empty", func() {
		Expect(simulator.NewSequence().Next()).To(BeZero())
	})
})

var _ = Describe("Fixed", func() {
	It("should always return the same delay", func() {
		src := simulator.Fixed(5 * time.Millisecond)
		Expect(src.Next()).To(Equal(5 * time.Millisecond))
		Expect(src.Next()).To(Equal(5 * time.Millisecond))
	})
})
