package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubev2v/ipc-worker/pkg/simulator"
)

const (
	DefaultNumWorkers       = 64
	DefaultSendMaxTries     = 3
	DefaultSendInitialDelay = 50 * time.Millisecond
)

type options struct {
	numWorkers       int
	maxPending       int
	delays           simulator.DelaySource
	sendMaxTries     uint
	sendInitialDelay time.Duration
	registerer       prometheus.Registerer
}

func defaultOptions() options {
	return options{
		numWorkers:       DefaultNumWorkers,
		delays:           simulator.Default(),
		sendMaxTries:     DefaultSendMaxTries,
		sendInitialDelay: DefaultSendInitialDelay,
	}
}

type Option func(o *options)

// WithNumWorkers sets the size of the pool running tasks.
func WithNumWorkers(n int) Option {
	return func(o *options) {
		o.numWorkers = n
	}
}

// WithMaxPending rejects requests once n tasks are pending. 0 means no limit.
func WithMaxPending(n int) Option {
	return func(o *options) {
		o.maxPending = n
	}
}

func WithDelaySource(d simulator.DelaySource) Option {
	return func(o *options) {
		o.delays = d
	}
}

// WithSendRetry configures how a failed send is retried before the response
// is dropped. maxTries counts the first attempt and is at least 1.
func WithSendRetry(maxTries uint, initialDelay time.Duration) Option {
	return func(o *options) {
		o.sendMaxTries = max(maxTries, 1)
		o.sendInitialDelay = initialDelay
	}
}

// WithRegisterer registers the worker metrics on reg instead of a private
// registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
