package arena

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultMaxBlocks is the default block table ceiling: one 4 KiB page of
	// 12-byte descriptors.
	DefaultMaxBlocks = 4096 / 12

	// DefaultAcquireTimeout bounds how long New waits on a MemoryAcquirer
	// when the context carries no deadline.
	DefaultAcquireTimeout = 100 * time.Millisecond

	// DefaultWarnBurst is the number of exhaustion warnings logged back to back
	// before throttling kicks in.
	DefaultWarnBurst = 5
)

// DefaultWarnRate is the sustained rate of exhaustion warnings.
var DefaultWarnRate = rate.Every(time.Second)

// MemoryAcquirer reserves host memory on behalf of an arena.
// *resource.Controller implements it.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

type options struct {
	maxBlocks        int
	backing          Backing
	logger           *Logger
	metricsCollector MetricsCollector
	acquirer         MemoryAcquirer
	acquireTimeout   time.Duration
	warnRate         rate.Limit
	warnBurst        int
}

func defaultOptions() options {
	return options{
		maxBlocks:        DefaultMaxBlocks,
		backing:          BackingMmap,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		acquireTimeout:   DefaultAcquireTimeout,
		warnRate:         DefaultWarnRate,
		warnBurst:        DefaultWarnBurst,
	}
}

// Option configures an Arena.
type Option func(*options)

// WithMaxBlocks sets the block table ceiling. It bounds how many distinct
// blocks (used and free) the arena can describe at once. Values below 1 are
// ignored.
func WithMaxBlocks(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxBlocks = n
		}
	}
}

// WithBacking selects the host provider of the backing buffer.
func WithBacking(b Backing) Option {
	return func(o *options) {
		o.backing = b
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithMemoryAcquirer makes the arena reserve its capacity from acq before
// asking the host for the buffer, and return it at Close.
func WithMemoryAcquirer(acq MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acq
	}
}

// WithAcquireTimeout overrides DefaultAcquireTimeout.
func WithAcquireTimeout(d time.Duration) Option {
	return func(o *options) {
		o.acquireTimeout = d
	}
}

// WithWarnRate throttles the warnings logged when allocations fail. Use
// rate.Inf to log every failure.
func WithWarnRate(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.warnRate = r
		o.warnBurst = burst
	}
}
