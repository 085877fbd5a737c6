package arena

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting allocator metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector subpackage provides a Prometheus implementation.
//
// Sizes are the byte counts requested by the caller. err is nil on success.
type MetricsCollector interface {
	// RecordAllocate is called after each fresh allocation.
	RecordAllocate(size int, err error)

	// RecordGrow is called after each resize of a live block. inPlace reports
	// whether the block kept its offset.
	RecordGrow(oldSize, newSize int, inPlace bool, err error)

	// RecordRelease is called after each release. size is the released
	// block's size, or 0 when the release was rejected.
	RecordRelease(size int, err error)

	// RecordConsolidate is called after each consolidation run.
	RecordConsolidate(merges, passes int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(int, error)        {}
func (NoopMetricsCollector) RecordGrow(int, int, bool, error) {}
func (NoopMetricsCollector) RecordRelease(int, error)         {}
func (NoopMetricsCollector) RecordConsolidate(int, int)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It may be shared by several arenas.
type BasicMetricsCollector struct {
	AllocateCount     atomic.Int64
	AllocateErrors    atomic.Int64
	AllocateBytes     atomic.Int64
	GrowCount         atomic.Int64
	GrowInPlace       atomic.Int64
	GrowErrors        atomic.Int64
	ReleaseCount      atomic.Int64
	ReleaseErrors     atomic.Int64
	ReleaseBytes      atomic.Int64
	ConsolidateCount  atomic.Int64
	ConsolidateMerges atomic.Int64
	ConsolidatePasses atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(size int, err error) {
	b.AllocateCount.Add(1)
	if err != nil {
		b.AllocateErrors.Add(1)
		return
	}
	b.AllocateBytes.Add(int64(size))
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldSize, newSize int, inPlace bool, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	if inPlace {
		b.GrowInPlace.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(size int, err error) {
	b.ReleaseCount.Add(1)
	if err != nil {
		b.ReleaseErrors.Add(1)
		return
	}
	b.ReleaseBytes.Add(int64(size))
}

// RecordConsolidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConsolidate(merges, passes int) {
	b.ConsolidateCount.Add(1)
	b.ConsolidateMerges.Add(int64(merges))
	b.ConsolidatePasses.Add(int64(passes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocateCount:     b.AllocateCount.Load(),
		AllocateErrors:    b.AllocateErrors.Load(),
		AllocateBytes:     b.AllocateBytes.Load(),
		GrowCount:         b.GrowCount.Load(),
		GrowInPlace:       b.GrowInPlace.Load(),
		GrowErrors:        b.GrowErrors.Load(),
		ReleaseCount:      b.ReleaseCount.Load(),
		ReleaseErrors:     b.ReleaseErrors.Load(),
		ReleaseBytes:      b.ReleaseBytes.Load(),
		ConsolidateCount:  b.ConsolidateCount.Load(),
		ConsolidateMerges: b.ConsolidateMerges.Load(),
		ConsolidatePasses: b.ConsolidatePasses.Load(),
		InPlaceRatio:      b.inPlaceRatio(),
	}
}

func (b *BasicMetricsCollector) inPlaceRatio() float64 {
	count := b.GrowCount.Load() - b.GrowErrors.Load()
	if count <= 0 {
		return 0
	}
	return float64(b.GrowInPlace.Load()) / float64(count)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocateCount     int64
	AllocateErrors    int64
	AllocateBytes     int64
	GrowCount         int64
	GrowInPlace       int64
	GrowErrors        int64
	ReleaseCount      int64
	ReleaseErrors     int64
	ReleaseBytes      int64
	ConsolidateCount  int64
	ConsolidateMerges int64
	ConsolidatePasses int64
	// InPlaceRatio is the share of successful grows that kept their offset.
	InPlaceRatio float64
}
