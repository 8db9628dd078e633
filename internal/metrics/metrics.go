// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Visit metrics
	IncVisitRecorded()
	IncVisitorCreated()

	// Contact metrics
	IncContactSubmitted()
	IncContactRejected()

	// Store metrics
	IncStoreLoadFallback(kind string)
	IncStoreWriteFailure(kind string)
	ObserveStoreWriteDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
