package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncVisitRecorded is a no-op.
func (n *NoopRecorder) IncVisitRecorded() {}

// IncVisitorCreated is a no-op.
func (n *NoopRecorder) IncVisitorCreated() {}

// IncContactSubmitted is a no-op.
func (n *NoopRecorder) IncContactSubmitted() {}

// IncContactRejected is a no-op.
func (n *NoopRecorder) IncContactRejected() {}

// IncStoreLoadFallback is a no-op.
func (n *NoopRecorder) IncStoreLoadFallback(kind string) {}

// IncStoreWriteFailure is a no-op.
func (n *NoopRecorder) IncStoreWriteFailure(kind string) {}

// ObserveStoreWriteDuration is a no-op.
func (n *NoopRecorder) ObserveStoreWriteDuration(duration time.Duration) {}
