package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	VisitsRecorded          uint64
	VisitorsCreated         uint64
	ContactsSubmitted       uint64
	ContactsRejected        uint64
	StoreLoadFallbacks      map[string]uint64
	StoreWriteFailures      map[string]uint64
	StoreWriteDurationCount uint64
	StoreWriteDurationNs    int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	visitsRecorded          uint64
	visitorsCreated         uint64
	contactsSubmitted       uint64
	contactsRejected        uint64
	storeWriteDurationCount uint64
	storeWriteDurationNs    int64

	mu                 sync.Mutex
	storeLoadFallbacks map[string]uint64
	storeWriteFailures map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		storeLoadFallbacks: make(map[string]uint64),
		storeWriteFailures: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	fallbacks := make(map[string]uint64, len(m.storeLoadFallbacks))
	for k, v := range m.storeLoadFallbacks {
		fallbacks[k] = v
	}
	failures := make(map[string]uint64, len(m.storeWriteFailures))
	for k, v := range m.storeWriteFailures {
		failures[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		VisitsRecorded:          atomic.LoadUint64(&m.visitsRecorded),
		VisitorsCreated:         atomic.LoadUint64(&m.visitorsCreated),
		ContactsSubmitted:       atomic.LoadUint64(&m.contactsSubmitted),
		ContactsRejected:        atomic.LoadUint64(&m.contactsRejected),
		StoreLoadFallbacks:      fallbacks,
		StoreWriteFailures:      failures,
		StoreWriteDurationCount: atomic.LoadUint64(&m.storeWriteDurationCount),
		StoreWriteDurationNs:    atomic.LoadInt64(&m.storeWriteDurationNs),
	}
}

// IncVisitRecorded increments the recorded visit counter.
func (m *InMemoryRecorder) IncVisitRecorded() {
	atomic.AddUint64(&m.visitsRecorded, 1)
}

// IncVisitorCreated increments the new visitor counter.
func (m *InMemoryRecorder) IncVisitorCreated() {
	atomic.AddUint64(&m.visitorsCreated, 1)
}

// IncContactSubmitted increments the accepted contact counter.
func (m *InMemoryRecorder) IncContactSubmitted() {
	atomic.AddUint64(&m.contactsSubmitted, 1)
}

// IncContactRejected increments the rejected contact counter.
func (m *InMemoryRecorder) IncContactRejected() {
	atomic.AddUint64(&m.contactsRejected, 1)
}

// IncStoreLoadFallback counts a load that fell back to the default document.
func (m *InMemoryRecorder) IncStoreLoadFallback(kind string) {
	m.mu.Lock()
	m.storeLoadFallbacks[kind]++
	m.mu.Unlock()
}

// IncStoreWriteFailure counts a failed document write.
func (m *InMemoryRecorder) IncStoreWriteFailure(kind string) {
	m.mu.Lock()
	m.storeWriteFailures[kind]++
	m.mu.Unlock()
}

// ObserveStoreWriteDuration records a successful document write.
func (m *InMemoryRecorder) ObserveStoreWriteDuration(duration time.Duration) {
	atomic.AddUint64(&m.storeWriteDurationCount, 1)
	atomic.AddInt64(&m.storeWriteDurationNs, duration.Nanoseconds())
}
