package counters

import (
	"sync"

	"benchmark-observer/src/models"
)

// -----------------------------------------------------------------------------

// ProcessCounters accumulates totals over the life of the server. Values only
// ever grow. All methods are safe for concurrent use.
type ProcessCounters struct {
	mu                sync.Mutex
	totalExecTimeNew  float64
	totalExecTimeOld  float64
	calls             int64
	clientDisconnects int64
}

func New() *ProcessCounters {
	return &ProcessCounters{}
}

// -----------------------------------------------------------------------------

// AddCall records one successfully classified sample.
func (c *ProcessCounters) AddCall(sample models.MBenchmarkSample) {
	c.mu.Lock()
	c.totalExecTimeNew += sample.NewExecTime
	c.totalExecTimeOld += sample.OriginalExecTime
	c.calls++
	c.mu.Unlock()
}

// -----------------------------------------------------------------------------

func (c *ProcessCounters) AddClientDisconnect() {
	c.mu.Lock()
	c.clientDisconnects++
	c.mu.Unlock()
}

// -----------------------------------------------------------------------------

func (c *ProcessCounters) Snapshot() models.MCountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.MCountersSnapshot{
		TotalExecTimeNew:  c.totalExecTimeNew,
		TotalExecTimeOld:  c.totalExecTimeOld,
		Calls:             c.calls,
		ClientDisconnects: c.clientDisconnects,
	}
}
