package utils

import (
	"sync"

	"benchmark-observer/src/analysis/core"
	"benchmark-observer/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of the latest classified records.
// True ring buffer - no resizing allowed!
// -----------------------------------------------------------------------------

type RingBuffer struct {
	mu       sync.RWMutex
	data     []models.MStoredRecord
	capacity int
	index    int // Next write position
	size     int // Current number of elements
	nextID   int64
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 500 // Default reasonable size
	}

	return &RingBuffer{
		data:     make([]models.MStoredRecord, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append stores rec, overwriting the oldest entry once full. Records without an
// ID get a buffer-local sequence number.
func (rb *RingBuffer) Append(rec models.MStoredRecord) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.nextID++
	if rec.ID == 0 {
		rec.ID = rb.nextID
	}
	rb.data[rb.index] = rec

	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns up to n latest records, newest first, optionally restricted
// to one bucket ("realslow" selects the flag instead of a bucket).
func (rb *RingBuffer) GetLatest(n int, bucket string) []models.MStoredRecord {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]models.MStoredRecord, 0)
	if rb.size == 0 || n <= 0 {
		return result
	}

	for i := 1; i <= rb.size && len(result) < n; i++ {
		idx := (rb.index - i + rb.capacity) % rb.capacity
		rec := rb.data[idx]
		if MatchesBucket(rec, bucket) {
			result = append(result, rec)
		}
	}

	return result
}

// -----------------------------------------------------------------------------

// Stats returns mean/std of the performance factors currently held.
func (rb *RingBuffer) Stats() models.MRecentStats {
	rb.mu.RLock()
	factors := make([]float64, 0, rb.size)
	for i := 0; i < rb.size; i++ {
		factors = append(factors, rb.data[i].PerfFactor)
	}
	rb.mu.RUnlock()

	mean, std := core.CalculateMeanStd(factors)
	return models.MRecentStats{Count: len(factors), MeanFactor: mean, StdFactor: std}
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size
}

// -----------------------------------------------------------------------------

// MatchesBucket reports whether rec belongs to the filter used by the admin API.
func MatchesBucket(rec models.MStoredRecord, bucket string) bool {
	switch bucket {
	case "":
		return true
	case "realslow":
		return rec.RealSlow
	default:
		return string(rec.Bucket) == bucket
	}
}
