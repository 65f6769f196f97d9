package utils

import (
	"testing"

	"benchmark-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(bucket models.MBucket, factor float64, realSlow bool) models.MStoredRecord {
	return models.MStoredRecord{Bucket: bucket, PerfFactor: factor, RealSlow: realSlow}
}

func TestRingBufferWrapsAround(t *testing.T) {
	rb := NewRingBuffer(3)
	for i := 1; i <= 5; i++ {
		rb.Append(rec(models.BucketSame, float64(i), false))
	}

	assert.Equal(t, 3, rb.Size())
	latest := rb.GetLatest(10, "")
	require.Len(t, latest, 3)
	assert.Equal(t, []float64{5, 4, 3}, []float64{latest[0].PerfFactor, latest[1].PerfFactor, latest[2].PerfFactor})
	assert.Equal(t, int64(5), latest[0].ID)
}

func TestRingBufferFilter(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Append(rec(models.BucketFaster, 1.5, false))
	rb.Append(rec(models.BucketSlower, 0.5, true))
	rb.Append(rec(models.BucketFaster, 2.0, true))

	assert.Len(t, rb.GetLatest(10, "faster"), 2)
	assert.Len(t, rb.GetLatest(10, "slower"), 1)
	assert.Len(t, rb.GetLatest(10, "realslow"), 2)
	assert.Len(t, rb.GetLatest(1, "faster"), 1)
	assert.Empty(t, rb.GetLatest(10, "same"))
	assert.Empty(t, rb.GetLatest(0, ""))
}

func TestRingBufferStats(t *testing.T) {
	rb := NewRingBuffer(4)
	assert.Equal(t, models.MRecentStats{}, rb.Stats())

	rb.Append(rec(models.BucketSame, 1.0, false))
	rb.Append(rec(models.BucketFaster, 3.0, false))

	stats := rb.Stats()
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 2.0, stats.MeanFactor, 1e-9)
	assert.InDelta(t, 1.0, stats.StdFactor, 1e-9)
}
