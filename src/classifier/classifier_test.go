package classifier

import (
	"testing"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		new      float64
		bucket   models.MBucket
		realSlow bool
		factor   float64
	}{
		{"new db faster", 1.0, 0.9, models.BucketFaster, true, 1.11},
		{"just above slower bound", 1.0, 1.05, models.BucketSame, true, 0.95},
		{"new db slower", 1.0, 1.06, models.BucketSlower, true, 0.94},
		{"fast both, same", 0.2, 0.2, models.BucketSame, false, 1.0},
		{"original above realslow", 0.8, 0.4, models.BucketFaster, true, 2.0},
		{"new above realslow", 0.3, 0.6, models.BucketSlower, true, 0.5},
		{"exactly faster bound", 1.1, 1.0, models.BucketSame, true, 1.1},
		{"realslow bounds are strict", 0.7, 0.5, models.BucketFaster, false, 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.original, tt.new)
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, got.Bucket)
			assert.Equal(t, tt.realSlow, got.RealSlow)
			assert.InDelta(t, tt.factor, got.PerformanceFactor, 1e-9)
		})
	}
}

func TestClassifyFactorIsRounded(t *testing.T) {
	pairs := [][2]float64{{1, 3}, {2, 3}, {0.123, 0.456}, {5, 0.7}, {0.01, 0.09}}
	for _, p := range pairs {
		got, err := Classify(p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, Round2(p[0]/p[1]), got.PerformanceFactor)
	}
}

func TestClassifyDivisionByZero(t *testing.T) {
	for _, original := range []float64{0, 1, 0.8, -3} {
		_, err := Classify(original, 0)
		require.Error(t, err)
		assert.True(t, helpers.IsDivisionByZero(err))
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	th := Thresholds{Faster: 2, Slower: 0.5, RealSlowNew: 10, RealSlowOriginal: 10}
	got, err := th.Classify(1.5, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BucketSame, got.Bucket)
	assert.False(t, got.RealSlow)
}

func TestParseSample(t *testing.T) {
	s, err := ParseSample([]byte(`{"ori_exec_time": 0.8, "exec_time_newdb": "0.4", "query": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, 0.8, s.OriginalExecTime)
	assert.Equal(t, 0.4, s.NewExecTime)

	s, err = ParseSample([]byte(`{"ori_exec_time": " 1e-1 ", "exec_time_newdb": 2}`))
	require.NoError(t, err)
	assert.Equal(t, 0.1, s.OriginalExecTime)
	assert.Equal(t, 2.0, s.NewExecTime)
}

func TestParseSampleInvalid(t *testing.T) {
	bodies := []string{
		``,
		`not json`,
		`[1, 2]`,
		`null`,
		`{"exec_time_newdb": 1}`,
		`{"ori_exec_time": 1}`,
		`{"ori_exec_time": null, "exec_time_newdb": 1}`,
		`{"ori_exec_time": "fast", "exec_time_newdb": 1}`,
		`{"ori_exec_time": true, "exec_time_newdb": 1}`,
	}
	for _, body := range bodies {
		_, err := ParseSample([]byte(body))
		require.Error(t, err, body)
		assert.True(t, helpers.IsInvalidInput(err), body)
	}
}
