package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/models"
)

// Request body keys carrying the two timings.
const (
	FieldOriginalExecTime = "ori_exec_time"
	FieldNewExecTime      = "exec_time_newdb"
)

// -----------------------------------------------------------------------------

// Thresholds holds the bucket boundaries. Comparisons are strict, so a factor
// equal to Faster or Slower lands in the Same bucket.
type Thresholds struct {
	Faster           float64
	Slower           float64
	RealSlowNew      float64
	RealSlowOriginal float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Faster:           1.10,
		Slower:           0.95,
		RealSlowNew:      0.5,
		RealSlowOriginal: 0.7,
	}
}

func ThresholdsFromConfig(cfg models.MThresholdsConfig) Thresholds {
	return Thresholds{
		Faster:           cfg.Faster,
		Slower:           cfg.Slower,
		RealSlowNew:      cfg.RealSlowNew,
		RealSlowOriginal: cfg.RealSlowOriginal,
	}
}

// -----------------------------------------------------------------------------

// Classify uses the default thresholds.
func Classify(original, newTime float64) (models.MClassification, error) {
	return DefaultThresholds().Classify(original, newTime)
}

// -----------------------------------------------------------------------------

// Classify computes original/newTime, picks exactly one bucket and independently
// flags RealSlow when either raw time crosses its threshold.
func (t Thresholds) Classify(original, newTime float64) (models.MClassification, error) {
	if newTime == 0 {
		return models.MClassification{}, helpers.NewDivisionByZero(
			fmt.Sprintf("%s is zero (ori_exec_time=%v)", FieldNewExecTime, original))
	}

	factor := original / newTime

	var bucket models.MBucket
	switch {
	case factor > t.Faster:
		bucket = models.BucketFaster
	case factor < t.Slower:
		bucket = models.BucketSlower
	default:
		bucket = models.BucketSame
	}

	return models.MClassification{
		Bucket:            bucket,
		RealSlow:          newTime > t.RealSlowNew || original > t.RealSlowOriginal,
		PerformanceFactor: Round2(factor),
	}, nil
}

// -----------------------------------------------------------------------------

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -----------------------------------------------------------------------------

// ParseSample decodes a request body into a sample. Both fields are required
// and may be JSON numbers or numeric strings.
func ParseSample(body []byte) (models.MBenchmarkSample, error) {
	var params map[string]interface{}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil {
		return models.MBenchmarkSample{}, helpers.NewInvalidInput("request body is not a JSON object", err)
	}

	original, err := coerceFloat(params, FieldOriginalExecTime)
	if err != nil {
		return models.MBenchmarkSample{}, err
	}
	newTime, err := coerceFloat(params, FieldNewExecTime)
	if err != nil {
		return models.MBenchmarkSample{}, err
	}

	return models.MBenchmarkSample{OriginalExecTime: original, NewExecTime: newTime}, nil
}

// -----------------------------------------------------------------------------

func coerceFloat(params map[string]interface{}, key string) (float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, helpers.NewInvalidInput(fmt.Sprintf("missing field %q", key), nil)
	}

	var (
		f   float64
		err error
	)
	switch v := val.(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, helpers.NewInvalidInput(fmt.Sprintf("field %q has type %T", key, val), nil)
	}
	if err != nil {
		return 0, helpers.NewInvalidInput(fmt.Sprintf("field %q is not numeric", key), err)
	}
	return f, nil
}
