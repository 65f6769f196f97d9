package models

// MBenchmarkSample is one timing pair reported by a benchmark client.
type MBenchmarkSample struct {
	OriginalExecTime float64 `json:"ori_exec_time"`
	NewExecTime      float64 `json:"exec_time_newdb"`
}

// -----------------------------------------------------------------------------

// MBucket is the relative performance label of a sample.
type MBucket string

const (
	BucketFaster MBucket = "faster"
	BucketSlower MBucket = "slower"
	BucketSame   MBucket = "same"
)

// MClassification is the classifier output. RealSlow is independent of Bucket.
type MClassification struct {
	Bucket            MBucket `json:"bucket"`
	RealSlow          bool    `json:"realslow"`
	PerformanceFactor float64 `json:"perf_factor"` // rounded to 2 decimals
}

// -----------------------------------------------------------------------------

// MLogName is the fixed suffix of one of the per-run log files.
type MLogName string

const (
	LogNewDBSlower MLogName = "log_newdbslower"
	LogNewDBFaster MLogName = "log_newdbfaster"
	LogSamePerf    MLogName = "log_sameperf"
	LogRealSlow    MLogName = "log_realslow"
)

// AllLogNames lists the logs in a stable order.
var AllLogNames = []MLogName{LogNewDBSlower, LogNewDBFaster, LogSamePerf, LogRealSlow}

// LogNames returns the logs a classified record is written to: one bucket log
// and, when flagged, the realslow log.
func (c MClassification) LogNames() []MLogName {
	names := make([]MLogName, 0, 2)
	switch c.Bucket {
	case BucketFaster:
		names = append(names, LogNewDBFaster)
	case BucketSlower:
		names = append(names, LogNewDBSlower)
	default:
		names = append(names, LogSamePerf)
	}
	if c.RealSlow {
		names = append(names, LogRealSlow)
	}
	return names
}
