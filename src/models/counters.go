package models

// MCountersSnapshot is a point-in-time copy of the process counters.
type MCountersSnapshot struct {
	TotalExecTimeNew  float64 `json:"tot_exectime_new"`
	TotalExecTimeOld  float64 `json:"tot_exectime_old"`
	Calls             int64   `json:"nr_calls"`
	ClientDisconnects int64   `json:"nr_clientdisconnect"`
}

// -----------------------------------------------------------------------------

// MRunSummary is what gets flushed once at shutdown.
type MRunSummary struct {
	Counters  MCountersSnapshot `json:"counters"`
	StartedAt string            `json:"started_at"` // YYYYMMDDHHMM, same as the log prefix
	EndedAt   string            `json:"ended_at"`
}

// -----------------------------------------------------------------------------

// MRecentStats summarises the performance factors held in the recent buffer.
type MRecentStats struct {
	Count      int     `json:"count"`
	MeanFactor float64 `json:"mean_factor"`
	StdFactor  float64 `json:"std_factor"`
}
