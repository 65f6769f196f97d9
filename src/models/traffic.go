package models

import "time"

// MTrafficLogRecord is a snapshot of one request/response cycle.
type MTrafficLogRecord struct {
	RequestMethod   string            `json:"request_method"`
	RequestURL      string            `json:"request_url"`
	RequestSize     string            `json:"request_size"`
	RequestHeaders  map[string]string `json:"request_headers"`
	RequestBody     string            `json:"request_body"`
	ResponseStatus  int               `json:"response_status"`
	ResponseSize    string            `json:"response_size"`
	ResponseHeaders map[string]string `json:"response_headers"`
	ProcessTime     float64           `json:"process_time"`
	ClientHost      string            `json:"client_host"`
	PerfFactor      string            `json:"perf_factor,omitempty"`
}

// -----------------------------------------------------------------------------

// MStoredRecord is a classified record as kept by the record store and the
// recent buffer.
type MStoredRecord struct {
	ID               int64     `json:"id"`
	Bucket           MBucket   `json:"bucket"`
	RealSlow         bool      `json:"realslow"`
	PerfFactor       float64   `json:"perf_factor"`
	OriginalExecTime float64   `json:"ori_exec_time"`
	NewExecTime      float64   `json:"exec_time_newdb"`
	RequestMethod    string    `json:"request_method"`
	RequestURL       string    `json:"request_url"`
	ResponseStatus   int       `json:"response_status"`
	ProcessTime      float64   `json:"process_time"`
	ClientHost       string    `json:"client_host"`
	RequestSize      int64     `json:"request_size"`
	CreatedAt        time.Time `json:"created_at"`
}
