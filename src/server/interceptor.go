package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"benchmark-observer/src/classifier"
	"benchmark-observer/src/counters"
	"benchmark-observer/src/helpers"
	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"
	"benchmark-observer/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// TrafficInterceptor
// -----------------------------------------------------------------------------

// TrafficInterceptor times every request and, for 200 responses carrying a
// benchmark sample, classifies it and routes the record to the log sink.
type TrafficInterceptor struct {
	Logger     *logger.Logger
	sink       interfaces.ILogSink
	store      interfaces.IRecordStore // optional
	counters   *counters.ProcessCounters
	recent     *utils.RingBuffer
	thresholds classifier.Thresholds
	maxBody    int64
	errors     *helpers.ErrorHandler

	enabled atomic.Bool
}

// -----------------------------------------------------------------------------

func NewTrafficInterceptor(
	log *logger.Logger,
	sink interfaces.ILogSink,
	store interfaces.IRecordStore,
	ctrs *counters.ProcessCounters,
	recent *utils.RingBuffer,
	thresholds classifier.Thresholds,
	maxBody int64,
	enabled bool,
) *TrafficInterceptor {
	ti := &TrafficInterceptor{
		Logger:     log.Named("Interceptor"),
		sink:       sink,
		store:      store,
		counters:   ctrs,
		recent:     recent,
		thresholds: thresholds,
		maxBody:    maxBody,
		errors:     helpers.NewErrorHandler(log),
	}
	ti.enabled.Store(enabled)
	return ti
}

// -----------------------------------------------------------------------------

func (ti *TrafficInterceptor) Enabled() bool {
	return ti.enabled.Load()
}

func (ti *TrafficInterceptor) SetEnabled(v bool) {
	ti.enabled.Store(v)
}

func (ti *TrafficInterceptor) ErrorCount() int64 {
	return ti.errors.ErrorCount()
}

// -----------------------------------------------------------------------------

// Handle is the gin middleware.
func (ti *TrafficInterceptor) Handle(c *gin.Context) {
	// Upgraded connections are hijacked; there is no response to inspect.
	if c.IsWebsocket() {
		c.Next()
		return
	}

	start := time.Now()
	body, readErr := readBody(c.Writer, c.Request, ti.maxBody)

	c.Next()

	elapsed := time.Since(start).Seconds()

	if helpers.IsClientDisconnect(readErr) {
		// Only the logging side channel is lost; the response goes out as is.
		ti.counters.AddClientDisconnect()
		ti.errors.Handle(readErr, c.Request.URL.Path)
		return
	}

	record := buildRecord(c, body, elapsed)

	if !ti.Enabled() || c.Writer.Status() != http.StatusOK {
		return
	}

	// An oversized body is rejected like any other unusable sample.
	err := readErr
	if err == nil {
		err = ti.process(c.Request.Context(), &record, body)
	}
	if err != nil {
		ti.errors.Handle(err, c.Request.URL.Path)
		_ = c.Error(err)
		if !c.Writer.Written() {
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
	}
}

// -----------------------------------------------------------------------------

// process parses, classifies and logs one sample. Counters move only once every
// log line has been written.
func (ti *TrafficInterceptor) process(ctx context.Context, record *models.MTrafficLogRecord, body []byte) error {
	sample, err := classifier.ParseSample(body)
	if err != nil {
		return err
	}

	cls, err := ti.thresholds.Classify(sample.OriginalExecTime, sample.NewExecTime)
	if err != nil {
		return err
	}
	record.PerfFactor = helpers.FormatFloat(cls.PerformanceFactor)

	for _, name := range cls.LogNames() {
		if err := ti.sink.Append(name, *record); err != nil {
			return err
		}
	}

	stored := models.MStoredRecord{
		Bucket:           cls.Bucket,
		RealSlow:         cls.RealSlow,
		PerfFactor:       cls.PerformanceFactor,
		OriginalExecTime: sample.OriginalExecTime,
		NewExecTime:      sample.NewExecTime,
		RequestMethod:    record.RequestMethod,
		RequestURL:       record.RequestURL,
		ResponseStatus:   record.ResponseStatus,
		ProcessTime:      record.ProcessTime,
		ClientHost:       record.ClientHost,
		RequestSize:      int64(len(body)),
		CreatedAt:        time.Now().UTC(),
	}
	if ti.store != nil {
		// The database is a mirror of the log files; losing a row is not fatal.
		if err := ti.store.SaveRecord(ctx, &stored); err != nil {
			ti.errors.Handle(err, "record store")
		}
	}
	ti.recent.Append(stored)

	ti.counters.AddCall(sample)

	ti.Logger.Debug("%s %s -> %s (factor %s, realslow=%t)",
		record.RequestMethod, record.RequestURL, cls.Bucket, record.PerfFactor, cls.RealSlow)
	return nil
}

// -----------------------------------------------------------------------------

// readBody drains at most limit bytes of the request body and puts a
// replayable copy back so the downstream handler still sees it. A body over
// the limit is an InvalidInput error; any other read error is a disconnect.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return body, helpers.NewInvalidInput(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err)
		}
		return nil, helpers.NewClientDisconnect("failed to read request body", err)
	}
	return body, nil
}

// -----------------------------------------------------------------------------

func buildRecord(c *gin.Context, body []byte, elapsed float64) models.MTrafficLogRecord {
	reqHeaders := flattenHeaders(c.Request.Header)
	reqHeaders["host"] = c.Request.Host

	responseSize := c.Writer.Header().Get("Content-Length")
	if responseSize == "" {
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		responseSize = strconv.Itoa(size)
	}

	return models.MTrafficLogRecord{
		RequestMethod:   c.Request.Method,
		RequestURL:      requestURL(c.Request),
		RequestSize:     c.Request.Header.Get("Content-Length"),
		RequestHeaders:  reqHeaders,
		RequestBody:     string(body),
		ResponseStatus:  c.Writer.Status(),
		ResponseSize:    responseSize,
		ResponseHeaders: flattenHeaders(c.Writer.Header()),
		ProcessTime:     elapsed,
		ClientHost:      c.RemoteIP(),
	}
}

// -----------------------------------------------------------------------------

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// -----------------------------------------------------------------------------

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
