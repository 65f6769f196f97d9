package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"benchmark-observer/src/classifier"
	"benchmark-observer/src/counters"
	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"
	"benchmark-observer/src/sink"
	"benchmark-observer/src/summary"
	"benchmark-observer/src/utils"

	"github.com/gin-gonic/gin"
)

var _ interfaces.IServer = (*BenchmarkServer)(nil)

// benchmarkPathPrefix marks the only paths answered with 200.
const benchmarkPathPrefix = "db-benchmark"

// -----------------------------------------------------------------------------
// BenchmarkServer
// -----------------------------------------------------------------------------

type BenchmarkServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine
	http   *http.Server

	interceptor *TrafficInterceptor
	counters    *counters.ProcessCounters
	recent      *utils.RingBuffer
	sink        interfaces.ILogSink
	store       interfaces.IRecordStore

	startedAt time.Time

	// WebSocket clients
	clients      map[*Client]struct{}
	clientsMutex sync.Mutex

	stopOnce sync.Once
	stopErr  error
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewBenchmarkServer wires the interceptor in front of the catch-all routes.
// store may be nil.
func NewBenchmarkServer(cfg *models.MConfig, log *logger.Logger, logSink interfaces.ILogSink, store interfaces.IRecordStore) *BenchmarkServer {
	// Set Gin mode
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &BenchmarkServer{
		Config:    cfg,
		Logger:    log,
		engine:    gin.New(),
		counters:  counters.New(),
		recent:    utils.NewRingBuffer(cfg.RecentCapacity),
		sink:      logSink,
		store:     store,
		startedAt: time.Now(),
		clients:   make(map[*Client]struct{}),
	}

	s.interceptor = NewTrafficInterceptor(
		log,
		logSink,
		store,
		s.counters,
		s.recent,
		classifier.ThresholdsFromConfig(cfg.Thresholds),
		cfg.MaxBodyBytes,
		cfg.WriteLogs,
	)

	// Unknown paths belong to the catch-all, never to a redirect.
	s.engine.RedirectTrailingSlash = false
	s.engine.RedirectFixedPath = false

	if gin.Mode() == gin.DebugMode {
		s.engine.Use(gin.Logger())
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.interceptor.Handle)

	s.setupRoutes()

	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *BenchmarkServer) setupRoutes() {
	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)

	// Everything else, any method
	s.engine.NoRoute(s.catchAll)
}

// -----------------------------------------------------------------------------

func (s *BenchmarkServer) Handler() http.Handler {
	return s.engine
}

func (s *BenchmarkServer) Interceptor() *TrafficInterceptor {
	return s.interceptor
}

func (s *BenchmarkServer) Counters() *counters.ProcessCounters {
	return s.counters
}

func (s *BenchmarkServer) Recent() *utils.RingBuffer {
	return s.recent
}

func (s *BenchmarkServer) Store() interfaces.IRecordStore {
	return s.store
}

func (s *BenchmarkServer) LogPrefix() string {
	return s.sink.Prefix()
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *BenchmarkServer) Start() error {
	s.Logger.Info("Listening! (logprefix: %s)", s.sink.Prefix())
	s.Logger.Info("Starting server on %s", s.http.Addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop drains the listener, drops WebSocket sessions, flushes the run summary
// and closes sink and store. Only the first call does any work.
func (s *BenchmarkServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		if err := s.http.Shutdown(ctx); err != nil {
			s.Logger.Warning("HTTP shutdown: %v", err)
		}
		s.closeClients()

		s.stopErr = s.flushSummary(ctx)

		if err := s.sink.Close(); err != nil {
			s.Logger.Error("Failed to close log sink: %v", err)
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				s.Logger.Error("Failed to close record store: %v", err)
			}
		}
	})
	return s.stopErr
}

// -----------------------------------------------------------------------------

// Summary snapshots the counters for the shutdown report.
func (s *BenchmarkServer) Summary(end time.Time) models.MRunSummary {
	return models.MRunSummary{
		Counters:  s.counters.Snapshot(),
		StartedAt: s.sink.Prefix(),
		EndedAt:   sink.LogPrefix(end),
	}
}

// -----------------------------------------------------------------------------

func (s *BenchmarkServer) summaryPath() string {
	if filepath.IsAbs(s.Config.SummaryFile) {
		return s.Config.SummaryFile
	}
	return filepath.Join(s.Config.LogDir, s.Config.SummaryFile)
}

// -----------------------------------------------------------------------------

func (s *BenchmarkServer) flushSummary(ctx context.Context) error {
	run := s.Summary(time.Now())

	err := summary.AppendToFile(s.summaryPath(), run)
	if err != nil {
		s.Logger.Error("Failed to write run summary: %v", err)
	}
	summary.Print(os.Stdout, run)

	if s.store != nil {
		if dbErr := s.store.SaveRunSummary(ctx, run); dbErr != nil {
			s.Logger.Error("Failed to store run summary: %v", dbErr)
		}
	}
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *BenchmarkServer) catchAll(c *gin.Context) {
	restOfPath := strings.TrimPrefix(c.Request.URL.Path, "/")
	if strings.HasPrefix(restOfPath, benchmarkPathPrefix) {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusTeapot)
}
