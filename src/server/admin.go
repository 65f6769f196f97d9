package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// AdminServer - read-only view on the running observer plus the logging toggle
// -----------------------------------------------------------------------------

type AdminServer struct {
	Logger *logger.Logger
	target *BenchmarkServer
	engine *gin.Engine
	http   *http.Server
}

var _ interfaces.IServer = (*AdminServer)(nil)

type loggingToggle struct {
	WriteLogs *bool `json:"write_logs"`
}

var validBuckets = map[string]bool{
	"":                          true,
	string(models.BucketFaster): true,
	string(models.BucketSlower): true,
	string(models.BucketSame):   true,
	"realslow":                  true,
}

// -----------------------------------------------------------------------------

func NewAdminServer(target *BenchmarkServer, log *logger.Logger) *AdminServer {
	a := &AdminServer{
		Logger: log.Named("Admin"),
		target: target,
		engine: gin.New(),
	}
	a.engine.Use(gin.Recovery())

	api := a.engine.Group("/api")
	{
		api.GET("/health", a.getHealth)
		api.GET("/counters", a.getCounters)
		api.GET("/config", a.getConfig)
		api.GET("/logging", a.getLogging)
		api.PUT("/logging", a.putLogging)
		api.GET("/records", a.getRecords)
	}

	cfg := target.Config.Admin
	a.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return a
}

// -----------------------------------------------------------------------------

func (a *AdminServer) Handler() http.Handler {
	return a.engine
}

// -----------------------------------------------------------------------------

func (a *AdminServer) Start() error {
	a.Logger.Info("Starting admin API on %s", a.http.Addr)
	if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (a *AdminServer) Stop(ctx context.Context) error {
	return a.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (a *AdminServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": a.target.Connections(),
		"logprefix":   a.target.LogPrefix(),
		"write_logs":  a.target.Interceptor().Enabled(),
		"uptime":      time.Since(a.target.startedAt).Round(time.Second).String(),
	})
}

// -----------------------------------------------------------------------------

func (a *AdminServer) getCounters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"counters": a.target.Counters().Snapshot(),
		"recent":   a.target.Recent().Stats(),
		"errors":   a.target.Interceptor().ErrorCount(),
	})
}

// -----------------------------------------------------------------------------

func (a *AdminServer) getConfig(c *gin.Context) {
	cfg := a.target.Config
	// No connection string: it may carry credentials.
	c.JSON(http.StatusOK, gin.H{
		"name":         cfg.Name,
		"log_dir":      cfg.LogDir,
		"summary_file": cfg.SummaryFile,
		"thresholds": gin.H{
			"faster":            cfg.Thresholds.Faster,
			"slower":            cfg.Thresholds.Slower,
			"realslow_new":      cfg.Thresholds.RealSlowNew,
			"realslow_original": cfg.Thresholds.RealSlowOriginal,
		},
		"db_type": cfg.Storage.DBType,
	})
}

// -----------------------------------------------------------------------------

func (a *AdminServer) getLogging(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"write_logs": a.target.Interceptor().Enabled()})
}

// -----------------------------------------------------------------------------

func (a *AdminServer) putLogging(c *gin.Context) {
	var req loggingToggle
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WriteLogs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "write_logs is required"})
		return
	}

	a.target.Interceptor().SetEnabled(*req.WriteLogs)
	a.Logger.Info("Logging toggled: write_logs=%t", *req.WriteLogs)
	c.JSON(http.StatusOK, gin.H{"write_logs": *req.WriteLogs})
}

// -----------------------------------------------------------------------------

func (a *AdminServer) getRecords(c *gin.Context) {
	bucket := c.Query("bucket")
	if !validBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown bucket: " + bucket})
		return
	}

	limit := 200
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 2000 {
			limit = v
		}
	}

	store := a.target.Store()
	if store == nil {
		c.JSON(http.StatusOK, a.target.Recent().GetLatest(limit, bucket))
		return
	}

	rows, err := store.QueryRecords(c.Request.Context(), bucket, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
