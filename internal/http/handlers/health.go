package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db      *pgxpool.Pool
	started time.Time
	version string
}

func NewHealthHandler(db *pgxpool.Pool, version string) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now(), version: version}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports whether dependencies are reachable. The database is
// required; redis only degrades the report since the rate limiter and the
// leaderboard cache both tolerate it being down.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	status := "ready"
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		status = "not ready"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if rdb := middleware.RedisClient(); rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down: " + err.Error()
			if status == "ready" {
				status = "degraded"
			}
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["heap_mb"] = fmt.Sprintf("%.1f", float64(m.HeapAlloc)/1024/1024)
	checks["goroutines"] = runtime.NumGoroutine()

	c.JSON(code, gin.H{
		"status":    status,
		"version":   h.version,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// Health is the basic combined check.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}
