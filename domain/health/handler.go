package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
)

// CheckResult is one dependency probe outcome.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Response is the health endpoint payload.
type Response struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// StatsResponse carries runtime statistics for monitoring.
type StatsResponse struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	Uptime       string `json:"uptime"`
}

var startTime = time.Now()

// LivenessHandler handles GET /health/live. Always 200 while the process
// is up.
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthHandler handles GET /health. Probes the database and, when
// configured, the Redis signal store. Redis being down degrades the
// report but does not fail it: the site still works on polling
// fallbacks within a process.
func HealthHandler(c echo.Context) error {
	checks := map[string]CheckResult{
		"database": checkDatabase(),
	}
	if config.RedisClient != nil {
		checks["signal_store"] = checkRedis()
	}

	status := "ok"
	httpStatus := http.StatusOK
	if checks["database"].Status != "ok" {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else if redis, ok := checks["signal_store"]; ok && redis.Status != "ok" {
		status = "degraded"
	}

	return c.JSON(httpStatus, Response{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// StatsHandler handles GET /health/stats.
func StatsHandler(c echo.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(http.StatusOK, StatsResponse{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		Uptime:       time.Since(startTime).Round(time.Second).String(),
	})
}

func checkDatabase() CheckResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := config.DB.PingContext(ctx)
	latency := time.Since(start).String()
	if err != nil {
		return CheckResult{Status: "error", Message: "Database connection failed", Latency: latency}
	}
	return CheckResult{Status: "ok", Latency: latency}
}

func checkRedis() CheckResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := config.RedisClient.Ping(ctx).Err()
	latency := time.Since(start).String()
	if err != nil {
		return CheckResult{Status: "error", Message: "Signal store unreachable", Latency: latency}
	}
	return CheckResult{Status: "ok", Latency: latency}
}
