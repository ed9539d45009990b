package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client  *Client
	timeout time.Duration
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and reports connection pool statistics
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	config := h.client.GetConfig()
	details := map[string]string{
		"addr":     config.Addr(),
		"database": strconv.Itoa(config.Database),
	}

	started := time.Now()
	if err := h.client.Ping(ctx); err != nil {
		details["last_error"] = fmt.Sprintf("ping failed: %v", err)
		return RedisHealthCheck{Status: StatusDown, Details: details}
	}

	stats := h.client.GetClient().PoolStats()
	details["latency"] = time.Since(started).String()
	details["total_conns"] = strconv.FormatUint(uint64(stats.TotalConns), 10)
	details["idle_conns"] = strconv.FormatUint(uint64(stats.IdleConns), 10)

	return RedisHealthCheck{Status: StatusUp, Details: details}
}
