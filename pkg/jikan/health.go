package jikan

import "time"

// unhealthyThreshold is the number of consecutive failures after which the
// API is reported unhealthy.
const unhealthyThreshold = 3

// Health is a snapshot of how the API has been responding to this client.
type Health struct {
	// Healthy is false after unhealthyThreshold consecutive failures
	Healthy bool

	// LastCheck is when the last request completed
	LastCheck time.Time

	// LastError is the most recent failure (nil after a success)
	LastError error

	// ConsecutiveFailures counts failures since the last success
	ConsecutiveFailures int

	// LastSuccess is when the last successful request completed
	LastSuccess time.Time

	// TotalRequests counts requests that reached the network
	TotalRequests int64

	// FailedRequests counts requests that failed
	FailedRequests int64
}

// IsHealthy returns the current health status.
func (c *Client) IsHealthy() bool {
	c.healthMu.RLock()
	defer c.healthMu.RUnlock()
	return c.health.Healthy
}

// Health returns detailed health information.
func (c *Client) Health() Health {
	c.healthMu.RLock()
	defer c.healthMu.RUnlock()
	return c.health
}

// recordOutcome updates health after a request that reached the network.
// Transport failures, 429s and 5xx responses count as failures; other
// statuses show the API is up and only reset the failure streak on 2xx.
func (c *Client) recordOutcome(success, failure bool, err error) {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	now := c.now()
	c.health.LastCheck = now
	c.health.TotalRequests++

	switch {
	case success:
		if !c.health.Healthy {
			c.logger.Info("jikan API marked healthy",
				"previous_failures", c.health.ConsecutiveFailures,
			)
		}
		c.health.Healthy = true
		c.health.ConsecutiveFailures = 0
		c.health.LastError = nil
		c.health.LastSuccess = now

	case failure:
		c.health.FailedRequests++
		c.health.ConsecutiveFailures++
		c.health.LastError = err

		if c.health.Healthy && c.health.ConsecutiveFailures >= unhealthyThreshold {
			c.health.Healthy = false
			c.logger.Warn("jikan API marked unhealthy",
				"consecutive_failures", c.health.ConsecutiveFailures,
				"error", err,
			)
		}
	}

	c.metrics.UpdateHealth(c.health.Healthy)
}
