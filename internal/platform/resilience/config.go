package resilience

import "time"

// BreakerConfig is the env-facing shape of a CircuitBreaker.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 4,
		OpenTimeout:      30 * time.Second,
		HalfOpenProbes:   1,
	}
}

func (c BreakerConfig) Normalize() BreakerConfig {
	defaults := DefaultBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = defaults.HalfOpenProbes
	}
	return c
}

// Build returns nil when the breaker is disabled. A nil *CircuitBreaker
// lets every call through.
func (c BreakerConfig) Build() *CircuitBreaker {
	if !c.Enabled {
		return nil
	}
	c = c.Normalize()
	return NewCircuitBreaker(c.FailureThreshold, c.OpenTimeout, c.HalfOpenProbes)
}
