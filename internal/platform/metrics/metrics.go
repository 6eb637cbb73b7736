package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-local counters. All methods are safe for
// concurrent use and a nil Collector ignores records.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	calculations    atomic.Uint64
	missingSalary   atomic.Uint64
}

type Snapshot struct {
	RequestsTotal      uint64  `json:"requestsTotal"`
	ErrorsTotal        uint64  `json:"errorsTotal"`
	RateLimitedTotal   uint64  `json:"rateLimitedTotal"`
	AvgDurationMs      float64 `json:"avgDurationMs"`
	TotalDurationMs    uint64  `json:"totalDurationMs"`
	CalculationsTotal  uint64  `json:"calculationsTotal"`
	MissingSalaryTotal uint64  `json:"missingSalaryTotal"`
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	if status == 429 {
		c.rateLimited.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

// RecordCalculation counts one computed input; ok is false for MissingSalary.
func (c *Collector) RecordCalculation(ok bool) {
	if c == nil {
		return
	}
	if ok {
		c.calculations.Add(1)
		return
	}
	c.missingSalary.Add(1)
}

func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return Snapshot{
		RequestsTotal:      total,
		ErrorsTotal:        c.errorRequests.Load(),
		RateLimitedTotal:   c.rateLimited.Load(),
		AvgDurationMs:      avg,
		TotalDurationMs:    totalMs,
		CalculationsTotal:  c.calculations.Load(),
		MissingSalaryTotal: c.missingSalary.Load(),
	}
}
