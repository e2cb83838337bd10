package metrics

import (
	"context"
	"sync"
	"time"
)

type Collector interface {
	RecordListing(ctx context.Context, deployments int, duration time.Duration, success bool)
	RecordDeletion(ctx context.Context, deploymentID string, duration time.Duration, success bool)
	Snapshot() Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Listed          int
	ListingFailures int
	Deleted         int
	DeleteFailures  int
	DeleteTime      time.Duration
}

// Attempted is the number of delete calls issued.
func (s Snapshot) Attempted() int {
	return s.Deleted + s.DeleteFailures
}

// RunCollector keeps in-memory counters for a single cleanup run.
type RunCollector struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewRunCollector() *RunCollector {
	return &RunCollector{}
}

func (c *RunCollector) RecordListing(ctx context.Context, deployments int, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !success {
		c.snap.ListingFailures++
		return
	}
	c.snap.Listed += deployments
}

func (c *RunCollector) RecordDeletion(ctx context.Context, deploymentID string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.DeleteTime += duration
	if success {
		c.snap.Deleted++
	} else {
		c.snap.DeleteFailures++
	}
}

func (c *RunCollector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

type NoOpCollector struct{}

func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (c *NoOpCollector) RecordListing(ctx context.Context, deployments int, duration time.Duration, success bool) {
}

func (c *NoOpCollector) RecordDeletion(ctx context.Context, deploymentID string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) Snapshot() Snapshot {
	return Snapshot{}
}
