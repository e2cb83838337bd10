package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pagesApi "github.com/alex-galey/pages-janitor/internal/pages-api"
	"github.com/alex-galey/pages-janitor/internal/shared/metrics"
	"github.com/alex-galey/pages-janitor/pkg/config"
)

// DeploymentLister returns the complete deployment listing of a project.
type DeploymentLister interface {
	ListDeployments(ctx context.Context) ([]pagesApi.Deployment, error)
}

// Sleeper pauses between deletions.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Report summarises a cleanup run.
type Report struct {
	Retained  *pagesApi.Deployment
	Attempted int
	Failed    int
	DryRun    bool
}

type Cleaner struct {
	lister    DeploymentLister
	deleter   pagesApi.DeploymentDeleter
	project   config.CloudflareConfig
	interval  time.Duration
	dryRun    bool
	sleep     Sleeper
	collector metrics.Collector
	logger    *slog.Logger
}

func NewCleaner(
	lister DeploymentLister,
	deleter pagesApi.DeploymentDeleter,
	project config.CloudflareConfig,
	cfg config.CleanupConfig,
	sleep Sleeper,
	collector metrics.Collector,
	logger *slog.Logger,
) *Cleaner {
	if sleep == nil {
		sleep = SleepContext
	}
	if collector == nil {
		collector = metrics.NewNoOpCollector()
	}
	return &Cleaner{
		lister:    lister,
		deleter:   deleter,
		project:   project,
		interval:  cfg.DeleteInterval,
		dryRun:    cfg.DryRun,
		sleep:     sleep,
		collector: collector,
		logger:    logger,
	}
}

// Run deletes every deployment except the newest one. A listing failure
// aborts before anything is deleted; individual delete failures do not.
func (c *Cleaner) Run(ctx context.Context) (*Report, error) {
	c.logger.Info("Fetching all deployments...", "project", c.project.ProjectName)

	started := time.Now()
	deployments, err := c.lister.ListDeployments(ctx)
	c.collector.RecordListing(ctx, len(deployments), time.Since(started), err == nil)
	if err != nil {
		return nil, err
	}

	plan, err := PlanCleanup(deployments)
	if err != nil {
		return nil, fmt.Errorf("order deployments: %w", err)
	}

	report := &Report{DryRun: c.dryRun}
	if plan.IsEmpty() {
		c.logger.Info("No deployments found.")
		return report, nil
	}
	report.Retained = plan.Retain

	c.logger.Info("Latest deployment",
		"deployment_id", plan.Retain.ID,
		"created_on", plan.Retain.CreatedOn)
	c.logger.Info("Found older deployments to delete", "count", len(plan.Candidates))

	for _, d := range plan.Candidates {
		if c.dryRun {
			c.logger.Info("Would delete deployment",
				"deployment_id", d.ID,
				"created_on", d.CreatedOn)
			continue
		}

		c.logger.Info("Deleting deployment",
			"deployment_id", d.ID,
			"created_on", d.CreatedOn)

		deleteStarted := time.Now()
		ok := c.deleter.DeleteDeployment(ctx, c.project.AccountID, c.project.ProjectName, c.project.AuthToken, d.ID)
		c.collector.RecordDeletion(ctx, d.ID, time.Since(deleteStarted), ok)
		report.Attempted++
		if !ok {
			report.Failed++
		}

		// Always pause, including after the last deletion
		if err := c.sleep(ctx, c.interval); err != nil {
			return report, fmt.Errorf("pause after deleting %s: %w", d.ID, err)
		}
	}

	snap := c.collector.Snapshot()
	c.logger.Info("Cleanup complete!",
		"attempted", report.Attempted,
		"failed", report.Failed,
		"delete_time", snap.DeleteTime,
		"dry_run", c.dryRun)
	return report, nil
}
