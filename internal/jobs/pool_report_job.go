package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultPoolReportSpec runs the report at the start of every minute.
const DefaultPoolReportSpec = "0 * * * * *"

// PoolStatsReader reads the pool counters.
type PoolStatsReader interface {
	Handle(ctx context.Context, query queries.GetPoolStatsQuery) (queries.GetPoolStatsQueryResponse, error)
}

// PoolReportJob periodically logs the size of the order pool and the number
// of open batches.
type PoolReportJob struct {
	reader PoolStatsReader
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPoolReportJob creates a job running on the given cron spec (with seconds).
// An empty spec falls back to DefaultPoolReportSpec.
func NewPoolReportJob(reader PoolStatsReader, spec string, logger *slog.Logger) *PoolReportJob {
	if spec == "" {
		spec = DefaultPoolReportSpec
	}
	return &PoolReportJob{
		reader: reader,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "pool_report_job"),
	}
}

// Start schedules the report. An invalid spec is returned as an error.
func (j *PoolReportJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pool report job started", "spec", j.spec)
	return nil
}

// Run produces one report.
func (j *PoolReportJob) Run(ctx context.Context) {
	stats, err := j.reader.Handle(ctx, queries.NewGetPoolStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pool report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order pool",
		"available", stats.Available,
		"held", stats.Held,
		"delivered", stats.Delivered,
		"open_batches", stats.OpenBatches,
	)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *PoolReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pool report job stopped")
}
