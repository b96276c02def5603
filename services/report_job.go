package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"printshop-backend/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reportJobTimeout = 2 * time.Minute

// ReportJob exports the recent revenue series and sends a summary of today.
type ReportJob struct {
	reports  *ReportingEngine
	notifier Notifier
	dir      string
	days     int
	log      *zap.Logger
}

func NewReportJob(reports *ReportingEngine, notifier Notifier, dir string, days int, log *zap.Logger) *ReportJob {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &ReportJob{
		reports:  reports,
		notifier: notifier,
		dir:      dir,
		days:     days,
		log:      log,
	}
}

// Run writes revenue-report-<YYYYMMDD>.csv into the report directory, when
// one is configured, and then notifies with today's figures.
func (j *ReportJob) Run(ctx context.Context) error {
	series, err := j.reports.DailyRevenue(ctx, j.days)
	if err != nil {
		return fmt.Errorf("build daily revenue: %w", err)
	}

	if j.dir != "" {
		path, err := j.writeReport(series)
		if err != nil {
			return err
		}
		j.log.Info("revenue report written", zap.String("path", path))
	}

	today := series[len(series)-1]
	message := fmt.Sprintf("Today: %d orders, revenue %.2f", today.Orders, today.Revenue)
	if err := j.notifier.Notify(ctx, message); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	return nil
}

func (j *ReportJob) writeReport(series []models.DailyReport) (string, error) {
	var buf bytes.Buffer
	if err := WriteDailyCSV(&buf, series); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("revenue-report-%s.csv", j.reports.Today().Format("20060102"))
	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Schedule registers the job on a new cron scheduler running in loc and
// starts it. Callers stop the returned scheduler on shutdown.
func (j *ReportJob) Schedule(spec string, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportJobTimeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.log.Error("scheduled revenue report failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	c.Start()
	j.log.Info("report scheduler started", zap.String("schedule", spec))
	return c, nil
}
