// Package scheduler runs periodic ledger reporting jobs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportSource produces bank reports
type ReportSource interface {
	GenerateReport(topN int) models.Report
}

// Scheduler logs a bank report on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	source ReportSource
	topN   int
	log    *logrus.Logger
}

// NewScheduler registers the report job for spec. An empty spec yields a
// scheduler with no jobs.
func NewScheduler(spec string, source ReportSource, topN int, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.PrintfLogger(log))),
		source: source,
		topN:   topN,
		log:    log,
	}
	if spec == "" {
		return s, nil
	}
	if _, err := s.cron.AddFunc(spec, s.RunReport); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunReport generates one report and logs its summary
func (s *Scheduler) RunReport() {
	r := s.source.GenerateReport(s.topN)
	fields := logrus.Fields{
		"total_accounts":     r.Stats.TotalAccounts,
		"total_balance":      r.Stats.TotalBalance.StringFixed(2),
		"average_balance":    r.AverageBalance.StringFixed(2),
		"total_transactions": r.TotalTransactions,
	}
	for _, tc := range r.Breakdown {
		fields[string(tc.Type)] = tc.Count
	}
	if len(r.TopAccounts) > 0 {
		fields["top_account"] = r.TopAccounts[0].AccountNumber
	}
	s.log.WithFields(fields).Info("Bank report generated")
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with a job still running")
	}
}
