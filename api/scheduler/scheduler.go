package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// Scheduler runs the periodic background jobs
type Scheduler struct {
	cron *cron.Cron
	CDB  databases.CaseDatabase
}

// New creates a new scheduler instance. Jobs run in local time, matching
// the day windows the listing endpoints use.
func New(cdb databases.CaseDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.Local)),
		CDB:  cdb,
	}
}

// Start registers the jobs and begins the cron loop
func (s *Scheduler) Start() {
	// docket summary at local midnight, when the today/tomorrow windows roll
	_, err := s.cron.AddFunc("0 0 * * *", s.logDocketSummary)
	if err != nil {
		zap.S().Errorw("failed to register docket summary job", "error", err)
	}
	s.cron.Start()
}

// Stop halts the cron loop, letting a running job finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) logDocketSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextMidnight := midnight.AddDate(0, 0, 1)

	hearings, err := s.CDB.CountDocuments(ctx, bson.M{
		"date": bson.M{"$gte": midnight, "$lt": nextMidnight},
	})
	if err != nil {
		zap.S().Errorw("docket summary: failed to count today's hearings", "error", err)
		return
	}

	pending, err := s.CDB.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		zap.S().Errorw("docket summary: failed to count pending cases", "error", err)
		return
	}

	zap.S().Infow("docket summary",
		"date", midnight.Format("2006-01-02"),
		"hearingsToday", hearings,
		"pendingCases", pending,
	)
}
