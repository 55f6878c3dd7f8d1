package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"alimentary/brrp/carbon-backend/internal/config"
)

// dueVerification is one VERIFIED record whose bi-annual re-verification
// date has passed.
type dueVerification struct {
	ID                  string    `db:"id"`
	EmissionsRecordID   string    `db:"emissions_record_id"`
	Standard            string    `db:"standard"`
	VerifiedBy          string    `db:"verified_by"`
	NextVerificationDue time.Time `db:"next_verification_due"`
}

// VerificationWorker periodically scans for verifications that are due for
// renewal. It only flags them: initiating the re-verification is a human
// decision made through the verification workflow.
type VerificationWorker struct {
	db        *sqlx.DB
	logger    *zap.Logger
	batchSize int
}

// NewVerificationWorker creates a new due-verification scanner
func NewVerificationWorker(db *sqlx.DB, logger *zap.Logger, batchSize int) *VerificationWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &VerificationWorker{db: db, logger: logger, batchSize: batchSize}
}

// Scan logs every verification whose re-verification date has passed
func (w *VerificationWorker) Scan(ctx context.Context) {
	var due []dueVerification
	err := w.db.SelectContext(ctx, &due, `
		SELECT id, emissions_record_id, standard, verified_by, next_verification_due
		FROM verification_records
		WHERE status = 'VERIFIED' AND next_verification_due <= NOW()
		ORDER BY next_verification_due ASC
		LIMIT $1`,
		w.batchSize,
	)
	if err != nil {
		w.logger.Error("due-verification scan failed", zap.Error(err))
		return
	}

	if len(due) == 0 {
		w.logger.Debug("no verifications due")
		return
	}

	for _, rec := range due {
		w.logger.Warn("re-verification due",
			zap.String("verification_id", rec.ID),
			zap.String("emissions_record_id", rec.EmissionsRecordID),
			zap.String("standard", rec.Standard),
			zap.String("verifier", rec.VerifiedBy),
			zap.Time("due_since", rec.NextVerificationDue))
	}
	w.logger.Info("due-verification scan complete", zap.Int("due", len(due)))
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer logger.Sync()

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	worker := NewVerificationWorker(db, logger, cfg.Scheduler.BatchSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New(cron.WithSeconds())
	_, err = c.AddFunc(cfg.Scheduler.CronExpression, func() { worker.Scan(ctx) })
	if err != nil {
		logger.Fatal("invalid cron expression",
			zap.String("expression", cfg.Scheduler.CronExpression),
			zap.Error(err))
	}

	c.Start()
	logger.Info("verification worker started",
		zap.String("schedule", cfg.Scheduler.CronExpression))

	// Run one scan immediately so a restart doesn't wait a full period
	worker.Scan(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("verification worker stopping")
	<-c.Stop().Done()
}
