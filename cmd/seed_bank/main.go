package main

import (
	"context"
	"log"
	"time"

	"assessly/internal/bank"
	"assessly/internal/config"
	"assessly/internal/database"
	"assessly/internal/domain"
	"assessly/internal/logger"
	"assessly/internal/repository"

	"go.uber.org/zap"
)

// Seeds the curated question bank into the store and maps every question to
// each study field, so field-mapped reads work before any admin content or
// generated questions exist. The upserts are idempotent; reruns are safe.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewQuestionDatabaseAdapter(db)
	questionBank := bank.New()
	questions := questionBank.All()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, field := range domain.AllStudyFields {
		if err := repo.PersistGenerated(ctx, questions, field); err != nil {
			appLogger.Fatal("Failed to seed curated bank",
				zap.String("field", string(field)),
				zap.Error(err))
		}
		appLogger.Info("Seeded curated bank for field",
			zap.String("field", string(field)),
			zap.Int("questions", len(questions)))
	}

	appLogger.Info("Curated bank seeding complete", zap.Int("questions", len(questions)))
}
