package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/debtwise/debtwise-backend/internal/bootstrap"
	"github.com/debtwise/debtwise-backend/internal/config"
	"github.com/debtwise/debtwise-backend/internal/crypto"
	"github.com/debtwise/debtwise-backend/internal/services"
	"github.com/debtwise/debtwise-backend/internal/store"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

// The sweeper is the only writer of the active-to-late transition. It runs
// on a cron schedule so the API read paths can stay pure.
func main() {
	cfg := config.New()
	log := logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	applicationCtx := logger.ToContext(context.Background(), log)

	fsClient, err := bootstrap.InitFirestore(applicationCtx, cfg.ProjectID)
	exitOnError("firestore init failed", err, log)
	defer fsClient.Close()

	kmsClient, err := bootstrap.InitKMS(applicationCtx)
	exitOnError("kms init failed", err, log)
	defer kmsClient.Close()

	kmsHelper := crypto.NewKMS(kmsClient, cfg.KMSKeyName)
	ostore := store.NewObligationStore(fsClient, kmsHelper)
	ustore := store.NewUserStore(fsClient)
	sweeper := services.NewSweepService(ostore, ustore)

	c := cron.New()
	_, err = c.AddFunc(cfg.SweepSchedule, func() {
		marked, err := sweeper.SweepOverdue(applicationCtx)
		if err != nil {
			log.Error("overdue sweep failed", "error", err)
			return
		}
		log.Info("overdue sweep finished", "marked", marked)
	})
	exitOnError("invalid sweep schedule", err, log)

	c.Start()
	log.Info("sweeper started", "schedule", cfg.SweepSchedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	log.Info("sweeper stopped")
}
