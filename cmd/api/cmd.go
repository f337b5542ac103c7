package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/debtwise/debtwise-backend/internal/bootstrap"
	"github.com/debtwise/debtwise-backend/internal/config"
	"github.com/debtwise/debtwise-backend/internal/crypto"
	"github.com/debtwise/debtwise-backend/internal/handlers"
	"github.com/debtwise/debtwise-backend/internal/ratelimit"
	"github.com/debtwise/debtwise-backend/internal/response"
	"github.com/debtwise/debtwise-backend/internal/router"
	"github.com/debtwise/debtwise-backend/internal/services"
	"github.com/debtwise/debtwise-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	ostore := store.NewObligationStore(bs.Firestore, kmsHelper)

	// assistant admission limiter; its sweeper stops with the server
	stop := make(chan struct{})
	limiter := ratelimit.NewCooldownLimiter(cfg.AICooldown)
	limiter.StartSweeper(time.Minute, stop)

	// services
	userv := services.NewUserService(ustore)
	oserv := services.NewObligationService(ostore)
	suserv := services.NewSummaryService(ostore)
	stserv := services.NewStrategyService(ostore)
	aiserv := services.NewAIService(bs.VertexAdapter, ostore, limiter)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.ObligationSvc = oserv
	deps.SummarySvc = suserv
	deps.StrategySvc = stserv
	deps.AssistantSvc = aiserv

	// router + server
	srv := &http.Server{Addr: ":8080", Handler: router.NewRouter(deps)}

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		close(stop)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
}
