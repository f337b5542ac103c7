package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/debtwise/debtwise-backend/internal/handlers"
	"github.com/debtwise/debtwise-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	mw := middleware.NewMiddleware(deps.Firebase)
	lmw := middleware.NewLoggerMiddleware(deps.Log)

	r.Use(chimiddleware.RequestID)
	r.Use(lmw.LoggerMiddleware)
	r.Use(mw.FirebaseAuth)

	ush := handlers.NewUserHandlers(deps)
	osh := handlers.NewObligationHandlers(deps)
	ssh := handlers.NewSummaryHandlers(deps)
	sth := handlers.NewStrategyHandlers(deps)
	ash := handlers.NewAssistantHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/obligations", osh.ObligationRoutes())
	r.Mount("/summary", ssh.SummaryRoutes())
	r.Mount("/strategies", sth.StrategyRoutes())
	r.Mount("/assistant", ash.AssistantRoutes())
	return r
}
