package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/response"
)

type strategyService interface {
	GetPlan(ctx context.Context, uid, strategy string) (dto.StrategyPlanResponse, error)
}

type strategyHandlers struct {
	ResponseHandler response.ResponseHandler
	StrategySvc     strategyService
}

func NewStrategyHandlers(deps *Deps) *strategyHandlers {
	return &strategyHandlers{
		ResponseHandler: deps.ResponseHandler,
		StrategySvc:     deps.StrategySvc,
	}
}

func (h *strategyHandlers) StrategyRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{strategy}", h.GetPlan)
	return r
}

func (h *strategyHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	strategy := chi.URLParam(r, "strategy")
	uid := middleware.UID(r.Context())
	plan, err := h.StrategySvc.GetPlan(r.Context(), uid, strategy)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}
