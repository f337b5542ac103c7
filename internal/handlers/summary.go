package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/internal/response"
)

type summaryService interface {
	GetSummary(ctx context.Context, uid string) (dto.FinancialSummary, error)
	GetLate(ctx context.Context, uid string) ([]*models.Obligation, error)
	GetUpcoming(ctx context.Context, uid string, limit int) ([]*models.Obligation, error)
	GetUrgent(ctx context.Context, uid string) (*models.Obligation, error)
}

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	SummarySvc      summaryService
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		SummarySvc:      deps.SummarySvc,
	}
}

func (h *summaryHandlers) SummaryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSummary)
	r.Get("/late", h.GetLate)
	r.Get("/upcoming", h.GetUpcoming)
	r.Get("/urgent", h.GetUrgent)
	return r
}

func (h *summaryHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	summary, err := h.SummarySvc.GetSummary(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *summaryHandlers) GetLate(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	late, err := h.SummarySvc.GetLate(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, late)
}

func (h *summaryHandlers) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	uid := middleware.UID(r.Context())
	upcoming, err := h.SummarySvc.GetUpcoming(r.Context(), uid, limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, upcoming)
}

func (h *summaryHandlers) GetUrgent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	urgent, err := h.SummarySvc.GetUrgent(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, urgent)
}
