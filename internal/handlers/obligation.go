package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/internal/response"
)

type obligationService interface {
	Create(ctx context.Context, uid string, req dto.CreateObligationRequest) (*models.Obligation, error)
	Get(ctx context.Context, uid, obligationID string) (*models.Obligation, error)
	List(ctx context.Context, uid string) ([]*models.Obligation, error)
	Update(ctx context.Context, uid, obligationID string, req dto.UpdateObligationRequest) (*models.Obligation, error)
	Delete(ctx context.Context, uid, obligationID string) error
	RecordPayment(ctx context.Context, uid, obligationID string, req dto.RecordPaymentRequest) (*models.Obligation, error)
	MarkPaid(ctx context.Context, uid, obligationID string) (*models.Obligation, error)
}

type obligationHandlers struct {
	ResponseHandler response.ResponseHandler
	ObligationSvc   obligationService
}

func NewObligationHandlers(deps *Deps) *obligationHandlers {
	return &obligationHandlers{
		ResponseHandler: deps.ResponseHandler,
		ObligationSvc:   deps.ObligationSvc,
	}
}

func (h *obligationHandlers) ObligationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{obligationId}", h.Get)
	r.Put("/{obligationId}", h.Update)
	r.Delete("/{obligationId}", h.Delete)
	r.Post("/{obligationId}/payments", h.RecordPayment)
	r.Post("/{obligationId}/mark-paid", h.MarkPaid)
	return r
}

func (h *obligationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	o, err := h.ObligationSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, o)
}

func (h *obligationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	obligationID := chi.URLParam(r, "obligationId")
	uid := middleware.UID(r.Context())
	o, err := h.ObligationSvc.Get(r.Context(), uid, obligationID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}

func (h *obligationHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	obligations, err := h.ObligationSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, obligations)
}

func (h *obligationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	obligationID := chi.URLParam(r, "obligationId")
	var req dto.UpdateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	o, err := h.ObligationSvc.Update(r.Context(), uid, obligationID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}

func (h *obligationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	obligationID := chi.URLParam(r, "obligationId")
	uid := middleware.UID(r.Context())
	if err := h.ObligationSvc.Delete(r.Context(), uid, obligationID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *obligationHandlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	obligationID := chi.URLParam(r, "obligationId")
	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	o, err := h.ObligationSvc.RecordPayment(r.Context(), uid, obligationID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}

func (h *obligationHandlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	obligationID := chi.URLParam(r, "obligationId")
	uid := middleware.UID(r.Context())
	o, err := h.ObligationSvc.MarkPaid(r.Context(), uid, obligationID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}
