package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/response"
)

type assistantService interface {
	Query(ctx context.Context, uid string, req dto.AssistantQueryRequest) (dto.AssistantQueryResponse, error)
}

type assistantHandlers struct {
	ResponseHandler response.ResponseHandler
	AssistantSvc    assistantService
}

func NewAssistantHandlers(deps *Deps) *assistantHandlers {
	return &assistantHandlers{
		ResponseHandler: deps.ResponseHandler,
		AssistantSvc:    deps.AssistantSvc,
	}
}

func (h *assistantHandlers) AssistantRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/query", h.Query)
	return r
}

func (h *assistantHandlers) Query(w http.ResponseWriter, r *http.Request) {
	var req dto.AssistantQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is required"))
		return
	}

	uid := middleware.UID(r.Context())
	resp, err := h.AssistantSvc.Query(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
