package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

type stubAssistantService struct {
	called  bool
	uid     string
	message string
	history []dto.ChatMessage
	resp    dto.AssistantQueryResponse
	err     error
}

func (s *stubAssistantService) Query(ctx context.Context, uid string, req dto.AssistantQueryRequest) (dto.AssistantQueryResponse, error) {
	s.called = true
	s.uid = uid
	s.message = req.Message
	s.history = req.History
	return s.resp, s.err
}

type assistantStubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *assistantStubResponseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func (s *assistantStubResponseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
}

func (s *assistantStubResponseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

func assistantTestRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/assistant/query", strings.NewReader(body))
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	ctx := logger.ToContext(req.Context(), log)
	ctx = context.WithValue(ctx, middleware.UIDKey, "uid-123")
	return req.WithContext(ctx)
}

func TestAssistantQueryHandlerSuccess(t *testing.T) {
	svc := &stubAssistantService{resp: dto.AssistantQueryResponse{Response: "you owe $500"}}
	resp := &assistantStubResponseHandler{}
	h := NewAssistantHandlers(&Deps{ResponseHandler: resp, AssistantSvc: svc})

	body := `{"message":"how much do I owe?","history":[{"role":"user","content":"hi"}]}`
	rr := httptest.NewRecorder()

	h.Query(rr, assistantTestRequest(t, body))

	if !svc.called {
		t.Fatalf("expected assistant service to be called")
	}
	if svc.uid != "uid-123" || svc.message != "how much do I owe?" {
		t.Fatalf("service called with unexpected args: uid=%q message=%q", svc.uid, svc.message)
	}
	if len(svc.history) != 1 || svc.history[0].Content != "hi" {
		t.Fatalf("history not forwarded: %+v", svc.history)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestAssistantQueryHandlerInvalidJSON(t *testing.T) {
	svc := &stubAssistantService{}
	resp := &assistantStubResponseHandler{}
	h := NewAssistantHandlers(&Deps{ResponseHandler: resp, AssistantSvc: svc})

	rr := httptest.NewRecorder()
	h.Query(rr, assistantTestRequest(t, "not-json"))

	if svc.called {
		t.Fatalf("service should not be called on invalid JSON")
	}
	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError to be called")
	}
}

func TestAssistantQueryHandlerMissingMessage(t *testing.T) {
	svc := &stubAssistantService{}
	resp := &assistantStubResponseHandler{}
	h := NewAssistantHandlers(&Deps{ResponseHandler: resp, AssistantSvc: svc})

	rr := httptest.NewRecorder()
	h.Query(rr, assistantTestRequest(t, `{"message":"   "}`))

	if svc.called {
		t.Fatalf("service should not be called when message is blank")
	}
	var verr *errs.ValidationError
	if !errors.As(resp.handleError, &verr) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
}

func TestAssistantQueryHandlerServiceError(t *testing.T) {
	svc := &stubAssistantService{err: errs.NewExternalServiceError("vertex", "generation failed", false, errors.New("boom"))}
	resp := &assistantStubResponseHandler{}
	h := NewAssistantHandlers(&Deps{ResponseHandler: resp, AssistantSvc: svc})

	rr := httptest.NewRecorder()
	h.Query(rr, assistantTestRequest(t, `{"message":"hello"}`))

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError to be called")
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on service error")
	}
}
