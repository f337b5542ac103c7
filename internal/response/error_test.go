package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

func handleErrorRequest(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	h := New(log)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req = req.WithContext(logger.ToContext(req.Context(), log))
	rr := httptest.NewRecorder()

	h.HandleError(rr, req, err)
	return rr
}

func TestHandleErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"not found",
			errs.NewNotFoundError("obligation not found"),
			http.StatusNotFound, "not_found",
		},
		{
			"already exists",
			errs.NewAlreadyExistsError("user already registered"),
			http.StatusConflict, "already_exists",
		},
		{
			"validation",
			errs.NewValidationError("amount must be non-negative"),
			http.StatusBadRequest, "invalid_input",
		},
		{
			"database",
			errs.NewDatabaseError("read", "failed to get obligation", errors.New("rpc error")),
			http.StatusInternalServerError, "internal_error",
		},
		{
			"transient external service",
			errs.NewExternalServiceError("vertex", "rate limited after retries", true, errors.New("429 Too Many Requests")),
			http.StatusServiceUnavailable, "service_unavailable",
		},
		{
			"permanent external service",
			errs.NewExternalServiceError("vertex", "generation failed", false, errors.New("invalid credentials")),
			http.StatusBadGateway, "service_unavailable",
		},
		{
			"unclassified",
			errors.New("something odd"),
			http.StatusInternalServerError, "internal_error",
		},
	}

	for _, tc := range cases {
		rr := handleErrorRequest(t, tc.err)

		if rr.Code != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.wantStatus)
		}
		var body ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode body: %v", tc.name, err)
		}
		if body.Code != tc.wantCode {
			t.Fatalf("%s: code = %q, want %q", tc.name, body.Code, tc.wantCode)
		}
	}
}
