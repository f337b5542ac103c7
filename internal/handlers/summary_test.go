package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
)

type stubSummaryService struct {
	summary    dto.FinancialSummary
	summaryErr error

	late    []*models.Obligation
	lateErr error

	lastUpcomingLimit int
	upcoming          []*models.Obligation
	upcomingErr       error

	urgent    *models.Obligation
	urgentErr error
}

func (s *stubSummaryService) GetSummary(_ context.Context, _ string) (dto.FinancialSummary, error) {
	return s.summary, s.summaryErr
}

func (s *stubSummaryService) GetLate(_ context.Context, _ string) ([]*models.Obligation, error) {
	return s.late, s.lateErr
}

func (s *stubSummaryService) GetUpcoming(_ context.Context, _ string, limit int) ([]*models.Obligation, error) {
	s.lastUpcomingLimit = limit
	return s.upcoming, s.upcomingErr
}

func (s *stubSummaryService) GetUrgent(_ context.Context, _ string) (*models.Obligation, error) {
	return s.urgent, s.urgentErr
}

func TestGetSummary_OK(t *testing.T) {
	svc := &stubSummaryService{
		summary: dto.FinancialSummary{TotalOwed: 1200, MonthlyRepayment: 300, LateItems: 1, ActiveItems: 3},
	}
	resp := &stubResponseHandler{}
	h := NewSummaryHandlers(&Deps{ResponseHandler: resp, SummarySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetSummary(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200 success")
	}
	got, ok := resp.writeSuccessData.(dto.FinancialSummary)
	if !ok || got.TotalOwed != 1200 {
		t.Fatalf("unexpected summary payload: %v", resp.writeSuccessData)
	}
}

func TestGetUpcoming_ForwardsLimit(t *testing.T) {
	svc := &stubSummaryService{}
	resp := &stubResponseHandler{}
	h := NewSummaryHandlers(&Deps{ResponseHandler: resp, SummarySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/summary/upcoming?limit=3", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetUpcoming(rr, req)

	if svc.lastUpcomingLimit != 3 {
		t.Fatalf("expected limit 3 forwarded, got %d", svc.lastUpcomingLimit)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("expected success response")
	}
}

func TestGetUpcoming_DefaultsLimitToZero(t *testing.T) {
	svc := &stubSummaryService{lastUpcomingLimit: -1}
	resp := &stubResponseHandler{}
	h := NewSummaryHandlers(&Deps{ResponseHandler: resp, SummarySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/summary/upcoming", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetUpcoming(rr, req)

	if svc.lastUpcomingLimit != 0 {
		t.Fatalf("expected limit 0 when unset, got %d", svc.lastUpcomingLimit)
	}
}

func TestGetUpcoming_RejectsBadLimit(t *testing.T) {
	svc := &stubSummaryService{lastUpcomingLimit: -1}
	resp := &stubResponseHandler{}
	h := NewSummaryHandlers(&Deps{ResponseHandler: resp, SummarySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/summary/upcoming?limit=abc", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetUpcoming(rr, req)

	if svc.lastUpcomingLimit != -1 {
		t.Fatalf("service should not be called on bad limit")
	}
	var verr *errs.ValidationError
	if !errors.As(resp.handleError, &verr) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
}

func TestGetUrgent_OK(t *testing.T) {
	svc := &stubSummaryService{
		urgent: &models.Obligation{ObligationID: "o1", Status: models.StatusLate},
	}
	resp := &stubResponseHandler{}
	h := NewSummaryHandlers(&Deps{ResponseHandler: resp, SummarySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/summary/urgent", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetUrgent(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected success response")
	}
	got, ok := resp.writeSuccessData.(*models.Obligation)
	if !ok || got.ObligationID != "o1" {
		t.Fatalf("unexpected urgent payload: %v", resp.writeSuccessData)
	}
}
