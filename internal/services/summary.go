package services

import (
	"context"
	"time"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/models"
)

type summaryObligationStore interface {
	List(ctx context.Context, uid string) ([]*models.Obligation, error)
}

type summaryService struct {
	store    summaryObligationStore
	clockNow func() time.Time
}

func NewSummaryService(store summaryObligationStore) *summaryService {
	return &summaryService{
		store:    store,
		clockNow: time.Now,
	}
}

func (s *summaryService) GetSummary(ctx context.Context, uid string) (dto.FinancialSummary, error) {
	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return dto.FinancialSummary{}, err
	}
	return calculateFinancialSummary(obligations), nil
}

func (s *summaryService) GetLate(ctx context.Context, uid string) ([]*models.Obligation, error) {
	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return lateObligations(obligations), nil
}

func (s *summaryService) GetUpcoming(ctx context.Context, uid string, limit int) ([]*models.Obligation, error) {
	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return upcomingPayments(obligations, s.clockNow(), limit), nil
}

// GetUrgent returns the single most pressing obligation, or nil.
func (s *summaryService) GetUrgent(ctx context.Context, uid string) (*models.Obligation, error) {
	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return urgentObligation(obligations, s.clockNow()), nil
}
