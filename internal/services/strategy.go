package services

import (
	"context"
	"sort"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
)

type strategyObligationStore interface {
	List(ctx context.Context, uid string) ([]*models.Obligation, error)
}

type strategyService struct {
	store strategyObligationStore
}

func NewStrategyService(store strategyObligationStore) *strategyService {
	return &strategyService{store: store}
}

func (s *strategyService) GetPlan(ctx context.Context, uid, strategy string) (dto.StrategyPlanResponse, error) {
	var order func([]*models.Obligation) []*models.Obligation
	switch strategy {
	case dto.StrategySnowball:
		order = snowballOrder
	case dto.StrategyAvalanche:
		order = avalancheOrder
	default:
		return dto.StrategyPlanResponse{}, errs.NewValidationError("unknown strategy: " + strategy)
	}

	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return dto.StrategyPlanResponse{}, err
	}

	ranked := order(rankableObligations(obligations))
	items := make([]dto.StrategyItem, len(ranked))
	for i, o := range ranked {
		items[i] = dto.StrategyItem{
			Position:     i + 1,
			ObligationID: o.ObligationID,
			Counterparty: o.Counterparty.Name,
			Amount:       o.Amount,
			InterestRate: o.InterestRate,
		}
	}
	return dto.StrategyPlanResponse{Strategy: strategy, Items: items}, nil
}

// rankableObligations keeps the subset repayment strategies order: active
// debts, plus single-payment loans. Installment loans are excluded because
// their balance is not the allocatable unit in this model.
func rankableObligations(obligations []*models.Obligation) []*models.Obligation {
	eligible := make([]*models.Obligation, 0, len(obligations))
	for _, o := range obligations {
		if o.Status != models.StatusActive {
			continue
		}
		if o.Kind == models.KindLoan && o.PaymentType != models.PaymentSingle {
			continue
		}
		eligible = append(eligible, o)
	}
	return eligible
}

// snowballOrder sorts smallest balance first; ties keep input order.
func snowballOrder(obligations []*models.Obligation) []*models.Obligation {
	ranked := append([]*models.Obligation(nil), obligations...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount < ranked[j].Amount
	})
	return ranked
}

// avalancheOrder sorts highest interest rate first. A nil rate means the
// obligation accrues no interest and sorts after every explicit rate.
func avalancheOrder(obligations []*models.Obligation) []*models.Obligation {
	ranked := append([]*models.Obligation(nil), obligations...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].InterestRate, ranked[j].InterestRate
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
	return ranked
}
