package services

import (
	"context"
	"time"

	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

type sweepObligationStore interface {
	ListOverdue(ctx context.Context, uid, today string) ([]*models.Obligation, error)
	MarkLateBatch(ctx context.Context, uid string, obligationIDs []string) error
}

type sweepUserStore interface {
	ListUIDs(ctx context.Context) ([]string, error)
}

// sweepService asserts the active→late transition. It is the only writer of
// that transition; read paths never mutate status.
type sweepService struct {
	obligations sweepObligationStore
	users       sweepUserStore
	clockNow    func() time.Time
}

func NewSweepService(obligations sweepObligationStore, users sweepUserStore) *sweepService {
	return &sweepService{
		obligations: obligations,
		users:       users,
		clockNow:    time.Now,
	}
}

// SweepOverdue marks every elapsed active obligation late, per user, and
// returns the number of obligations flipped. A failure for one user is
// logged and does not stop the pass for the rest.
func (s *sweepService) SweepOverdue(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	today := s.clockNow().Format(dateLayout)

	uids, err := s.users.ListUIDs(ctx)
	if err != nil {
		return 0, err
	}

	var marked int
	for _, uid := range uids {
		overdue, err := s.obligations.ListOverdue(ctx, uid, today)
		if err != nil {
			log.Error("overdue query failed", "uid", uid, "error", err)
			continue
		}
		if len(overdue) == 0 {
			continue
		}

		ids := make([]string, len(overdue))
		for i, o := range overdue {
			ids[i] = o.ObligationID
		}
		if err := s.obligations.MarkLateBatch(ctx, uid, ids); err != nil {
			log.Error("late marking failed", "uid", uid, "error", err)
			continue
		}
		marked += len(ids)
	}

	log.Info("overdue sweep completed", "marked", marked, "as_of", today)
	return marked, nil
}
