package services

import (
	"sort"
	"time"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/helpers"
)

const dateLayout = "2006-01-02"

const defaultUpcomingLimit = 5

// calculateFinancialSummary folds a user's obligations into the dashboard
// summary in one pass. Paid obligations contribute nothing; an installment
// obligation with no nextPaymentAmount contributes zero to the monthly
// figure. Empty input yields the zero summary.
func calculateFinancialSummary(obligations []*models.Obligation) dto.FinancialSummary {
	var summary dto.FinancialSummary
	for _, o := range obligations {
		if o.Status != models.StatusPaid {
			summary.TotalOwed += o.Amount
		}
		switch o.Status {
		case models.StatusLate:
			summary.LateItems++
		case models.StatusActive:
			summary.ActiveItems++
			if o.PaymentType == models.PaymentInstallments {
				summary.MonthlyRepayment += helpers.Value(o.NextPaymentAmount)
			}
		}
	}
	return summary
}

// lateObligations returns the late subset, oldest overdue first. The sort
// is stable so same-day items keep their input order.
func lateObligations(obligations []*models.Obligation) []*models.Obligation {
	late := make([]*models.Obligation, 0)
	for _, o := range obligations {
		if o.Status == models.StatusLate {
			late = append(late, o)
		}
	}
	sort.SliceStable(late, func(i, j int) bool {
		return late[i].DueDate < late[j].DueDate
	})
	return late
}

// upcomingPayments returns the next payments due on or after now, soonest
// first, truncated to limit. The reference time is a parameter, not a
// clock read, so callers and tests control it.
func upcomingPayments(obligations []*models.Obligation, now time.Time, limit int) []*models.Obligation {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	today := now.Format(dateLayout)

	upcoming := make([]*models.Obligation, 0)
	for _, o := range obligations {
		if o.Status == models.StatusActive && o.DueDate >= today {
			upcoming = append(upcoming, o)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate < upcoming[j].DueDate
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// urgentObligation picks the single most pressing item: any late obligation
// outranks every upcoming one, and within each class the earliest due date
// wins. Returns nil when the user has nothing late and nothing upcoming.
func urgentObligation(obligations []*models.Obligation, now time.Time) *models.Obligation {
	if late := lateObligations(obligations); len(late) > 0 {
		return late[0]
	}
	if upcoming := upcomingPayments(obligations, now, 1); len(upcoming) > 0 {
		return upcoming[0]
	}
	return nil
}
