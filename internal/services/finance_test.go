package services

import (
	"testing"
	"time"

	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/helpers"
)

func obligation(id, status, dueDate string, amount float64) *models.Obligation {
	return &models.Obligation{
		ObligationID: id,
		Kind:         models.KindDebt,
		Counterparty: models.Counterparty{Name: "counterparty-" + id},
		Amount:       amount,
		Status:       status,
		DueDate:      dueDate,
		PaymentType:  models.PaymentSingle,
	}
}

func TestCalculateFinancialSummary(t *testing.T) {
	installment := obligation("i1", models.StatusActive, "2025-04-01", 1200)
	installment.PaymentType = models.PaymentInstallments
	installment.NextPaymentAmount = helpers.Ptr(100.0)

	// Installment without a next payment amount contributes zero monthly.
	bare := obligation("i2", models.StatusActive, "2025-04-15", 600)
	bare.PaymentType = models.PaymentInstallments

	obligations := []*models.Obligation{
		obligation("a", models.StatusActive, "2025-03-20", 500),
		installment,
		bare,
		obligation("l", models.StatusLate, "2025-01-01", 250),
		obligation("p", models.StatusPaid, "2025-02-01", 9999),
	}

	got := calculateFinancialSummary(obligations)
	if got.TotalOwed != 2550 {
		t.Fatalf("totalOwed = %v, want 2550", got.TotalOwed)
	}
	if got.MonthlyRepayment != 100 {
		t.Fatalf("monthlyRepayment = %v, want 100", got.MonthlyRepayment)
	}
	if got.LateItems != 1 {
		t.Fatalf("lateItems = %d, want 1", got.LateItems)
	}
	if got.ActiveItems != 3 {
		t.Fatalf("activeItems = %d, want 3", got.ActiveItems)
	}
}

func TestSummaryIgnoresPaidObligations(t *testing.T) {
	base := []*models.Obligation{
		obligation("a", models.StatusActive, "2025-03-20", 500),
		obligation("l", models.StatusLate, "2025-01-01", 250),
	}
	withPaid := append(append([]*models.Obligation(nil), base...),
		obligation("p", models.StatusPaid, "2025-02-01", 12345))

	if calculateFinancialSummary(base) != calculateFinancialSummary(withPaid) {
		t.Fatal("adding a paid obligation changed the summary")
	}
}

func TestEmptyInputSafety(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	if got := calculateFinancialSummary(nil); got.TotalOwed != 0 || got.ActiveItems != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	if got := lateObligations(nil); len(got) != 0 {
		t.Fatalf("expected empty late list, got %d items", len(got))
	}
	if got := upcomingPayments(nil, now, 0); len(got) != 0 {
		t.Fatalf("expected empty upcoming list, got %d items", len(got))
	}
	if got := urgentObligation(nil, now); got != nil {
		t.Fatalf("expected no urgent item, got %s", got.ObligationID)
	}
}

func TestLateObligationsSortedByDueDate(t *testing.T) {
	obligations := []*models.Obligation{
		obligation("jan", models.StatusLate, "2024-01-01", 10),
		obligation("mar", models.StatusLate, "2024-03-01", 10),
		obligation("feb", models.StatusLate, "2024-02-01", 10),
		obligation("active", models.StatusActive, "2023-12-01", 10),
	}

	got := lateObligations(obligations)
	want := []string{"jan", "feb", "mar"}
	if len(got) != len(want) {
		t.Fatalf("expected %d late items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ObligationID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ObligationID, id)
		}
	}
}

func TestUpcomingPaymentsWindowAndLimit(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	obligations := []*models.Obligation{
		obligation("past", models.StatusActive, "2025-03-09", 10),
		obligation("today", models.StatusActive, "2025-03-10", 10),
		obligation("soon", models.StatusActive, "2025-03-12", 10),
		obligation("later", models.StatusActive, "2025-04-01", 10),
		obligation("late", models.StatusLate, "2025-03-11", 10),
	}

	got := upcomingPayments(obligations, now, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// Due today counts as upcoming; past-due active items do not.
	if got[0].ObligationID != "today" || got[1].ObligationID != "soon" {
		t.Fatalf("unexpected order: %s, %s", got[0].ObligationID, got[1].ObligationID)
	}
}

func TestUpcomingPaymentsDefaultLimit(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	var obligations []*models.Obligation
	for i := 0; i < 8; i++ {
		obligations = append(obligations,
			obligation(string(rune('a'+i)), models.StatusActive, "2025-03-15", 10))
	}

	if got := upcomingPayments(obligations, now, 0); len(got) != defaultUpcomingLimit {
		t.Fatalf("expected default limit %d, got %d", defaultUpcomingLimit, len(got))
	}
}

func TestUrgentItemPrefersLateOverEarlierUpcoming(t *testing.T) {
	now := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	obligations := []*models.Obligation{
		obligation("upcoming", models.StatusActive, "2024-01-05", 10),
		obligation("overdue", models.StatusLate, "2024-01-10", 10),
	}

	got := urgentObligation(obligations, now)
	if got == nil || got.ObligationID != "overdue" {
		t.Fatalf("expected the late obligation to win, got %+v", got)
	}
}

func TestUrgentItemFallsBackToEarliestUpcoming(t *testing.T) {
	now := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	obligations := []*models.Obligation{
		obligation("far", models.StatusActive, "2024-02-01", 10),
		obligation("near", models.StatusActive, "2024-01-05", 10),
		obligation("paid", models.StatusPaid, "2024-01-03", 10),
	}

	got := urgentObligation(obligations, now)
	if got == nil || got.ObligationID != "near" {
		t.Fatalf("expected the earliest upcoming obligation, got %+v", got)
	}
}
