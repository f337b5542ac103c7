package services

import (
	"context"
	"testing"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/helpers"
)

type fakeObligationStore struct {
	byID    map[string]*models.Obligation
	created []*models.Obligation
	updated []*models.Obligation
}

func newFakeObligationStore(obligations ...*models.Obligation) *fakeObligationStore {
	byID := make(map[string]*models.Obligation, len(obligations))
	for _, o := range obligations {
		byID[o.ObligationID] = o
	}
	return &fakeObligationStore{byID: byID}
}

func (f *fakeObligationStore) Create(_ context.Context, _ string, o *models.Obligation) error {
	f.created = append(f.created, o)
	f.byID[o.ObligationID] = o
	return nil
}

func (f *fakeObligationStore) Get(_ context.Context, _, obligationID string) (*models.Obligation, error) {
	o, ok := f.byID[obligationID]
	if !ok {
		return nil, errs.NewNotFoundError("obligation not found")
	}
	copied := *o
	return &copied, nil
}

func (f *fakeObligationStore) List(_ context.Context, _ string) ([]*models.Obligation, error) {
	out := make([]*models.Obligation, 0, len(f.byID))
	for _, o := range f.byID {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeObligationStore) Update(_ context.Context, _ string, o *models.Obligation) error {
	f.updated = append(f.updated, o)
	f.byID[o.ObligationID] = o
	return nil
}

func (f *fakeObligationStore) Delete(_ context.Context, _, obligationID string) error {
	delete(f.byID, obligationID)
	return nil
}

func validCreateRequest() dto.CreateObligationRequest {
	return dto.CreateObligationRequest{
		Kind:         models.KindDebt,
		Counterparty: dto.CounterpartyInput{Name: "Alex"},
		Amount:       500,
		DueDate:      "2025-06-01",
		PaymentType:  models.PaymentSingle,
	}
}

func TestCreateObligation(t *testing.T) {
	store := newFakeObligationStore()
	svc := NewObligationService(store)

	o, err := svc.Create(helpers.TestCtx(), "user", validCreateRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if o.ObligationID == "" {
		t.Fatal("expected a generated obligation id")
	}
	if o.Status != models.StatusActive {
		t.Fatalf("new obligation status = %s, want active", o.Status)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 store create, got %d", len(store.created))
	}
}

func TestCreateObligationValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateObligationRequest)
	}{
		{"unknown kind", func(r *dto.CreateObligationRequest) { r.Kind = "iou" }},
		{"missing counterparty", func(r *dto.CreateObligationRequest) { r.Counterparty.Name = "" }},
		{"negative amount", func(r *dto.CreateObligationRequest) { r.Amount = -1 }},
		{"original below amount", func(r *dto.CreateObligationRequest) { r.OriginalAmount = helpers.Ptr(100.0) }},
		{"negative rate", func(r *dto.CreateObligationRequest) { r.InterestRate = helpers.Ptr(-2.0) }},
		{"bad date", func(r *dto.CreateObligationRequest) { r.DueDate = "June 1st" }},
		{"unknown payment type", func(r *dto.CreateObligationRequest) { r.PaymentType = "weekly" }},
		{"next payment on single", func(r *dto.CreateObligationRequest) { r.NextPaymentAmount = helpers.Ptr(50.0) }},
	}
	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(&req)
		svc := NewObligationService(newFakeObligationStore())
		if _, err := svc.Create(helpers.TestCtx(), "user", req); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		} else if _, ok := err.(*errs.ValidationError); !ok {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}
}

func TestRecordPaymentPartial(t *testing.T) {
	o := obligation("o1", models.StatusLate, "2025-03-01", 500)
	svc := NewObligationService(newFakeObligationStore(o))

	got, err := svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{
		Amount:      200,
		NextDueDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if got.Amount != 300 {
		t.Fatalf("amount = %v, want 300", got.Amount)
	}
	if got.Status != models.StatusActive {
		t.Fatalf("status = %s, want active after partial payment", got.Status)
	}
	if got.DueDate != "2025-04-01" {
		t.Fatalf("dueDate = %s, want advanced date", got.DueDate)
	}
	if helpers.Value(got.OriginalAmount) != 500 {
		t.Fatalf("originalAmount = %v, want 500", helpers.Value(got.OriginalAmount))
	}
}

func TestRecordPaymentClosesObligation(t *testing.T) {
	o := obligation("o1", models.StatusActive, "2025-03-01", 500)
	svc := NewObligationService(newFakeObligationStore(o))

	got, err := svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{Amount: 500})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if got.Status != models.StatusPaid || got.Amount != 0 {
		t.Fatalf("expected paid with zero balance, got %s / %v", got.Status, got.Amount)
	}
}

func TestRecordPaymentSettlesFloatResidue(t *testing.T) {
	o := obligation("o1", models.StatusActive, "2025-03-01", 0.3)
	svc := NewObligationService(newFakeObligationStore(o))

	got, err := svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{Amount: 0.1})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if got.Status != models.StatusActive {
		t.Fatalf("status = %s, want active after partial payment", got.Status)
	}

	// 0.3 - 0.1 leaves 0.19999...; paying 0.2 must not read as an
	// overpayment, and the sub-cent residue must close the obligation.
	got, err = svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{Amount: 0.2})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if got.Status != models.StatusPaid || got.Amount != 0 {
		t.Fatalf("expected paid with zero balance, got %s / %v", got.Status, got.Amount)
	}
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	o := obligation("o1", models.StatusActive, "2025-03-01", 100)
	svc := NewObligationService(newFakeObligationStore(o))

	_, err := svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{Amount: 150})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestRecordPaymentOnPaidObligation(t *testing.T) {
	o := obligation("o1", models.StatusPaid, "2025-03-01", 0)
	svc := NewObligationService(newFakeObligationStore(o))

	_, err := svc.RecordPayment(helpers.TestCtx(), "user", "o1", dto.RecordPaymentRequest{Amount: 10})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestUpdateRejectsPaidObligation(t *testing.T) {
	o := obligation("o1", models.StatusPaid, "2025-03-01", 0)
	svc := NewObligationService(newFakeObligationStore(o))

	_, err := svc.Update(helpers.TestCtx(), "user", "o1", dto.UpdateObligationRequest{
		Notes: helpers.Ptr("late fee waived"),
	})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestMarkPaid(t *testing.T) {
	o := obligation("o1", models.StatusLate, "2025-01-01", 320)
	store := newFakeObligationStore(o)
	svc := NewObligationService(store)

	got, err := svc.MarkPaid(helpers.TestCtx(), "user", "o1")
	if err != nil {
		t.Fatalf("MarkPaid error: %v", err)
	}
	if got.Status != models.StatusPaid || got.Amount != 0 {
		t.Fatalf("expected paid with zero balance, got %s / %v", got.Status, got.Amount)
	}
	if helpers.Value(got.OriginalAmount) != 320 {
		t.Fatalf("originalAmount = %v, want 320", helpers.Value(got.OriginalAmount))
	}
}
