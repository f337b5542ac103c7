package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

// obligationStore is the Firestore storage interface for obligations.
type obligationStore interface {
	Create(ctx context.Context, uid string, o *models.Obligation) error
	Get(ctx context.Context, uid, obligationID string) (*models.Obligation, error)
	List(ctx context.Context, uid string) ([]*models.Obligation, error)
	Update(ctx context.Context, uid string, o *models.Obligation) error
	Delete(ctx context.Context, uid, obligationID string) error
}

// Balances are currency amounts held as float64; a residue below half a
// cent is settled money, not an open balance.
const amountEpsilon = 0.005

type obligationService struct {
	store obligationStore
}

func NewObligationService(store obligationStore) *obligationService {
	return &obligationService{store: store}
}

func (s *obligationService) Create(ctx context.Context, uid string, req dto.CreateObligationRequest) (*models.Obligation, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	o := &models.Obligation{
		ObligationID: uuid.New().String(),
		Kind:         req.Kind,
		Counterparty: models.Counterparty{
			Name:    req.Counterparty.Name,
			Contact: req.Counterparty.Contact,
		},
		Amount:            req.Amount,
		OriginalAmount:    req.OriginalAmount,
		InterestRate:      req.InterestRate,
		Status:            models.StatusActive,
		DueDate:           req.DueDate,
		PaymentType:       req.PaymentType,
		NextPaymentAmount: req.NextPaymentAmount,
		Notes:             req.Notes,
	}
	if err := s.store.Create(ctx, uid, o); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("obligation created",
		"obligation_id", o.ObligationID, "kind", o.Kind)
	return o, nil
}

func (s *obligationService) Get(ctx context.Context, uid, obligationID string) (*models.Obligation, error) {
	return s.store.Get(ctx, uid, obligationID)
}

func (s *obligationService) List(ctx context.Context, uid string) ([]*models.Obligation, error) {
	return s.store.List(ctx, uid)
}

func (s *obligationService) Update(ctx context.Context, uid, obligationID string, req dto.UpdateObligationRequest) (*models.Obligation, error) {
	o, err := s.store.Get(ctx, uid, obligationID)
	if err != nil {
		return nil, err
	}
	if o.Status == models.StatusPaid {
		return nil, errs.NewValidationError("a paid obligation cannot be edited")
	}

	if req.Counterparty != nil {
		if req.Counterparty.Name == "" {
			return nil, errs.NewValidationError("counterparty.name is required")
		}
		o.Counterparty = models.Counterparty{
			Name:    req.Counterparty.Name,
			Contact: req.Counterparty.Contact,
		}
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, errs.NewValidationError("amount must be non-negative")
		}
		o.Amount = *req.Amount
	}
	if req.InterestRate != nil {
		if *req.InterestRate < 0 {
			return nil, errs.NewValidationError("interestRate must be non-negative")
		}
		o.InterestRate = req.InterestRate
	}
	if req.DueDate != nil {
		if err := validateDate(*req.DueDate); err != nil {
			return nil, err
		}
		o.DueDate = *req.DueDate
	}
	if req.NextPaymentAmount != nil {
		if o.PaymentType != models.PaymentInstallments {
			return nil, errs.NewValidationError("nextPaymentAmount applies only to installment obligations")
		}
		if *req.NextPaymentAmount < 0 {
			return nil, errs.NewValidationError("nextPaymentAmount must be non-negative")
		}
		o.NextPaymentAmount = req.NextPaymentAmount
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}

	if err := s.store.Update(ctx, uid, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *obligationService) Delete(ctx context.Context, uid, obligationID string) error {
	return s.store.Delete(ctx, uid, obligationID)
}

// RecordPayment reduces the outstanding balance. Paying down to zero closes
// the obligation; a partial payment on a late obligation makes it active
// again pending the next due date.
func (s *obligationService) RecordPayment(ctx context.Context, uid, obligationID string, req dto.RecordPaymentRequest) (*models.Obligation, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("payment amount must be positive")
	}
	if req.NextDueDate != "" {
		if err := validateDate(req.NextDueDate); err != nil {
			return nil, err
		}
	}

	o, err := s.store.Get(ctx, uid, obligationID)
	if err != nil {
		return nil, err
	}
	if o.Status == models.StatusPaid {
		return nil, errs.NewValidationError("obligation is already paid")
	}
	if req.Amount > o.Amount+amountEpsilon {
		return nil, errs.NewValidationError("payment exceeds outstanding balance")
	}

	if o.OriginalAmount == nil {
		original := o.Amount
		o.OriginalAmount = &original
	}

	o.Amount -= req.Amount
	if o.Amount <= amountEpsilon {
		o.Amount = 0
		o.Status = models.StatusPaid
	} else {
		o.Status = models.StatusActive
		if req.NextDueDate != "" {
			o.DueDate = req.NextDueDate
		}
	}

	if err := s.store.Update(ctx, uid, o); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("payment recorded",
		"obligation_id", obligationID, "amount", req.Amount, "status", o.Status)
	return o, nil
}

// MarkPaid closes an obligation regardless of balance (e.g. forgiven debt).
func (s *obligationService) MarkPaid(ctx context.Context, uid, obligationID string) (*models.Obligation, error) {
	o, err := s.store.Get(ctx, uid, obligationID)
	if err != nil {
		return nil, err
	}
	if o.Status == models.StatusPaid {
		return o, nil
	}

	if o.OriginalAmount == nil {
		original := o.Amount
		o.OriginalAmount = &original
	}
	o.Amount = 0
	o.Status = models.StatusPaid

	if err := s.store.Update(ctx, uid, o); err != nil {
		return nil, err
	}
	return o, nil
}

// --- Validation ---

func validateCreate(req dto.CreateObligationRequest) error {
	switch req.Kind {
	case models.KindDebt, models.KindLoan:
	default:
		return errs.NewValidationError(`kind must be "debt" or "loan"`)
	}
	if req.Counterparty.Name == "" {
		return errs.NewValidationError("counterparty.name is required")
	}
	if req.Amount < 0 {
		return errs.NewValidationError("amount must be non-negative")
	}
	if req.OriginalAmount != nil && *req.OriginalAmount < req.Amount {
		return errs.NewValidationError("originalAmount cannot be less than amount")
	}
	if req.InterestRate != nil && *req.InterestRate < 0 {
		return errs.NewValidationError("interestRate must be non-negative")
	}
	if err := validateDate(req.DueDate); err != nil {
		return err
	}
	switch req.PaymentType {
	case models.PaymentSingle:
		if req.NextPaymentAmount != nil {
			return errs.NewValidationError("nextPaymentAmount applies only to installment obligations")
		}
	case models.PaymentInstallments:
		if req.NextPaymentAmount != nil && *req.NextPaymentAmount < 0 {
			return errs.NewValidationError("nextPaymentAmount must be non-negative")
		}
	default:
		return errs.NewValidationError(`paymentType must be "single" or "installments"`)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return errs.NewValidationError("dueDate must be a YYYY-MM-DD date")
	}
	return nil
}
