package dto

type CounterpartyInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

type CreateObligationRequest struct {
	Kind              string            `json:"kind"`
	Counterparty      CounterpartyInput `json:"counterparty"`
	Amount            float64           `json:"amount"`
	OriginalAmount    *float64          `json:"originalAmount,omitempty"`
	InterestRate      *float64          `json:"interestRate,omitempty"`
	DueDate           string            `json:"dueDate"`
	PaymentType       string            `json:"paymentType"`
	NextPaymentAmount *float64          `json:"nextPaymentAmount,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

// UpdateObligationRequest carries optional fields; nil means "leave as is".
type UpdateObligationRequest struct {
	Counterparty      *CounterpartyInput `json:"counterparty,omitempty"`
	Amount            *float64           `json:"amount,omitempty"`
	InterestRate      *float64           `json:"interestRate,omitempty"`
	DueDate           *string            `json:"dueDate,omitempty"`
	NextPaymentAmount *float64           `json:"nextPaymentAmount,omitempty"`
	Notes             *string            `json:"notes,omitempty"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
	// NextDueDate advances the installment schedule; optional.
	NextDueDate string `json:"nextDueDate,omitempty"`
}
