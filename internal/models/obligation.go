package models

import (
	"time"
)

// Obligation kinds.
const (
	KindDebt = "debt" // money the user owes
	KindLoan = "loan" // money owed to the user
)

// Obligation statuses. "paid" is terminal; "late" is asserted by the
// overdue sweeper, never by a read path.
const (
	StatusActive = "active"
	StatusPaid   = "paid"
	StatusLate   = "late"
)

// Payment types.
const (
	PaymentSingle       = "single"
	PaymentInstallments = "installments"
)

// Obligation is a single debt or loan record owned by one user.
type Obligation struct {
	ObligationID      string       `firestore:"obligationId" json:"obligationId"`
	Kind              string       `firestore:"kind" json:"kind"`
	Counterparty      Counterparty `firestore:"counterparty" json:"counterparty"`
	Amount            float64      `firestore:"amount" json:"amount"` // outstanding balance
	OriginalAmount    *float64     `firestore:"originalAmount,omitempty" json:"originalAmount,omitempty"`
	InterestRate      *float64     `firestore:"interestRate,omitempty" json:"interestRate,omitempty"` // percentage; nil means no interest
	Status            string       `firestore:"status" json:"status"`
	DueDate           string       `firestore:"dueDate" json:"dueDate"` // YYYY-MM-DD; next installment date for installment plans
	PaymentType       string       `firestore:"paymentType" json:"paymentType"`
	NextPaymentAmount *float64     `firestore:"nextPaymentAmount,omitempty" json:"nextPaymentAmount,omitempty"`
	Notes             string       `firestore:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// Counterparty identifies the other side of an obligation. Contact is
// encrypted at rest by the store; in memory it is plaintext.
type Counterparty struct {
	Name    string `firestore:"name" json:"name"`
	Contact string `firestore:"contact,omitempty" json:"contact,omitempty"`
}
