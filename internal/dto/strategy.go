package dto

// Repayment strategies.
const (
	StrategySnowball  = "snowball"  // smallest balance first
	StrategyAvalanche = "avalanche" // highest interest rate first
)

type StrategyPlanResponse struct {
	Strategy string         `json:"strategy"`
	Items    []StrategyItem `json:"items"`
}

type StrategyItem struct {
	Position     int      `json:"position"`
	ObligationID string   `json:"obligationId"`
	Counterparty string   `json:"counterparty"`
	Amount       float64  `json:"amount"`
	InterestRate *float64 `json:"interestRate,omitempty"`
}
