package dto

// FinancialSummary is a pure projection over a user's obligations,
// recomputed on every request.
type FinancialSummary struct {
	TotalOwed        float64 `json:"totalOwed"`
	MonthlyRepayment float64 `json:"monthlyRepayment"`
	LateItems        int     `json:"lateItems"`
	ActiveItems      int     `json:"activeItems"`
}
