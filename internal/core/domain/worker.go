package domain

import "github.com/shopspring/decimal"

// Worker is the roster-member record behind a worker-typed user.
// Rank and TotalPoints are owned by the ranking calculator; a nil Rank means
// the worker has never been ranked.
type Worker struct {
	WorkerID     string          `json:"workerID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`   // Unique reference to users
	Rank         *int            `json:"rank,omitempty"`
	TotalPoints  decimal.Decimal `json:"totalPoints"`
	MonthlyQuota int             `json:"monthlyQuota"` // Max confirmed allocations per calendar month
	AuditFields
}

// EffectiveRank returns the worker's rank, or fallback when unranked.
// Unranked workers are treated as low priority in the claim window.
func (w Worker) EffectiveRank(fallback int) int {
	if w.Rank == nil || *w.Rank <= 0 {
		return fallback
	}
	return *w.Rank
}
