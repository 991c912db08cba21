package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyScore holds one worker's raw activity counters for a reference month
// together with the point subtotals derived from them. At most one record
// exists per (worker, month); recomputation overwrites the derived fields in
// place so the record can always be audited against its counters.
type MonthlyScore struct {
	ScoreID        string    `json:"scoreID"` // Primary Key (UUID)
	WorkerID       string    `json:"workerID"`
	ReferenceMonth time.Time `json:"referenceMonth"` // First day of the month (UTC)

	// Raw counters.
	Sales              int             `json:"sales"`
	ReferralsFocus     int             `json:"referralsFocus"`
	ReferralsSecondary int             `json:"referralsSecondary"`
	ReferralsOther     int             `json:"referralsOther"`
	HighValueSales     int             `json:"highValueSales"` // tracked, not weighted
	PlaquesFocus       decimal.Decimal `json:"plaquesFocus"`   // plaque counts may be fractional
	PlaquesSecondary   decimal.Decimal `json:"plaquesSecondary"`
	PlaquesOther       decimal.Decimal `json:"plaquesOther"`

	// Derived point fields, written by WeightTable.Apply.
	SalesPoints    decimal.Decimal `json:"salesPoints"`
	ReferralPoints decimal.Decimal `json:"referralPoints"`
	PlaquePoints   decimal.Decimal `json:"plaquePoints"`
	TotalPoints    decimal.Decimal `json:"totalPoints"`

	AuditFields
}

// WeightTable maps activity counters to points. It is loaded from the settings
// store per engine use, falling back to DefaultWeightTable per absent key, so
// administrative changes take effect on the next computation.
type WeightTable struct {
	Sale              decimal.Decimal `json:"sale"`
	ReferralFocus     decimal.Decimal `json:"referralFocus"`
	ReferralSecondary decimal.Decimal `json:"referralSecondary"`
	ReferralOther     decimal.Decimal `json:"referralOther"`
	PlaqueFocus       decimal.Decimal `json:"plaqueFocus"`
	PlaqueSecondary   decimal.Decimal `json:"plaqueSecondary"`
	PlaqueOther       decimal.Decimal `json:"plaqueOther"`
}

// DefaultWeightTable returns the hardcoded fallback weights.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Sale:              decimal.NewFromInt(8),
		ReferralFocus:     decimal.NewFromInt(2),
		ReferralSecondary: decimal.NewFromInt(1),
		ReferralOther:     decimal.NewFromInt(1),
		PlaqueFocus:       decimal.NewFromInt(1),
		PlaqueSecondary:   decimal.RequireFromString("0.5"),
		PlaqueOther:       decimal.RequireFromString("0.5"),
	}
}

// Apply recomputes the derived point fields of score from its counters.
// It is idempotent and has no side effects beyond the derived fields.
func (w WeightTable) Apply(score *MonthlyScore) {
	score.SalesPoints = decimal.NewFromInt(int64(score.Sales)).Mul(w.Sale)

	score.ReferralPoints = decimal.NewFromInt(int64(score.ReferralsFocus)).Mul(w.ReferralFocus).
		Add(decimal.NewFromInt(int64(score.ReferralsSecondary)).Mul(w.ReferralSecondary)).
		Add(decimal.NewFromInt(int64(score.ReferralsOther)).Mul(w.ReferralOther))

	score.PlaquePoints = score.PlaquesFocus.Mul(w.PlaqueFocus).
		Add(score.PlaquesSecondary.Mul(w.PlaqueSecondary)).
		Add(score.PlaquesOther.Mul(w.PlaqueOther))

	score.TotalPoints = score.SalesPoints.Add(score.ReferralPoints).Add(score.PlaquePoints)
}

// WorkerRanking is one entry of a computed ranking: the rank position a
// worker earned and the total the position was derived from.
type WorkerRanking struct {
	WorkerID string          `json:"workerID"`
	Rank     int             `json:"rank"`
	Total    decimal.Decimal `json:"total"`
}
