package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyScore represents a row of the monthly_scores table.
type MonthlyScore struct {
	ScoreID        string    `db:"score_id"`
	WorkerID       string    `db:"worker_id"`
	ReferenceMonth time.Time `db:"reference_month"`

	Sales              int             `db:"sales"`
	ReferralsFocus     int             `db:"referrals_focus"`
	ReferralsSecondary int             `db:"referrals_secondary"`
	ReferralsOther     int             `db:"referrals_other"`
	HighValueSales     int             `db:"high_value_sales"`
	PlaquesFocus       decimal.Decimal `db:"plaques_focus"`
	PlaquesSecondary   decimal.Decimal `db:"plaques_secondary"`
	PlaquesOther       decimal.Decimal `db:"plaques_other"`

	SalesPoints    decimal.Decimal `db:"sales_points"`
	ReferralPoints decimal.Decimal `db:"referral_points"`
	PlaquePoints   decimal.Decimal `db:"plaque_points"`
	TotalPoints    decimal.Decimal `db:"total_points"`

	AuditFields
}
