package dto

import (
	"github.com/shopspring/decimal"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// ScoreCounters is the enumerated set of raw activity counters. Unknown
// fields are rejected by the JSON binding boundary; there is no dynamic
// counter reflection.
type ScoreCounters struct {
	Sales              int             `json:"sales" binding:"gte=0"`
	ReferralsFocus     int             `json:"referralsFocus" binding:"gte=0"`
	ReferralsSecondary int             `json:"referralsSecondary" binding:"gte=0"`
	ReferralsOther     int             `json:"referralsOther" binding:"gte=0"`
	HighValueSales     int             `json:"highValueSales" binding:"gte=0"`
	PlaquesFocus       decimal.Decimal `json:"plaquesFocus"`
	PlaquesSecondary   decimal.Decimal `json:"plaquesSecondary"`
	PlaquesOther       decimal.Decimal `json:"plaquesOther"`
}

// UpsertScoreRequest creates or updates one worker's score for a month.
type UpsertScoreRequest struct {
	WorkerID       string `json:"workerID" binding:"required"`
	ReferenceMonth string `json:"referenceMonth" binding:"required"` // YYYY-MM or YYYY-MM-DD
	ScoreCounters
}

// ImportScoreRow is one spreadsheet row of the batch import, keyed by the
// worker's name.
type ImportScoreRow struct {
	Name string `json:"name" binding:"required"`
	ScoreCounters
}

// ImportScoresRequest imports a batch of score rows for one month.
type ImportScoresRequest struct {
	ReferenceMonth string           `json:"referenceMonth" binding:"required"`
	Rows           []ImportScoreRow `json:"rows" binding:"required,min=1"`
}

// ImportOutcome reports the result for a single imported row.
type ImportOutcome struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total,omitempty"`
	Error string          `json:"error,omitempty"`
}

// ImportScoresResult splits the import into successes and failures.
type ImportScoresResult struct {
	Imported []ImportOutcome `json:"imported"`
	Failed   []ImportOutcome `json:"failed"`
}

// ScoreResponse is the public representation of a monthly score.
type ScoreResponse struct {
	ScoreID        string `json:"scoreID"`
	WorkerID       string `json:"workerID"`
	ReferenceMonth string `json:"referenceMonth"` // YYYY-MM-DD (first of month)

	Sales              int             `json:"sales"`
	ReferralsFocus     int             `json:"referralsFocus"`
	ReferralsSecondary int             `json:"referralsSecondary"`
	ReferralsOther     int             `json:"referralsOther"`
	HighValueSales     int             `json:"highValueSales"`
	PlaquesFocus       decimal.Decimal `json:"plaquesFocus"`
	PlaquesSecondary   decimal.Decimal `json:"plaquesSecondary"`
	PlaquesOther       decimal.Decimal `json:"plaquesOther"`

	SalesPoints    decimal.Decimal `json:"salesPoints"`
	ReferralPoints decimal.Decimal `json:"referralPoints"`
	PlaquePoints   decimal.Decimal `json:"plaquePoints"`
	TotalPoints    decimal.Decimal `json:"totalPoints"`
}

// ToScoreResponse converts a domain.MonthlyScore to its response DTO.
func ToScoreResponse(s *domain.MonthlyScore) ScoreResponse {
	return ScoreResponse{
		ScoreID:            s.ScoreID,
		WorkerID:           s.WorkerID,
		ReferenceMonth:     s.ReferenceMonth.Format("2006-01-02"),
		Sales:              s.Sales,
		ReferralsFocus:     s.ReferralsFocus,
		ReferralsSecondary: s.ReferralsSecondary,
		ReferralsOther:     s.ReferralsOther,
		HighValueSales:     s.HighValueSales,
		PlaquesFocus:       s.PlaquesFocus,
		PlaquesSecondary:   s.PlaquesSecondary,
		PlaquesOther:       s.PlaquesOther,
		SalesPoints:        s.SalesPoints,
		ReferralPoints:     s.ReferralPoints,
		PlaquePoints:       s.PlaquePoints,
		TotalPoints:        s.TotalPoints,
	}
}

// ToScoreResponses converts a slice of scores.
func ToScoreResponses(scores []domain.MonthlyScore) []ScoreResponse {
	out := make([]ScoreResponse, len(scores))
	for i := range scores {
		out[i] = ToScoreResponse(&scores[i])
	}
	return out
}

// PerformanceResponse is a worker's own performance summary.
type PerformanceResponse struct {
	Rank         *int            `json:"rank,omitempty"`
	TotalPoints  decimal.Decimal `json:"totalPoints"`
	CurrentMonth *ScoreResponse  `json:"currentMonth,omitempty"`
}
