package dto

import (
	"github.com/shopspring/decimal"
)

// RankingEntryResponse is one row of the current ranking.
type RankingEntryResponse struct {
	Rank        int             `json:"rank"`
	WorkerID    string          `json:"workerID"`
	Name        string          `json:"name"`
	TotalPoints decimal.Decimal `json:"totalPoints"`
}

// RankingResponse wraps the current ranking.
type RankingResponse struct {
	Ranking []RankingEntryResponse `json:"ranking"`
}

// RankAccumulatedRequest asks for a ranking over the last N months.
type RankAccumulatedRequest struct {
	Months int `json:"months" binding:"omitempty,min=1,max=24"`
}
