package verify

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MJE43/pf-grid-verify/internal/engine"
	"github.com/MJE43/pf-grid-verify/internal/grid"
	"github.com/MJE43/pf-grid-verify/internal/series"
)

// Request carries one game's already-decoded verification inputs.
type Request struct {
	Seed       string `json:"seed"`
	Commitment string `json:"commitment,omitempty"`
	Mode       string `json:"mode,omitempty"`
	// Step falls back to series.DefaultStep when absent or not positive.
	Step        *decimal.Decimal `json:"step,omitempty"`
	AnchorPrice *decimal.Decimal `json:"anchor_price"`
	AnchorIndex *int             `json:"anchor_index"`
	// CurrentGrid defaults to the highest grid any bet references.
	CurrentGrid *int       `json:"current_grid,omitempty"`
	Bets        []BetInput `json:"bets"`
}

// BetInput is a bet as received. Both fields are required; pointers keep
// an absent or null field distinguishable from zero.
type BetInput struct {
	Grid  *int             `json:"grid"`
	Price *decimal.Decimal `json:"price"`
}

// NewBet builds a complete BetInput.
func NewBet(g int, price decimal.Decimal) BetInput {
	return BetInput{Grid: &g, Price: &price}
}

// Result is the outcome of verifying one game.
type Result struct {
	ID                 uuid.UUID               `json:"id"`
	Commitment         engine.CommitmentStatus `json:"commitment"`
	ComputedCommitment string                  `json:"computed_commitment"`
	Mode               string                  `json:"mode"`
	Step               decimal.Decimal         `json:"step"`
	Anchor             series.Anchor           `json:"anchor"`
	MaxIndex           int                     `json:"max_index"`
	CurrentGrid        *int                    `json:"current_grid,omitempty"`
	Outcomes           []grid.Outcome          `json:"outcomes"`
	Grids              []grid.Report           `json:"grids"`
}

// Wins counts winning bets.
func (r *Result) Wins() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Won {
			n++
		}
	}
	return n
}

// Losses counts losing bets.
func (r *Result) Losses() int {
	return len(r.Outcomes) - r.Wins()
}

// BatchItem pairs a request's result with its error; exactly one is set.
type BatchItem struct {
	Index  int     `json:"index"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
}
