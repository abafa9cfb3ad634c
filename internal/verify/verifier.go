// Package verify checks a revealed seed against its commitment, rebuilds
// the game's price series and classifies every recorded bet.
package verify

import (
	"errors"
	"io"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/MJE43/pf-grid-verify/internal/engine"
	"github.com/MJE43/pf-grid-verify/internal/games"
	"github.com/MJE43/pf-grid-verify/internal/grid"
	"github.com/MJE43/pf-grid-verify/internal/series"
)

// Options configures a Verifier.
type Options struct {
	// MaxIndex caps the reconstructed series length. Zero means
	// series.DefaultCeiling.
	MaxIndex int
	// Workers bounds VerifyBatch concurrency. Zero means runtime.NumCPU().
	Workers int
	Logger  *log.Logger
	// Audit is optional; nil disables audit lines.
	Audit *AuditLogger
}

// Verifier runs verifications. It holds no per-game state and is safe for
// concurrent use.
type Verifier struct {
	ceiling int
	workers int
	logger  *log.Logger
	audit   *AuditLogger
}

// New creates a Verifier
func New(opts Options) *Verifier {
	v := &Verifier{
		ceiling: opts.MaxIndex,
		workers: opts.Workers,
		logger:  opts.Logger,
		audit:   opts.Audit,
	}
	if v.ceiling <= 0 {
		v.ceiling = series.DefaultCeiling
	}
	v.ceiling = min(v.ceiling, series.MaxCeiling)
	if v.workers <= 0 {
		v.workers = runtime.NumCPU()
	}
	if v.logger == nil {
		v.logger = log.New(io.Discard, "", 0)
	}
	return v
}

// Ceiling returns the largest price index the verifier will reconstruct.
func (v *Verifier) Ceiling() int { return v.ceiling }

// Verify checks one game. Validation failures return *Error and no result.
// An empty commitment is not an error: the result reports it as
// unverifiable and bets are still evaluated.
func (v *Verifier) Verify(req Request) (*Result, error) {
	start := time.Now()
	id := uuid.New()

	res, err := v.verify(id, &req)
	if err != nil {
		v.logger.Printf("verify_failed request_id=%s error=%q", id, err)
		if v.audit != nil {
			v.audit.LogRejected(id.String(), &req, err)
		}
		return nil, err
	}

	v.logger.Printf("verify_completed request_id=%s mode=%s max_index=%d bets=%d wins=%d commitment=%s",
		id, res.Mode, res.MaxIndex, len(res.Outcomes), res.Wins(), res.Commitment)
	if v.audit != nil {
		v.audit.LogVerifyOperation(&req, res, time.Since(start))
	}
	return res, nil
}

func (v *Verifier) verify(id uuid.UUID, req *Request) (*Result, error) {
	if err := ValidateRequest(req, v.ceiling); err != nil {
		return nil, err
	}

	mode, _ := games.GetMode(req.Mode)
	anchor := series.Anchor{Price: *req.AnchorPrice, Index: *req.AnchorIndex}

	bets := make([]grid.Bet, len(req.Bets))
	grids := make([]int, 0, len(req.Bets)+1)
	for i, b := range req.Bets {
		bets[i] = grid.Bet{Grid: *b.Grid, Price: *b.Price}
		grids = append(grids, *b.Grid)
	}
	var current []int
	if req.CurrentGrid != nil {
		current = []int{*req.CurrentGrid}
	} else if len(bets) > 0 {
		current = []int{highestGrid(bets)}
	}
	grids = append(grids, current...)
	maxIndex := grid.MaxIndexFor(anchor.Index, grids...)

	step := series.DefaultStep
	if req.Step != nil {
		step = *req.Step
	}

	s, err := series.Reconstruct(series.Params{
		Seed:     req.Seed,
		Mode:     mode,
		Step:     step,
		MaxIndex: maxIndex,
		Anchor:   anchor,
		Ceiling:  v.ceiling,
	})
	if err != nil {
		return nil, reconstructError(err, maxIndex)
	}

	ev := grid.Evaluate(s, bets, current...)

	res := &Result{
		ID:                 id,
		Commitment:         engine.VerifyCommitment(req.Seed, req.Commitment),
		ComputedCommitment: engine.Digest(req.Seed),
		Mode:               s.Mode(),
		Step:               s.Step(),
		Anchor:             anchor,
		MaxIndex:           s.MaxIndex(),
		Outcomes:           ev.Outcomes,
		Grids:              ev.Grids,
	}
	if len(current) == 1 {
		res.CurrentGrid = &current[0]
	}
	return res, nil
}

func highestGrid(bets []grid.Bet) int {
	g := bets[0].Grid
	for _, b := range bets[1:] {
		if b.Grid > g {
			g = b.Grid
		}
	}
	return g
}

func reconstructError(err error, maxIndex int) error {
	switch {
	case errors.Is(err, series.ErrIndexOutOfRange):
		return outOfRange("max_index", "price series cannot be sized").
			WithContext("max_index", maxIndex).
			WithCause(err).
			Build()
	case errors.Is(err, series.ErrInvalidParams):
		return NewError(ErrTypeInvalidInput, "invalid reconstruction parameters").
			WithCause(err).
			Build()
	default:
		return NewError(ErrTypeInternal, "reconstruction failed").
			WithCause(err).
			Build()
	}
}
