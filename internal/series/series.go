// Package series rebuilds a game's full price series from its revealed
// seed. Deltas are prefix-summed and the series is anchored so that one
// known (price, index) pair matches exactly.
package series

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MJE43/pf-grid-verify/internal/engine"
	"github.com/MJE43/pf-grid-verify/internal/games"
)

// DefaultStep is the price increment used when none, or a non-positive
// one, is supplied.
var DefaultStep = decimal.NewFromInt(5)

// DefaultCeiling bounds MaxIndex when Params.Ceiling is zero.
const DefaultCeiling = 1 << 22

// MaxCeiling is the largest ceiling honoured; larger ones are clamped.
const MaxCeiling = 1 << 26

// stepChunk is how many step values are hashed per buffer fill.
const stepChunk = 1024

// Anchor is a known true price at a known index.
type Anchor struct {
	Price decimal.Decimal `json:"price"`
	Index int             `json:"index"`
}

// Params fully determines a price series.
type Params struct {
	Seed     string
	Mode     games.Mode
	Step     decimal.Decimal
	MaxIndex int
	Anchor   Anchor
	// Ceiling caps MaxIndex. Zero means DefaultCeiling.
	Ceiling int
}

// Series is an immutable reconstructed price series for indices 0..MaxIndex.
type Series struct {
	mode   string
	step   decimal.Decimal
	deltas []int
	prefix []int64
	prices []decimal.Decimal
}

// NormalizeStep returns step, or DefaultStep when step is not positive.
func NormalizeStep(step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return DefaultStep
	}
	return step
}

// Reconstruct builds the price series described by p.
func Reconstruct(p Params) (*Series, error) {
	if p.Mode == nil {
		return nil, fmt.Errorf("%w: mode is required", ErrInvalidParams)
	}
	if p.MaxIndex < 0 {
		return nil, fmt.Errorf("%w: max index %d is negative", ErrInvalidParams, p.MaxIndex)
	}
	if p.Anchor.Index < 0 {
		return nil, fmt.Errorf("%w: anchor index %d is negative", ErrInvalidParams, p.Anchor.Index)
	}
	ceiling := p.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	ceiling = min(ceiling, MaxCeiling)
	if p.MaxIndex > ceiling {
		return nil, fmt.Errorf("%w: max index %d exceeds ceiling %d", ErrIndexOutOfRange, p.MaxIndex, ceiling)
	}
	if p.Anchor.Index > p.MaxIndex {
		return nil, fmt.Errorf("%w: anchor index %d exceeds max index %d", ErrIndexOutOfRange, p.Anchor.Index, p.MaxIndex)
	}

	n := p.MaxIndex + 1
	step := NormalizeStep(p.Step)

	deltas := make([]int, n)
	prefix := make([]int64, n)
	buf := make([]uint32, 0, stepChunk)
	for i := 1; i < n; i += stepChunk {
		buf = engine.StepValuesInto(buf[:cap(buf)], p.Seed, uint64(i), min(stepChunk, n-i))
		for j, v := range buf {
			k := i + j
			deltas[k] = p.Mode.Bucket(v)
			prefix[k] = prefix[k-1] + int64(deltas[k])
		}
	}

	base := p.Anchor.Price.Sub(step.Mul(decimal.NewFromInt(prefix[p.Anchor.Index])))
	prices := make([]decimal.Decimal, n)
	for i := range prices {
		prices[i] = base.Add(step.Mul(decimal.NewFromInt(prefix[i])))
	}

	return &Series{
		mode:   p.Mode.Spec().ID,
		step:   step,
		deltas: deltas,
		prefix: prefix,
		prices: prices,
	}, nil
}

// Mode returns the ID of the mode that generated the series.
func (s *Series) Mode() string { return s.mode }

// Step returns the step size actually used.
func (s *Series) Step() decimal.Decimal { return s.step }

// MaxIndex returns the highest index in the series.
func (s *Series) MaxIndex() int { return len(s.prices) - 1 }

// At returns the price at index i.
func (s *Series) At(i int) (decimal.Decimal, bool) {
	if i < 0 || i >= len(s.prices) {
		return decimal.Decimal{}, false
	}
	return s.prices[i], true
}

// Prices returns a copy of the full price series.
func (s *Series) Prices() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.prices))
	copy(out, s.prices)
	return out
}

// Deltas returns a copy of the per-index movements; index 0 is always 0.
func (s *Series) Deltas() []int {
	out := make([]int, len(s.deltas))
	copy(out, s.deltas)
	return out
}

// Prefix returns a copy of the prefix sums of the deltas.
func (s *Series) Prefix() []int64 {
	out := make([]int64, len(s.prefix))
	copy(out, s.prefix)
	return out
}
