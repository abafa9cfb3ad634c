// Package grid classifies bets against reconstructed price windows. Grid g
// covers price indices 4g-3 through 4g; index 0 belongs to no grid.
package grid

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Size is the number of price indices in one grid.
const Size = 4

// Prices is the read side of a reconstructed series.
type Prices interface {
	At(i int) (decimal.Decimal, bool)
	MaxIndex() int
}

// Bet is a recorded wager on a price within a grid.
type Bet struct {
	Grid  int             `json:"grid"`
	Price decimal.Decimal `json:"price"`
}

// Candidate is one price a grid can settle on.
type Candidate struct {
	Index int             `json:"index"`
	Price decimal.Decimal `json:"price"`
}

// Outcome is the verdict for a single bet. Position is the bet's place in
// the input list.
type Outcome struct {
	Position int  `json:"position"`
	Bet      Bet  `json:"bet"`
	Won      bool `json:"won"`
}

// Report groups one grid's candidates with the outcomes of its bets.
type Report struct {
	Grid       int         `json:"grid"`
	Candidates []Candidate `json:"candidates"`
	Outcomes   []Outcome   `json:"outcomes"`
}

// Evaluation is the result of classifying a list of bets.
type Evaluation struct {
	// Outcomes holds one entry per bet, in input order.
	Outcomes []Outcome `json:"outcomes"`
	// Grids lists every reported grid in ascending order.
	Grids []Report `json:"grids"`
}

// Indices returns the price indices of grid g that fall inside [1, maxIndex].
func Indices(g, maxIndex int) []int {
	out := make([]int, 0, Size)
	for i := Size*g - (Size - 1); i <= Size*g; i++ {
		if i >= 1 && i <= maxIndex {
			out = append(out, i)
		}
	}
	return out
}

// Candidates returns the prices grid g can settle on. Near the end of the
// series fewer than four may exist.
func Candidates(prices Prices, g int) []Candidate {
	idx := Indices(g, prices.MaxIndex())
	out := make([]Candidate, 0, len(idx))
	for _, i := range idx {
		if p, ok := prices.At(i); ok {
			out = append(out, Candidate{Index: i, Price: p})
		}
	}
	return out
}

// Wins reports whether price equals one of the candidates exactly.
func Wins(candidates []Candidate, price decimal.Decimal) bool {
	for _, c := range candidates {
		if c.Price.Equal(price) {
			return true
		}
	}
	return false
}

// MaxIndexFor returns the smallest series length (as a max index) that
// covers the anchor and every listed grid.
func MaxIndexFor(anchorIndex int, grids ...int) int {
	maxIndex := anchorIndex
	for _, g := range grids {
		if Size*g > maxIndex {
			maxIndex = Size * g
		}
	}
	return maxIndex
}

// Evaluate classifies every bet against its grid's candidates. Reported
// grids are the union of the bets' grids and extraGrids.
func Evaluate(prices Prices, bets []Bet, extraGrids ...int) Evaluation {
	byGrid := make(map[int][]Outcome)
	for _, g := range extraGrids {
		if _, ok := byGrid[g]; !ok {
			byGrid[g] = nil
		}
	}

	cache := make(map[int][]Candidate)
	candidatesFor := func(g int) []Candidate {
		c, ok := cache[g]
		if !ok {
			c = Candidates(prices, g)
			cache[g] = c
		}
		return c
	}

	outcomes := make([]Outcome, len(bets))
	for i, b := range bets {
		o := Outcome{
			Position: i,
			Bet:      b,
			Won:      Wins(candidatesFor(b.Grid), b.Price),
		}
		outcomes[i] = o
		byGrid[b.Grid] = append(byGrid[b.Grid], o)
	}

	grids := make([]int, 0, len(byGrid))
	for g := range byGrid {
		grids = append(grids, g)
	}
	sort.Ints(grids)

	reports := make([]Report, len(grids))
	for i, g := range grids {
		reports[i] = Report{
			Grid:       g,
			Candidates: candidatesFor(g),
			Outcomes:   byGrid[g],
		}
	}

	return Evaluation{Outcomes: outcomes, Grids: reports}
}
