// Package report turns verification results into display rows. Prices are
// formatted per game mode; the verification itself never formats strings.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/MJE43/pf-grid-verify/internal/games"
	"github.com/MJE43/pf-grid-verify/internal/grid"
	"github.com/MJE43/pf-grid-verify/internal/verify"
)

// BetCell is one bet as shown in a grid row.
type BetCell struct {
	Price string `json:"price"`
	Won   bool   `json:"won"`
}

// Row is one grid as shown to the player.
type Row struct {
	Grid   int       `json:"grid"`
	Bets   []BetCell `json:"bets"`
	Prices []string  `json:"prices"`
}

// View is the display form of a verification result.
type View struct {
	ID                 string `json:"id"`
	Commitment         string `json:"commitment"`
	ComputedCommitment string `json:"computed_commitment"`
	Mode               string `json:"mode"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	Rows               []Row  `json:"rows"`
}

// FormatPrice renders a raw price for a mode. Modes with display decimals
// quote prices in units of 10^-decimals.
func FormatPrice(mode string, price decimal.Decimal) string {
	m, ok := games.GetMode(mode)
	if !ok || m.Spec().DisplayDecimals == 0 {
		return price.String()
	}
	d := m.Spec().DisplayDecimals
	return price.Shift(-d).StringFixed(d)
}

// Build converts a result into rows. Bets are ordered by price for display
// but never merged; candidate prices that repeat within a grid are shown
// once.
func Build(res *verify.Result) View {
	v := View{
		ID:                 res.ID.String(),
		Commitment:         res.Commitment.String(),
		ComputedCommitment: res.ComputedCommitment,
		Mode:               res.Mode,
		Wins:               res.Wins(),
		Losses:             res.Losses(),
		Rows:               make([]Row, 0, len(res.Grids)),
	}
	for _, g := range res.Grids {
		v.Rows = append(v.Rows, buildRow(res.Mode, g))
	}
	return v
}

func buildRow(mode string, g grid.Report) Row {
	outcomes := make([]grid.Outcome, len(g.Outcomes))
	copy(outcomes, g.Outcomes)
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Bet.Price.LessThan(outcomes[j].Bet.Price)
	})

	row := Row{
		Grid:   g.Grid,
		Bets:   make([]BetCell, 0, len(outcomes)),
		Prices: make([]string, 0, len(g.Candidates)),
	}
	for _, o := range outcomes {
		row.Bets = append(row.Bets, BetCell{Price: FormatPrice(mode, o.Bet.Price), Won: o.Won})
	}

	seen := make([]decimal.Decimal, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		if containsPrice(seen, c.Price) {
			continue
		}
		seen = append(seen, c.Price)
		row.Prices = append(row.Prices, FormatPrice(mode, c.Price))
	}
	return row
}

func containsPrice(prices []decimal.Decimal, p decimal.Decimal) bool {
	for _, q := range prices {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// WriteJSON writes the view as indented JSON.
func WriteJSON(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteText writes the view as an aligned table.
func WriteText(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Result\t%s\n", v.ID)
	fmt.Fprintf(tw, "Commitment\t%s (%s)\n", v.Commitment, v.ComputedCommitment)
	fmt.Fprintf(tw, "Mode\t%s\n", v.Mode)
	fmt.Fprintf(tw, "Bets\t%d won, %d lost\n\n", v.Wins, v.Losses)

	fmt.Fprintln(tw, "GRID\tBETS\tPRICES")
	for _, r := range v.Rows {
		bets := make([]string, len(r.Bets))
		for i, b := range r.Bets {
			mark := "lose"
			if b.Won {
				mark = "win"
			}
			bets[i] = b.Price + ":" + mark
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Grid, strings.Join(bets, " "), strings.Join(r.Prices, " "))
	}
	return tw.Flush()
}
