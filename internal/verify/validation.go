package verify

import (
	"fmt"
	"strings"

	"github.com/MJE43/pf-grid-verify/internal/games"
	"github.com/MJE43/pf-grid-verify/internal/grid"
)

// ValidateRequest checks a request against the configured index ceiling
// and returns the first problem found.
func ValidateRequest(req *Request, ceiling int) error {
	if req.Seed == "" {
		return invalidInput("seed", "seed is required").
			WithContext("expected", "non-empty revealed seed").
			Build()
	}

	if _, ok := games.GetMode(req.Mode); !ok {
		return invalidInput("mode", fmt.Sprintf("unknown game mode %q", req.Mode)).
			WithContext("expected", strings.Join(games.ListModes(), ", ")).
			Build()
	}

	if req.AnchorPrice == nil {
		return invalidInput("anchor_price", "anchor price is required").
			WithContext("expected", "number").
			Build()
	}
	if req.AnchorIndex == nil {
		return invalidInput("anchor_index", "anchor index is required").
			WithContext("expected", "non-negative integer").
			Build()
	}
	if *req.AnchorIndex < 0 {
		return invalidInput("anchor_index", fmt.Sprintf("anchor index %d is negative", *req.AnchorIndex)).
			WithContext("expected", "non-negative integer").
			Build()
	}
	if *req.AnchorIndex > ceiling {
		return outOfRange("anchor_index", fmt.Sprintf("anchor index %d exceeds ceiling %d", *req.AnchorIndex, ceiling)).
			WithContext("ceiling", ceiling).
			Build()
	}

	if req.CurrentGrid != nil {
		if err := validateGrid("current_grid", *req.CurrentGrid, ceiling); err != nil {
			return err
		}
	}

	for i, b := range req.Bets {
		if b.Grid == nil {
			return invalidInput(fmt.Sprintf("bets[%d].grid", i), "bet grid index is required").
				WithContext("expected", "non-negative integer").
				Build()
		}
		if b.Price == nil {
			return invalidInput(fmt.Sprintf("bets[%d].price", i), "bet price is required").
				WithContext("expected", "number").
				Build()
		}
		if err := validateGrid(fmt.Sprintf("bets[%d].grid", i), *b.Grid, ceiling); err != nil {
			return err
		}
	}

	return nil
}

// validateGrid rejects negative grids and grids whose last index would
// exceed the ceiling. The division keeps 4*g from overflowing.
func validateGrid(field string, g, ceiling int) error {
	if g < 0 {
		return invalidInput(field, fmt.Sprintf("grid index %d is negative", g)).
			WithContext("expected", "non-negative integer").
			Build()
	}
	if g > ceiling/grid.Size {
		return outOfRange(field, fmt.Sprintf("grid index %d reaches beyond price index ceiling %d", g, ceiling)).
			WithContext("ceiling", ceiling).
			WithContext("max_grid", ceiling/grid.Size).
			Build()
	}
	return nil
}
