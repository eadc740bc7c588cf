package sui

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MistPerSui is the fixed subunit factor: 1 SUI = 1e9 MIST.
const MistPerSui = 1_000_000_000

// MistToSui converts a signed MIST amount (decimal string, as the node
// encodes it) to SUI. The shift by -9 decimal places is exact, so
// "1000000000" converts to exactly 1.
func MistToSui(mist string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(mist)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing MIST amount %q: %w", mist, err)
	}
	return d.Shift(-9), nil
}

// MistToSuiInt converts an integer MIST amount to SUI.
func MistToSuiInt(mist int64) decimal.Decimal {
	return decimal.New(mist, -9)
}
