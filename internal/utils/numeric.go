package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseUpstreamNumeric converts a Korea Eximbank numeric field to a decimal.
// The API formats numbers with thousands separators ("1,326.50") and uses
// exactly three placeholder forms for "no value": nil, "" and "-", which map
// to zero. Any other string must parse after separator stripping; a value
// that does not is a defect in the upstream contract and is surfaced as an
// error rather than silently zeroed.
func ParseUpstreamNumeric(value *string) (decimal.Decimal, error) {
	if value == nil {
		return decimal.Zero, nil
	}
	s := *value
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparsable numeric value %q: %w", *value, err)
	}
	return d, nil
}
