package utils_test

import (
	"testing"

	"github.com/daybell/fx_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseUpstreamNumeric_PlaceholdersAreZero(t *testing.T) {
	for name, input := range map[string]*string{
		"nil":   nil,
		"empty": strPtr(""),
		"dash":  strPtr("-"),
	} {
		t.Run(name, func(t *testing.T) {
			d, err := utils.ParseUpstreamNumeric(input)
			require.NoError(t, err)
			assert.True(t, d.IsZero())
		})
	}
}

func TestParseUpstreamNumeric_StripsThousandsSeparators(t *testing.T) {
	d, err := utils.ParseUpstreamNumeric(strPtr("1,326.50"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1326.50")), "got %s", d)

	d, err = utils.ParseUpstreamNumeric(strPtr("9.45"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("9.45")))

	d, err = utils.ParseUpstreamNumeric(strPtr("1,234,567.89"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234567.89")))
}

func TestParseUpstreamNumeric_UnparsableIsAnError(t *testing.T) {
	_, err := utils.ParseUpstreamNumeric(strPtr("N/A"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N/A")
}

func TestParseUpstreamNumeric_WhitespaceOnlyIsNotAPlaceholder(t *testing.T) {
	// Only nil, "" and "-" mean "no value"; a whitespace-only string is an
	// upstream defect, not a zero.
	_, err := utils.ParseUpstreamNumeric(strPtr("  "))
	require.Error(t, err)
}
