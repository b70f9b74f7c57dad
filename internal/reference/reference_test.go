package reference

import (
	"testing"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitTimes(t *testing.T) {
	all := TransitTimes()
	assert.Len(t, all, 10)

	// callers get a copy
	all[0].Duration = "changed"
	assert.NotEqual(t, "changed", TransitTimes()[0].Duration)

	got, ok := LookupTransitTime(model.CountryIndia, ModeAir)
	require.True(t, ok)
	assert.Equal(t, "6-8 days", got.Duration)

	_, ok = LookupTransitTime("Brazil", ModeSea)
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		value, from, to, want string
	}{
		{"1", UnitMetre, UnitFoot, "3.28"},
		{"1", UnitMetre, UnitInch, "39.37"},
		{"10", UnitFoot, UnitMetre, "3.05"},
		{"100", UnitInch, UnitMetre, "2.54"},
		{"12", UnitInch, UnitFoot, "1"},
		{"0", UnitFoot, UnitInch, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.value+tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := Convert(decimal.RequireFromString(tt.value), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := Convert(decimal.NewFromInt(1), "yd", UnitMetre)
	assert.ErrorIs(t, err, ErrUnknownUnit)
}
