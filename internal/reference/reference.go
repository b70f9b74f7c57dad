// Package reference holds static lookup data used alongside the order book:
// typical transit times from each origin country and length conversions for
// packaging dimensions.
package reference

import (
	"errors"
	"fmt"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
)

// Transport modes
const (
	ModeSea = "Sea"
	ModeAir = "Air"
)

// Length units
const (
	UnitMetre = "m"
	UnitFoot  = "ft"
	UnitInch  = "in"
)

var ErrUnknownUnit = errors.New("unknown unit")

// TransitTime is the usual door-to-port duration for one route.
type TransitTime struct {
	Country  string `json:"country"`
	Mode     string `json:"mode"`
	Duration string `json:"duration"`
}

var transitTimes = []TransitTime{
	{model.CountryChina, ModeSea, "35-45 days"},
	{model.CountryChina, ModeAir, "7-10 days"},
	{model.CountryUSA, ModeSea, "15-20 days"},
	{model.CountryUSA, ModeAir, "5-7 days"},
	{model.CountryMexico, ModeSea, "12-18 days"},
	{model.CountryMexico, ModeAir, "3-5 days"},
	{model.CountryEngland, ModeSea, "20-25 days"},
	{model.CountryEngland, ModeAir, "5-6 days"},
	{model.CountryIndia, ModeSea, "28-35 days"},
	{model.CountryIndia, ModeAir, "6-8 days"},
}

// TransitTimes returns the full table.
func TransitTimes() []TransitTime {
	out := make([]TransitTime, len(transitTimes))
	copy(out, transitTimes)
	return out
}

// LookupTransitTime finds the route for a country and mode.
func LookupTransitTime(country, mode string) (TransitTime, bool) {
	for _, t := range transitTimes {
		if t.Country == country && t.Mode == mode {
			return t, true
		}
	}
	return TransitTime{}, false
}

// units per metre
var perMetre = map[string]decimal.Decimal{
	UnitMetre: decimal.NewFromInt(1),
	UnitFoot:  decimal.RequireFromString("3.28084"),
	UnitInch:  decimal.RequireFromString("39.3701"),
}

// Convert converts a length between metres, feet and inches, rounded to two
// decimals.
func Convert(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromFactor, ok := perMetre[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	toFactor, ok := perMetre[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return value.Div(fromFactor).Mul(toFactor).Round(2), nil
}
