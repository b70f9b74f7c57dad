package service

import (
	"strings"
	"time"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
)

// Allowed values in form order. The first one is used when a request leaves
// the field empty.
var (
	countryOptions       = []string{model.CountryChina, model.CountryUSA, model.CountryMexico, model.CountryEngland, model.CountryIndia}
	paymentTermsOptions  = []string{model.TermsCash, model.Terms30Days, model.Terms60Days, model.Terms90Days}
	orderStatusOptions   = []string{model.OrderStatusPending, model.OrderStatusInProduction, model.OrderStatusShipped, model.OrderStatusDelivered}
	paymentFlagOptions   = []string{model.PaymentFlagNo, model.PaymentFlagYes, model.PaymentFlagAdvance}
	channelOptions       = []string{model.ChannelEmail, model.ChannelWhatsApp, model.ChannelPhone, model.ChannelInPerson}
	paymentStatusOptions = []string{model.PaymentStatusPending, model.PaymentStatusPartiallyPaid, model.PaymentStatusPaid}
)

func enumValue(table, field, value string, options []string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return options[0], nil
	}
	for _, o := range options {
		if o == value {
			return value, nil
		}
	}
	return "", model.InvalidField(table, field, "must be one of: "+strings.Join(options, ", "))
}

// requestDate parses a submitted date. Empty means today, like the date
// pickers of the entry forms.
func requestDate(table, field, value string, today time.Time) (model.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.NewDate(today), nil
	}
	return optionalDate(table, field, value)
}

// optionalDate parses a date that may be left empty.
func optionalDate(table, field, value string) (model.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	t, ok := model.Date(value).Parse()
	if !ok {
		return "", model.InvalidField(table, field, "must be a date (YYYY-MM-DD)")
	}
	return model.NewDate(t), nil
}

// amount parses a non-negative decimal. Empty reads as zero.
func amount(table, field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, model.InvalidField(table, field, "must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Zero, model.InvalidField(table, field, "must not be negative")
	}
	return d, nil
}
