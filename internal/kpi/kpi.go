// Package kpi derives the operational indicators from the session tables.
// Every function is pure: callers pass the current rows and the current day,
// and nothing is cached between calls.
//
// Dates that do not parse are treated as absent. Such orders are never late
// and never need attention; they are not reported as errors.
package kpi

import (
	"sort"
	"time"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultAttentionHorizonDays is how far ahead the attention list looks.
const DefaultAttentionHorizonDays = 2

// ComputeKPIs returns the cockpit snapshot for today.
func ComputeKPIs(orders []model.Order, followUps []model.FollowUp, today time.Time) model.KPIs {
	today = model.DateOf(today)

	var k model.KPIs
	for i := range orders {
		o := &orders[i]
		if o.IsDelivered() {
			k.OnTime++
		} else if promised, ok := o.PromisedDate.Parse(); ok && promised.Before(today) {
			k.Late++
		}
		if o.PaymentStatus == model.PaymentFlagNo || o.PaymentStatus == model.PaymentFlagAdvance {
			k.PaymentPending++
		}
	}
	k.AverageSLA = AverageSLA(followUps)
	return k
}

// AverageSLA is the mean response SLA over all follow-ups rounded to one
// decimal, and 0 when there are none.
func AverageSLA(followUps []model.FollowUp) float64 {
	if len(followUps) == 0 {
		return 0
	}
	var sum int64
	for _, f := range followUps {
		sum += int64(f.ResponseSLADays)
	}
	return mean(sum, len(followUps))
}

// AttentionList returns, in insertion order, the orders not yet delivered
// whose promised date falls on or before today plus horizonDays.
func AttentionList(orders []model.Order, today time.Time, horizonDays int) []model.Order {
	limit := model.DateOf(today).AddDate(0, 0, horizonDays)

	due := make([]model.Order, 0)
	for _, o := range orders {
		if o.IsDelivered() {
			continue
		}
		promised, ok := o.PromisedDate.Parse()
		if !ok || promised.After(limit) {
			continue
		}
		due = append(due, o)
	}
	return due
}

// SLABySupplier averages the response SLA per supplier. Suppliers are matched
// exactly (case-sensitive) and listed in order of first appearance.
func SLABySupplier(followUps []model.FollowUp) []model.SupplierSLA {
	type acc struct {
		sum   int64
		count int
	}
	var order []string
	groups := make(map[string]*acc)
	for _, f := range followUps {
		g, ok := groups[f.Supplier]
		if !ok {
			g = &acc{}
			groups[f.Supplier] = g
			order = append(order, f.Supplier)
		}
		g.sum += int64(f.ResponseSLADays)
		g.count++
	}

	res := make([]model.SupplierSLA, 0, len(order))
	for _, supplier := range order {
		g := groups[supplier]
		res = append(res, model.SupplierSLA{
			Supplier:   supplier,
			AverageSLA: mean(g.sum, g.count),
			FollowUps:  g.count,
		})
	}
	return res
}

// FinancialExposure sums the amounts paid on partially or fully paid rows and
// the totals of rows still pending.
func FinancialExposure(payments []model.Payment) model.FinancialExposure {
	exposure := model.FinancialExposure{
		TotalAdvanced: decimal.Zero,
		TotalPending:  decimal.Zero,
	}
	for _, p := range payments {
		switch p.Status {
		case model.PaymentStatusPartiallyPaid, model.PaymentStatusPaid:
			exposure.TotalAdvanced = exposure.TotalAdvanced.Add(p.PaidValue)
		case model.PaymentStatusPending:
			exposure.TotalPending = exposure.TotalPending.Add(p.TotalValue)
		}
	}
	return exposure
}

// StatusBreakdown counts orders per status, most frequent first. Ties keep
// the order in which statuses first appear.
func StatusBreakdown(orders []model.Order) []model.StatusCount {
	index := make(map[string]int)
	res := make([]model.StatusCount, 0)
	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			i = len(res)
			index[o.Status] = i
			res = append(res, model.StatusCount{Status: o.Status})
		}
		res[i].Count++
	}
	sort.SliceStable(res, func(a, b int) bool {
		return res[a].Count > res[b].Count
	})
	return res
}

// LeadTimeByCountry averages the promised lead time per origin country,
// sorted by country name.
func LeadTimeByCountry(orders []model.Order) []model.CountryLeadTime {
	type acc struct {
		sum   int64
		count int
	}
	groups := make(map[string]*acc)
	for _, o := range orders {
		g, ok := groups[o.Country]
		if !ok {
			g = &acc{}
			groups[o.Country] = g
		}
		g.sum += int64(o.LeadTimeDays)
		g.count++
	}

	res := make([]model.CountryLeadTime, 0, len(groups))
	for country, g := range groups {
		res = append(res, model.CountryLeadTime{
			Country:         country,
			AverageLeadTime: mean(g.sum, g.count),
			Orders:          g.count,
		})
	}
	sort.Slice(res, func(a, b int) bool {
		return res[a].Country < res[b].Country
	})
	return res
}

func mean(sum int64, count int) float64 {
	return decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(count))).
		Round(1).
		InexactFloat64()
}
