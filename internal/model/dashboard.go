package model

import "github.com/shopspring/decimal"

// KPIs is the daily cockpit snapshot, recomputed on every request.
type KPIs struct {
	OnTime         int     `json:"on_time"`
	Late           int     `json:"late"`
	PaymentPending int     `json:"payment_pending"`
	AverageSLA     float64 `json:"average_sla"`
}

// SupplierSLA is the mean response SLA of one supplier
type SupplierSLA struct {
	Supplier   string  `json:"supplier"`
	AverageSLA float64 `json:"average_sla"`
	FollowUps  int     `json:"follow_ups"`
}

// FinancialExposure sums what has been advanced and what is still owed.
type FinancialExposure struct {
	TotalAdvanced decimal.Decimal `json:"total_advanced"`
	TotalPending  decimal.Decimal `json:"total_pending"`
}

// StatusCount is one column of the order kanban
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CountryLeadTime is the mean promised lead time of orders from one country
type CountryLeadTime struct {
	Country         string  `json:"country"`
	AverageLeadTime float64 `json:"average_lead_time"`
	Orders          int     `json:"orders"`
}
