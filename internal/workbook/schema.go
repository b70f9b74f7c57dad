package workbook

import (
	"procurement/internal/model"
)

// Sheet names of the backup document.
const (
	SheetOrders    = "Orders"
	SheetFollowUps = "FollowUps"
	SheetPayments  = "Payments"
	SheetInfo      = "Info"
)

// Info sheet labels. Only InfoLastUpdate is read back.
const (
	InfoLastUpdate     = "last update"
	InfoTotalOrders    = "total orders"
	InfoTotalFollowUps = "total follow-ups"
	InfoTotalPayments  = "total payments"
)

// DateUnknown is reported when a backup does not say when it was taken.
const DateUnknown = "date unknown"

// TimestampLayout formats the export time in the Info sheet.
const TimestampLayout = "2006-01-02 15:04:05"

// Order sheet columns
const (
	ColOrderNumber  = "Order No"
	ColSupplier     = "Supplier"
	ColCountry      = "Country"
	ColProduct      = "Product"
	ColValue        = "Value"
	ColPaymentTerms = "Payment Terms"
	ColOrderDate    = "Order Date"
	ColLeadTime     = "Promised Lead Time"
	ColPromisedDate = "Promised Date"
	ColActualDate   = "Actual Date"
	ColStatus       = "Status"
	ColPayment      = "Payment"
	ColNotes        = "Notes"
)

// FollowUp sheet columns
const (
	ColDate        = "Date"
	ColOrder       = "Order"
	ColChannel     = "Channel"
	ColResponseSLA = "Response SLA"
)

// Payment sheet columns
const (
	ColTotalValue   = "Total Value"
	ColPaidValue    = "Paid Value"
	ColPercentPaid  = "% Paid"
	ColExpectedDate = "Expected Payment Date"
)

// Info sheet columns
const (
	ColLabel     = "Label"
	ColInfoValue = "Value"
)

// Fixed column order of each section.
var (
	OrderColumns = []string{
		ColOrderNumber, ColSupplier, ColCountry, ColProduct, ColValue, ColPaymentTerms,
		ColOrderDate, ColLeadTime, ColPromisedDate, ColActualDate, ColStatus, ColPayment, ColNotes,
	}
	FollowUpColumns = []string{ColDate, ColSupplier, ColOrder, ColChannel, ColResponseSLA}
	PaymentColumns  = []string{
		ColOrder, ColSupplier, ColTotalValue, ColPaidValue, ColPercentPaid, ColExpectedDate, ColStatus,
	}
	InfoColumns = []string{ColLabel, ColInfoValue}
)

// % Paid is derived, so older backups without it can still be restored.
var paymentRequired = []string{ColOrder, ColSupplier, ColTotalValue, ColPaidValue, ColExpectedDate, ColStatus}

func orderCells(o model.Order) []interface{} {
	return []interface{}{
		o.OrderNumber, o.Supplier, o.Country, o.Product, o.Value, o.PaymentTerms,
		o.OrderDate, o.LeadTimeDays, o.PromisedDate, o.ActualDate, o.Status, o.PaymentStatus, o.Notes,
	}
}

func followUpCells(f model.FollowUp) []interface{} {
	return []interface{}{f.Date, f.Supplier, f.OrderNumber, f.Channel, f.ResponseSLADays}
}

func paymentCells(p model.Payment) []interface{} {
	return []interface{}{
		p.OrderNumber, p.Supplier, p.TotalValue, p.PaidValue, p.PercentPaid, p.ExpectedDate, p.Status,
	}
}

func decodeOrder(r record) (model.Order, error) {
	value, err := r.decimal(ColValue)
	if err != nil {
		return model.Order{}, err
	}
	leadTime, err := r.int(ColLeadTime)
	if err != nil {
		return model.Order{}, err
	}
	return model.Order{
		OrderNumber:   r.text(ColOrderNumber),
		Supplier:      r.text(ColSupplier),
		Country:       r.text(ColCountry),
		Product:       r.text(ColProduct),
		Value:         value,
		PaymentTerms:  r.text(ColPaymentTerms),
		OrderDate:     r.date(ColOrderDate),
		LeadTimeDays:  leadTime,
		PromisedDate:  r.date(ColPromisedDate),
		ActualDate:    r.date(ColActualDate),
		Status:        r.text(ColStatus),
		PaymentStatus: r.text(ColPayment),
		Notes:         r.text(ColNotes),
	}, nil
}

func decodeFollowUp(r record) (model.FollowUp, error) {
	sla, err := r.int(ColResponseSLA)
	if err != nil {
		return model.FollowUp{}, err
	}
	return model.FollowUp{
		Date:            r.date(ColDate),
		Supplier:        r.text(ColSupplier),
		OrderNumber:     r.text(ColOrder),
		Channel:         r.text(ColChannel),
		ResponseSLADays: sla,
	}, nil
}

func decodePayment(r record) (model.Payment, error) {
	total, err := r.decimal(ColTotalValue)
	if err != nil {
		return model.Payment{}, err
	}
	paid, err := r.decimal(ColPaidValue)
	if err != nil {
		return model.Payment{}, err
	}
	percent := model.PercentPaid(total, paid)
	if r.has(ColPercentPaid) {
		if percent, err = r.decimal(ColPercentPaid); err != nil {
			return model.Payment{}, err
		}
	}
	return model.Payment{
		OrderNumber:  r.text(ColOrder),
		Supplier:     r.text(ColSupplier),
		TotalValue:   total,
		PaidValue:    paid,
		PercentPaid:  percent,
		ExpectedDate: r.date(ColExpectedDate),
		Status:       r.text(ColStatus),
	}, nil
}
