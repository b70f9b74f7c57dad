package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus enum constants
const (
	PaymentStatusPending       = "Pending"
	PaymentStatusPartiallyPaid = "Partially Paid"
	PaymentStatusPaid          = "Paid"
)

// TablePayments is the name of the payments table.
const TablePayments = "payments"

var hundred = decimal.NewFromInt(100)

// Payment is a payment made (or due) against an order. PercentPaid is
// computed once when the row is built and stored with it.
type Payment struct {
	Seq          uint64          `gorm:"primaryKey;autoIncrement" json:"-"`
	ID           uuid.UUID       `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	OrderNumber  string          `gorm:"type:varchar(100);index" json:"order_number"`
	Supplier     string          `gorm:"type:varchar(255);index" json:"supplier"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_value"`
	PaidValue    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"paid_value"`
	PercentPaid  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"percent_paid"`
	ExpectedDate Date            `gorm:"type:varchar(32)" json:"expected_date"`
	Status       string          `gorm:"type:varchar(20);index" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (Payment) TableName() string {
	return TablePayments
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate requires the order reference and the supplier.
func (p *Payment) Validate() error {
	var missing []string
	if blank(p.OrderNumber) {
		missing = append(missing, "order_number")
	}
	if blank(p.Supplier) {
		missing = append(missing, "supplier")
	}
	if len(missing) > 0 {
		return MissingFields(TablePayments, missing...)
	}
	return nil
}

// PercentPaid returns paid/total*100 rounded to two places, or zero when
// nothing is owed.
func PercentPaid(total, paid decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return paid.Div(total).Mul(hundred).Round(2)
}
