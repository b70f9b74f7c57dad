package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Country of origin enum constants
const (
	CountryChina   = "China"
	CountryUSA     = "USA"
	CountryMexico  = "Mexico"
	CountryEngland = "England"
	CountryIndia   = "India"
)

// PaymentTerms enum constants
const (
	TermsCash   = "Cash"
	Terms30Days = "30 days"
	Terms60Days = "60 days"
	Terms90Days = "90 days"
)

// OrderStatus enum constants
const (
	OrderStatusPending      = "Pending"
	OrderStatusInProduction = "In Production"
	OrderStatusShipped      = "Shipped"
	OrderStatusDelivered    = "Delivered"
)

// PaymentFlag enum constants (whether the order has been paid)
const (
	PaymentFlagNo      = "No"
	PaymentFlagYes     = "Yes"
	PaymentFlagAdvance = "Advance"
)

// TableOrders is the name of the orders table and its backup section.
const TableOrders = "orders"

// Order is one purchase order placed with a supplier. Order numbers are
// user-supplied and not unique. Rows are append-only: they are never edited
// in place, only dropped together with the whole table.
type Order struct {
	Seq           uint64          `gorm:"primaryKey;autoIncrement" json:"-"` // insertion order
	ID            uuid.UUID       `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(100);index" json:"order_number"`
	Supplier      string          `gorm:"type:varchar(255);index" json:"supplier"`
	Country       string          `gorm:"type:varchar(20);index" json:"country"`
	Product       string          `gorm:"type:varchar(255)" json:"product"`
	Value         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"value"`
	PaymentTerms  string          `gorm:"type:varchar(20)" json:"payment_terms"`
	OrderDate     Date            `gorm:"type:varchar(32)" json:"order_date"`
	LeadTimeDays  int             `gorm:"not null" json:"lead_time_days"` // promised lead time
	PromisedDate  Date            `gorm:"type:varchar(32)" json:"promised_date"`
	ActualDate    Date            `gorm:"type:varchar(32)" json:"actual_date"` // empty until delivered
	Status        string          `gorm:"type:varchar(20);index" json:"status"`
	PaymentStatus string          `gorm:"type:varchar(20);index" json:"payment_status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Order) TableName() string {
	return TableOrders
}

// BeforeCreate assigns the row identifier.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Validate enforces the minimum an order needs to be stored: an order
// number and a supplier.
func (o *Order) Validate() error {
	var missing []string
	if blank(o.OrderNumber) {
		missing = append(missing, "order_number")
	}
	if blank(o.Supplier) {
		missing = append(missing, "supplier")
	}
	if len(missing) > 0 {
		return MissingFields(TableOrders, missing...)
	}
	return nil
}

// IsDelivered reports whether the order reached its final status.
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}
