package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact channel enum constants
const (
	ChannelEmail    = "Email"
	ChannelWhatsApp = "WhatsApp"
	ChannelPhone    = "Phone"
	ChannelInPerson = "In-person"
)

// Bounds of the response SLA, in days.
const (
	MinResponseSLADays = 0
	MaxResponseSLADays = 30
)

// TableFollowUps is the name of the follow-ups table.
const TableFollowUps = "follow_ups"

// FollowUp is one contact made with a supplier. OrderNumber is free text and
// may not match any order.
type FollowUp struct {
	Seq             uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID              uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	Date            Date      `gorm:"type:varchar(32)" json:"date"`
	Supplier        string    `gorm:"type:varchar(255);index" json:"supplier"`
	OrderNumber     string    `gorm:"type:varchar(100);index" json:"order_number"`
	Channel         string    `gorm:"type:varchar(20)" json:"channel"`
	ResponseSLADays int       `gorm:"column:response_sla_days;not null" json:"response_sla_days"`
	CreatedAt       time.Time `json:"created_at"`
}

func (FollowUp) TableName() string {
	return TableFollowUps
}

func (f *FollowUp) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Validate requires the supplier that was contacted.
func (f *FollowUp) Validate() error {
	if blank(f.Supplier) {
		return MissingFields(TableFollowUps, "supplier")
	}
	return nil
}
