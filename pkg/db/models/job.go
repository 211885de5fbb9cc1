package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a unit of billable work under a contract, paid at most once. Once
// paid, price and payment date are immutable.
type Job struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ContractID  uuid.UUID  `gorm:"column:contract_id;type:uuid;not null;index"`
	Description string     `gorm:"column:description;not null"`
	PriceCents  int64      `gorm:"column:price_cents;not null"`
	Paid        bool       `gorm:"column:paid;not null;default:false"`
	PaymentDate *time.Time `gorm:"column:payment_date"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
