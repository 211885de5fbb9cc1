package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

// Profile is an account on the ledger, either a client (pays for jobs) or a
// contractor (earns from them). Balances are integer cents and are only ever
// mutated through the ledger primitives.
type Profile struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string            `gorm:"column:first_name;not null"`
	LastName     string            `gorm:"column:last_name;not null"`
	Profession   string            `gorm:"column:profession;not null"`
	Type         enums.ProfileType `gorm:"column:type;type:profile_type;not null"`
	BalanceCents int64             `gorm:"column:balance_cents;not null;default:0"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins first and last name for display in reports.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
