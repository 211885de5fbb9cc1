package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

// Contract is an engagement between exactly one client and one contractor.
// Contracts are provisioned externally; the service only reads them.
type Contract struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Terms        string               `gorm:"column:terms;not null"`
	Status       enums.ContractStatus `gorm:"column:status;type:contract_status;not null;default:'new'"`
	ClientID     uuid.UUID            `gorm:"column:client_id;type:uuid;not null;index"`
	ContractorID uuid.UUID            `gorm:"column:contractor_id;type:uuid;not null;index"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// HasParticipant reports whether the profile is a party to the contract. All
// contract and job reads are scoped with this check server-side.
func (c Contract) HasParticipant(profileID uuid.UUID) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}
