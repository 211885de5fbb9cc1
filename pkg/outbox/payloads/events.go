package payloads

import (
	"time"

	"github.com/google/uuid"
)

// JobPaidEvent is emitted once a job payment settles on the ledger.
type JobPaidEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ContractID   uuid.UUID `json:"contract_id"`
	ClientID     uuid.UUID `json:"client_id"`
	ContractorID uuid.UUID `json:"contractor_id"`
	AmountCents  int64     `json:"amount_cents"`
	PaymentDate  time.Time `json:"payment_date"`
}

// BalanceDepositedEvent is emitted when a client tops up their balance.
type BalanceDepositedEvent struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	AmountCents     int64     `json:"amount_cents"`
	NewBalanceCents int64     `json:"new_balance_cents"`
	DepositCapCents int64     `json:"deposit_cap_cents"`
	DepositedAt     time.Time `json:"deposited_at"`
}
