package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CommissionStatusCollected = "collected"

// CommissionRecord is the platform's cut of a payout, written in the same
// database transaction as the payout entry it references.
type CommissionRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;index" json:"transaction_id"`
	ProjectID     uuid.UUID       `gorm:"type:uuid;index" json:"project_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount"`
	Percentage    decimal.Decimal `gorm:"type:numeric(5,2)" json:"percentage"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
