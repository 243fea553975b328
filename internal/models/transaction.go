package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction types
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
	TransactionTypePayout  = "payout"
	TransactionTypeRefund  = "refund"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Payment types tagging what a ledger entry is for
const (
	PaymentTypeEscrow = "escrow"
	PaymentTypePayout = "payout"
)

// Escrow lifecycle markers carried on escrow-tagged transactions
const (
	EscrowStatusAwaitingDeposit = "awaiting_deposit"
	EscrowStatusDeposited       = "deposited"
	EscrowStatusReleased        = "released"
)

// PayoutDetails is the commission breakdown persisted with a payout entry.
type PayoutDetails struct {
	ProposalID       uuid.UUID       `json:"proposal_id"`
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
}

type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string          `json:"title"`
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	ProjectID       *uuid.UUID      `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Type            string          `gorm:"index" json:"type"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `gorm:"index" json:"status"`
	TransactionDate time.Time       `gorm:"column:transaction_date" json:"transaction_date"`
	Description     string          `json:"description"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	InvoiceID       *uuid.UUID      `gorm:"type:uuid" json:"invoice_id,omitempty"`

	// Purpose tagging. PaymentType discriminates how the aggregator reads
	// the entry; the remaining fields only apply to escrow/payout entries.
	PaymentType  string     `gorm:"index" json:"payment_type,omitempty"`
	ProposalID   *uuid.UUID `gorm:"type:uuid" json:"proposal_id,omitempty"`
	FreelancerID *uuid.UUID `gorm:"type:uuid" json:"freelancer_id,omitempty"`
	EscrowStatus string     `json:"escrow_status,omitempty"`

	Details   datatypes.JSONType[PayoutDetails] `json:"details,omitempty"`
	CreatedAt time.Time                         `json:"created_at"`
}
