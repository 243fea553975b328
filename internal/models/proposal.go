package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Proposal statuses. accepted and rejected are terminal.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

type Proposal struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;index" json:"project_id"`
	FreelancerID   uuid.UUID       `gorm:"type:uuid;index" json:"freelancer_id"`
	ProposedBudget decimal.Decimal `gorm:"type:numeric(15,2)" json:"proposed_budget"`
	DeliveryTime   int             `json:"delivery_time"`
	ProposalText   string          `json:"proposal_text"`
	CoverLetter    string          `json:"cover_letter"`
	PortfolioLinks datatypes.JSON  `json:"portfolio_links,omitempty"`
	Status         string          `gorm:"index" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
