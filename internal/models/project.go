package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project statuses
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusPending    = "pending"
	ProjectStatusOpen       = "open"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

type Project struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID       `gorm:"type:uuid;index" json:"client_id"`
	FreelancerID   *uuid.UUID      `gorm:"type:uuid;index" json:"freelancer_id,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Budget         decimal.Decimal `gorm:"type:numeric(15,2)" json:"budget"`
	Status         string          `gorm:"index" json:"status"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	CompletionDate *time.Time      `json:"completion_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
