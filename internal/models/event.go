package models

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeDeadlineReminder = "deadline_reminder"

// Event is a calendar entry. The only writer in this service is the
// post-acceptance deadline reminder.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}
