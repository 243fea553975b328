package repository

import (
	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(e *models.Event) error {
	return r.db.Create(e).Error
}

func (r *EventRepository) ListByProject(projectID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("project_id = ?", projectID).Order("due_date ASC").Find(&events).Error
	return events, err
}
