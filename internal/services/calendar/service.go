package calendar

import (
	"time"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
)

type EventStore interface {
	Create(*models.Event) error
	ListByProject(uuid.UUID) ([]models.Event, error)
}

type Service struct {
	events EventStore
}

func NewService(events EventStore) *Service {
	return &Service{events: events}
}

// CreateProjectEvent writes the deadline reminder for a freshly assigned
// project.
func (s *Service) CreateProjectEvent(projectID uuid.UUID, title string, freelancerID uuid.UUID, deadline time.Time) (*models.Event, error) {
	event := &models.Event{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    freelancerID,
		Title:     "Deadline: " + title,
		Type:      models.EventTypeDeadlineReminder,
		DueDate:   deadline,
		CreatedAt: time.Now(),
	}
	if err := s.events.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) ListProjectEvents(projectID uuid.UUID) ([]models.Event, error) {
	return s.events.ListByProject(projectID)
}
