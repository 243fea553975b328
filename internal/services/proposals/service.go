package proposals

import (
	"errors"
	"log"
	"time"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectNotOpen   = errors.New("project is not open for proposals")
	ErrNotProjectClient = errors.New("acting user is not the project's client")
)

type ProposalStore interface {
	Create(*models.Proposal) error
	GetByID(uuid.UUID) (*models.Proposal, error)
	ListByProject(uuid.UUID) ([]models.Proposal, error)
	UpdateStatus(id uuid.UUID, status string) error
	Accept(proposalID uuid.UUID) (*models.Proposal, *models.Project, error)
}

type ProjectStore interface {
	GetByID(uuid.UUID) (*models.Project, error)
}

// CalendarSync creates the deadline reminder after acceptance. It may fail;
// the caller never propagates the failure.
type CalendarSync interface {
	CreateProjectEvent(projectID uuid.UUID, title string, freelancerID uuid.UUID, deadline time.Time) (*models.Event, error)
}

// EscrowCreator records the expected escrow entry after acceptance, also
// best-effort.
type EscrowCreator interface {
	CreateEscrowPayment(proposalID, projectID, clientID, freelancerID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error)
}

type Service struct {
	proposals ProposalStore
	projects  ProjectStore
	calendar  CalendarSync
	escrow    EscrowCreator
}

func NewService(proposals ProposalStore, projects ProjectStore, calendar CalendarSync, escrow EscrowCreator) *Service {
	return &Service{
		proposals: proposals,
		projects:  projects,
		calendar:  calendar,
		escrow:    escrow,
	}
}

type CreateInput struct {
	ProjectID      uuid.UUID
	ProposedBudget decimal.Decimal
	DeliveryTime   int
	ProposalText   string
	CoverLetter    string
	PortfolioLinks datatypes.JSON
}

func (s *Service) Create(freelancerID uuid.UUID, in CreateInput) (*models.Proposal, error) {
	project, err := s.projects.GetByID(in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, ErrProjectNotOpen
	}

	proposal := &models.Proposal{
		ID:             uuid.New(),
		ProjectID:      in.ProjectID,
		FreelancerID:   freelancerID,
		ProposedBudget: in.ProposedBudget,
		DeliveryTime:   in.DeliveryTime,
		ProposalText:   in.ProposalText,
		CoverLetter:    in.CoverLetter,
		PortfolioLinks: in.PortfolioLinks,
		Status:         models.ProposalStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.proposals.Create(proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *Service) ListByProject(projectID uuid.UUID) ([]models.Proposal, error) {
	return s.proposals.ListByProject(projectID)
}

// AcceptResult reports the acceptance outcome. CalendarSync is false when
// the reminder could not be created; the acceptance itself still stands.
type AcceptResult struct {
	Proposal     *models.Proposal `json:"proposal"`
	Project      *models.Project  `json:"project"`
	CalendarSync bool             `json:"calendar_sync"`
}

// Accept commits the acceptance atomically (proposal accepted, freelancer
// assigned, project in_progress, siblings rejected), then attempts the
// calendar reminder and the escrow pre-entry. Both follow-ups are
// best-effort and only logged on failure.
func (s *Service) Accept(proposalID uuid.UUID) (*AcceptResult, error) {
	proposal, project, err := s.proposals.Accept(proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}

	result := &AcceptResult{Proposal: proposal, Project: project}

	if project.Deadline != nil {
		if _, err := s.calendar.CreateProjectEvent(project.ID, project.Title, proposal.FreelancerID, *project.Deadline); err != nil {
			log.Printf("calendar sync failed for project %s: %v", project.ID, err)
		} else {
			result.CalendarSync = true
		}
	}

	if _, err := s.escrow.CreateEscrowPayment(proposal.ID, project.ID, project.ClientID, proposal.FreelancerID, proposal.ProposedBudget); err != nil {
		log.Printf("escrow pre-entry failed for proposal %s: %v", proposal.ID, err)
	}

	return result, nil
}

// Reject sets the proposal to rejected. Only the project's client may
// reject; there are no cross-entity effects.
func (s *Service) Reject(proposalID, actingUserID uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.proposals.GetByID(proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}

	project, err := s.projects.GetByID(proposal.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.ClientID != actingUserID {
		return nil, ErrNotProjectClient
	}

	if err := s.proposals.UpdateStatus(proposal.ID, models.ProposalStatusRejected); err != nil {
		return nil, err
	}
	proposal.Status = models.ProposalStatusRejected
	return proposal, nil
}
