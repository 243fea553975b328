package repository

import (
	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(p *models.Proposal) error {
	return r.db.Create(p).Error
}

func (r *ProposalRepository) GetByID(id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepository) ListByProject(projectID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&proposals).Error
	return proposals, err
}

// AcceptedForProject returns the accepted proposal for a project, or
// gorm.ErrRecordNotFound when none has been accepted yet.
func (r *ProposalRepository) AcceptedForProject(projectID uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.
		Where("project_id = ? AND status = ?", projectID, models.ProposalStatusAccepted).
		First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepository) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Proposal{}).Where("id = ?", id).Update("status", status).Error
}

// Accept transitions the proposal to accepted, assigns the freelancer to the
// project and marks it in_progress, and rejects every sibling proposal, all
// in one database transaction. The project row is locked so concurrent
// accepts on the same project serialize.
func (r *ProposalRepository) Accept(proposalID uuid.UUID) (*models.Proposal, *models.Project, error) {
	var proposal models.Proposal
	var project models.Project

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&proposal, "id = ?", proposalID).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", proposal.ProjectID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Proposal{}).Where("id = ?", proposal.ID).
			Update("status", models.ProposalStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).
			Updates(map[string]interface{}{
				"freelancer_id": proposal.FreelancerID,
				"status":        models.ProjectStatusInProgress,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Proposal{}).
			Where("project_id = ? AND id <> ?", project.ID, proposal.ID).
			Update("status", models.ProposalStatusRejected).Error
	})
	if err != nil {
		return nil, nil, err
	}

	proposal.Status = models.ProposalStatusAccepted
	freelancerID := proposal.FreelancerID
	project.FreelancerID = &freelancerID
	project.Status = models.ProjectStatusInProgress
	return &proposal, &project, nil
}
