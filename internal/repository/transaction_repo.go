package repository

import (
	"errors"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicatePayout is returned when a payout entry already exists for the
// project at commit time.
var ErrDuplicatePayout = errors.New("payout already exists for project")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) ListByProject(projectID uuid.UUID) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *TransactionRepository) ListByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *TransactionRepository) PayoutExists(projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("project_id = ? AND payment_type = ?", projectID, models.PaymentTypePayout).
		Count(&count).Error
	return count > 0, err
}

// ReleaseFunds commits the payout entry and its commission record together.
// The project row is locked for the duration so concurrent releases
// serialize, and the payout existence check is repeated under the lock; the
// partial unique index on transactions(project_id) backs this up at the
// schema level.
func (r *TransactionRepository) ReleaseFunds(payout *models.Transaction, record *models.CommissionRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", record.ProjectID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Transaction{}).
			Where("project_id = ? AND payment_type = ?", record.ProjectID, models.PaymentTypePayout).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePayout
		}

		if err := tx.Create(payout).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
}
