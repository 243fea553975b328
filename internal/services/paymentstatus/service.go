package paymentstatus

import (
	"errors"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coarse per-project statuses (single-project detail view).
const (
	StatusReleased       = "released"
	StatusEscrowed       = "escrowed"
	StatusPartialEscrow  = "partial_escrow"
	StatusPendingDeposit = "pending_deposit"
)

// Fine-grained statuses and next actions (client action queue).
const (
	StatusReadyToRelease = "ready_to_release"
	StatusPartialDeposit = "partial_deposit"

	ActionRelease          = "release"
	ActionWait             = "wait"
	ActionDepositRemaining = "deposit_remaining"
	ActionDeposit          = "deposit"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectStore interface {
	GetByID(uuid.UUID) (*models.Project, error)
	ListByClient(clientID uuid.UUID, statuses []string) ([]models.Project, error)
}

type ProposalStore interface {
	AcceptedForProject(uuid.UUID) (*models.Proposal, error)
}

type TransactionStore interface {
	ListByProject(uuid.UUID) ([]models.Transaction, error)
}

// Service derives human-facing payment statuses from the ledger. It is a
// pure reader: no writes, no side effects.
type Service struct {
	projects     ProjectStore
	proposals    ProposalStore
	transactions TransactionStore
}

func NewService(projects ProjectStore, proposals ProposalStore, transactions TransactionStore) *Service {
	return &Service{
		projects:     projects,
		proposals:    proposals,
		transactions: transactions,
	}
}

type ProjectPaymentStatus struct {
	ProjectID      uuid.UUID       `json:"project_id"`
	Status         string          `json:"status"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	EscrowAmount   decimal.Decimal `json:"escrow_amount"`
	ReleasedAmount decimal.Decimal `json:"released_amount"`
}

type PendingPayment struct {
	ProjectID      uuid.UUID       `json:"project_id"`
	ProjectTitle   string          `json:"project_title"`
	ProjectStatus  string          `json:"project_status"`
	FreelancerID   uuid.UUID       `json:"freelancer_id"`
	Status         string          `json:"status"`
	Action         string          `json:"action"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	EscrowAmount   decimal.Decimal `json:"escrow_amount"`
}

func sumCompleted(txs []models.Transaction, paymentType string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.PaymentType == paymentType && t.Status == models.TransactionStatusCompleted {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// GetProjectPaymentStatus derives the coarse status for a single project.
// First match wins: released, escrowed, partial_escrow, pending_deposit.
func (s *Service) GetProjectPaymentStatus(projectID uuid.UUID) (*ProjectPaymentStatus, error) {
	if _, err := s.projects.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	expected := decimal.Zero
	if proposal, err := s.proposals.AcceptedForProject(projectID); err == nil {
		expected = proposal.ProposedBudget
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	txs, err := s.transactions.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	escrowAmount := sumCompleted(txs, models.PaymentTypeEscrow)
	releasedAmount := sumCompleted(txs, models.PaymentTypePayout)

	status := StatusPendingDeposit
	switch {
	case releasedAmount.GreaterThanOrEqual(expected):
		status = StatusReleased
	case escrowAmount.GreaterThanOrEqual(expected):
		status = StatusEscrowed
	case escrowAmount.IsPositive():
		status = StatusPartialEscrow
	}

	return &ProjectPaymentStatus{
		ProjectID:      projectID,
		Status:         status,
		ExpectedAmount: expected,
		EscrowAmount:   escrowAmount,
		ReleasedAmount: releasedAmount,
	}, nil
}

// GetClientPendingPayments builds the client's action queue over their
// in-progress and completed projects. Unlike the coarse derivation this one
// also consults project completion, and entries that are already released
// are filtered out. The two derivations stay separate on purpose.
func (s *Service) GetClientPendingPayments(clientID uuid.UUID) ([]PendingPayment, error) {
	projects, err := s.projects.ListByClient(clientID, []string{
		models.ProjectStatusInProgress,
		models.ProjectStatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	pending := make([]PendingPayment, 0, len(projects))
	for _, project := range projects {
		proposal, err := s.proposals.AcceptedForProject(project.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		txs, err := s.transactions.ListByProject(project.ID)
		if err != nil {
			return nil, err
		}
		escrowAmount := sumCompleted(txs, models.PaymentTypeEscrow)
		expected := proposal.ProposedBudget

		hasPayout := false
		for _, t := range txs {
			if t.PaymentType == models.PaymentTypePayout {
				hasPayout = true
				break
			}
		}

		var status, action string
		switch {
		case hasPayout:
			// already released, nothing left for the client to do
			continue
		case project.Status == models.ProjectStatusCompleted && escrowAmount.GreaterThanOrEqual(expected):
			status, action = StatusReadyToRelease, ActionRelease
		case escrowAmount.GreaterThanOrEqual(expected):
			status, action = StatusEscrowed, ActionWait
		case escrowAmount.IsPositive():
			status, action = StatusPartialDeposit, ActionDepositRemaining
		default:
			status, action = StatusPendingDeposit, ActionDeposit
		}

		pending = append(pending, PendingPayment{
			ProjectID:      project.ID,
			ProjectTitle:   project.Title,
			ProjectStatus:  project.Status,
			FreelancerID:   proposal.FreelancerID,
			Status:         status,
			Action:         action,
			ExpectedAmount: expected,
			EscrowAmount:   escrowAmount,
		})
	}
	return pending, nil
}
