package escrow

import (
	"errors"
	"time"

	"freelance-marketplace-backend/internal/models"
	"freelance-marketplace-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CommissionRate is the platform's fixed cut of a released payout.
var CommissionRate = decimal.RequireFromString("0.10")

const DefaultCurrency = "USD"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotProjectClient    = errors.New("acting user is not the project's client")
	ErrNoAcceptedProposal  = errors.New("project has no accepted proposal")
	ErrProjectNotCompleted = errors.New("project is not completed")
	ErrNoEscrowFunds       = errors.New("no completed escrow deposit for project")
	ErrAlreadyReleased     = errors.New("payment already released for project")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)

type TransactionStore interface {
	Create(*models.Transaction) error
	ListByProject(uuid.UUID) ([]models.Transaction, error)
	ListByUser(uuid.UUID) ([]models.Transaction, error)
	PayoutExists(uuid.UUID) (bool, error)
	ReleaseFunds(payout *models.Transaction, record *models.CommissionRecord) error
}

type ProjectStore interface {
	GetByID(uuid.UUID) (*models.Project, error)
}

type ProposalStore interface {
	AcceptedForProject(uuid.UUID) (*models.Proposal, error)
}

type Service struct {
	transactions TransactionStore
	projects     ProjectStore
	proposals    ProposalStore
}

func NewService(transactions TransactionStore, projects ProjectStore, proposals ProposalStore) *Service {
	return &Service{
		transactions: transactions,
		projects:     projects,
		proposals:    proposals,
	}
}

// ReleaseSummary reports how a released amount was split.
type ReleaseSummary struct {
	TotalAmount      decimal.Decimal `json:"total_amount"`
	FreelancerAmount decimal.Decimal `json:"freelancer_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
}

type ReleaseResult struct {
	Payout     *models.Transaction      `json:"payout"`
	Commission *models.CommissionRecord `json:"commission_record"`
	Summary    ReleaseSummary           `json:"summary"`
}

// CreateEscrowPayment records the expected escrow entry right after a
// proposal is accepted. It is not exposed over HTTP and is off the critical
// path of acceptance; the caller only logs a failure.
func (s *Service) CreateEscrowPayment(proposalID, projectID, clientID, freelancerID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	t := &models.Transaction{
		ID:              uuid.New(),
		Title:           "Escrow payment",
		UserID:          clientID,
		ProjectID:       &projectID,
		Type:            models.TransactionTypeExpense,
		Amount:          amount,
		Currency:        DefaultCurrency,
		Status:          models.TransactionStatusPending,
		TransactionDate: time.Now(),
		PaymentType:     models.PaymentTypeEscrow,
		ProposalID:      &proposalID,
		FreelancerID:    &freelancerID,
		EscrowStatus:    models.EscrowStatusAwaitingDeposit,
		CreatedAt:       time.Now(),
	}
	if err := s.transactions.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Deposit settles funds into escrow for a project. Deposits are modeled as
// instantly completed; there is no gateway confirmation step. The operation
// is not idempotent: each call writes a new escrow entry and the aggregator
// sums them all.
func (s *Service) Deposit(projectID, actingUserID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.ClientID != actingUserID {
		return nil, ErrNotProjectClient
	}

	proposal, err := s.proposals.AcceptedForProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAcceptedProposal
		}
		return nil, err
	}

	t := &models.Transaction{
		ID:              uuid.New(),
		Title:           "Escrow deposit: " + project.Title,
		UserID:          actingUserID,
		ProjectID:       &projectID,
		Type:            models.TransactionTypeExpense,
		Amount:          amount,
		Currency:        DefaultCurrency,
		Status:          models.TransactionStatusCompleted,
		TransactionDate: time.Now(),
		Description:     "Escrow deposit via " + paymentMethod,
		PaymentType:     models.PaymentTypeEscrow,
		ProposalID:      &proposal.ID,
		FreelancerID:    &proposal.FreelancerID,
		EscrowStatus:    models.EscrowStatusDeposited,
		CreatedAt:       time.Now(),
	}
	if err := s.transactions.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Release pays the accepted proposal's budget out to the freelancer, minus
// the platform commission. All preconditions are checked before any write;
// the payout entry and the commission record commit atomically and at most
// once per project.
func (s *Service) Release(projectID, actingUserID uuid.UUID) (*ReleaseResult, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.ClientID != actingUserID {
		return nil, ErrNotProjectClient
	}
	if project.Status != models.ProjectStatusCompleted {
		return nil, ErrProjectNotCompleted
	}

	proposal, err := s.proposals.AcceptedForProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAcceptedProposal
		}
		return nil, err
	}

	txs, err := s.transactions.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	hasEscrow := false
	for _, t := range txs {
		if t.PaymentType == models.PaymentTypeEscrow && t.Status == models.TransactionStatusCompleted {
			hasEscrow = true
			break
		}
	}
	if !hasEscrow {
		return nil, ErrNoEscrowFunds
	}

	released, err := s.transactions.PayoutExists(projectID)
	if err != nil {
		return nil, err
	}
	if released {
		return nil, ErrAlreadyReleased
	}

	amount := proposal.ProposedBudget
	commission := amount.Mul(CommissionRate).Round(2)
	freelancerAmount := amount.Sub(commission)

	payout := &models.Transaction{
		ID:              uuid.New(),
		Title:           "Payment for: " + project.Title,
		UserID:          proposal.FreelancerID,
		ProjectID:       &projectID,
		Type:            models.TransactionTypeIncome,
		Amount:          freelancerAmount,
		Currency:        DefaultCurrency,
		Status:          models.TransactionStatusCompleted,
		TransactionDate: time.Now(),
		PaymentType:     models.PaymentTypePayout,
		ProposalID:      &proposal.ID,
		FreelancerID:    &proposal.FreelancerID,
		Details: datatypes.NewJSONType(models.PayoutDetails{
			ProposalID:       proposal.ID,
			OriginalAmount:   amount,
			CommissionAmount: commission,
			CommissionRate:   CommissionRate,
		}),
		CreatedAt: time.Now(),
	}
	record := &models.CommissionRecord{
		ID:            uuid.New(),
		TransactionID: payout.ID,
		ProjectID:     projectID,
		Amount:        commission,
		Percentage:    CommissionRate.Mul(decimal.NewFromInt(100)),
		Status:        models.CommissionStatusCollected,
		CreatedAt:     time.Now(),
	}

	if err := s.transactions.ReleaseFunds(payout, record); err != nil {
		if errors.Is(err, repository.ErrDuplicatePayout) {
			return nil, ErrAlreadyReleased
		}
		return nil, err
	}

	return &ReleaseResult{
		Payout:     payout,
		Commission: record,
		Summary: ReleaseSummary{
			TotalAmount:      amount,
			FreelancerAmount: freelancerAmount,
			CommissionAmount: commission,
			CommissionRate:   CommissionRate,
		},
	}, nil
}

// ListUserTransactions returns the acting user's ledger entries.
func (s *Service) ListUserTransactions(userID uuid.UUID) ([]models.Transaction, error) {
	return s.transactions.ListByUser(userID)
}
