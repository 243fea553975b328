package paymentstatus

import (
	"testing"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProjectStore struct {
	projects map[uuid.UUID]*models.Project
}

func (f *fakeProjectStore) GetByID(id uuid.UUID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) ListByClient(clientID uuid.UUID, statuses []string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.ClientID != clientID {
			continue
		}
		for _, s := range statuses {
			if p.Status == s {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

type fakeProposalStore struct {
	accepted map[uuid.UUID]*models.Proposal
}

func (f *fakeProposalStore) AcceptedForProject(projectID uuid.UUID) (*models.Proposal, error) {
	p, ok := f.accepted[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeTransactionStore struct {
	txs []models.Transaction
}

func (f *fakeTransactionStore) ListByProject(projectID uuid.UUID) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txs {
		if t.ProjectID != nil && *t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

type world struct {
	projects  *fakeProjectStore
	proposals *fakeProposalStore
	txs       *fakeTransactionStore
	svc       *Service
	clientID  uuid.UUID
}

func newWorld() *world {
	w := &world{
		projects:  &fakeProjectStore{projects: map[uuid.UUID]*models.Project{}},
		proposals: &fakeProposalStore{accepted: map[uuid.UUID]*models.Proposal{}},
		txs:       &fakeTransactionStore{},
		clientID:  uuid.New(),
	}
	w.svc = NewService(w.projects, w.proposals, w.txs)
	return w
}

func (w *world) addProject(status, budget string) uuid.UUID {
	id := uuid.New()
	w.projects.projects[id] = &models.Project{
		ID:       id,
		ClientID: w.clientID,
		Title:    "Project",
		Status:   status,
	}
	if budget != "" {
		w.proposals.accepted[id] = &models.Proposal{
			ID:             uuid.New(),
			ProjectID:      id,
			FreelancerID:   uuid.New(),
			ProposedBudget: decimal.RequireFromString(budget),
			Status:         models.ProposalStatusAccepted,
		}
	}
	return id
}

func (w *world) addTx(projectID uuid.UUID, paymentType, status, amount string) {
	pid := projectID
	w.txs.txs = append(w.txs.txs, models.Transaction{
		ID:          uuid.New(),
		ProjectID:   &pid,
		PaymentType: paymentType,
		Status:      status,
		Amount:      decimal.RequireFromString(amount),
	})
}

func TestProjectStatusNotFound(t *testing.T) {
	w := newWorld()
	_, err := w.svc.GetProjectPaymentStatus(uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectStatusDerivation(t *testing.T) {
	cases := []struct {
		name    string
		deposit []string
		payout  []string
		want    string
	}{
		{"no transactions", nil, nil, StatusPendingDeposit},
		{"partial escrow", []string{"200.00"}, nil, StatusPartialEscrow},
		{"exact escrow is escrowed not partial", []string{"500.00"}, nil, StatusEscrowed},
		{"split deposits summed", []string{"250.00", "250.00"}, nil, StatusEscrowed},
		{"released wins over escrowed", []string{"500.00"}, []string{"500.00"}, StatusReleased},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			projectID := w.addProject(models.ProjectStatusInProgress, "500.00")
			for _, amt := range tc.deposit {
				w.addTx(projectID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, amt)
			}
			for _, amt := range tc.payout {
				w.addTx(projectID, models.PaymentTypePayout, models.TransactionStatusCompleted, amt)
			}

			status, err := w.svc.GetProjectPaymentStatus(projectID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status.Status)
		})
	}
}

func TestProjectStatusIgnoresNonCompletedTransactions(t *testing.T) {
	w := newWorld()
	projectID := w.addProject(models.ProjectStatusInProgress, "500.00")
	w.addTx(projectID, models.PaymentTypeEscrow, models.TransactionStatusPending, "500.00")
	w.addTx(projectID, models.PaymentTypeEscrow, models.TransactionStatusFailed, "500.00")

	status, err := w.svc.GetProjectPaymentStatus(projectID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingDeposit, status.Status)
	assert.True(t, status.EscrowAmount.IsZero())
}

func TestProjectStatusReleasedMatchesPayoutSum(t *testing.T) {
	w := newWorld()
	projectID := w.addProject(models.ProjectStatusCompleted, "1000.00")
	w.addTx(projectID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, "1000.00")
	w.addTx(projectID, models.PaymentTypePayout, models.TransactionStatusCompleted, "1000.00")

	status, err := w.svc.GetProjectPaymentStatus(projectID)
	require.NoError(t, err)
	assert.Equal(t, StatusReleased, status.Status)
	assert.True(t, status.ReleasedAmount.GreaterThanOrEqual(status.ExpectedAmount))
}

func TestPendingPaymentsActions(t *testing.T) {
	w := newWorld()

	readyID := w.addProject(models.ProjectStatusCompleted, "500.00")
	w.addTx(readyID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, "500.00")

	waitID := w.addProject(models.ProjectStatusInProgress, "500.00")
	w.addTx(waitID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, "500.00")

	partialID := w.addProject(models.ProjectStatusInProgress, "500.00")
	w.addTx(partialID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, "100.00")

	emptyID := w.addProject(models.ProjectStatusInProgress, "500.00")

	releasedID := w.addProject(models.ProjectStatusCompleted, "500.00")
	w.addTx(releasedID, models.PaymentTypeEscrow, models.TransactionStatusCompleted, "500.00")
	w.addTx(releasedID, models.PaymentTypePayout, models.TransactionStatusCompleted, "500.00")

	// no accepted proposal, must be skipped entirely
	w.addProject(models.ProjectStatusInProgress, "")

	pending, err := w.svc.GetClientPendingPayments(w.clientID)
	require.NoError(t, err)
	require.Len(t, pending, 4)

	byProject := map[uuid.UUID]PendingPayment{}
	for _, p := range pending {
		byProject[p.ProjectID] = p
	}

	assert.Equal(t, StatusReadyToRelease, byProject[readyID].Status)
	assert.Equal(t, ActionRelease, byProject[readyID].Action)

	assert.Equal(t, StatusEscrowed, byProject[waitID].Status)
	assert.Equal(t, ActionWait, byProject[waitID].Action)

	assert.Equal(t, StatusPartialDeposit, byProject[partialID].Status)
	assert.Equal(t, ActionDepositRemaining, byProject[partialID].Action)

	assert.Equal(t, StatusPendingDeposit, byProject[emptyID].Status)
	assert.Equal(t, ActionDeposit, byProject[emptyID].Action)

	_, hasReleased := byProject[releasedID]
	assert.False(t, hasReleased, "released projects must be filtered out")
}
