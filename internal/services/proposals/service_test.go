package proposals

import (
	"errors"
	"testing"
	"time"

	"freelance-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProposalStore struct {
	proposals map[uuid.UUID]*models.Proposal
	projects  map[uuid.UUID]*models.Project
}

func (f *fakeProposalStore) Create(p *models.Proposal) error {
	f.proposals[p.ID] = p
	return nil
}

func (f *fakeProposalStore) GetByID(id uuid.UUID) (*models.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProposalStore) ListByProject(projectID uuid.UUID) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.ProjectID == projectID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProposalStore) UpdateStatus(id uuid.UUID, status string) error {
	p, ok := f.proposals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

// Accept applies all three effects at once, mirroring the storage-level
// transaction.
func (f *fakeProposalStore) Accept(proposalID uuid.UUID) (*models.Proposal, *models.Project, error) {
	p, ok := f.proposals[proposalID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	project, ok := f.projects[p.ProjectID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}

	p.Status = models.ProposalStatusAccepted
	freelancerID := p.FreelancerID
	project.FreelancerID = &freelancerID
	project.Status = models.ProjectStatusInProgress
	for _, sibling := range f.proposals {
		if sibling.ProjectID == p.ProjectID && sibling.ID != p.ID {
			sibling.Status = models.ProposalStatusRejected
		}
	}

	proposal := *p
	proj := *project
	return &proposal, &proj, nil
}

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

type fakeCalendar struct {
	events []models.Event
	fail   bool
}

func (f *fakeCalendar) CreateProjectEvent(projectID uuid.UUID, title string, freelancerID uuid.UUID, deadline time.Time) (*models.Event, error) {
	if f.fail {
		return nil, errors.New("calendar unavailable")
	}
	e := models.Event{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    freelancerID,
		Title:     title,
		DueDate:   deadline,
	}
	f.events = append(f.events, e)
	return &e, nil
}

type fakeEscrowCreator struct {
	created int
	fail    bool
}

func (f *fakeEscrowCreator) CreateEscrowPayment(proposalID, projectID, clientID, freelancerID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	if f.fail {
		return nil, errors.New("escrow store down")
	}
	f.created++
	return &models.Transaction{ID: uuid.New()}, nil
}

type acceptWorld struct {
	store    *fakeProposalStore
	calendar *fakeCalendar
	escrow   *fakeEscrowCreator
	svc      *Service
	clientID uuid.UUID
}

func newAcceptWorld(deadline *time.Time) (*acceptWorld, uuid.UUID, []uuid.UUID) {
	store := &fakeProposalStore{
		proposals: map[uuid.UUID]*models.Proposal{},
		projects:  map[uuid.UUID]*models.Project{},
	}
	w := &acceptWorld{
		store:    store,
		calendar: &fakeCalendar{},
		escrow:   &fakeEscrowCreator{},
		clientID: uuid.New(),
	}
	projectID := uuid.New()
	store.projects[projectID] = &models.Project{
		ID:       projectID,
		ClientID: w.clientID,
		Title:    "API integration",
		Status:   models.ProjectStatusOpen,
		Deadline: deadline,
	}

	var proposalIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		id := uuid.New()
		store.proposals[id] = &models.Proposal{
			ID:             id,
			ProjectID:      projectID,
			FreelancerID:   uuid.New(),
			ProposedBudget: decimal.RequireFromString("750.00"),
			Status:         models.ProposalStatusPending,
		}
		proposalIDs = append(proposalIDs, id)
	}

	projects := &fakeProjectStore{projects: store.projects}
	w.svc = NewService(store, projects, w.calendar, w.escrow)
	return w, projectID, proposalIDs
}

func TestAcceptAssignsFreelancerAndRejectsSiblings(t *testing.T) {
	deadline := time.Now().Add(14 * 24 * time.Hour)
	w, projectID, ids := newAcceptWorld(&deadline)

	result, err := w.svc.Accept(ids[0])
	require.NoError(t, err)

	assert.Equal(t, models.ProposalStatusAccepted, w.store.proposals[ids[0]].Status)
	assert.Equal(t, models.ProposalStatusRejected, w.store.proposals[ids[1]].Status)
	assert.Equal(t, models.ProposalStatusRejected, w.store.proposals[ids[2]].Status)

	project := w.store.projects[projectID]
	assert.Equal(t, models.ProjectStatusInProgress, project.Status)
	require.NotNil(t, project.FreelancerID)
	assert.Equal(t, w.store.proposals[ids[0]].FreelancerID, *project.FreelancerID)

	assert.True(t, result.CalendarSync)
	assert.Len(t, w.calendar.events, 1)
	assert.Equal(t, 1, w.escrow.created)
}

func TestAcceptCalendarFailureDoesNotFailAcceptance(t *testing.T) {
	deadline := time.Now().Add(7 * 24 * time.Hour)
	w, _, ids := newAcceptWorld(&deadline)
	w.calendar.fail = true

	result, err := w.svc.Accept(ids[0])
	require.NoError(t, err)

	assert.False(t, result.CalendarSync)
	assert.Equal(t, models.ProposalStatusAccepted, w.store.proposals[ids[0]].Status)
}

func TestAcceptWithoutDeadlineSkipsCalendar(t *testing.T) {
	w, _, ids := newAcceptWorld(nil)

	result, err := w.svc.Accept(ids[0])
	require.NoError(t, err)

	assert.False(t, result.CalendarSync)
	assert.Empty(t, w.calendar.events)
}

func TestAcceptEscrowPreEntryFailureIsSwallowed(t *testing.T) {
	w, _, ids := newAcceptWorld(nil)
	w.escrow.fail = true

	_, err := w.svc.Accept(ids[0])
	assert.NoError(t, err)
}

func TestAcceptUnknownProposal(t *testing.T) {
	w, _, _ := newAcceptWorld(nil)

	_, err := w.svc.Accept(uuid.New())
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestRejectRequiresProjectClient(t *testing.T) {
	w, _, ids := newAcceptWorld(nil)

	_, err := w.svc.Reject(ids[0], uuid.New())
	assert.ErrorIs(t, err, ErrNotProjectClient)
	assert.Equal(t, models.ProposalStatusPending, w.store.proposals[ids[0]].Status)
}

func TestRejectByClient(t *testing.T) {
	w, _, ids := newAcceptWorld(nil)

	proposal, err := w.svc.Reject(ids[0], w.clientID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, proposal.Status)
	assert.Equal(t, models.ProposalStatusRejected, w.store.proposals[ids[0]].Status)
}

func TestCreateRequiresOpenProject(t *testing.T) {
	w, projectID, _ := newAcceptWorld(nil)
	w.store.projects[projectID].Status = models.ProjectStatusInProgress

	_, err := w.svc.Create(uuid.New(), CreateInput{
		ProjectID:      projectID,
		ProposedBudget: decimal.RequireFromString("100.00"),
	})
	assert.ErrorIs(t, err, ErrProjectNotOpen)
}

func TestCreatePendingProposal(t *testing.T) {
	w, projectID, _ := newAcceptWorld(nil)
	freelancerID := uuid.New()

	proposal, err := w.svc.Create(freelancerID, CreateInput{
		ProjectID:      projectID,
		ProposedBudget: decimal.RequireFromString("300.00"),
		DeliveryTime:   10,
		ProposalText:   "I can do this",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	assert.Equal(t, freelancerID, proposal.FreelancerID)
}
