package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"outreachly/models"
	"outreachly/smartlead"
	"outreachly/store"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
	due    []models.Enrollment
	dueErr error

	engagements    map[uint][]models.Engagement
	engagementsErr error

	appended  []models.Engagement
	appendErr error

	callTasks   []models.CallTask
	callTaskErr error

	advanced   []advanceCall
	advanceErr error

	completed   []completeCall
	completeErr error

	paused []uint
	scores map[uint]int

	creds    map[uint]*models.SmartleadCredentials
	credsErr error
}

type advanceCall struct {
	EnrollmentID uint
	Step         int
	DueAt        time.Time
}

type completeCall struct {
	EnrollmentID uint
	At           time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		engagements: make(map[uint][]models.Engagement),
		scores:      make(map[uint]int),
		creds: map[uint]*models.SmartleadCredentials{
			1: {APIKey: "sk-test", EmailAccountID: "acct-1"},
		},
	}
}

func (f *fakeStore) DueEnrollments(ctx context.Context, now time.Time) ([]models.Enrollment, error) {
	return f.due, f.dueErr
}

func (f *fakeStore) AdvanceEnrollment(ctx context.Context, enrollmentID uint, step int, dueAt time.Time) error {
	if f.advanceErr != nil {
		return f.advanceErr
	}
	f.advanced = append(f.advanced, advanceCall{enrollmentID, step, dueAt})
	return nil
}

func (f *fakeStore) CompleteEnrollment(ctx context.Context, enrollmentID uint, at time.Time) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, completeCall{enrollmentID, at})
	return nil
}

func (f *fakeStore) PauseEnrollment(ctx context.Context, enrollmentID uint) error {
	f.paused = append(f.paused, enrollmentID)
	return nil
}

func (f *fakeStore) AppendEngagement(ctx context.Context, engagement *models.Engagement) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, *engagement)
	return nil
}

func (f *fakeStore) EnrollmentEngagements(ctx context.Context, enrollmentID uint, stepNumber int) ([]models.Engagement, error) {
	if f.engagementsErr != nil {
		return nil, f.engagementsErr
	}
	return models.FilterEngagementsByStep(f.engagements[enrollmentID], stepNumber), nil
}

func (f *fakeStore) CreateCallTask(ctx context.Context, task *models.CallTask) error {
	if f.callTaskErr != nil {
		return f.callTaskErr
	}
	f.callTasks = append(f.callTasks, *task)
	return nil
}

func (f *fakeStore) AddContactScore(ctx context.Context, contactID uint, delta int) error {
	f.scores[contactID] += delta
	return nil
}

func (f *fakeStore) UserCredentials(ctx context.Context, userID uint) (*models.SmartleadCredentials, error) {
	if f.credsErr != nil {
		return nil, f.credsErr
	}
	creds, ok := f.creds[userID]
	if !ok {
		return nil, store.ErrCredentialsNotFound
	}
	return creds, nil
}

type addLeadCall struct {
	APIKey     string
	CampaignID string
	Lead       smartlead.Lead
}

// fakeProvider records lead registrations.
type fakeProvider struct {
	apiKey string
	parent *fakeProviderFactory
}

type fakeProviderFactory struct {
	leadID string
	err    error
	calls  []addLeadCall
}

func (f *fakeProviderFactory) factory(apiKey string) Provider {
	return &fakeProvider{apiKey: apiKey, parent: f}
}

func (p *fakeProvider) AddLeadToCampaign(ctx context.Context, campaignID string, lead smartlead.Lead) (string, error) {
	p.parent.calls = append(p.parent.calls, addLeadCall{p.apiKey, campaignID, lead})
	return p.parent.leadID, p.parent.err
}

// heldLocker refuses every claim.
type heldLocker struct{}

func (heldLocker) Acquire(context.Context, uint) (func(), bool, error) {
	return func() {}, false, nil
}

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestExecutor(st *fakeStore, pf *fakeProviderFactory) *Executor {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	e := New(st, pf.factory, nil, logrus.NewEntry(logger))
	e.now = func() time.Time { return fixedNow }
	return e
}

func emailStep(number, delayDays, delayHours int) models.SequenceStep {
	return models.NewEmailStep(number, models.EmailPayload{
		Subject: "Quick question, {{firstName}}",
		Body:    "Hi {{firstName}}, saw {{company}} is growing.",
	}, delayDays, delayHours)
}

func testEnrollment(currentStep int, steps []models.SequenceStep) models.Enrollment {
	return models.Enrollment{
		Model:       gorm.Model{ID: 42},
		ContactID:   7,
		SequenceID:  3,
		CurrentStep: currentStep,
		Status:      models.EnrollmentStatusActive,
		Contact: models.Contact{
			Model:     gorm.Model{ID: 7},
			Email:     "jane@acme.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Company:   "Acme",
		},
		Sequence: models.Sequence{
			Model:               gorm.Model{ID: 3},
			UserID:              1,
			Name:                "Outbound Q1",
			SmartleadCampaignID: "cmp-900",
			Steps:               steps,
		},
	}
}
