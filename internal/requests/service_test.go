package requests

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/homecare-platform/internal/caregivers"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// recordingSender captures fan-out emails.
type recordingSender struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (s *recordingSender) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, toEmail)
	return nil
}

type fixture struct {
	svc        *Service
	repo       *InMemoryRepository
	patients   *patients.InMemoryRepository
	caregivers *caregivers.InMemoryRepository
	sender     *recordingSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:       NewInMemoryRepository(),
		patients:   patients.NewInMemoryRepository(),
		caregivers: caregivers.NewInMemoryRepository(),
		sender:     &recordingSender{},
	}
	catalog := pricing.NewFileStore(filepath.Join(t.TempDir(), "pricing.json"), logging.Default())
	f.svc = NewService(f.repo, catalog, f.caregivers, f.patients, f.sender, logging.Default())
	return f
}

func (f *fixture) seedPatient(t *testing.T) *patients.Patient {
	t.Helper()
	p, err := f.patients.Create(context.Background(), &patients.CreatePatientRequest{
		Name:  "Edna Mae",
		Email: "edna@example.com",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) seedCaregiver(t *testing.T) *caregivers.Caregiver {
	t.Helper()
	c, err := f.caregivers.Create(context.Background(), &caregivers.CreateCaregiverRequest{
		Name:  "Rosa Alvarez",
		Email: "rosa@example.com",
	})
	require.NoError(t, err)
	return c
}

func TestFileRequest_Success(t *testing.T) {
	f := newFixture(t)
	p := f.seedPatient(t)

	sr, err := f.svc.File(context.Background(), &CreateRequest{
		PatientID:   p.ID,
		ServiceSlug: "home-care-service",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, sr.Status)
	assert.Nil(t, sr.CaregiverID)
}

func TestFileRequest_UnknownService(t *testing.T) {
	f := newFixture(t)
	p := f.seedPatient(t)

	_, err := f.svc.File(context.Background(), &CreateRequest{
		PatientID:   p.ID,
		ServiceSlug: "does-not-exist",
	})
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestFileRequest_UnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.File(context.Background(), &CreateRequest{
		PatientID:   "ghost",
		ServiceSlug: "home-care-service",
	})
	assert.ErrorIs(t, err, patients.ErrPatientNotFound)
}

func TestAssign_NotifiesBothParties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPatient(t)
	cg := f.seedCaregiver(t)

	sr, err := f.svc.File(ctx, &CreateRequest{PatientID: p.ID, ServiceSlug: "home-care-service"})
	require.NoError(t, err)

	assigned, err := f.svc.Assign(ctx, sr.ID, cg.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.CaregiverID)
	assert.Equal(t, cg.ID, *assigned.CaregiverID)

	assert.Equal(t, []string{"rosa@example.com", "edna@example.com"}, f.sender.sent)
}

func TestAssign_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPatient(t)
	cg := f.seedCaregiver(t)
	f.sender.fail = true

	sr, err := f.svc.File(ctx, &CreateRequest{PatientID: p.ID, ServiceSlug: "home-care-service"})
	require.NoError(t, err)

	assigned, err := f.svc.Assign(ctx, sr.ID, cg.ID)
	require.NoError(t, err, "assignment must survive a dead mail provider")
	assert.Equal(t, StatusAssigned, assigned.Status)
}

func TestAssign_UnavailableCaregiver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPatient(t)
	cg := f.seedCaregiver(t)
	require.NoError(t, f.caregivers.SetAvailability(ctx, cg.ID, false))

	sr, err := f.svc.File(ctx, &CreateRequest{PatientID: p.ID, ServiceSlug: "home-care-service"})
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, sr.ID, cg.ID)
	assert.ErrorIs(t, err, ErrCaregiverUnavailable)
	assert.Empty(t, f.sender.sent)
}

func TestTransitionLegality(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransition_IllegalJumpRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPatient(t)

	sr, err := f.svc.File(ctx, &CreateRequest{PatientID: p.ID, ServiceSlug: "home-care-service"})
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, sr.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}
