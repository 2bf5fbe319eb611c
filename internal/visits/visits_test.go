package visits

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

func scheduleReq(caregiverID string, start time.Time) *ScheduleRequest {
	return &ScheduleRequest{
		RequestID:   "req-1",
		PatientID:   "p1",
		CaregiverID: caregiverID,
		StartsAt:    start,
		EndsAt:      start.Add(2 * time.Hour),
	}
}

func TestScheduleValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Schedule(ctx, &ScheduleRequest{PatientID: "p1", CaregiverID: "c1"})
	assert.ErrorIs(t, err, ErrMissingFields)

	now := time.Now()
	_, err = repo.Schedule(ctx, &ScheduleRequest{
		RequestID:   "r1",
		PatientID:   "p1",
		CaregiverID: "c1",
		StartsAt:    now,
		EndsAt:      now.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestListByCaregiverOrdersByStart(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	_, err := repo.Schedule(ctx, scheduleReq("c1", base.Add(4*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Schedule(ctx, scheduleReq("c1", base))
	require.NoError(t, err)
	_, err = repo.Schedule(ctx, scheduleReq("c2", base.Add(time.Hour)))
	require.NoError(t, err)

	list, err := repo.ListByCaregiver(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].StartsAt.Before(list[1].StartsAt))
}

func TestScheduleVisitHandler(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(scheduleReq("c1", start))
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ScheduleVisit(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var v Visit
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	assert.Equal(t, VisitScheduled, v.Status)
	assert.Equal(t, start, v.StartsAt)
}

func TestScheduleVisitHandlerRejectsInvertedWindow(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	reqBody := scheduleReq("c1", start)
	reqBody.EndsAt = start.Add(-time.Hour)

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ScheduleVisit(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetStatusUnknownVisit(t *testing.T) {
	repo := NewInMemoryRepository()
	err := repo.SetStatus(context.Background(), "missing", VisitCompleted)
	assert.ErrorIs(t, err, ErrVisitNotFound)
}
