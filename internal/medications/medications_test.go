package medications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

func TestMedicationActiveWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	m := &Medication{StartDate: &start, EndDate: &end}
	assert.False(t, m.Active(start.Add(-time.Hour)))
	assert.True(t, m.Active(start.Add(time.Hour)))
	assert.False(t, m.Active(end.Add(time.Hour)))

	open := &Medication{}
	assert.True(t, open.Active(time.Now()))
}

func TestCreateMedicationHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(CreateMedicationRequest{
		PatientID: "p1",
		Name:      "Lisinopril",
		Dosage:    "10mg",
		Frequency: "daily",
	})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateMedication(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var m Medication
	require.NoError(t, json.NewDecoder(w.Body).Decode(&m))
	assert.Equal(t, "Lisinopril", m.Name)
}

func TestCreateMedicationValidation(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateMedicationRequest{PatientID: "p1"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateMedication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByPatientScopes(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &CreateMedicationRequest{PatientID: "p1", Name: "A"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &CreateMedicationRequest{PatientID: "p2", Name: "B"})
	require.NoError(t, err)

	list, err := repo.ListByPatient(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Name)
}

func TestDiscontinueDefaultsToNow(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())
	ctx := context.Background()

	m, err := repo.Create(ctx, &CreateMedicationRequest{PatientID: "p1", Name: "A"})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/{medicationID}/discontinue", handler.Discontinue)

	req := httptest.NewRequest(http.MethodPost, "/"+m.ID+"/discontinue", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	list, err := repo.ListByPatient(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, list[0].EndDate)
	assert.WithinDuration(t, time.Now().UTC(), *list[0].EndDate, 5*time.Second)
}
