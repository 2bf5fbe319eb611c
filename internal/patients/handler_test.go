package patients

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

func TestCreatePatient_Success(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	reqBody := CreatePatientRequest{
		Name:      "Edna Mae",
		Phone:     "+15550100200",
		CareLevel: CareLevelPersonal,
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePatient(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var p Patient
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.Name != reqBody.Name {
		t.Errorf("expected name %s, got %s", reqBody.Name, p.Name)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
}

func TestCreatePatient_MissingContact(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreatePatientRequest{Name: "Edna Mae"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePatient(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreatePatient_UnknownCareLevel(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"name":"Edna Mae","phone":"+1555","care_level":"hospital"}`))
	w := httptest.NewRecorder()

	handler.CreatePatient(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreatePatient_DefaultsCareLevel(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"name":"Edna Mae","phone":"+1555"}`))
	w := httptest.NewRecorder()

	handler.CreatePatient(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var p Patient
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.CareLevel != CareLevelCompanion {
		t.Errorf("expected default care level companion, got %s", p.CareLevel)
	}
}

func TestListPatients_FilterAndPagination(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	for i, level := range []CareLevel{CareLevelSkilled, CareLevelSkilled, CareLevelCompanion} {
		_, err := repo.Create(nil, &CreatePatientRequest{
			Name:      "Patient " + string(rune('A'+i)),
			Phone:     "+1555",
			CareLevel: level,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/?care_level=skilled&limit=10", nil)
	w := httptest.NewRecorder()
	handler.ListPatients(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListPatientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 skilled patients, got %d", resp.Count)
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	handler.GetPatient(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
