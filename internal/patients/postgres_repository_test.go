package patients

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO patients").
		WithArgs(pgxmock.AnyArg(), "Edna Mae", "", "+1555", "", "", CareLevelPersonal, "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p, err := repo.Create(context.Background(), &CreatePatientRequest{
		Name:      "Edna Mae",
		Phone:     "+1555",
		CareLevel: CareLevelPersonal,
	})
	require.NoError(t, err)
	assert.Equal(t, "Edna Mae", p.Name)
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM patients WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "address", "date_of_birth",
			"care_level", "emergency_contact", "emergency_phone", "notes",
			"created_at", "updated_at",
		}))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPatientNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE patients").
		WithArgs("p1", "Edna Mae", "", "", "", "", CareLevelSkilled, "", "", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), &Patient{ID: "p1", Name: "Edna Mae", CareLevel: CareLevelSkilled})
	assert.ErrorIs(t, err, ErrPatientNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
