package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

func TestPostgresCreateInvoice(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	inv := &Invoice{
		ID:         "inv-1",
		RequestID:  "req-1",
		PatientID:  "pat-1",
		PeriodDays: 7,
		Lines: []Line{{
			ItemID:      "svc-1",
			Description: "Home Care Service (base rate)",
			UnitPrice:   decimal.NewFromInt(150),
			Quantity:    7,
			Amount:      decimal.NewFromInt(1050),
		}},
		Total:    decimal.NewFromInt(1050),
		IssuedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(inv.ID, inv.RequestID, inv.PatientID, inv.PeriodDays,
			pgxmock.AnyArg(), inv.Total, inv.IssuedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepository(mock)
	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostgresGetInvoiceNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "request_id", "patient_id", "period_days", "lines", "total", "issued_at",
		}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrInvoiceNotFound {
		t.Errorf("err = %v, want ErrInvoiceNotFound", err)
	}
}
