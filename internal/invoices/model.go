package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single billed item on an invoice.
type Line struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice covers a billing period of a service request.
type Invoice struct {
	ID         string          `json:"id"`
	RequestID  string          `json:"request_id"`
	PatientID  string          `json:"patient_id"`
	PeriodDays int             `json:"period_days"`
	Lines      []Line          `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	IssuedAt   time.Time       `json:"issued_at"`
}
