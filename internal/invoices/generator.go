// Package invoices prices a period of care for a service request against
// the pricing catalog.
package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/internal/requests"
)

var (
	// ErrInvalidPeriod is returned for a non-positive billing period.
	ErrInvalidPeriod = errors.New("period must be at least one day")

	// ErrUnknownService is returned when the request's slug no longer
	// matches a catalog service.
	ErrUnknownService = errors.New("request references an unknown service")

	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Generator prices service requests against the live catalog.
type Generator struct {
	catalog pricing.Store
	now     func() time.Time
}

// NewGenerator creates an invoice generator.
func NewGenerator(catalog pricing.Store) *Generator {
	return &Generator{catalog: catalog, now: time.Now}
}

// Generate builds an invoice for periodDays of care: the service's daily
// base rate for every day, each required feature, and every optional
// add-on the patient selected. Recurring charges multiply by the period;
// one-time charges bill once.
func (g *Generator) Generate(ctx context.Context, sr *requests.ServiceRequest, periodDays int) (*Invoice, error) {
	if periodDays < 1 {
		return nil, ErrInvalidPeriod
	}

	forest, err := g.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: load catalog: %w", err)
	}
	svc := pricing.ResolveSlug(forest, sr.ServiceSlug)
	if svc == nil {
		return nil, ErrUnknownService
	}

	selected := make(map[string]struct{}, len(sr.SelectedAddonIDs))
	for _, id := range sr.SelectedAddonIDs {
		selected[id] = struct{}{}
	}

	days := decimal.NewFromInt(int64(periodDays))
	total := decimal.Zero
	var lines []Line

	addLine := func(it *pricing.Item, desc string) {
		unit := decimal.NewFromFloat(it.BasePrice)
		qty := int64(1)
		amount := unit
		if it.Recurring() {
			qty = int64(periodDays)
			amount = unit.Mul(days)
		}
		lines = append(lines, Line{
			ItemID:      it.ID,
			Description: desc,
			UnitPrice:   unit,
			Quantity:    qty,
			Amount:      amount,
		})
		total = total.Add(amount)
	}

	addLine(svc, svc.Name+" (base rate)")

	for i := range svc.Children {
		feat := &svc.Children[i]
		if feat.Type.Canonical() != pricing.TypeFeature {
			continue
		}
		_, featureSelected := selected[feat.ID]
		if (feat.IsRequired || featureSelected) && feat.BasePrice != 0 {
			addLine(feat, feat.Name)
		}
		for j := range feat.Children {
			addon := &feat.Children[j]
			if addon.Type.Canonical() != pricing.TypeAddon {
				continue
			}
			if _, ok := selected[addon.ID]; ok || addon.IsRequired {
				addLine(addon, feat.Name+": "+addon.Name)
			}
		}
	}

	return &Invoice{
		ID:         uuid.NewString(),
		RequestID:  sr.ID,
		PatientID:  sr.PatientID,
		PeriodDays: periodDays,
		Lines:      lines,
		Total:      total,
		IssuedAt:   g.now().UTC(),
	}, nil
}
