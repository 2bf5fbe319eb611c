package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The concrete scenario the customer page is built around: one service, one
// feature, two add-ons.
func homeCareService() Item {
	return Item{
		ID:        "svc-1",
		Name:      "Home Care Service",
		Type:      TypeService,
		BasePrice: 150,
		Children: []Item{
			{
				ID:        "feat-1",
				Name:      "Daily Check-ins",
				Type:      TypeFeature,
				BasePrice: 0,
				ParentID:  strPtr("svc-1"),
				Children: []Item{
					{ID: "addon-1", Name: "Vital signs monitoring", Type: TypeAddon, BasePrice: 15, ParentID: strPtr("feat-1")},
					{ID: "addon-2", Name: "Medication reminders", Type: TypeAddon, BasePrice: 10, ParentID: strPtr("feat-1")},
				},
			},
		},
	}
}

func TestTransformServiceScenario(t *testing.T) {
	svc := homeCareService()
	view := TransformService(&svc)

	assert.Equal(t, "svc-1", view.ID)
	assert.Equal(t, "home-care-service", view.Slug)
	assert.Equal(t, ServiceMetadata{
		TotalPlans:    1,
		TotalFeatures: 1,
		TotalAddons:   2,
		StartingPrice: 150,
	}, view.Metadata)

	require.Len(t, view.Plans, 1)
	plan := view.Plans[0]
	assert.Equal(t, PlanPricing{Daily: 150, Monthly: 4500, Hourly: 6.25}, plan.Pricing)

	require.Len(t, plan.Features, 1)
	feat := plan.Features[0]
	assert.Equal(t, "Daily Check-ins", feat.Name)
	assert.True(t, feat.IsRecurring, "unset isRecurring defaults to true")
	require.Len(t, feat.Addons, 2)
	assert.Equal(t, 15.0, feat.Addons[0].Price)
	assert.Equal(t, 10.0, feat.Addons[1].Price)
}

func TestTransformDerivedPricingConsistency(t *testing.T) {
	for _, base := range []float64{0, 1, 99.99, 150, 320} {
		svc := Item{ID: "s", Name: "S", Type: TypeService, BasePrice: base}
		view := TransformService(&svc)
		p := view.Plans[0].Pricing
		assert.InDelta(t, p.Daily*30, p.Monthly, 1e-9)
		assert.InDelta(t, p.Daily/24, p.Hourly, 1e-9)
		assert.False(t, math.IsNaN(p.Hourly))
	}
}

func TestTransformZeroFeatures(t *testing.T) {
	svc := Item{ID: "s", Name: "Respite Care", Type: TypeService, BasePrice: 90}
	view := TransformService(&svc)

	require.Len(t, view.Plans, 1)
	assert.NotNil(t, view.Plans[0].Features)
	assert.Empty(t, view.Plans[0].Features)
	assert.Equal(t, 0, view.Metadata.TotalFeatures)
	assert.Equal(t, 0, view.Metadata.TotalAddons)
}

func TestTransformMissingBasePriceIsZero(t *testing.T) {
	svc := Item{
		ID:   "s",
		Name: "S",
		Type: TypeService,
		Children: []Item{
			{ID: "f", Name: "F", Type: TypeFeature, Children: []Item{
				{ID: "a", Name: "A", Type: TypeAddon},
			}},
		},
	}
	view := TransformService(&svc)

	feat := view.Plans[0].Features[0]
	assert.Equal(t, 0.0, feat.BasePrice)
	assert.Equal(t, 0.0, feat.Addons[0].Price)
	assert.Equal(t, 0.0, view.Metadata.StartingPrice)
}

func TestTransformMissingDescriptionStaysAbsent(t *testing.T) {
	svc := Item{ID: "s", Name: "S", Type: TypeService}
	view := TransformService(&svc)
	assert.Nil(t, view.Description)
}

func TestTransformSortsFeaturesBySortOrder(t *testing.T) {
	svc := Item{
		ID:   "s",
		Name: "S",
		Type: TypeService,
		Children: []Item{
			{ID: "f2", Name: "Second", Type: TypeFeature, SortOrder: 1},
			{ID: "f1", Name: "First", Type: TypeFeature, SortOrder: 0},
			{ID: "f3", Name: "Third", Type: TypeFeature, SortOrder: 2},
		},
	}
	view := TransformService(&svc)

	feats := view.Plans[0].Features
	require.Len(t, feats, 3)
	assert.Equal(t, "First", feats[0].Name)
	assert.Equal(t, "Second", feats[1].Name)
	assert.Equal(t, "Third", feats[2].Name)
}

func TestTransformLegacyPlanNodesCountAsFeatures(t *testing.T) {
	svc := Item{
		ID:   "s",
		Name: "S",
		Type: TypeService,
		Children: []Item{
			{ID: "p", Name: "Legacy Plan", Type: TypePlan, BasePrice: 20},
		},
	}
	view := TransformService(&svc)

	require.Len(t, view.Plans[0].Features, 1)
	assert.Equal(t, "Legacy Plan", view.Plans[0].Features[0].Name)
	assert.Equal(t, 1, view.Metadata.TotalFeatures)
}

func TestTransformAggregationCounts(t *testing.T) {
	// 3 features with 2, 0, 3 add-ons respectively.
	addons := func(featID string, n int) []Item {
		out := make([]Item, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Item{ID: featID + "-a", Name: "A", Type: TypeAddon})
		}
		return out
	}
	svc := Item{
		ID:   "s",
		Name: "S",
		Type: TypeService,
		Children: []Item{
			{ID: "f1", Name: "F1", Type: TypeFeature, Children: addons("f1", 2)},
			{ID: "f2", Name: "F2", Type: TypeFeature, Children: addons("f2", 0)},
			{ID: "f3", Name: "F3", Type: TypeFeature, Children: addons("f3", 3)},
		},
	}
	view := TransformService(&svc)

	assert.Equal(t, 3, view.Metadata.TotalFeatures)
	assert.Equal(t, 5, view.Metadata.TotalAddons)
}
