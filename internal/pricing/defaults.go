package pricing

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// DefaultForest returns the built-in starter catalog used when no persisted
// catalog exists yet (or the persisted one cannot be read). Admins typically
// edit this into shape on first run.
func DefaultForest() []Item {
	return []Item{
		{
			ID:          "svc-home-care",
			Name:        "Home Care Service",
			Description: strPtr("Non-medical in-home support with daily living activities."),
			Type:        TypeService,
			BasePrice:   150,
			IsRequired:  true,
			SortOrder:   0,
			Children: []Item{
				{
					ID:          "feat-daily-checkins",
					Name:        "Daily Check-ins",
					Description: strPtr("A caregiver checks in once per day."),
					Type:        TypeFeature,
					BasePrice:   0,
					IsRequired:  true,
					ParentID:    strPtr("svc-home-care"),
					SortOrder:   0,
					Children: []Item{
						{
							ID:        "addon-vitals",
							Name:      "Vital signs monitoring",
							Type:      TypeAddon,
							BasePrice: 15,
							ParentID:  strPtr("feat-daily-checkins"),
							SortOrder: 0,
							Children:  []Item{},
						},
						{
							ID:        "addon-med-reminders",
							Name:      "Medication reminders",
							Type:      TypeAddon,
							BasePrice: 10,
							ParentID:  strPtr("feat-daily-checkins"),
							SortOrder: 1,
							Children:  []Item{},
						},
					},
				},
				{
					ID:          "feat-meal-prep",
					Name:        "Meal Preparation",
					Description: strPtr("Planning and preparation of daily meals."),
					Type:        TypeFeature,
					BasePrice:   25,
					ParentID:    strPtr("svc-home-care"),
					SortOrder:   1,
					Children:    []Item{},
				},
			},
		},
		{
			ID:          "svc-skilled-nursing",
			Name:        "Skilled Nursing",
			Description: strPtr("Licensed nursing care delivered at home."),
			Type:        TypeService,
			BasePrice:   320,
			IsRequired:  true,
			SortOrder:   1,
			Children: []Item{
				{
					ID:          "feat-wound-care",
					Name:        "Wound Care",
					Type:        TypeFeature,
					BasePrice:   45,
					IsRequired:  true,
					ParentID:    strPtr("svc-skilled-nursing"),
					SortOrder:   0,
					Children:    []Item{},
				},
				{
					ID:          "feat-iv-therapy",
					Name:        "IV Therapy",
					Type:        TypeFeature,
					BasePrice:   80,
					IsRecurring: boolPtr(false),
					ParentID:    strPtr("svc-skilled-nursing"),
					SortOrder:   1,
					Children:    []Item{},
				},
			},
		},
	}
}
