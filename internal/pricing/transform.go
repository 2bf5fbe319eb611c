package pricing

import "sort"

// CustomerAddon is the public projection of an add-on node.
type CustomerAddon struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	IsRequired  bool    `json:"isRequired"`
	IsRecurring bool    `json:"isRecurring"`
}

// CustomerFeature is the public projection of a feature node, with its
// add-ons flattened into a list.
type CustomerFeature struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   float64         `json:"basePrice"`
	IsRequired  bool            `json:"isRequired"`
	IsRecurring bool            `json:"isRecurring"`
	Addons      []CustomerAddon `json:"addons"`
}

// PlanPricing carries the per-period rates derived from a plan's daily base
// price. The conversion is a fixed linear one: monthly is 30 days, hourly is
// a 24th of a day.
type PlanPricing struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
	Hourly  float64 `json:"hourly"`
}

// CustomerPlan wraps a service's features. The current catalog collapses
// each service into exactly one plan, kept as an array for compatibility
// with the old multi-plan client.
type CustomerPlan struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	BasePrice float64           `json:"basePrice"`
	Pricing   PlanPricing       `json:"pricing"`
	Features  []CustomerFeature `json:"features"`
}

// ServiceMetadata summarizes a transformed service for list rendering.
type ServiceMetadata struct {
	TotalPlans    int     `json:"totalPlans"`
	TotalFeatures int     `json:"totalFeatures"`
	TotalAddons   int     `json:"totalAddons"`
	StartingPrice float64 `json:"startingPrice"`
}

// CustomerService is the customer-facing view of one catalog service.
type CustomerService struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description,omitempty"`
	BasePrice   float64         `json:"basePrice"`
	Plans       []CustomerPlan  `json:"plans"`
	Metadata    ServiceMetadata `json:"metadata"`
}

// TransformService projects one service-rooted admin tree into the customer
// display model: direct feature children (legacy plan nodes included) become
// CustomerFeatures ordered by sortOrder, their addon children flatten into
// per-feature lists, and the whole set wraps into a single synthetic plan
// priced off the service's own base rate.
func TransformService(svc *Item) *CustomerService {
	totalFeatures := 0
	totalAddons := 0

	children := make([]*Item, 0, len(svc.Children))
	for i := range svc.Children {
		if svc.Children[i].Type.Canonical() == TypeFeature {
			children = append(children, &svc.Children[i])
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].SortOrder < children[j].SortOrder
	})

	features := make([]CustomerFeature, 0, len(children))
	for _, feat := range children {
		cf := CustomerFeature{
			ID:          feat.ID,
			Name:        feat.Name,
			Description: feat.Description,
			BasePrice:   feat.BasePrice,
			IsRequired:  feat.IsRequired,
			IsRecurring: feat.Recurring(),
			Addons:      make([]CustomerAddon, 0, len(feat.Children)),
		}
		for i := range feat.Children {
			addon := &feat.Children[i]
			if addon.Type.Canonical() != TypeAddon {
				continue
			}
			cf.Addons = append(cf.Addons, CustomerAddon{
				ID:          addon.ID,
				Name:        addon.Name,
				Description: addon.Description,
				Price:       addon.BasePrice,
				IsRequired:  addon.IsRequired,
				IsRecurring: addon.Recurring(),
			})
			totalAddons++
		}
		features = append(features, cf)
		totalFeatures++
	}

	plan := CustomerPlan{
		ID:        svc.ID + "-plan",
		Name:      svc.Name,
		BasePrice: svc.BasePrice,
		Pricing: PlanPricing{
			Daily:   svc.BasePrice,
			Monthly: svc.BasePrice * 30,
			Hourly:  svc.BasePrice / 24,
		},
		Features: features,
	}

	return &CustomerService{
		ID:          svc.ID,
		Name:        svc.Name,
		Slug:        Slugify(svc.Name),
		Description: svc.Description,
		BasePrice:   svc.BasePrice,
		Plans:       []CustomerPlan{plan},
		Metadata: ServiceMetadata{
			TotalPlans:    1,
			TotalFeatures: totalFeatures,
			TotalAddons:   totalAddons,
			StartingPrice: svc.BasePrice,
		},
	}
}
