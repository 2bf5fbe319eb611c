package pricing

import "strings"

// Slugify derives the URL slug for a service name: lower-case, whitespace
// runs collapsed to single hyphens.
func Slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// titleFromSlug reverses a slug into a best-effort display name:
// "home-care-service" -> "Home Care Service".
func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// ResolveSlug finds the service root matching a URL slug. A root matches if
// its name case-insensitively equals the title-cased slug, or if its own
// slugified name equals the raw slug. Linear scan; catalogs hold tens of
// entries at most.
func ResolveSlug(items []Item, slug string) *Item {
	candidate := titleFromSlug(slug)
	for i := range items {
		it := &items[i]
		if it.Type.Canonical() != TypeService {
			continue
		}
		if strings.EqualFold(it.Name, candidate) {
			return it
		}
		if Slugify(it.Name) == slug {
			return it
		}
	}
	return nil
}
