package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Home Care Service", "home-care-service"},
		{"Skilled  Nursing", "skilled-nursing"},
		{" Respite Care ", "respite-care"},
		{"IV Therapy", "iv-therapy"},
		{"single", "single"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}

func TestResolveSlugRoundTrip(t *testing.T) {
	forest := DefaultForest()
	for i := range forest {
		slug := Slugify(forest[i].Name)
		got := ResolveSlug(forest, slug)
		require.NotNil(t, got, "slug %q should resolve", slug)
		assert.Equal(t, forest[i].ID, got.ID)
	}
}

func TestResolveSlugTitleCaseMatch(t *testing.T) {
	forest := []Item{
		{ID: "s1", Name: "Fie Ne Fie", Type: TypeService},
	}
	got := ResolveSlug(forest, "fie-ne-fie")
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
}

func TestResolveSlugCollapsedWhitespaceMatch(t *testing.T) {
	// Name with a double space slugifies cleanly, but its title-cased slug
	// reconstruction does not equal the name. The second matching rule
	// catches it.
	forest := []Item{
		{ID: "s1", Name: "Home  Care Service", Type: TypeService},
	}
	got := ResolveSlug(forest, "home-care-service")
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
}

func TestResolveSlugSkipsNonServices(t *testing.T) {
	forest := []Item{
		{ID: "f1", Name: "Wound Care", Type: TypeFeature},
		{ID: "s1", Name: "Wound Care", Type: TypeService},
	}
	got := ResolveSlug(forest, "wound-care")
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID, "feature with the same name must not shadow the service")
}

func TestResolveSlugMiss(t *testing.T) {
	forest := DefaultForest()
	assert.Nil(t, ResolveSlug(forest, "does-not-exist"))
	assert.Nil(t, ResolveSlug(nil, "anything"))
}
