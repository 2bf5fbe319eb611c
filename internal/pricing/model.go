// Package pricing implements the service catalog: a three-level tree of
// priced offerings (service -> feature -> add-on) managed by admins and
// projected into a customer-facing view model.
package pricing

import (
	"time"

	"github.com/google/uuid"
)

// ItemType classifies a node in the pricing tree.
type ItemType string

const (
	TypeService ItemType = "service"
	TypeFeature ItemType = "feature"
	TypeAddon   ItemType = "addon"

	// TypePlan is a legacy level from the old multi-plan catalog. It is
	// treated everywhere as an alias of TypeFeature.
	TypePlan ItemType = "plan"
)

// Canonical maps legacy types onto the three canonical levels.
func (t ItemType) Canonical() ItemType {
	if t == TypePlan {
		return TypeFeature
	}
	return t
}

// Item is one node of the pricing tree. Services are roots, features hang
// off services, add-ons hang off features.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Type        ItemType `json:"type"`
	// BasePrice is a recurring daily base rate for services and an
	// incremental charge for features and add-ons.
	BasePrice   float64    `json:"basePrice"`
	IsRequired  bool       `json:"isRequired"`
	IsRecurring *bool      `json:"isRecurring,omitempty"`
	ParentID    *string    `json:"parentId,omitempty"`
	SortOrder   int        `json:"sortOrder"`
	Children    []Item     `json:"children"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Recurring reports whether the charge repeats per billing period.
// Nodes that never specified the flag default to recurring.
func (it *Item) Recurring() bool {
	return it.IsRecurring == nil || *it.IsRecurring
}

// stamp walks the whole subtree rooted at each item, parent before children,
// refreshing updatedAt and backfilling createdAt. Iterative on purpose: depth
// is bounded in practice but the walk should not care.
func stamp(items []Item, now time.Time) {
	type frame struct{ item *Item }
	stack := make([]frame, 0, len(items))
	for i := range items {
		stack = append(stack, frame{&items[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.item.UpdatedAt = &now
		if f.item.CreatedAt == nil {
			f.item.CreatedAt = &now
		}
		for i := range f.item.Children {
			stack = append(stack, frame{&f.item.Children[i]})
		}
	}
}

// CloneItem deep-copies a subtree, assigning fresh ids and rewiring child
// parent references. Timestamps are cleared so the next save stamps the copy
// as newly created.
func CloneItem(src Item) Item {
	dst := src
	dst.ID = uuid.NewString()
	dst.CreatedAt = nil
	dst.UpdatedAt = nil
	if src.ParentID != nil {
		parent := *src.ParentID
		dst.ParentID = &parent
	}
	if src.Description != nil {
		desc := *src.Description
		dst.Description = &desc
	}
	if src.IsRecurring != nil {
		rec := *src.IsRecurring
		dst.IsRecurring = &rec
	}
	dst.Children = make([]Item, 0, len(src.Children))
	for _, child := range src.Children {
		c := CloneItem(child)
		parentID := dst.ID
		c.ParentID = &parentID
		dst.Children = append(dst.Children, c)
	}
	return dst
}

// FindItem locates a node by id anywhere in the forest. Returns nil when the
// id is unknown.
func FindItem(items []Item, id string) *Item {
	stack := make([]*Item, 0, len(items))
	for i := range items {
		stack = append(stack, &items[i])
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.ID == id {
			return it
		}
		for i := range it.Children {
			stack = append(stack, &it.Children[i])
		}
	}
	return nil
}

// RemoveItem deletes the subtree rooted at id from the forest, returning the
// pruned forest and whether anything was removed.
func RemoveItem(items []Item, id string) ([]Item, bool) {
	out := make([]Item, 0, len(items))
	removed := false
	for _, it := range items {
		if it.ID == id {
			removed = true
			continue
		}
		if !removed {
			if children, ok := RemoveItem(it.Children, id); ok {
				it.Children = children
				removed = true
			}
		}
		out = append(out, it)
	}
	return out, removed
}
