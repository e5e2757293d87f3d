package models

// BuyerFilter narrows a list or export query. Zero-valued fields impose no
// constraint; set fields compose with logical AND. Search matches
// case-insensitively as a substring of fullName, phone or email.
type BuyerFilter struct {
	City         City
	PropertyType PropertyType
	Status       Status
	Timeline     Timeline
	Search       string
}

// SortField is the closed set of sortable buyer columns.
type SortField string

// SortField values.
const (
	SortFullName  SortField = "fullName"
	SortUpdatedAt SortField = "updatedAt"
	SortCreatedAt SortField = "createdAt"
)

// ParseSortField maps a query-string value to a sortable column.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortFullName, SortUpdatedAt, SortCreatedAt:
		return SortField(s), true
	}

	return "", false
}

// BuyerSort is a list ordering. The zero value is not meaningful; use
// DefaultSort for the canonical updatedAt-descending ordering.
type BuyerSort struct {
	Field      SortField
	Descending bool
}

// DefaultSort returns the default ordering: most recently updated first.
func DefaultSort() BuyerSort {
	return BuyerSort{Field: SortUpdatedAt, Descending: true}
}
