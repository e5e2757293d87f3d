package service

import (
	"slices"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// ComputeDiff returns the field-level changes a partial update would apply to
// an existing record. A field appears in the result iff it is present in the
// request and its value differs from the existing one; fields absent from
// the request are never included. An empty result means the update is a
// no-op and no history entry should be written.
func ComputeDiff(existing models.Buyer, req models.UpdateBuyerRequest) map[string]models.FieldChange {
	changes := map[string]models.FieldChange{}

	record := func(field string, old, new any, changed bool) {
		if changed {
			changes[field] = models.FieldChange{Old: old, New: new}
		}
	}

	if req.FullName != nil {
		record("fullName", existing.FullName, *req.FullName, *req.FullName != existing.FullName)
	}

	if req.Email != nil {
		record("email", existing.Email, *req.Email, *req.Email != existing.Email)
	}

	if req.Phone != nil {
		record("phone", existing.Phone, *req.Phone, *req.Phone != existing.Phone)
	}

	if req.City != nil {
		record("city", existing.City, *req.City, *req.City != existing.City)
	}

	if req.PropertyType != nil {
		record("propertyType", existing.PropertyType, *req.PropertyType, *req.PropertyType != existing.PropertyType)
	}

	if req.BHK != nil {
		record("bhk", existing.BHK, *req.BHK, *req.BHK != existing.BHK)
	}

	if req.Purpose != nil {
		record("purpose", existing.Purpose, *req.Purpose, *req.Purpose != existing.Purpose)
	}

	if req.BudgetMin != nil {
		record("budgetMin", budgetValue(existing.BudgetMin), *req.BudgetMin,
			existing.BudgetMin == nil || *existing.BudgetMin != *req.BudgetMin)
	}

	if req.BudgetMax != nil {
		record("budgetMax", budgetValue(existing.BudgetMax), *req.BudgetMax,
			existing.BudgetMax == nil || *existing.BudgetMax != *req.BudgetMax)
	}

	if req.Timeline != nil {
		record("timeline", existing.Timeline, *req.Timeline, *req.Timeline != existing.Timeline)
	}

	if req.Source != nil {
		record("source", existing.Source, *req.Source, *req.Source != existing.Source)
	}

	if req.Status != nil {
		record("status", existing.Status, *req.Status, *req.Status != existing.Status)
	}

	if req.Notes != nil {
		record("notes", existing.Notes, *req.Notes, *req.Notes != existing.Notes)
	}

	if req.Tags != nil {
		// The tag sequence is compared by value, never by reference.
		record("tags", existing.Tags, *req.Tags, !slices.Equal(existing.Tags, *req.Tags))
	}

	return changes
}

// budgetValue unwraps an optional budget bound for the diff payload,
// preserving null for an unset bound.
func budgetValue(v *int64) any {
	if v == nil {
		return nil
	}

	return *v
}
