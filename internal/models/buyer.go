// Package models defines data types for the buyer-lead service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Buyer represents a real-estate buyer lead.
//
// UpdatedAt doubles as the optimistic-concurrency version token: clients
// echo it back on update, and a stale value is rejected with
// ErrVersionConflict.
type Buyer struct {
	ID           uuid.UUID    `json:"id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone"`
	City         City         `json:"city"`
	PropertyType PropertyType `json:"propertyType"`
	BHK          BHK          `json:"bhk,omitempty"`
	Purpose      Purpose      `json:"purpose"`
	BudgetMin    *int64       `json:"budgetMin,omitempty"`
	BudgetMax    *int64       `json:"budgetMax,omitempty"`
	Timeline     Timeline     `json:"timeline"`
	Source       Source       `json:"source"`
	Status       Status       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ApplyUpdate returns a copy of b with every field present in req merged in.
// The version token and identity fields are left untouched; the store stamps
// a fresh updated_at when the merged record is persisted.
func (b Buyer) ApplyUpdate(req UpdateBuyerRequest) Buyer {
	merged := b

	if req.FullName != nil {
		merged.FullName = *req.FullName
	}

	if req.Email != nil {
		merged.Email = *req.Email
	}

	if req.Phone != nil {
		merged.Phone = *req.Phone
	}

	if req.City != nil {
		merged.City = *req.City
	}

	if req.PropertyType != nil {
		merged.PropertyType = *req.PropertyType
	}

	if req.BHK != nil {
		merged.BHK = *req.BHK
	}

	if req.Purpose != nil {
		merged.Purpose = *req.Purpose
	}

	if req.BudgetMin != nil {
		merged.BudgetMin = req.BudgetMin
	}

	if req.BudgetMax != nil {
		merged.BudgetMax = req.BudgetMax
	}

	if req.Timeline != nil {
		merged.Timeline = *req.Timeline
	}

	if req.Source != nil {
		merged.Source = *req.Source
	}

	if req.Status != nil {
		merged.Status = *req.Status
	}

	if req.Notes != nil {
		merged.Notes = *req.Notes
	}

	if req.Tags != nil {
		merged.Tags = append([]string(nil), *req.Tags...)
	}

	return merged
}

// ValidateInvariants checks the cross-field invariants that must hold on a
// fully merged record: the bedroom-count category is present iff the
// property type is residential, and budgetMax is at least budgetMin when
// both bounds are set. Returns nil when the record is consistent.
func (b *Buyer) ValidateInvariants() *ValidationError {
	var fields []FieldError

	if b.PropertyType.RequiresBHK() && b.BHK == "" {
		fields = append(fields, FieldError{Field: "bhk", Message: msgBHKRequired})
	} else if !b.PropertyType.RequiresBHK() && b.BHK != "" {
		fields = append(fields, FieldError{Field: "bhk", Message: msgBHKNotApplicable})
	}

	if b.BudgetMin != nil && b.BudgetMax != nil && *b.BudgetMax < *b.BudgetMin {
		fields = append(fields, FieldError{Field: "budgetMax", Message: msgBudgetRange})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// Actor is an authenticated user of the service. A buyer record is
// exclusively owned (for write/delete purposes) by the actor who created it.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
