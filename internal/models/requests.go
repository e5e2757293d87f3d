package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CreateBuyerRequest is the payload for creating a buyer lead. Status is
// optional and defaults to "New"; only the CSV import path usually supplies it.
type CreateBuyerRequest struct {
	FullName     string       `json:"fullName" validate:"required,min=2,max=80"`
	Email        string       `json:"email" validate:"omitempty,email"`
	Phone        string       `json:"phone" validate:"required,phone"`
	City         City         `json:"city" validate:"required,enum"`
	PropertyType PropertyType `json:"propertyType" validate:"required,enum"`
	BHK          BHK          `json:"bhk" validate:"omitempty,enum"`
	Purpose      Purpose      `json:"purpose" validate:"required,enum"`
	BudgetMin    *int64       `json:"budgetMin" validate:"omitnil,gt=0"`
	BudgetMax    *int64       `json:"budgetMax" validate:"omitnil,gt=0"`
	Timeline     Timeline     `json:"timeline" validate:"required,enum"`
	Source       Source       `json:"source" validate:"required,enum"`
	Notes        string       `json:"notes" validate:"max=1000"`
	Tags         []string     `json:"tags" validate:"omitempty,dive,required,max=40"`
	Status       Status       `json:"status" validate:"omitempty,enum"`
}

// Validate checks per-field rules and the cross-field invariants, returning
// the full list of field errors.
func (r *CreateBuyerRequest) Validate() *ValidationError {
	return validateStruct(r)
}

// UpdateBuyerRequest is a partial update: only non-nil fields are applied.
// Budget bounds cannot be cleared through an update, matching the partial
// merge semantics of the create payload.
type UpdateBuyerRequest struct {
	FullName     *string       `json:"fullName" validate:"omitnil,min=2,max=80"`
	Email        *string       `json:"email" validate:"omitempty,email"`
	Phone        *string       `json:"phone" validate:"omitnil,phone"`
	City         *City         `json:"city" validate:"omitnil,enum"`
	PropertyType *PropertyType `json:"propertyType" validate:"omitnil,enum"`
	BHK          *BHK          `json:"bhk" validate:"omitempty,enum"`
	Purpose      *Purpose      `json:"purpose" validate:"omitnil,enum"`
	BudgetMin    *int64        `json:"budgetMin" validate:"omitnil,gt=0"`
	BudgetMax    *int64        `json:"budgetMax" validate:"omitnil,gt=0"`
	Timeline     *Timeline     `json:"timeline" validate:"omitnil,enum"`
	Source       *Source       `json:"source" validate:"omitnil,enum"`
	Status       *Status       `json:"status" validate:"omitnil,enum"`
	Notes        *string       `json:"notes" validate:"omitnil,max=1000"`
	Tags         *[]string     `json:"tags" validate:"omitnil,dive,required,max=40"`

	// ExpectedUpdatedAt is the version token the client read. A stale value
	// fails the update with ErrVersionConflict and writes nothing.
	ExpectedUpdatedAt time.Time `json:"expectedUpdatedAt" validate:"required"`
}

// Validate checks per-field rules on the fields present in the partial
// payload. Cross-field invariants are re-checked on the merged record by the
// mutation service, since they depend on fields the payload may omit.
func (r *UpdateBuyerRequest) Validate() *ValidationError {
	return validateStruct(r)
}

// Empty reports whether the payload carries no field changes at all.
func (r *UpdateBuyerRequest) Empty() bool {
	return r.FullName == nil && r.Email == nil && r.Phone == nil &&
		r.City == nil && r.PropertyType == nil && r.BHK == nil &&
		r.Purpose == nil && r.BudgetMin == nil && r.BudgetMax == nil &&
		r.Timeline == nil && r.Source == nil && r.Status == nil &&
		r.Notes == nil && r.Tags == nil
}

// CSVRow is the raw, all-string shape of one imported CSV row, keyed by the
// fixed export column set.
type CSVRow struct {
	FullName     string
	Email        string
	Phone        string
	City         string
	PropertyType string
	BHK          string
	Purpose      string
	BudgetMin    string
	BudgetMax    string
	Timeline     string
	Source       string
	Notes        string
	Tags         string
	Status       string
}

// ParseCSVRow normalizes the ambiguous columns of a raw row and returns the
// typed create request plus any normalization errors. Tags are accepted
// either as a JSON string array or as a comma-separated list; budget bounds
// must parse as integers. The returned request still needs Validate().
func ParseCSVRow(row CSVRow) (CreateBuyerRequest, []FieldError) {
	var parseErrs []FieldError

	req := CreateBuyerRequest{
		FullName:     strings.TrimSpace(row.FullName),
		Email:        strings.TrimSpace(row.Email),
		Phone:        strings.TrimSpace(row.Phone),
		City:         City(strings.TrimSpace(row.City)),
		PropertyType: PropertyType(strings.TrimSpace(row.PropertyType)),
		BHK:          BHK(strings.TrimSpace(row.BHK)),
		Purpose:      Purpose(strings.TrimSpace(row.Purpose)),
		Timeline:     Timeline(strings.TrimSpace(row.Timeline)),
		Source:       Source(strings.TrimSpace(row.Source)),
		Notes:        row.Notes,
		Tags:         ParseTags(row.Tags),
		Status:       Status(strings.TrimSpace(row.Status)),
	}

	if v, ferr := parseBudget("budgetMin", row.BudgetMin); ferr != nil {
		parseErrs = append(parseErrs, *ferr)
	} else {
		req.BudgetMin = v
	}

	if v, ferr := parseBudget("budgetMax", row.BudgetMax); ferr != nil {
		parseErrs = append(parseErrs, *ferr)
	} else {
		req.BudgetMax = v
	}

	return req, parseErrs
}

// ParseTags interprets a free-form tags cell: a JSON string array when it
// parses as one, otherwise a comma-separated list with whitespace trimmed
// and empty entries dropped.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err == nil {
		return tags
	}

	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

// ImportResult summarizes a bulk CSV import. When any row fails validation
// the batch is rejected as a whole: Rejected is set, Created is zero and
// ValidRows reports how many rows would have been accepted. After a clean
// validation pass, Errors instead carries per-row insert failures.
type ImportResult struct {
	Created   int
	ValidRows int
	Rejected  bool
	Errors    []RowError
}

func parseBudget(field, raw string) (*int64, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &FieldError{Field: field, Message: field + " must be an integer"}
	}

	return &v, nil
}
