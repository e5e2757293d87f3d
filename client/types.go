package client

import (
	"encoding/json"
	"time"
)

// Buyer is one buyer lead record. UpdatedAt doubles as the version token
// for optimistic-concurrency updates.
type Buyer struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	BHK          string    `json:"bhk,omitempty"`
	Purpose      string    `json:"purpose"`
	BudgetMin    *int64    `json:"budgetMin,omitempty"`
	BudgetMax    *int64    `json:"budgetMax,omitempty"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateBuyerRequest is the payload for creating a buyer lead.
type CreateBuyerRequest struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	PropertyType string   `json:"propertyType"`
	BHK          string   `json:"bhk,omitempty"`
	Purpose      string   `json:"purpose"`
	BudgetMin    *int64   `json:"budgetMin,omitempty"`
	BudgetMax    *int64   `json:"budgetMax,omitempty"`
	Timeline     string   `json:"timeline"`
	Source       string   `json:"source"`
	Notes        string   `json:"notes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Status       string   `json:"status,omitempty"`
}

// UpdateBuyerRequest is a partial update. Only non-nil fields are applied.
// ExpectedUpdatedAt must carry the UpdatedAt of the record as last read; a
// stale value fails with a 409 and writes nothing.
type UpdateBuyerRequest struct {
	FullName          *string   `json:"fullName,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Phone             *string   `json:"phone,omitempty"`
	City              *string   `json:"city,omitempty"`
	PropertyType      *string   `json:"propertyType,omitempty"`
	BHK               *string   `json:"bhk,omitempty"`
	Purpose           *string   `json:"purpose,omitempty"`
	BudgetMin         *int64    `json:"budgetMin,omitempty"`
	BudgetMax         *int64    `json:"budgetMax,omitempty"`
	Timeline          *string   `json:"timeline,omitempty"`
	Source            *string   `json:"source,omitempty"`
	Status            *string   `json:"status,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	Tags              *[]string `json:"tags,omitempty"`
	ExpectedUpdatedAt time.Time `json:"expectedUpdatedAt"`
}

// BuyerListOptions filters and paginates the buyer list.
type BuyerListOptions struct {
	City         string
	PropertyType string
	Status       string
	Timeline     string
	Search       string
	Sort         string
	Descending   bool
	Page         int
	PageSize     int
}

// BuyerList is one page of the buyer list.
type BuyerList struct {
	Buyers   []Buyer `json:"buyers"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// HistoryEntry is one buyer change history record. Diff is either a
// creation snapshot ({"action":"created","fields":{...}}) or a map of
// field name to {old,new}.
type HistoryEntry struct {
	ID        int64           `json:"id"`
	BuyerID   string          `json:"buyer_id"`
	ChangedBy string          `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
	Diff      json.RawMessage `json:"diff"`
}

// ImportResult summarizes a CSV bulk import. Rejected reports the
// all-or-nothing validation gate: the server refused the whole batch and
// inserted nothing. Otherwise Errors carries per-row insert failures.
type ImportResult struct {
	Message   string     `json:"message"`
	Created   int        `json:"created"`
	ValidRows int        `json:"validRows"`
	Errors    []RowError `json:"errors,omitempty"`
	Rejected  bool       `json:"-"`
}

// RowError is one failed CSV import row, 1-indexed excluding the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BuyerStats summarizes the lead pipeline.
type BuyerStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByCity   map[string]int `json:"byCity"`
}

// AuditEntry is one operation-level audit record.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	BuyerID   *string        `json:"buyer_id,omitempty"`
	Actor     string         `json:"actor"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditQueryOptions filters the audit log query.
type AuditQueryOptions struct {
	Action  string
	BuyerID string
	Actor   string
	Since   *time.Time
	Limit   int
	Offset  int
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
