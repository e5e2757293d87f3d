package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldChange records the old and new value of a single field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// BuyerDiff is the payload of a history entry. It is a tagged union with two
// shapes on the wire:
//
//	{"action": "created", "fields": {...}}   initial snapshot on create
//	{"<field>": {"old": ..., "new": ...}}    field-level diff on update
//
// Exactly one of Fields and Changes is set.
type BuyerDiff struct {
	// Fields holds the initial values when the entry records a creation.
	Fields map[string]any
	// Changes maps changed field names to their old/new pair on update.
	Changes map[string]FieldChange
}

// CreatedDiff builds the creation-shaped payload.
func CreatedDiff(fields map[string]any) BuyerDiff {
	if fields == nil {
		fields = map[string]any{}
	}

	return BuyerDiff{Fields: fields}
}

// UpdatedDiff builds the field-diff-shaped payload.
func UpdatedDiff(changes map[string]FieldChange) BuyerDiff {
	return BuyerDiff{Changes: changes}
}

// IsCreated reports whether the payload records a creation.
func (d BuyerDiff) IsCreated() bool {
	return d.Fields != nil
}

// createdPayload is the wire shape of the creation arm.
type createdPayload struct {
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

// MarshalJSON implements json.Marshaler.
func (d BuyerDiff) MarshalJSON() ([]byte, error) {
	if d.IsCreated() {
		return json.Marshal(createdPayload{Action: "created", Fields: d.Fields})
	}

	if d.Changes == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(d.Changes)
}

// UnmarshalJSON implements json.Unmarshaler, detecting the arm by the
// presence of the "action" tag.
func (d *BuyerDiff) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("decoding diff payload: %w", err)
	}

	if raw, ok := members["action"]; ok {
		var action string
		if err := json.Unmarshal(raw, &action); err != nil || action != "created" {
			return fmt.Errorf("unknown diff action %s", raw)
		}

		var cp createdPayload
		if err := json.Unmarshal(data, &cp); err != nil {
			return fmt.Errorf("decoding created diff: %w", err)
		}

		if cp.Fields == nil {
			cp.Fields = map[string]any{}
		}

		*d = BuyerDiff{Fields: cp.Fields}

		return nil
	}

	changes := make(map[string]FieldChange, len(members))
	for field, raw := range members {
		var fc FieldChange
		if err := json.Unmarshal(raw, &fc); err != nil {
			return fmt.Errorf("decoding change for %s: %w", field, err)
		}

		changes[field] = fc
	}

	*d = BuyerDiff{Changes: changes}

	return nil
}

// HistoryEntry is one immutable row of a buyer's append-only change history.
// Entries are owned by the system: never updated or deleted independently of
// their buyer.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Diff      BuyerDiff `json:"diff"`
}
