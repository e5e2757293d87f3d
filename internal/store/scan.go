package store

import (
	"encoding/json"
	"fmt"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// buyerColumns is the canonical column list for buyer queries. Keep in sync
// with scanBuyer.
const buyerColumns = `id, owner_id, full_name, email, phone, city, property_type, bhk,
	purpose, budget_min, budget_max, timeline, source, status, notes, tags,
	created_at, updated_at`

// scanBuyer scans one buyer row using the provided scan function. The tags
// column is stored as a jsonb array; the serialized form never leaves this
// package.
func scanBuyer(scan func(dest ...any) error) (*models.Buyer, error) {
	var (
		b        models.Buyer
		tagsJSON []byte
	)

	err := scan(
		&b.ID, &b.OwnerID, &b.FullName, &b.Email, &b.Phone, &b.City, &b.PropertyType, &b.BHK,
		&b.Purpose, &b.BudgetMin, &b.BudgetMax, &b.Timeline, &b.Source, &b.Status, &b.Notes, &tagsJSON,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &b.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for buyer %s: %w", b.ID, err)
		}
	}

	return &b, nil
}

// encodeTags serializes the tag sequence for storage. nil encodes as the
// empty array so the column stays NOT NULL.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}

	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	return data, nil
}
