package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// sortColumns maps API sort fields to their columns. Values are
// whitelisted here so sort input never reaches the SQL text directly.
var sortColumns = map[models.SortField]string{
	models.SortFullName:  "full_name",
	models.SortUpdatedAt: "updated_at",
	models.SortCreatedAt: "created_at",
}

// likeEscaper neutralizes LIKE metacharacters in search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildBuyerFilter renders the WHERE clause for a buyer filter. Filters
// compose with AND; zero-valued fields impose no constraint.
func buildBuyerFilter(filter models.BuyerFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)

		return fmt.Sprintf("$%d", len(args))
	}

	if filter.City != "" {
		conds = append(conds, "city = "+arg(string(filter.City)))
	}

	if filter.PropertyType != "" {
		conds = append(conds, "property_type = "+arg(string(filter.PropertyType)))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(string(filter.Status)))
	}

	if filter.Timeline != "" {
		conds = append(conds, "timeline = "+arg(string(filter.Timeline)))
	}

	if filter.Search != "" {
		pattern := arg("%" + likeEscaper.Replace(filter.Search) + "%")
		conds = append(conds, fmt.Sprintf(
			"(full_name ILIKE %[1]s OR phone ILIKE %[1]s OR email ILIKE %[1]s)", pattern,
		))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListBuyers returns one page of buyers matching the filter plus the total
// count over the filtered, unpaginated set. Pages are 1-indexed.
func (s *BuyerStore) ListBuyers(
	ctx context.Context,
	filter models.BuyerFilter,
	sort models.BuyerSort,
	page, pageSize int,
) ([]models.Buyer, int, error) {
	if page < 1 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = 10
	}

	if pageSize > maxListLimit {
		pageSize = maxListLimit
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where, args := buildBuyerFilter(filter)

	var total int
	if err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM buyers"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting buyers: %w", err)
	}

	column, ok := sortColumns[sort.Field]
	if !ok {
		column = "updated_at"
	}

	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM buyers%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		buyerColumns, where, column, direction, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, (page-1)*pageSize)

	buyers, err := s.queryBuyers(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return buyers, total, nil
}

// ExportBuyers returns every buyer matching the filter up to maxRows, in the
// default updatedAt-descending order.
func (s *BuyerStore) ExportBuyers(ctx context.Context, filter models.BuyerFilter, maxRows int) ([]models.Buyer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where, args := buildBuyerFilter(filter)

	query := fmt.Sprintf(
		"SELECT %s FROM buyers%s ORDER BY updated_at DESC LIMIT $%d",
		buyerColumns, where, len(args)+1,
	)
	args = append(args, maxRows)

	return s.queryBuyers(ctx, query, args)
}

// CountByStatus returns lead counts grouped by pipeline status.
func (s *BuyerStore) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	return countBy(ctx, s, "status", func(v string) models.Status { return models.Status(v) })
}

// CountByCity returns lead counts grouped by city.
func (s *BuyerStore) CountByCity(ctx context.Context) (map[models.City]int, error) {
	return countBy(ctx, s, "city", func(v string) models.City { return models.City(v) })
}

func countBy[K comparable](ctx context.Context, s *BuyerStore, column string, key func(string) K) (map[K]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, fmt.Sprintf("SELECT %s, count(*) FROM buyers GROUP BY %s", column, column))
	if err != nil {
		return nil, fmt.Errorf("counting buyers by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[K]int)

	for rows.Next() {
		var (
			value string
			n     int
		)

		if err := rows.Scan(&value, &n); err != nil {
			return nil, fmt.Errorf("scanning %s count: %w", column, err)
		}

		counts[key(value)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s counts: %w", column, err)
	}

	return counts, nil
}

func (s *BuyerStore) queryBuyers(ctx context.Context, query string, args []any) ([]models.Buyer, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying buyers: %w", err)
	}
	defer rows.Close()

	var buyers []models.Buyer

	for rows.Next() {
		b, err := scanBuyer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning buyer row: %w", err)
		}

		buyers = append(buyers, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buyer rows: %w", err)
	}

	return buyers, nil
}
