package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// BuyerService handles buyer lead CRUD, history, import and export.
type BuyerService struct {
	c *Client
}

// List returns one page of buyers with optional filtering and sorting.
func (s *BuyerService) List(ctx context.Context, opts *BuyerListOptions) (*BuyerList, error) {
	params := url.Values{}
	if opts != nil {
		if opts.City != "" {
			params.Set("city", opts.City)
		}
		if opts.PropertyType != "" {
			params.Set("propertyType", opts.PropertyType)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Timeline != "" {
			params.Set("timeline", opts.Timeline)
		}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
		if opts.Sort != "" {
			params.Set("sort", opts.Sort)
			if opts.Descending {
				params.Set("order", "desc")
			}
		}
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			params.Set("pageSize", strconv.Itoa(opts.PageSize))
		}
	}
	var resp BuyerList
	if err := s.c.get(ctx, "/api/v1/buyers", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a single buyer by ID.
func (s *BuyerService) Get(ctx context.Context, id string) (*Buyer, error) {
	var buyer Buyer
	if err := s.c.get(ctx, "/api/v1/buyers/"+url.PathEscape(id), nil, &buyer); err != nil {
		return nil, err
	}
	return &buyer, nil
}

// Create creates a new buyer lead owned by the authenticated actor.
func (s *BuyerService) Create(ctx context.Context, req *CreateBuyerRequest) (*Buyer, error) {
	var buyer Buyer
	if err := s.c.post(ctx, "/api/v1/buyers", req, &buyer); err != nil {
		return nil, err
	}
	return &buyer, nil
}

// Update applies a partial update under the optimistic-concurrency guard.
// Use IsVersionConflict on the returned error to detect a stale token.
func (s *BuyerService) Update(ctx context.Context, id string, req *UpdateBuyerRequest) (*Buyer, error) {
	var buyer Buyer
	if err := s.c.put(ctx, "/api/v1/buyers/"+url.PathEscape(id), req, &buyer); err != nil {
		return nil, err
	}
	return &buyer, nil
}

// Delete removes a buyer. Only the owner may delete.
func (s *BuyerService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/buyers/"+url.PathEscape(id), nil, nil)
}

// CanEdit reports whether the authenticated actor owns the buyer.
func (s *BuyerService) CanEdit(ctx context.Context, id string) (bool, error) {
	var resp struct {
		CanEdit bool `json:"can_edit"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/buyers/%s/can-edit", url.PathEscape(id)), nil, &resp); err != nil {
		return false, err
	}
	return resp.CanEdit, nil
}

// History returns change history entries for a buyer, newest first.
func (s *BuyerService) History(ctx context.Context, id string, limit, offset int) ([]HistoryEntry, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp struct {
		Entries []HistoryEntry `json:"entries"`
		HasMore bool           `json:"has_more"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/buyers/%s/history", url.PathEscape(id)), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Entries, resp.HasMore, nil
}

// Import uploads a CSV and returns the import summary. The reader should
// yield a header-driven CSV in the canonical column set. A batch refused by
// the server's validation gate comes back with Rejected set and the row
// errors populated, not as an error value.
func (s *BuyerService) Import(ctx context.Context, csv io.Reader) (*ImportResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+"/api/v1/buyers/import", csv)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	if s.c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.c.apiKey)
	}

	resp, err := s.c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest {
		// A rejected batch answers 400 with per-row errors; surface it as a
		// result rather than an opaque error so callers can show the rows.
		var rej struct {
			Error     string     `json:"error"`
			Errors    []RowError `json:"errors"`
			ValidRows int        `json:"validRows"`
		}
		if err := json.Unmarshal(body, &rej); err == nil && rej.Error != "" && len(rej.Errors) > 0 {
			return &ImportResult{ValidRows: rej.ValidRows, Errors: rej.Errors, Rejected: true}, nil
		}
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var result ImportResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// Export streams the filtered buyer set as CSV into w and returns the
// number of bytes written.
func (s *BuyerService) Export(ctx context.Context, opts *BuyerListOptions, w io.Writer) (int64, error) {
	params := url.Values{}
	if opts != nil {
		if opts.City != "" {
			params.Set("city", opts.City)
		}
		if opts.PropertyType != "" {
			params.Set("propertyType", opts.PropertyType)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Timeline != "" {
			params.Set("timeline", opts.Timeline)
		}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
	}

	path := s.c.baseURL + "/api/v1/buyers/export"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if s.c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.c.apiKey)
	}

	resp, err := s.c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)

		return 0, parseAPIError(resp.StatusCode, body)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy export body: %w", err)
	}
	return n, nil
}
