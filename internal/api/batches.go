package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// RequestCounts summarizes per-batch request progress.
type RequestCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// Batch is one batch-inference job.
type Batch struct {
	ID            string        `json:"id"`
	Object        string        `json:"object"`
	Endpoint      string        `json:"endpoint"`
	Status        string        `json:"status"`
	CreatedAt     int64         `json:"created_at"`
	InputFileID   string        `json:"input_file_id"`
	OutputFileID  string        `json:"output_file_id,omitempty"`
	ErrorFileID   string        `json:"error_file_id,omitempty"`
	RequestCounts RequestCounts `json:"request_counts"`
}

// Cursor returns the token that resumes listing after this batch.
func (b Batch) Cursor() string { return b.ID }

// BatchResult is one request's outcome within a batch.
type BatchResult struct {
	ID         string `json:"id"`
	CustomID   string `json:"custom_id"`
	Status     string `json:"status"`
	Model      string `json:"model,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Cursor returns the token that resumes listing after this result.
func (r BatchResult) Cursor() string { return r.ID }

// ListBatchesParams are the query parameters for the batches listing.
type ListBatchesParams struct {
	Limit  int    `url:"limit,omitempty"`
	After  string `url:"after,omitempty"`
	Search string `url:"search,omitempty"`
	Status string `url:"status,omitempty"`
}

// ListBatches returns up to params.Limit batches after the given cursor.
func (c *Client) ListBatches(ctx context.Context, params ListBatchesParams) ([]Batch, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope[Batch]
	if err := c.get(ctx, "/v1/batches", values, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListResultsParams are the query parameters for a batch's result rows.
type ListResultsParams struct {
	Limit int    `url:"limit,omitempty"`
	After string `url:"after,omitempty"`
}

// ListBatchResults returns up to params.Limit result rows of batchID
// after the given cursor.
func (c *Client) ListBatchResults(
	ctx context.Context,
	batchID string,
	params ListResultsParams,
) ([]BatchResult, error) {
	if batchID == "" {
		return nil, fmt.Errorf("batch id is required")
	}
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	path := "/v1/batches/" + url.PathEscape(batchID) + "/results"
	var envelope listEnvelope[BatchResult]
	if err := c.get(ctx, path, values, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
