package api

import (
	"context"

	"github.com/google/go-querystring/query"
)

// File purposes as reported by the control layer.
const (
	PurposeBatch       = "batch"
	PurposeBatchOutput = "batch_output"
	PurposeBatchError  = "batch_error"
)

// File is one uploaded file object.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// Cursor returns the token that resumes listing after this file.
func (f File) Cursor() string { return f.ID }

// ListFilesParams are the query parameters for the files listing.
// Limit may be pageSize+1; the caller owns the N+1 convention.
type ListFilesParams struct {
	Limit  int    `url:"limit,omitempty"`
	After  string `url:"after,omitempty"`
	Order  string `url:"order,omitempty"`
	Search string `url:"search,omitempty"`
}

// ListFiles returns up to params.Limit files after the given cursor.
func (c *Client) ListFiles(ctx context.Context, params ListFilesParams) ([]File, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope[File]
	if err := c.get(ctx, "/v1/files", values, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
