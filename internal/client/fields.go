package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// FieldsClient implements qb.FieldsClient.
type FieldsClient struct {
	httpClient *http.Client
}

// NewFieldsClient creates a new fields client.
func NewFieldsClient(httpClient *http.Client) *FieldsClient {
	return &FieldsClient{httpClient: httpClient}
}

// List implements qb.FieldsClient.List.
func (c *FieldsClient) List(ctx context.Context, tableID string) ([]qb.Field, error) {
	query := url.Values{"tableId": []string{tableID}}

	resp, err := c.httpClient.Get(ctx, tableID, "/fields", query)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	var fields []qb.Field

	err = json.Unmarshal(resp.Body, &fields)
	if err != nil {
		return nil, fmt.Errorf("parsing fields response: %w", err)
	}

	return fields, nil
}
