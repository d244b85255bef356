package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// TablesClient implements qb.TablesClient.
type TablesClient struct {
	httpClient *http.Client
}

// NewTablesClient creates a new tables client.
func NewTablesClient(httpClient *http.Client) *TablesClient {
	return &TablesClient{httpClient: httpClient}
}

// Get implements qb.TablesClient.Get.
func (c *TablesClient) Get(ctx context.Context, appID, tableID string) (*qb.Table, error) {
	query := url.Values{"appId": []string{appID}}

	resp, err := c.httpClient.Get(ctx, tableID, "/tables/"+tableID, query)
	if err != nil {
		return nil, fmt.Errorf("getting table: %w", err)
	}

	var table qb.Table

	err = json.Unmarshal(resp.Body, &table)
	if err != nil {
		return nil, fmt.Errorf("parsing table response: %w", err)
	}

	return &table, nil
}
