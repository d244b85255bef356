package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// RecordsClient implements qb.RecordsClient.
type RecordsClient struct {
	httpClient   *http.Client
	cacheManager *qb.CacheManager
	realm        string
}

// NewRecordsClient creates a new records client.
func NewRecordsClient(httpClient *http.Client, cacheManager *qb.CacheManager, realm string) *RecordsClient {
	return &RecordsClient{
		httpClient:   httpClient,
		cacheManager: cacheManager,
		realm:        realm,
	}
}

// Query implements qb.RecordsClient.Query.
func (c *RecordsClient) Query(ctx context.Context, request *qb.QueryRequest) (*qb.QueryResult, error) {
	result, _, err := c.query(ctx, request)

	return result, err
}

// query runs the query and also returns the raw payload for caching.
func (c *RecordsClient) query(ctx context.Context, request *qb.QueryRequest) (*qb.QueryResult, []byte, error) {
	resp, err := c.httpClient.Post(ctx, request.From, "/records/query", request)
	if err != nil {
		return nil, nil, fmt.Errorf("querying records: %w", err)
	}

	result, err := decodeQueryResult(resp.Body, request.From)
	if err != nil {
		return nil, nil, err
	}

	return result, resp.Body, nil
}

// QueryCached implements qb.RecordsClient.QueryCached. The cache key
// covers the full query shape; a hit rehydrates the cached raw payload
// without a network call, a miss queries and then stores the raw result
// with the given TTL. Cache failures degrade to misses.
func (c *RecordsClient) QueryCached(ctx context.Context, request *qb.QueryRequest, ttl time.Duration) (*qb.QueryResult, error) {
	key := qb.QueryKey(c.realm, request)

	cached, err := c.cacheManager.Get(ctx, key)
	if err == nil {
		result, decodeErr := decodeQueryResult(cached, request.From)
		if decodeErr == nil {
			return result, nil
		}
		// A payload that no longer decodes is as good as a miss.
	}

	result, raw, err := c.query(ctx, request)
	if err != nil {
		return nil, err
	}

	_ = c.cacheManager.Set(ctx, key, raw, ttl)

	return result, nil
}

// decodeQueryResult parses a query payload and stamps the table id.
func decodeQueryResult(data []byte, tableID string) (*qb.QueryResult, error) {
	var result qb.QueryResult

	err := json.Unmarshal(data, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing query response: %w", err)
	}

	result.TableID = tableID

	return &result, nil
}

// Upsert implements qb.RecordsClient.Upsert.
func (c *RecordsClient) Upsert(ctx context.Context, request *qb.UpsertRequest) (*qb.UpsertResult, error) {
	resp, err := c.httpClient.Post(ctx, request.To, "/records", request)
	if err != nil {
		return nil, fmt.Errorf("upserting records: %w", err)
	}

	var result qb.UpsertResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing upsert response: %w", err)
	}

	return &result, nil
}

// StrictUpsert implements qb.RecordsClient.StrictUpsert. Any per-line
// error turns the whole call into a PartialUpsertError carrying the
// full line-error map.
func (c *RecordsClient) StrictUpsert(ctx context.Context, request *qb.UpsertRequest) (*qb.UpsertResult, error) {
	result, err := c.Upsert(ctx, request)
	if err != nil {
		return nil, err
	}

	if result.HasErrors() {
		return nil, &qb.PartialUpsertError{LineErrors: result.Metadata.LineErrors}
	}

	return result, nil
}

// Delete implements qb.RecordsClient.Delete.
func (c *RecordsClient) Delete(ctx context.Context, request *qb.DeleteRequest) (*qb.DeleteResult, error) {
	resp, err := c.httpClient.Delete(ctx, request.From, "/records", request)
	if err != nil {
		return nil, fmt.Errorf("deleting records: %w", err)
	}

	var result qb.DeleteResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing delete response: %w", err)
	}

	return &result, nil
}

// GetByUniqueField implements qb.RecordsClient.GetByUniqueField. Zero
// matches fail with ErrRecordNotFound; more than one match fails with
// ErrAmbiguousMatch when strict, otherwise the first match is returned.
func (c *RecordsClient) GetByUniqueField(ctx context.Context, tableID string, fieldID int, value any, fields []int, strict bool) (qb.FlatRecord, error) {
	result, err := c.Query(ctx, &qb.QueryRequest{
		From:   tableID,
		Select: fields,
		Where:  fmt.Sprintf("{%d.EX.'%v'}", fieldID, value),
	})
	if err != nil {
		return nil, err
	}

	records, err := result.Records()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: field %d = %v in table %s", qb.ErrRecordNotFound, fieldID, value, tableID)
	}

	if strict && len(records) > 1 {
		return nil, fmt.Errorf("%w: field %d = %v matched %d records in table %s",
			qb.ErrAmbiguousMatch, fieldID, value, len(records), tableID)
	}

	return qb.Flatten(records[0], false, nil), nil
}

// GetByID implements qb.RecordsClient.GetByID: a strict unique lookup
// on the reserved Record ID# field.
func (c *RecordsClient) GetByID(ctx context.Context, tableID string, recordID int, fields []int) (qb.FlatRecord, error) {
	return c.GetByUniqueField(ctx, tableID, constants.RecordIDFieldID, recordID, fields, true)
}

// Update implements qb.RecordsClient.Update: merges the Record ID#
// field into the supplied values (overwriting any caller-supplied id),
// normalizes, and upserts the single record.
func (c *RecordsClient) Update(ctx context.Context, tableID string, recordID int, fields map[string]any) (*qb.UpsertResult, error) {
	merged := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		merged[key] = value
	}

	merged[fmt.Sprint(constants.RecordIDFieldID)] = recordID

	return c.Upsert(ctx, &qb.UpsertRequest{
		To:   tableID,
		Data: []qb.WireRecord{qb.Normalize(merged)},
	})
}
