package client

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

func TestFieldsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/fields", r.URL.Path)
		assert.Equal(t, "bqx7xre9z", r.URL.Query().Get("tableId"))

		_, _ = w.Write([]byte(`[
			{"id": 3, "label": "Record ID#", "type": "recordid"},
			{"id": 6, "label": "Name", "type": "text"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	fields, err := client.Fields().List(context.Background(), "bqx7xre9z")
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, 3, fields[0].ID)
	assert.Equal(t, "Record ID#", fields[0].Label)
	assert.Equal(t, "text", fields[1].Type)

	fieldMap := qb.FieldMap(fields)
	assert.Equal(t, "Name", fieldMap["6"])
}

func TestTablesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/tables/bqx7xre9z", r.URL.Path)
		assert.Equal(t, "bpqe82s1", r.URL.Query().Get("appId"))

		_, _ = w.Write([]byte(`{"id": "bqx7xre9z", "name": "Projects", "singleRecordName": "Project"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	table, err := client.Tables().Get(context.Background(), "bpqe82s1", "bqx7xre9z")
	require.NoError(t, err)
	assert.Equal(t, "bqx7xre9z", table.ID)
	assert.Equal(t, "Projects", table.Name)
}

func TestClient_TempTokenFlow(t *testing.T) {
	t.Parallel()

	var tokenFetches atomic.Int64

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if strings.HasPrefix(r.URL.Path, "/auth/temporary/") {
			tokenFetches.Add(1)

			// The exchange itself authenticates with the user token.
			assert.Equal(t, "QB-USER-TOKEN b1234_secret", r.Header.Get("Authorization"))
			assert.Equal(t, "/auth/temporary/bqx7xre9z", r.URL.Path)

			_ = json.NewEncoder(w).Encode(map[string]string{
				"temporaryAuthorization": "tmp123",
			})

			return
		}

		// Record requests ride the temporary token.
		assert.Equal(t, "QB-TEMP-TOKEN tmp123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": [], "fields": [], "metadata": {"numRecords": 0}}`))
	}))
	defer server.Close()

	client, err := New(&qb.Config{
		Realm:       "acme.quickbase.com",
		UserToken:   "b1234_secret",
		APIEndpoint: server.URL,
	})
	require.NoError(t, err)

	ctx := context.Background()
	request := &qb.QueryRequest{From: "bqx7xre9z"}

	_, err = client.Records().Query(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tokenFetches.Load())

	// The second query reuses the cached table token.
	_, err = client.Records().Query(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tokenFetches.Load())
}

func TestClient_TempTokenExchangeFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid user token"}`))
	}))
	defer server.Close()

	client, err := New(&qb.Config{
		Realm:       "acme.quickbase.com",
		UserToken:   "bad_token",
		APIEndpoint: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Records().Query(context.Background(), &qb.QueryRequest{From: "bqx7xre9z"})
	require.Error(t, err)
	assert.True(t, qb.IsAuthError(err))
}

func TestClient_CacheStatsStartEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://unused.invalid")

	stats := client.CacheStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.InDelta(t, 0.0, stats.GetHitRate(), 0.0001)
}
