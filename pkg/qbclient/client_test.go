package qbclient_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
	"github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
)

func TestNew_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := qbclient.New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, qb.ErrConfigRequired)
}

func TestNew_RequiresRealm(t *testing.T) {
	t.Parallel()

	_, err := qbclient.New(&qb.Config{UserToken: "b1234_secret"})
	require.Error(t, err)
	assert.ErrorIs(t, err, qb.ErrRealmRequired)
}

func TestNew_NormalizesRealm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "acme.quickbase.com", r.Header.Get("QB-Realm-Hostname"))
		_, _ = w.Write([]byte(`{"data": [], "fields": [], "metadata": {"numRecords": 0}}`))
	}))
	defer server.Close()

	client, err := qbclient.New(&qb.Config{
		Realm:             "https://acme.quickbase.com/",
		UserToken:         "b1234_secret",
		APIEndpoint:       server.URL,
		DisableTempTokens: true,
	})
	require.NoError(t, err)

	_, err = client.Records().Query(context.Background(), &qb.QueryRequest{From: "bqx7xre9z"})
	require.NoError(t, err)
}

func TestNew_TrimsEndpointSlash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/records/query", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": [], "fields": [], "metadata": {"numRecords": 0}}`))
	}))
	defer server.Close()

	client, err := qbclient.New(&qb.Config{
		Realm:             "acme.quickbase.com",
		UserToken:         "b1234_secret",
		APIEndpoint:       server.URL + "/",
		DisableTempTokens: true,
	})
	require.NoError(t, err)

	_, err = client.Records().Query(context.Background(), &qb.QueryRequest{From: "bqx7xre9z"})
	require.NoError(t, err)
}

func TestNewWithUserToken(t *testing.T) {
	t.Parallel()

	client, err := qbclient.NewWithUserToken("acme.quickbase.com", "b1234_secret")
	require.NoError(t, err)
	assert.NotNil(t, client.Records())
	assert.NotNil(t, client.Fields())
	assert.NotNil(t, client.Tables())
	assert.NotNil(t, client.Users())
}

func TestNewWithStaticToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		// No temporary-token exchange happens in static mode.
		assert.Equal(t, "QB-USER-TOKEN b1234_secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": [], "fields": [], "metadata": {"numRecords": 0}}`))
	}))
	defer server.Close()

	client, err := qbclient.New(&qb.Config{
		Realm:             "acme.quickbase.com",
		UserToken:         "b1234_secret",
		APIEndpoint:       server.URL,
		DisableTempTokens: true,
	})
	require.NoError(t, err)

	_, err = client.Records().Query(context.Background(), &qb.QueryRequest{From: "bqx7xre9z"})
	require.NoError(t, err)
}
