package qb

import (
	"context"
	"time"
)

// RecordsClient provides record-level operations on tables.
type RecordsClient interface {
	Query(ctx context.Context, request *QueryRequest) (*QueryResult, error)
	QueryCached(ctx context.Context, request *QueryRequest, ttl time.Duration) (*QueryResult, error)
	Upsert(ctx context.Context, request *UpsertRequest) (*UpsertResult, error)
	StrictUpsert(ctx context.Context, request *UpsertRequest) (*UpsertResult, error)
	Delete(ctx context.Context, request *DeleteRequest) (*DeleteResult, error)
	GetByUniqueField(ctx context.Context, tableID string, fieldID int, value any, fields []int, strict bool) (FlatRecord, error)
	GetByID(ctx context.Context, tableID string, recordID int, fields []int) (FlatRecord, error)
	Update(ctx context.Context, tableID string, recordID int, fields map[string]any) (*UpsertResult, error)
}

// FieldsClient provides table schema operations.
type FieldsClient interface {
	List(ctx context.Context, tableID string) ([]Field, error)
}

// TablesClient provides table metadata operations.
type TablesClient interface {
	Get(ctx context.Context, appID, tableID string) (*Table, error)
}

// UsersClient provides access to the legacy user-profile endpoint.
type UsersClient interface {
	GetUserInfo(ctx context.Context) (*UserInfo, error)
}

// Client is the full API surface.
type Client interface {
	Records() RecordsClient
	Fields() FieldsClient
	Tables() TablesClient
	Users() UsersClient

	// ClearResponseCache drops every cached query response.
	ClearResponseCache(ctx context.Context) error
	// CacheStats returns response cache statistics, or nil when
	// caching is disabled.
	CacheStats() *CacheStats
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a qb.Client.
//
// # Authentication
//
// UserToken is required. By default the client exchanges it for
// short-lived per-table temporary tokens and caches those for their
// lifetime; set DisableTempTokens to send the user token directly on
// every request instead.
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled via the context passed to
// client methods. Transient failures (>=500, 429, connection errors)
// are retried at the transport; tune via RetryMax/RetryWaitMin/
// RetryWaitMax.
type Config struct {
	// Realm is the realm hostname, e.g. "acme.quickbase.com".
	Realm string

	// UserToken authenticates against the realm.
	UserToken string

	// APIEndpoint overrides the REST API base URL. Defaults to the
	// public endpoint when empty.
	APIEndpoint string

	// LegacyEndpoint overrides the legacy XML API base URL. Defaults
	// to "https://<Realm>" when empty.
	LegacyEndpoint string

	// DisableTempTokens sends the user token on every request instead
	// of exchanging it for cached temporary tokens.
	DisableTempTokens bool

	// RetryMax is the maximum number of transport retries. If 0, a
	// default is used.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a
	// Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the transport
	// and the cache layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures the response cache backend. If nil, an
	// in-memory cache with defaults is used.
	Cache *CacheConfig
}
