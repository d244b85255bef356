// Package client implements the qb.Client interface.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/quickbase-client/internal/auth"
	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// Client implements the qb.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	cacheManager *qb.CacheManager
	realm        string
	logger       qb.Logger

	records *RecordsClient
	fields  *FieldsClient
	tables  *TablesClient
	users   *UsersClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *qb.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createTokenManager picks the credential strategy. By default the user
// token is exchanged for cached per-table temporary tokens; the
// exchange itself authenticates with the user token directly.
func createTokenManager(config *qb.Config, httpClient *http.Client) auth.TokenManager {
	if config.DisableTempTokens {
		return auth.NewStaticTokenManager(config.UserToken)
	}

	fetcher := auth.TokenFetcherFunc(func(ctx context.Context, tableID string) (string, error) {
		return fetchTempToken(ctx, httpClient, config.UserToken, tableID)
	})

	return auth.NewTempTokenManager(fetcher)
}

// fetchTempToken exchanges the user token for a short-lived table token.
func fetchTempToken(ctx context.Context, httpClient *http.Client, userToken, tableID string) (string, error) {
	resp, err := httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   "/auth/temporary/" + tableID,
		Headers: map[string]string{
			"Authorization": constants.AuthSchemeUserToken + " " + userToken,
		},
		NoAuth: true,
	})
	if err != nil {
		return "", err
	}

	var body struct {
		TemporaryAuthorization string `json:"temporaryAuthorization"`
	}

	err = json.Unmarshal(resp.Body, &body)
	if err != nil {
		return "", fmt.Errorf("parsing temporary token response: %w", err)
	}

	return body.TemporaryAuthorization, nil
}

// New creates a new API client. Endpoint defaults and validation happen
// in the qbclient package.
func New(config *qb.Config) (*Client, error) {
	httpOpts := createHTTPClientOptions(config)

	// The transport starts unauthenticated: the token manager's fetch
	// operation rides the same transport with explicit user-token auth,
	// so there is no recursion.
	httpClient := http.NewClient(config.APIEndpoint, config.Realm, nil, httpOpts...)

	tokenManager := createTokenManager(config, httpClient)
	httpClient.SetTokenManager(tokenManager)

	cache, err := qb.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("building response cache: %w", err)
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		cacheManager: qb.NewCacheManager(cache, config.Logger),
		realm:        config.Realm,
		logger:       config.Logger,
	}

	client.records = NewRecordsClient(httpClient, client.cacheManager, config.Realm)
	client.fields = NewFieldsClient(httpClient)
	client.tables = NewTablesClient(httpClient)
	client.users = NewUsersClient(httpClient, config.LegacyEndpoint, config.UserToken)

	return client, nil
}

// Records implements qb.Client.Records.
func (c *Client) Records() qb.RecordsClient {
	return c.records
}

// Fields implements qb.Client.Fields.
func (c *Client) Fields() qb.FieldsClient {
	return c.fields
}

// Tables implements qb.Client.Tables.
func (c *Client) Tables() qb.TablesClient {
	return c.tables
}

// Users implements qb.Client.Users.
func (c *Client) Users() qb.UsersClient {
	return c.users
}

// ClearResponseCache implements qb.Client.ClearResponseCache.
func (c *Client) ClearResponseCache(ctx context.Context) error {
	return c.cacheManager.Clear(ctx)
}

// CacheStats implements qb.Client.CacheStats.
func (c *Client) CacheStats() *qb.CacheStats {
	stats := c.cacheManager.GetStats()

	return &stats
}

// loggerAdapter adapts qb.Logger to http.Logger.
type loggerAdapter struct {
	logger qb.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
