// Package qbclient provides the main entry point for creating Quickbase API clients
package qbclient

import (
	"strings"

	"github.com/fivetwenty-io/quickbase-client/internal/client"
	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// New creates a new API client from the config. The realm hostname is
// required; the API endpoint defaults to the public one and the legacy
// XML endpoint defaults to the realm itself.
func New(config *qb.Config) (qb.Client, error) {
	if config == nil {
		return nil, qb.ErrConfigRequired
	}

	if config.Realm == "" {
		return nil, qb.ErrRealmRequired
	}

	// Normalize the realm to a bare hostname; the header wants no scheme.
	config.Realm = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(config.Realm, "https://"), "http://"), "/")

	if config.APIEndpoint == "" {
		config.APIEndpoint = constants.DefaultAPIEndpoint
	}

	config.APIEndpoint = strings.TrimSuffix(config.APIEndpoint, "/")

	if config.LegacyEndpoint == "" {
		config.LegacyEndpoint = "https://" + config.Realm
	}

	config.LegacyEndpoint = strings.TrimSuffix(config.LegacyEndpoint, "/")

	return client.New(config)
}

// NewWithUserToken creates a client for a realm using temporary-token
// authentication backed by the given user token.
func NewWithUserToken(realm, userToken string) (qb.Client, error) {
	return New(&qb.Config{
		Realm:     realm,
		UserToken: userToken,
	})
}

// NewWithStaticToken creates a client that sends the user token
// directly on every request instead of exchanging it for temporary
// tokens.
func NewWithStaticToken(realm, userToken string) (qb.Client, error) {
	return New(&qb.Config{
		Realm:             realm,
		UserToken:         userToken,
		DisableTempTokens: true,
	})
}
