// Package auth holds the token managers that authenticate API requests.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// TokenManager resolves the Authorization header value for a request
// against the given table.
type TokenManager interface {
	// GetToken returns a valid token for the table, fetching a fresh
	// one when needed.
	GetToken(ctx context.Context, tableID string) (string, error)
	// Scheme returns the Authorization scheme the token is sent under.
	Scheme() string
}

// TokenFetcher fetches a fresh temporary token for a table.
type TokenFetcher interface {
	FetchTempToken(ctx context.Context, tableID string) (string, error)
}

// TokenFetcherFunc adapts a function to the TokenFetcher interface.
type TokenFetcherFunc func(ctx context.Context, tableID string) (string, error)

// FetchTempToken implements TokenFetcher.
func (f TokenFetcherFunc) FetchTempToken(ctx context.Context, tableID string) (string, error) {
	return f(ctx, tableID)
}

// tokenEntry is one cached temporary token.
type tokenEntry struct {
	token    string
	issuedAt time.Time
}

// TempTokenManager caches short-lived per-table temporary tokens.
//
// Expiry is lazy: each entry carries its issuance time and is treated as
// absent once the lifetime has elapsed, checked at read time. There are
// no background timers. At most one token is cached per table id; two
// goroutines missing on the same table at the same time may both fetch,
// and the later store wins.
type TempTokenManager struct {
	fetcher  TokenFetcher
	lifetime time.Duration
	mutex    sync.RWMutex
	tokens   map[string]tokenEntry

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewTempTokenManager creates a manager with the default token lifetime.
func NewTempTokenManager(fetcher TokenFetcher) *TempTokenManager {
	return &TempTokenManager{
		fetcher:  fetcher,
		lifetime: constants.TempTokenLifetime,
		tokens:   make(map[string]tokenEntry),
		now:      time.Now,
	}
}

// GetToken returns a cached, unexpired token for the table, or fetches,
// caches, and returns a fresh one.
func (m *TempTokenManager) GetToken(ctx context.Context, tableID string) (string, error) {
	m.mutex.RLock()
	entry, ok := m.tokens[tableID]
	m.mutex.RUnlock()

	if ok && m.now().Sub(entry.issuedAt) < m.lifetime {
		return entry.token, nil
	}

	token, err := m.fetcher.FetchTempToken(ctx, tableID)
	if err != nil {
		return "", &qb.AuthError{TableID: tableID, Message: err.Error()}
	}

	m.mutex.Lock()
	m.tokens[tableID] = tokenEntry{token: token, issuedAt: m.now()}
	m.mutex.Unlock()

	return token, nil
}

// Scheme implements TokenManager.
func (m *TempTokenManager) Scheme() string {
	return constants.AuthSchemeTempToken
}

// Invalidate drops the cached token for a table, forcing the next
// GetToken to fetch.
func (m *TempTokenManager) Invalidate(tableID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.tokens, tableID)
}

// StaticTokenManager sends a long-lived user token on every request.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager around a fixed user token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(ctx context.Context, tableID string) (string, error) {
	return m.token, nil
}

// Scheme implements TokenManager.
func (m *StaticTokenManager) Scheme() string {
	return constants.AuthSchemeUserToken
}
