package constants

import "errors"

// Configuration errors.
var (
	ErrNoRealmConfigured = errors.New("no realm hostname configured, use 'qbc login' or set QBC_REALM")
	ErrNoTokenConfigured = errors.New("no user token configured, use 'qbc login' or set QBC_USER_TOKEN")
	ErrNoTableSpecified  = errors.New("a table id is required")
)
