package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoints and header names.
const (
	// DefaultAPIEndpoint is the REST API base URL.
	DefaultAPIEndpoint = "https://api.quickbase.com/v1"

	// HeaderRealmHostname carries the realm identifier on every request.
	HeaderRealmHostname = "QB-Realm-Hostname"

	// AuthSchemeTempToken is the Authorization scheme for temporary tokens.
	AuthSchemeTempToken = "QB-TEMP-TOKEN"

	// AuthSchemeUserToken is the Authorization scheme for long-lived user tokens.
	AuthSchemeUserToken = "QB-USER-TOKEN"

	// LegacyUserInfoAction is the legacy XML API action for user profiles.
	LegacyUserInfoAction = "API_GetUserInfo"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Token and cache lifetimes.
const (
	// TempTokenLifetime is how long a temporary table token stays valid.
	// The vendor issues 5-minute tokens; expiring a minute early keeps a
	// token from dying mid-request.
	TempTokenLifetime = 4 * time.Minute

	// DefaultCacheSize is the default maximum number of response cache entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default response cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// Record identity.
const (
	// RecordIDFieldID is the reserved field id of the Record ID# column.
	RecordIDFieldID = 3
)
