package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMissingAPIKey indicates the catalog credential is not configured
	ErrMissingAPIKey = errors.New("tmdb api key is not configured")

	// ErrUnauthorized indicates the catalog rejected the credential
	ErrUnauthorized = errors.New("tmdb api key was rejected")

	// ErrNotFound indicates the requested catalog entry does not exist
	ErrNotFound = errors.New("catalog entry not found")

	// ErrCatalogUnavailable indicates the catalog could not be reached or failed
	ErrCatalogUnavailable = errors.New("catalog is unavailable")

	// ErrNoPlayer indicates no media player could be launched
	ErrNoPlayer = errors.New("no media player available")
)
