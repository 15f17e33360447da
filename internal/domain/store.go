package domain

// PreferenceStore persists small pieces of user state between runs.
// Catalog responses are never stored here.
type PreferenceStore interface {
	// LastRoute returns the last visited listing route
	LastRoute() (string, bool)
	SaveLastRoute(route string) error

	// Muted returns the trailer audio preference (muted by default)
	Muted() bool
	SaveMuted(muted bool) error

	// RecentSearches returns recent queries, most recent first
	RecentSearches() []string
	AddRecentSearch(query string) error

	Close() error
}
