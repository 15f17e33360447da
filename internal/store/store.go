package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPreferences = []byte("preferences")
	bucketHistory     = []byte("history")
)

// Keys
const (
	keyLastRoute = "last_route"
	keyMuted     = "muted"
	keySearches  = "searches"
)

// MaxRecentSearches bounds the search history
const MaxRecentSearches = 20

// DBFile is the database file created inside the store directory
const DBFile = "marquee.db"

// PreferenceStore implements domain.PreferenceStore using BoltDB.
type PreferenceStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	historyMu sync.Mutex // Serializes history read-modify-write

	// Every read is served from here once loaded
	cache map[string][]byte
}

var _ domain.PreferenceStore = (*PreferenceStore)(nil)

// New opens (or creates) the store in dir. An empty dir yields a
// memory-only store that forgets everything on exit.
func New(dir string) (*PreferenceStore, error) {
	if dir == "" {
		return &PreferenceStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, DBFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPreferences, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *PreferenceStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PreferenceStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// === Preferences ===

func (s *PreferenceStore) LastRoute() (string, bool) {
	var route string
	ok := s.get(bucketPreferences, keyLastRoute, &route)
	return route, ok && route != ""
}

func (s *PreferenceStore) SaveLastRoute(route string) error {
	return s.set(bucketPreferences, keyLastRoute, route)
}

// Muted defaults to true so trailers never start with sound unasked
func (s *PreferenceStore) Muted() bool {
	muted := true
	if !s.get(bucketPreferences, keyMuted, &muted) {
		return true
	}
	return muted
}

func (s *PreferenceStore) SaveMuted(muted bool) error {
	return s.set(bucketPreferences, keyMuted, muted)
}

// === History ===

// RecentSearches returns queries most recent first
func (s *PreferenceStore) RecentSearches() []string {
	var searches []string
	s.get(bucketHistory, keySearches, &searches)
	return searches
}

// AddRecentSearch records query at the front, dropping any older
// case-insensitive duplicate and trimming to MaxRecentSearches.
func (s *PreferenceStore) AddRecentSearch(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	prev := s.RecentSearches()
	next := make([]string, 0, len(prev)+1)
	next = append(next, query)
	for _, q := range prev {
		if strings.EqualFold(q, query) {
			continue
		}
		next = append(next, q)
		if len(next) == MaxRecentSearches {
			break
		}
	}
	return s.set(bucketHistory, keySearches, next)
}
