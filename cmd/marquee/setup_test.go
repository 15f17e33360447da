package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSetupClient(t *testing.T, status int) (*tmdb.Client, *string) {
	t.Helper()
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"results":[]}`))
			return
		}
		w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
	}))
	t.Cleanup(server.Close)

	return tmdb.New(tmdb.Options{BaseURL: server.URL, APIKey: "k"}, adapter.NullLogger()), &path
}

func TestVerifyKeyAccepted(t *testing.T) {
	client, path := newSetupClient(t, http.StatusOK)

	require.NoError(t, verifyKey(context.Background(), client))
	assert.Equal(t, "/trending/movie/week", *path)
}

func TestVerifyKeyRejected(t *testing.T) {
	client, _ := newSetupClient(t, http.StatusUnauthorized)

	err := verifyKey(context.Background(), client)
	require.Error(t, err)
	assert.True(t, tmdb.IsAuthError(err))
}

func TestVerifyKeyServerError(t *testing.T) {
	client, _ := newSetupClient(t, http.StatusInternalServerError)

	err := verifyKey(context.Background(), client)
	require.Error(t, err)
	assert.False(t, tmdb.IsAuthError(err))
}
