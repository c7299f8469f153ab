package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoListingJSON = `[
	{"name":"portfolio","description":"this site","language":"Go","topics":["web"],"created_at":"2024-05-01T00:00:00Z"},
	{"name":"dotfiles","description":"configs","language":"Shell","topics":[],"created_at":"2022-01-01T00:00:00Z"}
]`

type fakeGitHub struct {
	srv   *httptest.Server
	calls int
	fail  bool
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		if f.fail {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(repoListingJSON))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newTestRepoCache(t *testing.T, f *fakeGitHub, manual []Project) (*RepoCache, *MemoryStore, *time.Time) {
	t.Helper()
	store := NewMemoryStore()
	rc := NewRepoCache(store, NewGitHubClient(f.srv.URL, "snxethan", ""), manual)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rc.now = func() time.Time { return now }
	return rc, store, &now
}

func TestRepoCacheColdFetchAndFreshServe(t *testing.T) {
	upstream := newFakeGitHub(t)
	rc, store, now := newTestRepoCache(t, upstream, nil)

	projects, tags := rc.Projects(context.Background())
	require.Len(t, projects, 2)
	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, []string{TagAll, "go", "shell", "web"}, tags)

	// Both keys are written together on refresh.
	_, ok := store.Get(repoPayloadKey)
	require.True(t, ok)
	_, ok = store.Get(repoExpiryKey)
	require.True(t, ok)

	// A fresh cache answers without touching the network.
	*now = now.Add(repoCacheTTL / 2)
	projects, _ = rc.Projects(context.Background())
	assert.Len(t, projects, 2)
	assert.Equal(t, 1, upstream.calls)
}

func TestRepoCacheStaleRefetches(t *testing.T) {
	upstream := newFakeGitHub(t)
	rc, _, now := newTestRepoCache(t, upstream, nil)

	rc.Projects(context.Background())
	require.Equal(t, 1, upstream.calls)

	*now = now.Add(repoCacheTTL + time.Second)
	rc.Projects(context.Background())
	assert.Equal(t, 2, upstream.calls)
}

func TestRepoCacheCorruptPayloadDeletedAndRefetched(t *testing.T) {
	upstream := newFakeGitHub(t)
	rc, store, _ := newTestRepoCache(t, upstream, nil)

	require.NoError(t, store.Put(repoPayloadKey, "{corrupt"))
	require.NoError(t, store.Put(repoExpiryKey, "99999999999999"))

	projects, _ := rc.Projects(context.Background())
	assert.Len(t, projects, 2)
	assert.Equal(t, 1, upstream.calls, "corruption must trigger a refetch despite a future expiry")

	payload, ok := store.Get(repoPayloadKey)
	require.True(t, ok)
	assert.NotEqual(t, "{corrupt", payload)
}

func TestRepoCacheFailureFallsBackToStale(t *testing.T) {
	upstream := newFakeGitHub(t)
	rc, _, now := newTestRepoCache(t, upstream, nil)

	rc.Projects(context.Background())
	require.Equal(t, 1, upstream.calls)

	*now = now.Add(repoCacheTTL + time.Second)
	upstream.fail = true

	projects, _ := rc.Projects(context.Background())
	assert.Len(t, projects, 2, "stale listing should still be served")
	assert.Equal(t, 2, upstream.calls)
}

func TestRepoCacheFailureWithEmptyCacheKeepsManualList(t *testing.T) {
	upstream := newFakeGitHub(t)
	upstream.fail = true

	manual := []Project{{Name: "offline-project", Language: "Go"}}
	rc, _, _ := newTestRepoCache(t, upstream, manual)

	projects, tags := rc.Projects(context.Background())
	require.Len(t, projects, 1)
	assert.Equal(t, "offline-project", projects[0].Name)
	assert.Equal(t, []string{TagAll, "go"}, tags)
}

func TestRepoCacheMergeIsConcatenation(t *testing.T) {
	upstream := newFakeGitHub(t)
	// Same name as a fetched repo on purpose: no de-duplication happens.
	manual := []Project{{Name: "portfolio", Language: "Go", Featured: true}}
	rc, _, _ := newTestRepoCache(t, upstream, manual)

	projects, _ := rc.Projects(context.Background())
	require.Len(t, projects, 3)
	assert.Equal(t, "portfolio", projects[0].Name)
	assert.Equal(t, "portfolio", projects[2].Name)
	assert.True(t, projects[2].Featured)
}

func TestRepoCacheNilStorage(t *testing.T) {
	upstream := newFakeGitHub(t)
	rc := NewRepoCache(nil, NewGitHubClient(upstream.srv.URL, "snxethan", ""), nil)

	projects, _ := rc.Projects(context.Background())
	assert.Len(t, projects, 2)

	// Without a medium every call fetches; the guard just disables
	// persistence.
	rc.Projects(context.Background())
	assert.Equal(t, 2, upstream.calls)
}
