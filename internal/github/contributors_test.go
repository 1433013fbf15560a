package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridctl/internal/cache"
)

func TestIsBot(t *testing.T) {
	tests := []struct {
		name    string
		accType string
		login   string
		want    bool
	}{
		{"plain user", "User", "alice", false},
		{"type flag", "Bot", "renovate", true},
		{"login suffix", "User", "dependabot[bot]", true},
		{"uppercase suffix", "User", "Build[BOT]", true},
		{"bot-ish name without marker", "User", "robotics", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBot(tt.accType, tt.login))
		})
	}
}

func TestSortByContributions(t *testing.T) {
	list := []Contributor{
		{Login: "mallory", Contributions: 3},
		{Login: "bob", Contributions: 40},
		{Login: "alice", Contributions: 40},
		{Login: "carol", Contributions: 120},
	}

	sortByContributions(list)

	logins := make([]string, len(list))
	for i, c := range list {
		logins[i] = c.Login
	}
	assert.Equal(t, []string{"carol", "alice", "bob", "mallory"}, logins)
}

// fakeAPI serves just enough of the GitHub REST surface for the fetcher:
// a paginated contributor list plus per-user profile lookups.
func fakeAPI(t *testing.T) (*Fetcher, *atomic.Int32) {
	t.Helper()

	var listCalls atomic.Int32
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/meta/hybrid/contributors", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[
				{"login":"carol","type":"User","avatar_url":"https://a/carol","html_url":"https://g/carol","contributions":70},
				{"login":"ci-runner","type":"Bot","avatar_url":"https://a/ci","html_url":"https://g/ci","contributions":10}
			]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/meta/hybrid/contributors?page=2>; rel="next"`, srv.URL))
		fmt.Fprint(w, `[
			{"login":"alice","type":"User","avatar_url":"https://a/alice","html_url":"https://g/alice","contributions":50},
			{"login":"dependabot[bot]","type":"User","avatar_url":"https://a/dep","html_url":"https://g/dep","contributions":90}
		]`)
	})
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login":"alice","name":"Alice Example","bio":"kernel tinkerer"}`)
	})
	mux.HandleFunc("/users/carol", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := NewFetcher("meta", "hybrid", "")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	f.client.BaseURL = base
	return f, &listCalls
}

func TestFetchPaginatesFiltersAndEnriches(t *testing.T) {
	f, listCalls := fakeAPI(t)

	list, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load(), "both pages should be consumed")

	require.Len(t, list, 2, "bots must be dropped")
	assert.Equal(t, "carol", list[0].Login)
	assert.Equal(t, "alice", list[1].Login)

	// alice's profile resolved, carol's lookup failed and kept the basics.
	assert.Equal(t, "Alice Example", list[1].Name)
	assert.Equal(t, "kernel tinkerer", list[1].Bio)
	assert.Empty(t, list[0].Name)
	assert.Equal(t, 70, list[0].Contributions)
	assert.Equal(t, "https://g/carol", list[0].URL)
}

func TestServiceServesFromCacheWithinTTL(t *testing.T) {
	f, listCalls := fakeAPI(t)

	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(f, store)

	first, fromCache, err := svc.Contributors(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache)
	require.Len(t, first, 2)

	calls := listCalls.Load()
	second, fromCache, err := svc.Contributors(context.Background())
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, listCalls.Load(), "cache hit must not touch the network")
}

func TestServiceRefetchesOnceExpired(t *testing.T) {
	f, listCalls := fakeAPI(t)

	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), time.Nanosecond)
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(f, store)

	_, fromCache, err := svc.Contributors(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache)

	_, fromCache, err = svc.Contributors(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache, "stale entry must trigger a refetch")
	assert.Equal(t, int32(4), listCalls.Load(), "two full paginated fetches expected")
}
