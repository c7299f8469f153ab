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

// fakeSpotify serves both the accounts token endpoint and the web API from
// one server.
type fakeSpotify struct {
	srv          *httptest.Server
	playingCalls int
	playingBody  string
	playingCode  int
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	t.Helper()
	f := &fakeSpotify{playingCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		f.playingCalls++
		if f.playingCode == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.playingCode)
		w.Write([]byte(f.playingBody))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func newTestSpotifyClient(f *fakeSpotify) *SpotifyClient {
	return NewSpotifyClient(Config{
		SpotifyClientID:     "id",
		SpotifyClientSecret: "secret",
		SpotifyRefreshToken: "rt",
		SpotifyAccountsURL:  f.srv.URL,
		SpotifyAPIURL:       f.srv.URL,
	})
}

const playingJSON = `{
	"is_playing": true,
	"item": {
		"name": "Resonance",
		"artists": [{"name": "Home"}],
		"album": {"name": "Odyssey", "images": [{"url": "https://img/cover.jpg"}]},
		"external_urls": {"spotify": "https://open.spotify.com/track/x"}
	}
}`

func TestNowPlayingNormalization(t *testing.T) {
	f := newFakeSpotify(t)
	f.playingBody = playingJSON

	got := newTestSpotifyClient(f).NowPlaying(context.Background())
	assert.Equal(t, NowPlaying{
		IsPlaying:     true,
		Title:         "Resonance",
		Artist:        "Home",
		Album:         "Odyssey",
		AlbumImageURL: "https://img/cover.jpg",
		SongURL:       "https://open.spotify.com/track/x",
	}, got)
}

func TestNowPlayingDegradesToNotPlaying(t *testing.T) {
	f := newFakeSpotify(t)

	// 204: nothing playing.
	f.playingCode = http.StatusNoContent
	assert.Equal(t, NowPlaying{}, newTestSpotifyClient(f).NowPlaying(context.Background()))

	// Upstream error.
	f.playingCode = http.StatusBadGateway
	f.playingBody = "gateway error"
	assert.Equal(t, NowPlaying{}, newTestSpotifyClient(f).NowPlaying(context.Background()))

	// Non-JSON body.
	f.playingCode = http.StatusOK
	f.playingBody = "<html></html>"
	assert.Equal(t, NowPlaying{}, newTestSpotifyClient(f).NowPlaying(context.Background()))

	// Playing state with no item.
	f.playingBody = `{"is_playing": false, "item": null}`
	assert.Equal(t, NowPlaying{}, newTestSpotifyClient(f).NowPlaying(context.Background()))
}

func TestRefreshAccessToken(t *testing.T) {
	f := newFakeSpotify(t)

	token, err := newTestSpotifyClient(f).RefreshAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-1", token.AccessToken)
}

func TestPollerMinInterval(t *testing.T) {
	f := newFakeSpotify(t)
	f.playingBody = playingJSON

	poller := NewNowPlayingPoller(newTestSpotifyClient(f))
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poller.now = func() time.Time { return now }

	first := poller.Current(context.Background())
	require.True(t, first.IsPlaying)
	require.Equal(t, 1, f.playingCalls)

	// Inside the interval the snapshot is reused; no new upstream request.
	now = now.Add(10 * time.Second)
	second := poller.Current(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.playingCalls)

	// Past the interval the poller fetches again.
	now = now.Add(25 * time.Second)
	poller.Current(context.Background())
	assert.Equal(t, 2, f.playingCalls)
}
