package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	spotifyTimeout = 10 * time.Second

	// nowPlayingMinInterval serializes upstream polling: a fetch under this
	// old is answered from the last snapshot instead of hitting Spotify
	// again.
	nowPlayingMinInterval = 30 * time.Second
)

// NowPlaying is the normalized currently-playing shape handed to the UI.
// Anything that goes wrong upstream collapses to {isPlaying:false}.
type NowPlaying struct {
	IsPlaying     bool   `json:"isPlaying"`
	Title         string `json:"title,omitempty"`
	Artist        string `json:"artist,omitempty"`
	Album         string `json:"album,omitempty"`
	AlbumImageURL string `json:"albumImageUrl,omitempty"`
	SongURL       string `json:"songUrl,omitempty"`
}

// SpotifyClient talks to the Spotify accounts and web API endpoints with
// credentials from env.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	refreshToken string
	accountsURL  string
	apiURL       string
	client       *http.Client
}

func NewSpotifyClient(cfg Config) *SpotifyClient {
	return &SpotifyClient{
		clientID:     cfg.SpotifyClientID,
		clientSecret: cfg.SpotifyClientSecret,
		redirectURI:  cfg.SpotifyRedirectURI,
		refreshToken: cfg.SpotifyRefreshToken,
		accountsURL:  strings.TrimSuffix(cfg.SpotifyAccountsURL, "/"),
		apiURL:       strings.TrimSuffix(cfg.SpotifyAPIURL, "/"),
		client:       &http.Client{Timeout: spotifyTimeout},
	}
}

// TokenResponse is the upstream token endpoint shape, relayed as-is.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// basicAuth is the base64(id:secret) credential the accounts endpoint
// expects.
func (s *SpotifyClient) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.clientSecret))
}

func (s *SpotifyClient) token(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+s.basicAuth())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	return &token, nil
}

// ExchangeCode trades an authorization code for an access token.
func (s *SpotifyClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.redirectURI)
	return s.token(ctx, form)
}

// RefreshAccessToken trades the stored refresh token for an access token.
func (s *SpotifyClient) RefreshAccessToken(ctx context.Context) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", s.refreshToken)
	return s.token(ctx, form)
}

// currentlyPlayingResponse is the slice of the upstream shape we care about.
type currentlyPlayingResponse struct {
	IsPlaying bool `json:"is_playing"`
	Item      *struct {
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Name   string `json:"name"`
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	} `json:"item"`
}

// NowPlaying queries the currently-playing state. A 204 (nothing playing),
// any non-2xx status, a non-JSON body, or a missing item all degrade to
// {isPlaying:false}; the site never shows an error for this widget.
func (s *SpotifyClient) NowPlaying(ctx context.Context) NowPlaying {
	token, err := s.RefreshAccessToken(ctx)
	if err != nil {
		log.Printf("spotify: token refresh failed: %v", err)
		return NowPlaying{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.apiURL+"/v1/me/player/currently-playing", nil)
	if err != nil {
		return NowPlaying{}
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("spotify: now-playing request failed: %v", err)
		return NowPlaying{}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return NowPlaying{}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("spotify: now-playing returned %d: %s", resp.StatusCode, string(body))
		return NowPlaying{}
	}

	var playing currentlyPlayingResponse
	if err := json.NewDecoder(resp.Body).Decode(&playing); err != nil {
		log.Printf("spotify: decoding now-playing failed: %v", err)
		return NowPlaying{}
	}
	if playing.Item == nil {
		return NowPlaying{}
	}

	artists := make([]string, 0, len(playing.Item.Artists))
	for _, a := range playing.Item.Artists {
		artists = append(artists, a.Name)
	}
	albumImage := ""
	if len(playing.Item.Album.Images) > 0 {
		albumImage = playing.Item.Album.Images[0].URL
	}

	return NowPlaying{
		IsPlaying:     playing.IsPlaying,
		Title:         playing.Item.Name,
		Artist:        strings.Join(artists, ", "),
		Album:         playing.Item.Album.Name,
		AlbumImageURL: albumImage,
		SongURL:       playing.Item.ExternalURLs.Spotify,
	}
}

// NowPlayingPoller caps how often the upstream is queried. Requests inside
// the minimum interval are answered from the last snapshot, so concurrent
// page loads never stack in-flight fetches.
type NowPlayingPoller struct {
	client      *SpotifyClient
	minInterval time.Duration
	now         func() time.Time

	mu        sync.Mutex
	lastFetch time.Time
	snapshot  NowPlaying
}

func NewNowPlayingPoller(client *SpotifyClient) *NowPlayingPoller {
	return &NowPlayingPoller{
		client:      client,
		minInterval: nowPlayingMinInterval,
		now:         time.Now,
	}
}

func (p *NowPlayingPoller) Current(ctx context.Context) NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastFetch.IsZero() && now.Sub(p.lastFetch) < p.minInterval {
		return p.snapshot
	}

	p.snapshot = p.client.NowPlaying(ctx)
	p.lastFetch = now
	return p.snapshot
}

// spotifyTokenHandler exchanges either a ?code= from the authorization flow
// or the stored refresh token for an access token.
func spotifyTokenHandler(client *SpotifyClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			token *TokenResponse
			err   error
		)
		if code := c.Query("code"); code != "" {
			token, err = client.ExchangeCode(c.Request.Context(), code)
		} else {
			token, err = client.RefreshAccessToken(c.Request.Context())
		}
		if err != nil {
			log.Printf("spotify: token exchange failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Token exchange failed"})
			return
		}
		c.JSON(http.StatusOK, token)
	}
}

func nowPlayingHandler(poller *NowPlayingPoller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, poller.Current(c.Request.Context()))
	}
}
