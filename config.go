package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// Config collects all environment configuration in one place.
// Credentials stay in env vars; see .env.example.
type Config struct {
	Port   string
	DBPath string

	// Outbound mail transport
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	// GitHub repository listing
	GitHubUser  string
	GitHubToken string
	GitHubAPI   string

	// Spotify now-playing flow
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	SpotifyRefreshToken string
	SpotifyAccountsURL  string
	SpotifyAPIURL       string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig() Config {
	cfg := Config{
		Port:   getenv("PORT", "8080"),
		DBPath: getenv("DB_PATH", "portfolio.db"),

		SMTPHost: getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		ToEmail:  getenv("TO_EMAIL", "snxethan@gmail.com"),

		GitHubUser:  getenv("GITHUB_USER", "snxethan"),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		GitHubAPI:   getenv("GITHUB_API", "https://api.github.com"),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  os.Getenv("SPOTIFY_REDIRECT_URI"),
		SpotifyRefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
		SpotifyAccountsURL:  getenv("SPOTIFY_ACCOUNTS_URL", "https://accounts.spotify.com"),
		SpotifyAPIURL:       getenv("SPOTIFY_API_URL", "https://api.spotify.com"),
	}

	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: SMTP credentials not configured, contact form delivery will fail. Set SMTP_USER and SMTP_PASS.")
		}
	}
	if cfg.GitHubToken == "" && gin.Mode() == gin.DebugMode {
		log.Println("WARNING: GITHUB_TOKEN not set, GitHub requests are unauthenticated and heavily rate limited.")
	}

	return cfg
}
