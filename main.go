package main

import (
	"database/sql"
	"log"

	_ "github.com/joho/godotenv/autoload"
	_ "modernc.org/sqlite"

	"github.com/gin-gonic/gin"
)

var db *sql.DB

func main() {
	cfg := loadConfig()

	var err error
	db, err = sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	initAdminToken()
	scheduler := initTracking()
	defer scheduler.Stop()

	store, err := NewSQLiteStore(db)
	if err != nil {
		log.Fatal("Failed to initialize key/value store:", err)
	}

	stateCache := NewTimedCache(store)
	github := NewGitHubClient(cfg.GitHubAPI, cfg.GitHubUser, cfg.GitHubToken)
	repos := NewRepoCache(store, github, ManualProjects)
	spotify := NewSpotifyClient(cfg)
	poller := NewNowPlayingPoller(spotify)
	limiter := NewRateLimiter(contactCooldown)
	sender := NewSMTPSender(cfg)

	r := gin.Default()
	r.Use(visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/api/about", func(c *gin.Context) {
		c.JSON(200, gin.H{"about": AboutMe})
	})

	api := r.Group("/api")
	api.GET("/projects", projectsHandler(repos))
	api.GET("/skills", skillsHandler)
	api.GET("/certifications", certificationsHandler)
	api.GET("/timeline", timelineHandler)
	api.GET("/github", githubProxyHandler(github))
	api.GET("/spotify/token", spotifyTokenHandler(spotify))
	api.GET("/spotify/now-playing", nowPlayingHandler(poller))
	api.POST("/contact", contactHandler(limiter, sender, db))
	api.GET("/state/:section", getStateHandler(stateCache))
	api.PUT("/state/:section", putStateHandler(stateCache))

	setupAdminRoutes(r)

	r.Run(":" + cfg.Port)
}
