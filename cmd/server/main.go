package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"

	"github.com/youruser/tcgbuilder/internal/api"
)

func init() {
	// .env is optional, env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Info(".env file loaded")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
}

func main() {
	gamesDir := envOr("GAMES_DIR", "games")
	dataDir := envOr("DATA_DIR", "data")
	port := envOr("PORT", "8080")
	baseURL := envOr("BASE_URL", "http://localhost:"+port)

	srv, err := api.NewServer(gamesDir, dataDir, baseURL)
	if err != nil {
		log.Fatalf("loading games: %v", err)
	}

	r := gin.Default()
	srv.RegisterRoutes(r)

	log.Infof("starting server on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
