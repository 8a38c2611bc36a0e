package main

import (
	"context"
	"net/http"

	"geocoding-cache/internal/config"
	"geocoding-cache/internal/handler"
	"geocoding-cache/internal/nominatim"
	"geocoding-cache/internal/repository"
	"geocoding-cache/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewCacheRepository(conn)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure cache schema")
	}

	lookup := nominatim.NewClient(config.NominatimBaseURL, config.HTTPClientTimeout)

	resolveService := service.NewResolveService(repo, lookup, log.Logger)
	suggestionService := service.NewSuggestionService(lookup, log.Logger)

	geocodeHandler := handler.NewGeocodeHandler(resolveService)
	suggestHandler := handler.NewSuggestHandler(suggestionService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/geocode", geocodeHandler.Geocode)
	r.GET("/suggestions", suggestHandler.Suggest)

	r.Run(config.ServerAddress)
}
