package routes

import (
	"github.com/Dosada05/match-predictor/handlers"
	"github.com/Dosada05/match-predictor/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	fixtureHandler *handlers.FixtureHandler,
	catalogHandler *handlers.CatalogHandler,
	teamHandler *handlers.TeamHandler,
	streamHandler *handlers.StreamHandler,
	jwtSecret string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/matches", fixtureHandler.ListByDateRangeHandler)
	router.Get("/ws/matches", streamHandler.ServeFixtureStream)

	router.Get("/countries", catalogHandler.ListCountriesHandler)
	router.Get("/countries/{countryID}/leagues", catalogHandler.ListLeaguesHandler)

	router.Route("/leagues/{leagueID}", func(r chi.Router) {
		r.Get("/rounds", catalogHandler.ListRoundsHandler)
		r.Get("/rounds/{round}/matches", catalogHandler.ListRoundMatchesHandler)
	})

	// Административные маршруты: правка команд за JWT.
	router.Route("/teams/{teamID}", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize("admin"))

		r.Patch("/", teamHandler.RenameTeamHandler)
		r.Post("/crest", teamHandler.UploadCrestHandler)
	})
}
