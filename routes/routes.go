package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quiniela26/prediction-system/handlers"
	"github.com/quiniela26/prediction-system/middleware"
	"github.com/quiniela26/prediction-system/models"
)

// SetupRoutes mounts the full HTTP surface: public reads, authenticated
// player routes and the admin area.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	predictionHandler *handlers.PredictionHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	matchHandler *handlers.MatchHandler,
	teamHandler *handlers.TeamHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	// Public
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/teams", teamHandler.ListTeams)
	router.Get("/teams/{teamID}", teamHandler.GetTeam)
	router.Get("/players", teamHandler.ListPlayers)

	router.Get("/matches", matchHandler.ListMatches)
	router.Get("/matches/{matchID}", matchHandler.GetMatch)
	router.Get("/groups/standings", matchHandler.ListGroupStandings)
	router.Get("/tournament/result", matchHandler.GetTournamentResult)

	router.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
	router.Get("/leaderboard/rules", leaderboardHandler.GetRules)
	router.Get("/users/{userID}/position", leaderboardHandler.GetUserPosition)

	router.Get("/ws", webSocketHandler.ServeWs)

	// Authenticated players
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", userHandler.GetMyProfile)
		r.Put("/me/avatar", userHandler.UploadAvatar)
		r.Get("/me/position", leaderboardHandler.GetMyPosition)

		r.Route("/predictions", func(r chi.Router) {
			r.Get("/", predictionHandler.ListMyPredictions)
			r.Put("/groups", predictionHandler.SaveGroupPrediction)
			r.Put("/matches", predictionHandler.SaveMatchPrediction)
			r.Put("/knockouts", predictionHandler.SaveKnockoutPrediction)
			r.Put("/tournament", predictionHandler.SaveTournamentPrediction)
			r.Delete("/{category}/{predictionID}", predictionHandler.DeletePrediction)
		})
	})

	// Admin
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/teams", adminHandler.CreateTeam)
		r.Put("/teams/{teamID}/flag", adminHandler.UploadTeamFlag)
		r.Post("/players", adminHandler.CreatePlayer)

		r.Post("/matches", adminHandler.CreateMatch)
		r.Put("/matches/{matchID}/result", adminHandler.RecordResult)
		r.Post("/matches/{matchID}/finalize", adminHandler.FinalizeMatch)

		r.Put("/groups/{groupCode}/standings", adminHandler.RecordGroupStanding)
		r.Post("/groups/{groupCode}/finalize", adminHandler.FinalizeGroup)

		r.Put("/tournament/result", adminHandler.RecordTournamentResult)
		r.Post("/tournament/finalize", adminHandler.FinalizeTournament)

		r.Post("/recompute", adminHandler.RecomputeAllUsers)
		r.Post("/recompute/{userID}", adminHandler.RecomputeUser)
	})
}
