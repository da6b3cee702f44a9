package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ttleague/tournament-system/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Put("/", tournamentHandler.UpdateHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)
			r.Post("/start", tournamentHandler.StartHandler)
			r.Post("/cancel", tournamentHandler.CancelHandler)

			r.Get("/standings", tournamentHandler.StandingsHandler)
			r.Get("/groups/standings", tournamentHandler.GroupStandingsHandler)
			r.Get("/bracket", tournamentHandler.BracketHandler)

			r.Get("/participants", participantHandler.ListHandler)
			r.Post("/participants", participantHandler.RegisterHandler)

			r.Get("/matches", matchHandler.ListByTournamentHandler)
		})
	})

	router.Route("/participants", func(r chi.Router) {
		r.Delete("/{participantID}", participantHandler.WithdrawHandler)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByIDHandler)
		r.Post("/{matchID}/result", matchHandler.SubmitResultHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
