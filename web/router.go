package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(render))

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", listLeaguesHandler(ctrl, render))
			r.Post("/", addLeagueHandler(ctrl, render))
			r.Get("/{leagueID}", getLeagueHandler(ctrl, render))
			r.Put("/{leagueID}", updateLeagueHandler(ctrl, render))
			r.Delete("/{leagueID}", deleteLeagueHandler(ctrl, render))
			r.Post("/{leagueID}/clear-player-pool", clearPlayerPoolHandler(ctrl, render))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", listTeamsHandler(ctrl, render))
			r.Post("/", addTeamHandler(ctrl, render))
			r.Put("/{teamID}", updateTeamHandler(ctrl, render))
			r.Delete("/{teamID}", deleteTeamHandler(ctrl, render))
			r.Get("/{teamID}/roster", rosterHandler(ctrl, render))
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", listPlayersHandler(ctrl, render))
			r.Get("/{playerID}", getPlayerHandler(ctrl, render))
			r.Post("/custom", addCustomPlayerHandler(ctrl, render))
			r.Post("/import", importPlayersHandler(ctrl, render))
		})

		r.Route("/draft", func(r chi.Router) {
			r.Post("/bid", bidHandler(ctrl, render))
			r.Delete("/bid/last", undoHandler(ctrl, render))
			r.Post("/keeper", keeperHandler(ctrl, render))
			r.Put("/position", swapPositionHandler(ctrl, render))
			r.Get("/history", historyHandler(ctrl, render))
			r.Post("/keepers/finalize", finalizeKeepersHandler(ctrl, render))
			r.Post("/keepers/reopen", reopenKeepersHandler(ctrl, render))
			r.Post("/taxi/start", startTaxiHandler(ctrl, render))
			r.Get("/post-analysis", postAnalysisHandler(ctrl, render))
			r.Get("/export", exportHandler(ctrl, render))
		})
	})

	return r
}
