package routes

import (
	"net/http"

	_ "github.com/Dosada05/swiss-tournament/docs"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Match      *handlers.MatchHandler
	Standings  *handlers.StandingsHandler
	Admin      *handlers.AdminHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	if opts.RequestLogging {
		router.Use(chiMiddleware.Logger)
	}
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(services.RoleOrganizer))
	}

	router.Post("/auth/token", h.Auth.Token)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.List)
		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", h.Player.Create)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", h.Tournament.Create)
		})

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.Get)
			r.Get("/players", h.Tournament.Players)
			r.Get("/matches", h.Match.List)
			r.Get("/standings", h.Standings.Standings)
			r.Get("/pairings", h.Standings.Pairings)

			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/players", h.Tournament.Enroll)
				r.Post("/matches", h.Match.Report)
				r.Post("/standings/export", h.Standings.Export)
			})
		})
	})

	router.Route("/admin", func(r chi.Router) {
		organizerOnly(r)
		r.Delete("/matches", h.Admin.ClearMatches)
		r.Delete("/enrollments", h.Admin.ClearEnrollments)
		r.Delete("/players", h.Admin.ClearPlayers)
		r.Delete("/tournaments", h.Admin.ClearTournaments)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
