package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() {
	s.r = chi.NewRouter()

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.r.Use(middleware.RequestID)
	s.r.Use(middleware.RealIP)
	s.r.Use(middleware.Recoverer)
	s.r.Use(middleware.Timeout(60 * time.Second))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		JSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": len(s.board.Sessions())})
	})
	s.r.Handle("/metrics", promhttp.Handler())

	s.r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))

		r.Get("/pages", s.handlePagesGet)
		r.Post("/pages/{page}/sessions", s.handleSessionCreate)
		r.Get("/history", s.handleHistoryGet)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleSessionsList)
			r.Get("/{id}", s.handleSessionGet)
			r.Post("/{id}/search", s.handleSessionSearch)
			r.Post("/{id}/refresh", s.handleSessionRefresh)
			r.Post("/{id}/retry", s.handleSessionRetry)
			r.Delete("/{id}", s.handleSessionDelete)
		})
	})
}
