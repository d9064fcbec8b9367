package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIDMw)
	r.Use(c.requestLoggingMw)
	r.Use(cors.AllowAll().Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Route("/player", func(r chi.Router) {
			r.Post("/", c.createPlayer)
			r.Route("/{player-id}", func(r chi.Router) {
				r.Get("/state", c.getPlayerState)
				r.Delete("/", c.removePlayer)
			})
		})

		r.Route("/ws/player", func(r chi.Router) {
			r.Get("/view", c.attachView)
			r.Route("/{player-id}", func(r chi.Router) {
				r.Get("/app", c.attachApp)
			})
		})
	})

	return r
}
