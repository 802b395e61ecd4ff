// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	engine "github.com/ctrlstudio/modelsync/internal/sync"
	"github.com/ctrlstudio/modelsync/internal/wire"
)

// Config holds server configuration.
type Config struct {
	Port   int
	Engine *engine.Engine
	WS     *wire.Handler
}

// Router builds the chi router with all routes registered. Split from Run
// so tests can drive it with httptest.
func Router(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(recovery, logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := &projectHandler{engine: cfg.Engine}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/project", h.GetProject)
		r.Get("/project/export", h.ExportProject)
		r.Post("/project/import", h.ImportProject)
		r.Get("/project/validate", h.ValidateProject)
		r.Get("/project/conflicts", h.GetConflicts)

		r.Post("/components", h.CreateComponent)
		r.Patch("/components/{id}", h.UpdateComponent)
		r.Delete("/components/{id}", h.DeleteComponent)

		r.Post("/nodes", h.CreateNode)
		r.Patch("/nodes/{id}", h.UpdateNode)
		r.Delete("/nodes/{id}", h.DeleteNode)

		r.Post("/connections", h.CreateConnection)
		r.Delete("/connections/{id}", h.DeleteConnection)

		r.Post("/files", h.CreateFile)
		r.Patch("/files", h.UpdateFile)
		r.Delete("/files", h.DeleteFile)

		r.Post("/screens", h.CreateScreen)
		r.Patch("/screens/{id}", h.UpdateScreen)
		r.Delete("/screens/{id}", h.DeleteScreen)

		r.Put("/settings", h.UpdateSettings)

		if cfg.WS != nil {
			r.Get("/ws", cfg.WS.ServeHTTP)
		}
	})

	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: Router(cfg),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
