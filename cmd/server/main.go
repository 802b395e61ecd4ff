package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/ctrlstudio/modelsync/internal/config"
	"github.com/ctrlstudio/modelsync/internal/eventbus"
	"github.com/ctrlstudio/modelsync/internal/identity"
	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/server"
	"github.com/ctrlstudio/modelsync/internal/store"
	engine "github.com/ctrlstudio/modelsync/internal/sync"
	"github.com/ctrlstudio/modelsync/internal/wire"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}

	project, err := loadOrCreateProject(ctx, st, cfg.Project.Name)
	if err != nil {
		log.Fatalf("loading project: %v", err)
	}
	log.Printf("project %q loaded (%d components, %d files)",
		project.Name, len(project.Components), len(project.CodeModel.Files))

	eng, err := engine.New(project, identity.ContextProvider{})
	if err != nil {
		log.Fatalf("creating sync engine: %v", err)
	}

	bus := eventbus.New(cfg.Project.BusBuffer)
	hub := wire.NewHub()
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("autosave", eventbus.NewSaveConsumer(eng, st))
	bus.Subscribe("broadcast", hub)
	bus.Start(ctx)

	// Bridge: every applied sync event goes onto the bus for the async
	// consumers.
	eng.OnAny(func(evt model.SyncEvent) {
		bus.Publish(ctx, evt)
	})

	err = server.Run(ctx, server.Config{
		Port:   cfg.Server.Port,
		Engine: eng,
		WS:     wire.NewHandler(eng, hub),
	})

	stop()
	bus.Stop()

	if err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Storage.DSN == "" {
		log.Println("no DATABASE_URL, using in-memory store")
		return store.NewMemoryStore(), nil
	}

	db, err := sql.Open("sqlite", cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := store.NewSQLiteStore(db)
	if err := s.CreateTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func loadOrCreateProject(ctx context.Context, st store.Store, name string) (*model.CTRLProject, error) {
	p, err := st.LatestProject(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	p = model.NewProject(name)
	if err := st.SaveProject(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("created new project %q (%s)", p.Name, p.ID)
	return p, nil
}
