package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livechess/internal/app"
	"livechess/internal/app/onboarding"
	"livechess/internal/app/session"
	"livechess/internal/config"
	"livechess/internal/ports/httpapi"
	"livechess/internal/ports/ws"
	"livechess/internal/storage/sqlite"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("open snapshot store", "err", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	engine := app.NewService(nil, nil)
	restoreBoard(context.Background(), engine, store, log)

	sessions := session.NewService(cfg.SessionSecret, cfg.SessionIssuer)
	directory := onboarding.NewService(engine, sessions)
	hub := ws.NewHub(engine, directory, cfg.OriginAllowlist, log)
	api := httpapi.NewHandler(directory, log)

	mux := http.NewServeMux()
	api.Routes(mux)
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go saveLoop(ctx, engine, store, cfg.SaveInterval, log)

	server := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	saveBoard(shutdownCtx, engine, store, log)
}

// restoreBoard loads the persisted snapshot into the engine. A missing or
// corrupt snapshot leaves the default layout in place.
func restoreBoard(ctx context.Context, engine *app.Service, store *sqlite.Store, log *slog.Logger) {
	blob, ok, err := store.Load(ctx)
	if err != nil {
		log.Error("load snapshot", "err", err)
		return
	}
	if !ok {
		log.Info("no snapshot found, starting from default board")
		return
	}
	if err := engine.LoadSnapshot(blob); err != nil {
		log.Warn("snapshot is corrupt, starting from default board", "err", err)
		return
	}
	log.Info("board restored", "checksum", engine.Checksum())
}

// saveLoop persists the board on a fixed interval until ctx is done.
func saveLoop(ctx context.Context, engine *app.Service, store *sqlite.Store, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			saveBoard(ctx, engine, store, log)
		case <-ctx.Done():
			return
		}
	}
}

func saveBoard(ctx context.Context, engine *app.Service, store *sqlite.Store, log *slog.Logger) {
	blob, err := engine.DumpSnapshot()
	if err != nil {
		log.Error("dump snapshot", "err", err)
		return
	}
	if err := store.Save(ctx, blob, engine.Checksum()); err != nil {
		log.Error("save snapshot", "err", err)
	}
}
