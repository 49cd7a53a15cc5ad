package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/folem-api/internal/access"
	"github.com/phrazzld/folem-api/internal/config"
	"github.com/phrazzld/folem-api/internal/domain/mastery"
	"github.com/phrazzld/folem-api/internal/events"
	"github.com/phrazzld/folem-api/internal/platform/sqlite"
	"github.com/phrazzld/folem-api/internal/service"
	"github.com/phrazzld/folem-api/internal/share"
	"github.com/phrazzld/folem-api/internal/speech"
	"github.com/phrazzld/folem-api/internal/voice"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// application holds the wired dependencies for the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv             *sqlite.KV
	gate           *access.Gate
	profileService *service.ProfileService
	shareService   *share.Service
	speechManager  *speech.Manager
	voiceEmitter   *events.VoiceEmitter
}

// newApplication opens the store and wires every service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	kv, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	gate, err := access.NewGate(context.Background(), kv, access.Config{
		Timeout:      time.Duration(cfg.Access.PINTimeoutSeconds) * time.Second,
		PollInterval: time.Duration(cfg.Access.PollIntervalSeconds) * time.Second,
	}, logger)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("initializing access gate: %w", err)
	}

	profileService, err := service.NewProfileService(kv, mastery.NewTracker(), logger)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("initializing profile service: %w", err)
	}

	selectorParams := voice.NewDefaultParams()
	selectorParams.TargetLang = cfg.Speech.TargetLang
	voiceEmitter := events.NewVoiceEmitter(logger)
	speechManager := speech.NewManager(
		speech.NewLogSynthesizer(logger),
		voice.NewSelectorWithParams(selectorParams),
		voiceEmitter,
		nil, // the UI shell reports installed voices after startup
		logger,
	)

	return &application{
		config:         cfg,
		logger:         logger,
		kv:             kv,
		gate:           gate,
		profileService: profileService,
		shareService:   share.NewService(time.Duration(cfg.Share.TTLHours) * time.Hour),
		speechManager:  speechManager,
		voiceEmitter:   voiceEmitter,
	}, nil
}

// Run serves loopback HTTP until the context is canceled. The
// auto-lock loop shares the context lifetime.
func (app *application) Run(ctx context.Context) error {
	go app.gate.RunAutoLock(ctx)

	server := &http.Server{
		Addr:              net.JoinHostPort("127.0.0.1", fmt.Sprint(app.config.Server.Port)),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Close releases everything newApplication opened.
func (app *application) Close() {
	app.speechManager.Close()
	if err := app.kv.Close(); err != nil {
		app.logger.Error("failed to close store", "error", err)
	}
}
