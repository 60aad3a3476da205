package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/backend"
	"loctodo/internal/gateway"
	"loctodo/internal/geocode"
	"loctodo/internal/model"
	"loctodo/internal/scheduler"
	"loctodo/internal/session"
	"loctodo/internal/suggest"
	"loctodo/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "loctodo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if cfg.BackendURL == "" || cfg.BackendAPIKey == "" {
		return fmt.Errorf("LOCTODO_BACKEND_URL and LOCTODO_API_KEY must be set")
	}
	if cfg.SessionDBPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.SessionDBPath = filepath.Join(dir, "loctodo", "session.db")
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		APIKey:  cfg.BackendAPIKey,
	})
	if err != nil {
		return err
	}

	tokens, err := backend.OpenTokenStore(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer tokens.Close()

	geocoder, err := geocode.NewClient(geocode.Config{BaseURL: cfg.GeocoderURL})
	if err != nil {
		return err
	}

	controller := session.NewController(client, tokens)
	store := gateway.New(client, controller.Session)
	suggester := suggest.NewGenerator(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := controller.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "session restore skipped: %v\n", err)
	}
	cancel()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewModel(update.Deps{
		Controller: controller,
		Store:      store,
		Geocoder:   geocoder,
		Suggester:  suggester,
		Scheduler:  engine,
	}, cfg))
	// Session transitions reach the UI for the program's lifetime, wherever
	// they originate: the auth view, the palette, or the provider client.
	controller.Subscribe(func(s model.Session) {
		program.Send(update.SessionChangedMsg{Session: s})
	})
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
