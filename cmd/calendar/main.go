package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/assessment-calendar/internal/api"
	"github.com/nhle/assessment-calendar/internal/app"
	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	dataPath := flag.String("data", model.DefaultDataPath(), "path to the local notes database")
	serverURL := flag.String("server", "", "override the API server URL")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}

	app.ApplyTheme(cfg.Display.Theme)

	if err := os.MkdirAll(filepath.Dir(*dataPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating data directory: %v\n", err)
		os.Exit(1)
	}
	s, err := store.NewSQLiteStore(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening local database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	client := api.NewClient(cfg.Server.BaseURL)

	p := tea.NewProgram(
		app.New(cfg, *configPath, client, s),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
