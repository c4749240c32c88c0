package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pdxmph/user-manager-tui/internal/config"
	"github.com/pdxmph/user-manager-tui/internal/session"
	"github.com/pdxmph/user-manager-tui/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/user-manager-tui/config.toml)")
	demo := flag.Bool("demo", false, "start with sample users")
	writeConfig := flag.Bool("write-config", false, "write the effective config file and exit")
	flag.Parse()

	// Load config
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal(err)
	}

	if *writeConfig {
		if *configPath != "" {
			err = cfg.SaveTo(*configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Config written")
		return
	}

	// The TUI owns the terminal, so logs go to a file
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0755); err != nil {
		log.Fatal(fmt.Errorf("creating log directory: %w", err))
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "user-manager")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	// Create session
	s := session.New(session.WithLogger(logger))
	if *demo || cfg.UI.Demo {
		if err := session.LoadFixtures(s); err != nil {
			log.Fatal(err)
		}
	}

	// Create model
	model := tui.New(tui.Params{
		Session: s,
		Accent:  cfg.UI.Accent,
		Logger:  logger,
	})
	defer model.Close()

	logger.Info("starting", "users", len(s.Users()), "listeners", s.Hub().Len())

	// Start the program
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
