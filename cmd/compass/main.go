package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"compass/internal/adapters/launcher"
	"compass/internal/adapters/scaffold"
	"compass/internal/adapters/sqlite"
	"compass/internal/adapters/tui"
	"compass/internal/application/commands"
	"compass/internal/config"
	"compass/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	defer logging.CatchPanic(log)
	log = log.Named("tui")

	store, err := sqlite.Open(cfg.DatabasePath, sqlite.WithLogger(log))
	if err != nil {
		log.Error("open catalogue", zap.Error(err))
		return err
	}
	defer store.Close()

	if _, err := commands.NewBootstrapCommand(store).Execute(context.Background()); err != nil {
		return err
	}

	// Initialize adapters
	l := launcher.New(launcher.WithLogger(log))
	scaffolder := scaffold.New(cfg.Cookiecutter,
		scaffold.WithVenv(cfg.CreateVenv),
		scaffold.WithLogger(log),
	)

	// Create and run TUI app
	app := tui.NewApp(store,
		tui.WithLauncher(l),
		tui.WithOpener(l),
		tui.WithScaffolder(scaffolder),
		tui.WithIDEs(cfg.IDECommands),
		tui.WithProjectsPath(cfg.ProjectsPath),
		tui.WithLogger(log),
	)

	log.Info("starting", zap.String("database", cfg.DatabasePath), zap.Strings("ides", cfg.IDECommands))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		return err
	}

	if app.Launched != "" {
		fmt.Println(app.Launched)
	}
	return nil
}
