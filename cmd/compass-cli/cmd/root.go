package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compass/internal/adapters/sqlite"
	"compass/internal/application/commands"
	"compass/internal/config"
	"compass/internal/logging"
	"compass/internal/ports"
)

// Command annotations. skipConfig commands run before any config is read;
// skipStore commands read config but never open the database.
const (
	skipConfig = "compass/skip-config"
	skipStore  = "compass/skip-store"
)

var (
	configPath string
	dbPath     string

	cfg      *config.Config
	store    ports.CatalogueStore
	log      = zap.NewNop()
	closeLog = func() error { return nil }

	// now is the clock used for last-opened stamps
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "compass-cli",
	Short: "Manage the compass project catalogue from the shell",
	Long: `compass-cli reads and edits the same project catalogue as the compass TUI.

Projects are directories filed under categories. One category is active;
the TUI opens on it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if _, ok := cmd.Annotations[skipConfig]; ok {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			expanded, err := config.ExpandPath(dbPath)
			if err != nil {
				return err
			}
			loaded.DatabasePath = expanded
		}
		cfg = loaded

		if _, ok := cmd.Annotations[skipStore]; ok {
			return nil
		}

		logger, closeFn, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		log = logger.Named("cli").With(zap.String("command", cmd.CommandPath()))
		closeLog = closeFn

		s, err := sqlite.Open(cfg.DatabasePath, sqlite.WithLogger(log))
		if err != nil {
			return err
		}
		store = s

		if _, err := commands.NewBootstrapCommand(store).Execute(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return shutdown()
	},
}

func shutdown() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
	}
	if cerr := closeLog(); err == nil {
		err = cerr
	}
	closeLog = func() error { return nil }
	log = zap.NewNop()
	return err
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		_ = shutdown()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the catalogue database (overrides database_path)")
}

// GetStore returns the opened catalogue store
func GetStore() ports.CatalogueStore {
	return store
}
