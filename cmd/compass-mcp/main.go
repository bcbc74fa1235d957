package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	mcpadapter "compass/internal/adapters/mcp"
	"compass/internal/adapters/sqlite"
	"compass/internal/application/commands"
	"compass/internal/config"
	"compass/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "compass-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("compass-mcp", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", config.DefaultPath(), "path to the config file")
	dbPath := flags.String("db", "", "path to the catalogue database (overrides database_path)")
	readOnly := flags.Bool("read-only", false, "only register read tools")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		if cfg.DatabasePath, err = config.ExpandPath(*dbPath); err != nil {
			return err
		}
	}

	// stdout carries the protocol, so logs only go to the file
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	log = log.Named("mcp")

	store, err := sqlite.Open(cfg.DatabasePath, sqlite.WithLogger(log))
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := commands.NewBootstrapCommand(store).Execute(context.Background()); err != nil {
		return err
	}

	mcpServer := server.NewMCPServer(
		"compass-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	if !*readOnly {
		mcpadapter.RegisterWriteTools(mcpServer, store, time.Now)
	}

	log.Info("serving", zap.String("database", cfg.DatabasePath), zap.Bool("read_only", *readOnly))
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("serve", zap.Error(err))
		return err
	}
	return nil
}
