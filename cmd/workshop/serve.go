package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amonks/workshop/app"
	"github.com/amonks/workshop/internal/config"
	"github.com/amonks/workshop/internal/logging"
	"github.com/amonks/workshop/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workshop server",
	Long: `Start the workshop server.

The server holds the todo and user stores in memory, answers JSON RPCs and
serves the HTML views under /web/. State is lost when the server stops.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveWatchConfig bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveWatchConfig, "watch-config", false, "Reapply the filter and preferences when a config file changes")
}

func runServe(cmd *cobra.Command, _ []string) error {
	dir, err := workingDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	addr, err := server.ResolveAddr(dir, rootAddr)
	if err != nil {
		return err
	}
	logger, err := logging.New(rootDebug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.NewServer(server.ServerOptions{
		Context:     app.New(app.Options{Config: cfg, Logger: logger}),
		ConfigDir:   dir,
		WatchConfig: serveWatchConfig,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting workshop", zap.String("addr", addr), zap.Strings("config", configPaths(dir)))
	return srv.Serve(ctx, addr)
}

func configPaths(dir string) []string {
	paths, err := config.Paths(dir)
	if err != nil {
		return nil
	}
	return paths
}
