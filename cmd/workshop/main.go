// Package main implements the workshop CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amonks/workshop/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "workshop",
	Short:         "Workshop - todos, users and views backed by in-memory stores",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootAddr  string
	rootDebug bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAddr, "addr", "", "Server address (default: $WORKSHOP_ADDR or the configured port)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
}

// workingDir returns the directory holding the project config.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// newClient returns a client for the resolved server address.
func newClient() (*server.Client, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, err
	}
	addr, err := server.ResolveAddr(dir, rootAddr)
	if err != nil {
		return nil, err
	}
	return server.NewClient(addr), nil
}
