package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/amonks/workshop/internal/config"
	internalstrings "github.com/amonks/workshop/internal/strings"
)

// AddrEnv overrides the configured server address for clients.
const AddrEnv = "WORKSHOP_ADDR"

// ResolveAddr returns the server address: addr if set, then $WORKSHOP_ADDR,
// then the port from the config in dir.
func ResolveAddr(dir, addr string) (string, error) {
	if !internalstrings.IsBlank(addr) {
		return normalizeAddr(addr)
	}
	if env := os.Getenv(AddrEnv); !internalstrings.IsBlank(env) {
		return normalizeAddr(env)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return "", err
	}
	return cfg.Addr(), nil
}

func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "", fmt.Errorf("address is required")
	}
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}
