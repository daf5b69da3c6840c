// Package server exposes the workshop stores over JSON RPC and serves the
// web views.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/amonks/workshop/app"
	"github.com/amonks/workshop/internal/config"
	"github.com/amonks/workshop/internal/logging"
	"github.com/amonks/workshop/web"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-Id"

// ServerOptions configures a server.
type ServerOptions struct {
	// Context holds the stores. Defaults to a fresh context built from
	// config.Default().
	Context *app.Context

	// ConfigDir is the directory holding workshop.toml. Only used when
	// WatchConfig is set.
	ConfigDir string

	// WatchConfig reapplies the filter and preferences whenever a config
	// file changes.
	WatchConfig bool

	Logger *zap.Logger
}

// Server handles workshop RPCs.
type Server struct {
	ctx         *app.Context
	configDir   string
	watchConfig bool
	logger      *zap.Logger
}

// NewServer creates a server.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := logging.OrNop(opts.Logger)
	ctx := opts.Context
	if ctx == nil {
		ctx = app.New(app.Options{Logger: logger})
	}
	if opts.WatchConfig && strings.TrimSpace(opts.ConfigDir) == "" {
		return nil, fmt.Errorf("config dir is required to watch config")
	}
	return &Server{
		ctx:         ctx,
		configDir:   opts.ConfigDir,
		watchConfig: opts.WatchConfig,
		logger:      logger,
	}, nil
}

// Handler returns the HTTP handler for RPCs and web views.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/todos/list", s.handleTodosList)
	mux.HandleFunc("/todos/by-priority", s.handleTodosByPriority)
	mux.HandleFunc("/todos/add", s.handleTodosAdd)
	mux.HandleFunc("/todos/remove", s.handleTodosRemove)
	mux.HandleFunc("/todos/toggle", s.handleTodosToggle)
	mux.HandleFunc("/todos/update", s.handleTodosUpdate)
	mux.HandleFunc("/todos/clear-completed", s.handleTodosClearCompleted)
	mux.HandleFunc("/todos/filter", s.handleTodosFilter)
	mux.HandleFunc("/todos/mark-all", s.handleTodosMarkAll)
	mux.HandleFunc("/todos/stats", s.handleTodosStats)
	mux.HandleFunc("/users/session", s.handleUsersSession)
	mux.HandleFunc("/users/login", s.handleUsersLogin)
	mux.HandleFunc("/users/logout", s.handleUsersLogout)
	mux.HandleFunc("/users/profile", s.handleUsersProfile)
	mux.HandleFunc("/users/preferences", s.handleUsersPreferences)
	mux.HandleFunc("/users/list", s.handleUsersList)
	mux.HandleFunc("/users/add", s.handleUsersAdd)
	mux.HandleFunc("/routes", s.handleRoutes)
	webHandler := web.NewHandler(web.Options{Context: s.ctx, Logger: s.logger})
	mux.Handle("/web/", webHandler)
	mux.Handle("/web", http.RedirectHandler("/web/", http.StatusFound))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	return s.requestIDHandler(s.recoverHandler(mux))
}

// Serve runs the server on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errorLog, err := zap.NewStdLogAt(s.logger, zap.ErrorLevel)
	if err != nil {
		return fmt.Errorf("http error log: %w", err)
	}
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: errorLog,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if s.watchConfig {
		group.Go(func() error {
			return s.watch(groupCtx)
		})
	}
	return group.Wait()
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Error("panic handling request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", recovered),
					zap.ByteString("stack", debug.Stack()))
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

func (s *Server) requestIDHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

// decodeRequest checks the method and decodes the JSON body into dest.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dest any) bool {
	if !s.requireMethod(w, r, http.MethodPost) {
		return false
	}
	if err := decodeJSON(r, dest); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", w.Header().Get(RequestIDHeader)),
		zap.Int("status", status),
		zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(data)
}

// ApplyConfigFile reloads config from the server's config dir and applies it.
func (s *Server) ApplyConfigFile() error {
	cfg, err := config.Load(s.configDir)
	if err != nil {
		return err
	}
	s.ctx.ApplyConfig(cfg)
	return nil
}
