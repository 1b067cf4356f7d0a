package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ozenlabs/ozenembed/internal/utils"
)

const (
	DefaultAddr     = "localhost:8000"
	shutdownTimeout = 5 * time.Second
)

// Config holds the static server settings.
type Config struct {
	// RootDir is the directory being served.
	RootDir string

	// Addr is the host:port to bind.
	Addr string

	// LiveReload injects a reload script into served HTML pages and
	// refreshes open tabs when files under RootDir change.
	LiveReload bool
}

type Server struct {
	config  *Config
	server  *http.Server
	reload  *ReloadHub
	watcher *FileWatcher
}

func New(config *Config) (*Server, error) {
	root, err := utils.ResolvePath(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root dir: %w", err)
	}
	if !utils.DirExists(root) {
		return nil, fmt.Errorf("serve root %q is not a directory", config.RootDir)
	}
	config.RootDir = root

	if config.Addr == "" {
		config.Addr = DefaultAddr
	}

	var reload *ReloadHub
	var watcher *FileWatcher
	if config.LiveReload {
		reload = NewReloadHub()
		watcher = NewFileWatcher(root)
	}

	static := NewStaticHandler(root, config.LiveReload)

	return &Server{
		config:  config,
		reload:  reload,
		watcher: watcher,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: SetupRoutes(static, reload),
		},
	}, nil
}

// RootDir returns the resolved directory being served.
func (s *Server) RootDir() string {
	return s.config.RootDir
}

// URL returns the address the server is reachable at.
func (s *Server) URL() string {
	return "http://" + s.config.Addr
}

// Start runs the server until ctx is done, then shuts it down.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("server start", "addr", s.config.Addr, "dir", s.config.RootDir, "livereload", s.config.LiveReload)
	defer slog.Info("server stop")

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.watcher != nil {
		eg.Go(func() error {
			return s.watcher.Run(egCtx, func(path string) {
				slog.Debug("change detected", "path", path)
				s.reload.Broadcast(egCtx)
			})
		})
	}

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop shuts the server down, closing reload clients first.
func (s *Server) Stop(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Shutdown()
	}
	return s.server.Shutdown(ctx)
}
