// Package devserver is an in-process implementation of the hobby REST API.
// It backs `hobbytrack serve` and the tests of every client of the API.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/backend"
	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/store"
)

// Options configures a Server.
type Options struct {
	// Store persists the catalog after every write. Nil keeps it in memory.
	Store *store.FileStore

	// Seed is loaded when the store is empty or absent.
	Seed []hobby.Hobby

	Logger *zap.Logger

	// Now stamps created records; defaults to time.Now.
	Now func() time.Time
}

// Server serves the hobby, goal and task endpoints.
type Server struct {
	mu      sync.RWMutex
	catalog *store.Catalog
	store   *store.FileStore
	logger  *zap.Logger
	now     func() time.Time
	router  *mux.Router
}

// DefaultSeed is the starter catalog offered as suggestions.
func DefaultSeed() []hobby.Hobby {
	return []hobby.Hobby{
		{ID: "seed-photography", Title: "Photography", Category: "Art", Description: "Capturing moments"},
		{ID: "seed-running", Title: "Running", Category: "Fitness", Description: "Morning marathons"},
		{ID: "seed-guitar", Title: "Guitar", Category: "Music", Description: "Learning new songs"},
	}
}

// New builds a server, loading the catalog from the store when one is set.
func New(opts Options) (*Server, error) {
	s := &Server{
		store:  opts.Store,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.catalog = &store.Catalog{}
	if s.store != nil {
		c, err := s.store.Load()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}
	if len(s.catalog.Hobbies) == 0 {
		s.catalog.Hobbies = append(s.catalog.Hobbies, opts.Seed...)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests)

	r.HandleFunc(backend.PathHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(backend.PathHobbyView, s.handleListHobbies).Methods(http.MethodGet)
	r.HandleFunc(backend.PathHobbyNew, s.handleCreateHobby).Methods(http.MethodPost)
	r.HandleFunc(backend.PathGoalView, s.handleListGoals).Methods(http.MethodGet)
	r.HandleFunc(backend.PathGoalNew, s.handleCreateGoal).Methods(http.MethodPost)
	r.HandleFunc(backend.PathTaskView, s.handleListTasks).Methods(http.MethodGet)
	r.HandleFunc(backend.PathTaskNew, s.handleCreateTask).Methods(http.MethodPost)
	return r
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("backend listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// persist must be called with s.mu held for writing. On error the caller
// undoes its change so memory never runs ahead of the file.
func (s *Server) persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.catalog)
}
