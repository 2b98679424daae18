package backend

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pablasso/hobbytrack/internal/hobby"
)

// LogCommitter records the commit in the log without transmitting anything.
// It is the default until the create endpoints are wired end to end.
type LogCommitter struct {
	Logger *zap.Logger
}

// Commit logs h and the objectives of its goals.
func (c LogCommitter) Commit(_ context.Context, h hobby.Hobby, goals []hobby.Goal) error {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	objectives := make([]string, len(goals))
	for i, g := range goals {
		objectives[i] = g.Objective
	}
	logger.Info("commit not transmitted",
		zap.String("hobby_id", h.ID),
		zap.String("title", h.Title),
		zap.Strings("goals", objectives))
	return nil
}

// HTTPCommitter saves a hobby and its goals through the REST API.
//
// A hobby the server already lists (a picked suggestion) is reused as is;
// any other hobby is created once and its goals are re-pointed at the id the
// server assigned. Goals are remembered by their session id so committing the
// same hobby again only sends goals added since the last commit.
type HTTPCommitter struct {
	Client *Client
	Logger *zap.Logger

	// MaxInFlight bounds concurrent goal requests; zero means 4.
	MaxInFlight int

	mu       sync.Mutex
	hobbyIDs map[string]string // session hobby id -> server hobby id
	sent     map[string]bool   // session goal ids already created
}

// NewHTTPCommitter returns a committer that posts through client.
func NewHTTPCommitter(client *Client, logger *zap.Logger) *HTTPCommitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPCommitter{Client: client, Logger: logger}
}

// Commit saves h if needed and creates the goals not committed before.
func (c *HTTPCommitter) Commit(ctx context.Context, h hobby.Hobby, goals []hobby.Goal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if c.hobbyIDs == nil {
		c.hobbyIDs = make(map[string]string)
		c.sent = make(map[string]bool)
	}

	serverID, err := c.resolveHobby(ctx, h, logger)
	if err != nil {
		return err
	}

	limit := c.MaxInFlight
	if limit <= 0 {
		limit = 4
	}

	var (
		doneMu sync.Mutex
		done   []string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, g := range goals {
		if g.ID != "" && c.sent[g.ID] {
			continue
		}
		sessionID := g.ID
		g.ID = ""
		g.HobbyID = serverID
		eg.Go(func() error {
			if _, err := c.Client.CreateGoal(egCtx, g); err != nil {
				return fmt.Errorf("create goal %q: %w", g.Objective, err)
			}
			if sessionID != "" {
				doneMu.Lock()
				done = append(done, sessionID)
				doneMu.Unlock()
			}
			return nil
		})
	}
	err = eg.Wait()
	for _, id := range done {
		c.sent[id] = true
	}
	return err
}

// resolveHobby returns the server id for h, creating the hobby only when the
// server does not know it. Callers hold c.mu.
func (c *HTTPCommitter) resolveHobby(ctx context.Context, h hobby.Hobby, logger *zap.Logger) (string, error) {
	if id, ok := c.hobbyIDs[h.ID]; ok && h.ID != "" {
		return id, nil
	}

	if h.ID != "" {
		existing, err := c.Client.ListHobbies(ctx)
		if err != nil {
			return "", fmt.Errorf("list hobbies: %w", err)
		}
		for _, e := range existing {
			if e.ID == h.ID {
				c.hobbyIDs[h.ID] = h.ID
				return h.ID, nil
			}
		}
	}

	saved, err := c.Client.CreateHobby(ctx, h)
	if err != nil {
		return "", fmt.Errorf("create hobby %q: %w", h.Title, err)
	}
	logger.Debug("hobby created", zap.String("client_id", h.ID), zap.String("server_id", saved.ID))
	if h.ID != "" {
		c.hobbyIDs[h.ID] = saved.ID
	}
	return saved.ID, nil
}
