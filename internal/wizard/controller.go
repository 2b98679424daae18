// Package wizard implements the goal-first hobby creation flow: the user
// writes a goal, is offered hobbies from the backend and either picks one or
// creates a new hobby, which finalizes the goal.
//
// The Controller is safe for concurrent use. UI code reads Snapshot and waits
// on Updates; suggestion fetches and status expiry happen in the background.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/backend"
	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/util"
)

// DefaultStatusTTL is how long a commit banner stays visible.
const DefaultStatusTTL = 5 * time.Second

var (
	// ErrNoDraft is returned when an operation needs a goal draft and none exists.
	ErrNoDraft = errors.New("no goal draft in progress")
	// ErrInvalidTransition is returned when the operation is not allowed from the current step.
	ErrInvalidTransition = errors.New("operation not allowed in current step")
	// ErrNoGoals is returned when committing a hobby that has no finalized goal.
	ErrNoGoals = errors.New("hobby has no goals to commit")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("wizard closed")
)

// SuggestionSource lists candidate hobbies. *backend.Client implements it.
type SuggestionSource interface {
	ListHobbies(ctx context.Context) ([]hobby.Hobby, error)
}

// Committer persists a hobby and its goals. backend.LogCommitter and
// *backend.HTTPCommitter implement it.
type Committer interface {
	Commit(ctx context.Context, h hobby.Hobby, goals []hobby.Goal) error
}

// Options configures a Controller. Only Source is required.
type Options struct {
	Source    SuggestionSource
	Committer Committer
	Clock     clockwork.Clock
	Logger    *zap.Logger

	// NewID synthesizes ids for hobbies and goals created in the session.
	NewID func() string

	// StatusTTL defaults to DefaultStatusTTL.
	StatusTTL time.Duration

	// FetchTimeout bounds each suggestion fetch; zero means no extra bound.
	FetchTimeout time.Duration
}

// Controller owns the wizard state.
type Controller struct {
	source       SuggestionSource
	committer    Committer
	clock        clockwork.Clock
	logger       *zap.Logger
	newID        func() string
	statusTTL    time.Duration
	fetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	snap        Snapshot
	fetchToken  uint64
	fetchCancel context.CancelFunc
	statusToken uint64
	statusTimer clockwork.Timer
	updates     chan struct{}
	closed      bool
}

// New creates a controller in the goal-creation step.
func New(opts Options) *Controller {
	c := &Controller{
		source:       opts.Source,
		committer:    opts.Committer,
		clock:        opts.Clock,
		logger:       opts.Logger,
		newID:        opts.NewID,
		statusTTL:    opts.StatusTTL,
		fetchTimeout: opts.FetchTimeout,
		snap:         Snapshot{Step: StepGoalCreation},
		updates:      make(chan struct{}, 1),
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.newID == nil {
		c.newID = util.NewID
	}
	if c.statusTTL <= 0 {
		c.statusTTL = DefaultStatusTTL
	}
	if c.committer == nil {
		c.committer = backend.LogCommitter{Logger: c.logger}
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// Updates signals after every state change. Signals coalesce, so readers
// should call Snapshot rather than count them. The channel is closed by Close.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// replace swaps in the next snapshot. Callers hold c.mu.
func (c *Controller) replace(next Snapshot) {
	prev := c.snap.Step
	c.snap = next
	if prev != next.Step {
		c.logger.Debug("wizard step", zap.String("from", string(prev)), zap.String("to", string(next.Step)))
	}
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// SubmitGoalDraft stores the draft, moves to the suggestion step and starts
// fetching suggestions. Any earlier fetch is cancelled and its result dropped.
func (c *Controller) SubmitGoalDraft(objective string, unit hobby.Period, steps int) error {
	draft, err := hobby.NewDraft(objective, unit, steps)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	token := c.invalidateFetch()
	var ctx context.Context
	var cancel context.CancelFunc
	if c.fetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.fetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.fetchCancel = cancel

	next := c.snap.clone().resetFlow()
	next.Step = StepHobbySuggestion
	next.Draft = &draft
	next.Loading = true
	c.replace(next)

	c.wg.Add(1)
	go c.fetch(ctx, cancel, token)
	return nil
}

// invalidateFetch cancels the in-flight fetch and returns the next token.
// Callers hold c.mu.
func (c *Controller) invalidateFetch() uint64 {
	if c.fetchCancel != nil {
		c.fetchCancel()
		c.fetchCancel = nil
	}
	c.fetchToken++
	return c.fetchToken
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, token uint64) {
	defer c.wg.Done()
	defer cancel()

	hobbies, err := c.source.ListHobbies(ctx)
	c.resolveFetch(token, hobbies, err)
}

func (c *Controller) resolveFetch(token uint64, hobbies []hobby.Hobby, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || token != c.fetchToken {
		c.logger.Debug("dropping stale suggestions", zap.Uint64("token", token))
		return
	}
	c.fetchCancel = nil

	next := c.snap.clone()
	next.Loading = false
	next.Suggestions = nil
	if err != nil {
		c.logger.Warn("suggestion fetch failed", zap.Error(err))
	} else {
		next.Suggestions = cloneSlice(hobbies)
	}
	c.replace(next)
}

// SelectSuggestedHobby finalizes the draft against h and resets the flow.
func (c *Controller) SelectSuggestedHobby(h hobby.Hobby) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.snap.Draft == nil {
		return ErrNoDraft
	}
	if h.ID == "" {
		return hobby.ErrMissingHobby
	}
	c.finalize(h)
	return nil
}

// RequestNewHobby opens the new-hobby form. The draft is kept.
func (c *Controller) RequestNewHobby() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.snap.Step != StepHobbySuggestion {
		return fmt.Errorf("%w: request new hobby from %s", ErrInvalidTransition, c.snap.Step)
	}

	next := c.snap.clone()
	next.Step = StepHobbyCreation
	next.CreatingNew = true
	c.replace(next)
	return nil
}

// BackToSuggestions closes the new-hobby form without creating anything.
func (c *Controller) BackToSuggestions() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.snap.Step != StepHobbyCreation {
		return fmt.Errorf("%w: back to suggestions from %s", ErrInvalidTransition, c.snap.Step)
	}

	next := c.snap.clone()
	next.Step = StepHobbySuggestion
	next.CreatingNew = false
	c.replace(next)
	return nil
}

// SubmitNewHobby creates a hobby with a synthesized id, finalizes the draft
// against it and resets the flow.
func (c *Controller) SubmitNewHobby(title, category, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.snap.Draft == nil {
		return ErrNoDraft
	}
	if c.snap.Step != StepHobbyCreation {
		return fmt.Errorf("%w: submit new hobby from %s", ErrInvalidTransition, c.snap.Step)
	}

	h, err := hobby.NewHobby(c.newID(), title, category, description)
	if err != nil {
		return err
	}
	h.CreatedAt = c.clock.Now()
	c.finalize(h)
	return nil
}

// finalize appends h and the finalized goal, selects h and resets the flow.
// Callers hold c.mu and have checked the draft.
func (c *Controller) finalize(h hobby.Hobby) {
	c.invalidateFetch()

	next := c.snap.clone()
	if _, ok := next.Hobby(h.ID); !ok {
		next.Hobbies = append(next.Hobbies, h)
	}
	goal := next.Draft.Finalize(c.newID(), h.ID)
	next.Goals = append(next.Goals, goal)
	next.Selected = &h
	next = next.resetFlow()
	c.replace(next)

	c.logger.Info("goal created",
		zap.String("hobby_id", h.ID),
		zap.String("hobby", h.Title),
		zap.String("objective", goal.Objective))
}

// Cancel abandons the flow from any step: the draft, suggestions and any
// pending fetch are dropped and the status banner is cleared.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.invalidateFetch()
	c.stopStatusTimer()

	next := c.snap.clone().resetFlow()
	next.Status = Status{}
	c.replace(next)
}

// CommitToBackend hands h and its goals to the committer. The outcome is
// reported through a status banner that clears itself after the status TTL;
// commit failures are not returned. ErrNoGoals is returned when the session
// holds no goal for h.
func (c *Controller) CommitToBackend(ctx context.Context, h hobby.Hobby) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	goals := c.snap.GoalsFor(h.ID)
	c.mu.Unlock()

	if len(goals) == 0 {
		return fmt.Errorf("%w: %s", ErrNoGoals, h.Title)
	}

	err := c.committer.Commit(ctx, h, goals)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if err != nil {
		c.logger.Error("commit failed", zap.String("hobby_id", h.ID), zap.Error(err))
		c.setStatus(Status{Kind: StatusError, Message: fmt.Sprintf("Could not save %s: %v", h.Title, err)})
		return nil
	}
	c.setStatus(Status{Kind: StatusSuccess, Message: fmt.Sprintf("Saved %s with %d goal(s)", h.Title, len(goals))})
	return nil
}

// setStatus shows s and schedules its removal. Callers hold c.mu.
func (c *Controller) setStatus(s Status) {
	c.stopStatusTimer()
	c.statusToken++
	token := c.statusToken

	next := c.snap.clone()
	next.Status = s
	c.replace(next)

	c.statusTimer = c.clock.AfterFunc(c.statusTTL, func() {
		c.expireStatus(token)
	})
}

// stopStatusTimer cancels a pending expiry. Callers hold c.mu.
func (c *Controller) stopStatusTimer() {
	if c.statusTimer != nil {
		c.statusTimer.Stop()
		c.statusTimer = nil
	}
	// A timer that already fired must not clear a newer banner.
	c.statusToken++
}

func (c *Controller) expireStatus(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || token != c.statusToken {
		return
	}
	c.statusTimer = nil

	next := c.snap.clone()
	next.Status = Status{}
	c.replace(next)
}

// Close cancels the pending fetch and status timer and waits for background
// work to finish. No state changes happen after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.invalidateFetch()
	c.stopStatusTimer()
	close(c.updates)
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
