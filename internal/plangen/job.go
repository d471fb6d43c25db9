package plangen

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
)

const (
	// minVisibleDuration keeps the requesting state visible long enough
	// that a fast generation does not flash by.
	minVisibleDuration = 4 * time.Second
	progressInterval   = 500 * time.Millisecond
	messageInterval    = 2500 * time.Millisecond
	// maxCosmeticProgress is where the progress bar parks until the real
	// work finishes.
	maxCosmeticProgress = 90
)

// ErrGenerationInProgress is returned when a rider triggers generation while
// one is already running for them.
var ErrGenerationInProgress = errors.NewSentinel("plan generation already in progress")

// State of a generation job.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Status is the polled view of a generation job.
type Status struct {
	State    State  `json:"state"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}

var progressMessages = []string{
	"Analyzing your rider profile",
	"Studying the race route",
	"Balancing intensity across the weeks",
	"Placing the long rides on your free days",
	"Adding recovery where you need it",
	"Polishing the final details",
}

// Manager runs at most one generation job per rider and animates its status
// while the real work happens in the background.
type Manager struct {
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[string]*Status

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

func NewManager(logger *slog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:     logger,
		jobs:       make(map[string]*Status),
		rootCtx:    ctx,
		rootCancel: cancel,
	}
}

// Run blocks until ctx is cancelled, then stops all jobs and waits for them.
// It is meant to be supervised alongside the HTTP server.
func (m *Manager) Run(ctx context.Context) error {
	<-ctx.Done()
	m.rootCancel()
	m.wg.Wait()

	return nil
}

// Start launches a generation job for the rider. The run function does the
// actual work and is cancelled on shutdown.
func (m *Manager) Start(userID string, run func(context.Context) error) error {
	m.mu.Lock()
	if status, ok := m.jobs[userID]; ok && status.State == StateRequesting {
		m.mu.Unlock()

		return ErrGenerationInProgress
	}
	m.jobs[userID] = &Status{
		State:    StateRequesting,
		Progress: 5,
		Message:  progressMessages[0],
	}
	m.mu.Unlock()

	m.wg.Add(1)
	go m.supervise(userID, run)

	return nil
}

// Status returns the rider's job status, idle when none exists.
func (m *Manager) Status(userID string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if status, ok := m.jobs[userID]; ok {
		return *status
	}

	return Status{State: StateIdle}
}

// Acknowledge clears a finished job so the next poll reads idle. A running
// job is left alone.
func (m *Manager) Acknowledge(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if status, ok := m.jobs[userID]; ok && status.State != StateRequesting {
		delete(m.jobs, userID)
	}
}

func (m *Manager) supervise(userID string, run func(context.Context) error) {
	defer m.wg.Done()

	ctx := m.rootCtx
	started := time.Now()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- run(ctx)
	}()

	progressTicker := time.NewTicker(progressInterval)
	defer progressTicker.Stop()
	messageTicker := time.NewTicker(messageInterval)
	defer messageTicker.Stop()

	var (
		runErr   error
		msgIndex int
	)
	for waiting := true; waiting; {
		select {
		case <-progressTicker.C:
			m.bumpProgress(userID)
		case <-messageTicker.C:
			msgIndex++
			m.setMessage(userID, progressMessages[msgIndex%len(progressMessages)])
		case runErr = <-resultCh:
			waiting = false
		case <-ctx.Done():
			runErr = ctx.Err()
			waiting = false
		}
	}

	// Keep animating until the minimum visible duration has passed.
	if remaining := minVisibleDuration - time.Since(started); remaining > 0 && ctx.Err() == nil {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		for waiting := true; waiting; {
			select {
			case <-progressTicker.C:
				m.bumpProgress(userID)
			case <-timer.C:
				waiting = false
			case <-ctx.Done():
				waiting = false
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.jobs[userID]
	if runErr != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "plan generation failed",
			slog.String("userID", userID), slog.Any("error", runErr))
		status.State = StateFailed
		status.Error = runErr.Error()

		return
	}

	status.State = StateSucceeded
	status.Progress = 100
	status.Message = "Your plan is ready"
}

func (m *Manager) bumpProgress(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.jobs[userID]
	status.Progress = min(status.Progress+3+rand.IntN(7), maxCosmeticProgress)
}

func (m *Manager) setMessage(userID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[userID].Message = message
}
