package usecase

import (
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/timeflow/internal/domain"
)

// Timer owns the live runtime snapshot and the session list.
// Every transition is applied in memory and then persisted. When persisting fails the
// change is kept in memory and the *domain.StorageError is returned, so an interactive
// front end stays usable.
// Fields are ordered to minimize memory padding.
type Timer struct {
	sessions domain.SessionRepository
	runtime  domain.RuntimeRepository
	clock    domain.Clock
	logger   domain.Logger
	loadErr  error // Read failure of the session list; appends are refused while set
	list     []domain.Session
	snap     domain.Snapshot
	mu       sync.Mutex
}

// NewTimer creates a Timer and recovers state from storage. A running snapshot keeps
// running: elapsed time is reconstructed from its resume timestamp. Unreadable
// storage is logged and treated as empty.
func NewTimer(sessions domain.SessionRepository, runtime domain.RuntimeRepository, clock domain.Clock, logger domain.Logger) *Timer {
	t := &Timer{
		sessions: sessions,
		runtime:  runtime,
		clock:    clock,
		logger:   logger,
	}
	t.reload()
	return t
}

// Reload re-reads sessions and the runtime snapshot from storage, discarding
// in-memory state.
func (t *Timer) Reload() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reload()
}

func (t *Timer) reload() {
	list, err := t.sessions.Load()
	if err != nil {
		t.warn("load sessions", err)
	}
	t.loadErr = nil
	if domain.IsReadFailure(err) {
		t.loadErr = err
	}
	snap, err := t.runtime.Load()
	if err != nil {
		t.warn("load runtime", err)
	}
	t.list = list
	t.snap = snap.Normalize()
}

// Snapshot returns the current runtime snapshot.
func (t *Timer) Snapshot() domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// State returns the current runtime state.
func (t *Timer) State() domain.RuntimeState {
	return t.Snapshot().State()
}

// Elapsed returns the seconds tracked in the current interval.
func (t *Timer) Elapsed() int64 {
	return t.Snapshot().Elapsed(t.clock.Now())
}

// Sessions returns a copy of the saved sessions in insertion order.
func (t *Timer) Sessions() []domain.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.list)
}

// SelectTag chooses the tag for the current or next interval.
func (t *Timer) SelectTag(ref domain.TagRef) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.snap.SelectTag(ref)
	if err != nil {
		return err
	}
	return t.commit(next)
}

// Start begins a new interval, or resumes a paused one.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.snap.Start(t.clock.Now())
	if err != nil {
		return err
	}
	if err := t.commit(next); err != nil {
		return err
	}
	t.info(fmt.Sprintf("started %q", next.CurrentTagID))
	return nil
}

// Pause banks the running segment.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.snap.Pause(t.clock.Now())
	if err != nil {
		return err
	}
	if err := t.commit(next); err != nil {
		return err
	}
	t.info(fmt.Sprintf("paused at %ds", next.AccumulatedSeconds))
	return nil
}

// StopAndSave finalizes the interval and appends it to the session list. It returns
// the saved session, or nil when nothing was recorded (idle, no tag or no time).
//
// Sessions are persisted before the runtime is reset: if the session list cannot be
// written, the stored runtime keeps the interval so it is recovered on next load.
func (t *Timer) StopAndSave() (*domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snap.State() == domain.StateIdle {
		return nil, nil
	}

	next, session := t.snap.Stop(t.clock.Now())
	if session != nil && t.loadErr != nil {
		// Retry once; the stored list is never replaced by a partial one.
		list, err := t.sessions.Load()
		if domain.IsReadFailure(err) {
			return nil, fmt.Errorf("load sessions: %w", err)
		}
		t.list, t.loadErr = list, nil
	}
	if session == nil {
		if err := t.commit(next); err != nil {
			return nil, err
		}
		t.info("stopped without recording")
		return nil, nil
	}

	t.list = append(t.list, *session)
	t.snap = next
	if err := t.sessions.Save(t.list); err != nil {
		t.warn("save sessions", err)
		return session, fmt.Errorf("save session: %w", err)
	}
	if err := t.runtime.Save(next); err != nil {
		t.warn("save runtime", err)
		return session, fmt.Errorf("save runtime: %w", err)
	}
	t.info(fmt.Sprintf("saved session %s (%ds)", session.ID, session.DurationSeconds))
	return session, nil
}

// SetSessions replaces the session list wholesale.
func (t *Timer) SetSessions(sessions []domain.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loadErr = nil
	t.list = slices.Clone(sessions)
	if t.list == nil {
		t.list = []domain.Session{}
	}
	if err := t.sessions.Save(t.list); err != nil {
		t.warn("save sessions", err)
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

// ResetRuntime discards the in-progress interval, keeping the tag selection.
func (t *Timer) ResetRuntime() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.commit(t.snap.Reset())
}

// commit installs next and persists it. Callers hold t.mu.
func (t *Timer) commit(next domain.Snapshot) error {
	t.snap = next
	if err := t.runtime.Save(next); err != nil {
		t.warn("save runtime", err)
		return fmt.Errorf("save runtime: %w", err)
	}
	return nil
}

func (t *Timer) info(msg string) {
	if t.logger != nil {
		t.logger.Info("timer", msg)
	}
}

func (t *Timer) warn(op string, err error) {
	if t.logger != nil {
		t.logger.Warn("store", fmt.Sprintf("%s: %v", op, err))
	}
}
