// Package approval holds app authorization requests until they are approved
// or denied, either by policy or by an operator.
package approval

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/google/uuid"
)

// Mode selects how the gate answers.
type Mode string

const (
	ModeManual      Mode = "manual"
	ModeAutoApprove Mode = "auto-approve"
	ModeAutoDeny    Mode = "auto-deny"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeManual, ModeAutoApprove, ModeAutoDeny:
		return m, nil
	}
	return "", fmt.Errorf("unknown approval mode %q", s)
}

type Decision int

const (
	Denied Decision = iota
	Approved
)

func (d Decision) String() string {
	if d == Approved {
		return "approved"
	}
	return "denied"
}

// PendingRequest is an authorization request waiting for a decision.
type PendingRequest struct {
	ID          string         `json:"id"`
	App         models.AppInfo `json:"app"`
	Permissions []string       `json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type entry struct {
	req  PendingRequest
	done chan Decision
}

// Gate is the auth approval gate. It is safe for concurrent use.
type Gate struct {
	mode    Mode
	timeout time.Duration
	logger  logging.Logger
	now     func() time.Time

	mu        sync.Mutex
	pending   map[string]*entry
	standing  *Decision
	observers []func(PendingRequest)
}

// NewGate returns a gate in the given mode. In manual mode a request that
// gets no decision within timeout is denied; timeout <= 0 waits forever.
func NewGate(mode Mode, timeout time.Duration, logger logging.Logger) *Gate {
	return &Gate{
		mode:    mode,
		timeout: timeout,
		logger:  logger.With("module", "approval"),
		now:     time.Now,
		pending: make(map[string]*entry),
	}
}

func (g *Gate) Mode() Mode { return g.mode }

// Submit asks for a decision on req and blocks until one is made. If ctx is
// cancelled first the entry is released and ctx.Err() returned.
func (g *Gate) Submit(ctx context.Context, req *models.AppAuthRequest) (Decision, error) {
	switch g.mode {
	case ModeAutoApprove:
		return Approved, nil
	case ModeAutoDeny:
		return Denied, nil
	}

	e := &entry{
		req: PendingRequest{
			ID:          uuid.NewString(),
			App:         req.App,
			Permissions: req.Permissions,
			CreatedAt:   g.now(),
		},
		done: make(chan Decision, 1),
	}

	g.mu.Lock()
	if g.standing != nil {
		d := *g.standing
		g.mu.Unlock()
		return d, nil
	}
	g.pending[e.req.ID] = e
	observers := append([]func(PendingRequest){}, g.observers...)
	g.mu.Unlock()

	g.logger.Info(ctx, "authorization pending", "request_id", e.req.ID, "app_id", req.App.ID)
	for _, fn := range observers {
		fn(e.req)
	}

	var expired <-chan time.Time
	if g.timeout > 0 {
		t := time.NewTimer(g.timeout)
		defer t.Stop()
		expired = t.C
	}

	select {
	case d := <-e.done:
		return d, nil
	case <-expired:
		g.release(e.req.ID)
		g.logger.Warn(ctx, "authorization timed out", "request_id", e.req.ID)
		return Denied, nil
	case <-ctx.Done():
		g.release(e.req.ID)
		return Denied, ctx.Err()
	}
}

func (g *Gate) release(id string) {
	g.mu.Lock()
	delete(g.pending, id)
	g.mu.Unlock()
}

// Decide resolves a single pending request. Unknown or already decided ids
// yield common.ErrorNotFound.
func (g *Gate) Decide(id string, allow bool) error {
	g.mu.Lock()
	e, ok := g.pending[id]
	if ok {
		delete(g.pending, id)
	}
	g.mu.Unlock()

	if !ok {
		return common.ErrorNotFound
	}
	e.done <- decisionOf(allow)
	return nil
}

// RegisterApproval resolves every pending request with allow and keeps
// answering new requests the same way until RemoveAllListeners.
func (g *Gate) RegisterApproval(allow bool) {
	d := decisionOf(allow)

	g.mu.Lock()
	g.standing = &d
	resolved := g.pending
	g.pending = make(map[string]*entry)
	g.mu.Unlock()

	for _, e := range resolved {
		e.done <- d
	}
}

// RemoveAllListeners drops the standing decision and forgets all pending
// requests without answering them.
func (g *Gate) RemoveAllListeners() {
	g.mu.Lock()
	g.standing = nil
	clear(g.pending)
	g.mu.Unlock()
}

// Pending lists requests still waiting, oldest first.
func (g *Gate) Pending() []PendingRequest {
	g.mu.Lock()
	out := make([]PendingRequest, 0, len(g.pending))
	for _, e := range g.pending {
		out = append(out, e.req)
	}
	g.mu.Unlock()

	slices.SortFunc(out, func(a, b PendingRequest) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// OnPending registers fn to be called for every request that starts
// waiting. fn runs on the submitting goroutine and must not block.
func (g *Gate) OnPending(fn func(PendingRequest)) {
	g.mu.Lock()
	g.observers = append(g.observers, fn)
	g.mu.Unlock()
}

func decisionOf(allow bool) Decision {
	if allow {
		return Approved
	}
	return Denied
}
