// Package board hosts the mounted pages. Each mount gets a session id and
// its own poller; a session lives until it is unmounted or the board closes.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"MonitorBoard/internal/collector"
	"MonitorBoard/internal/query"
	"MonitorBoard/internal/render"
)

var (
	ErrUnknownPage    = errors.New("unknown page")
	ErrUnknownSession = errors.New("unknown session")
)

// Board is the session registry.
type Board struct {
	Now func() time.Time

	fetcher collector.Fetcher
	opts    Options
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id      string
	kind    string
	page    page
	created time.Time
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID      string    `json:"id"`
	Page    string    `json:"page"`
	Created time.Time `json:"created"`
}

// New creates an empty board reading through fetcher.
func New(fetcher collector.Fetcher, opts Options, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		Now:      time.Now,
		fetcher:  fetcher,
		opts:     opts.withDefaults(),
		logger:   logger.With("component", "board"),
		sessions: make(map[string]*session),
	}
}

// Mount creates a session for the given page kind and starts its polling.
func (b *Board) Mount(kind string) (string, error) {
	build, ok := b.catalogue()[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, kind)
	}
	s := &session{id: uuid.NewString(), kind: kind, created: b.Now()}
	s.page = build(b)
	if err := s.page.mount(); err != nil {
		s.page.unmount()
		return "", fmt.Errorf("mount %s: %w", kind, err)
	}

	b.mu.Lock()
	b.sessions[s.id] = s
	b.mu.Unlock()

	b.logger.Info("session mounted", "session", s.id, "page", kind)
	return s.id, nil
}

// Unmount stops the session's polling and forgets it.
func (b *Board) Unmount(id string) error {
	b.mu.Lock()
	s, ok := b.sessions[id]
	delete(b.sessions, id)
	b.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}
	s.page.unmount()
	b.logger.Info("session unmounted", "session", id, "page", s.kind)
	return nil
}

// Render returns the session's current view with display values derived now.
func (b *Board) Render(id string) (render.Page, error) {
	s, err := b.get(id)
	if err != nil {
		return render.Page{}, err
	}
	return s.page.render(s.id, b.Now()), nil
}

// Search replaces the session's filters and fetches immediately.
func (b *Board) Search(id string, f query.FilterSet) error {
	s, err := b.get(id)
	if err != nil {
		return err
	}
	return s.page.search(f)
}

// SearchText classifies free-text input (hash, address, or the page's own
// search field) and searches with it. Blank input restores the page defaults
// together with any filters in base.
func (b *Board) SearchText(id, input string, base query.FilterSet) error {
	s, err := b.get(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		f := s.page.defaults()
		if base.Type != "" {
			f.Type = base.Type
		}
		if base.Status != "" {
			f.Status = base.Status
		}
		if base.RiskLevel != "" {
			f.RiskLevel = base.RiskLevel
		}
		return s.page.search(f)
	}
	return s.page.search(query.ParseSearch(input, s.page.searchField()))
}

// Refresh fetches immediately with the session's current filters.
func (b *Board) Refresh(id string) error {
	s, err := b.get(id)
	if err != nil {
		return err
	}
	return s.page.refresh()
}

// Retry re-issues the session's last query.
func (b *Board) Retry(id string) error {
	s, err := b.get(id)
	if err != nil {
		return err
	}
	return s.page.retry()
}

// Sessions lists live sessions, oldest first.
func (b *Board) Sessions() []SessionInfo {
	b.mu.Lock()
	out := make([]SessionInfo, 0, len(b.sessions))
	for _, s := range b.sessions {
		out = append(out, SessionInfo{ID: s.id, Page: s.kind, Created: s.created})
	}
	b.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

// Close unmounts every session.
func (b *Board) Close() {
	b.mu.Lock()
	sessions := b.sessions
	b.sessions = make(map[string]*session)
	b.mu.Unlock()

	for _, s := range sessions {
		s.page.unmount()
	}
	b.logger.Info("board closed", "sessions", len(sessions))
}

func (b *Board) get(id string) (*session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}
