// Package session keeps per-browser UI state (rail expansion, progress
// checklist) in memory, keyed by a random cookie.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/progress"
)

// CookieName is the session cookie.
const CookieName = "pymaster_session"

// Data is the state held for one session.
type Data struct {
	Nav      nav.Expanded
	Progress progress.State
}

func newData() Data {
	return Data{Nav: nav.DefaultExpanded(), Progress: progress.NewState()}
}

type entry struct {
	data Data
	seen time.Time
}

// Store is a mutex-guarded map of sessions. Sessions idle for longer than
// ttl are dropped when new ones are created.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store. A non-positive ttl keeps sessions forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

type ctxKey struct{}

// IDFrom returns the session id placed in ctx by Middleware.
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware makes sure every request carries a known session, issuing a new
// cookie when the request has none or names an unknown one.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			id = c.Value
		}
		if !s.touch(id) {
			id = s.create()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Store) touch(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if ok {
		e.seen = s.now()
	}
	return ok
}

func (s *Store) create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = &entry{data: newData(), seen: s.now()}
	return id
}

func (s *Store) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.seen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// Load returns the data for id, or fresh defaults for an unknown id.
func (s *Store) Load(id string) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		return e.data
	}
	return newData()
}

// Update replaces the data for id with fn's result and returns it. fn runs
// under the store lock and must not call back into the store.
func (s *Store) Update(id string, fn func(Data) Data) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{data: newData()}
		s.sessions[id] = e
	}
	e.data = fn(e.data)
	e.seen = s.now()
	return e.data
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
