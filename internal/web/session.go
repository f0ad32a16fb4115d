package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/schooladmin/internal/config"
	"github.com/JonMunkholm/schooladmin/internal/core"
	"github.com/JonMunkholm/schooladmin/internal/logging"
)

// SurfaceFactory builds the management surface of a new session. n receives
// the session's notifications.
type SurfaceFactory func(ctx context.Context, n core.Notifier) (*core.Surface, error)

// Session is one browser's console state: its surface (filters, pages and
// dialogs of every tab) and its pending toasts.
type Session struct {
	ID      string
	Surface *core.Surface
	Flash   *core.FlashNotifier

	lastSeen time.Time
}

// SessionStore keeps sessions by cookie id and expires idle ones.
type SessionStore struct {
	cookieName string
	ttl        time.Duration
	secure     bool
	newSurface SurfaceFactory
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore(cfg config.SessionConfig, factory SurfaceFactory) *SessionStore {
	return &SessionStore{
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.SecureCookie,
		newSurface: factory,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Middleware attaches the caller's session to the request context, creating
// one (and its cookie) when the cookie is missing, unknown or expired.
func (st *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, created, err := st.resolve(r)
		if err != nil {
			logging.FromContext(r.Context()).Error("session create failed", "error", err)
			http.Error(w, core.FormatUserError(err), http.StatusInternalServerError)
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     st.cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   st.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := withSession(r.Context(), sess)
		ctx = logging.WithSession(ctx, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (st *SessionStore) resolve(r *http.Request) (*Session, bool, error) {
	if c, err := r.Cookie(st.cookieName); err == nil {
		if sess := st.touch(c.Value); sess != nil {
			return sess, false, nil
		}
	}

	flash := &core.FlashNotifier{Next: core.LogNotifier{}}
	surface, err := st.newSurface(r.Context(), flash)
	if err != nil {
		return nil, false, err
	}
	sess := &Session{
		ID:       uuid.NewString(),
		Surface:  surface,
		Flash:    flash,
		lastSeen: st.now(),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess, true, nil
}

// touch returns the live session id and refreshes its idle clock.
func (st *SessionStore) touch(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil
	}
	now := st.now()
	if now.Sub(sess.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil
	}
	sess.lastSeen = now
	return sess
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				logging.FromContext(ctx).Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
