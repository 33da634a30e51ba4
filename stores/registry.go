package stores

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
)

const hydrateTimeout = 15 * time.Second

type Options struct {
	// PersistTTL bounds how long persisted store blobs live in the backend.
	PersistTTL time.Duration
	// LinkedSessionTTL is the lifetime of a session signed in through OAuth.
	LinkedSessionTTL time.Duration
	MenuTTL          time.Duration
	Now              func() time.Time
}

// Session is the set of stores belonging to one browser session.
type Session struct {
	ID        string
	Cart      *CartStore
	Favorites *FavoritesStore
	Auth      *AuthStore
	UI        *UIStore

	hydrate  sync.Once
	lastSeen atomic.Int64
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(t time.Time) { s.lastSeen.Store(t.UnixNano()) }

// Registry owns the session stores. It is built once at startup and handed
// to the HTTP layer.
type Registry struct {
	gw      Gateway
	backend persist.Backend
	opts    Options
	log     *logrus.Logger

	Menus *MenuStore

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(gw Gateway, backend persist.Backend, log *logrus.Logger, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PersistTTL <= 0 {
		opts.PersistTTL = 30 * 24 * time.Hour
	}
	if opts.MenuTTL <= 0 {
		opts.MenuTTL = 10 * time.Minute
	}
	return &Registry{
		gw:       gw,
		backend:  backend,
		opts:     opts,
		log:      log,
		Menus:    NewMenuStore(gw, opts.MenuTTL, opts.Now, log.WithField("component", "stores")),
		sessions: make(map[string]*Session),
	}
}

// Session returns the hydrated stores for a session id, building them on
// first use. Hydration failures are recorded in the stores' state.
func (r *Registry) Session(ctx context.Context, id string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = r.newSession(id)
		r.sessions[id] = s
		metrics.SetActiveSessions(len(r.sessions))
	}
	r.mu.Unlock()

	s.touch(r.opts.Now())
	s.hydrate.Do(func() {
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hydrateTimeout)
		defer cancel()
		entry := r.log.WithField("session", id)
		if err := s.Auth.Hydrate(hctx); err != nil {
			entry.WithError(err).Warn("[stores] auth hydration failed")
		}
		if err := s.Favorites.Hydrate(hctx); err != nil {
			entry.WithError(err).Warn("[stores] favorites hydration failed")
		}
		if err := s.Cart.Init(hctx); err != nil {
			entry.WithError(err).Warn("[stores] cart hydration failed")
		}
	})
	return s
}

func (r *Registry) newSession(id string) *Session {
	entry := r.log.WithFields(logrus.Fields{"component": "stores", "session": id})
	return &Session{
		ID:        id,
		Cart:      NewCartStore(r.gw, r.backend, id, r.opts.PersistTTL, entry),
		Favorites: NewFavoritesStore(r.gw, r.backend, id, r.opts.PersistTTL, entry),
		Auth:      NewAuthStore(r.gw, r.backend, id, r.opts.PersistTTL, r.opts.LinkedSessionTTL, r.opts.Now, entry),
		UI:        &UIStore{},
	}
}

// Sweep drops sessions idle for longer than idle. Their persisted state
// stays in the backend and is hydrated again on the next request.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.opts.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	metrics.SetActiveSessions(len(r.sessions))
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
