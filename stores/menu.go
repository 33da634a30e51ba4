package stores

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

type MenuState struct {
	Menu      *models.Menu `json:"menu"`
	Loading   bool         `json:"loading"`
	Error     string       `json:"error,omitempty"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// MenuStore caches navigation menus for the whole application. Concurrent
// misses for one handle share a single backend call.
type MenuStore struct {
	gw    MenuGateway
	ttl   time.Duration
	now   func() time.Time
	log   *logrus.Entry
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*MenuState
}

func NewMenuStore(gw MenuGateway, ttl time.Duration, now func() time.Time, log *logrus.Entry) *MenuStore {
	if now == nil {
		now = time.Now
	}
	return &MenuStore{
		gw:      gw,
		ttl:     ttl,
		now:     now,
		log:     log.WithField("store", "menu"),
		entries: make(map[string]*MenuState),
	}
}

func (s *MenuStore) State(handle string) MenuState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[handle]; ok {
		return *e
	}
	return MenuState{}
}

func (s *MenuStore) fresh(e *MenuState) bool {
	return !e.FetchedAt.IsZero() && s.now().Sub(e.FetchedAt) < s.ttl
}

// menuFetchTimeout bounds the shared backend call, which outlives the
// request that started it.
const menuFetchTimeout = 15 * time.Second

// Get returns the cached menu or fetches it. On failure the previous menu,
// if any, is returned alongside the error. An unknown handle yields nil.
// A caller whose ctx ends stops waiting; the shared fetch carries on for
// the others.
func (s *MenuStore) Get(ctx context.Context, handle string) (*models.Menu, error) {
	s.mu.Lock()
	e, ok := s.entries[handle]
	if !ok {
		e = &MenuState{}
		s.entries[handle] = e
	}
	if s.fresh(e) {
		menu := e.Menu
		s.mu.Unlock()
		return menu, nil
	}
	e.Loading = true
	s.mu.Unlock()

	ch := s.group.DoChan(handle, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), menuFetchTimeout)
		defer cancel()
		return s.fetch(fctx, handle, e)
	})
	select {
	case res := <-ch:
		menu, _ := res.Val.(*models.Menu)
		return menu, res.Err
	case <-ctx.Done():
		s.mu.RLock()
		defer s.mu.RUnlock()
		return e.Menu, ctx.Err()
	}
}

func (s *MenuStore) fetch(ctx context.Context, handle string, e *MenuState) (*models.Menu, error) {
	menu, err := s.gw.GetMenu(ctx, handle)

	s.mu.Lock()
	defer s.mu.Unlock()
	e.Loading = false
	if err != nil {
		e.Error = errorMessage(err)
		s.log.WithError(err).WithField("handle", handle).Warn("[menu] fetch failed")
		return e.Menu, err
	}
	e.Menu = menu
	e.Error = ""
	e.FetchedAt = s.now()
	return e.Menu, nil
}

func (s *MenuStore) Invalidate(handle string) {
	s.mu.Lock()
	delete(s.entries, handle)
	s.mu.Unlock()
}
