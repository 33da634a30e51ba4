package stores

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
)

const favoritesSlotVersion = 1

type favoritesDoc struct {
	Handles []string `json:"handles"`
}

// Version 0 blobs are either a bare handle array or the browser-persisted
// {"state":{"favoriteHandles":[...]}} shape.
var favoritesMigrations = map[int]persist.Migration{
	0: func(data json.RawMessage) (json.RawMessage, error) {
		r := gjson.ParseBytes(data)
		var list gjson.Result
		switch {
		case r.IsArray():
			list = r
		case r.Get("state.favoriteHandles").IsArray():
			list = r.Get("state.favoriteHandles")
		case r.Get("favoriteHandles").IsArray():
			list = r.Get("favoriteHandles")
		default:
			return nil, errors.New("unrecognised favorites blob")
		}
		doc := favoritesDoc{Handles: []string{}}
		for _, h := range list.Array() {
			doc.Handles = append(doc.Handles, h.String())
		}
		return json.Marshal(doc)
	},
}

type FavoritesState struct {
	Handles  []string         `json:"favoriteHandles"`
	Products []models.Product `json:"favoriteProducts"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
	Hydrated bool             `json:"hydrated"`
}

// FavoritesStore keeps the favorited handles and a denormalised cache of
// their products. Every toggle refetches the products of all handles.
type FavoritesStore struct {
	gw   ProductGateway
	slot *persist.Slot[favoritesDoc]
	log  *logrus.Entry

	hydrate sync.Mutex
	// toggle serialises writers across the slot save; mu guards state only.
	toggle sync.Mutex

	mu       sync.Mutex
	seq      Sequencer
	state    FavoritesState
	inflight int
}

func NewFavoritesStore(gw ProductGateway, backend persist.Backend, session string, ttl time.Duration, log *logrus.Entry) *FavoritesStore {
	return &FavoritesStore{
		gw:   gw,
		slot: persist.NewSlot[favoritesDoc](backend, persist.Key(session, persist.KeyFavorites), favoritesSlotVersion, ttl, favoritesMigrations),
		log:  log.WithField("store", "favorites"),
		state: FavoritesState{
			Handles:  []string{},
			Products: []models.Product{},
		},
	}
}

// State returns a copy of the current state.
func (s *FavoritesStore) State() FavoritesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Handles = append([]string{}, s.state.Handles...)
	st.Products = append([]models.Product{}, s.state.Products...)
	return st
}

// Hydrate loads the persisted handles and fetches their products. The store
// is hydrated even when the fetch fails.
func (s *FavoritesStore) Hydrate(ctx context.Context) error {
	s.hydrate.Lock()
	defer s.hydrate.Unlock()

	s.mu.Lock()
	hydrated := s.state.Hydrated
	s.mu.Unlock()
	if hydrated {
		return nil
	}

	doc, _, err := s.slot.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("[favorites] discarding unreadable favorites")
		_ = s.slot.Clear(ctx)
	}

	s.mu.Lock()
	s.state.Handles = dedupe(doc.Handles)
	s.state.Hydrated = true
	empty := len(s.state.Handles) == 0
	s.mu.Unlock()

	if empty {
		return nil
	}
	return s.refresh(ctx)
}

// IsFavorite reports membership. known is false until the store is hydrated,
// and fav must not be trusted then.
func (s *FavoritesStore) IsFavorite(handle string) (fav, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Hydrated {
		return false, false
	}
	for _, h := range s.state.Handles {
		if h == handle {
			return true, true
		}
	}
	return false, true
}

// Toggle flips a handle's membership, persists the list and refetches the
// favorite products. It returns whether the handle is now a favorite.
func (s *FavoritesStore) Toggle(ctx context.Context, handle string) (bool, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return false, errors.New("favorites: empty handle")
	}
	if err := s.Hydrate(ctx); err != nil {
		s.log.WithError(err).Debug("[favorites] hydrate refresh failed before toggle")
	}

	s.toggle.Lock()
	s.mu.Lock()
	next, added := toggleHandle(s.state.Handles, handle)
	s.mu.Unlock()

	if err := s.slot.Save(ctx, favoritesDoc{Handles: next}); err != nil {
		s.toggle.Unlock()
		s.mu.Lock()
		s.state.Error = errorMessage(err)
		s.mu.Unlock()
		s.log.WithError(err).Warn("[favorites] could not persist favorites")
		return !added, err
	}

	s.mu.Lock()
	s.state.Handles = next
	if !added {
		s.state.Products = withoutProduct(s.state.Products, handle)
	}
	s.mu.Unlock()
	s.toggle.Unlock()

	return added, s.refresh(ctx)
}

// refresh refetches the products of every favorited handle.
func (s *FavoritesStore) refresh(ctx context.Context) error {
	s.mu.Lock()
	handles := append([]string{}, s.state.Handles...)
	s.inflight++
	s.state.Loading = true
	tok := s.seq.Begin()
	s.mu.Unlock()

	products := []models.Product{}
	var err error
	if len(handles) > 0 {
		products, err = s.gw.GetProductsByHandles(ctx, handles)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.state.Loading = s.inflight > 0

	if err != nil {
		if s.seq.Current(tok) {
			s.state.Error = errorMessage(err)
		}
		s.log.WithError(err).Warn("[favorites] product refetch failed")
		return err
	}
	if !s.seq.Accept(tok) {
		metrics.RecordStaleResponse("favorites")
		return nil
	}
	if products == nil {
		products = []models.Product{}
	}
	s.state.Products = products
	s.state.Error = ""
	return nil
}

func toggleHandle(handles []string, handle string) ([]string, bool) {
	next := make([]string, 0, len(handles)+1)
	found := false
	for _, h := range handles {
		if h == handle {
			found = true
			continue
		}
		next = append(next, h)
	}
	if !found {
		next = append(next, handle)
	}
	return next, !found
}

func withoutProduct(products []models.Product, handle string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Handle != handle {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
