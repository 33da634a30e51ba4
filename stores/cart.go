package stores

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
)

const cartSlotVersion = 1

// version 0 is the bare JSON string the first release wrote
var cartMigrations = map[int]persist.Migration{
	0: func(data json.RawMessage) (json.RawMessage, error) { return data, nil },
}

type CartState struct {
	Cart     *models.Cart `json:"cart"`
	Loading  bool         `json:"loading"`
	Error    string       `json:"error,omitempty"`
	Hydrated bool         `json:"hydrated"`
}

// CartStore mirrors the session's remote cart. The local cart is only ever
// replaced by the object the backend returns, never computed locally.
type CartStore struct {
	gw   CartGateway
	slot *persist.Slot[string]
	log  *logrus.Entry

	// serialises cart resolution so concurrent first requests create one cart
	resolve sync.Mutex

	mu       sync.Mutex
	seq      Sequencer
	state    CartState
	inflight int
}

func NewCartStore(gw CartGateway, backend persist.Backend, session string, ttl time.Duration, log *logrus.Entry) *CartStore {
	return &CartStore{
		gw:   gw,
		slot: persist.NewSlot[string](backend, persist.Key(session, persist.KeyCartID), cartSlotVersion, ttl, cartMigrations),
		log:  log.WithField("store", "cart"),
	}
}

func (s *CartStore) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ID returns the current cart id, or "" when there is none.
func (s *CartStore) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Cart == nil {
		return ""
	}
	return s.state.Cart.ID
}

// Init resolves the session's cart: the stored id is fetched; an expired
// cart is forgotten and replaced; with no stored id a new cart is created.
func (s *CartStore) Init(ctx context.Context) error {
	s.resolve.Lock()
	defer s.resolve.Unlock()
	if st := s.State(); st.Hydrated && st.Cart != nil {
		return nil
	}
	_, err := s.resolveCart(ctx)
	return err
}

// resolveCart must be called with s.resolve held.
func (s *CartStore) resolveCart(ctx context.Context) (*models.Cart, error) {
	tok := s.begin()

	id, ok, err := s.slot.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("[cart] discarding unreadable cart id")
		_ = s.slot.Clear(ctx)
		ok = false
	}

	if ok && id != "" {
		cart, err := s.gw.GetCart(ctx, id)
		if err != nil {
			return nil, s.fail(tok, err)
		}
		if cart != nil {
			return s.commit(tok, cart), nil
		}
		s.log.WithField("cart_id", id).Info("[cart] stored cart expired, creating a new one")
		if err := s.slot.Clear(ctx); err != nil {
			s.log.WithError(err).Warn("[cart] could not clear expired cart id")
		}
	}

	cart, err := s.gw.CreateCart(ctx, nil)
	if err != nil {
		return nil, s.fail(tok, err)
	}
	if cart == nil {
		return nil, s.fail(tok, ErrCartNotFound)
	}
	s.remember(ctx, cart.ID)
	return s.commit(tok, cart), nil
}

func (s *CartStore) remember(ctx context.Context, id string) {
	if err := s.slot.Save(ctx, id); err != nil {
		s.log.WithError(err).Warn("[cart] could not persist cart id")
	}
}

// ensureCart returns the current cart, resolving one if needed.
func (s *CartStore) ensureCart(ctx context.Context) (*models.Cart, error) {
	s.resolve.Lock()
	defer s.resolve.Unlock()
	if cart := s.State().Cart; cart != nil {
		return cart, nil
	}
	return s.resolveCart(ctx)
}

// AddItem adds quantity units of a variant. When the cart already holds the
// variant and its availability is known, the line total is clamped to it.
func (s *CartStore) AddItem(ctx context.Context, variantID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	cart, err := s.ensureCart(ctx)
	if err != nil {
		return nil, err
	}

	if line, ok := cart.LineForVariant(variantID); ok && line.Merchandise.QuantityAvailable != nil {
		target := clampQuantity(line.Quantity+quantity, *line.Merchandise.QuantityAvailable)
		if target <= line.Quantity {
			return cart, s.reject(ErrQuantityUnavailable)
		}
		quantity = target - line.Quantity
	}

	lines := []models.CartLineInput{{MerchandiseID: variantID, Quantity: quantity}}
	tok := s.begin()
	updated, err := s.gw.AddCartLines(ctx, cart.ID, lines)
	if err != nil {
		return nil, s.fail(tok, err)
	}
	if updated == nil {
		s.log.WithField("cart_id", cart.ID).Info("[cart] cart expired during add, starting a new one")
		if updated, err = s.gw.CreateCart(ctx, lines); err != nil {
			return nil, s.fail(tok, err)
		}
		if updated == nil {
			return nil, s.fail(tok, ErrCartNotFound)
		}
		s.remember(ctx, updated.ID)
	}
	return s.commit(tok, updated), nil
}

// UpdateItem sets a line's quantity, clamped to [1, quantityAvailable].
func (s *CartStore) UpdateItem(ctx context.Context, lineID string, quantity int) (*models.Cart, error) {
	cart := s.State().Cart
	if cart == nil {
		return nil, s.reject(ErrCartNotFound)
	}
	line, ok := cart.Line(lineID)
	if !ok {
		return cart, s.reject(ErrLineNotFound)
	}
	if avail := line.Merchandise.QuantityAvailable; avail != nil && *avail < 1 {
		return cart, s.reject(ErrQuantityUnavailable)
	}
	if line.Merchandise.QuantityAvailable != nil {
		quantity = clampQuantity(quantity, *line.Merchandise.QuantityAvailable)
	} else if quantity < 1 {
		quantity = 1
	}

	tok := s.begin()
	updated, err := s.gw.UpdateCartLines(ctx, cart.ID, []models.CartLineUpdate{{ID: lineID, Quantity: quantity}})
	if err != nil {
		return nil, s.fail(tok, err)
	}
	if updated == nil {
		return nil, s.expire(ctx, tok)
	}
	return s.commit(tok, updated), nil
}

func (s *CartStore) RemoveItem(ctx context.Context, lineID string) (*models.Cart, error) {
	cart := s.State().Cart
	if cart == nil {
		return nil, s.reject(ErrCartNotFound)
	}
	if _, ok := cart.Line(lineID); !ok {
		return cart, s.reject(ErrLineNotFound)
	}

	tok := s.begin()
	updated, err := s.gw.RemoveCartLines(ctx, cart.ID, []string{lineID})
	if err != nil {
		return nil, s.fail(tok, err)
	}
	if updated == nil {
		return nil, s.expire(ctx, tok)
	}
	return s.commit(tok, updated), nil
}

// Clear forgets the cart, e.g. after the order was handed off. The next
// interaction starts a new cart.
func (s *CartStore) Clear(ctx context.Context) error {
	s.resolve.Lock()
	defer s.resolve.Unlock()

	tok := s.seq.Begin()
	if err := s.slot.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	if s.seq.Accept(tok) {
		s.state.Cart = nil
		s.state.Error = ""
	}
	s.mu.Unlock()
	return nil
}

func clampQuantity(q, available int) int {
	if q > available {
		q = available
	}
	if q < 1 {
		q = 1
	}
	return q
}

// ════════════════════════════════════════════════════════════
// state transitions
// ════════════════════════════════════════════════════════════

func (s *CartStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.state.Loading = true
	return s.seq.Begin()
}

func (s *CartStore) done() {
	s.inflight--
	s.state.Loading = s.inflight > 0
	s.state.Hydrated = true
}

// commit applies cart unless a newer response was already applied, and
// returns the cart the store now holds.
func (s *CartStore) commit(tok uint64, cart *models.Cart) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done()
	if s.seq.Accept(tok) {
		s.state.Cart = cart
		s.state.Error = ""
	} else {
		metrics.RecordStaleResponse("cart")
		s.log.WithField("token", tok).Debug("[cart] discarded stale response")
	}
	return s.state.Cart
}

func (s *CartStore) fail(tok uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done()
	if s.seq.Current(tok) {
		s.state.Error = errorMessage(err)
	}
	s.log.WithError(err).Warn("[cart] request failed")
	return err
}

func (s *CartStore) reject(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = errorMessage(err)
	return err
}

func (s *CartStore) expire(ctx context.Context, tok uint64) error {
	if err := s.slot.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("[cart] could not clear expired cart id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done()
	if s.seq.Accept(tok) {
		s.state.Cart = nil
		s.state.Error = errorMessage(ErrCartNotFound)
	}
	return ErrCartNotFound
}
