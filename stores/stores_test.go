package stores

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
)

const testSession = "sess-1"

func newCart(gw *fakeGateway, backend persist.Backend) *CartStore {
	return NewCartStore(gw, backend, testSession, time.Hour, testLogger())
}

func cartSlot(backend persist.Backend) *persist.Slot[string] {
	return persist.NewSlot[string](backend, persist.Key(testSession, persist.KeyCartID), cartSlotVersion, time.Hour, cartMigrations)
}

// ════════════════════════════════════════════════════════════
// Sequencer
// ════════════════════════════════════════════════════════════

func TestSequencer_DropsOlderTokens(t *testing.T) {
	var s Sequencer
	first, second := s.Begin(), s.Begin()

	assert.True(t, s.Latest(second))
	assert.False(t, s.Latest(first))
	assert.True(t, s.Accept(second))
	assert.False(t, s.Current(first))
	assert.False(t, s.Accept(first))
	assert.False(t, s.Accept(second), "a token is applied once")
}

// ════════════════════════════════════════════════════════════
// Cart
// ════════════════════════════════════════════════════════════

func TestCartStore_InitCreatesAndPersistsCart(t *testing.T) {
	gw := newFakeGateway()
	gw.createCart = func([]models.CartLineInput) (*models.Cart, error) {
		return &models.Cart{ID: "c1", TotalQuantity: 0}, nil
	}
	backend := persist.NewMemoryBackend()
	store := newCart(gw, backend)

	require.NoError(t, store.Init(context.Background()))

	st := store.State()
	require.NotNil(t, st.Cart)
	assert.Equal(t, "c1", st.Cart.ID)
	assert.True(t, st.Hydrated)
	assert.False(t, st.Loading)

	id, ok, err := cartSlot(backend).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c1", id)
}

func TestCartStore_InitReusesStoredCart(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c7"] = &models.Cart{ID: "c7", TotalQuantity: 2}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c7"))

	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	assert.Equal(t, "c7", store.ID())
	assert.NotContains(t, gw.Calls(), "CreateCart")
}

func TestCartStore_InitReplacesExpiredCart(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "gone"))

	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	assert.Equal(t, []string{"GetCart:gone", "CreateCart"}, gw.Calls())
	assert.Equal(t, "c1", store.ID())
	id, _, err := cartSlot(backend).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c1", id)
}

func TestCartStore_InitReadsLegacyBareString(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["legacy"] = &models.Cart{ID: "legacy"}
	backend := persist.NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), persist.Key(testSession, persist.KeyCartID), []byte(`"legacy"`), 0))

	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))
	assert.Equal(t, "legacy", store.ID())
}

func TestCartStore_InitFailureIsRecorded(t *testing.T) {
	gw := newFakeGateway()
	gw.createCart = func([]models.CartLineInput) (*models.Cart, error) { return nil, errNetwork }
	store := newCart(gw, persist.NewMemoryBackend())

	err := store.Init(context.Background())
	require.Error(t, err)

	st := store.State()
	assert.Nil(t, st.Cart)
	assert.True(t, st.Hydrated)
	assert.Equal(t, commerce.GenericMessage, st.Error)
}

func TestCartStore_ConcurrentInitCreatesOneCart(t *testing.T) {
	gw := newFakeGateway()
	store := newCart(gw, persist.NewMemoryBackend())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.AddItem(context.Background(), "v1", 1)
		}()
	}
	wg.Wait()

	creates := 0
	for _, c := range gw.Calls() {
		if c == "CreateCart" {
			creates++
		}
	}
	assert.Equal(t, 1, creates)
	assert.Equal(t, "c1", store.ID())
}

func TestCartStore_AddItemClampsToAvailability(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c1"] = &models.Cart{ID: "c1", TotalQuantity: 2, Lines: []models.CartLine{{
		ID:          "line-v1",
		Quantity:    2,
		Merchandise: models.CartMerchandise{VariantID: "v1", QuantityAvailable: intPtr(3)},
	}}}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c1"))
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	cart, err := store.AddItem(context.Background(), "v1", 5)
	require.NoError(t, err)
	line, ok := cart.LineForVariant("v1")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)

	// Already at the limit: nothing is sent.
	before := len(gw.Calls())
	_, err = store.AddItem(context.Background(), "v1", 1)
	assert.ErrorIs(t, err, ErrQuantityUnavailable)
	assert.Len(t, gw.Calls(), before)
	assert.Equal(t, ErrQuantityUnavailable.Error(), store.State().Error)
}

func TestCartStore_UpdateItemClampsQuantity(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c1"] = &models.Cart{ID: "c1", Lines: []models.CartLine{{
		ID:          "l1",
		Quantity:    1,
		Merchandise: models.CartMerchandise{VariantID: "v1", QuantityAvailable: intPtr(4)},
	}}}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c1"))
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	var sent []int
	gw.updateCartLines = func(cartID string, lines []models.CartLineUpdate) (*models.Cart, error) {
		sent = append(sent, lines[0].Quantity)
		return &models.Cart{ID: cartID, Lines: []models.CartLine{{
			ID:          "l1",
			Quantity:    lines[0].Quantity,
			Merchandise: models.CartMerchandise{VariantID: "v1", QuantityAvailable: intPtr(4)},
		}}}, nil
	}

	_, err := store.UpdateItem(context.Background(), "l1", 10)
	require.NoError(t, err)
	_, err = store.UpdateItem(context.Background(), "l1", 0)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 1}, sent)

	_, err = store.UpdateItem(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCartStore_UpdateItemSoldOut(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c1"] = &models.Cart{ID: "c1", Lines: []models.CartLine{{
		ID:          "l1",
		Quantity:    1,
		Merchandise: models.CartMerchandise{VariantID: "v1", QuantityAvailable: intPtr(0)},
	}}}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c1"))
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	_, err := store.UpdateItem(context.Background(), "l1", 2)
	assert.ErrorIs(t, err, ErrQuantityUnavailable)
	assert.NotContains(t, gw.Calls(), "UpdateCartLines")
}

func TestCartStore_DiscardsStaleResponse(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c1"] = &models.Cart{ID: "c1", Lines: []models.CartLine{{
		ID: "l1", Quantity: 1, Merchandise: models.CartMerchandise{VariantID: "v1"},
	}}}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c1"))
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	gw.updateCartLines = func(cartID string, lines []models.CartLineUpdate) (*models.Cart, error) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		return &models.Cart{ID: cartID, TotalQuantity: lines[0].Quantity, Lines: []models.CartLine{{
			ID: "l1", Quantity: lines[0].Quantity, Merchandise: models.CartMerchandise{VariantID: "v1"},
		}}}, nil
	}

	slow := make(chan *models.Cart)
	go func() {
		cart, _ := store.UpdateItem(context.Background(), "l1", 2)
		slow <- cart
	}()
	<-entered

	fast, err := store.UpdateItem(context.Background(), "l1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, fast.TotalQuantity)

	close(release)
	late := <-slow

	// The older response arrives last and is ignored.
	assert.Equal(t, 5, late.TotalQuantity)
	assert.Equal(t, 5, store.State().Cart.TotalQuantity)
	assert.False(t, store.State().Loading)
}

func TestCartStore_StaleFailureDoesNotOverwriteError(t *testing.T) {
	gw := newFakeGateway()
	gw.carts["c1"] = &models.Cart{ID: "c1", Lines: []models.CartLine{{
		ID: "l1", Quantity: 1, Merchandise: models.CartMerchandise{VariantID: "v1"},
	}}}
	backend := persist.NewMemoryBackend()
	require.NoError(t, cartSlot(backend).Save(context.Background(), "c1"))
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	gw.updateCartLines = func(cartID string, lines []models.CartLineUpdate) (*models.Cart, error) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
			return nil, errNetwork
		}
		return &models.Cart{ID: cartID, TotalQuantity: lines[0].Quantity}, nil
	}

	done := make(chan error)
	go func() {
		_, err := store.UpdateItem(context.Background(), "l1", 2)
		done <- err
	}()
	<-entered
	_, err := store.UpdateItem(context.Background(), "l1", 3)
	require.NoError(t, err)
	close(release)

	assert.Error(t, <-done)
	assert.Empty(t, store.State().Error)
	assert.Equal(t, 3, store.State().Cart.TotalQuantity)
}

func TestCartStore_AddItemRecreatesExpiredCart(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	store := newCart(gw, backend)
	require.NoError(t, store.Init(context.Background()))
	require.Equal(t, "c1", store.ID())

	// The backend forgets the cart behind the store's back.
	gw.mu.Lock()
	delete(gw.carts, "c1")
	gw.mu.Unlock()

	cart, err := store.AddItem(context.Background(), "v9", 2)
	require.NoError(t, err)
	assert.Equal(t, "c2", cart.ID)
	assert.Equal(t, 2, cart.TotalQuantity)

	id, _, err := cartSlot(backend).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c2", id)
}

func TestCartStore_RemoveItemAndClear(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	store := newCart(gw, backend)

	cart, err := store.AddItem(context.Background(), "v1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	cart, err = store.RemoveItem(context.Background(), cart.Lines[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	require.NoError(t, store.Clear(context.Background()))
	assert.Nil(t, store.State().Cart)
	_, ok := backend.Raw(persist.Key(testSession, persist.KeyCartID))
	assert.False(t, ok)
}

// ════════════════════════════════════════════════════════════
// Favorites
// ════════════════════════════════════════════════════════════

func newFavorites(gw *fakeGateway, backend persist.Backend) *FavoritesStore {
	return NewFavoritesStore(gw, backend, testSession, time.Hour, testLogger())
}

func TestFavoritesStore_ToggleAddsAndFetches(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	store := newFavorites(gw, backend)
	require.NoError(t, store.Hydrate(context.Background()))

	added, err := store.Toggle(context.Background(), "shirt-1")
	require.NoError(t, err)
	assert.True(t, added)

	st := store.State()
	assert.Equal(t, []string{"shirt-1"}, st.Handles)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "shirt-1", st.Products[0].Handle)
	assert.Contains(t, gw.Calls(), "GetProductsByHandles:[shirt-1]")

	reloaded := newFavorites(gw, backend)
	require.NoError(t, reloaded.Hydrate(context.Background()))
	assert.Equal(t, []string{"shirt-1"}, reloaded.State().Handles)
}

// slowBackend parks every Save until release is closed.
type slowBackend struct {
	*persist.MemoryBackend
	entered chan struct{}
	release chan struct{}
}

func (b *slowBackend) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	b.entered <- struct{}{}
	<-b.release
	return b.MemoryBackend.Save(ctx, key, data, ttl)
}

func TestFavoritesStore_ReadersDoNotWaitOnSave(t *testing.T) {
	backend := &slowBackend{MemoryBackend: persist.NewMemoryBackend(), entered: make(chan struct{}, 1), release: make(chan struct{})}
	store := newFavorites(newFakeGateway(), backend)
	require.NoError(t, store.Hydrate(context.Background()))

	done := make(chan bool)
	go func() {
		added, _ := store.Toggle(context.Background(), "shirt-1")
		done <- added
	}()
	<-backend.entered

	read := make(chan struct{})
	go func() {
		store.State()
		store.IsFavorite("shirt-1")
		close(read)
	}()
	select {
	case <-read:
	case <-time.After(time.Second):
		t.Fatal("State blocked while favorites were being saved")
	}

	close(backend.release)
	assert.True(t, <-done)
	fav, known := store.IsFavorite("shirt-1")
	assert.True(t, known)
	assert.True(t, fav)
}

func TestFavoritesStore_ConcurrentTogglesKeepBoth(t *testing.T) {
	backend := persist.NewMemoryBackend()
	store := newFavorites(newFakeGateway(), backend)
	require.NoError(t, store.Hydrate(context.Background()))

	var wg sync.WaitGroup
	for _, h := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(h string) {
			defer wg.Done()
			_, _ = store.Toggle(context.Background(), h)
		}(h)
	}
	wg.Wait()

	got := store.State().Handles
	sort.Strings(got)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	reloaded := newFavorites(newFakeGateway(), backend)
	require.NoError(t, reloaded.Hydrate(context.Background()))
	assert.Len(t, reloaded.State().Handles, 3)
}

func TestFavoritesStore_IsFavoriteUnknownBeforeHydration(t *testing.T) {
	store := newFavorites(newFakeGateway(), persist.NewMemoryBackend())

	_, known := store.IsFavorite("shirt-1")
	assert.False(t, known)

	require.NoError(t, store.Hydrate(context.Background()))
	fav, known := store.IsFavorite("shirt-1")
	assert.True(t, known)
	assert.False(t, fav)
}

func TestFavoritesStore_HydrateEmptyDoesNotFetch(t *testing.T) {
	gw := newFakeGateway()
	store := newFavorites(gw, persist.NewMemoryBackend())
	require.NoError(t, store.Hydrate(context.Background()))

	st := store.State()
	assert.True(t, st.Hydrated)
	assert.Empty(t, st.Handles)
	assert.NotNil(t, st.Handles)
	assert.Empty(t, gw.Calls())
}

func TestFavoritesStore_MigratesLegacyBlob(t *testing.T) {
	backend := persist.NewMemoryBackend()
	legacy := `{"state":{"favoriteHandles":["a","b","a"]},"version":0}`
	require.NoError(t, backend.Save(context.Background(), persist.Key(testSession, persist.KeyFavorites), []byte(legacy), 0))

	store := newFavorites(newFakeGateway(), backend)
	require.NoError(t, store.Hydrate(context.Background()))
	assert.Equal(t, []string{"a", "b"}, store.State().Handles)
}

func TestFavoritesStore_FetchFailureKeepsHandles(t *testing.T) {
	gw := newFakeGateway()
	gw.productsByHandles = func([]string) ([]models.Product, error) { return nil, errNetwork }
	store := newFavorites(gw, persist.NewMemoryBackend())
	require.NoError(t, store.Hydrate(context.Background()))

	added, err := store.Toggle(context.Background(), "shirt-1")
	assert.Error(t, err)
	assert.True(t, added)

	st := store.State()
	assert.Equal(t, []string{"shirt-1"}, st.Handles)
	assert.Equal(t, commerce.GenericMessage, st.Error)
	assert.False(t, st.Loading)
}

func TestFavoritesStore_RemovingLastSkipsFetch(t *testing.T) {
	gw := newFakeGateway()
	store := newFavorites(gw, persist.NewMemoryBackend())

	_, err := store.Toggle(context.Background(), "shirt-1")
	require.NoError(t, err)
	calls := len(gw.Calls())

	added, err := store.Toggle(context.Background(), "shirt-1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, gw.Calls(), calls)
	assert.Empty(t, store.State().Products)
}

func TestFavoritesStore_ToggleTwiceRestoresMembership(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	handle := gen.RegexMatch(`[a-z]{1,6}(-[0-9])?`)

	properties.Property("toggling a handle twice is a no-op on the set", prop.ForAll(
		func(initial []string, target string) bool {
			backend := persist.NewMemoryBackend()
			seed := persist.NewSlot[favoritesDoc](backend, persist.Key(testSession, persist.KeyFavorites), favoritesSlotVersion, 0, favoritesMigrations)
			if err := seed.Save(context.Background(), favoritesDoc{Handles: initial}); err != nil {
				return false
			}
			store := newFavorites(newFakeGateway(), backend)
			if err := store.Hydrate(context.Background()); err != nil {
				return false
			}
			before := store.State().Handles

			if _, err := store.Toggle(context.Background(), target); err != nil {
				return false
			}
			if _, err := store.Toggle(context.Background(), target); err != nil {
				return false
			}
			after := store.State().Handles

			sort.Strings(before)
			sort.Strings(after)
			return assert.ObjectsAreEqual(before, after)
		},
		gen.SliceOf(handle),
		handle,
	))

	properties.TestingRun(t)
}

// ════════════════════════════════════════════════════════════
// Auth
// ════════════════════════════════════════════════════════════

func newAuth(gw *fakeGateway, backend persist.Backend, now func() time.Time) *AuthStore {
	return NewAuthStore(gw, backend, testSession, time.Hour, 24*time.Hour, now, testLogger())
}

func authSlot(backend persist.Backend) *persist.Slot[authDoc] {
	return persist.NewSlot[authDoc](backend, persist.Key(testSession, persist.KeyAuthSession), authSlotVersion, time.Hour, authMigrations)
}

func TestAuthStore_CheckAuthStatusFailureLogsOut(t *testing.T) {
	gw := newFakeGateway()
	gw.getCustomer = func(string) (*models.Customer, error) { return nil, errNetwork }
	backend := persist.NewMemoryBackend()
	require.NoError(t, authSlot(backend).Save(context.Background(), authDoc{
		Credential: models.SessionCredential{Kind: models.CredentialStorefront, Token: "stored"},
		Customer:   &models.Customer{ID: "1", Email: "ana@example.com"},
	}))

	store := newAuth(gw, backend, nil)
	assert.False(t, store.CheckAuthStatus(context.Background()))

	st := store.State()
	assert.False(t, st.IsLoggedIn)
	assert.Nil(t, st.Customer)
	assert.Nil(t, st.Credential)
	assert.Empty(t, st.Error)
	_, ok := backend.Raw(persist.Key(testSession, persist.KeyAuthSession))
	assert.False(t, ok)
}

func TestAuthStore_CheckAuthStatusRefreshesProfile(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	require.NoError(t, authSlot(backend).Save(context.Background(), authDoc{
		Credential: models.SessionCredential{Kind: models.CredentialStorefront, Token: "stored"},
	}))

	store := newAuth(gw, backend, nil)
	assert.True(t, store.CheckAuthStatus(context.Background()))

	st := store.State()
	assert.True(t, st.IsLoggedIn)
	require.NotNil(t, st.Customer)
	assert.Equal(t, "ana@example.com", st.Customer.Email)
	assert.Equal(t, "stored", st.Credential.Token)
}

func TestAuthStore_HydrateDropsExpiredSession(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	backend := persist.NewMemoryBackend()
	require.NoError(t, authSlot(backend).Save(context.Background(), authDoc{
		Credential: models.SessionCredential{Kind: models.CredentialStorefront, Token: "old", ExpiresAt: now.Add(-time.Minute)},
	}))

	store := newAuth(newFakeGateway(), backend, func() time.Time { return now })
	require.NoError(t, store.Hydrate(context.Background()))

	st := store.State()
	assert.True(t, st.Hydrated)
	assert.False(t, st.IsLoggedIn)
	_, ok := backend.Raw(persist.Key(testSession, persist.KeyAuthSession))
	assert.False(t, ok)
}

func TestAuthStore_HydrateMigratesLegacySession(t *testing.T) {
	backend := persist.NewMemoryBackend()
	legacy := `{"state":{"token":"legacy-token","customer":{"id":"7","email":"old@example.com"}},"version":0}`
	require.NoError(t, backend.Save(context.Background(), persist.Key(testSession, persist.KeyAuthSession), []byte(legacy), 0))

	store := newAuth(newFakeGateway(), backend, nil)
	require.NoError(t, store.Hydrate(context.Background()))

	st := store.State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, "legacy-token", st.Credential.Token)
	assert.Equal(t, models.CredentialStorefront, st.Credential.Kind)
	require.NotNil(t, st.Customer)
	assert.Equal(t, "old@example.com", st.Customer.Email)
}

func TestAuthStore_LoginIsOptimistic(t *testing.T) {
	gw := newFakeGateway()
	release := make(chan struct{})
	gw.getCustomer = func(token string) (*models.Customer, error) {
		<-release
		return &models.Customer{ID: "1", Email: "ana@example.com"}, nil
	}
	backend := persist.NewMemoryBackend()
	store := newAuth(gw, backend, nil)

	require.NoError(t, store.Login(context.Background(), "ana@example.com", "secret"))

	st := store.State()
	assert.True(t, st.IsLoggedIn)
	assert.Nil(t, st.Customer)
	assert.Equal(t, "tok-ana@example.com", st.Credential.Token)

	close(release)
	store.Wait()

	st = store.State()
	require.NotNil(t, st.Customer)
	assert.Equal(t, "ana@example.com", st.Customer.Email)

	doc, ok, err := authSlot(backend).Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-ana@example.com", doc.Credential.Token)
	require.NotNil(t, doc.Customer)
}

func TestAuthStore_LoginProfileFailureLogsOut(t *testing.T) {
	gw := newFakeGateway()
	gw.getCustomer = func(string) (*models.Customer, error) { return nil, nil }
	backend := persist.NewMemoryBackend()
	store := newAuth(gw, backend, nil)

	require.NoError(t, store.Login(context.Background(), "ana@example.com", "secret"))
	store.Wait()

	st := store.State()
	assert.False(t, st.IsLoggedIn)
	assert.Nil(t, st.Credential)
	assert.Equal(t, ErrNotLoggedIn.Error(), st.Error)
	_, ok := backend.Raw(persist.Key(testSession, persist.KeyAuthSession))
	assert.False(t, ok)
}

func TestAuthStore_LoginRejectedShowsUserError(t *testing.T) {
	gw := newFakeGateway()
	gw.createToken = func(string, string) (*models.CustomerAccessToken, error) {
		return nil, &commerce.UserError{Op: "customerAccessTokenCreate", Messages: []string{"Unidentified customer"}, Codes: []string{"UNIDENTIFIED_CUSTOMER"}}
	}
	store := newAuth(gw, persist.NewMemoryBackend(), nil)

	err := store.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	st := store.State()
	assert.False(t, st.IsLoggedIn)
	assert.Equal(t, "Unidentified customer", st.Error)
	assert.False(t, st.Loading)
}

func TestAuthStore_LoginWithIdentityCreatesCustomer(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	store := newAuth(gw, persist.NewMemoryBackend(), func() time.Time { return now })

	cust, err := store.LoginWithIdentity(context.Background(), models.ExternalIdentity{
		Provider: "google", Subject: "123", Email: "new@example.com", FirstName: "Nuevo",
	})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Customer/9", cust.ID)
	assert.Equal(t, []string{"FindCustomerByEmail", "AdminCreateCustomer"}, gw.Calls())

	cred := store.Credential()
	require.NotNil(t, cred)
	assert.Equal(t, models.CredentialLinked, cred.Kind)
	assert.Equal(t, cust.ID, cred.CustomerID)
	assert.Equal(t, now.Add(24*time.Hour), cred.ExpiresAt)

	// Linked sessions confirm through the admin lookup.
	assert.True(t, store.CheckAuthStatus(context.Background()))
	assert.Contains(t, gw.Calls(), "GetCustomerByID")
}

func TestAuthStore_LoginWithIdentityReusesExistingCustomer(t *testing.T) {
	gw := newFakeGateway()
	gw.findByEmail = func(email string) (*models.Customer, error) {
		return &models.Customer{ID: "gid://shopify/Customer/4", Email: email}, nil
	}
	store := newAuth(gw, persist.NewMemoryBackend(), nil)

	cust, err := store.LoginWithIdentity(context.Background(), models.ExternalIdentity{Provider: "google", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Customer/4", cust.ID)
	assert.NotContains(t, gw.Calls(), "AdminCreateCustomer")
}

func TestAuthStore_LoginWithIdentityAdminDisabled(t *testing.T) {
	gw := newFakeGateway()
	gw.findByEmail = func(string) (*models.Customer, error) { return nil, commerce.ErrAdminDisabled }
	store := newAuth(gw, persist.NewMemoryBackend(), nil)

	_, err := store.LoginWithIdentity(context.Background(), models.ExternalIdentity{Email: "ana@example.com"})
	assert.ErrorIs(t, err, commerce.ErrAdminDisabled)
	assert.False(t, store.State().IsLoggedIn)
}

func TestAuthStore_RegisterThenLogin(t *testing.T) {
	gw := newFakeGateway()
	store := newAuth(gw, persist.NewMemoryBackend(), nil)

	err := store.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana", LastName: "Paz", Email: "ana@example.com", Password: "secret",
	})
	require.NoError(t, err)
	store.Wait()

	assert.Equal(t, []string{"CreateCustomer", "CreateAccessToken", "GetCustomer"}, gw.Calls())
	st := store.State()
	assert.True(t, st.IsLoggedIn)
	assert.False(t, st.Loading)
}

func TestAuthStore_Logout(t *testing.T) {
	gw := newFakeGateway()
	backend := persist.NewMemoryBackend()
	store := newAuth(gw, backend, nil)
	require.NoError(t, store.Login(context.Background(), "ana@example.com", "secret"))
	store.Wait()

	require.NoError(t, store.Logout(context.Background()))

	assert.Contains(t, gw.Calls(), "DeleteAccessToken")
	st := store.State()
	assert.False(t, st.IsLoggedIn)
	assert.Nil(t, st.Customer)
	_, ok := backend.Raw(persist.Key(testSession, persist.KeyAuthSession))
	assert.False(t, ok)
}

// ════════════════════════════════════════════════════════════
// Menu & UI
// ════════════════════════════════════════════════════════════

func TestMenuStore_CachesWithinTTL(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	gw := newFakeGateway()
	store := NewMenuStore(gw, 10*time.Minute, clock, testLogger())

	menu, err := store.Get(context.Background(), "main-menu")
	require.NoError(t, err)
	assert.Equal(t, "main-menu", menu.Handle)

	_, err = store.Get(context.Background(), "main-menu")
	require.NoError(t, err)
	assert.Len(t, gw.Calls(), 1)

	now = now.Add(11 * time.Minute)
	_, err = store.Get(context.Background(), "main-menu")
	require.NoError(t, err)
	assert.Len(t, gw.Calls(), 2)
	assert.Equal(t, now, store.State("main-menu").FetchedAt)
}

func TestMenuStore_SharesConcurrentFetches(t *testing.T) {
	gw := newFakeGateway()
	release := make(chan struct{})
	var fetches atomic.Int32
	gw.getMenu = func(handle string) (*models.Menu, error) {
		fetches.Add(1)
		<-release
		return &models.Menu{Handle: handle}, nil
	}
	store := NewMenuStore(gw, time.Minute, nil, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Get(context.Background(), "footer")
		}()
	}
	require.Eventually(t, func() bool { return fetches.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load())
	assert.False(t, store.State("footer").Loading)
}

// ctxMenus blocks until release and reports the ctx error it then sees.
type ctxMenus struct {
	calls   atomic.Int32
	release chan struct{}
}

func (g *ctxMenus) GetMenu(ctx context.Context, handle string) (*models.Menu, error) {
	g.calls.Add(1)
	<-g.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &models.Menu{Handle: handle}, nil
}

func TestMenuStore_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gw := &ctxMenus{release: make(chan struct{})}
	store := NewMenuStore(gw, time.Minute, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.Get(ctx, "main-menu")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return gw.calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		menu *models.Menu
		err  error
	}
	second := make(chan result, 1)
	go func() {
		m, err := store.Get(context.Background(), "main-menu")
		second <- result{m, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(gw.release)
	res := <-second
	require.NoError(t, res.err)
	require.NotNil(t, res.menu)
	assert.Equal(t, "main-menu", res.menu.Handle)
	assert.Equal(t, int32(1), gw.calls.Load())
	assert.Empty(t, store.State("main-menu").Error)
}

func TestMenuStore_FailureKeepsPreviousMenu(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	store := NewMenuStore(gw, time.Minute, func() time.Time { return now }, testLogger())

	_, err := store.Get(context.Background(), "main-menu")
	require.NoError(t, err)

	gw.getMenu = func(string) (*models.Menu, error) { return nil, errNetwork }
	now = now.Add(time.Hour)
	menu, err := store.Get(context.Background(), "main-menu")
	require.Error(t, err)
	require.NotNil(t, menu)
	assert.Equal(t, "main-menu", menu.Handle)
	assert.Equal(t, commerce.GenericMessage, store.State("main-menu").Error)
}

func TestUIStore_OverlaysAreExclusive(t *testing.T) {
	var ui UIStore

	st := ui.ToggleMenu()
	assert.Equal(t, UIState{MenuOpen: true}, st)

	st = ui.ToggleSearch()
	assert.Equal(t, UIState{SearchOpen: true}, st)

	st = ui.ToggleSearch()
	assert.Equal(t, UIState{}, st)

	ui.ToggleMenu()
	assert.Equal(t, UIState{}, ui.CloseAll())
}

// ════════════════════════════════════════════════════════════
// Registry
// ════════════════════════════════════════════════════════════

func TestRegistry_SessionHydratesOnce(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	reg := NewRegistry(gw, persist.NewMemoryBackend(), testLogger().Logger, Options{Now: func() time.Time { return now }})

	s := reg.Session(context.Background(), "abc")
	assert.Equal(t, "abc", s.ID)
	assert.True(t, s.Cart.State().Hydrated)
	assert.True(t, s.Favorites.State().Hydrated)
	assert.True(t, s.Auth.State().Hydrated)
	assert.Equal(t, "c1", s.Cart.ID())

	again := reg.Session(context.Background(), "abc")
	assert.Same(t, s, again)
	assert.Equal(t, 1, reg.Len())

	creates := 0
	for _, c := range gw.Calls() {
		if c == "CreateCart" {
			creates++
		}
	}
	assert.Equal(t, 1, creates)
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	backend := persist.NewMemoryBackend()
	reg := NewRegistry(newFakeGateway(), backend, testLogger().Logger, Options{Now: func() time.Time { return now }})

	first := reg.Session(context.Background(), "old")
	now = now.Add(time.Hour)
	reg.Session(context.Background(), "fresh")

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 1, reg.Len())

	// The evicted session's cart survives in the backend.
	revived := reg.Session(context.Background(), "old")
	assert.NotSame(t, first, revived)
	assert.Equal(t, first.Cart.ID(), revived.Cart.ID())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", errorMessage(nil))
	assert.Equal(t, ErrCartNotFound.Error(), errorMessage(ErrCartNotFound))
	assert.Equal(t, "Email has already been taken", errorMessage(&commerce.UserError{Messages: []string{"Email has already been taken"}}))
	assert.Equal(t, commerce.GenericMessage, errorMessage(errors.New("boom")))
}
