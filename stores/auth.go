package stores

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
)

const (
	authSlotVersion = 1
	profileTimeout  = 10 * time.Second
)

type authDoc struct {
	Credential models.SessionCredential `json:"credential"`
	Customer   *models.Customer         `json:"customer,omitempty"`
}

// Version 0 is the browser-persisted {"state":{"token":...,"customer":...}}.
var authMigrations = map[int]persist.Migration{
	0: func(data json.RawMessage) (json.RawMessage, error) {
		r := gjson.ParseBytes(data)
		state := r.Get("state")
		if !state.Exists() {
			state = r
		}
		token := state.Get("token").String()
		if token == "" {
			return nil, errors.New("legacy auth blob has no token")
		}
		doc := authDoc{Credential: models.SessionCredential{Kind: models.CredentialStorefront, Token: token}}
		if c := state.Get("customer"); c.IsObject() {
			var cust models.Customer
			if err := json.Unmarshal([]byte(c.Raw), &cust); err == nil {
				doc.Customer = &cust
			}
		}
		return json.Marshal(doc)
	},
}

type AuthState struct {
	Credential *models.SessionCredential `json:"-"`
	Customer   *models.Customer          `json:"customer"`
	IsLoggedIn bool                      `json:"isLoggedIn"`
	Loading    bool                      `json:"loading"`
	Error      string                    `json:"error,omitempty"`
	Hydrated   bool                      `json:"hydrated"`
}

// AuthStore holds the session credential and customer profile. Any failure
// to confirm identity is treated as logged out.
type AuthStore struct {
	gw        CustomerGateway
	slot      *persist.Slot[authDoc]
	log       *logrus.Entry
	now       func() time.Time
	linkedTTL time.Duration

	hydrate sync.Mutex
	wg      sync.WaitGroup

	mu       sync.Mutex
	seq      Sequencer
	state    AuthState
	inflight int
}

func NewAuthStore(gw CustomerGateway, backend persist.Backend, session string, ttl, linkedTTL time.Duration, now func() time.Time, log *logrus.Entry) *AuthStore {
	if now == nil {
		now = time.Now
	}
	return &AuthStore{
		gw:        gw,
		slot:      persist.NewSlot[authDoc](backend, persist.Key(session, persist.KeyAuthSession), authSlotVersion, ttl, authMigrations),
		log:       log.WithField("store", "auth"),
		now:       now,
		linkedTTL: linkedTTL,
	}
}

func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Credential != nil {
		c := *st.Credential
		st.Credential = &c
	}
	return st
}

// Credential returns the session credential, or nil when logged out.
func (s *AuthStore) Credential() *models.SessionCredential {
	return s.State().Credential
}

// Wait blocks until background profile fetches have finished.
func (s *AuthStore) Wait() { s.wg.Wait() }

func (s *AuthStore) expired(c models.SessionCredential) bool {
	return !c.ExpiresAt.IsZero() && !s.now().Before(c.ExpiresAt)
}

// Hydrate restores the persisted session without contacting the backend.
func (s *AuthStore) Hydrate(ctx context.Context) error {
	s.hydrate.Lock()
	defer s.hydrate.Unlock()

	if s.State().Hydrated {
		return nil
	}

	doc, ok, err := s.slot.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("[auth] discarding unreadable session")
		_ = s.slot.Clear(ctx)
		ok = false
	}
	if ok && s.expired(doc.Credential) {
		_ = s.slot.Clear(ctx)
		ok = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Hydrated = true
	if ok && (doc.Credential.Token != "" || doc.Credential.CustomerID != "") {
		cred := doc.Credential
		s.state.Credential = &cred
		s.state.Customer = doc.Customer
		s.state.IsLoggedIn = true
	}
	return nil
}

// Login exchanges credentials for a customer access token. The session is
// marked logged in as soon as the token arrives; the profile is fetched in
// the background (see Wait).
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	tok := s.begin()
	at, err := s.gw.CreateAccessToken(ctx, email, password)
	if err != nil {
		return s.fail(tok, err)
	}

	cred := models.SessionCredential{
		Kind:      models.CredentialStorefront,
		Token:     at.Token,
		ExpiresAt: at.ExpiresAt,
	}
	if !s.establish(tok, cred, nil) {
		return nil
	}
	s.persist(ctx, cred, nil)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), profileTimeout)
		defer cancel()
		s.loadProfile(pctx, tok, cred)
	}()
	return nil
}

// LoginWithIdentity signs in a shopper verified by a third-party provider,
// creating the customer on first sign-in.
func (s *AuthStore) LoginWithIdentity(ctx context.Context, identity models.ExternalIdentity) (*models.Customer, error) {
	tok := s.begin()
	cust, err := s.gw.FindCustomerByEmail(ctx, identity.Email)
	if err != nil {
		return nil, s.fail(tok, err)
	}
	if cust == nil {
		s.log.WithField("provider", identity.Provider).Info("[auth] creating customer for new external identity")
		if cust, err = s.gw.AdminCreateCustomer(ctx, identity); err != nil {
			return nil, s.fail(tok, err)
		}
		if cust == nil {
			return nil, s.fail(tok, ErrNotLoggedIn)
		}
	}

	cred := models.SessionCredential{
		Kind:       models.CredentialLinked,
		CustomerID: cust.ID,
	}
	if s.linkedTTL > 0 {
		cred.ExpiresAt = s.now().Add(s.linkedTTL)
	}
	if s.establish(tok, cred, cust) {
		s.persist(ctx, cred, cust)
	}
	return cust, nil
}

// Register creates the customer and logs them in.
func (s *AuthStore) Register(ctx context.Context, req models.RegisterRequest) error {
	tok := s.begin()
	if _, err := s.gw.CreateCustomer(ctx, req); err != nil {
		return s.fail(tok, err)
	}
	s.mu.Lock()
	s.finish()
	s.mu.Unlock()
	return s.Login(ctx, req.Email, req.Password)
}

// CheckAuthStatus confirms the stored credential against the backend. Any
// failure clears the session instead of reporting an error.
func (s *AuthStore) CheckAuthStatus(ctx context.Context) bool {
	if err := s.Hydrate(ctx); err != nil {
		return false
	}
	cred := s.Credential()
	if cred == nil {
		return false
	}

	tok := s.begin()
	if s.expired(*cred) {
		s.clear(ctx, tok)
		return false
	}

	cust, err := s.profile(ctx, *cred)
	if err != nil {
		s.log.WithError(err).Info("[auth] could not confirm session, logging out")
		s.clear(ctx, tok)
		return false
	}

	s.mu.Lock()
	s.finish()
	accepted := s.seq.Accept(tok)
	if accepted {
		s.state.Customer = cust
		s.state.IsLoggedIn = true
		s.state.Error = ""
	}
	s.mu.Unlock()
	if accepted {
		s.persist(ctx, *cred, cust)
	}
	return true
}

// Logout revokes a storefront token (best effort) and clears the session.
func (s *AuthStore) Logout(ctx context.Context) error {
	tok := s.begin()
	if cred := s.Credential(); cred != nil && cred.Kind == models.CredentialStorefront && cred.Token != "" {
		if err := s.gw.DeleteAccessToken(ctx, cred.Token); err != nil {
			s.log.WithError(err).Warn("[auth] could not revoke access token")
		}
	}
	s.clear(ctx, tok)
	return nil
}

func (s *AuthStore) profile(ctx context.Context, cred models.SessionCredential) (*models.Customer, error) {
	var (
		cust *models.Customer
		err  error
	)
	switch cred.Kind {
	case models.CredentialLinked:
		cust, err = s.gw.GetCustomerByID(ctx, cred.CustomerID)
	default:
		cust, err = s.gw.GetCustomer(ctx, cred.Token)
	}
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, ErrNotLoggedIn
	}
	return cust, nil
}

// loadProfile completes a login. It is dropped when another auth action
// started in the meantime.
func (s *AuthStore) loadProfile(ctx context.Context, tok uint64, cred models.SessionCredential) {
	cust, err := s.profile(ctx, cred)

	s.mu.Lock()
	if !s.seq.Latest(tok) {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.state = AuthState{Hydrated: true, Error: errorMessage(err)}
		s.mu.Unlock()
		s.log.WithError(err).Warn("[auth] profile fetch failed after login, logging out")
		_ = s.slot.Clear(ctx)
		return
	}
	s.state.Customer = cust
	s.mu.Unlock()
	s.persist(ctx, cred, cust)
}

// ════════════════════════════════════════════════════════════
// state transitions
// ════════════════════════════════════════════════════════════

func (s *AuthStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.state.Loading = true
	return s.seq.Begin()
}

// finish must be called with s.mu held.
func (s *AuthStore) finish() {
	s.inflight--
	s.state.Loading = s.inflight > 0
}

func (s *AuthStore) establish(tok uint64, cred models.SessionCredential, cust *models.Customer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish()
	if !s.seq.Accept(tok) {
		return false
	}
	s.state.Credential = &cred
	s.state.Customer = cust
	s.state.IsLoggedIn = true
	s.state.Hydrated = true
	s.state.Error = ""
	return true
}

func (s *AuthStore) fail(tok uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish()
	if s.seq.Current(tok) {
		s.state.Error = errorMessage(err)
	}
	return err
}

func (s *AuthStore) clear(ctx context.Context, tok uint64) {
	s.mu.Lock()
	s.finish()
	accepted := s.seq.Accept(tok)
	if accepted {
		s.state.Credential = nil
		s.state.Customer = nil
		s.state.IsLoggedIn = false
		s.state.Hydrated = true
		s.state.Error = ""
	}
	s.mu.Unlock()
	if accepted {
		if err := s.slot.Clear(ctx); err != nil {
			s.log.WithError(err).Warn("[auth] could not clear persisted session")
		}
	}
}

func (s *AuthStore) persist(ctx context.Context, cred models.SessionCredential, cust *models.Customer) {
	if err := s.slot.Save(ctx, authDoc{Credential: cred, Customer: cust}); err != nil {
		s.log.WithError(err).Warn("[auth] could not persist session")
	}
}
