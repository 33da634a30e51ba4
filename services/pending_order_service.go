package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingCart          = errors.New("no cart to check out")
	ErrCartNotFound         = errors.New("cart not found or expired")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrPendingOrderNotFound = errors.New("pending order not found")
	ErrHoldReleased         = errors.New("the reservation for this cart was already released")
	ErrOfflinePayments      = errors.New("cash and bank transfer payments are not available right now")
)

const (
	defaultHold        = 48 * time.Hour
	expiredBatchSize   = 100
	cashInstructions   = "Aboná en efectivo al retirar tu pedido. Te contactaremos para coordinar la entrega."
	releaseTransition  = "released"
	createdTransition  = "created"
	reusedTransition   = "reused"
	releaseFailedState = "release_failed"
)

// OrderGateway is what the pending order flow needs from the commerce backend.
type OrderGateway interface {
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	UpdateBuyerIdentity(ctx context.Context, cartID, email, customerToken string) (*models.Cart, error)
	CreatePendingOrder(ctx context.Context, in models.RemoteOrderInput) (*models.RemoteOrder, error)
	CancelOrder(ctx context.Context, orderID string, restock bool) error
}

type InstructionMailer interface {
	SendBankTransferInstructions(ctx context.Context, data BankTransferEmailData) error
}

type PendingOrderConfig struct {
	Hold                time.Duration
	BankTransferDetails string
	Now                 func() time.Time
}

// PendingOrderService hands a cart off to payment. Card payments go to the
// backend's hosted checkout; cash and bank transfer open an order with
// payment pending whose inventory stays held until it is paid or released.
type PendingOrderService struct {
	gw   OrderGateway
	repo PendingOrderRepository
	mail InstructionMailer
	cfg  PendingOrderConfig
	log  *logrus.Entry

	group singleflight.Group
	wg    sync.WaitGroup
}

// NewPendingOrderService builds the service. mail may be nil. A nil repo
// leaves only card payments available.
func NewPendingOrderService(gw OrderGateway, repo PendingOrderRepository, mail InstructionMailer, cfg PendingOrderConfig, log *logrus.Logger) *PendingOrderService {
	if cfg.Hold <= 0 {
		cfg.Hold = defaultHold
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &PendingOrderService{
		gw:   gw,
		repo: repo,
		mail: mail,
		cfg:  cfg,
		log:  log.WithField("component", "checkout"),
	}
}

// Wait blocks until background mail deliveries have finished.
func (s *PendingOrderService) Wait() { s.wg.Wait() }

// Create hands the cart off. customerToken is the storefront token of a
// logged-in shopper, or "".
func (s *PendingOrderService) Create(ctx context.Context, req models.CreatePendingOrderRequest, customerToken string) (*models.CheckoutHandoff, error) {
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if strings.TrimSpace(req.CartID) == "" {
		return nil, ErrMissingCart
	}

	if req.PaymentMethod == models.PaymentCard {
		cart, err := s.gw.UpdateBuyerIdentity(ctx, req.CartID, req.Email, customerToken)
		if err != nil {
			return nil, err
		}
		if cart == nil {
			return nil, ErrCartNotFound
		}
		return &models.CheckoutHandoff{PaymentMethod: models.PaymentCard, CheckoutURL: cart.CheckoutURL}, nil
	}

	if s.repo == nil {
		return nil, ErrOfflinePayments
	}

	// One order per cart, however many times the shopper presses the button.
	v, err, _ := s.group.Do(req.CartID, func() (any, error) {
		return s.createPending(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CheckoutHandoff), nil
}

func (s *PendingOrderService) createPending(ctx context.Context, req models.CreatePendingOrderRequest) (*models.CheckoutHandoff, error) {
	entry := s.log.WithFields(logrus.Fields{"cart_id": req.CartID, "payment_method": req.PaymentMethod})

	existing, err := s.repo.FindByCartID(ctx, req.CartID)
	if err != nil {
		return nil, fmt.Errorf("look up pending order: %w", err)
	}
	if existing != nil {
		if existing.SessionID != req.SessionID {
			return nil, ErrCartNotFound
		}
		if existing.Status == models.PendingStatusReleased {
			return nil, ErrHoldReleased
		}
		metrics.RecordPendingOrder(string(existing.PaymentMethod), reusedTransition)
		entry.WithField("order", existing.RemoteOrderName).Info("[checkout] returning existing pending order")
		return s.handoff(existing, true), nil
	}

	cart, err := s.gw.GetCart(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	snapshot, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}

	lines := make([]models.CartLineInput, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, models.CartLineInput{MerchandiseID: l.Merchandise.VariantID, Quantity: l.Quantity})
	}
	remote, err := s.gw.CreatePendingOrder(ctx, models.RemoteOrderInput{
		Email:         req.Email,
		Lines:         lines,
		Address:       req.Address,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		CurrencyCode:  cart.Cost.Total.CurrencyCode,
	})
	if err != nil {
		return nil, err
	}

	now := s.cfg.Now().UTC()
	order := &models.PendingOrder{
		CartID:          req.CartID,
		SessionID:       req.SessionID,
		RemoteOrderID:   remote.ID,
		RemoteOrderName: remote.Name,
		PaymentMethod:   req.PaymentMethod,
		Email:           req.Email,
		Status:          models.PendingStatusPending,
		Snapshot:        datatypes.JSON(snapshot),
		Total:           cart.Cost.Total.Amount,
		Currency:        cart.Cost.Total.CurrencyCode,
		HoldExpiresAt:   now.Add(s.cfg.Hold),
		CreatedAt:       now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		// Without a ledger row nothing would ever release the hold.
		entry.WithError(err).Error("[checkout] could not record pending order, cancelling remote order")
		if cerr := s.gw.CancelOrder(context.WithoutCancel(ctx), remote.ID, true); cerr != nil {
			entry.WithError(cerr).Error("[checkout] could not cancel remote order")
		}
		return nil, fmt.Errorf("record pending order: %w", err)
	}

	metrics.RecordPendingOrder(string(order.PaymentMethod), createdTransition)
	entry.WithField("order", order.RemoteOrderName).Info("[checkout] pending order created")

	if order.PaymentMethod == models.PaymentBankTransfer {
		s.sendInstructions(ctx, order, cart)
	}
	return s.handoff(order, false), nil
}

func (s *PendingOrderService) instructions(m models.PaymentMethod) string {
	switch m {
	case models.PaymentBankTransfer:
		return s.cfg.BankTransferDetails
	case models.PaymentCash:
		return cashInstructions
	}
	return ""
}

func (s *PendingOrderService) handoff(order *models.PendingOrder, existed bool) *models.CheckoutHandoff {
	return &models.CheckoutHandoff{
		PaymentMethod: order.PaymentMethod,
		Order:         order,
		AlreadyExists: existed,
		Instructions:  s.instructions(order.PaymentMethod),
	}
}

// sendInstructions mails the bank details in the background. Failures are
// logged only; the order stands either way.
func (s *PendingOrderService) sendInstructions(ctx context.Context, order *models.PendingOrder, cart *models.Cart) {
	if s.mail == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		entry := s.log.WithField("order", order.RemoteOrderName)
		pdfBytes, err := GenerateReceiptPDF(order, cart, s.cfg.BankTransferDetails)
		if err != nil {
			entry.WithError(err).Warn("[checkout] receipt not attached")
		}
		err = s.mail.SendBankTransferInstructions(mctx, BankTransferEmailData{
			CustomerEmail: order.Email,
			OrderName:     order.RemoteOrderName,
			Total:         models.Money{Amount: order.Total, CurrencyCode: order.Currency},
			Lines:         cart.Lines,
			Instructions:  s.cfg.BankTransferDetails,
			HoldExpiresAt: order.HoldExpiresAt.Format("02/01/2006 15:04"),
			PDFContent:    pdfBytes,
		})
		if err != nil {
			entry.WithError(err).Warn("[checkout] bank transfer mail failed")
		}
	}()
}

// owned loads a pending order on behalf of sessionID. Orders of other
// sessions are reported as not found.
func (s *PendingOrderService) owned(ctx context.Context, id uuid.UUID, sessionID string) (*models.PendingOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up pending order: %w", err)
	}
	if order == nil || sessionID == "" || order.SessionID != sessionID {
		return nil, ErrPendingOrderNotFound
	}
	return order, nil
}

// Release cancels the remote order with restock and marks the hold
// released. Releasing twice is a no-op.
func (s *PendingOrderService) Release(ctx context.Context, id uuid.UUID, sessionID string) (*models.PendingOrder, error) {
	if s.repo == nil {
		return nil, ErrOfflinePayments
	}
	order, err := s.owned(ctx, id, sessionID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.PendingStatusPending {
		return order, nil
	}
	if err := s.release(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PendingOrderService) release(ctx context.Context, order *models.PendingOrder) error {
	entry := s.log.WithFields(logrus.Fields{"order": order.RemoteOrderName, "pending_order_id": order.ID})
	if err := s.gw.CancelOrder(ctx, order.RemoteOrderID, true); err != nil {
		metrics.RecordPendingOrder(string(order.PaymentMethod), releaseFailedState)
		entry.WithError(err).Error("[checkout] could not cancel remote order")
		return err
	}
	changed, err := s.repo.UpdateStatus(ctx, order.ID, models.PendingStatusPending, models.PendingStatusReleased)
	if err != nil {
		return fmt.Errorf("mark released: %w", err)
	}
	order.Status = models.PendingStatusReleased
	if changed {
		metrics.RecordPendingOrder(string(order.PaymentMethod), releaseTransition)
		entry.Info("[checkout] inventory hold released")
	}
	return nil
}

// ReleaseExpired releases every pending order whose hold has expired and
// returns how many were released.
func (s *PendingOrderService) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	orders, err := s.repo.ListExpired(ctx, now, expiredBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list expired holds: %w", err)
	}
	released := 0
	var errs []error
	for i := range orders {
		if err := s.release(ctx, &orders[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", orders[i].RemoteOrderName, err))
			continue
		}
		released++
	}
	return released, errors.Join(errs...)
}

// Receipt renders the receipt PDF of a pending order.
func (s *PendingOrderService) Receipt(ctx context.Context, id uuid.UUID, sessionID string) ([]byte, *models.PendingOrder, error) {
	if s.repo == nil {
		return nil, nil, ErrOfflinePayments
	}
	order, err := s.owned(ctx, id, sessionID)
	if err != nil {
		return nil, nil, err
	}
	var cart models.Cart
	if err := json.Unmarshal(order.Snapshot, &cart); err != nil {
		return nil, nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	pdfBytes, err := GenerateReceiptPDF(order, &cart, s.instructions(order.PaymentMethod))
	if err != nil {
		return nil, nil, err
	}
	return pdfBytes, order, nil
}
