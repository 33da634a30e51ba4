package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order is a customer order as reported by the commerce backend.
type Order struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	OrderNumber       int         `json:"orderNumber"`
	ProcessedAt       time.Time   `json:"processedAt"`
	FinancialStatus   string      `json:"financialStatus"`
	FulfillmentStatus string      `json:"fulfillmentStatus"`
	TotalPrice        Money       `json:"totalPrice"`
	Lines             []OrderLine `json:"lines"`
}

type OrderLine struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variantId,omitempty"`
	Price     *Money `json:"price,omitempty"`
}

// OrderPage is one page of a customer's order history.
type OrderPage struct {
	Orders   []Order  `json:"orders"`
	PageInfo PageInfo `json:"pageInfo"`
}

// ═══════════════════════════════════════════════════════════
// Checkout hand-off
// ═══════════════════════════════════════════════════════════

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentBankTransfer:
		return true
	}
	return false
}

// Pending order statuses.
const (
	PendingStatusPending  = "pending"
	PendingStatusReleased = "released"
	PendingStatusPaid     = "paid"
)

// PendingOrder is the local ledger row for an order created on the commerce
// backend with payment outstanding. Its inventory stays held until the hold
// is released or the order is paid.
type PendingOrder struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CartID          string         `json:"cart_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	SessionID       string         `json:"-" gorm:"type:varchar(64);index"`
	RemoteOrderID   string         `json:"remote_order_id" gorm:"type:varchar(255);index"`
	RemoteOrderName string         `json:"remote_order_name" gorm:"type:varchar(64)"`
	PaymentMethod   PaymentMethod  `json:"payment_method" gorm:"type:varchar(32);not null"`
	Email           string         `json:"email" gorm:"type:varchar(255);not null"`
	Status          string         `json:"status" gorm:"type:varchar(20);not null;index"`
	Snapshot        datatypes.JSON `json:"-" gorm:"type:jsonb;not null"`
	Total           float64        `json:"total" gorm:"type:numeric(12,2);not null"`
	Currency        string         `json:"currency" gorm:"type:varchar(3);not null"`
	HoldExpiresAt   time.Time      `json:"hold_expires_at" gorm:"index"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PendingOrder) TableName() string {
	return "pending_orders"
}

func (o *PendingOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// CreatePendingOrderRequest for checkout hand-off
type CreatePendingOrderRequest struct {
	CartID        string        `json:"cart_id"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=card cash bank_transfer"`
	Email         string        `json:"email" binding:"required,email"`
	Address       *AddressInput `json:"address,omitempty"`
	Note          string        `json:"note,omitempty"`
	// SessionID is the owner of the order, set from the session cookie.
	SessionID string `json:"-"`
}

// CheckoutHandoff is returned by POST /checkout/pending-orders.
type CheckoutHandoff struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	CheckoutURL   string        `json:"checkout_url,omitempty"`
	Order         *PendingOrder `json:"order,omitempty"`
	AlreadyExists bool          `json:"already_exists"`
	Instructions  string        `json:"instructions,omitempty"`
}

// RemoteOrderInput is what the admin API needs to open a pending order.
type RemoteOrderInput struct {
	Email         string
	Lines         []CartLineInput
	Address       *AddressInput
	Note          string
	PaymentMethod PaymentMethod
	CurrencyCode  string
}

// RemoteOrder identifies an order created on the commerce backend.
type RemoteOrder struct {
	ID   string
	Name string
}
