package checkout_controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// Checkout is satisfied by services.PendingOrderService.
type Checkout interface {
	Create(ctx context.Context, req models.CreatePendingOrderRequest, customerToken string) (*models.CheckoutHandoff, error)
	Release(ctx context.Context, id uuid.UUID, sessionID string) (*models.PendingOrder, error)
	Receipt(ctx context.Context, id uuid.UUID, sessionID string) ([]byte, *models.PendingOrder, error)
}

var (
	checkout Checkout
	log      *logrus.Logger
)

func Init(svc Checkout, logger *logrus.Logger) {
	checkout = svc
	log = logger
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrMissingCart),
		errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
	case errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrPendingOrderNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, err.Error()))
	case errors.Is(err, services.ErrHoldReleased):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, err.Error()))
	case errors.Is(err, services.ErrOfflinePayments):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, err.Error()))
	default:
		utils.RespondGatewayError(c, err)
	}
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return uuid.Nil, false
	}
	return id, true
}

// CreatePendingOrder godoc
// @Summary Hand the cart off to payment
// @Description card returns the hosted checkout URL. cash and bank_transfer open an order with payment pending,
// @Description hold its inventory and start a new cart for the session. Repeating the request returns the same order.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body models.CreatePendingOrderRequest true "Payment method and contact"
// @Success 201 {object} models.ApiResponse{data=models.CheckoutHandoff}
// @Success 200 {object} models.ApiResponse{data=models.CheckoutHandoff} "Existing order returned"
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Reservation already released"
// @Failure 503 {object} models.ApiResponse "Pending orders unavailable"
// @Router /checkout/pending-orders [post]
func CreatePendingOrder(c *gin.Context) {
	var req models.CreatePendingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid checkout request"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if id := sess.Cart.ID(); id != "" {
		req.CartID = id
	}
	req.SessionID = sess.ID
	var customerToken string
	if cred := sess.Auth.Credential(); cred != nil && cred.Kind == models.CredentialStorefront {
		customerToken = cred.Token
	}

	handoff, err := checkout.Create(ctx, req, customerToken)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	if handoff.PaymentMethod != models.PaymentCard {
		if err := sess.Cart.Clear(ctx); err != nil {
			log.WithError(err).WithField("session", sess.ID).Warn("[checkout] could not clear cart after hand-off")
		}
	}

	status := http.StatusCreated
	if handoff.AlreadyExists || handoff.PaymentMethod == models.PaymentCard {
		status = http.StatusOK
	}
	c.JSON(status, models.SuccessResponse(c, "Checkout ready", handoff))
}

// ReleasePendingOrder godoc
// @Summary Release a pending order's inventory hold
// @Description Cancels the order upstream and restocks its items. Releasing twice is a no-op.
// @Description Only the session that created the order can release it.
// @Tags checkout
// @Produce json
// @Param id path string true "Pending order ID"
// @Success 200 {object} models.ApiResponse{data=models.PendingOrder}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /checkout/pending-orders/{id}/release [post]
func ReleasePendingOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	order, err := checkout.Release(c.Request.Context(), id, sess.ID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reservation released", order))
}

// DownloadReceipt godoc
// @Summary Download the payment instructions receipt
// @Description Only the session that created the order can download it.
// @Tags checkout
// @Produce application/pdf
// @Param id path string true "Pending order ID"
// @Success 200 {file} file
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /checkout/pending-orders/{id}/receipt [get]
func DownloadReceipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	pdf, order, err := checkout.Receipt(c.Request.Context(), id, sess.ID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	name := order.RemoteOrderName
	if name == "" {
		name = order.ID.String()
	}
	c.Header("Content-Disposition", `attachment; filename="comprobante-`+sanitize(name)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		}
	}
	return string(out)
}
