package order_controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type OrderGateway interface {
	GetCustomerOrders(ctx context.Context, token string, first int, after string) (*models.OrderPage, error)
	GetCustomerOrdersByID(ctx context.Context, id string, first int, after string) (*models.OrderPage, error)
}

var gateway OrderGateway

func Init(gw OrderGateway) { gateway = gw }

const (
	defaultOrdersPage = 10
	maxOrdersPage     = 50
)

// GetOrders godoc
// @Summary Get order history
// @Description Newest first, cursor paginated
// @Tags User - Orders
// @Produce json
// @Security BearerAuth
// @Param first query int false "Page size" default(10)
// @Param after query string false "Cursor"
// @Success 200 {object} models.ApiResponse{data=models.OrderPage,meta=models.CursorMeta}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 502 {object} models.ApiResponse
// @Router /user/orders [get]
func GetOrders(c *gin.Context) {
	cred, ok := middleware.GetCredential(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	first, err := strconv.Atoi(c.DefaultQuery("first", strconv.Itoa(defaultOrdersPage)))
	if err != nil || first < 1 || first > maxOrdersPage {
		first = defaultOrdersPage
	}
	after := c.Query("after")

	var page *models.OrderPage
	if cred.Kind == models.CredentialLinked {
		page, err = gateway.GetCustomerOrdersByID(c.Request.Context(), cred.CustomerID, first, after)
	} else {
		page, err = gateway.GetCustomerOrders(c.Request.Context(), cred.Token, first, after)
	}
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if page == nil {
		page = &models.OrderPage{}
	}
	if page.Orders == nil {
		page.Orders = []models.Order{}
	}
	meta := models.NewCursorMeta(first, len(page.Orders), page.PageInfo)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", page, meta))
}
