package utils

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
)

const unavailableMessage = "This feature is not available right now."

// ErrorStatus maps a commerce gateway error to an HTTP status and the message
// shown to the shopper. Backend user errors are shown verbatim; transport
// failures get a generic message.
func ErrorStatus(err error) (int, string) {
	var ue *commerce.UserError
	var te *commerce.TransportError
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &ue):
		return http.StatusBadRequest, commerce.UserMessage(err)
	case errors.Is(err, commerce.ErrAdminDisabled):
		return http.StatusServiceUnavailable, unavailableMessage
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, commerce.GenericMessage
	case errors.As(err, &te):
		return http.StatusBadGateway, commerce.GenericMessage
	}
	return http.StatusInternalServerError, "Something went wrong"
}

// RespondGatewayError writes the error envelope for err and attaches err to
// the context so the request log carries the detail.
func RespondGatewayError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, message := ErrorStatus(err)
	c.JSON(status, models.ErrorResponse(c, message))
}
