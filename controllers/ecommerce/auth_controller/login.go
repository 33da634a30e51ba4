package auth_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// Login godoc
// @Summary Log in with email and password
// @Description Exchanges the credentials for a customer access token, binds it to the session and sets the auth_token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthStatusResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := sess.Auth.Login(c.Request.Context(), email, req.Password); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	// the profile arrives in the background; the response should carry it
	sess.Auth.Wait()

	if err := issueSession(c, sess, email, "password"); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Could not sign you in"))
		return
	}
	deps.Log.WithField("session", sess.ID).Info("✅ Customer logged in")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged in", statusOf(sess)))
}

// Register godoc
// @Summary Create a customer account
// @Description Creates the customer and logs them in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "New customer"
// @Success 201 {object} models.ApiResponse{data=models.AuthStatusResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid registration details"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := sess.Auth.Register(c.Request.Context(), req); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	sess.Auth.Wait()

	if err := issueSession(c, sess, req.Email, "password"); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Account created, please log in"))
		return
	}
	deps.Log.WithField("session", sess.ID).Info("✅ Customer registered")
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created", statusOf(sess)))
}

// Recover godoc
// @Summary Send a password reset email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RecoverRequest true "Account email"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /auth/recover [post]
func Recover(c *gin.Context) {
	var req models.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email is required"))
		return
	}
	if err := deps.Recoverer.RecoverPassword(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "If the account exists, a reset email is on its way", nil))
}
