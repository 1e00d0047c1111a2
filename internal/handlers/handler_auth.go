package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// loginRate caps login attempts per client IP.
const loginRate = "5-M"

// authHandler handles operator authentication.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public login route behind its own rate limit.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	}
}

// registerUserRoutes sets up operator management, which only admins may use.
func registerUserRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	users := rg.Group("/users", middleware.RequireRole("admin"))
	{
		users.POST("", h.createUser)
	}
}

// login godoc
// @Summary Operator login
// @Description Authenticates an operator and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 429 {object} dto.APIResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operator logged in", slog.String("user_id", resp.User.UserID))
	respondOK(c, http.StatusOK, resp, "Login successful")
}

// createUser godoc
// @Summary Create an operator
// @Description Adds a cashier or admin account. Admin only.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Operator details"
// @Success 201 {object} dto.APIResponse{data=domain.User}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users [post]
func (h *authHandler) createUser(c *gin.Context) {
	creatorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	respondOK(c, http.StatusCreated, user, "User created successfully")
}
