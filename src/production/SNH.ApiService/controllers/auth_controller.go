package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	auth "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/auth"
	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	api_models "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models/api"
)

// AuthController handles authentication requests
type AuthController struct {
	authService    *auth.AuthService
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *auth.AuthService, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *AuthController {
	return &AuthController{
		authService:    authService,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the auth routes with Gin
func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/v1/auth")
	{
		authGroup.POST("/login", c.Login)
		authGroup.POST("/refresh", c.Refresh)
		authGroup.GET("/me", c.authMiddleware.Authenticate(), c.Me)
	}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req api_models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := c.authService.Login(ctx, req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.logger.ErrorWithError(err, "Login failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *AuthController) Refresh(ctx *gin.Context) {
	var req api_models.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenPair, err := c.authService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	ctx.JSON(http.StatusOK, tokenPair)
}

func (c *AuthController) Me(ctx *gin.Context) {
	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := c.authService.GetUserByID(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
