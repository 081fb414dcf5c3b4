package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	uuid "github.com/google/uuid"

	auth "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/auth"
	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// UserController handles user management requests, admin only
type UserController struct {
	userRepo       interfaces.UserRepository
	authService    *auth.AuthService
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewUserController creates a new user controller
func NewUserController(userRepo interfaces.UserRepository, authService *auth.AuthService, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *UserController {
	return &UserController{
		userRepo:       userRepo,
		authService:    authService,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the user routes with Gin
func (c *UserController) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/v1/users")
	users.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		users.POST("", c.CreateUser)
		users.GET("", c.ListUsers)
		users.GET("/:user_id", c.GetUser)
		users.PATCH("/:user_id", c.UpdateUser)
		users.DELETE("/:user_id", c.DeleteUser)
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

func (c *UserController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = snhmodels.RoleClient
	}
	if !snhmodels.ValidRole(role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	existing, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		return
	}

	hash, err := c.authService.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	user := &snhmodels.User{
		UserID:       uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := c.userRepo.Create(ctx, user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userRepo.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userRepo.FindByID(ctx, ctx.Param("user_id"))
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

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (c *UserController) UpdateUser(ctx *gin.Context) {
	existing, err := c.userRepo.FindByID(ctx, ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := c.authService.HashPassword(*req.Password)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		existing.PasswordHash = hash
	}
	if req.Role != nil {
		if !snhmodels.ValidRole(*req.Role) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		existing.Role = *req.Role
	}

	if err := c.userRepo.Update(ctx, existing); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.userRepo.Delete(ctx, ctx.Param("user_id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
