package auth

import (
	"context"
	"errors"
	"time"

	uuid "github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwt "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/jwt"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	api_models "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models/api"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService aggregates auth operations
type AuthService struct {
	userRepo   interfaces.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo interfaces.UserRepository, jwtService *jwt.Service, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     log,
	}
}

// Login authenticates a user by email and returns tokens
func (s *AuthService) Login(ctx context.Context, req api_models.LoginRequest) (*api_models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokens(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}

	return &api_models.AuthResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}

// RefreshTokens uses a refresh token to generate a new token pair
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*api_models.TokenPair, error) {
	return s.jwtService.RefreshTokens(ctx, refreshToken, s.userRepo)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*snhmodels.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// EnsureAdminUser creates the bootstrap admin account when no user with
// the given email exists yet. Called once at startup.
func (s *AuthService) EnsureAdminUser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &snhmodels.User{
		UserID:       uuid.New().String(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         snhmodels.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Logger.Info().Str("email", email).Msg("Bootstrap admin user created")
	return nil
}
