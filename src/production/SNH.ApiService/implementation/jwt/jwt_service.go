package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
	api_models "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models/api"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// ErrInvalidToken is returned for any token that fails signature,
// lifetime, or claim checks. Callers get no detail beyond the wrapped
// cause so responses stay uniform.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and validates the API's access and refresh tokens.
// Both token kinds are HS256 and share one secret; an access/refresh
// pair is tied together by a common token id.
type Service struct {
	config api_models.Config
}

func NewService(config api_models.Config) *Service {
	return &Service{config: config}
}

func (s *Service) registeredClaims(now time.Time, lifetime time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.Issuer,
	}
}

func (s *Service) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateTokens issues a fresh access/refresh pair for the user.
func (s *Service) GenerateTokens(userID, role string) (*api_models.TokenPair, error) {
	tokenID := uuid.New().String()
	now := time.Now()

	accessToken, err := s.sign(api_models.AccessClaims{
		RegisteredClaims: s.registeredClaims(now, s.config.AccessTokenDuration),
		UserID:           userID,
		Role:             role,
		TokenID:          tokenID,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(api_models.RefreshClaims{
		RegisteredClaims: s.registeredClaims(now, s.config.RefreshTokenDuration),
		UserID:           userID,
		TokenID:          tokenID,
	})
	if err != nil {
		return nil, err
	}

	return &api_models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenID:      tokenID,
		ExpiresAt:    now.Add(s.config.AccessTokenDuration).Unix(),
	}, nil
}

// parse verifies the signature and registered claims, decoding into the
// claims value the caller passes in.
func (s *Service) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*api_models.AccessClaims, error) {
	var claims api_models.AccessClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// ValidateRefreshToken checks a refresh token and returns its claims.
func (s *Service) ValidateRefreshToken(tokenString string) (*api_models.RefreshClaims, error) {
	var claims api_models.RefreshClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair. The
// user row is re-read so a deleted user cannot keep refreshing, and the
// role on the new access token is the user's current one.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string, userRepo interfaces.UserRepository) (*api_models.TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user for refresh: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
	}

	return s.GenerateTokens(user.UserID, user.Role)
}
