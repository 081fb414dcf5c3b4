package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	api_models "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models/api"
)

// fakeUserRepo is the minimal in-memory UserRepository the refresh flow needs
type fakeUserRepo struct {
	users map[string]*snhmodels.User
}

func newFakeUserRepo(users ...*snhmodels.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*snhmodels.User)}
	for _, u := range users {
		repo.users[u.UserID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *snhmodels.User) (*snhmodels.User, error) {
	r.users[user.UserID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID string) (*snhmodels.User, error) {
	return r.users[userID], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*snhmodels.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context) ([]snhmodels.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(_ context.Context, user *snhmodels.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	delete(r.users, userID)
	return nil
}

func newTestService() *Service {
	return NewService(api_models.Config{
		SecretKey:            "test-secret",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		Issuer:               "snh-energy",
	})
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokens("user-1", snhmodels.RoleTechnician)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	access, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token rejected: %v", err)
	}
	if access.UserID != "user-1" || access.Role != snhmodels.RoleTechnician {
		t.Errorf("access claims = %+v", access)
	}

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token rejected: %v", err)
	}
	if refresh.UserID != "user-1" {
		t.Errorf("refresh claims = %+v", refresh)
	}

	// Access and refresh tokens of one pair share a token id
	if access.TokenID != pair.TokenID || refresh.TokenID != pair.TokenID {
		t.Errorf("token ids differ: access %q refresh %q pair %q", access.TokenID, refresh.TokenID, pair.TokenID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	pair, err := newTestService().GenerateTokens("user-1", snhmodels.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewService(api_models.Config{
		SecretKey:           "different-secret",
		AccessTokenDuration: time.Minute,
	})
	if _, err := other.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService(api_models.Config{
		SecretKey:            "test-secret",
		AccessTokenDuration:  -time.Minute,
		RefreshTokenDuration: time.Hour,
	})

	pair, err := svc.GenerateTokens("user-1", snhmodels.RoleClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokensReissuesPair(t *testing.T) {
	svc := newTestService()
	users := newFakeUserRepo(&snhmodels.User{
		UserID: "user-1",
		Email:  "tech@hotel.internal",
		Role:   snhmodels.RoleTechnician,
	})

	pair, err := svc.GenerateTokens("user-1", snhmodels.RoleTechnician)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Role changes between issue and refresh land on the new pair
	users.users["user-1"].Role = snhmodels.RoleAdmin

	renewed, err := svc.RefreshTokens(context.Background(), pair.RefreshToken, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateAccessToken(renewed.AccessToken)
	if err != nil {
		t.Fatalf("renewed access token rejected: %v", err)
	}
	if claims.Role != snhmodels.RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, snhmodels.RoleAdmin)
	}
}

func TestRefreshTokensRejectsDeletedUser(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokens("user-1", snhmodels.RoleTechnician)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.RefreshTokens(context.Background(), pair.RefreshToken, newFakeUserRepo()); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
