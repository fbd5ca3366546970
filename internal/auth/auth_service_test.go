package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/1000bang/vacation-api-sub001/internal/auth"
	autherrors "github.com/1000bang/vacation-api-sub001/internal/auth/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/user"
)

type fakeUserRepository struct {
	findByLoginIDFn func(ctx context.Context, loginID string) (*user.User, error)
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByLoginID(ctx context.Context, loginID string) (*user.User, error) {
	if f.findByLoginIDFn != nil {
		return f.findByLoginIDFn(ctx, loginID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindApprovers(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error) {
	return nil, nil
}

func seedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &user.User{
		ID:           uuid.New(),
		LoginID:      "jlee",
		PasswordHash: string(hash),
		Name:         "J. Lee",
		Division:     "ENGINEERING",
		Team:         "PLATFORM",
		Role:         string(domain.RoleTeamLeader),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues a token with actor claims", func(t *testing.T) {
		u := seedUser(t, "hunter2")
		repo := &fakeUserRepository{
			findByLoginIDFn: func(ctx context.Context, loginID string) (*user.User, error) {
				assert.Equal(t, "jlee", loginID)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.Login(ctx, auth.LoginRequest{LoginID: "jlee", Password: "hunter2"})
		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.User.UserID)
		assert.Equal(t, string(domain.RoleTeamLeader), resp.User.Role)

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, "ENGINEERING", claims["division"])
		assert.Equal(t, "PLATFORM", claims["team"])
		assert.Equal(t, string(domain.RoleTeamLeader), claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		u := seedUser(t, "hunter2")
		repo := &fakeUserRepository{
			findByLoginIDFn: func(ctx context.Context, loginID string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, auth.LoginRequest{LoginID: "jlee", Password: "wrong"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown login id maps to the same credential error", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Login(ctx, auth.LoginRequest{LoginID: "ghost", Password: "hunter2"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("lookup failure surfaces as-is", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByLoginIDFn: func(ctx context.Context, loginID string) (*user.User, error) {
				return nil, errors.New("db down")
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, auth.LoginRequest{LoginID: "jlee", Password: "hunter2"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
