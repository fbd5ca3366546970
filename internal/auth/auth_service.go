package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/1000bang/vacation-api-sub001/internal/auth/errors"
	"github.com/1000bang/vacation-api-sub001/internal/user"
)

const tokenTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	s.logger.Debug("login requested", zap.String("login_id", req.LoginID))

	u, err := s.users.FindByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown user", zap.String("login_id", req.LoginID))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("login_id", req.LoginID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := signToken(u)
	if err != nil {
		s.logger.Error("login sign token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return LoginResponse{
		AccessToken: token,
		User: ActorDetail{
			UserID:   u.ID.String(),
			Name:     u.Name,
			Division: u.Division,
			Team:     u.Team,
			Role:     u.Role,
		},
	}, nil
}

func signToken(u *user.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"division": u.Division,
		"team":     u.Team,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
