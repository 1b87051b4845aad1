package service

import (
	"context"
	"time"

	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/pkg/serverutils"
)

const defaultLoginRole = "admin"

type IAuthService interface {
	Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authService is a login stub: there is no user store, any well-formed
// credentials get a token for that username.
type authService struct {
	secret string
	ttl    time.Duration
	logger logger.ILogger
	now    func() time.Time
}

func NewAuthService(secret string, ttl time.Duration, log logger.ILogger) IAuthService {
	return &authService{
		secret: secret,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

func (s *authService) Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error) {
	role := request.Role
	if role == "" {
		role = defaultLoginRole
	}

	token, expiresAt, err := serverutils.IssueToken(s.secret, request.Username, role, s.ttl, s.now())
	if err != nil {
		s.logger.Error("AuthService", "Failed to sign token", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("AuthService", "User logged in", map[string]interface{}{
		"user": request.Username,
		"role": role,
	})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UnixMilli(),
		Username:  request.Username,
		Role:      role,
	}, nil
}
