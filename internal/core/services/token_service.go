package services

import (
	"context"
	"fmt"
	"time"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// TokenConfig carries the JWT signing parameters.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	Issuer        string
}

// TokenService issues and refreshes the JWT pair.
type TokenService struct {
	cfg      TokenConfig
	userRepo portsrepo.UserRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenConfig, userRepo portsrepo.UserRepository) *TokenService {
	return &TokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// GenerateTokenPair returns a fresh access + refresh token pair for user.
func (s *TokenService) GenerateTokenPair(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.AccessSecret, s.cfg.AccessExpiry, s.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := utils.GenerateJWT(user.UserID, s.cfg.RefreshSecret, s.cfg.RefreshExpiry, s.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.cfg.AccessExpiry),
		User:         dto.ToUserResponse(user),
	}, nil
}

// RefreshAccessToken validates a refresh token and issues a new access token.
// The refresh token itself is not rotated.
func (s *TokenService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: account is inactive", apperrors.ErrUnauthorized)
	}

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.AccessSecret, s.cfg.AccessExpiry, s.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.cfg.AccessExpiry),
		User:        dto.ToUserResponse(user),
	}, nil
}
