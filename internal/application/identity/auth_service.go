package identity

import (
	"context"
	"errors"
	"time"

	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles login, logout, and token rotation
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user by username and password and returns a token
// pair. Unknown usernames and wrong passwords produce the same error so the
// response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Password mismatch during login", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(tokenSubject(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Do not fail the login over a bookkeeping write
		s.logger.Error("Failed to record login timestamp", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh rotates a refresh token into a new token pair. The account is
// re-read so revoked or deleted accounts cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	subject, err := auth.SubjectFromClaims(claims)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, subject.UserID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", subject.UserID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), claims.IssuedAt.Time)
	if err != nil {
		s.logger.Error("Failed to check token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Session has been revoked")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", user.ID.String()))

	return &RefreshResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
	}, nil
}

// Logout blacklists the presented access token and revokes outstanding
// refresh tokens for the account.
func (s *AuthService) Logout(ctx context.Context, req LogoutRequest) error {
	if req.TokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, req.TokenJTI, req.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to close session")
		}
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, req.UserID.String(), s.jwtService.RefreshExpiration()); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to close session")
	}

	s.logger.Info("User logged out", zap.String("user_id", req.UserID.String()))
	return nil
}

// ResolveScope rebuilds the access scope for validated access token claims.
// The account is re-read so role or branch changes take effect immediately
// instead of at token expiry.
func (s *AuthService) ResolveScope(ctx context.Context, claims *auth.Claims) (identity.AccessScope, *identity.User, error) {
	invalidated, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return identity.AccessScope{}, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if invalidated {
		return identity.AccessScope{}, nil, shared.NewDomainError("TOKEN_INVALID", "Session has been revoked")
	}

	subject, err := auth.SubjectFromClaims(claims)
	if err != nil {
		return identity.AccessScope{}, nil, shared.NewDomainError("TOKEN_INVALID", "Invalid access token")
	}

	user, err := s.userRepo.FindByID(ctx, subject.UserID)
	if err != nil {
		return identity.AccessScope{}, nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	revoked, err := s.blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), claims.IssuedAt.Time)
	if err != nil {
		return identity.AccessScope{}, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if revoked {
		return identity.AccessScope{}, nil, shared.NewDomainError("TOKEN_INVALID", "Session has been revoked")
	}

	scope, err := identity.NewAccessScope(user)
	if err != nil {
		return identity.AccessScope{}, nil, err
	}
	return scope, user, nil
}

func tokenSubject(user *identity.User) auth.TokenSubject {
	return auth.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
		OwnerID:  user.OwnerID,
		BranchID: user.BranchID,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
