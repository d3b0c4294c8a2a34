package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	// AccessToken is the short-lived token sent on every request
	AccessToken TokenType = "access"
	// RefreshToken is the long-lived token used to obtain new pairs
	RefreshToken TokenType = "refresh"
)

var (
	// ErrInvalidToken indicates the token failed signature or structural validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("token has expired")
	// ErrWrongTokenType indicates an access token was used where a refresh
	// token was expected, or vice versa
	ErrWrongTokenType = errors.New("wrong token type")
	// ErrMaxRefreshExceeded indicates the refresh chain has been renewed too many times
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
)

// Claims carries the authenticated identity inside a JWT. The scope fields
// mirror the account record: owners carry their own ID as OwnerID, employees
// carry their owner's ID plus the assigned branch, superusers carry neither.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	OwnerID      string    `json:"owner_id,omitempty"`
	BranchID     string    `json:"branch_id,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair holds an access/refresh token pair returned on login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// TokenSubject is the identity snapshot baked into a token pair
type TokenSubject struct {
	UserID   uuid.UUID
	Username string
	Role     string
	OwnerID  *uuid.UUID
	BranchID *uuid.UUID
}

// JWTService issues and validates HS256-signed token pairs. Access and
// refresh tokens are signed with separate secrets so a leaked refresh secret
// cannot mint access tokens.
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	maxRefreshCount   int
}

// JWTConfig holds the settings for JWTService
type JWTConfig struct {
	AccessSecret      string
	RefreshSecret     string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
	Issuer            string
	MaxRefreshCount   int
}

// NewJWTService creates a JWT service. An empty refresh secret falls back to
// the access secret; zero expirations get sensible defaults.
func NewJWTService(cfg JWTConfig) *JWTService {
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.AccessSecret
	}
	if cfg.AccessExpiration == 0 {
		cfg.AccessExpiration = 15 * time.Minute
	}
	if cfg.RefreshExpiration == 0 {
		cfg.RefreshExpiration = 7 * 24 * time.Hour
	}
	if cfg.MaxRefreshCount == 0 {
		cfg.MaxRefreshCount = 50
	}
	return &JWTService{
		accessSecret:      []byte(cfg.AccessSecret),
		refreshSecret:     []byte(cfg.RefreshSecret),
		accessExpiration:  cfg.AccessExpiration,
		refreshExpiration: cfg.RefreshExpiration,
		issuer:            cfg.Issuer,
		maxRefreshCount:   cfg.MaxRefreshCount,
	}
}

// RefreshExpiration returns the configured refresh token lifetime
func (s *JWTService) RefreshExpiration() time.Duration {
	return s.refreshExpiration
}

// GenerateTokenPair issues a fresh access/refresh pair for the subject
func (s *JWTService) GenerateTokenPair(subject TokenSubject) (*TokenPair, error) {
	return s.generatePair(subject, 0)
}

func (s *JWTService) generatePair(subject TokenSubject, refreshCount int) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.accessExpiration)
	refreshExpiry := now.Add(s.refreshExpiration)

	accessToken, err := s.sign(subject, AccessToken, refreshCount, now, accessExpiry, s.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.sign(subject, RefreshToken, refreshCount, now, refreshExpiry, s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func (s *JWTService) sign(subject TokenSubject, tokenType TokenType, refreshCount int, issuedAt, expiresAt time.Time, secret []byte) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
		UserID:       subject.UserID.String(),
		Username:     subject.Username,
		Role:         subject.Role,
		TokenType:    tokenType,
		RefreshCount: refreshCount,
	}
	if subject.OwnerID != nil {
		claims.OwnerID = subject.OwnerID.String()
	}
	if subject.BranchID != nil {
		claims.BranchID = subject.BranchID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken parses and validates an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.validate(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != AccessToken {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ValidateRefreshToken parses and validates a refresh token
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := s.validate(tokenString, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != RefreshToken {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func (s *JWTService) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshTokenPair validates a refresh token and issues the next pair in the
// chain. The refresh count is carried forward and capped so a stolen refresh
// token cannot be rotated forever.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}

	subject, err := SubjectFromClaims(claims)
	if err != nil {
		return nil, err
	}
	return s.generatePair(subject, claims.RefreshCount+1)
}

// SubjectFromClaims reconstructs the token subject from parsed claims
func SubjectFromClaims(claims *Claims) (TokenSubject, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenSubject{}, ErrInvalidToken
	}
	subject := TokenSubject{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.OwnerID != "" {
		ownerID, err := uuid.Parse(claims.OwnerID)
		if err != nil {
			return TokenSubject{}, ErrInvalidToken
		}
		subject.OwnerID = &ownerID
	}
	if claims.BranchID != "" {
		branchID, err := uuid.Parse(claims.BranchID)
		if err != nil {
			return TokenSubject{}, ErrInvalidToken
		}
		subject.BranchID = &branchID
	}
	return subject, nil
}
