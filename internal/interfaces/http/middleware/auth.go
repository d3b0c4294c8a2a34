package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appidentity "github.com/sysstock/backend/internal/application/identity"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/infrastructure/auth"
	"github.com/sysstock/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	ClaimsKey      = "auth_claims"
	ScopeKey       = "auth_scope"
	CurrentUserKey = "auth_user"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Auth validates the bearer token and resolves the caller's access scope.
// The scope is re-read from the account record on every request, so role
// or branch changes take effect before the token expires.
func Auth(jwtService *auth.JWTService, authService *appidentity.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Missing token")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			abortUnauthorized(c, "TOKEN_INVALID", "Invalid token")
			return
		}

		scope, user, err := authService.ResolveScope(c.Request.Context(), claims)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				abortUnauthorized(c, domainErr.Code, domainErr.Message)
				return
			}
			logger.Error("Failed to resolve access scope",
				zap.String("user_id", claims.UserID),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ScopeKey, scope)
		c.Set(CurrentUserKey, user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		status = http.StatusUnauthorized
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message))
}

// GetClaims retrieves the validated token claims from the request context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetScope retrieves the resolved access scope from the request context.
// The second return is false when the request did not pass Auth.
func GetScope(c *gin.Context) (identity.AccessScope, bool) {
	if v, ok := c.Get(ScopeKey); ok {
		if scope, ok := v.(identity.AccessScope); ok {
			return scope, true
		}
	}
	return identity.AccessScope{}, false
}

// GetCurrentUser retrieves the authenticated account from the request context
func GetCurrentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}
