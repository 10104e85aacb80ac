package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"liken/internal/infrastructure/auth"
	"liken/internal/shared/errors"
	"liken/internal/shared/logger"
	"liken/internal/shared/utils"
)

const (
	// ContextKeyAgencyID is where RequireAgency stores the caller's agency.
	ContextKeyAgencyID = "agency_id"
	// ContextKeyRole is where RequireAgency stores the caller's role.
	ContextKeyRole = "role"

	roleAgency = "agency"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAgency verifies the bearer token and rejects callers whose
// token does not carry the agency role and an agency ID.
func (m *AuthMiddleware) RequireAgency() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.Role != roleAgency {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("agency role required"))
			c.Abort()
			return
		}
		if claims.AgencyID == "" {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("token has no agency"))
			c.Abort()
			return
		}

		c.Set(ContextKeyAgencyID, claims.AgencyID)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// AgencyID returns the authenticated agency from the request context.
func AgencyID(c *gin.Context) string {
	return c.GetString(ContextKeyAgencyID)
}
