package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

// IdentityResolver loads the current state of a token subject. A subject
// whose account no longer exists must resolve to an error.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (Principal, error)
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
// and stores the resolved Principal in the context.
func AuthRequired(jwtManager *JWTManager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, ErrMissingToken)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, ErrInvalidToken)
			return
		}

		claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			return
		}

		p, err := resolver.ResolveIdentity(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error(c, err)
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}
