package auth

import "github.com/gin-gonic/gin"

const principalKey = "principal"

// Principal is the authenticated caller of a request. It is resolved once by
// AuthRequired and passed explicitly into service calls.
type Principal struct {
	UserID    string
	Email     string
	Authority Authority
}

// IsAdmin reports whether the principal carries the ADMIN authority.
func (p Principal) IsAdmin() bool {
	return p.Authority == AuthorityAdmin
}

// SetPrincipal stores the caller in the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p, true
		}
	}
	return Principal{}, false
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	p, _ := GetPrincipal(c)
	return p.UserID
}
