package auth

import "github.com/gin-gonic/gin"

const identityKey = "identity"

// Account types carried in the token.
const (
	TypeUser     = "USER"
	TypeGymOwner = "GYM_OWNER"
)

// Identity is the authenticated caller as decoded from the access token.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Type    string
	IsAdmin bool
}

// SetIdentity stores the caller on the Gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	id, _ := GetIdentity(c)
	return id.UserID
}

// GetUserName returns the authenticated user's display name or empty string.
func GetUserName(c *gin.Context) string {
	id, _ := GetIdentity(c)
	return id.Name
}
