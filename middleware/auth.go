package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Closed role enum. Tokens are issued by the auth service; this service only
// verifies them and branches on the role.
const (
	RoleGuest      = "guest"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Capabilities gate mutating operations; read endpoints only need a valid
// principal.
const (
	CapManageRooms       = "rooms.manage"
	CapManageGuests      = "guests.manage"
	CapRecordPayments    = "payments.record"
	CapSendNotifications = "notifications.send"
)

var roleCapabilities = map[string]map[string]bool{
	RoleGuest: {},
	RoleAdmin: {
		CapManageRooms:       true,
		CapManageGuests:      true,
		CapRecordPayments:    true,
		CapSendNotifications: true,
	},
	RoleSuperAdmin: {
		CapManageRooms:       true,
		CapManageGuests:      true,
		CapRecordPayments:    true,
		CapSendNotifications: true,
	},
}

// Principal is the verified identity attached to each request.
type Principal struct {
	Subject string
	Role    string
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const principalKey = "principal"

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "supersecretkey"
	}
	return []byte(secret)
}

// BearerAuth verifies the Authorization header and stores the principal in
// the context for downstream handlers.
func BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: missing subject"})
			c.Abort()
			return
		}
		role := claims.Role
		if _, known := roleCapabilities[role]; !known {
			role = RoleGuest
		}

		c.Set(principalKey, Principal{Subject: claims.Subject, Role: role})
		c.Next()
	}
}

// RequireCapability checks the role's capability table before the handler
// runs. BearerAuth must be installed upstream.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(principalKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		principal := value.(Principal)
		if !roleCapabilities[principal.Role][capability] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the verified principal for the request, if any.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
