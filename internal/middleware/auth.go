package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/internal/store"
)

// Context keys set by RequireAuth.
const (
	CtxUserID         = "user_id"
	CtxUser           = "user"
	CtxTokenID        = "token_id"
	CtxTokenExpiresAt = "token_expires_at"
)

type AuthMiddleware struct {
	store  *store.Store
	rdb    *redis.Client
	secret string
}

func NewAuthMiddleware(s *store.Store, rdb *redis.Client, secret string) *AuthMiddleware {
	return &AuthMiddleware{store: s, rdb: rdb, secret: secret}
}

// RequireAuth fails closed: a request without a valid, unrevoked token for
// an existing user never reaches the handler.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (used by the WebSocket
		// endpoint, where headers are awkward for browser clients).
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		if revoked, err := service.TokenRevoked(c.Request.Context(), m.rdb, claims.ID); err != nil || revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session has been logged out"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		// A token for a deleted user is as good as no token.
		user, err := m.store.FindUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxUser, user)
		c.Set(CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExpiresAt, claims.ExpiresAt.Time)
		} else {
			c.Set(CtxTokenExpiresAt, time.Time{})
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles past. It assumes RequireAuth ran
// earlier in the chain.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(model.RoleAdministrator)
}

// CurrentUser fetches the authenticated user placed by RequireAuth.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, exists := c.Get(CtxUser)
	if !exists {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
