package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	ContextUserID     = "userID"
	ContextMerchantID = "merchantID"
	ContextUserRole   = "userRole"
)

const tokenTTL = 24 * time.Hour

// IssueToken signs the bearer token returned by register and login.
func IssueToken(secret string, user *models.User) (string, error) {
	var merchantID uint
	if user.MerchantID != nil {
		merchantID = *user.MerchantID
	}

	claims := jwt.MapClaims{
		"sub":        user.ID,
		"merchantId": merchantID,
		"role":       user.Role,
		"exp":        time.Now().Add(tokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(float64)
		merchantID, ok2 := claims["merchantId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextMerchantID, uint(merchantID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// Session rebuilds the caller identity stored by AuthMiddleware. Unauthenticated
// requests get the zero Session.
func Session(c *gin.Context) domain.Session {
	return domain.Session{
		UserID:     c.GetUint(ContextUserID),
		Role:       c.GetString(ContextUserRole),
		MerchantID: c.GetUint(ContextMerchantID),
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
