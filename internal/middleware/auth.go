package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	CodeUnauthorized = "Unauthorized"
	CodeForbidden    = "Forbidden"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, CodeUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, CodeUnauthorized, "invalid authorization header")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, CodeUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, CodeUnauthorized, "invalid token claims")
			return
		}

		userID, ok := subject(claims["sub"])
		role := models.Role(strings.ToLower(fmt.Sprint(claims["role"])))
		if !ok || !role.Valid() {
			httperr.Unauthorized(c, CodeUnauthorized, "invalid token payload")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// subject accepts the user id as a JSON number or a decimal string.
func subject(v any) (uint, bool) {
	switch s := v.(type) {
	case float64:
		if s <= 0 || s != float64(uint(s)) {
			return 0, false
		}
		return uint(s), true
	case string:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// RequireRole lets the request through only for the listed roles. It must run
// after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, CodeForbidden, "role not allowed")
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func UserRole(c *gin.Context) models.Role {
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(models.Role)
	return r
}

// IssueToken signs an HS256 token carrying sub and role. Tokens normally come
// from the identity provider; this serves local tooling and tests.
func IssueToken(secret string, userID uint, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
