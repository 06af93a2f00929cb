package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxAuthID    = "authID"
	ctxAuthRoles = "authRoles"
)

// Auth parses a Bearer token and exposes the viewer identity to handlers.
// With required=false an absent or invalid token simply leaves the request
// anonymous; reads stay open to everyone.
func Auth(cfg *config.Config, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required."})
			}
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required."})
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required."})
			}
			return
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set(ctxAuthID, uint(sub))
		}
		if roles, ok := claims["roles"].(float64); ok {
			c.Set(ctxAuthRoles, int(roles))
		}
	}
}

// ViewerID returns the authenticated viewer's id, or nil for anonymous
// requests. Nil is meaningful downstream: no visibility verdict is computed
// for anonymous viewers.
func ViewerID(c *gin.Context) *uint {
	if v, ok := c.Get(ctxAuthID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func ViewerRoles(c *gin.Context) int {
	if v, ok := c.Get(ctxAuthRoles); ok {
		if roles, ok := v.(int); ok {
			return roles
		}
	}
	return 0
}
