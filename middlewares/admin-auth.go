package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"obrafoto/config"
	"obrafoto/repository"
	"obrafoto/utils"

	"github.com/gin-gonic/gin"
)

// AuthMode says which of the two authorization paths admitted the request.
type AuthMode int

const (
	// OperatorOverride is the deployment escape hatch: the request carried
	// the server-configured shared secret.
	OperatorOverride AuthMode = iota
	// AdminUser means an admin account authenticated with email + CPF.
	AdminUser
)

// AuthContext is resolved once by the gate and read by downstream handlers.
type AuthContext struct {
	Mode   AuthMode
	UserID string
	Email  string
}

// AuthContextKey is the gin context key holding the resolved AuthContext.
const AuthContextKey = "auth"

// AdminGate protects the /admin/tbusuario routes. Path (a): a shared secret
// in X-Admin-Token or Authorization: Bearer grants access unconditionally.
// Path (b): X-Admin-Email + X-Admin-Cpf must name an active admin account
// whose stored hash matches the supplied CPF.
func AdminGate(cfg *config.Config, users repository.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Admin token not configured"})
			return
		}

		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				token = parts[1]
			}
		}
		if token != "" && token == cfg.AdminToken {
			c.Set(AuthContextKey, AuthContext{Mode: OperatorOverride})
			c.Next()
			return
		}

		email := c.GetHeader("X-Admin-Email")
		cpf := c.GetHeader("X-Admin-Cpf")
		if email == "" || cpf == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			log.Println("admin gate:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := utils.CompareCpf(cpf, user.CpfHash); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(AuthContextKey, AuthContext{
			Mode:   AdminUser,
			UserID: user.ID.Hex(),
			Email:  user.Email,
		})
		c.Next()
	}
}
