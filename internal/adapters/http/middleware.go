package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oatrn/brawlhq/internal/auth"
	"github.com/oatrn/brawlhq/internal/domain"
)

const brawlerIDKey = "brawler_id"

// AuthMiddleware resolves the passport token and attaches the brawler id
// to the request context. Browser websocket clients cannot set headers, so
// a `token` query parameter is accepted as a fallback.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing passport"})
			return
		}

		brawlerID, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Set(brawlerIDKey, int64(brawlerID))
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func brawlerID(c *gin.Context) domain.BrawlerID {
	return domain.BrawlerID(c.GetInt64(brawlerIDKey))
}
