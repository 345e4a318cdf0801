package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uniteam-dev/uniteam/internal/config"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/modules/serializer"
	"github.com/uniteam-dev/uniteam/internal/pkg/utils/tokens"
)

// ProfileAuth returns a middleware that authenticates requests using
// per-profile bearer api keys. It validates the token prefix, looks up the
// profile by the key's HMAC, and sets the profile in the context.
func ProfileAuth(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		secret, ok := tokens.ParseToken(raw, cfg.Root.ApiKeyPrefix)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		lookup := tokens.HMAC256Hex(cfg.Root.SecretPepper, secret)

		var profile model.Profile
		if err := db.WithContext(c.Request.Context()).Where(&model.Profile{APIKeyHMAC: lookup}).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		c.Set("profile", &profile)
		c.Next()
	}
}
