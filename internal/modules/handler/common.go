package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
)

// currentProfile pulls the authenticated profile set by the auth middleware.
func currentProfile(c *gin.Context) (*model.Profile, error) {
	v, ok := c.Get("profile")
	if !ok {
		return nil, errors.New("profile not found")
	}
	profile, ok := v.(*model.Profile)
	if !ok {
		return nil, errors.New("profile not found")
	}
	return profile, nil
}
