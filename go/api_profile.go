package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profilemapper "github.com/xtremepizzaria/storefront/internal/domains/profile/adapters/http/mapper"
	profileports "github.com/xtremepizzaria/storefront/internal/domains/profile/ports"
)

// ProfileAPI exposes the customer's delivery details.
type ProfileAPI struct {
	service profileports.Service
}

func NewProfileAPI(service profileports.Service) ProfileAPI {
	return ProfileAPI{service: service}
}

// Get /v1/profile
func (api *ProfileAPI) GetProfile(c *gin.Context) {
	profile, err := api.service.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profilemapper.FromDomainProfile(profile))
}

// Put /v1/profile
// Replaces the whole profile
func (api *ProfileAPI) ReplaceProfile(c *gin.Context) {
	var payload profilemapper.Profile
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.Replace(c.Request.Context(), profilemapper.ToDomainProfile(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profilemapper.FromDomainProfile(saved))
}
