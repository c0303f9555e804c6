package handlers

import (
	"github.com/osa911/uplink/internal/api/dto/v1/contact"
	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profile contact.ProfileResponse
}

func NewProfileHandler(cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		profile: contact.ProfileResponse{
			Email:       cfg.DisplayEmail,
			GithubURL:   cfg.GithubURL,
			LinkedinURL: cfg.LinkedinURL,
			Location:    cfg.Location,
		},
	}
}

// Get returns the contact details shown next to the form
func (h *ProfileHandler) Get(c *gin.Context) {
	utils.HandleSuccess(c, h.profile)
}
