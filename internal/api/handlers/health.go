package handlers

import (
	"net/http"

	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/service"
	"github.com/osa911/uplink/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	formService *service.FormService
}

func NewHealthHandler(formService *service.FormService) *HealthHandler {
	return &HealthHandler{formService: formService}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"status":        "ok",
		"version":       version.Version,
		"open_sessions": h.formService.Count(),
	}))
}
