package approval

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
)

type Handler struct {
	controller Controller
}

func NewHandler(controller Controller) *Handler {
	return &Handler{controller: controller}
}

func (h *Handler) GetSettings(c *gin.Context) {
	resp, err := h.controller.GetAllSettings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertSetting(c *gin.Context) {
	var req UpsertApprovalSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.controller.UpsertSetting(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetMyCapability lets the UI decide which approval buttons to show.
func (h *Handler) GetMyCapability(c *gin.Context) {
	actorUserID := middleware.GetUserID(c)
	if actorUserID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authenticated user", nil)
		return
	}

	cap, err := h.controller.Resolve(c.Request.Context(), c.Param("workflow"), actorUserID, middleware.GetEmployeeID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"workflow":     c.Param("workflow"),
		"first_level":  cap.FirstLevel,
		"second_level": cap.SecondLevel,
		"enabled":      cap.Enabled,
	}, nil)
}
