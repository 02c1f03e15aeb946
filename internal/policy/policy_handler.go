package policy

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStatutoryRates(c *gin.Context) {
	rates, err := h.service.GetStatutoryRatesAt(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapRatesToResponse(rates), nil)
}

func (h *Handler) UpsertStatutoryRates(c *gin.Context) {
	var req UpsertStatutoryRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.UpsertStatutoryRates(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetClaimPolicies(c *gin.Context) {
	resp, err := h.service.GetAllClaimPolicies(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateClaimPolicy(c *gin.Context) {
	var req CreateClaimPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CreateClaimPolicy(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateClaimPolicy(c *gin.Context) {
	var req UpdateClaimPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.UpdateClaimPolicy(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteClaimPolicy(c *gin.Context) {
	if err := h.service.DeleteClaimPolicy(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetOvertimePolicy(c *gin.Context) {
	p, err := h.service.GetOvertimePolicy(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapOvertimePolicyToResponse(p), nil)
}

func (h *Handler) UpdateOvertimePolicy(c *gin.Context) {
	var req UpdateOvertimePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.UpdateOvertimePolicy(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
