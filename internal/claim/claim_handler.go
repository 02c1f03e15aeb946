package claim

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	employeeID := middleware.GetEmployeeID(c)
	if employeeID == "" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No employee record linked to this account", nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), employeeID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	if employeeID == "" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No employee record linked to this account", nil)
		return
	}

	page, limit := pagination(c)
	claims, meta, err := h.service.ListByEmployee(c.Request.Context(), employeeID, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, claims, meta)
}

func (h *Handler) ListPendingApproval(c *gin.Context) {
	page, limit := pagination(c)
	claims, meta, err := h.service.ListPendingApproval(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, claims, meta)
}

func (h *Handler) ApproveFirst(c *gin.Context) {
	actor := middleware.GetUserID(c)
	resp, err := h.service.ApproveFirst(c.Request.Context(), c.Param("id"), actor, middleware.GetEmployeeID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	actor := middleware.GetUserID(c)
	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), actor, middleware.GetEmployeeID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	actor := middleware.GetUserID(c)
	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), actor, middleware.GetEmployeeID(c), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
