package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	users, total, err := h.svc.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"users": users, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateUserRole(c.Request.Context(), id, req.Role); err != nil {
		failFor(c, err)
		return
	}
	message(c, http.StatusOK, "role updated")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		failFor(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SetTracking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.SetTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SetOrderTracking(c.Request.Context(), id, req.TrackingNumber); err != nil {
		failFor(c, err)
		return
	}
	message(c, http.StatusOK, "tracking updated")
}

func (h *AdminHandler) Impersonate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	resp, err := h.svc.Impersonate(c.Request.Context(), id)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}
