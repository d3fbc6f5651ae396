package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/middleware"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, service.ToProjectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.GetUserID(c), page, limit)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	role := middleware.GetUserRole(c)
	isAdmin := role == model.RoleAdmin || role == model.RoleSuperAdmin
	project, err := h.svc.GetByID(c.Request.Context(), middleware.GetUserID(c), projectID, isAdmin)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, service.ToProjectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Update(c.Request.Context(), middleware.GetUserID(c), projectID, req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, service.ToProjectResponse(project))
}

func (h *ProjectHandler) UpdateElements(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateElementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.UpdateElements(c.Request.Context(), middleware.GetUserID(c), projectID, req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, service.ToProjectResponse(project))
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), projectID, req.Status)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, service.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), projectID); err != nil {
		failFor(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) CreateVersion(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.CreateVersionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	version, err := h.svc.CreateVersion(c.Request.Context(), middleware.GetUserID(c), projectID, req.Note)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, toVersionResponse(version))
}

func (h *ProjectHandler) ListVersions(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	versions, err := h.svc.ListVersions(c.Request.Context(), middleware.GetUserID(c), projectID)
	if err != nil {
		failFor(c, err)
		return
	}
	items := make([]dto.VersionResponse, 0, len(versions))
	for i := range versions {
		items = append(items, toVersionResponse(&versions[i]))
	}
	ok(c, http.StatusOK, items)
}

func (h *ProjectHandler) RestoreVersion(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	number, err := strconv.Atoi(c.Param("n"))
	if err != nil || number < 1 {
		fail(c, http.StatusBadRequest, "invalid version number")
		return
	}
	project, err := h.svc.RestoreVersion(c.Request.Context(), middleware.GetUserID(c), projectID, number)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, service.ToProjectResponse(project))
}

func (h *ProjectHandler) Duplicate(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.DuplicateProjectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	project, err := h.svc.Duplicate(c.Request.Context(), middleware.GetUserID(c), projectID, req.Name)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, service.ToProjectResponse(project))
}

func toVersionResponse(v *model.ProjectVersion) dto.VersionResponse {
	return dto.VersionResponse{
		VersionNumber: v.VersionNumber,
		ElementCount:  len(v.Elements),
		Note:          v.Note,
		CreatedAt:     v.CreatedAt,
	}
}
