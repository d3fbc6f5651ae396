package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/middleware"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/service"
)

type DesignHandler struct {
	svc *service.DesignService
}

func NewDesignHandler(svc *service.DesignService) *DesignHandler {
	return &DesignHandler{svc: svc}
}

func (h *DesignHandler) Create(c *gin.Context) {
	var req dto.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	design, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, toDesignResponse(design))
}

func (h *DesignHandler) List(c *gin.Context) {
	designs, err := h.svc.ListVisible(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	items := make([]dto.DesignResponse, 0, len(designs))
	for i := range designs {
		items = append(items, toDesignResponse(&designs[i]))
	}
	ok(c, http.StatusOK, items)
}

func (h *DesignHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	design, err := h.svc.GetByID(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toDesignResponse(design))
}

func (h *DesignHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	design, err := h.svc.Update(c.Request.Context(), middleware.GetUserID(c), id, req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toDesignResponse(design))
}

func (h *DesignHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		failFor(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toDesignResponse(d *model.Design) dto.DesignResponse {
	return dto.DesignResponse{
		ID:        d.ID,
		Name:      d.Name,
		ImagePath: d.ImagePath,
		ThumbPath: d.ThumbPath,
		Public:    d.Public,
		CreatedAt: d.CreatedAt,
	}
}

type FontHandler struct {
	fontSvc *service.FontService
}

func NewFontHandler(fontSvc *service.FontService) *FontHandler {
	return &FontHandler{fontSvc: fontSvc}
}

func (h *FontHandler) List(c *gin.Context) {
	// Premium fonts are filtered by role; the list route itself is open to
	// any authenticated user.
	user := &model.User{ID: middleware.GetUserID(c), Role: middleware.GetUserRole(c)}
	fonts, err := h.fontSvc.List(c.Request.Context(), user)
	if err != nil {
		failFor(c, err)
		return
	}
	items := make([]dto.FontResponse, 0, len(fonts))
	for _, f := range fonts {
		items = append(items, dto.FontResponse{ID: f.ID, Name: f.Name, Family: f.Family, Premium: f.Premium})
	}
	ok(c, http.StatusOK, items)
}

func (h *FontHandler) Create(c *gin.Context) {
	var req dto.CreateFontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	font, err := h.fontSvc.Create(c.Request.Context(), req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, dto.FontResponse{ID: font.ID, Name: font.Name, Family: font.Family, Premium: font.Premium})
}

func (h *FontHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.fontSvc.Delete(c.Request.Context(), id); err != nil {
		failFor(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type SuggestionHandler struct {
	svc *service.SuggestionService
}

func NewSuggestionHandler(svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

func (h *SuggestionHandler) Create(c *gin.Context) {
	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	suggestion, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, toSuggestionResponse(suggestion))
}

func (h *SuggestionHandler) ListMine(c *gin.Context) {
	suggestions, err := h.svc.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		items = append(items, toSuggestionResponse(&suggestions[i]))
	}
	ok(c, http.StatusOK, items)
}

func (h *SuggestionHandler) ListAll(c *gin.Context) {
	suggestions, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		failFor(c, err)
		return
	}
	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		items = append(items, toSuggestionResponse(&suggestions[i]))
	}
	ok(c, http.StatusOK, items)
}

func (h *SuggestionHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateSuggestionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		failFor(c, err)
		return
	}
	message(c, http.StatusOK, "status updated")
}

func toSuggestionResponse(s *model.Suggestion) dto.SuggestionResponse {
	return dto.SuggestionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Body:      s.Body,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
