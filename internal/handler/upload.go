package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/upload"
)

type UploadHandler struct {
	processor *upload.Processor
	maxBytes  int64
}

func NewUploadHandler(processor *upload.Processor, maxSizeMB int64) *UploadHandler {
	return &UploadHandler{processor: processor, maxBytes: maxSizeMB << 20}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "image file required")
		return
	}
	if fileHeader.Size > h.maxBytes {
		fail(c, http.StatusBadRequest, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	defer file.Close()

	imagePath, thumbPath, err := h.processor.Process(file)
	if err != nil {
		fail(c, http.StatusBadRequest, "unsupported or corrupt image")
		return
	}

	ok(c, http.StatusCreated, dto.UploadResponse{ImagePath: imagePath, ThumbPath: thumbPath})
}
