package product

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/middleware"
)

type Handler struct {
	service *Service
	log     *golog.Logger
}

func NewHandler(service *Service, log *golog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Upload handles POST /upload: validates the multipart image, runs the
// analysis pipeline and stores the result in the session.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	mimeType, err := ValidateImageExtension(header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if header.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 16MB"})
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if len(image) > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 16MB"})
		return
	}

	sessionID := middleware.SessionID(c)

	sc, storedName, fail := h.service.Analyze(c.Request.Context(), sessionID, header.Filename, mimeType, image)
	if fail != nil {
		h.log.Errorf("analysis failed at %s (%s): %s", fail.Stage, fail.Kind, fail.Message)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fail.Message,
			"details": fail.Detail,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"product_data": sc.Product,
		"analysis":     sc.Analysis,
		"inr_result":   sc.Rating,
		"image_path":   storedName,
	})
}

// ClearSession handles POST /clear-session. Clearing an empty session still
// succeeds.
func (h *Handler) ClearSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	if err := h.service.ClearSession(c.Request.Context(), sessionID); err != nil {
		h.log.Warnf("failed to clear session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
