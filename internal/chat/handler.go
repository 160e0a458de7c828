package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/middleware"
	"github.com/Abhishek28042001/PureCheck/internal/pipeline"
	"github.com/Abhishek28042001/PureCheck/internal/session"
)

type Handler struct {
	service  *Service
	sessions session.Store
	log      *golog.Logger
}

func NewHandler(service *Service, sessions session.Store, log *golog.Logger) *Handler {
	return &Handler{service: service, sessions: sessions, log: log}
}

// Chat handles POST /chat.
func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}

	if err := c.BindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No message provided",
		})
		return
	}

	sessionID := middleware.SessionID(c)

	sc, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		// A broken session store downgrades to general-knowledge mode.
		h.log.Warnf("session lookup failed for %s: %v", sessionID, err)
		sc = nil
	}

	answer, err := h.service.Respond(c.Request.Context(), req.Message, sc)
	if err != nil {
		h.log.Errorf("chat failed (%s): %v", pipeline.ChatServiceFailure, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Unable to generate a response. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": answer,
	})
}
