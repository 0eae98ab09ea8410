package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/dto"
	"github.com/BarkinBalci/landing-behavior-service/internal/service"
)

type Handler struct {
	behavior service.BehaviorServicer
	router   *gin.Engine
	log      *zap.Logger
}

func NewHandler(behavior service.BehaviorServicer, log *zap.Logger) *Handler {
	h := &Handler{
		behavior: behavior,
		router:   gin.Default(),
		log:      log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/sessions", h.startSession)

	sessions := h.router.Group("/sessions/:id")
	sessions.DELETE("", h.endSession)
	sessions.GET("/state", h.sessionState)
	sessions.POST("/events", h.trackEvent)
	sessions.POST("/signals/scroll", h.scrollSignal)
	sessions.POST("/signals/time", h.timeSignal)
	// Escape key and backdrop clicks close whatever dialog is open.
	sessions.POST("/signals/escape", h.closeAllModals)
	sessions.POST("/modals/:modal/open", h.openModal)
	sessions.POST("/modals/:modal/close", h.closeModal)
	sessions.POST("/forms/:form", h.submitForm)
	sessions.POST("/chat/toggle", h.toggleChat)
	sessions.POST("/chat/messages", h.sendChatMessage)
	sessions.POST("/carousel/:direction", h.navigateCarousel)
	sessions.POST("/counters/seen", h.counterSeen)
	sessions.GET("/countdown", h.countdown)
}

// respondError maps service errors onto HTTP statuses: unknown sessions are
// 404, everything else a caller can fix is 400.
func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "session_not_found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid_request",
		Message: err.Error(),
	})
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *Handler) startSession(c *gin.Context) {
	resp, err := h.behavior.StartSession()
	if err != nil {
		h.log.Error("Failed to start session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Session created",
		zap.String("session_id", resp.SessionID),
		zap.String("variant", resp.Variant))

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) endSession(c *gin.Context) {
	if err := h.behavior.EndSession(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) sessionState(c *gin.Context) {
	state, err := h.behavior.SessionState(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) trackEvent(c *gin.Context) {
	var req dto.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.behavior.TrackEvent(c.Param("id"), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *Handler) scrollSignal(c *gin.Context) {
	var req dto.ScrollSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.behavior.ReportScroll(c.Param("id"), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *Handler) timeSignal(c *gin.Context) {
	var req dto.TimeSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.behavior.ReportTime(c.Param("id"), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *Handler) openModal(c *gin.Context) {
	if err := h.behavior.OpenModal(c.Param("id"), c.Param("modal")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) closeModal(c *gin.Context) {
	if err := h.behavior.CloseModal(c.Param("id"), c.Param("modal")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) closeAllModals(c *gin.Context) {
	if err := h.behavior.CloseAllModals(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) submitForm(c *gin.Context) {
	var req dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.behavior.SubmitForm(c.Param("id"), c.Param("form"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !resp.Accepted {
		// Field validation failures come back inline, not as an API error.
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	h.log.Info("Form submission accepted",
		zap.String("session_id", c.Param("id")),
		zap.String("form", c.Param("form")))

	c.JSON(http.StatusAccepted, resp)
}

func (h *Handler) toggleChat(c *gin.Context) {
	resp, err := h.behavior.ToggleChat(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) sendChatMessage(c *gin.Context) {
	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.behavior.SendChatMessage(c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) navigateCarousel(c *gin.Context) {
	resp, err := h.behavior.NavigateCarousel(c.Param("id"), c.Param("direction"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) counterSeen(c *gin.Context) {
	var req dto.CounterSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.behavior.CounterSeen(c.Param("id"), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) countdown(c *gin.Context) {
	resp, err := h.behavior.Countdown(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
