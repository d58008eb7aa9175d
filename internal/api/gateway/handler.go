package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eoralab/casechat/internal/domain"
	"github.com/eoralab/casechat/internal/service"
)

// Error texts returned to the browser client. They match what the
// assistant service has always sent, so existing pages keep working.
const (
	errNoQuestion    = "Вопрос не предоставлен"
	errEmptyQuestion = "Вопрос не может быть пустым"
	errTooLong       = "Вопрос слишком длинный (максимум 1000 символов)"
	errInternal      = "Произошла внутренняя ошибка сервера"
)

// Handler handles the public chat API
type Handler struct {
	gatewayService *service.GatewayService
}

// NewHandler creates a new gateway handler
func NewHandler(gatewayService *service.GatewayService) *Handler {
	return &Handler{gatewayService: gatewayService}
}

// RegisterRoutes registers the chat API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/ask", h.Ask)
	r.GET("/stats", h.Stats)
	r.GET("/health", h.Health)
}

// Ask forwards a question to the assistant backend
func (h *Handler) Ask(c *gin.Context) {
	var req domain.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoQuestion})
		return
	}

	resp, err := h.gatewayService.Ask(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.writeAskError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeAskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyQuestion})
	case errors.Is(err, domain.ErrQuestionTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": errTooLong})
	default:
		var backendErr *domain.BackendError
		if errors.As(err, &backendErr) {
			// The upstream already produced a client-facing error
			c.JSON(backendErr.Status, gin.H{"error": backendErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}

// Stats returns knowledge base statistics
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.gatewayService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Health reports gateway and backend liveness
func (h *Handler) Health(c *gin.Context) {
	health := h.gatewayService.Health(c.Request.Context())

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, health)
}
