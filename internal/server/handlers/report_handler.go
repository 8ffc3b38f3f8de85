package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/service/notify"
)

// DigestBuilder renders the farm digest.
type DigestBuilder interface {
	BuildDigest() string
}

// ReportHandler serves the text digest and pushes it to the manager on demand.
type ReportHandler struct {
	digest    DigestBuilder
	messaging notify.MessagingService
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter. messaging may be nil
// when WhatsApp is not configured.
func NewReportHandler(digest DigestBuilder, messaging notify.MessagingService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{digest: digest, messaging: messaging, logger: logger}
}

// Digest returns the current digest text.
func (h *ReportHandler) Digest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"digest": h.digest.BuildDigest()})
}

// SendDigest delivers the digest to the farm manager over WhatsApp.
func (h *ReportHandler) SendDigest(c *gin.Context) {
	if h.messaging == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging is not configured"})
		return
	}

	if err := h.messaging.NotifyManager(c.Request.Context(), h.digest.BuildDigest()); err != nil {
		if errors.Is(err, notify.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed sending digest", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
