// Package notify delivers farm messages to the manager over WhatsApp.
package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/config"
	"github.com/mamadbah2/farmledger/internal/domain/models"
	client "github.com/mamadbah2/farmledger/pkg/clients/whatsapp"
)

// ErrEmptyMessage is returned when there is nothing to send.
var ErrEmptyMessage = errors.New("message body is empty")

const sendTimeout = 10 * time.Second

// MessagingService describes the outbound operations other components use.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyManager(ctx context.Context, message string) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{cfg: cfg, client: client, logger: logger}
}

// SendOutbound pushes a text message to an arbitrary recipient.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrEmptyMessage
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	s.logger.Info("outbound message sent", zap.String("to", req.To), zap.String("message_id", resp.MessageID()))
	return nil
}

// NotifyManager sends a message to the configured farm manager.
func (s *MetaWhatsAppService) NotifyManager(ctx context.Context, message string) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{To: s.cfg.ManagerID, Message: message})
}
