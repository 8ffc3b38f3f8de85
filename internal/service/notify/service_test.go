package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/farmledger/internal/config"
	"github.com/mamadbah2/farmledger/internal/domain/models"
	client "github.com/mamadbah2/farmledger/pkg/clients/whatsapp"
)

type fakeClient struct {
	requests []client.SendTextMessageRequest
	err      error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &client.SendTextMessageResponse{}, nil
}

func TestNotifyManager(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{ManagerID: "57300"}, fc, nil)

	if err := svc.NotifyManager(context.Background(), "digest"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(fc.requests) != 1 || fc.requests[0].To != "57300" || fc.requests[0].Body != "digest" {
		t.Fatalf("unexpected requests %+v", fc.requests)
	}
}

func TestSendOutboundErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{err: boom}, nil)

	if err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "  "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "hi"}); !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}
