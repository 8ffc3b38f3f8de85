package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

type staticDigest string

func (d staticDigest) BuildDigest() string { return string(d) }

type fakeMessaging struct {
	sent []string
	err  error
}

func (f *fakeMessaging) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req.Message)
	return f.err
}

func (f *fakeMessaging) NotifyManager(ctx context.Context, message string) error {
	return f.SendOutbound(ctx, models.OutboundMessageRequest{Message: message})
}

func TestSendDigest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "delivered", want: http.StatusAccepted},
		{name: "upstream failure", err: errors.New("timeout"), want: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messaging := &fakeMessaging{err: tt.err}
			h := NewReportHandler(staticDigest("Farm digest"), messaging, nil)

			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/reports/digest/send", nil)
			h.SendDigest(c)
			c.Writer.WriteHeaderNow()

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if len(messaging.sent) != 1 || messaging.sent[0] != "Farm digest" {
				t.Fatalf("unexpected messages %v", messaging.sent)
			}
		})
	}
}
