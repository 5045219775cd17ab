package lead

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"truckshop-platform/pkg/apperrors"
)

func TestTelegramSendPostsToBotAPI(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/bottest-token/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	viper.Set("TELEGRAM_BOT_TOKEN", "test-token")
	viper.Set("TELEGRAM_CHAT_ID", "-100123")
	defer viper.Reset()

	sender := NewTelegramSenderWithBaseURL(srv.URL)
	if err := sender.Send("hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.ChatID != "-100123" || got.Text != "hello" {
		t.Fatalf("sent %+v", got)
	}
}

func TestTelegramSendNotConfigured(t *testing.T) {
	viper.Reset()

	err := NewTelegramSender().Send("hello")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeLeadNotConfigured {
		t.Fatalf("expected %s, got %v", apperrors.ErrCodeLeadNotConfigured, err)
	}
}

func TestTelegramSendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	viper.Set("TELEGRAM_BOT_TOKEN", "test-token")
	viper.Set("TELEGRAM_CHAT_ID", "42")
	defer viper.Reset()

	err := NewTelegramSenderWithBaseURL(srv.URL).Send("hello")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeLeadDeliveryFailed {
		t.Fatalf("expected %s, got %v", apperrors.ErrCodeLeadDeliveryFailed, err)
	}
}

func TestFormatQuoteOmitsEmptyOptionalFields(t *testing.T) {
	msg := FormatQuote(QuoteRequest{Name: "Mike", Phone: "555-0101"})
	if !strings.Contains(msg, "Name: Mike") || !strings.Contains(msg, "Phone: 555-0101") {
		t.Fatalf("message missing required fields: %q", msg)
	}
	if strings.Contains(msg, "Email:") || strings.Contains(msg, "Truck:") {
		t.Fatalf("message includes empty optional fields: %q", msg)
	}
}

func TestFormatQuoteEscapesUserInput(t *testing.T) {
	msg := FormatQuote(QuoteRequest{Name: "<script>alert(1)</script>", Phone: "555"})
	if strings.Contains(msg, "<script>") {
		t.Fatalf("user input not escaped: %q", msg)
	}
	if !strings.Contains(msg, "&lt;script&gt;") {
		t.Fatalf("expected escaped input in %q", msg)
	}
}

func TestFormatContactIncludesMessageBody(t *testing.T) {
	msg := FormatContact(ContactRequest{
		Name:    "Dana",
		Phone:   "555-0102",
		Email:   "dana@example.com",
		Message: "Brake light is on.",
	})
	for _, want := range []string{"Dana", "555-0102", "dana@example.com", "Brake light is on."} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q: %q", want, msg)
		}
	}
}
