package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"truckshop-platform/pkg/apperrors"
)

// TelegramSender delivers lead notifications to a Telegram chat via the
// Bot API sendMessage method.
type TelegramSender struct {
	baseURL string
	client  *http.Client
}

// NewTelegramSender builds a sender against the public Bot API.
func NewTelegramSender() *TelegramSender {
	return &TelegramSender{
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewTelegramSenderWithBaseURL points the sender at a different API
// host. Used in tests.
func NewTelegramSenderWithBaseURL(baseURL string) *TelegramSender {
	s := NewTelegramSender()
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts text to the configured chat. Returns a configuration error
// when the bot token or chat ID is missing, and a delivery error when
// Telegram rejects or cannot be reached. Callers use the distinction to
// decide whether the problem is ours or the network's.
func (s *TelegramSender) Send(text string) error {
	token := viper.GetString("TELEGRAM_BOT_TOKEN")
	chatID := viper.GetString("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		return apperrors.NewInternal(
			apperrors.ErrCodeLeadNotConfigured,
			"Telegram delivery is not configured.",
			nil,
		)
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeParseError, "Failed to encode Telegram message.", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, token)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return apperrors.NewBadGateway(
			apperrors.ErrCodeLeadDeliveryFailed,
			"Failed to reach Telegram.",
			err,
		)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || !result.OK {
		return apperrors.NewBadGateway(
			apperrors.ErrCodeLeadDeliveryFailed,
			"Telegram rejected the message.",
			err,
		)
	}
	return nil
}

// FormatQuote renders a quote request as a Telegram HTML message. User
// input is escaped, not trusted.
func FormatQuote(req QuoteRequest) string {
	var b strings.Builder
	b.WriteString("🚚 <b>New Quote Request</b>\n\n")
	fmt.Fprintf(&b, "Name: %s\n", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "Phone: %s\n", html.EscapeString(req.Phone))
	if req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(req.Email))
	}
	if req.TruckInfo != "" {
		fmt.Fprintf(&b, "Truck: %s\n", html.EscapeString(req.TruckInfo))
	}
	if req.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", html.EscapeString(req.Message))
	}
	return b.String()
}

// FormatContact renders a contact form submission as a Telegram HTML
// message.
func FormatContact(req ContactRequest) string {
	var b strings.Builder
	b.WriteString("📩 <b>New Contact Message</b>\n\n")
	fmt.Fprintf(&b, "Name: %s\n", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "Phone: %s\n", html.EscapeString(req.Phone))
	if req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(req.Email))
	}
	fmt.Fprintf(&b, "\n%s\n", html.EscapeString(req.Message))
	return b.String()
}
