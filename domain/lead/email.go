package lead

import (
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"

	"truckshop-platform/pkg/logger"
)

// sendEmailCopy mails a copy of the lead to the shop inbox via Resend.
// Best effort: Telegram is the primary channel, so a missing API key or
// send failure is logged and swallowed.
func sendEmailCopy(subject, text string) {
	log := logger.Get().WithComponent("lead-email")

	apiKey := viper.GetString("RESEND_API")
	to := viper.GetString("LEAD_EMAIL_TO")
	if apiKey == "" || to == "" {
		return
	}

	from := viper.GetString("LEAD_EMAIL_FROM")
	if from == "" {
		from = "leads@noreply.localhost"
	}

	html := "<pre>" + strings.ReplaceAll(text, "<", "&lt;") + "</pre>"
	client := resend.NewClient(apiKey)
	sent, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		log.Warn("Failed to send lead email copy", logger.Err(err))
		return
	}
	log.Debug("Lead email copy sent", logger.String("resend_id", sent.Id))
}
