package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	resend "github.com/resend/resend-go/v2"
)

// Service mails a copy of the daily digest to the configured recipients.
type Service struct {
	resendClient *resend.Client
	recipients   []string
}

// NewService creates a new empty service.
func NewService(recipients []string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		resendClient: resend.NewClient(resendKey),
		recipients:   recipients,
	}
}

// Enabled reports whether any recipient is configured.
func (s Service) Enabled() bool {
	return len(s.recipients) > 0
}

// SendDigest mails the already-rendered report text. The report is Slack
// markdown, so it goes out as a preformatted block as-is.
func (s Service) SendDigest(ctx context.Context, subject, report string) error {
	if !s.Enabled() {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    "digest@resend.dev",
		To:      s.recipients,
		Subject: subject,
		Html:    getDigestTemplate(report),
	}

	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send digest mail: %v\n", err)
		return err
	}
	return nil
}

func getDigestTemplate(report string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        pre {
            white-space: pre-wrap;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="container">
        <pre>%s</pre>
    </div>
</body>
</html>`, report)
}
