package utils

import (
	"fmt"
	"log"
	"net/http"

	"elearn/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. A missing API key turns
// sending into a no-op so local environments work without credentials.
func SendEmail(to, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendGridKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s", to)
		return nil
	}

	from := sgmail.NewEmail("E-Learning Admin", cfg.EmailSender)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail(toName, to), "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("SendGrid rejected email to %s: %d", to, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendEnrollmentConfirmation emails a student after a successful enrollment.
// Failures are logged, never surfaced to the enrollment path.
func SendEnrollmentConfirmation(to, firstName, courseName string) {
	if to == "" {
		return
	}

	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Enrollment Confirmed</h2>
		<p>Hi %s,</p>
		<p>You have been enrolled in <strong>%s</strong>.</p>
		<p>Log in to your dashboard to see the course material.</p>
	</body>
	</html>`, firstName, courseName)

	if err := SendEmail(to, firstName, "Enrollment Confirmation", body); err != nil {
		log.Printf("Failed to send enrollment confirmation to %s: %v", to, err)
	}
}
