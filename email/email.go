package email

import (
	"fmt"
	"net/smtp"
	"os"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether SMTP settings are present. Mail sending is
// skipped entirely when they are not.
func (e *EmailService) Configured() bool {
	return e.host != "" && e.port != "" && e.from != ""
}

func (e *EmailService) SendWelcomeEmail(to, username string) error {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost:8080"
	}

	profileLink := fmt.Sprintf("%s/profile/%s", domain, username)

	subject := "Welcome to Blogicum"
	body := fmt.Sprintf(`Hello %s!

Your Blogicum account is ready.

Your public profile lives at:

%s

If you did not register at Blogicum, ignore this email.

---
Blogicum
`, username, profileLink)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, to, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
