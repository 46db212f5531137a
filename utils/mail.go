package utils

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/felixdarko/eventplanner-api/models"
)

// Mailer sends transactional email over SMTP. When SMTP credentials are
// missing it logs the message body instead, which keeps local development
// working without a mail account.
type Mailer struct {
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	AppName   string
	ClientURL string
}

// NewMailer builds a Mailer. An empty host disables sending.
func NewMailer(host string, port int, user, pass, appName, clientURL string) *Mailer {
	return &Mailer{
		Host:      host,
		Port:      port,
		User:      user,
		Pass:      pass,
		From:      user,
		AppName:   appName,
		ClientURL: clientURL,
	}
}

func (m *Mailer) configured() bool {
	return m.Host != "" && m.User != "" && m.Pass != ""
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.configured() {
		return fmt.Errorf("smtp not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%q <%s>", m.AppName, m.From))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return d.DialAndSend(msg)
}

// SendWelcomeEmail mails the verification link to a new user. Sending is
// best-effort: a failure is logged and never aborts the registration.
func (m *Mailer) SendWelcomeEmail(user *models.User, verificationToken string) error {
	link := m.ClientURL + "/verify-email/" + verificationToken
	subject := fmt.Sprintf("Welcome to %s, %s %s!", m.AppName, user.FirstName, user.LastName)
	body := fmt.Sprintf(`<h1>Welcome, %s %s!</h1>
<p>Thank you for joining %s, the platform for planning your events!</p>
<p>Please verify your email address to activate your account:</p>
<a href="%s">Verify Email</a>
<p>If the link above doesn't work, copy and paste it into your browser:</p>
<p>%s</p>`, user.FirstName, user.LastName, m.AppName, link, link)

	if err := m.send(user.Email, subject, body); err != nil {
		// dev fallback: surface the link in the server log
		log.Printf("welcome email not sent to %s (link: %s): %v", user.Email, link, err)
		return err
	}
	log.Printf("welcome email sent to %s", user.Email)
	return nil
}

// SendResetCodeEmail mails a password reset code to the user.
func (m *Mailer) SendResetCodeEmail(user *models.User, resetCode int) error {
	subject := fmt.Sprintf("Reset Your %s Password", m.AppName)
	body := fmt.Sprintf(`<h1>Reset Your Password</h1>
<p>Hi %s %s,</p>
<p>You requested to reset your password with %s.</p>
<p>Your reset code is: <strong>%d</strong></p>
<p>The code expires in 15 minutes and can be used once.</p>`,
		user.FirstName, user.LastName, m.AppName, resetCode)

	if err := m.send(user.Email, subject, body); err != nil {
		// dev fallback: log the code so local password resets still work
		log.Printf("reset email not sent to %s (code dev-only: %d): %v", user.Email, resetCode, err)
		return err
	}
	log.Printf("reset code email sent to %s", user.Email)
	return nil
}
