// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	Body     string
	HTMLBody string
}

// GroupEntryData holds data for the "added to group" email sent to
// representatives that already have an account.
type GroupEntryData struct {
	Name      string
	GroupName string
	GroupURL  string
}

// RegisterInviteData holds data for the signup invitation sent to
// representatives without an account.
type RegisterInviteData struct {
	GroupName   string
	RegisterURL string
}

// PasswordResetData holds data for the password reset email
type PasswordResetData struct {
	Name     string
	ResetURL string
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {

	// Group Entry Template (representative already has an account)
	s.templates["group_entry"] = template.Must(template.New("group_entry").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #10b981; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #10b981; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>You Are Now a Group Representative</h2>
    </div>
    <div class="content">
        <p>Hello {{.Name}},</p>
        <p>You have been registered as the representative of <strong>{{.GroupName}}</strong>.</p>

        <a href="{{.GroupURL}}" class="btn">Open Group</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            If you were not expecting this email, you can ignore it.
        </p>
    </div>
    <div class="footer">
        GrupoHub • Group Management Platform
    </div>
</div>
</body>
</html>
`))

	// Register Invitation Template (representative has no account yet)
	s.templates["register_invite"] = template.Must(template.New("register_invite").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #6366f1; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #6366f1; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>You're Invited to GrupoHub</h2>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p>You have been chosen as the representative of <strong>{{.GroupName}}</strong>.</p>
        <p>Create your account to manage the group.</p>

        <a href="{{.RegisterURL}}" class="btn">Create Account</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            If you were not expecting this email, you can ignore it.
        </p>
    </div>
    <div class="footer">
        GrupoHub • Group Management Platform
    </div>
</div>
</body>
</html>
`))

	// Password Reset Template
	s.templates["password_reset"] = template.Must(template.New("password_reset").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #ef4444; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #ef4444; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>Password Reset</h2>
    </div>
    <div class="content">
        <p>Hello {{.Name}},</p>
        <p>We received a request to reset your password.</p>

        <a href="{{.ResetURL}}" class="btn">Reset Password</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            If you did not request a reset, you can ignore this email.
        </p>
    </div>
    <div class="footer">
        GrupoHub • Group Management Platform
    </div>
</div>
</body>
</html>
`))
}

// Send sends an email
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	// Build message
	var msg bytes.Buffer

	// Headers
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if len(email.CC) > 0 {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(email.CC, ", ")))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}

	// Build recipient list
	recipients := append(email.To, email.CC...)
	recipients = append(recipients, email.BCC...)

	// Create auth
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		// TLS connection
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}

		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}

		for _, rcpt := range recipients {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("rcpt error: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}

		_, err = w.Write(msg.Bytes())
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}

		err = w.Close()
		if err != nil {
			return fmt.Errorf("close error: %w", err)
		}

		return client.Quit()
	}

	// Non-TLS
	return smtp.SendMail(addr, auth, s.config.From, recipients, msg.Bytes())
}

// SendWithTemplate sends an email using a template
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// ============================================
// Convenience Methods
// ============================================

// SendGroupEntry notifies an existing user that they became a group's
// representative.
func (s *Service) SendGroupEntry(to string, data GroupEntryData) error {
	return s.SendWithTemplate(
		[]string{to},
		fmt.Sprintf("[GrupoHub] You are now the representative of %s", data.GroupName),
		"group_entry",
		data,
	)
}

// SendRegisterInvite invites an unregistered representative to create an
// account.
func (s *Service) SendRegisterInvite(to string, data RegisterInviteData) error {
	return s.SendWithTemplate(
		[]string{to},
		fmt.Sprintf("[GrupoHub] Invitation to represent %s", data.GroupName),
		"register_invite",
		data,
	)
}

// SendPasswordReset sends a password reset link
func (s *Service) SendPasswordReset(to string, data PasswordResetData) error {
	return s.SendWithTemplate(
		[]string{to},
		"[GrupoHub] Password reset request",
		"password_reset",
		data,
	)
}
