// Package mailer delivers OTP codes over email.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Notifier sends one-time codes to residents. The SMTP implementation is used
// in production; tests substitute a fake.
type Notifier interface {
	SendOTP(email, code string) error
}

// SMTPMailer sends OTP emails through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

// SendOTP emails the code to the given address. Any transport failure is
// returned to the caller; OTP delivery failures must not be swallowed.
func (m *SMTPMailer) SendOTP(email, code string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	msg := []byte("From: " + m.user + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: Your OTP Code - BrgyKonek\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		otpBody(code))

	if err := smtp.SendMail(addr, auth, m.user, []string{email}, msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

func otpBody(code string) string {
	return `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333; text-align: center;">BrgyKonek OTP Verification</h2>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0; font-size: 16px; color: #555;">Your OTP code is:</p>
    <h1 style="text-align: center; color: #007bff; font-size: 32px; margin: 10px 0; letter-spacing: 5px;">` + code + `</h1>
    <p style="margin: 0; font-size: 14px; color: #666;">This code will expire in 10 minutes.</p>
  </div>
  <p style="font-size: 14px; color: #666; text-align: center;">
    If you didn't request this code, please ignore this email.
  </p>
</div>`
}

// LogMailer writes codes to the process log instead of sending email.
// Used in development when no SMTP credentials are configured.
type LogMailer struct {
	Printf func(format string, v ...interface{})
}

func (m *LogMailer) SendOTP(email, code string) error {
	if m.Printf != nil {
		m.Printf("OTP %s for %s (email delivery disabled)", code, email)
	}
	return nil
}
