package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/juparave/baseline/internal/config"
	"github.com/juparave/baseline/internal/domain"
	"github.com/juparave/baseline/internal/report"
)

// maxAttempts bounds SMTP delivery attempts
const maxAttempts = 3

// Service mails the summary of a finished analysis
type Service struct {
	config config.EmailConfig
	logger *log.Logger
}

// NewService creates a new notification Service
func NewService(cfg config.EmailConfig, logger *log.Logger) (*Service, error) {
	return &Service{
		config: cfg,
		logger: logger,
	}, nil
}

// SendResult mails the summary of an analysis result
func (s *Service) SendResult(ctx context.Context, result *domain.AnalysisResult, resultPath string) error {
	return s.send(ctx, s.buildSubject(result), s.buildBody(result, resultPath))
}

func (s *Service) buildSubject(result *domain.AnalysisResult) string {
	if !result.HasFindings() {
		return fmt.Sprintf("[BASELINE] %s - no findings", result.Project)
	}

	high := result.HighCount()
	if high > 0 {
		return fmt.Sprintf("[BASELINE] %s - %d findings (%d critical/high)", result.Project, result.TotalFindings, high)
	}

	return fmt.Sprintf("[BASELINE] %s - %d findings", result.Project, result.TotalFindings)
}

func (s *Service) buildBody(result *domain.AnalysisResult, resultPath string) string {
	var buf bytes.Buffer
	report.WritePlainSummary(&buf, result)
	if resultPath != "" {
		fmt.Fprintf(&buf, "\nResults saved to: %s\n", resultPath)
	}
	return buf.String()
}

func (s *Service) send(ctx context.Context, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	message := s.buildMessage(subject, body)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.sendWithTimeout(addr, message, 30*time.Second)
		if err == nil {
			return nil
		}

		lastErr = err
		s.logger.Printf("Email attempt %d failed: %v", attempt, err)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt*attempt) * time.Second):
			}
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

func (s *Service) buildMessage(subject, body string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromAddress))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", s.config.ToAddress))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	buf.WriteString(fmt.Sprintf("Message-ID: <%d@%s>\r\n", time.Now().UnixNano(), s.config.SMTPHost))
	buf.WriteString("\r\n")

	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return buf.Bytes()
}

func (s *Service) sendWithTimeout(addr string, message []byte, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Quit()

	// Start TLS if port is 587
	if s.config.SMTPPort == 587 {
		tlsConfig := &tls.Config{ServerName: s.config.SMTPHost}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starting TLS: %w", err)
		}
	}

	// Authenticate
	if s.config.SMTPUser != "" && s.config.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating: %w", err)
		}
	}

	// Set sender
	if err = client.Mail(s.config.FromAddress); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}

	// Set recipient
	if err = client.Rcpt(s.config.ToAddress); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	// Send message body
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("getting data writer: %w", err)
	}

	_, err = writer.Write(message)
	if err != nil {
		return fmt.Errorf("writing message: %w", err)
	}

	return writer.Close()
}
