package notify

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"documind-backend/internal/llm"
)

// ErrNotification wraps mail dispatch failures. Callers treat these as
// non-fatal: they are logged, never propagated to the upload pipeline.
var ErrNotification = errors.New("failed to send email")

//go:embed report.html.tmpl
var reportTemplateText string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
	"capitalize": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).Parse(reportTemplateText))

// Mailer dispatches a formatted analysis report to a recipient.
type Mailer interface {
	SendAnalysis(ctx context.Context, to, fileName string, analysis llm.DocumentAnalysis) error
}

// SMTPMailer sends analysis reports over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer constructs a Mailer backed by the given SMTP account.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendAnalysis renders the HTML report and dispatches it.
func (m *SMTPMailer) SendAnalysis(ctx context.Context, to, fileName string, analysis llm.DocumentAnalysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := RenderReport(fileName, analysis)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("DocuMind AI <%s>", m.from))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Document Analysis Complete: %s", fileName))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	return nil
}

// RenderReport renders the analysis report HTML for a document.
func RenderReport(fileName string, analysis llm.DocumentAnalysis) (string, error) {
	data := struct {
		FileName       string
		Analysis       llm.DocumentAnalysis
		SentimentClass string
	}{
		FileName:       fileName,
		Analysis:       analysis,
		SentimentClass: sentimentClass(analysis.Sentiment),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func sentimentClass(sentiment string) string {
	switch strings.ToLower(strings.TrimSpace(sentiment)) {
	case "positive":
		return "positive"
	case "negative":
		return "negative"
	default:
		return "neutral"
	}
}

var _ Mailer = (*SMTPMailer)(nil)
