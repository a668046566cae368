package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const subjectQuoteFmt = "Tilbud %s"

// Attachment is a file attached to an outbound email.
type Attachment struct {
	FileName string
	Content  []byte
}

// SMTPSender delivers quote emails via the tenant's own SMTP server using go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendQuote emails the quote PDF to the customer.
func (s *SMTPSender) SendQuote(ctx context.Context, toEmail, customerName, quoteNumber string, pdfBytes []byte) error {
	subject := fmt.Sprintf(subjectQuoteFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_sent.html", quoteEmailData{
		baseEmailData: baseEmailData{
			Title:   subject,
			Heading: subject,
		},
		CustomerName: customerName,
		QuoteNumber:  quoteNumber,
		CompanyName:  s.fromName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content, Attachment{
		FileName: fmt.Sprintf("Tilbud-%s.pdf", quoteNumber),
		Content:  pdfBytes,
	})
}
