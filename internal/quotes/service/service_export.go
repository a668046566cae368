package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kalkyle/internal/events"
	"kalkyle/internal/pdf"
	"kalkyle/internal/quotes/repository"
	"kalkyle/platform/apperr"
)

// Summary returns the computed totals of an owned quote. The VAT rate
// comes from the user's settings.
func (s *Service) Summary(ctx context.Context, userID, quoteID uuid.UUID) (Summary, error) {
	quote, err := s.repo.GetByID(ctx, userID, quoteID)
	if err != nil {
		return Summary{}, err
	}

	lines, err := s.repo.ListLines(ctx, quote.ID)
	if err != nil {
		return Summary{}, err
	}

	defaults, err := s.settings.QuoteDefaults(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(lines, quote.MarkupPercent, defaults.VatPercent), nil
}

// ExportPDF renders an owned quote to PDF. Detailed mode lists every line
// grouped by category; otherwise only category subtotals appear. When an
// archiver is configured a copy is stored.
func (s *Service) ExportPDF(ctx context.Context, userID, quoteID uuid.UUID, detailed bool) (string, []byte, error) {
	quote, err := s.repo.GetByID(ctx, userID, quoteID)
	if err != nil {
		return "", nil, err
	}

	doc, err := s.buildDocument(ctx, userID, quote, detailed)
	if err != nil {
		return "", nil, err
	}

	data, err := pdf.GenerateQuotePDF(doc)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "Kunne ikke generere PDF", err).WithOp("quotes.ExportPDF")
	}

	filename := fmt.Sprintf("Tilbud-%s.pdf", quote.QuoteNumber)

	if s.archiver != nil {
		if err := s.archiver.ArchiveQuotePDF(ctx, userID, filename, data); err != nil {
			s.log.Error("quote PDF archive failed", "quote_id", quote.ID.String(), "error", err.Error())
		}
	}

	return filename, data, nil
}

// Send emails the rendered quote to the customer and marks it sent.
func (s *Service) Send(ctx context.Context, userID, quoteID uuid.UUID) (string, error) {
	if s.emailSender == nil {
		return "", apperr.Validation("E-postutsending er ikke konfigurert")
	}

	quote, err := s.repo.GetByID(ctx, userID, quoteID)
	if err != nil {
		return "", err
	}
	if quote.CustomerEmail == nil || *quote.CustomerEmail == "" {
		return "", apperr.Validation("Tilbudet mangler kundens e-postadresse")
	}

	doc, err := s.buildDocument(ctx, userID, quote, true)
	if err != nil {
		return "", err
	}

	data, err := pdf.GenerateQuotePDF(doc)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Kunne ikke generere PDF", err).WithOp("quotes.Send")
	}

	if err := s.emailSender.SendQuote(ctx, *quote.CustomerEmail, quote.CustomerName, quote.QuoteNumber, data); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Kunne ikke sende tilbudet", err).WithOp("quotes.Send")
	}

	sent := repository.StatusSent
	if _, err := s.repo.Update(ctx, userID, quoteID, repository.UpdateQuoteParams{Status: &sent}); err != nil {
		return "", err
	}

	s.bus.Publish(ctx, events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       quote.ID,
		UserID:        userID,
		QuoteNumber:   quote.QuoteNumber,
		CustomerEmail: *quote.CustomerEmail,
	})

	return quote.QuoteNumber, nil
}

func (s *Service) buildDocument(ctx context.Context, userID uuid.UUID, quote repository.Quote, detailed bool) (pdf.QuoteDocument, error) {
	lines, err := s.repo.ListLines(ctx, quote.ID)
	if err != nil {
		return pdf.QuoteDocument{}, err
	}

	defaults, err := s.settings.QuoteDefaults(ctx, userID)
	if err != nil {
		return pdf.QuoteDocument{}, err
	}

	company, err := s.settings.CompanyProfile(ctx, userID)
	if err != nil {
		return pdf.QuoteDocument{}, err
	}

	summary := Summarize(lines, quote.MarkupPercent, defaults.VatPercent)

	pdfLines := make([]pdf.LineItem, 0, len(lines))
	for _, line := range lines {
		pdfLines = append(pdfLines, pdf.LineItem{
			CategoryType: line.CategoryType,
			Description:  line.Description,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			UnitPrice:    line.UnitPrice,
			LineTotal:    line.LineTotal,
		})
	}

	createdAt, err := time.Parse(time.RFC3339, quote.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}

	var validUntil *time.Time
	if quote.ValidUntil != nil {
		if parsed, err := time.Parse("2006-01-02", *quote.ValidUntil); err == nil {
			validUntil = &parsed
		}
	}

	return pdf.QuoteDocument{
		QuoteNumber:        quote.QuoteNumber,
		Status:             quote.Status,
		CreatedAt:          createdAt,
		ValidUntil:         validUntil,
		CustomerName:       quote.CustomerName,
		CustomerEmail:      quote.CustomerEmail,
		CustomerAddress:    quote.CustomerAddress,
		ProjectName:        quote.ProjectName,
		ProjectDescription: quote.ProjectDescription,
		Reference:          quote.Reference,
		Notes:              quote.Notes,
		Terms:              quote.Terms,
		Company:            company,
		Detailed:           detailed,
		Lines:              pdfLines,
		Totals: pdf.Totals{
			TotalCost:      summary.TotalCost,
			MarkupPercent:  summary.MarkupPercent,
			Markup:         summary.Markup,
			TotalExVat:     summary.TotalExVat,
			VatPercent:     summary.VatPercent,
			Vat:            summary.Vat,
			TotalIncVat:    summary.TotalIncVat,
			CategoryTotals: summary.CategoryTotals,
		},
	}, nil
}
