// Package service implements the quote use cases: CRUD, numbering,
// settings-driven defaulting, pricing and export.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kalkyle/internal/events"
	"kalkyle/internal/quotes/repository"
	"kalkyle/internal/quotes/transport"
	"kalkyle/platform/apperr"
	"kalkyle/platform/logger"

	"kalkyle/internal/pdf"
)

// QuoteDefaults are the settings-driven values applied at quote creation.
type QuoteDefaults struct {
	DefaultTerms        *string
	DefaultValidityDays int
	VatPercent          float64
}

// SettingsReader exposes the slice of company settings the quotes module
// needs. Implementations fall back to stock defaults when the user has no
// settings row.
type SettingsReader interface {
	QuoteDefaults(ctx context.Context, userID uuid.UUID) (QuoteDefaults, error)
	CompanyProfile(ctx context.Context, userID uuid.UUID) (pdf.CompanyInfo, error)
}

// EmailSender delivers a rendered quote to the customer.
type EmailSender interface {
	SendQuote(ctx context.Context, to, customerName, quoteNumber string, pdfBytes []byte) error
}

// PDFArchiver stores a copy of an exported quote PDF.
type PDFArchiver interface {
	ArchiveQuotePDF(ctx context.Context, userID uuid.UUID, filename string, data []byte) error
}

// Service implements the quote use cases.
type Service struct {
	repo     repository.Repository
	settings SettingsReader
	bus      events.Bus
	log      *logger.Logger

	emailSender EmailSender
	archiver    PDFArchiver
}

// New creates a new quotes service.
func New(repo repository.Repository, settings SettingsReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, settings: settings, bus: bus, log: log}
}

// SetEmailSender injects the optional quote email sender.
func (s *Service) SetEmailSender(sender EmailSender) {
	s.emailSender = sender
}

// SetPDFArchiver injects the optional PDF archiver.
func (s *Service) SetPDFArchiver(archiver PDFArchiver) {
	s.archiver = archiver
}

// Create creates a quote. Terms and validity default from the user's
// company settings when absent; the quote number is allocated atomically
// per user and year.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateQuoteRequest) (transport.QuoteResponse, error) {
	defaults, err := s.settings.QuoteDefaults(ctx, userID)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	terms := req.Terms
	if terms == nil {
		terms = defaults.DefaultTerms
	}

	validUntil := req.ValidUntil
	if validUntil == nil {
		v := time.Now().AddDate(0, 0, defaults.DefaultValidityDays).Format("2006-01-02")
		validUntil = &v
	}

	markup := 0.0
	if req.MarkupPercent != nil {
		markup = *req.MarkupPercent
	}

	now := time.Now()
	seq, err := s.repo.NextSequence(ctx, userID, now.Year())
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	quoteNumber := FormatQuoteNumber(now.Year(), seq)

	quote, err := s.repo.Create(ctx, repository.CreateQuoteParams{
		UserID:             userID,
		QuoteNumber:        quoteNumber,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerAddress:    req.CustomerAddress,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		Reference:          req.Reference,
		ValidUntil:         validUntil,
		Status:             repository.StatusDraft,
		MarkupPercent:      markup,
		Notes:              req.Notes,
		Terms:              terms,
	})
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	s.bus.Publish(ctx, events.QuoteCreated{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		UserID:      userID,
		QuoteNumber: quote.QuoteNumber,
	})

	return toQuoteResponse(quote), nil
}

// List returns the user's quotes, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID uuid.UUID, status *string) ([]transport.QuoteListItemResponse, error) {
	items, err := s.repo.List(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	result := make([]transport.QuoteListItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, transport.QuoteListItemResponse{
			QuoteResponse: toQuoteResponse(item.Quote),
			TotalCost:     item.TotalCost,
			LineCount:     item.LineCount,
		})
	}
	return result, nil
}

// Get returns a quote with its lines.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (transport.QuoteDetailResponse, error) {
	quote, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return transport.QuoteDetailResponse{}, err
	}

	lines, err := s.repo.ListLines(ctx, quote.ID)
	if err != nil {
		return transport.QuoteDetailResponse{}, err
	}

	return transport.QuoteDetailResponse{
		QuoteResponse: toQuoteResponse(quote),
		Lines:         toLineResponses(lines),
	}, nil
}

// Update applies a partial update. Status moves are unconstrained.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req transport.UpdateQuoteRequest) (transport.QuoteResponse, error) {
	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	quote, err := s.repo.Update(ctx, userID, id, repository.UpdateQuoteParams{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerAddress:    req.CustomerAddress,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		Reference:          req.Reference,
		ValidUntil:         req.ValidUntil,
		Status:             req.Status,
		MarkupPercent:      req.MarkupPercent,
		Notes:              req.Notes,
		Terms:              req.Terms,
	})
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	if req.Status != nil && *req.Status != current.Status {
		s.bus.Publish(ctx, events.QuoteStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			UserID:    userID,
			OldStatus: current.Status,
			NewStatus: quote.Status,
		})
	}

	return toQuoteResponse(quote), nil
}

// Delete removes a quote and its lines.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// AddLine appends a line to an owned quote. The stored line total is
// computed server-side; any client-sent total is ignored.
func (s *Service) AddLine(ctx context.Context, userID, quoteID uuid.UUID, req transport.CreateLineRequest) (transport.LineResponse, error) {
	if _, err := s.repo.GetByID(ctx, userID, quoteID); err != nil {
		return transport.LineResponse{}, err
	}

	costItemID, err := parseOptionalUUID(req.CostItemID)
	if err != nil {
		return transport.LineResponse{}, apperr.Validation("Ugyldig kostnadselement")
	}

	line, err := s.repo.CreateLine(ctx, quoteID, repository.CreateLineParams{
		CostItemID:   costItemID,
		CategoryType: req.CategoryType,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		LineMarkup:   req.LineMarkup,
		LineTotal:    LineTotal(req.Quantity, req.UnitPrice, req.LineMarkup),
	})
	if err != nil {
		return transport.LineResponse{}, err
	}

	return toLineResponse(line), nil
}

// UpdateLine applies a partial update and recomputes the stored total from
// the merged values.
func (s *Service) UpdateLine(ctx context.Context, userID, quoteID, lineID uuid.UUID, req transport.UpdateLineRequest) (transport.LineResponse, error) {
	if _, err := s.repo.GetByID(ctx, userID, quoteID); err != nil {
		return transport.LineResponse{}, err
	}

	current, err := s.repo.GetLine(ctx, quoteID, lineID)
	if err != nil {
		return transport.LineResponse{}, err
	}

	costItemID, err := parseOptionalUUID(req.CostItemID)
	if err != nil {
		return transport.LineResponse{}, apperr.Validation("Ugyldig kostnadselement")
	}

	quantity := current.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	unitPrice := current.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	lineMarkup := current.LineMarkup
	if req.LineMarkup != nil {
		lineMarkup = *req.LineMarkup
	}
	lineTotal := LineTotal(quantity, unitPrice, lineMarkup)

	line, err := s.repo.UpdateLine(ctx, quoteID, lineID, repository.UpdateLineParams{
		CostItemID:   costItemID,
		CategoryType: req.CategoryType,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		LineMarkup:   req.LineMarkup,
		LineTotal:    &lineTotal,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return transport.LineResponse{}, err
	}

	return toLineResponse(line), nil
}

// DeleteLine removes a line from an owned quote.
func (s *Service) DeleteLine(ctx context.Context, userID, quoteID, lineID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, userID, quoteID); err != nil {
		return err
	}
	return s.repo.DeleteLine(ctx, quoteID, lineID)
}

// FormatQuoteNumber renders a quote number: "T" + year + zero-padded
// per-year sequence.
func FormatQuoteNumber(year, seq int) string {
	return fmt.Sprintf("T%d-%04d", year, seq)
}

func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toQuoteResponse(q repository.Quote) transport.QuoteResponse {
	return transport.QuoteResponse{
		ID:                 q.ID.String(),
		QuoteNumber:        q.QuoteNumber,
		CustomerName:       q.CustomerName,
		CustomerEmail:      q.CustomerEmail,
		CustomerAddress:    q.CustomerAddress,
		ProjectName:        q.ProjectName,
		ProjectDescription: q.ProjectDescription,
		Reference:          q.Reference,
		ValidUntil:         q.ValidUntil,
		Status:             q.Status,
		MarkupPercent:      q.MarkupPercent,
		Notes:              q.Notes,
		Terms:              q.Terms,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

func toLineResponses(lines []repository.Line) []transport.LineResponse {
	result := make([]transport.LineResponse, 0, len(lines))
	for _, line := range lines {
		result = append(result, toLineResponse(line))
	}
	return result
}

func toLineResponse(line repository.Line) transport.LineResponse {
	var costItemID *string
	if line.CostItemID != nil {
		id := line.CostItemID.String()
		costItemID = &id
	}

	return transport.LineResponse{
		ID:           line.ID.String(),
		CostItemID:   costItemID,
		ItemName:     line.ItemName,
		CategoryType: line.CategoryType,
		Description:  line.Description,
		Quantity:     line.Quantity,
		Unit:         line.Unit,
		UnitPrice:    line.UnitPrice,
		LineMarkup:   line.LineMarkup,
		LineTotal:    line.LineTotal,
		SortOrder:    line.SortOrder,
	}
}
