package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"kalkyle/internal/events"
	"kalkyle/internal/pdf"
	"kalkyle/internal/quotes/repository"
	"kalkyle/internal/quotes/transport"
	"kalkyle/platform/logger"
)

type stubRepo struct {
	repository.Repository

	nextSeq     int
	seqYear     int
	created     repository.CreateQuoteParams
	createdLine repository.CreateLineParams
	quote       repository.Quote
	line        repository.Line
}

func (r *stubRepo) NextSequence(_ context.Context, _ uuid.UUID, year int) (int, error) {
	r.seqYear = year
	r.nextSeq++
	return r.nextSeq, nil
}

func (r *stubRepo) Create(_ context.Context, params repository.CreateQuoteParams) (repository.Quote, error) {
	r.created = params
	return repository.Quote{
		ID:            uuid.New(),
		UserID:        params.UserID,
		QuoteNumber:   params.QuoteNumber,
		CustomerName:  params.CustomerName,
		ProjectName:   params.ProjectName,
		ValidUntil:    params.ValidUntil,
		Status:        params.Status,
		MarkupPercent: params.MarkupPercent,
		Terms:         params.Terms,
	}, nil
}

func (r *stubRepo) GetByID(_ context.Context, _, _ uuid.UUID) (repository.Quote, error) {
	return r.quote, nil
}

func (r *stubRepo) CreateLine(_ context.Context, quoteID uuid.UUID, params repository.CreateLineParams) (repository.Line, error) {
	r.createdLine = params
	return repository.Line{
		ID:           uuid.New(),
		QuoteID:      quoteID,
		CategoryType: params.CategoryType,
		Description:  params.Description,
		Quantity:     params.Quantity,
		Unit:         params.Unit,
		UnitPrice:    params.UnitPrice,
		LineMarkup:   params.LineMarkup,
		LineTotal:    params.LineTotal,
	}, nil
}

func (r *stubRepo) GetLine(_ context.Context, _, _ uuid.UUID) (repository.Line, error) {
	return r.line, nil
}

func (r *stubRepo) UpdateLine(_ context.Context, quoteID, lineID uuid.UUID, params repository.UpdateLineParams) (repository.Line, error) {
	line := r.line
	if params.Quantity != nil {
		line.Quantity = *params.Quantity
	}
	if params.UnitPrice != nil {
		line.UnitPrice = *params.UnitPrice
	}
	if params.LineMarkup != nil {
		line.LineMarkup = *params.LineMarkup
	}
	if params.LineTotal != nil {
		line.LineTotal = *params.LineTotal
	}
	return line, nil
}

type stubSettings struct {
	defaults QuoteDefaults
}

func (s *stubSettings) QuoteDefaults(_ context.Context, _ uuid.UUID) (QuoteDefaults, error) {
	return s.defaults, nil
}

func (s *stubSettings) CompanyProfile(_ context.Context, _ uuid.UUID) (pdf.CompanyInfo, error) {
	return pdf.CompanyInfo{}, nil
}

func newTestService(repo repository.Repository, settings SettingsReader) *Service {
	return New(repo, settings, events.NewInMemoryBus(logger.New("test")), logger.New("test"))
}

func TestCreate_DefaultsFromSettings(t *testing.T) {
	terms := "Betaling innen 14 dager."
	repo := &stubRepo{}
	settings := &stubSettings{defaults: QuoteDefaults{
		DefaultTerms:        &terms,
		DefaultValidityDays: 30,
		VatPercent:          25,
	}}
	svc := newTestService(repo, settings)

	resp, err := svc.Create(context.Background(), uuid.New(), transport.CreateQuoteRequest{
		CustomerName: "Norsk Stål AS",
		ProjectName:  "Sveisekontroll tank 4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.created.Terms == nil || *repo.created.Terms != terms {
		t.Fatalf("expected settings terms to be applied, got %v", repo.created.Terms)
	}
	wantValid := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	if repo.created.ValidUntil == nil || *repo.created.ValidUntil != wantValid {
		t.Fatalf("expected valid until %s, got %v", wantValid, repo.created.ValidUntil)
	}
	if repo.created.Status != repository.StatusDraft {
		t.Fatalf("expected new quote to be draft, got %s", repo.created.Status)
	}
	if repo.created.MarkupPercent != 0 {
		t.Fatalf("expected default markup 0, got %v", repo.created.MarkupPercent)
	}
	if resp.QuoteNumber != FormatQuoteNumber(time.Now().Year(), 1) {
		t.Fatalf("unexpected quote number %s", resp.QuoteNumber)
	}
	if repo.seqYear != time.Now().Year() {
		t.Fatalf("expected sequence allocated for current year, got %d", repo.seqYear)
	}
}

func TestCreate_RequestOverridesDefaults(t *testing.T) {
	settingsTerms := "standard"
	ownTerms := "Egne vilkår"
	validUntil := "2026-12-31"
	markup := 12.5

	repo := &stubRepo{}
	settings := &stubSettings{defaults: QuoteDefaults{
		DefaultTerms:        &settingsTerms,
		DefaultValidityDays: 30,
		VatPercent:          25,
	}}
	svc := newTestService(repo, settings)

	_, err := svc.Create(context.Background(), uuid.New(), transport.CreateQuoteRequest{
		CustomerName:  "Kunde",
		ProjectName:   "Prosjekt",
		Terms:         &ownTerms,
		ValidUntil:    &validUntil,
		MarkupPercent: &markup,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.created.Terms == nil || *repo.created.Terms != ownTerms {
		t.Fatalf("expected request terms to win, got %v", repo.created.Terms)
	}
	if repo.created.ValidUntil == nil || *repo.created.ValidUntil != validUntil {
		t.Fatalf("expected request validity to win, got %v", repo.created.ValidUntil)
	}
	if repo.created.MarkupPercent != markup {
		t.Fatalf("expected markup %v, got %v", markup, repo.created.MarkupPercent)
	}
}

func TestCreate_SequenceIncrementsPerCall(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubSettings{defaults: QuoteDefaults{DefaultValidityDays: 30, VatPercent: 25}})

	first, err := svc.Create(context.Background(), uuid.New(), transport.CreateQuoteRequest{CustomerName: "A", ProjectName: "P"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(context.Background(), uuid.New(), transport.CreateQuoteRequest{CustomerName: "B", ProjectName: "P"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	year := time.Now().Year()
	if first.QuoteNumber != FormatQuoteNumber(year, 1) || second.QuoteNumber != FormatQuoteNumber(year, 2) {
		t.Fatalf("expected sequential numbers, got %s and %s", first.QuoteNumber, second.QuoteNumber)
	}
}

func TestAddLine_ComputesLineTotalServerSide(t *testing.T) {
	repo := &stubRepo{quote: repository.Quote{ID: uuid.New()}}
	svc := newTestService(repo, &stubSettings{defaults: QuoteDefaults{DefaultValidityDays: 30, VatPercent: 25}})

	resp, err := svc.AddLine(context.Background(), uuid.New(), repo.quote.ID, transport.CreateLineRequest{
		CategoryType: "ndt",
		Description:  "UT-kontroll sveis",
		Quantity:     4,
		Unit:         "time",
		UnitPrice:    950,
		LineMarkup:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := LineTotal(4, 950, 10)
	if repo.createdLine.LineTotal != want {
		t.Fatalf("expected stored line total %v, got %v", want, repo.createdLine.LineTotal)
	}
	if resp.LineTotal != want {
		t.Fatalf("expected response line total %v, got %v", want, resp.LineTotal)
	}
}

func TestUpdateLine_RecomputesTotalFromMergedValues(t *testing.T) {
	repo := &stubRepo{
		quote: repository.Quote{ID: uuid.New()},
		line: repository.Line{
			ID:           uuid.New(),
			CategoryType: "labor",
			Quantity:     2,
			UnitPrice:    800,
			LineMarkup:   0,
			LineTotal:    1600,
		},
	}
	svc := newTestService(repo, &stubSettings{defaults: QuoteDefaults{DefaultValidityDays: 30, VatPercent: 25}})

	newQty := 5.0
	resp, err := svc.UpdateLine(context.Background(), uuid.New(), repo.quote.ID, repo.line.ID, transport.UpdateLineRequest{
		Quantity: &newQty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := LineTotal(5, 800, 0)
	if resp.LineTotal != want {
		t.Fatalf("expected recomputed line total %v, got %v", want, resp.LineTotal)
	}
}
