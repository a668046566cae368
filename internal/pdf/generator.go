// Package pdf provides quote PDF generation using maroto/v2.
// The document follows the Norwegian quote (tilbud) layout: company
// header, customer and project block, cost lines or category subtotals,
// totals with markup and VAT, notes and terms.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 30, Green: 64, Blue: 175}   // blue-800
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorGreen     = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorRed       = &props.Color{Red: 220, Green: 38, Blue: 38}   // red-600
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// CategoryOrder is the fixed presentation order of cost categories.
var CategoryOrder = []string{"labor", "material", "consumable", "transport", "ndt"}

// CategoryLabels maps category types to their Norwegian section headers.
var CategoryLabels = map[string]string{
	"labor":      "Arbeid",
	"material":   "Materialer",
	"consumable": "Forbruksmateriell",
	"transport":  "Transport/Rigg",
	"ndt":        "NDT-tjenester",
}

// ── Data structs ────────────────────────────────────────────────────────

// CompanyInfo holds the issuing company's letterhead fields.
type CompanyInfo struct {
	Name       string
	OrgNumber  string
	Address    string
	PostalCode string
	City       string
	Phone      string
	Email      string
	Website    string
}

// LineItem is one cost line on the quote.
type LineItem struct {
	CategoryType string
	Description  string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	LineTotal    float64
}

// Totals holds the computed quote totals rendered in the totals block.
type Totals struct {
	TotalCost      float64
	MarkupPercent  float64
	Markup         float64
	TotalExVat     float64
	VatPercent     float64
	Vat            float64
	TotalIncVat    float64
	CategoryTotals map[string]float64
}

// QuoteDocument holds all data needed to render a quote PDF.
type QuoteDocument struct {
	QuoteNumber        string
	Status             string
	CreatedAt          time.Time
	ValidUntil         *time.Time
	CustomerName       string
	CustomerEmail      *string
	CustomerAddress    *string
	ProjectName        string
	ProjectDescription *string
	Reference          *string
	Notes              *string
	Terms              *string
	Company            CompanyInfo

	// Detailed renders every line grouped under its category header;
	// otherwise only category subtotals appear.
	Detailed bool
	Lines    []LineItem
	Totals   Totals
}

// GenerateQuotePDF renders the quote document to PDF bytes.
func GenerateQuotePDF(doc QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildFooter(doc)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildHeader(doc)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))

	m.AddRows(buildMetaBlock(doc)...)
	m.AddRows(row.New(6))

	if doc.Detailed {
		m.AddRows(buildDetailedLines(doc)...)
	} else {
		m.AddRows(buildCategorySummary(doc)...)
	}
	m.AddRows(row.New(4))

	m.AddRows(buildTotalsBlock(doc.Totals)...)

	if doc.Notes != nil && *doc.Notes != "" {
		m.AddRows(row.New(6))
		m.AddRows(buildTextSection("MERKNADER", *doc.Notes)...)
	}

	if doc.Terms != nil && *doc.Terms != "" {
		m.AddRows(row.New(6))
		m.AddRows(buildTextSection("VILKÅR", *doc.Terms)...)
	}

	rendered, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return rendered.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildHeader(doc QuoteDocument) []core.Row {
	companyName := doc.Company.Name
	if companyName == "" {
		companyName = "Tilbud"
	}

	nameCol := col.New(6).Add(
		text.New(companyName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   4,
		}),
	)

	titleCol := col.New(6).Add(
		text.New("TILBUD", props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorAccent,
		}),
		text.New(doc.QuoteNumber, props.Text{
			Size:  11,
			Align: align.Right,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	return []core.Row{row.New(20).Add(nameCol, titleCol)}
}

// ── Meta block: company, customer, quote details ────────────────────────

func buildMetaBlock(doc QuoteDocument) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("FRA", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(3).Add(text.New("TIL", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(3).Add(text.New("TILBUDSDETALJER", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Align: align.Right})),
	))

	dateStr := doc.CreatedAt.Format("02.01.2006")
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(doc.Company.Name, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(3).Add(text.New(doc.CustomerName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(3).Add(text.New("Dato: "+dateStr, props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	validityStr := ""
	if doc.ValidUntil != nil {
		validityStr = "Gyldig til: " + doc.ValidUntil.Format("02.01.2006")
	}
	customerAddr := ""
	if doc.CustomerAddress != nil {
		customerAddr = *doc.CustomerAddress
	}
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(doc.Company.Address, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New(customerAddr, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New(validityStr, props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	postalCity := strings.TrimSpace(doc.Company.PostalCode + " " + doc.Company.City)
	customerEmail := ""
	if doc.CustomerEmail != nil {
		customerEmail = *doc.CustomerEmail
	}
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(postalCity, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New(customerEmail, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New("Status: "+translateStatus(doc.Status), props.Text{Size: 8, Style: fontstyle.Bold, Color: statusColor(doc.Status), Align: align.Right})),
	))

	projectLine := "Prosjekt: " + doc.ProjectName
	if doc.Reference != nil && *doc.Reference != "" {
		projectLine += "  |  Referanse: " + *doc.Reference
	}
	rows = append(rows, row.New(5).Add(
		col.New(12).Add(text.New(projectLine, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary})),
	))

	if doc.ProjectDescription != nil && *doc.ProjectDescription != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(*doc.ProjectDescription, props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	return rows
}

// ── Detailed mode: lines grouped per category ───────────────────────────

func buildDetailedLines(doc QuoteDocument) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("KOSTNADSLINJER", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(5).Add(text.New("Beskrivelse", headerStyle)),
		col.New(2).Add(text.New("Antall", headerStyleRight)),
		col.New(1).Add(text.New("Enhet", headerStyle)),
		col.New(2).Add(text.New("Enhetspris", headerStyleRight)),
		col.New(2).Add(text.New("Sum", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	idx := 0
	for _, categoryType := range CategoryOrder {
		lines := linesOfCategory(doc.Lines, categoryType)
		if len(lines) == 0 {
			continue
		}

		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New(categoryLabel(categoryType), props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
				Top:   1,
			})),
		))

		for _, line := range lines {
			rows = append(rows, buildLineRow(line, idx))
			idx++
		}
	}

	return rows
}

func buildLineRow(line LineItem, idx int) core.Row {
	normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	r := row.New(7).Add(
		col.New(5).Add(text.New(line.Description, normalStyle)),
		col.New(2).Add(text.New(formatQuantity(line.Quantity), rightStyle)),
		col.New(1).Add(text.New(line.Unit, normalStyle)),
		col.New(2).Add(text.New(formatNOK(line.UnitPrice), rightStyle)),
		col.New(2).Add(text.New(formatNOK(line.LineTotal), rightStyle)),
	)

	if idx%2 == 0 {
		r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
	}

	return r
}

// ── Summary mode: category subtotals only ───────────────────────────────

func buildCategorySummary(doc QuoteDocument) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("KOSTNADSSAMMENDRAG", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	idx := 0
	for _, categoryType := range CategoryOrder {
		total, ok := doc.Totals.CategoryTotals[categoryType]
		if !ok {
			continue
		}

		r := row.New(7).Add(
			col.New(9).Add(text.New(categoryLabel(categoryType), props.Text{Size: 8.5, Color: colorPrimary, Top: 1})),
			col.New(3).Add(text.New(formatNOK(total), props.Text{Size: 8.5, Color: colorPrimary, Align: align.Right, Top: 1})),
		)
		if idx%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
		idx++
	}

	return rows
}

// ── Totals block ────────────────────────────────────────────────────────

func buildTotalsBlock(totals Totals) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	rows = append(rows, row.New(3))

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	addLine := func(label string, value float64) {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(label, labelStyle)),
			col.New(3).Add(text.New(formatNOK(value), valueStyle)),
		))
	}

	addLine("Sum kostnad", totals.TotalCost)
	addLine(fmt.Sprintf("Påslag (%s%%)", formatPercent(totals.MarkupPercent)), totals.Markup)
	addLine("Sum eks. mva", totals.TotalExVat)
	addLine(fmt.Sprintf("MVA (%s%%)", formatPercent(totals.VatPercent)), totals.Vat)

	rows = append(rows, row.New(2))
	rows = append(rows, row.New(10).Add(
		col.New(9).Add(text.New("TOTALT INKL. MVA", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
		col.New(3).Add(text.New(formatNOK(totals.TotalIncVat), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Full,
		BorderColor:     colorBorder,
	}))

	return rows
}

// ── Notes / terms sections ──────────────────────────────────────────────

func buildTextSection(title, body string) []core.Row {
	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New(title, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
		row.New(12).Add(
			col.New(12).Add(text.New(body, props.Text{
				Size:  8,
				Color: colorSecondary,
				Top:   1,
			})),
		),
	}
}

// ── Registered footer (repeats on every page) ───────────────────────────

func buildFooter(doc QuoteDocument) core.Row {
	parts := []string{doc.Company.Name}
	if doc.Company.OrgNumber != "" {
		parts = append(parts, "Org.nr: "+doc.Company.OrgNumber)
	}
	if doc.Company.Phone != "" {
		parts = append(parts, "Tlf: "+doc.Company.Phone)
	}
	if doc.Company.Email != "" {
		parts = append(parts, doc.Company.Email)
	}
	if doc.Company.Website != "" {
		parts = append(parts, doc.Company.Website)
	}
	footerText := joinParts(parts, "  ·  ")

	return row.New(10).Add(
		col.New(12).Add(
			text.New(footerText, props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

// ── Helpers ─────────────────────────────────────────────────────────────

func categoryLabel(categoryType string) string {
	if label, ok := CategoryLabels[categoryType]; ok {
		return label
	}
	return categoryType
}

func linesOfCategory(lines []LineItem, categoryType string) []LineItem {
	var result []LineItem
	for _, line := range lines {
		if line.CategoryType == categoryType {
			result = append(result, line)
		}
	}
	return result
}

func statusColor(status string) *props.Color {
	switch status {
	case "accepted":
		return colorGreen
	case "rejected":
		return colorRed
	case "sent":
		return colorAccent
	default:
		return colorSecondary
	}
}

func translateStatus(status string) string {
	switch status {
	case "draft":
		return "Utkast"
	case "sent":
		return "Sendt"
	case "accepted":
		return "Akseptert"
	case "rejected":
		return "Avslått"
	default:
		return status
	}
}

/// formatNOK renders an amount the nb-NO way: space-grouped thousands,
// comma decimals, rounded to two digits for display only.
func formatNOK(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	whole := fmt.Sprintf("%.2f", value)
	intPart := whole[:len(whole)-3]
	decPart := whole[len(whole)-2:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(' ')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "," + decPart + " kr"
	if negative {
		return "-" + result
	}
	return result
}

func formatQuantity(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")
	return strings.ReplaceAll(formatted, ".", ",")
}

func formatPercent(value float64) string {
	formatted := fmt.Sprintf("%.1f", value)
	formatted = strings.TrimSuffix(formatted, ".0")
	return strings.ReplaceAll(formatted, ".", ",")
}

func joinParts(parts []string, sep string) string {
	result := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += p
	}
	return result
}
