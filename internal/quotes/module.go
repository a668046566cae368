// Package quotes provides the quotes bounded context module: per-user
// quotes with cost lines, pricing summaries, PDF export and sending.
package quotes

import (
	apphttp "kalkyle/internal/http"
	"kalkyle/internal/quotes/handler"
	"kalkyle/internal/quotes/repository"
	"kalkyle/internal/quotes/service"
	"kalkyle/platform/events"
	"kalkyle/platform/logger"
	"kalkyle/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the quotes module with all its dependencies.
// Email sending and PDF archiving are optional and wired afterwards via
// SetEmailSender and SetPDFArchiver when configured.
func NewModule(pool *pgxpool.Pool, settings service.SettingsReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, settings, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetEmailSender wires the outbound email dependency used by quote sending.
func (m *Module) SetEmailSender(sender service.EmailSender) {
	m.service.SetEmailSender(sender)
}

// SetPDFArchiver wires the object storage dependency used to archive exports.
func (m *Module) SetPDFArchiver(archiver service.PDFArchiver) {
	m.service.SetPDFArchiver(archiver)
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	quotes := ctx.Protected.Group("/quotes")
	quotes.GET("", m.handler.List)
	quotes.POST("", m.handler.Create)
	quotes.GET("/:id", m.handler.Get)
	quotes.PUT("/:id", m.handler.Update)
	quotes.DELETE("/:id", m.handler.Delete)

	quotes.POST("/:id/lines", m.handler.AddLine)
	quotes.PUT("/:id/lines/:lineId", m.handler.UpdateLine)
	quotes.DELETE("/:id/lines/:lineId", m.handler.DeleteLine)

	quotes.GET("/:id/summary", m.handler.Summary)
	quotes.GET("/:id/pdf", m.handler.ExportPDF)
	quotes.POST("/:id/send", m.handler.Send)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
