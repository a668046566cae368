// Package calculations provides the margin-target calculator bounded
// context module: cost worksheets that answer what a job must sell for
// to hit a margin target.
package calculations

import (
	"kalkyle/internal/calculations/handler"
	"kalkyle/internal/calculations/repository"
	"kalkyle/internal/calculations/service"
	apphttp "kalkyle/internal/http"
	"kalkyle/platform/logger"
	"kalkyle/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the calculations bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the calculations module with all its
// dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calculations"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts calculation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	calcs := ctx.Protected.Group("/calculations")
	calcs.GET("", m.handler.List)
	calcs.POST("", m.handler.Create)
	calcs.GET("/:id", m.handler.Get)
	calcs.PUT("/:id", m.handler.Update)
	calcs.DELETE("/:id", m.handler.Delete)

	calcs.POST("/:id/lines", m.handler.AddLine)
	calcs.PUT("/:id/lines/:lineId", m.handler.UpdateLine)
	calcs.DELETE("/:id/lines/:lineId", m.handler.DeleteLine)

	calcs.GET("/:id/summary", m.handler.Summary)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
