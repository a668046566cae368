// Package catalog provides the cost catalog bounded context module:
// shared cost categories and the priced items quote lines draw from.
package catalog

import (
	"kalkyle/internal/catalog/handler"
	"kalkyle/internal/catalog/repository"
	"kalkyle/internal/catalog/service"
	apphttp "kalkyle/internal/http"
	"kalkyle/platform/logger"
	"kalkyle/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module with all its dependencies.
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
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	categories := ctx.Protected.Group("/categories")
	categories.GET("", m.handler.ListCategories)
	categories.GET("/:id", m.handler.GetCategory)

	items := ctx.Protected.Group("/cost-items")
	items.GET("", m.handler.ListItems)
	items.GET("/grouped", m.handler.ListGrouped)
	items.GET("/:id", m.handler.GetItem)

	adminItems := ctx.Admin.Group("/cost-items")
	adminItems.POST("", m.handler.CreateItem)
	adminItems.PUT("/:id", m.handler.UpdateItem)
	adminItems.DELETE("/:id", m.handler.DeleteItem)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
