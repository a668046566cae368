// Package service implements the catalog use cases.
package service

import (
	"context"

	"github.com/google/uuid"

	"kalkyle/internal/catalog/repository"
	"kalkyle/internal/catalog/transport"
	"kalkyle/platform/apperr"
	"kalkyle/platform/logger"
)

// Service implements the catalog use cases.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListCategories returns all cost categories.
func (s *Service) ListCategories(ctx context.Context) ([]transport.CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transport.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		result = append(result, toCategoryResponse(cat))
	}
	return result, nil
}

// GetCategory returns a single cost category.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (transport.CategoryResponse, error) {
	cat, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	return toCategoryResponse(cat), nil
}

// ListItems returns catalog items, optionally filtered to one category.
func (s *Service) ListItems(ctx context.Context, categoryID *uuid.UUID) ([]transport.ItemResponse, error) {
	items, err := s.repo.ListItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	result := make([]transport.ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toItemResponse(item))
	}
	return result, nil
}

// ListGrouped returns every category with its items, preserving category order.
// Categories without items are included with an empty slice so pickers can
// render the full structure.
func (s *Service) ListGrouped(ctx context.Context) ([]transport.GroupedItemsResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, nil)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]transport.ItemResponse)
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], toItemResponse(item))
	}

	result := make([]transport.GroupedItemsResponse, 0, len(categories))
	for _, cat := range categories {
		group := transport.GroupedItemsResponse{
			Category: toCategoryResponse(cat),
			Items:    byCategory[cat.ID],
		}
		if group.Items == nil {
			group.Items = make([]transport.ItemResponse, 0)
		}
		result = append(result, group)
	}
	return result, nil
}

// GetItem returns a single catalog item.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (transport.ItemResponse, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	return toItemResponse(item), nil
}

// CreateItem creates a catalog item after verifying the category exists.
func (s *Service) CreateItem(ctx context.Context, req transport.CreateItemRequest) (transport.ItemResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return transport.ItemResponse{}, apperr.Validation("Ugyldig kategori")
	}

	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	if !exists {
		return transport.ItemResponse{}, apperr.NotFound("Kategori ikke funnet")
	}

	item, err := s.repo.CreateItem(ctx, repository.CreateItemParams{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		NdtMethod:   req.NdtMethod,
		NdtLevel:    req.NdtLevel,
	})
	if err != nil {
		return transport.ItemResponse{}, err
	}

	s.log.Info("catalog item created", "item_id", item.ID.String(), "category", item.CategoryType)
	return toItemResponse(item), nil
}

// UpdateItem applies a partial update to a catalog item.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req transport.UpdateItemRequest) (transport.ItemResponse, error) {
	params := repository.UpdateItemParams{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		NdtMethod:   req.NdtMethod,
		NdtLevel:    req.NdtLevel,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return transport.ItemResponse{}, apperr.Validation("Ugyldig kategori")
		}
		exists, err := s.repo.CategoryExists(ctx, categoryID)
		if err != nil {
			return transport.ItemResponse{}, err
		}
		if !exists {
			return transport.ItemResponse{}, apperr.NotFound("Kategori ikke funnet")
		}
		params.CategoryID = &categoryID
	}

	item, err := s.repo.UpdateItem(ctx, id, params)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	return toItemResponse(item), nil
}

// DeleteItem removes a catalog item.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

func toCategoryResponse(cat repository.Category) transport.CategoryResponse {
	return transport.CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Type:      cat.Type,
		SortOrder: cat.SortOrder,
	}
}

func toItemResponse(item repository.Item) transport.ItemResponse {
	return transport.ItemResponse{
		ID:           item.ID.String(),
		CategoryID:   item.CategoryID.String(),
		CategoryName: item.CategoryName,
		CategoryType: item.CategoryType,
		Name:         item.Name,
		Description:  item.Description,
		Unit:         item.Unit,
		UnitPrice:    item.UnitPrice,
		NdtMethod:    item.NdtMethod,
		NdtLevel:     item.NdtLevel,
		CreatedAt:    item.CreatedAt,
	}
}
