// Package service implements the margin-target calculation use cases.
package service

import (
	"context"

	"github.com/google/uuid"

	"kalkyle/internal/calculations/repository"
	"kalkyle/internal/calculations/transport"
	"kalkyle/platform/apperr"
	"kalkyle/platform/logger"
)

// DefaultTargetMarginPercent applies when a calculation is created without
// an explicit target.
const DefaultTargetMarginPercent = 15.0

// Service implements the calculation use cases.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new calculations service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create creates a new calculation for the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateCalculationRequest) (transport.CalculationResponse, error) {
	margin := DefaultTargetMarginPercent
	if req.TargetMarginPercent != nil {
		margin = *req.TargetMarginPercent
	}

	calc, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:              userID,
		Name:                req.Name,
		Description:         req.Description,
		TargetMarginPercent: margin,
	})
	if err != nil {
		return transport.CalculationResponse{}, err
	}

	s.log.Info("calculation created",
		"calculation_id", calc.ID.String(),
		"user_id", userID.String(),
	)
	return toResponse(calc), nil
}

// List returns the user's calculations, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]transport.CalculationListItemResponse, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CalculationListItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, transport.CalculationListItemResponse{
			CalculationResponse: toResponse(item.Calculation),
			TotalCost:           item.TotalCost,
			LineCount:           item.LineCount,
		})
	}
	return out, nil
}

// Get returns one calculation with its lines.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (transport.CalculationDetailResponse, error) {
	calc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return transport.CalculationDetailResponse{}, err
	}

	lines, err := s.repo.ListLines(ctx, calc.ID)
	if err != nil {
		return transport.CalculationDetailResponse{}, err
	}

	return transport.CalculationDetailResponse{
		CalculationResponse: toResponse(calc),
		Lines:               toLineResponses(lines),
	}, nil
}

// Update applies a partial update to a calculation.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req transport.UpdateCalculationRequest) (transport.CalculationResponse, error) {
	calc, err := s.repo.Update(ctx, userID, id, repository.UpdateParams{
		Name:                req.Name,
		Description:         req.Description,
		TargetMarginPercent: req.TargetMarginPercent,
	})
	if err != nil {
		return transport.CalculationResponse{}, err
	}
	return toResponse(calc), nil
}

// Delete removes a calculation and its lines.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// AddLine appends a cost line to a calculation owned by the user.
func (s *Service) AddLine(ctx context.Context, userID, calculationID uuid.UUID, req transport.CreateLineRequest) (transport.LineResponse, error) {
	if _, err := s.repo.GetByID(ctx, userID, calculationID); err != nil {
		return transport.LineResponse{}, err
	}

	costItemID, err := parseOptionalUUID(req.CostItemID)
	if err != nil {
		return transport.LineResponse{}, err
	}

	line, err := s.repo.CreateLine(ctx, calculationID, repository.CreateLineParams{
		CostItemID:  costItemID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
	})
	if err != nil {
		return transport.LineResponse{}, err
	}
	return toLineResponse(line), nil
}

// UpdateLine applies a partial update to a calculation line.
func (s *Service) UpdateLine(ctx context.Context, userID, calculationID, lineID uuid.UUID, req transport.UpdateLineRequest) (transport.LineResponse, error) {
	if _, err := s.repo.GetByID(ctx, userID, calculationID); err != nil {
		return transport.LineResponse{}, err
	}

	costItemID, err := parseOptionalUUID(req.CostItemID)
	if err != nil {
		return transport.LineResponse{}, err
	}

	line, err := s.repo.UpdateLine(ctx, calculationID, lineID, repository.UpdateLineParams{
		CostItemID:  costItemID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return transport.LineResponse{}, err
	}
	return toLineResponse(line), nil
}

// DeleteLine removes a calculation line.
func (s *Service) DeleteLine(ctx context.Context, userID, calculationID, lineID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, userID, calculationID); err != nil {
		return err
	}
	return s.repo.DeleteLine(ctx, calculationID, lineID)
}

// Summary computes the margin-target summary of an owned calculation.
func (s *Service) Summary(ctx context.Context, userID, calculationID uuid.UUID) (Summary, error) {
	calc, err := s.repo.GetByID(ctx, userID, calculationID)
	if err != nil {
		return Summary{}, err
	}

	lines, err := s.repo.ListLines(ctx, calc.ID)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(lines, calc.TargetMarginPercent), nil
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apperr.Validation("Ugyldig kostnadselement")
	}
	return &id, nil
}

func toResponse(c repository.Calculation) transport.CalculationResponse {
	return transport.CalculationResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		Description:         c.Description,
		TargetMarginPercent: c.TargetMarginPercent,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func toLineResponse(l repository.Line) transport.LineResponse {
	var costItemID *string
	if l.CostItemID != nil {
		id := l.CostItemID.String()
		costItemID = &id
	}

	return transport.LineResponse{
		ID:          l.ID.String(),
		CostItemID:  costItemID,
		ItemName:    l.ItemName,
		Description: l.Description,
		Quantity:    l.Quantity,
		Unit:        l.Unit,
		UnitCost:    l.UnitCost,
		SortOrder:   l.SortOrder,
	}
}

func toLineResponses(lines []repository.Line) []transport.LineResponse {
	out := make([]transport.LineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, toLineResponse(line))
	}
	return out
}
