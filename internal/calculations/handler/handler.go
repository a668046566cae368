package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kalkyle/internal/calculations/service"
	"kalkyle/internal/calculations/transport"
	"kalkyle/platform/httpkit"
	"kalkyle/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidCalcID    = "invalid calculation ID"
	msgInvalidLineID    = "invalid line ID"
)

// Handler handles HTTP requests for calculations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new calculations handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create creates a new calculation.
// POST /api/v1/calculations
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List returns the caller's calculations, newest first.
// GET /api/v1/calculations
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.List(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one calculation with its lines.
// GET /api/v1/calculations/:id
func (h *Handler) Get(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), identity.UserID(), calcID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update applies a partial update to a calculation.
// PUT /api/v1/calculations/:id
func (h *Handler) Update(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}

	var req transport.UpdateCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), identity.UserID(), calcID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a calculation and its lines.
// DELETE /api/v1/calculations/:id
func (h *Handler) Delete(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), identity.UserID(), calcID)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Kalkyle slettet"})
}

// AddLine appends a cost line to a calculation.
// POST /api/v1/calculations/:id/lines
func (h *Handler) AddLine(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}

	var req transport.CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AddLine(c.Request.Context(), identity.UserID(), calcID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateLine applies a partial update to a calculation line.
// PUT /api/v1/calculations/:id/lines/:lineId
func (h *Handler) UpdateLine(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLineID, nil)
		return
	}

	var req transport.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateLine(c.Request.Context(), identity.UserID(), calcID, lineID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteLine removes a calculation line.
// DELETE /api/v1/calculations/:id/lines/:lineId
func (h *Handler) DeleteLine(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLineID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteLine(c.Request.Context(), identity.UserID(), calcID, lineID)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Kalkylelinje slettet"})
}

// Summary returns the margin-target summary of a calculation.
// GET /api/v1/calculations/:id/summary
func (h *Handler) Summary(c *gin.Context) {
	identity, calcID, ok := h.calcScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Summary(c.Request.Context(), identity.UserID(), calcID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) calcScope(c *gin.Context) (httpkit.Identity, uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return nil, uuid.Nil, false
	}
	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCalcID, nil)
		return nil, uuid.Nil, false
	}
	return identity, calcID, true
}
