package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kalkyle/internal/quotes/service"
	"kalkyle/internal/quotes/transport"
	"kalkyle/platform/httpkit"
	"kalkyle/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidQuoteID   = "invalid quote ID"
	msgInvalidLineID    = "invalid line ID"
)

// Handler handles HTTP requests for quotes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create creates a new quote.
// POST /api/v1/quotes
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateQuoteRequest
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

// List returns the caller's quotes, newest first.
// GET /api/v1/quotes?status=draft
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ListQuotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), identity.UserID(), req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one quote with its lines.
// GET /api/v1/quotes/:id
func (h *Handler) Get(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), identity.UserID(), quoteID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update applies a partial update to a quote.
// PUT /api/v1/quotes/:id
func (h *Handler) Update(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}

	var req transport.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), identity.UserID(), quoteID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a quote and its lines.
// DELETE /api/v1/quotes/:id
func (h *Handler) Delete(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), identity.UserID(), quoteID)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Tilbud slettet"})
}

// AddLine appends a cost line to a quote.
// POST /api/v1/quotes/:id/lines
func (h *Handler) AddLine(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
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

	result, err := h.svc.AddLine(c.Request.Context(), identity.UserID(), quoteID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateLine applies a partial update to a quote line.
// PUT /api/v1/quotes/:id/lines/:lineId
func (h *Handler) UpdateLine(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
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

	result, err := h.svc.UpdateLine(c.Request.Context(), identity.UserID(), quoteID, lineID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteLine removes a quote line.
// DELETE /api/v1/quotes/:id/lines/:lineId
func (h *Handler) DeleteLine(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLineID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteLine(c.Request.Context(), identity.UserID(), quoteID, lineID)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Tilbudslinje slettet"})
}

// Summary returns the computed totals of a quote.
// GET /api/v1/quotes/:id/summary
func (h *Handler) Summary(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Summary(c.Request.Context(), identity.UserID(), quoteID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ExportPDF streams the quote as a PDF download.
// GET /api/v1/quotes/:id/pdf?detailed=true
func (h *Handler) ExportPDF(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}
	detailed := c.Query("detailed") == "true"

	filename, data, err := h.svc.ExportPDF(c.Request.Context(), identity.UserID(), quoteID, detailed)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Send emails the quote PDF to the customer and marks the quote sent.
// POST /api/v1/quotes/:id/send
func (h *Handler) Send(c *gin.Context) {
	identity, quoteID, ok := h.quoteScope(c)
	if !ok {
		return
	}

	quoteNumber, err := h.svc.Send(c.Request.Context(), identity.UserID(), quoteID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Tilbud " + quoteNumber + " sendt"})
}

func (h *Handler) quoteScope(c *gin.Context) (httpkit.Identity, uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return nil, uuid.Nil, false
	}
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return nil, uuid.Nil, false
	}
	return identity, quoteID, true
}
