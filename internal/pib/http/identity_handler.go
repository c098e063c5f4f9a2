// Package http provides HTTP handlers for credential store operations.
// Identities, keys, and certificates are addressed by their NDN names, which
// are passed as query parameters or JSON fields since they contain slashes.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pib/internal/httputil"
	"github.com/allisson/pib/internal/ndn"
	"github.com/allisson/pib/internal/pib/http/dto"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
	customValidation "github.com/allisson/pib/internal/validation"
)

// IdentityHandler handles HTTP requests for identity operations.
type IdentityHandler struct {
	pibUseCase pibUseCase.PibUseCase
	logger     *slog.Logger
}

// NewIdentityHandler creates a new identity handler with required dependencies.
func NewIdentityHandler(useCase pibUseCase.PibUseCase, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		pibUseCase: useCase,
		logger:     logger,
	}
}

// parseNameQuery extracts and parses a required NDN name query parameter.
func parseNameQuery(c *gin.Context, param string) (ndn.Name, bool) {
	value := c.Query(param)
	if value == "" {
		return ndn.Name{}, false
	}
	name, err := ndn.ParseName(value)
	if err != nil {
		return ndn.Name{}, false
	}
	return name, true
}

// AddHandler registers an identity. Registering an existing identity is a no-op.
// POST /v1/identities
// Returns 201 Created.
func (h *IdentityHandler) AddHandler(c *gin.Context) {
	var req dto.AddIdentityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	name, err := ndn.ParseName(req.Name)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.pibUseCase.AddIdentity(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNameToResponse(name))
}

// ExistsHandler reports whether an identity is registered.
// GET /v1/identities?name=/alice
// Returns 200 OK with an exists flag.
func (h *IdentityHandler) ExistsHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	exists, err := h.pibUseCase.IdentityExists(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// GetDefaultHandler retrieves the default identity name.
// GET /v1/identities/default
// Returns 200 OK, or 404 when no default identity is set.
func (h *IdentityHandler) GetDefaultHandler(c *gin.Context) {
	name, err := h.pibUseCase.DefaultIdentity(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNameToResponse(name))
}

// SetDefaultHandler selects the default identity, registering it if needed.
// PUT /v1/identities/default
// Returns 204 No Content.
func (h *IdentityHandler) SetDefaultHandler(c *gin.Context) {
	var req dto.SetDefaultIdentityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	name, err := ndn.ParseName(req.Name)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.pibUseCase.SetDefaultIdentity(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeleteHandler removes an identity together with its keys and certificates.
// DELETE /v1/identities?name=/alice
// Returns 204 No Content.
func (h *IdentityHandler) DeleteHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	if err := h.pibUseCase.DeleteIdentity(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
