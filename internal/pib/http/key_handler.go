package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pib/internal/httputil"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
	"github.com/allisson/pib/internal/pib/http/dto"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
	customValidation "github.com/allisson/pib/internal/validation"
)

// KeyHandler handles HTTP requests for public key operations.
type KeyHandler struct {
	pibUseCase pibUseCase.PibUseCase
	logger     *slog.Logger
}

// NewKeyHandler creates a new key handler with required dependencies.
func NewKeyHandler(useCase pibUseCase.PibUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		pibUseCase: useCase,
		logger:     logger,
	}
}

// AddHandler registers a public key, creating the owning identity if needed.
// POST /v1/keys
// Returns 201 Created, or 409 Conflict when the key already exists.
func (h *KeyHandler) AddHandler(c *gin.Context) {
	var req dto.AddKeyRequest

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

	keyType, ok := pibDomain.ParseKeyType(req.KeyType)
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("unknown key type: %s", req.KeyType),
			h.logger,
		)
		return
	}

	publicKey, err := base64.StdEncoding.DecodeString(req.PublicKey)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid base64 public key: %w", err),
			h.logger,
		)
		return
	}

	if err := h.pibUseCase.AddKey(c.Request.Context(), name, keyType, publicKey); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNameToResponse(name))
}

// GetHandler retrieves a stored public key by key name.
// GET /v1/keys?name=/alice/ksk-1
// Returns 200 OK with the base64 public key, or 404 when absent.
func (h *KeyHandler) GetHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	publicKey, err := h.pibUseCase.Key(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if publicKey == nil {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Error:   "not_found",
			Message: "The requested key was not found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyToResponse(name, publicKey))
}

// ExistsHandler reports whether a key is registered.
// GET /v1/keys/exists?name=/alice/ksk-1
// Returns 200 OK with an exists flag.
func (h *KeyHandler) ExistsHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	exists, err := h.pibUseCase.KeyExists(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// ListHandler lists key names under an identity, filtered on default status.
// GET /v1/keys/names?identity=/alice&default=false
// Returns 200 OK with the matching key names.
func (h *KeyHandler) ListHandler(c *gin.Context) {
	identity, ok := parseNameQuery(c, "identity")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("identity query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	isDefault := c.DefaultQuery("default", "false") == "true"

	names, err := h.pibUseCase.ListKeyNames(c.Request.Context(), identity, isDefault)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNamesToListResponse(names))
}

// UpdateStatusHandler activates or deactivates a key.
// PATCH /v1/keys/status
// Returns 204 No Content.
func (h *KeyHandler) UpdateStatusHandler(c *gin.Context) {
	var req dto.UpdateKeyStatusRequest

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

	if err := h.pibUseCase.UpdateKeyStatus(c.Request.Context(), name, *req.Active); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// GetDefaultHandler retrieves the default key name for an identity.
// GET /v1/keys/default?identity=/alice
// Returns 200 OK, or 404 when no default key is set.
func (h *KeyHandler) GetDefaultHandler(c *gin.Context) {
	identity, ok := parseNameQuery(c, "identity")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("identity query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	name, err := h.pibUseCase.DefaultKeyName(c.Request.Context(), identity)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNameToResponse(name))
}

// SetDefaultHandler selects the default key for its identity. When the
// request carries an identity, the key name must fall under it.
// PUT /v1/keys/default
// Returns 204 No Content.
func (h *KeyHandler) SetDefaultHandler(c *gin.Context) {
	var req dto.SetDefaultKeyRequest

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

	identityCheck := name.Prefix(-1)
	if req.Identity != "" {
		identityCheck, err = ndn.ParseName(req.Identity)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
	}

	if err := h.pibUseCase.SetDefaultKey(c.Request.Context(), name, identityCheck); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeleteHandler removes a key together with its certificates.
// DELETE /v1/keys?name=/alice/ksk-1
// Returns 204 No Content.
func (h *KeyHandler) DeleteHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	if err := h.pibUseCase.DeleteKey(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
