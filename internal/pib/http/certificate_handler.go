package http

import (
	"encoding/base64"
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

// CertificateHandler handles HTTP requests for certificate operations.
type CertificateHandler struct {
	pibUseCase pibUseCase.PibUseCase
	logger     *slog.Logger
}

// NewCertificateHandler creates a new certificate handler with required dependencies.
func NewCertificateHandler(useCase pibUseCase.PibUseCase, logger *slog.Logger) *CertificateHandler {
	return &CertificateHandler{
		pibUseCase: useCase,
		logger:     logger,
	}
}

// AddHandler registers a certificate from its encoded wire, creating the
// owning identity if needed.
// POST /v1/certificates
// Returns 201 Created, or 409 Conflict when the certificate already exists.
func (h *CertificateHandler) AddHandler(c *gin.Context) {
	var req dto.AddCertificateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	wire, err := base64.StdEncoding.DecodeString(req.Certificate)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid base64 certificate: %w", err),
			h.logger,
		)
		return
	}

	cert, err := ndn.DecodeCertificate(wire)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid certificate encoding: %w", err),
			h.logger,
		)
		return
	}

	if err := h.pibUseCase.AddCertificate(c.Request.Context(), cert); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNameToResponse(cert.Name))
}

// GetHandler retrieves a stored certificate by name. Only allow_any=true is
// supported; without it the request is refused since validity filtering is
// not implemented.
// GET /v1/certificates?name=/alice/KEY/ksk-1/ID-CERT/1&allow_any=true
// Returns 200 OK with the base64 certificate wire, or 404 when absent.
func (h *CertificateHandler) GetHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	allowAny := c.DefaultQuery("allow_any", "false") == "true"

	cert, err := h.pibUseCase.Certificate(c.Request.Context(), name, allowAny)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if cert == nil {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Error:   "not_found",
			Message: "The requested certificate was not found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MapCertificateToResponse(cert))
}

// ExistsHandler reports whether a certificate is registered.
// GET /v1/certificates/exists?name=/alice/KEY/ksk-1/ID-CERT/1
// Returns 200 OK with an exists flag.
func (h *CertificateHandler) ExistsHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	exists, err := h.pibUseCase.CertificateExists(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// GetDefaultHandler retrieves the default certificate name for a key.
// GET /v1/certificates/default?key_name=/alice/ksk-1
// Returns 200 OK, or 404 when no default certificate is set.
func (h *CertificateHandler) GetDefaultHandler(c *gin.Context) {
	keyName, ok := parseNameQuery(c, "key_name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("key_name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	name, err := h.pibUseCase.DefaultCertificateName(c.Request.Context(), keyName)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNameToResponse(name))
}

// SetDefaultHandler selects the default certificate for a key.
// PUT /v1/certificates/default
// Returns 204 No Content.
func (h *CertificateHandler) SetDefaultHandler(c *gin.Context) {
	var req dto.SetDefaultCertificateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	keyName, err := ndn.ParseName(req.KeyName)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	certName, err := ndn.ParseName(req.CertificateName)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.pibUseCase.SetDefaultCertificate(c.Request.Context(), keyName, certName); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeleteHandler removes a certificate by name.
// DELETE /v1/certificates?name=/alice/KEY/ksk-1/ID-CERT/1
// Returns 204 No Content.
func (h *CertificateHandler) DeleteHandler(c *gin.Context) {
	name, ok := parseNameQuery(c, "name")
	if !ok {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("name query parameter must be a valid NDN name URI"),
			h.logger,
		)
		return
	}

	if err := h.pibUseCase.DeleteCertificate(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
