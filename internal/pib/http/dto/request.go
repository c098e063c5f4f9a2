// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/pib/internal/validation"
)

// AddIdentityRequest contains the parameters for registering an identity.
type AddIdentityRequest struct {
	Name string `json:"name" binding:"required"`
}

// Validate checks if the add identity request is valid.
func (r *AddIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NonEmptyNDNName,
		),
	)
}

// SetDefaultIdentityRequest contains the parameters for selecting the default identity.
type SetDefaultIdentityRequest struct {
	Name string `json:"name" binding:"required"`
}

// Validate checks if the set default identity request is valid.
func (r *SetDefaultIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NonEmptyNDNName,
		),
	)
}

// AddKeyRequest contains the parameters for registering a public key.
// The key name carries the identity prefix plus the key identifier component.
type AddKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	KeyType   string `json:"key_type" binding:"required"`
	PublicKey string `json:"public_key" binding:"required"`
}

// Validate checks if the add key request is valid.
func (r *AddKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.KeyName,
		),
		validation.Field(&r.KeyType,
			validation.Required,
			customValidation.KeyTypeRule,
		),
		validation.Field(&r.PublicKey,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// UpdateKeyStatusRequest contains the parameters for activating or
// deactivating a key.
type UpdateKeyStatusRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

// Validate checks if the update key status request is valid.
func (r *UpdateKeyStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.KeyName,
		),
		validation.Field(&r.Active, validation.NotNil),
	)
}

// SetDefaultKeyRequest contains the parameters for selecting an identity's
// default key. Identity is optional; when present it must match the key
// name's identity prefix.
type SetDefaultKeyRequest struct {
	Name     string `json:"name" binding:"required"`
	Identity string `json:"identity"`
}

// Validate checks if the set default key request is valid.
func (r *SetDefaultKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.KeyName,
		),
		validation.Field(&r.Identity,
			customValidation.NonEmptyNDNName,
		),
	)
}

// AddCertificateRequest contains the parameters for registering a certificate.
// The certificate field carries the full base64-encoded certificate wire.
type AddCertificateRequest struct {
	Certificate string `json:"certificate" binding:"required"`
}

// Validate checks if the add certificate request is valid.
func (r *AddCertificateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Certificate,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// SetDefaultCertificateRequest contains the parameters for selecting a key's
// default certificate.
type SetDefaultCertificateRequest struct {
	KeyName         string `json:"key_name" binding:"required"`
	CertificateName string `json:"certificate_name" binding:"required"`
}

// Validate checks if the set default certificate request is valid.
func (r *SetDefaultCertificateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.KeyName,
			validation.Required,
			customValidation.KeyName,
		),
		validation.Field(&r.CertificateName,
			validation.Required,
			customValidation.NonEmptyNDNName,
		),
	)
}
