// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/pib/internal/errors"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NDNName validates that a string is a parseable NDN name URI.
var NDNName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_ndn_name_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := ndn.ParseName(s); err != nil {
		return validation.NewError("validation_ndn_name", "must be a valid NDN name URI")
	}
	return nil
})

// NonEmptyNDNName validates that a string is a parseable NDN name URI with
// at least one component.
var NonEmptyNDNName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_ndn_name_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	name, err := ndn.ParseName(s)
	if err != nil {
		return validation.NewError("validation_ndn_name", "must be a valid NDN name URI")
	}
	if name.Size() == 0 {
		return validation.NewError("validation_ndn_name_empty", "must have at least one name component")
	}
	return nil
})

// KeyName validates that a string is a parseable NDN key name, having an
// identity prefix plus a key identifier component.
var KeyName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_key_name_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	name, err := ndn.ParseName(s)
	if err != nil {
		return validation.NewError("validation_key_name", "must be a valid NDN name URI")
	}
	if name.Size() < 2 {
		return validation.NewError(
			"validation_key_name_components",
			"must have an identity prefix and a key identifier component",
		)
	}
	return nil
})

// KeyTypeRule validates that a string names a known key type.
var KeyTypeRule = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_key_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, ok := pibDomain.ParseKeyType(s); !ok {
		return validation.NewError("validation_key_type", "must be one of: rsa, ecdsa, aes")
	}
	return nil
})

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
