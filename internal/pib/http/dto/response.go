package dto

import (
	"encoding/base64"

	"github.com/allisson/pib/internal/ndn"
)

// NameResponse carries a single NDN name in API responses.
type NameResponse struct {
	Name string `json:"name"`
}

// MapNameToResponse converts an NDN name to a name response.
func MapNameToResponse(name ndn.Name) NameResponse {
	return NameResponse{Name: name.URI()}
}

// NameListResponse carries a list of NDN names in API responses.
type NameListResponse struct {
	Data []string `json:"data"`
}

// MapNamesToListResponse converts a slice of NDN names to a list response.
func MapNamesToListResponse(names []ndn.Name) NameListResponse {
	data := make([]string, 0, len(names))
	for _, name := range names {
		data = append(data, name.URI())
	}

	return NameListResponse{Data: data}
}

// ExistsResponse reports whether a resource is present in the store.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// KeyResponse carries a stored public key in API responses.
type KeyResponse struct {
	Name      string `json:"name"`
	PublicKey string `json:"public_key"`
}

// MapKeyToResponse converts a key name and its public key bytes to a response.
func MapKeyToResponse(keyName ndn.Name, publicKey []byte) KeyResponse {
	return KeyResponse{
		Name:      keyName.URI(),
		PublicKey: base64.StdEncoding.EncodeToString(publicKey),
	}
}

// CertificateResponse carries a stored certificate in API responses.
// The certificate field is the base64-encoded certificate wire.
type CertificateResponse struct {
	Name        string `json:"name"`
	Certificate string `json:"certificate"`
}

// MapCertificateToResponse converts a decoded certificate to a response.
func MapCertificateToResponse(cert *ndn.Certificate) CertificateResponse {
	return CertificateResponse{
		Name:        cert.Name.URI(),
		Certificate: base64.StdEncoding.EncodeToString(cert.Encode()),
	}
}
