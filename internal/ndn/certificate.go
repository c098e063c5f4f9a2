package ndn

import (
	"encoding/binary"

	apperrors "github.com/allisson/pib/internal/errors"
)

// Certificate binds a public key to a name. NotBefore and NotAfter are
// millisecond timestamps since the Unix epoch. The wire encoding is cached:
// a decoded certificate re-encodes to the exact bytes it was decoded from.
type Certificate struct {
	// Name is the certificate's own name.
	Name Name
	// PublicKeyName is the full name of the certified key.
	PublicKeyName Name
	// SignerKeyName identifies the key that produced the certificate's
	// signature, taken from the signature's key locator.
	SignerKeyName Name
	// NotBefore is the start of the validity window in epoch milliseconds.
	NotBefore int64
	// NotAfter is the end of the validity window in epoch milliseconds.
	NotAfter int64
	// Content holds the certified public key bits.
	Content []byte

	wire []byte
}

// DecodeCertificate parses the TLV wire form of a certificate. The input
// bytes are retained as the cached encoding.
func DecodeCertificate(wire []byte) (*Certificate, error) {
	if len(wire) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "certificate encoding is empty")
	}

	outer := &tlvReader{data: wire}
	body, err := outer.expectTLV(tlvCertificate)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode certificate")
	}

	reader := &tlvReader{data: body}
	cert := &Certificate{}

	nameValue, err := reader.expectTLV(tlvName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode certificate name")
	}
	if cert.Name, err = decodeNameTLV(nameValue); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode certificate name")
	}

	keyNameValue, err := reader.expectTLV(tlvPublicKeyName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode public key name")
	}
	if cert.PublicKeyName, err = decodeNameTLV(keyNameValue); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode public key name")
	}

	signerValue, err := reader.expectTLV(tlvSignerName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode signer name")
	}
	if cert.SignerKeyName, err = decodeNameTLV(signerValue); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode signer name")
	}

	notBefore, err := reader.expectTLV(tlvNotBefore)
	if err != nil || len(notBefore) != 8 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "failed to decode validity window")
	}
	cert.NotBefore = int64(binary.BigEndian.Uint64(notBefore))

	notAfter, err := reader.expectTLV(tlvNotAfter)
	if err != nil || len(notAfter) != 8 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "failed to decode validity window")
	}
	cert.NotAfter = int64(binary.BigEndian.Uint64(notAfter))

	content, err := reader.expectTLV(tlvContent)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode certificate content")
	}
	cert.Content = append([]byte(nil), content...)

	if !reader.done() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "trailing bytes after certificate")
	}

	cert.wire = append([]byte(nil), wire...)
	return cert, nil
}

// Encode returns the certificate's TLV wire form, computing and caching it on
// first use. The returned slice must not be modified.
func (c *Certificate) Encode() []byte {
	if c.wire != nil {
		return c.wire
	}

	var body []byte
	body = appendNameTLV(body, tlvName, c.Name)
	body = appendNameTLV(body, tlvPublicKeyName, c.PublicKeyName)
	body = appendNameTLV(body, tlvSignerName, c.SignerKeyName)
	body = appendNonNegativeInteger(body, tlvNotBefore, uint64(c.NotBefore))
	body = appendNonNegativeInteger(body, tlvNotAfter, uint64(c.NotAfter))
	body = appendTLV(body, tlvContent, c.Content)

	c.wire = appendTLV(nil, tlvCertificate, body)
	return c.wire
}

