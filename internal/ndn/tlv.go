package ndn

import (
	"encoding/binary"

	apperrors "github.com/allisson/pib/internal/errors"
)

// TLV type numbers used by the certificate wire format.
const (
	tlvCertificate   = 6
	tlvName          = 7
	tlvNameComponent = 8
	tlvPublicKeyName = 9
	tlvSignerName    = 10
	tlvNotBefore     = 11
	tlvNotAfter      = 12
	tlvContent       = 21
)

// appendVarNum writes a number in the NDN variable-size encoding: one byte
// below 253, otherwise a marker byte followed by 2, 4 or 8 big-endian bytes.
func appendVarNum(buf []byte, value uint64) []byte {
	switch {
	case value < 253:
		return append(buf, byte(value))
	case value <= 0xffff:
		buf = append(buf, 253)
		return binary.BigEndian.AppendUint16(buf, uint16(value))
	case value <= 0xffffffff:
		buf = append(buf, 254)
		return binary.BigEndian.AppendUint32(buf, uint32(value))
	default:
		buf = append(buf, 255)
		return binary.BigEndian.AppendUint64(buf, value)
	}
}

// appendTLV writes one type-length-value block.
func appendTLV(buf []byte, tlvType uint64, value []byte) []byte {
	buf = appendVarNum(buf, tlvType)
	buf = appendVarNum(buf, uint64(len(value)))
	return append(buf, value...)
}

// appendNonNegativeInteger writes value as an 8-byte big-endian TLV block.
func appendNonNegativeInteger(buf []byte, tlvType uint64, value uint64) []byte {
	var encoded [8]byte
	binary.BigEndian.PutUint64(encoded[:], value)
	return appendTLV(buf, tlvType, encoded[:])
}

// tlvReader decodes type-length-value blocks from a byte slice.
type tlvReader struct {
	data   []byte
	offset int
}

func (r *tlvReader) done() bool {
	return r.offset >= len(r.data)
}

func (r *tlvReader) readVarNum() (uint64, error) {
	if r.offset >= len(r.data) {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "truncated TLV encoding")
	}
	first := r.data[r.offset]
	r.offset++
	switch first {
	case 253:
		if r.offset+2 > len(r.data) {
			return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "truncated TLV encoding")
		}
		value := binary.BigEndian.Uint16(r.data[r.offset:])
		r.offset += 2
		return uint64(value), nil
	case 254:
		if r.offset+4 > len(r.data) {
			return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "truncated TLV encoding")
		}
		value := binary.BigEndian.Uint32(r.data[r.offset:])
		r.offset += 4
		return uint64(value), nil
	case 255:
		if r.offset+8 > len(r.data) {
			return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "truncated TLV encoding")
		}
		value := binary.BigEndian.Uint64(r.data[r.offset:])
		r.offset += 8
		return value, nil
	default:
		return uint64(first), nil
	}
}

// readTLV reads one block, returning its type and value bytes.
func (r *tlvReader) readTLV() (uint64, []byte, error) {
	tlvType, err := r.readVarNum()
	if err != nil {
		return 0, nil, err
	}
	length, err := r.readVarNum()
	if err != nil {
		return 0, nil, err
	}
	if uint64(len(r.data)-r.offset) < length {
		return 0, nil, apperrors.Wrap(apperrors.ErrInvalidInput, "TLV length exceeds remaining data")
	}
	value := r.data[r.offset : r.offset+int(length)]
	r.offset += int(length)
	return tlvType, value, nil
}

// expectTLV reads one block and checks its type.
func (r *tlvReader) expectTLV(wantType uint64) ([]byte, error) {
	tlvType, value, err := r.readTLV()
	if err != nil {
		return nil, err
	}
	if tlvType != wantType {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unexpected TLV type")
	}
	return value, nil
}

func appendNameTLV(buf []byte, tlvType uint64, name Name) []byte {
	var inner []byte
	for i := 0; i < name.Size(); i++ {
		inner = appendTLV(inner, tlvNameComponent, []byte(name.Get(i)))
	}
	return appendTLV(buf, tlvType, inner)
}

func decodeNameTLV(value []byte) (Name, error) {
	reader := &tlvReader{data: value}
	var components []string
	for !reader.done() {
		component, err := reader.expectTLV(tlvNameComponent)
		if err != nil {
			return Name{}, err
		}
		components = append(components, string(component))
	}
	return NewName(components...), nil
}
