// Package ndn provides the hierarchical name and certificate abstractions the
// credential store is built around. Names are slash-delimited paths of opaque
// components; certificates carry a cached TLV wire encoding.
package ndn

import (
	"strings"

	apperrors "github.com/allisson/pib/internal/errors"
)

// Name is an immutable hierarchical name such as /org/example/KEY-1.
// The zero value is the empty name.
type Name struct {
	components []string
}

// NewName builds a name from raw (unescaped) components.
func NewName(components ...string) Name {
	copied := make([]string, len(components))
	copy(copied, components)
	return Name{components: copied}
}

// ParseName parses a URI such as /org/example/KEY-1 into a Name.
// Percent-escapes inside components are decoded. The root name is "/".
func ParseName(uri string) (Name, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return Name{}, apperrors.Wrap(apperrors.ErrInvalidInput, "name is required")
	}
	if !strings.HasPrefix(trimmed, "/") {
		return Name{}, apperrors.Wrap(apperrors.ErrInvalidInput, "name must start with /")
	}

	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return Name{}, nil
	}

	parts := strings.Split(trimmed, "/")
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Name{}, apperrors.Wrap(apperrors.ErrInvalidInput, "name has an empty component")
		}
		component, err := unescapeComponent(part)
		if err != nil {
			return Name{}, err
		}
		components = append(components, component)
	}

	return Name{components: components}, nil
}

// Size returns the number of components.
func (n Name) Size() int {
	return len(n.components)
}

// Get returns the component at index i. A negative index counts from the end,
// so Get(-1) is the final component. Out-of-range indexes return "".
func (n Name) Get(i int) string {
	if i < 0 {
		i += len(n.components)
	}
	if i < 0 || i >= len(n.components) {
		return ""
	}
	return n.components[i]
}

// GetEscaped returns the component at index i in its percent-escaped storage
// form. Key identifiers are persisted in this form.
func (n Name) GetEscaped(i int) string {
	return escapeComponent(n.Get(i))
}

// Prefix returns the first count components as a new name. A negative count
// drops components from the end, so Prefix(-1) is everything but the last.
func (n Name) Prefix(count int) Name {
	if count < 0 {
		count += len(n.components)
	}
	if count < 0 {
		count = 0
	}
	if count > len(n.components) {
		count = len(n.components)
	}
	return NewName(n.components[:count]...)
}

// Append returns a new name with the raw component appended. The receiver is
// not modified.
func (n Name) Append(component string) Name {
	components := make([]string, len(n.components)+1)
	copy(components, n.components)
	components[len(n.components)] = component
	return Name{components: components}
}

// AppendEscaped returns a new name with a percent-escaped component appended
// after decoding it. Invalid escapes surface as ErrInvalidInput.
func (n Name) AppendEscaped(component string) (Name, error) {
	decoded, err := unescapeComponent(component)
	if err != nil {
		return Name{}, err
	}
	return n.Append(decoded), nil
}

// Equals reports whether two names have identical components.
func (n Name) Equals(other Name) bool {
	if len(n.components) != len(other.components) {
		return false
	}
	for i, component := range n.components {
		if other.components[i] != component {
			return false
		}
	}
	return true
}

// URI returns the canonical slash-delimited, percent-escaped form. The empty
// name renders as "/".
func (n Name) URI() string {
	if len(n.components) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, component := range n.components {
		b.WriteByte('/')
		b.WriteString(escapeComponent(component))
	}
	return b.String()
}

// String implements fmt.Stringer using the URI form.
func (n Name) String() string {
	return n.URI()
}

// unreservedComponentByte reports whether c may appear unescaped in a
// component, matching the escaping rules the store's key identifiers use.
func unreservedComponentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '.' || c == '_' || c == '-':
		return true
	}
	return false
}

const hexDigits = "0123456789ABCDEF"

func escapeComponent(component string) string {
	var b strings.Builder
	for i := 0; i < len(component); i++ {
		c := component[i]
		if unreservedComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func unescapeComponent(component string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(component); i++ {
		c := component[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(component) {
			return "", apperrors.Wrap(apperrors.ErrInvalidInput, "truncated percent escape in name component")
		}
		hi := hexValue(component[i+1])
		lo := hexValue(component[i+2])
		if hi < 0 || lo < 0 {
			return "", apperrors.Wrap(apperrors.ErrInvalidInput, "invalid percent escape in name component")
		}
		b.WriteByte(byte(hi<<4 | lo))
		i += 2
	}
	return b.String(), nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
