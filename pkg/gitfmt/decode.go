package gitfmt

import (
	"fmt"
	"strings"
)

// hashLen is the length of a hex SHA-1 object name. Repositories using the
// SHA-256 object format are not supported.
const hashLen = 40

// DecodeError reports raw text that does not match the descriptor's layout.
// It is always fatal: a structural mismatch means the git binary emitted a
// different format than the descriptor describes, and retrying or guessing
// would decode garbage.
type DecodeError struct {
	Field  string // offending field, when attributable
	Detail string
	Err    error // transform failure, when one caused the mismatch
}

// Error returns the failure message.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode field %q: %s", e.Field, e.Detail)
	}
	return "decode: " + e.Detail
}

// Unwrap returns the transform error that caused the failure, if any.
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses raw git output produced with [Descriptor.Format] into one
// Record per emitted object. Records are framed by their own full object
// hash and separated by newlines.
func (d Descriptor) Decode(raw string) ([]Record, error) {
	n := len(placeholders(d.Fields, d.Delimiter))

	var records []Record
	rest := raw
	for {
		rest = strings.TrimLeft(rest, "\n")
		if rest == "" {
			return records, nil
		}

		if len(rest) < hashLen || !isHash(rest[:hashLen]) {
			return nil, &DecodeError{Detail: fmt.Sprintf(
				"record %d: expected a %d-char object hash, got %q",
				len(records)+1, hashLen, head(rest, hashLen))}
		}
		hash := rest[:hashLen]
		rest = rest[hashLen:]

		parts := make([]string, 0, n)
		for len(parts) < n {
			idx := strings.Index(rest, hash)
			if idx < 0 {
				return nil, &DecodeError{Detail: fmt.Sprintf(
					"record %d: %d of %d fields before input ended",
					len(records)+1, len(parts), n)}
			}
			parts = append(parts, rest[:idx])
			rest = rest[idx+hashLen:]
		}
		if rest != "" && !strings.HasPrefix(rest, "\n") {
			return nil, &DecodeError{Detail: fmt.Sprintf(
				"record %d: trailing data after %d fields", len(records)+1, n)}
		}

		rec, err := decodeObject(d.Fields, d.Delimiter, hash, &parts)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// decodeObject walks fields in declaration order, popping one part per
// slot-consuming leaf and recursing into objects.
func decodeObject(fields []Field, delim, hash string, parts *[]string) (Record, error) {
	rec := Record{}
	for _, f := range fields {
		switch f := f.(type) {
		case Skip:
			// Neither requested nor decoded.
		case String:
			raw := hash
			if f.Placeholder != delim {
				raw = (*parts)[0]
				*parts = (*parts)[1:]
			}
			if f.Optional && raw == "" {
				continue
			}
			var val any = raw
			if f.Transform != nil {
				v, err := f.Transform(raw, rec)
				if err != nil {
					return nil, &DecodeError{Field: f.Name, Detail: err.Error(), Err: err}
				}
				val = v
			}
			rec[f.Name] = val
		case Object:
			child, err := decodeObject(f.Fields, delim, hash, parts)
			if err != nil {
				return nil, err
			}
			if f.Optional && len(child) == 0 {
				continue
			}
			rec[f.Name] = child
		}
	}
	return rec, nil
}

func isHash(s string) bool {
	if len(s) != hashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
