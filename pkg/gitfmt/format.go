package gitfmt

import (
	"fmt"
	"strings"
)

// Descriptor describes one record kind in full: the ordered field tree plus
// the delimiter placeholder that frames each record on the wire.
type Descriptor struct {
	// Delimiter is the placeholder whose value is the record's own full
	// object hash, e.g. "%H" for commits or "%(objectname)" for refs.
	Delimiter string
	Fields    []Field
}

// Format builds the format string passed to git: every slot-consuming leaf
// placeholder joined and wrapped by the delimiter placeholder.
func (d Descriptor) Format() string {
	ph := placeholders(d.Fields, d.Delimiter)
	if len(ph) == 0 {
		return d.Delimiter
	}
	return d.Delimiter + strings.Join(ph, d.Delimiter) + d.Delimiter
}

// Encode renders records into the exact wire text git would emit for this
// descriptor. Values must be the raw pre-transform strings; nested objects
// are nested Records. Every record must carry a full-hash value for the
// delimiter-backed field, since that hash frames the record.
//
// Encode is the test-side inverse of [Descriptor.Decode]: it lets callers
// synthesize git output without a repository.
func (d Descriptor) Encode(records []Record) (string, error) {
	name, ok := delimiterField(d.Fields, d.Delimiter)
	if !ok {
		return "", fmt.Errorf("descriptor has no delimiter-backed field for %s", d.Delimiter)
	}

	var b strings.Builder
	for i, rec := range records {
		hash, ok := rec[name].(string)
		if !ok || !isHash(hash) {
			return "", fmt.Errorf("record %d: field %q must hold a %d-char object hash", i, name, hashLen)
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(hash)
		vals, err := encodeFields(d.Fields, d.Delimiter, rec)
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
		for _, v := range vals {
			if strings.Contains(v, hash) {
				return "", fmt.Errorf("record %d: a field value contains the record hash", i)
			}
			b.WriteString(v)
			b.WriteString(hash)
		}
	}
	return b.String(), nil
}

// placeholders collects the slot-consuming leaf placeholders in declaration
// order. Skips and the delimiter-backed leaf contribute nothing.
func placeholders(fields []Field, delim string) []string {
	var out []string
	for _, f := range fields {
		switch f := f.(type) {
		case String:
			if f.Placeholder != delim {
				out = append(out, f.Placeholder)
			}
		case Object:
			out = append(out, placeholders(f.Fields, delim)...)
		}
	}
	return out
}

// delimiterField finds the leaf declared with the delimiter placeholder.
func delimiterField(fields []Field, delim string) (string, bool) {
	for _, f := range fields {
		switch f := f.(type) {
		case String:
			if f.Placeholder == delim {
				return f.Name, true
			}
		case Object:
			if name, ok := delimiterField(f.Fields, delim); ok {
				return name, true
			}
		}
	}
	return "", false
}

func encodeFields(fields []Field, delim string, rec Record) ([]string, error) {
	var out []string
	for _, f := range fields {
		switch f := f.(type) {
		case Skip:
		case String:
			if f.Placeholder == delim {
				continue
			}
			val := ""
			if v, ok := rec[f.Name]; ok {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("field %q: encode needs raw string values, got %T", f.Name, v)
				}
				val = s
			}
			out = append(out, val)
		case Object:
			child := Record{}
			if v, ok := rec[f.Name]; ok {
				c, ok := v.(Record)
				if !ok {
					return nil, fmt.Errorf("field %q: encode needs a nested Record, got %T", f.Name, v)
				}
				child = c
			}
			vals, err := encodeFields(f.Fields, delim, child)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
	}
	return out, nil
}
