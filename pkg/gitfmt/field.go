package gitfmt

// Transform post-processes a decoded leaf value. It receives the raw part
// text and the sibling fields of the same enclosing object that were decoded
// before this one, in declaration order. Returning an error aborts the whole
// decode.
type Transform func(raw string, siblings Record) (any, error)

// Field is one node of a descriptor tree. Exactly three kinds exist: [Skip],
// [String], and [Object]. The interface is sealed so a decoder walk can
// type-switch exhaustively.
type Field interface {
	fieldName() string
}

// Skip documents a field that exists in the underlying object but is neither
// requested from git nor decoded. It consumes no slot and emits nothing.
type Skip struct {
	Name string
}

// String is a leaf field bound to a single format placeholder.
//
// A leaf whose Placeholder equals the descriptor's delimiter placeholder is
// delimiter-backed: it is not given a slot of its own and decodes to the
// hash that frames the record.
type String struct {
	Name        string
	Placeholder string

	// Optional marks a field git may leave empty. An empty value decodes to
	// absent instead of "".
	Optional bool

	// Transform, when set, replaces the raw text with a derived value.
	Transform Transform
}

// Object groups child fields into a nested record. When Optional is set and
// every child decodes to absent, the object itself collapses to absent.
type Object struct {
	Name     string
	Optional bool
	Fields   []Field
}

func (f Skip) fieldName() string   { return f.Name }
func (f String) fieldName() string { return f.Name }
func (f Object) fieldName() string { return f.Name }

// Record holds the decoded values of one object: leaf values (string, or
// whatever a transform produced) and nested Records. Absent fields have no
// key.
type Record map[string]any

// Lookup returns the named value and whether it is present.
func (r Record) Lookup(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Text returns the named value as a string, or "" when the field is absent
// or was transformed into a non-string.
func (r Record) Text(name string) string {
	s, _ := r[name].(string)
	return s
}

// Child returns the named nested record, or nil when absent.
func (r Record) Child(name string) Record {
	c, _ := r[name].(Record)
	return c
}
