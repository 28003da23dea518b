// Package gitfmt declares and decodes the delimited records git emits for
// templated output (pretty-formats for commits, for-each-ref formats for
// tags).
//
// # Descriptors
//
// A [Descriptor] is an ordered tree of fields of exactly three kinds:
//
//   - [Skip]: documents a field that is neither requested nor decoded.
//   - [String]: a leaf bound to one format placeholder, optionally absent,
//     optionally post-processed by a [Transform].
//   - [Object]: a named group of child fields, decoded into a nested record.
//
// # Wire format
//
// Field values can contain nearly anything, including newlines, so no fixed
// separator is safe. Instead each record is framed by its own full object
// hash: [Descriptor.Format] interleaves every leaf placeholder with the
// delimiter placeholder (%H for commits, %(objectname) for tags) and wraps
// the record in it. A full hash cannot appear inside any other field's
// value, which makes it a collision-free separator. The one field whose
// value is the hash itself is declared with the delimiter placeholder and
// decodes from the record frame rather than from a slot of its own.
//
// # Decoding
//
// [Descriptor.Decode] reads the leading hash of each record, splits the
// record's inner text by it, and walks the descriptor tree in declaration
// order, handing each leaf the next part. A transform receives the decoded
// siblings that precede it in the same object, so a field may derive its
// value from another (a commit body separating itself from its trailer
// block, for example). Optional leaves treat the empty string as absence,
// and an optional object whose children are all absent collapses to absent.
//
// Any structural mismatch between the descriptor and the raw text is a
// fatal [*DecodeError]: it means the git binary speaks a different format
// than the descriptor was written for, and guessing would only corrupt the
// decoded history.
package gitfmt
