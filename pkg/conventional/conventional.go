// Package conventional classifies commits under the Conventional Commits
// convention: an optional "type(scopes)!: " summary prefix, and a footer
// block of machine-readable key/value lines at the end of the message.
//
// Classification is total: any commit, including one whose summary is blank
// or carries no prefix at all, classifies without error. Unparseable parts
// simply stay absent.
package conventional

import (
	"regexp"
	"slices"
	"strings"

	"github.com/bumpline/bumpline/pkg/git"
)

// Footer is one footer entry, either a git trailer or a line from the
// message's own footer block. Block entries take precedence over trailers
// with the same key.
type Footer struct {
	Key   string
	Value string
}

// Commit is a classified commit.
//
// Description is always non-empty for a non-blank summary: when the summary
// carries no conventional prefix, the whole trimmed summary is the
// description. Scopes is never nil. Breaking is empty for non-breaking
// commits and otherwise holds the breaking-change text (the BREAKING-CHANGE
// footer when present, the description otherwise).
type Commit struct {
	git.Commit

	Type        string
	Scopes      []string
	Description string
	Breaking    string
	Footers     []Footer
}

// IsBreaking reports whether the commit declares a breaking change.
func (c Commit) IsBreaking() bool { return c.Breaking != "" }

// HasScope reports whether the commit's scopes include name or the
// wildcard scope "*".
func (c Commit) HasScope(name string) bool {
	return slices.Contains(c.Scopes, name) || slices.Contains(c.Scopes, "*")
}

// Footer returns the value of the first footer with the given key.
func (c Commit) Footer(key string) (string, bool) {
	for _, f := range c.Footers {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// breakingKey is the normalized footer key marking a breaking change.
const breakingKey = "BREAKING-CHANGE"

// summaryPattern captures the conventional summary shape. The space after
// the colon is tolerated missing. A summary that does not match, or whose
// description trims to nothing, falls back whole to the description.
var summaryPattern = regexp.MustCompile(
	`^(?P<type>[A-Za-z]+)(?:\((?P<scopes>[^)]*)\))?(?P<breaking>!)?: ?(?P<description>.+)$`)

var (
	typeIdx        = summaryPattern.SubexpIndex("type")
	scopesIdx      = summaryPattern.SubexpIndex("scopes")
	breakingIdx    = summaryPattern.SubexpIndex("breaking")
	descriptionIdx = summaryPattern.SubexpIndex("description")
)

// Footer line grammars: "key: value" and "key #value". Only the colon form
// accepts the space-separated BREAKING CHANGE key.
var (
	colonFooter = regexp.MustCompile(`^(?P<key>BREAKING CHANGE|[-\w]+): (?P<value>.*)$`)
	hashFooter  = regexp.MustCompile(`^(?P<key>BREAKING CHANGE|[-\w]+) #(?P<value>.*)$`)
)

// Classify maps a raw commit to its conventional form. It never fails.
func Classify(c git.Commit) Commit {
	out := Commit{
		Commit:      c,
		Scopes:      []string{},
		Description: strings.TrimSpace(c.Summary),
	}

	out.Footers = mergeFooters(c.Trailers, footerBlock(c.Body))

	bang := false
	if m := summaryPattern.FindStringSubmatch(out.Description); m != nil {
		if desc := strings.TrimSpace(m[descriptionIdx]); desc != "" {
			out.Type = strings.ToLower(m[typeIdx])
			out.Scopes = splitScopes(m[scopesIdx])
			out.Description = desc
			bang = m[breakingIdx] == "!"
		}
	}

	if v, ok := out.Footer(breakingKey); ok {
		out.Breaking = v
		if out.Breaking == "" {
			out.Breaking = out.Description
		}
	} else if bang {
		out.Breaking = out.Description
	}
	return out
}

func splitScopes(raw string) []string {
	scopes := []string{}
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// footerBlock parses the last blank-line-delimited paragraph of the body.
// It returns nil unless every non-empty line is a footer line. Only
// newlines are trimmed up front: "BREAKING-CHANGE: " with an empty value is
// still a footer line.
func footerBlock(body string) []Footer {
	body = strings.Trim(body, "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}
	para := body
	if cut := strings.LastIndex(body, "\n\n"); cut >= 0 {
		para = body[cut+2:]
	}

	var footers []Footer
	for _, line := range strings.Split(para, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case colonFooter.MatchString(line):
			m := colonFooter.FindStringSubmatch(line)
			key := m[1]
			if key == "BREAKING CHANGE" {
				key = breakingKey
			}
			footers = append(footers, Footer{Key: key, Value: strings.TrimSpace(m[2])})
		case hashFooter.MatchString(line):
			m := hashFooter.FindStringSubmatch(line)
			footers = append(footers, Footer{Key: strings.ToLower(m[1]), Value: strings.TrimSpace(m[2])})
		default:
			return nil
		}
	}
	return footers
}

// mergeFooters layers the body footer block over the git trailers: a block
// entry replaces the first trailer with the same key, new keys append in
// block order.
func mergeFooters(trailers []git.Trailer, block []Footer) []Footer {
	merged := make([]Footer, 0, len(trailers)+len(block))
	for _, t := range trailers {
		merged = append(merged, Footer(t))
	}
	for _, f := range block {
		replaced := false
		for i := range merged {
			if merged[i].Key == f.Key {
				merged[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, f)
		}
	}
	return merged
}
