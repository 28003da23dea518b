package git

import (
	"slices"
	"strings"

	"github.com/bumpline/bumpline/pkg/gitfmt"
)

// commitFormat decodes `git log --format` output. The trailers field is
// declared before the body so the body transform can strip exactly the
// block git already parsed for it.
var commitFormat = gitfmt.Descriptor{
	Delimiter: "%H",
	Fields: []gitfmt.Field{
		gitfmt.String{Name: "hash", Placeholder: "%H"},
		gitfmt.String{Name: "short", Placeholder: "%h"},
		gitfmt.String{Name: "summary", Placeholder: "%s"},
		gitfmt.String{Name: "trailers", Placeholder: "%(trailers:only,unfold)", Optional: true, Transform: parseTrailers},
		gitfmt.String{Name: "body", Placeholder: "%b", Optional: true, Transform: stripTrailerBlock},
		gitfmt.Object{Name: "author", Fields: []gitfmt.Field{
			gitfmt.String{Name: "name", Placeholder: "%an"},
			gitfmt.String{Name: "email", Placeholder: "%ae"},
		}},
		gitfmt.Object{Name: "committer", Fields: []gitfmt.Field{
			gitfmt.String{Name: "name", Placeholder: "%cn"},
			gitfmt.String{Name: "email", Placeholder: "%ce"},
		}},
	},
}

// tagFormat decodes `git tag --list --format` output. The delimiter is the
// ref's own object name: the tag object for annotated tags, the commit for
// lightweight ones. The commit field dereferences annotated tags and falls
// back to the hash sibling for lightweight ones, so it always names a real
// commit. The tagger object collapses for lightweight tags.
var tagFormat = gitfmt.Descriptor{
	Delimiter: "%(objectname)",
	Fields: []gitfmt.Field{
		gitfmt.String{Name: "hash", Placeholder: "%(objectname)"},
		gitfmt.String{Name: "name", Placeholder: "%(refname:short)"},
		gitfmt.String{Name: "commit", Placeholder: "%(*objectname)", Transform: tagTarget},
		gitfmt.String{Name: "subject", Placeholder: "%(subject)", Optional: true},
		gitfmt.String{Name: "body", Placeholder: "%(body)", Optional: true, Transform: trimNewlines},
		gitfmt.Object{Name: "tagger", Optional: true, Fields: []gitfmt.Field{
			gitfmt.String{Name: "name", Placeholder: "%(taggername)", Optional: true},
			gitfmt.String{Name: "email", Placeholder: "%(taggeremail)", Optional: true, Transform: trimAngles},
		}},
	},
}

// parseTrailers turns the unfolded "Key: value" lines of
// %(trailers:only,unfold) into ordered pairs.
func parseTrailers(raw string, _ gitfmt.Record) (any, error) {
	return parseTrailerLines(raw), nil
}

func parseTrailerLines(raw string) []Trailer {
	var trailers []Trailer
	for _, line := range strings.Split(strings.TrimRight(raw, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		trailers = append(trailers, Trailer{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return trailers
}

// stripTrailerBlock removes the trailing trailer paragraph from the raw
// body when it reproduces the trailers the sibling field already decoded.
// A block git unfolded differently stays in the body untouched.
func stripTrailerBlock(raw string, siblings gitfmt.Record) (any, error) {
	body := strings.TrimRight(raw, "\n")
	trailers, _ := siblings["trailers"].([]Trailer)
	if len(trailers) == 0 || body == "" {
		return body, nil
	}

	block := body
	rest := ""
	if cut := strings.LastIndex(body, "\n\n"); cut >= 0 {
		block = body[cut+2:]
		rest = strings.TrimRight(body[:cut], "\n")
	}
	if !slices.Equal(parseTrailerLines(block), trailers) {
		return body, nil
	}
	return rest, nil
}

// tagTarget resolves the commit a tag points at: the dereferenced target
// for annotated tags, or the hash sibling itself for lightweight ones.
func tagTarget(raw string, siblings gitfmt.Record) (any, error) {
	if raw == "" {
		return siblings.Text("hash"), nil
	}
	return raw, nil
}

func trimNewlines(raw string, _ gitfmt.Record) (any, error) {
	return strings.TrimRight(raw, "\n"), nil
}

// trimAngles strips the <> git wraps around %(taggeremail).
func trimAngles(raw string, _ gitfmt.Record) (any, error) {
	return strings.Trim(raw, "<>"), nil
}

func commitFromRecord(rec gitfmt.Record) Commit {
	c := Commit{
		Hash:    rec.Text("hash"),
		Short:   rec.Text("short"),
		Summary: rec.Text("summary"),
		Body:    rec.Text("body"),
	}
	if v, ok := rec.Lookup("trailers"); ok {
		c.Trailers, _ = v.([]Trailer)
	}
	if a := rec.Child("author"); a != nil {
		c.Author = Signature{Name: a.Text("name"), Email: a.Text("email")}
	}
	if cm := rec.Child("committer"); cm != nil {
		c.Committer = Signature{Name: cm.Text("name"), Email: cm.Text("email")}
	}
	return c
}

func tagFromRecord(rec gitfmt.Record) Tag {
	t := Tag{
		Name:    rec.Text("name"),
		Commit:  rec.Text("commit"),
		Subject: rec.Text("subject"),
		Body:    rec.Text("body"),
	}
	if tg := rec.Child("tagger"); tg != nil {
		t.Tagger = &Signature{Name: tg.Text("name"), Email: tg.Text("email")}
	}
	return t
}
