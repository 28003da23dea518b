package git

// Signature identifies an author, committer, or tagger.
type Signature struct {
	Name  string
	Email string
}

// Trailer is one machine-readable key/value line from the trailer block at
// the end of a commit message.
type Trailer struct {
	Key   string
	Value string
}

// Commit is one decoded commit. Hash is the sole stable identity; Short is
// its abbreviated prefix. Body holds the message body with the trailing
// trailer block removed; Trailers holds that block, parsed, in order.
type Commit struct {
	Hash      string
	Short     string
	Summary   string
	Body      string
	Trailers  []Trailer
	Author    Signature
	Committer Signature
}

// Trailer returns the value of the first trailer with the given key.
func (c Commit) Trailer(key string) (string, bool) {
	for _, t := range c.Trailers {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Tag is one decoded tag. Commit is the full hash of the commit the tag
// resolves to: annotated tags dereference to their target, lightweight tags
// already name a commit. Tagger is nil for lightweight tags.
type Tag struct {
	Name    string
	Commit  string
	Subject string
	Body    string
	Tagger  *Signature
}
