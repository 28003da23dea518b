// Package git issues read-only metadata queries (commit log, tag list,
// head) against a repository by running the git binary and decoding its
// templated output through [gitfmt] descriptors.
//
// Every call builds its arguments from the options, runs one subprocess,
// and decodes stdout. Calls share no state: each query sees a live,
// independent view of the repository and nothing is cached between calls.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bumpline/bumpline/pkg/observability"
)

// runFunc executes git in dir and returns its stdout. Tests substitute it
// to feed canned output through the decoding path without a git binary.
type runFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Client queries one repository. The zero value with a Dir is ready to use.
type Client struct {
	// Dir is the directory git runs in, normally the workspace root.
	Dir string

	run runFunc
}

// New returns a Client querying the repository at dir.
func New(dir string) *Client {
	return &Client{Dir: dir}
}

// LogOptions narrow a commit log query.
type LogOptions struct {
	// Range is a revision or revision range ("HEAD", "mod@1.2.3..HEAD").
	Range string
	// Paths limits the log to commits touching any of these paths.
	Paths []string
	// MaxCount caps the number of commits when positive.
	MaxCount int
}

func (o LogOptions) args() []string {
	args := []string{"log", "--format=" + commitFormat.Format()}
	if o.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", o.MaxCount))
	}
	if o.Range != "" {
		args = append(args, o.Range)
	}
	if len(o.Paths) > 0 {
		args = append(args, "--")
		args = append(args, o.Paths...)
	}
	return args
}

// TagOptions narrow a tag list query.
type TagOptions struct {
	// Pattern filters tag names with a glob ("mod@*").
	Pattern string
	// NoMerged keeps only tags not reachable from the given revision.
	NoMerged string
	// Sort is a git sort key ("-version:refname"); empty means git's default.
	Sort string
}

func (o TagOptions) args() []string {
	args := []string{"tag", "--list"}
	if o.Pattern != "" {
		args = append(args, o.Pattern)
	}
	args = append(args, "--format="+tagFormat.Format())
	if o.NoMerged != "" {
		args = append(args, "--no-merged", o.NoMerged)
	}
	if o.Sort != "" {
		args = append(args, "--sort="+o.Sort)
	}
	return args
}

// Log returns the commits selected by opts, newest first.
func (c *Client) Log(ctx context.Context, opts LogOptions) ([]Commit, error) {
	out, err := c.exec(ctx, opts.args()...)
	if err != nil {
		return nil, err
	}
	records, err := commitFormat.Decode(out)
	if err != nil {
		return nil, err
	}
	commits := make([]Commit, 0, len(records))
	for _, rec := range records {
		commits = append(commits, commitFromRecord(rec))
	}
	return commits, nil
}

// Head returns the commit HEAD points at.
func (c *Client) Head(ctx context.Context) (Commit, error) {
	commits, err := c.Log(ctx, LogOptions{Range: "HEAD", MaxCount: 1})
	if err != nil {
		return Commit{}, err
	}
	if len(commits) == 0 {
		return Commit{}, errors.New("git: HEAD has no commit")
	}
	return commits[0], nil
}

// Tags returns the tags selected by opts.
func (c *Client) Tags(ctx context.Context, opts TagOptions) ([]Tag, error) {
	out, err := c.exec(ctx, opts.args()...)
	if err != nil {
		return nil, err
	}
	records, err := tagFormat.Decode(out)
	if err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(records))
	for _, rec := range records {
		tags = append(tags, tagFromRecord(rec))
	}
	return tags, nil
}

func (c *Client) exec(ctx context.Context, args ...string) (string, error) {
	run := c.run
	if run == nil {
		run = runGit
	}
	hooks := observability.Git()
	hooks.OnCommand(ctx, c.Dir, args)
	start := time.Now()
	out, err := run(ctx, c.Dir, args...)
	hooks.OnCommandComplete(ctx, c.Dir, args, time.Since(start), err)
	return out, err
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return "", &RunError{
			Name:     "git",
			Args:     args,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return stdout.String(), nil
}
