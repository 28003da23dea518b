package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bumpline/bumpline/pkg/changelog"
	"github.com/bumpline/bumpline/pkg/report"
	"github.com/bumpline/bumpline/pkg/workspace"
)

// changelogOptions holds the flag values for the changelog command.
type changelogOptions struct {
	packages    []string
	concurrency int
	from        string
	output      string
}

// changelogCommand creates the changelog command.
func (c *CLI) changelogCommand() *cobra.Command {
	var opts changelogOptions

	cmd := &cobra.Command{
		Use:   "changelog [dir]",
		Short: "Render the pending updates as a markdown changelog",
		Long: `Render the pending updates as a markdown changelog.

The changelog carries one section per package with a pending update,
grouping its qualifying commits into breaking changes, features, and
fixes. Packages that are already current are left out.

By default the workspace is resolved first. Pass --from to render a
report saved by 'bumpline resolve --output' instead, which needs no
repository access at all.

Examples:
  bumpline changelog                      # resolve, render to stdout
  bumpline changelog -o CHANGELOG.md      # render to a file
  bumpline changelog --from report.json   # render a saved report`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChangelog(cmd.Context(), workspaceRoot(args), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.packages, "package", "p", nil, "resolve only the named modules (repeatable)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", workspace.DefaultWorkers, "packages resolved in parallel")
	cmd.Flags().StringVar(&opts.from, "from", "", "render a saved JSON report instead of resolving")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the changelog to a file")

	return cmd
}

// runChangelog obtains a report and renders it as markdown.
func (c *CLI) runChangelog(ctx context.Context, root string, opts changelogOptions) error {
	rep, err := c.changelogReport(ctx, root, opts)
	if err != nil {
		return err
	}

	var updates int
	for _, p := range rep.Packages {
		if p.Update != nil {
			updates++
		}
	}
	if updates == 0 {
		printWarning("No pending updates, changelog is empty")
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := changelog.Write(out, rep); err != nil {
		return fmt.Errorf("render changelog: %w", err)
	}
	if opts.output != "" {
		printSuccess("Changelog rendered for %d updates", updates)
		printFile(opts.output)
	}
	return nil
}

// changelogReport loads the report to render: a saved one when --from is
// set, a fresh resolution otherwise.
func (c *CLI) changelogReport(ctx context.Context, root string, opts changelogOptions) (report.Report, error) {
	if opts.from != "" {
		return report.ImportJSON(opts.from)
	}
	return c.resolveWorkspace(ctx, root, opts.packages, opts.concurrency)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// Used to treat os.Stdout uniformly with opened files.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise it creates the file at path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}
