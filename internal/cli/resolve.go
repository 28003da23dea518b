package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/observability"
	"github.com/bumpline/bumpline/pkg/report"
	"github.com/bumpline/bumpline/pkg/version"
	"github.com/bumpline/bumpline/pkg/workspace"
)

// resolveOptions holds the flag values for the resolve command.
type resolveOptions struct {
	packages    []string
	concurrency int
	jsonOut     bool
	output      string
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Resolve the next version of every workspace package",
		Long: `Resolve the next version of every workspace package.

For each package, resolve finds the latest release tag named
"<module>@<version>", classifies the conventional commits made since, and
derives the pending update: patch for fixes, minor for features, major
for breaking changes past 1.0. A manifest that declares a version ahead
of the release forces that version instead.

The default output is one status row per package. Use --json for the
machine-readable report, or --output to save the report for a later
'bumpline changelog --from'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), workspaceRoot(args), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.packages, "package", "p", nil, "resolve only the named modules (repeatable)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", workspace.DefaultWorkers, "packages resolved in parallel")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the JSON report to stdout")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to a file")

	return cmd
}

// runResolve resolves the workspace and renders the report.
func (c *CLI) runResolve(ctx context.Context, root string, opts resolveOptions) error {
	rep, err := c.resolveWorkspace(ctx, root, opts.packages, opts.concurrency)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := report.ExportJSON(rep, opts.output); err != nil {
			return err
		}
	}
	if opts.jsonOut {
		return report.WriteJSON(rep, os.Stdout)
	}

	var updates int
	for _, p := range rep.Packages {
		printPackage(p)
		if p.Update != nil {
			updates++
		}
	}
	failed := countFailed(rep)
	printSummary(len(rep.Packages), updates, failed)
	if opts.output != "" {
		printFile(opts.output)
	}
	if updates > 0 {
		printNextStep("Render the changelog", "bumpline changelog")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to resolve", failed, len(rep.Packages))
	}
	return nil
}

// resolveWorkspace discovers, filters, and resolves the workspace rooted
// at root, returning the flattened report. Shared by the resolve,
// changelog, and packages commands.
func (c *CLI) resolveWorkspace(ctx context.Context, root string, modules []string, concurrency int) (report.Report, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	pkgs, err := workspace.Discover(root)
	if err != nil {
		return report.Report{}, err
	}
	pkgs = filterPackages(pkgs, modules)
	if len(pkgs) == 0 {
		return report.Report{}, fmt.Errorf("no packages matched in %s", root)
	}

	resolver := version.New(git.New(root), logger)

	spin := newSpinner(ctx, fmt.Sprintf("Resolving packages... 0/%d", len(pkgs)))
	observability.SetResolutionHooks(newSpinnerHooks(spin, len(pkgs)))
	defer observability.SetResolutionHooks(observability.NoopResolutionHooks{})
	spin.Start()
	results := workspace.ResolveAll(ctx, resolver, pkgs, concurrency)
	if err := ctx.Err(); err != nil {
		spin.StopWithError("Resolution cancelled")
		return report.Report{}, err
	}
	spin.Stop()

	prog.done(fmt.Sprintf("Resolved %d packages", len(results)))
	return report.FromResults(root, results), nil
}

// filterPackages keeps the packages whose module name is listed in
// modules. An empty filter keeps everything.
func filterPackages(pkgs []version.Package, modules []string) []version.Package {
	if len(modules) == 0 {
		return pkgs
	}
	keep := make(map[string]bool, len(modules))
	for _, m := range modules {
		keep[m] = true
	}
	var out []version.Package
	for _, p := range pkgs {
		if keep[p.Module] {
			out = append(out, p)
		}
	}
	return out
}

// countFailed counts the packages whose resolution errored.
func countFailed(rep report.Report) int {
	var n int
	for _, p := range rep.Packages {
		if p.Error != "" {
			n++
		}
	}
	return n
}
