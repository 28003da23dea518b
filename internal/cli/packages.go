package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/report"
	"github.com/bumpline/bumpline/pkg/version"
	"github.com/bumpline/bumpline/pkg/workspace"
)

// packagesCommand creates the packages command.
func (c *CLI) packagesCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "packages [dir]",
		Short: "List the packages of a workspace",
		Long: `List the packages of a workspace.

Discovery reads the root manifest and expands its workspace globs;
members without a manifest of their own are skipped. With --interactive
a picker opens and the chosen package is resolved and shown in detail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPackages(cmd.Context(), workspaceRoot(args), interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a package and show its resolution")

	return cmd
}

// runPackages lists the discovered packages, or resolves and details the
// one picked interactively.
func (c *CLI) runPackages(ctx context.Context, root string, interactive bool) error {
	pkgs, err := workspace.Discover(root)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no packages found in %s", root)
	}

	if !interactive {
		printInfo("%d packages in %s", len(pkgs), root)
		for _, p := range pkgs {
			printManifestRow(p)
		}
		return nil
	}

	picked, err := pickPackage(pkgs)
	if err != nil {
		return err
	}
	if picked == nil {
		printDetail("No selection made")
		return nil
	}
	return c.showPackage(ctx, root, *picked)
}

// showPackage resolves one package and prints the full outcome: state,
// release, pending update, and the qualifying commits behind it.
func (c *CLI) showPackage(ctx context.Context, root string, pkg version.Package) error {
	logger := loggerFromContext(ctx)
	resolver := version.New(git.New(root), logger)

	spin := newSpinner(ctx, fmt.Sprintf("Resolving %s...", pkg.Module))
	spin.Start()
	resolved, err := resolver.Resolve(ctx, pkg)
	spin.Stop()

	rep := report.FromResults(root, []workspace.Result{{Package: resolved, Err: err}})
	printNewline()
	printResolution(rep.Packages[0])
	return err
}

// printManifestRow prints one discovered package as a listing row.
func printManifestRow(p version.Package) {
	module := fmt.Sprintf("%-*s", moduleWidth, p.Module)
	declared, style := p.Config.Version, StyleSuccess
	if declared == "" {
		declared, style = "unversioned", StyleDim
	}
	fmt.Println("  " + StyleValue.Render(module) + " " +
		style.Render(fmt.Sprintf("%-12s", declared)) + " " +
		StyleDim.Render(p.Dir))
}

// printResolution prints the detail view of one resolved package.
func printResolution(p report.Package) {
	printKeyValue("Module", p.Module)
	if p.Name != p.Module {
		printKeyValue("Name", p.Name)
	}
	printKeyValue("Directory", p.Dir)
	printKeyValue("State", p.State)
	if p.Error != "" {
		printError("%s", p.Error)
		return
	}

	if p.Release != nil {
		released := p.Release.Version
		if p.Release.Tag != "" {
			released += " (" + p.Release.Tag + ")"
		}
		printKeyValue("Release", released)
	}
	printKeyValue("Version", p.Version)

	if p.Update == nil {
		return
	}
	bump := string(p.Update.Type)
	if bump == "" {
		bump = "forced"
	}
	printKeyValue("Update", fmt.Sprintf("%s (%s)", p.Update.Version, bump))
	for _, ch := range p.Update.Changes {
		printDetail("%s %s", ch.Short, changeSummary(ch))
	}
}

// changeSummary reassembles a short conventional summary for display.
func changeSummary(ch report.Change) string {
	var b strings.Builder
	if ch.Type != "" {
		b.WriteString(ch.Type)
		if len(ch.Scopes) > 0 {
			b.WriteString("(" + strings.Join(ch.Scopes, ",") + ")")
		}
		if ch.Breaking {
			b.WriteString("!")
		}
		b.WriteString(": ")
	}
	b.WriteString(ch.Description)
	return b.String()
}
