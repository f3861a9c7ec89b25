package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hostforge/adapters/hclcatalog"
	"hostforge/core/catalog"
	"hostforge/core/engine"
	"hostforge/core/output"
	"hostforge/internal/errors"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"catalogs"},
	Short:   "Manage vendor, type, sector and location catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List catalog entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogList,
}

var catalogAddCmd = &cobra.Command{
	Use:     "add <kind> <name> <code>",
	Short:   "Add a catalog entry",
	Example: `  hostforge catalog add vendor acme A
  hostforge catalog add setores juridico 04`,
	Args: cobra.ExactArgs(3),
	RunE: runCatalogAdd,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <kind> <name>",
	Short: "Remove a catalog entry (allocations are kept)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCatalogRemove,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.hcl>",
	Short: "Add catalog entries from an HCL file",
	Long: `Add catalog entries from an HCL file of labelled blocks:

  vendor "acme" {
    code = "A"
  }

Entries that clash with an existing name or code are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report codes that break the identifier layout",
	Args:  cobra.NoArgs,
	RunE:  runCatalogLint,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogLintCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	var listings []engine.Listing
	if len(args) == 1 {
		kind, err := catalog.ParseKind(args[0])
		if err != nil {
			return err
		}
		listings = []engine.Listing{eng.Catalog(kind)}
	} else {
		listings = eng.Catalogs()
	}

	out := cmd.OutOrStdout()
	return render(out, listings, func() {
		for i, l := range listings {
			if i > 0 {
				fmt.Fprintln(out)
			}
			output.WriteCatalogTable(out, l.Kind, l.Entries)
		}
	})
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	kind, err := catalog.ParseKind(args[0])
	if err != nil {
		return err
	}

	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.AddEntry(cmd.Context(), kind, args[1], args[2]); err != nil {
		return err
	}
	newUIWriter(cmd.OutOrStdout()).Success("added %s %s (%s)", kind, catalog.NormalizeName(args[1]), args[2])
	return nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	kind, err := catalog.ParseKind(args[0])
	if err != nil {
		return err
	}

	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	removed, err := eng.RemoveEntry(cmd.Context(), kind, args[1])
	if err != nil {
		return err
	}
	if !removed {
		return errors.NotFound(string(kind), args[1])
	}
	newUIWriter(cmd.OutOrStdout()).Success("removed %s %s", kind, catalog.NormalizeName(args[1]))
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	result, err := hclcatalog.NewLoader().LoadFile(args[0])
	if err != nil {
		return err
	}
	if result.HasErrors() {
		w := newUIWriter(cmd.ErrOrStderr())
		for _, e := range result.Errors {
			w.Error("%s", e.Error())
		}
		return errors.Newf(errors.TypeParsing, "%d errors in %s", len(result.Errors), args[0])
	}

	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	outcomes, err := eng.Import(cmd.Context(), result.Entries)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return render(out, outcomes, func() {
		output.WriteOutcomeTable(out, outcomes)
		added, skipped := hclcatalog.Counts(outcomes)
		fmt.Fprintf(out, "\n%d added, %d skipped\n", added, skipped)
	})
}

func runCatalogLint(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	findings := eng.Lint()
	out := cmd.OutOrStdout()
	return render(out, findings, func() {
		if len(findings) == 0 {
			newUIWriter(out).Success("all catalog codes fit the identifier layout")
			return
		}
		output.WriteFindingTable(out, findings)
	})
}
