package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hostforge/core/generator"
	"hostforge/core/output"
	"hostforge/internal/errors"
)

var (
	genVendor   string
	genType     string
	genSector   string
	genLocation string
	genCount    int
	genNumber   int
	nextCount   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Allocate identifiers in a sector",
	Long: `Allocate one or more identifiers. Numbers are taken from the lowest
free slots of the sector, so gaps left by earlier removals are reused first.`,
	Example: `  hostforge generate --vendor vendor1 --type laptop --sector ti --location fabrica
  hostforge generate --vendor vendor2 --type desktop --sector rh --location escritorio -n 5 -o json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var nextCmd = &cobra.Command{
	Use:   "next <sector>",
	Short: "Show the next free number in a sector",
	Args:  cobra.ExactArgs(1),
	RunE:  runNext,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hostname>...",
	Short: "Split identifiers into catalog names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Render an identifier without allocating it",
	Args:  cobra.NoArgs,
	RunE:  runEncode,
}

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Report allocations per sector",
	Args:  cobra.NoArgs,
	RunE:  runSectors,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(sectorsCmd)

	for _, c := range []*cobra.Command{generateCmd, encodeCmd} {
		c.Flags().StringVar(&genVendor, "vendor", "", "vendor name")
		c.Flags().StringVar(&genType, "type", "", "asset type name")
		c.Flags().StringVar(&genSector, "sector", "", "sector name")
		c.Flags().StringVar(&genLocation, "location", "", "location name")
	}
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of identifiers to allocate")
	encodeCmd.Flags().IntVar(&genNumber, "number", 0, "sequence number")
	_ = encodeCmd.MarkFlagRequired("number")
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 0, "also preview the numbers of a batch this size")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := eng.Generate(cmd.Context(), generator.Request{
		Vendor:   genVendor,
		Type:     genType,
		Sector:   genSector,
		Location: genLocation,
		Count:    genCount,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return render(out, result, func() {
		output.WriteIdentifierTable(out, result.Identifiers)
		fmt.Fprintf(out, "\nbatch %s\n", result.Batch.ID)
	})
}

func runNext(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	sector := args[0]
	next := eng.NextAvailable(sector)
	var preview []int
	if nextCount > 0 {
		preview = eng.Preview(sector, nextCount)
	}

	out := cmd.OutOrStdout()
	obj := map[string]any{"sector": sector, "next": next}
	if preview != nil {
		obj["preview"] = preview
	}
	return render(out, obj, func() {
		fmt.Fprintln(out, next)
		if len(preview) > 0 {
			fmt.Fprintf(out, "batch of %d: %s\n", len(preview), joinInts(preview))
		}
	})
}

func runDecode(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	var decoded []*generator.Decoded
	var failed []string
	for _, h := range args {
		d, ok := eng.Decode(h)
		if !ok {
			failed = append(failed, h)
			continue
		}
		decoded = append(decoded, d)
	}

	out := cmd.OutOrStdout()
	if err := render(out, decoded, func() {
		if len(decoded) == 1 {
			newUIWriter(out).Decoded(decoded[0])
			return
		}
		if len(decoded) > 0 {
			output.WriteDecodedTable(out, decoded)
		}
	}); err != nil {
		return err
	}

	if len(failed) > 0 {
		return errors.Validationf("not %s identifiers: %v", eng.Prefix(), failed)
	}
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	hostname, err := eng.Encode(generator.EncodeRequest{
		Vendor:   genVendor,
		Type:     genType,
		Sector:   genSector,
		Location: genLocation,
		Number:   genNumber,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	allocated := eng.IsAllocated(hostname)
	return render(out, map[string]any{"hostname": hostname, "allocated": allocated}, func() {
		if allocated {
			fmt.Fprintf(out, "%s (allocated)\n", hostname)
			return
		}
		fmt.Fprintln(out, hostname)
	})
}

func runSectors(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	sectors := eng.Sectors()
	out := cmd.OutOrStdout()
	return render(out, sectors, func() {
		if len(sectors) == 0 {
			fmt.Fprintln(out, "No identifiers allocated yet.")
			return
		}
		output.WriteSectorTable(out, sectors)
	})
}

func joinInts(ns []int) string {
	s := ""
	for i, n := range ns {
		if i > 0 {
			s += ", "
		}
		s += strconv.Itoa(n)
	}
	return s
}
