package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hostforge/core/output"
	"hostforge/core/validator"
	"hostforge/internal/errors"
)

var (
	validateFile       string
	validateDuplicates bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [hostname]...",
	Short: "Check hostnames against naming conventions",
	Long: `Check hostnames for length, character, label and pattern errors, and
for style warnings (reserved words, generic names, case, underscores).
Exits non-zero when any hostname is invalid.`,
	Example: `  hostforge validate web-prod-01
  hostforge validate --file hosts.txt --duplicates`,
	RunE: runValidate,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <hostname>",
	Short: "Suggest improvements for a hostname",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(suggestCmd)

	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "read hostnames from a file, one per line")
	validateCmd.Flags().BoolVar(&validateDuplicates, "duplicates", false, "also report repeated hostnames")
}

type validateOutput struct {
	Results    []validator.Result    `json:"results" yaml:"results"`
	Duplicates []validator.Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	hostnames := append([]string{}, args...)
	if validateFile != "" {
		fromFile, err := readHostnames(validateFile)
		if err != nil {
			return err
		}
		hostnames = append(hostnames, fromFile...)
	}
	if len(hostnames) == 0 {
		return errors.Validation("no hostnames given")
	}

	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	result := validateOutput{Results: eng.ValidateMultiple(hostnames)}
	if validateDuplicates {
		result.Duplicates = eng.CheckDuplicates(hostnames)
	}

	out := cmd.OutOrStdout()
	if err := render(out, result, func() {
		newUIWriter(out).Reports(result.Results)
		if len(result.Duplicates) > 0 {
			fmt.Fprintln(out)
			output.WriteDuplicateTable(out, result.Duplicates)
		}
	}); err != nil {
		return err
	}

	invalid := 0
	for _, r := range result.Results {
		if !r.Validation.IsValid {
			invalid++
		}
	}
	if invalid > 0 {
		return errors.Validationf("%d of %d hostnames invalid", invalid, len(hostnames))
	}
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	suggestions := eng.Suggestions(args[0])
	out := cmd.OutOrStdout()
	return render(out, map[string]any{"hostname": args[0], "suggestions": suggestions}, func() {
		newUIWriter(out).Suggestions(args[0], suggestions)
	})
}

// readHostnames reads one hostname per line, skipping blanks and # comments
func readHostnames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var hostnames []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hostnames = append(hostnames, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hostnames, nil
}
