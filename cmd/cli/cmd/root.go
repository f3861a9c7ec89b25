// Package cmd provides the CLI commands for hostforge.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hostforge/adapters/storage"
	"hostforge/core/engine"
	"hostforge/core/output"
	"hostforge/core/ui"
	"hostforge/internal/config"
	"hostforge/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	storePath    string
	backend      string
	noColor      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hostforge",
	Short: "Allocate and check asset hostnames",
	Long: `hostforge allocates structured, collision-free asset identifiers
(PREFIX-<vendor><type><sector><location>-<seq>) and checks arbitrary
hostnames against network naming conventions.

Examples:
  hostforge generate --vendor vendor1 --type laptop --sector ti --location fabrica --count 3
  hostforge decode CNL-1L011-001
  hostforge validate web-prod-01 Web_01 --duplicates
  hostforge catalog add sector juridico 04`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the CLI with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hostforge/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "state file or database path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file, sqlite, memory")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openEngine opens the configured store and builds an engine over it.
// The caller closes the engine.
func openEngine(ctx context.Context) (*engine.Engine, error) {
	cfg := config.Get()

	b := cfg.Storage.Backend
	if backend != "" {
		b = backend
	}
	path := cfg.Storage.Path
	if storePath != "" {
		path = storePath
	}

	logging.Debug("opening store")
	store, err := storage.Open(storage.Backend(b), path)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, store, engine.Config{
		Prefix:   cfg.Naming.Prefix,
		MaxBatch: cfg.Naming.MaxBatch,
		Logger:   logging.Named("engine"),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return eng, nil
}

// resolveFormat returns the --output format, falling back to the config
func resolveFormat() (output.Format, error) {
	f := outputFormat
	if f == "" {
		f = config.Get().Output.DefaultFormat
	}
	return output.ParseFormat(f)
}

// render writes obj as JSON/YAML, or calls table for the table format
func render(w io.Writer, obj any, table func()) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		table()
		return nil
	}
	return output.WriteObject(w, format, obj)
}

func newUIWriter(w io.Writer) *ui.Writer {
	uw := ui.NewWriter(w, noColor || config.Get().Output.NoColor)
	if verbose {
		uw.SetVerbosity(2)
	}
	return uw
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hostforge version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat()
		if err != nil {
			return err
		}
		if format == output.FormatTable {
			format = output.FormatJSON
		}
		return output.WriteObject(cmd.OutOrStdout(), format, config.Get())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}
