package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/resmap-dev/resmap/internal/adapters"
	"github.com/resmap-dev/resmap/internal/config"
	"github.com/resmap-dev/resmap/pkg/resmap"
)

// globalConfig holds the flags shared across every subcommand.
type globalConfig struct {
	vendorDir   string
	packageFile string
	configFile  string
	verbose     int
	quiet       bool
	logJSON     bool
	failFast    bool
}

var globalCfg globalConfig

// NewRootCommand creates the root cobra command and wires every subcommand.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resmap",
		Short: "Repository path mapping and conflict manager",
		Long: `resmap tracks which filesystem paths a set of repository paths resolve
to, detects when two mappings claim the same repository path, and applies
changes to the mapping set atomically with guaranteed rollback on failure.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n", err)
		_ = cmd.Usage()
		return err
	})

	rootCmd.PersistentFlags().StringVarP(&globalCfg.vendorDir, "vendor-dir", "d", "vendor",
		"Root directory package discovery scans for installed packages")
	rootCmd.PersistentFlags().StringVarP(&globalCfg.packageFile, "package-file", "f", "resmap-packages.json",
		"Path to the JSON-backed root package file")
	rootCmd.PersistentFlags().StringVar(&globalCfg.configFile, "config", "resmap.yaml",
		"Path to the resmap configuration file")
	rootCmd.PersistentFlags().CountVarP(&globalCfg.verbose, "verbose", "v",
		"Increase verbosity: -v (info), -vv (debug)")
	rootCmd.PersistentFlags().BoolVarP(&globalCfg.quiet, "quiet", "q", false,
		"Suppress all non-error output")
	rootCmd.PersistentFlags().BoolVar(&globalCfg.logJSON, "log-json", false,
		"Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&globalCfg.failFast, "fail-fast", false,
		"Abort Load on the first unresolvable reference instead of collecting errors")

	rootCmd.AddCommand(
		newMappingsCommand(),
		newConflictsCommand(),
		newApplyCommand(),
		newInspectCommand(),
		newGenerateCommand(),
	)

	return rootCmd
}

// buildClient loads configuration, layers global flag overrides on top, and
// constructs a resmap.Client. Precedence: flags > config file > defaults.
func buildClient(cmd *cobra.Command) (*resmap.Client, error) {
	logger := createLogger()

	loader := config.NewLoader(globalCfg.configFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	vendorDir := cfg.Directories.Vendor
	if cmd.Flags().Changed("vendor-dir") {
		vendorDir = globalCfg.vendorDir
	}
	packageFile := cfg.Directories.PackageFile
	if cmd.Flags().Changed("package-file") {
		packageFile = globalCfg.packageFile
	}

	vendorDir, err = filepath.Abs(vendorDir)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor directory: %w", err)
	}
	packageFile, err = filepath.Abs(packageFile)
	if err != nil {
		return nil, fmt.Errorf("invalid package file path: %w", err)
	}

	clientCfg := resmap.Config{
		VendorDir:       vendorDir,
		PackageFilePath: packageFile,
		AutoInstall:     cfg.Install.AutoInstall,
		FailFast:        globalCfg.failFast,
		Logger:          logger,
	}

	return resmap.NewClient(cmd.Context(), clientCfg)
}

func createLogger() *adapters.SlogLogger {
	if globalCfg.quiet {
		return adapters.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})))
	}

	level := verbosityToLevel(globalCfg.verbose)
	if globalCfg.logJSON {
		return adapters.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	return adapters.NewConsoleLogger(os.Stderr, level.String())
}

func verbosityToLevel(v int) slog.Level {
	switch {
	case v == 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
