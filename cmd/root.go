package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/pkg/log"
)

var (
	// configPath is set via the --config flag.
	configPath string
	// logLevel overrides logging.level from the configuration when set.
	logLevel string
	// cfg is the configuration loaded before any command runs.
	cfg *config.Config
)

// rootCmd generates the header when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "magmagen FORMAT INPUT OUTPUT",
	Short: "Generate the virtio-magma wire protocol header",
	Long: `magmagen generates the virtio magma header from a json definition of the
magma interface, for either fuchsia or the linux kernel.

  FORMAT   either "fuchsia" or "linux"
  INPUT    json (or yaml) file containing the magma interface definition
  OUTPUT   destination path for the virtio header file to generate`,
	Example:       "  magmagen fuchsia ../magma_abi/magma.json ./virtio_magma.h",
	Args:          exactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cfg, args[0], args[1], args[2])
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			fmt.Fprint(os.Stderr, c.UsageString())
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a magmagen.yaml or magmagen.toml configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err, code: exitUsage}
	})
}

// loadConfig reads --config when given, applies --log-level and initializes logging.
func loadConfig() error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := config.Validate(cfg); err != nil {
			return &usageError{err: err, code: exitUsage}
		}
	}

	return log.Init(cfg.Logging.Path, cfg.Logging.Level)
}
