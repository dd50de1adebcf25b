package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/virtio-magma/magmagen/internal/assets"
	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/internal/ui"
)

var (
	initFormat string
	initForce  bool
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write a default configuration file and a sample interface definition",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(dir, initFormat, initForce)
	},
}

func init() {
	initCmd.Flags().StringVar(&initFormat, "format", "yaml", "Configuration format (yaml, toml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

// runInit scaffolds a configuration file with every default spelled out and
// the sample interface definition into dir.
//
// Parameters:
//   - dir: The directory to write into; created if missing.
//   - format: "yaml" or "toml" for the configuration file.
//   - force: Overwrite files that already exist.
//
// Returns:
//   - error: An error if a file exists without force or writing fails.
func runInit(dir, format string, force bool) error {
	data, err := config.Marshal(config.Default(), format)
	if err != nil {
		return &usageError{err: err, code: exitUsage}
	}

	ext := format
	if ext == "yml" {
		ext = "yaml"
	}
	files := map[string][]byte{
		"magmagen." + ext: data,
	}
	for name, content := range assets.AssetsMap {
		files[name] = []byte(content)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if !force {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return err
		}
		ui.PrintSuccess("Created", path)
	}
	return nil
}
