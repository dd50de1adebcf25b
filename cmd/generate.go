package cmd

import (
	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/internal/dialect"
	"github.com/virtio-magma/magmagen/internal/generator"
	"github.com/virtio-magma/magmagen/internal/schema"
	"github.com/virtio-magma/magmagen/internal/ui"
)

// parseFormat resolves the FORMAT argument, reporting unknown names as a
// bad-format usage error.
func parseFormat(format string) (dialect.Dialect, error) {
	d, err := dialect.Parse(format)
	if err != nil {
		return 0, &usageError{err: err, code: exitBadFormat}
	}
	return d, nil
}

// runGenerate loads the interface definition and writes the header for format.
// The output file is not touched unless the whole header renders.
//
// Parameters:
//   - cfg: The loaded magmagen configuration.
//   - format: The header dialect name ("fuchsia" or "linux").
//   - input: Path of the interface definition.
//   - output: Destination header path.
//
// Returns:
//   - error: An error if the format is unknown or generation fails.
func runGenerate(cfg *config.Config, format, input, output string) error {
	d, err := parseFormat(format)
	if err != nil {
		return err
	}

	iface, err := schema.Load(input)
	if err != nil {
		return err
	}

	if err := generator.Generate(iface, generator.OptionsFromConfig(cfg, d), output); err != nil {
		return err
	}

	ui.PrintSuccess("Generated", output)
	return nil
}
