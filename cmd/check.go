package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/internal/generator"
	"github.com/virtio-magma/magmagen/internal/schema"
	"github.com/virtio-magma/magmagen/internal/ui"
)

// errHeaderMismatch is returned by check when the header on disk is stale.
var errHeaderMismatch = errors.New("header is out of date")

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check FORMAT INPUT HEADER",
	Short: "Verify that an existing header matches what would be generated",
	Long: `Regenerates the header in memory and compares it byte for byte with HEADER.
Differences are printed as a unified diff and the command exits with status 1.
Nothing is written.`,
	Args: exactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cfg, cmd.OutOrStdout(), args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck regenerates the header for format and diffs it against header.
func runCheck(cfg *config.Config, w io.Writer, format, input, header string) error {
	d, err := parseFormat(format)
	if err != nil {
		return err
	}

	iface, err := schema.Load(input)
	if err != nil {
		return err
	}

	want, err := generator.New(generator.OptionsFromConfig(cfg, d)).Render(iface)
	if err != nil {
		return err
	}

	got, err := os.ReadFile(header)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", header, err)
	}

	if bytes.Equal(got, want) {
		ui.PrintSuccess("Up to date", header)
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(got)),
		B:        difflib.SplitLines(string(want)),
		FromFile: header,
		ToFile:   header + " (regenerated)",
		Context:  3,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(w, diff)
	ui.PrintError("Out of date", header)
	return fmt.Errorf("%s: %w", header, errHeaderMismatch)
}
