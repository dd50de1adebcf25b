package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/virtio-magma/magmagen/internal/generator"
	"github.com/virtio-magma/magmagen/internal/schema"
)

// idsFormat is set via the --output flag.
var idsFormat string

// idsCmd represents the ids command.
var idsCmd = &cobra.Command{
	Use:   "ids INPUT",
	Short: "Print the virtio_magma_ctrl_type id table",
	Long: `Assigns control type ids exactly as header generation does and prints every
command, response and error value with its expected response. Collisions fail
the same way they fail generation.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIDs(cmd.OutOrStdout(), args[0], idsFormat)
	},
}

func init() {
	idsCmd.Flags().StringVarP(&idsFormat, "output", "o", "yaml", "Output format (yaml, toml, json)")
	rootCmd.AddCommand(idsCmd)
}

type idRecord struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	ID       string `json:"id" yaml:"id" toml:"id"`
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty" toml:"expected,omitempty"`
}

type idReport struct {
	ControlTypes []idRecord `json:"control_types" yaml:"control_types" toml:"control_type"`
}

func buildIDReport(ct *generator.ControlTypes) idReport {
	var report idReport
	for _, c := range ct.Calls {
		report.ControlTypes = append(report.ControlTypes, idRecord{
			Name:     c.Command.Name,
			ID:       c.Command.Hex(),
			Kind:     "command",
			Expected: ct.ExpectedResponse(c.Command.ID).Name,
		})
	}
	for _, c := range ct.Calls {
		report.ControlTypes = append(report.ControlTypes, idRecord{Name: c.Response.Name, ID: c.Response.Hex(), Kind: "response"})
	}
	for _, e := range ct.Errors {
		report.ControlTypes = append(report.ControlTypes, idRecord{Name: e.Name, ID: e.Hex(), Kind: "error"})
	}
	return report
}

// runIDs writes the control type table of input to w in the given format.
func runIDs(w io.Writer, input, format string) error {
	var marshal func(interface{}) ([]byte, error)
	switch format {
	case "yaml", "yml":
		marshal = yaml.Marshal
	case "toml":
		marshal = toml.Marshal
	case "json":
		marshal = func(v interface{}) ([]byte, error) {
			data, err := json.MarshalIndent(v, "", "  ")
			return append(data, '\n'), err
		}
	default:
		return &usageError{
			err:  fmt.Errorf("unsupported output format: %s (allowed: yaml, toml, json)", format),
			code: exitUsage,
		}
	}

	iface, err := schema.Load(input)
	if err != nil {
		return err
	}
	ct, err := generator.AssignControlTypes(iface)
	if err != nil {
		return err
	}

	data, err := marshal(buildIDReport(ct))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
