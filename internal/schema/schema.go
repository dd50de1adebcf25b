package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// NamePrefix starts every export name and is dropped from generated identifiers.
	NamePrefix = "magma_"
	// OutputMarker in an argument name marks it as flowing from callee to caller.
	OutputMarker = "_out"
	// Void is the return type of exports that return nothing.
	Void = "void"
)

// ErrMissingInterface is returned when the document has no magma-interface object.
var ErrMissingInterface = errors.New("document has no magma-interface")

// Document is the top level of an interface definition file.
type Document struct {
	Interface *Interface `json:"magma-interface" yaml:"magma-interface"`
}

// Interface describes the full set of magma exports.
type Interface struct {
	// NextFreeOrdinal is one past the largest ordinal an export may use.
	NextFreeOrdinal int      `json:"next-free-ordinal" yaml:"next-free-ordinal"`
	Exports         []Export `json:"exports" yaml:"exports"`
}

// Export is a single interface call.
type Export struct {
	Name      string     `json:"name" yaml:"name"`
	Ordinal   int        `json:"ordinal" yaml:"ordinal"`
	Arguments []Argument `json:"arguments" yaml:"arguments"`
	// Type is the return type; Void for none.
	Type string `json:"type" yaml:"type"`
}

// Argument is a single parameter of an export.
type Argument struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// BareName returns the export name without NamePrefix.
func (e Export) BareName() string {
	return strings.TrimPrefix(e.Name, NamePrefix)
}

// HasReturn reports whether the export returns a value.
func (e Export) HasReturn() bool {
	return e.Type != Void
}

// Inputs returns the arguments sent by the caller, in declared order.
func (e Export) Inputs() []Argument {
	var args []Argument
	for _, a := range e.Arguments {
		if !a.IsOutput() {
			args = append(args, a)
		}
	}
	return args
}

// Outputs returns the arguments returned to the caller, in declared order.
func (e Export) Outputs() []Argument {
	var args []Argument
	for _, a := range e.Arguments {
		if a.IsOutput() {
			args = append(args, a)
		}
	}
	return args
}

// IsOutput reports whether the argument carries OutputMarker anywhere in its name.
// The match is a plain substring test, so a name such as "timeout_ns" is not an
// output but "layout_outer" would be.
func (a Argument) IsOutput() bool {
	return strings.Contains(a.Name, OutputMarker)
}

// Format identifies the encoding of an interface document.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFromPath picks the document format from the file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load reads and validates the interface definition at path.
func Load(path string) (*Interface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	iface, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return iface, nil
}

// Parse decodes and validates an interface document.
func Parse(data []byte, format Format) (*Interface, error) {
	var doc Document
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	if doc.Interface == nil {
		return nil, ErrMissingInterface
	}
	if err := Validate(doc.Interface); err != nil {
		return nil, err
	}
	return doc.Interface, nil
}

// Validate checks the structural rules of an interface.
// Ordinal uniqueness and the next-free-ordinal bound are left to id assignment
// in the generator, which reports them as collisions.
func Validate(iface *Interface) error {
	for i, e := range iface.Exports {
		if !strings.HasPrefix(e.Name, NamePrefix) || len(e.Name) == len(NamePrefix) {
			return fmt.Errorf("export %d: name %q must start with %q", i, e.Name, NamePrefix)
		}
		if e.Ordinal < 0 {
			return fmt.Errorf("export '%s': ordinal %d is negative", e.Name, e.Ordinal)
		}
		if e.Type == "" {
			return fmt.Errorf("export '%s': missing return type", e.Name)
		}
		for j, a := range e.Arguments {
			if a.Name == "" {
				return fmt.Errorf("export '%s' argument %d: missing name", e.Name, j)
			}
			if a.Type == "" {
				return fmt.Errorf("export '%s' argument '%s': missing type", e.Name, a.Name)
			}
		}
	}
	return nil
}
