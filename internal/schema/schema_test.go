package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "magma-interface": {
    "next-free-ordinal": 8,
    "exports": [
      {
        "name": "magma_create_context",
        "ordinal": 3,
        "arguments": [
          {"name": "connection", "type": "magma_handle_t"},
          {"name": "context_id_out", "type": "uint32_t*"}
        ],
        "type": "void"
      }
    ]
  }
}`

const sampleYAML = `magma-interface:
  next-free-ordinal: 8
  exports:
    - name: magma_create_context
      ordinal: 3
      arguments:
        - name: connection
          type: magma_handle_t
        - name: context_id_out
          type: uint32_t*
      type: void
`

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", sampleJSON, JSON},
		{"yaml", sampleYAML, YAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iface, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if iface.NextFreeOrdinal != 8 {
				t.Errorf("NextFreeOrdinal = %d, want 8", iface.NextFreeOrdinal)
			}
			if len(iface.Exports) != 1 {
				t.Fatalf("got %d exports, want 1", len(iface.Exports))
			}
			e := iface.Exports[0]
			if e.BareName() != "create_context" || e.Ordinal != 3 || e.HasReturn() {
				t.Errorf("unexpected export %+v", e)
			}
			if len(e.Arguments) != 2 || e.Arguments[1].Type != "uint32_t*" {
				t.Errorf("unexpected arguments %+v", e.Arguments)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantError string
	}{
		{
			name:      "invalid json",
			data:      `{"magma-interface": `,
			wantError: "unexpected end",
		},
		{
			name:      "missing interface",
			data:      `{"exports": []}`,
			wantError: "no magma-interface",
		},
		{
			name:      "missing prefix",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "create", "ordinal": 1, "arguments": [], "type": "void"}]}}`,
			wantError: `must start with "magma_"`,
		},
		{
			name:      "prefix only",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "magma_", "ordinal": 1, "arguments": [], "type": "void"}]}}`,
			wantError: `must start with "magma_"`,
		},
		{
			name:      "negative ordinal",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "magma_x", "ordinal": -1, "arguments": [], "type": "void"}]}}`,
			wantError: "is negative",
		},
		{
			name:      "missing return type",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "magma_x", "ordinal": 1, "arguments": []}]}}`,
			wantError: "missing return type",
		},
		{
			name:      "unnamed argument",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "magma_x", "ordinal": 1, "arguments": [{"name": "", "type": "uint32_t"}], "type": "void"}]}}`,
			wantError: "missing name",
		},
		{
			name:      "untyped argument",
			data:      `{"magma-interface": {"next-free-ordinal": 2, "exports": [{"name": "magma_x", "ordinal": 1, "arguments": [{"name": "a"}], "type": "void"}]}}`,
			wantError: "missing type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), JSON)
			if err == nil {
				t.Fatalf("Parse() expected error containing %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Parse() error = %v, want substring %q", err, tt.wantError)
			}
		})
	}
}

func TestParse_MissingInterfaceSentinel(t *testing.T) {
	_, err := Parse([]byte(`{}`), JSON)
	if !errors.Is(err, ErrMissingInterface) {
		t.Fatalf("Parse() error = %v, want ErrMissingInterface", err)
	}
}

func TestExport_Arguments(t *testing.T) {
	e := Export{
		Name: "magma_query",
		Arguments: []Argument{
			{Name: "connection", Type: "magma_handle_t"},
			{Name: "value_out", Type: "uint64_t*"},
			{Name: "id", Type: "uint64_t"},
			{Name: "flags_out", Type: "uint32_t*"},
			{Name: "timeout_ns", Type: "uint64_t"},
		},
		Type: "magma_status_t",
	}

	inputs := e.Inputs()
	wantInputs := []string{"connection", "id", "timeout_ns"}
	if len(inputs) != len(wantInputs) {
		t.Fatalf("Inputs() = %+v, want %v", inputs, wantInputs)
	}
	for i, name := range wantInputs {
		if inputs[i].Name != name {
			t.Errorf("Inputs()[%d] = %q, want %q", i, inputs[i].Name, name)
		}
	}

	outputs := e.Outputs()
	wantOutputs := []string{"value_out", "flags_out"}
	if len(outputs) != len(wantOutputs) {
		t.Fatalf("Outputs() = %+v, want %v", outputs, wantOutputs)
	}
	for i, name := range wantOutputs {
		if outputs[i].Name != name {
			t.Errorf("Outputs()[%d] = %q, want %q", i, outputs[i].Name, name)
		}
	}

	if !e.HasReturn() {
		t.Error("HasReturn() = false for magma_status_t")
	}
}

func TestArgument_IsOutput(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"context_id_out", true},
		{"connection", false},
		{"out", false},
		// The marker matches anywhere in the name.
		{"buffer_outline", true},
	}

	for _, tt := range tests {
		if got := (Argument{Name: tt.name, Type: "uint64_t"}).IsOutput(); got != tt.want {
			t.Errorf("IsOutput(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "magma.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "magma.yml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		iface, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) unexpected error: %v", path, err)
		}
		if len(iface.Exports) != 1 {
			t.Errorf("Load(%s) got %d exports", path, len(iface.Exports))
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Load(missing) error = %v, want read failure", err)
	}
}
