package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/internal/dialect"
	"github.com/virtio-magma/magmagen/internal/generator"
)

const testInput = "testdata/magma.json"

func TestRunGenerate(t *testing.T) {
	tempDir := t.TempDir()

	for _, format := range []string{"fuchsia", "linux"} {
		out := filepath.Join(tempDir, format+".h")
		if err := runGenerate(config.Default(), format, testInput, out); err != nil {
			t.Fatalf("runGenerate(%s) failed: %v", format, err)
		}
		first, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}

		// Regenerating over the existing file is idempotent.
		if err := runGenerate(config.Default(), format, testInput, out); err != nil {
			t.Fatalf("second runGenerate(%s) failed: %v", format, err)
		}
		second, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s output changed between runs", format)
		}
		if !strings.Contains(string(first), "VIRTIO_MAGMA_CMD_CREATE_CONTEXT = 0x1003,") {
			t.Errorf("%s output lacks create_context command", format)
		}
	}
}

func TestRunGenerate_BadFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "virtio_magma.h")

	err := runGenerate(config.Default(), "windows", testInput, out)
	if err == nil {
		t.Fatal("runGenerate() with unknown format succeeded")
	}
	if !errors.Is(err, dialect.ErrUnknown) {
		t.Errorf("error = %v, want dialect.ErrUnknown", err)
	}
	if got := exitCode(err); got != exitBadFormat {
		t.Errorf("exitCode() = %d, want %d", got, exitBadFormat)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file created for unknown format")
	}
}

func TestRunGenerate_Collision(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "magma.json")
	content := `{"magma-interface": {"next-free-ordinal": 4, "exports": [
		{"name": "magma_a", "ordinal": 2, "arguments": [], "type": "void"},
		{"name": "magma_b", "ordinal": 2, "arguments": [], "type": "void"}
	]}}`
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(tempDir, "virtio_magma.h")

	err := runGenerate(config.Default(), "linux", input, out)
	if !errors.Is(err, generator.ErrIDCollision) {
		t.Fatalf("runGenerate() error = %v, want ErrIDCollision", err)
	}
	if got := exitCode(err); got != exitFailure {
		t.Errorf("exitCode() = %d, want %d", got, exitFailure)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file written despite collision")
	}
}

func TestRunGenerate_MissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "virtio_magma.h")
	err := runGenerate(config.Default(), "fuchsia", "testdata/missing.json", out)
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Fatalf("runGenerate() error = %v, want read failure", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file created for missing input")
	}
}

func TestRunGenerate_ConfigLabel(t *testing.T) {
	cfg := config.Default()
	cfg.Gen.GeneratorLabel = "//tools/magmagen"
	out := filepath.Join(t.TempDir(), "virtio_magma.h")

	if err := runGenerate(cfg, "fuchsia", testInput, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "//   //tools/magmagen\n") {
		t.Error("configured generator label not used")
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrong arg count", exactArgs(3)(rootCmd, []string{"fuchsia"}), exitUsage},
		{"plain failure", errors.New("boom"), exitFailure},
		{"wrapped usage", &usageError{err: errors.New("bad"), code: exitBadFormat}, exitBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected an error")
			}
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}

	if err := exactArgs(3)(rootCmd, []string{"a", "b", "c"}); err != nil {
		t.Errorf("exactArgs(3) rejected three args: %v", err)
	}
}

func TestRootCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "virtio_magma.h")

	rootCmd.SetArgs([]string{"linux", testInput, out})
	if _, err := rootCmd.ExecuteC(); err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("header not written: %v", err)
	}

	rootCmd.SetArgs([]string{"linux", testInput})
	_, err := rootCmd.ExecuteC()
	if got := exitCode(err); err == nil || got != exitUsage {
		t.Errorf("two args: err = %v, exit code %d, want %d", err, got, exitUsage)
	}

	rootCmd.SetArgs([]string{"--no-such-flag", "linux", testInput, out})
	_, err = rootCmd.ExecuteC()
	if got := exitCode(err); err == nil || got != exitUsage {
		t.Errorf("unknown flag: err = %v, exit code %d, want %d", err, got, exitUsage)
	}

	rootCmd.SetArgs([]string{"macos", testInput, out})
	_, err = rootCmd.ExecuteC()
	if got := exitCode(err); err == nil || got != exitBadFormat {
		t.Errorf("bad format: err = %v, exit code %d, want %d", err, got, exitBadFormat)
	}

	rootCmd.SetArgs(nil)
}
