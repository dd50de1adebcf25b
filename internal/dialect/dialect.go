package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for a format name that is not supported.
var ErrUnknown = errors.New("unknown header format")

// Dialect selects the output conventions of the generated header.
// It controls syntax only; every dialect describes the same protocol.
type Dialect int

const (
	// Fuchsia emits a Zircon header: typedef'd structs, __PACKED and extern "C" guards.
	Fuchsia Dialect = iota
	// Linux emits a kernel uapi header: bare structs, __attribute((packed)) and tabs.
	Linux
)

// Names lists the accepted format names in the order they are documented.
var Names = []string{"fuchsia", "linux"}

// Parse maps a command-line format name to its Dialect.
func Parse(name string) (Dialect, error) {
	switch name {
	case "fuchsia":
		return Fuchsia, nil
	case "linux":
		return Linux, nil
	default:
		return 0, fmt.Errorf("%w: %q (allowed: %s)", ErrUnknown, name, strings.Join(Names, ", "))
	}
}

func (d Dialect) String() string {
	switch d {
	case Fuchsia:
		return "fuchsia"
	case Linux:
		return "linux"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

var wireTypes = map[Dialect]map[int]string{
	Fuchsia: {
		1: "uint8_t",
		2: "uint16_t",
		4: "uint32_t",
		8: "uint64_t",
	},
	Linux: {
		1: "u8",
		2: "__le16",
		4: "__le32",
		8: "__le64",
	},
}

// WireType returns the fixed-width integer spelling for a byte width.
// The boolean is false when the dialect has no type of that width.
func (d Dialect) WireType(width int) (string, bool) {
	t, ok := wireTypes[d][width]
	return t, ok
}

// Indent is the indentation unit used inside braces.
func (d Dialect) Indent() string {
	if d == Linux {
		return "\t"
	}
	return "    "
}

// Includes returns the include targets, brackets included.
func (d Dialect) Includes() []string {
	if d == Linux {
		return []string{
			"<linux/virtio_ids.h>",
			"<linux/virtio_config.h>",
			"<linux/virtmagma.h>",
		}
	}
	return []string{
		"<stdint.h>",
		"<zircon/compiler.h>",
	}
}

// Guard is the include guard macro.
func (d Dialect) Guard() string {
	if d == Linux {
		return "_LINUX_VIRTIO_MAGMA_H"
	}
	return "SRC_GRAPHICS_LIB_MAGMA_INCLUDE_VIRTIO_VIRTIO_MAGMA_H_"
}

// LinkageGuards returns the markers wrapping the declarations for C++ callers.
// Both are empty for dialects without linkage guards.
func (d Dialect) LinkageGuards() (begin, end string) {
	if d == Fuchsia {
		return "__BEGIN_CDECLS", "__END_CDECLS"
	}
	return "", ""
}

// Typedef reports whether structs are declared as typedefs with a _t alias.
func (d Dialect) Typedef() bool {
	return d == Fuchsia
}

// Packed is the packing attribute placed after a closing brace.
func (d Dialect) Packed() string {
	if d == Fuchsia {
		return "__PACKED"
	}
	return "__attribute((packed))"
}

// StructRef returns how a field refers to the struct with the given tag.
func (d Dialect) StructRef(tag string) string {
	if d.Typedef() {
		return tag + "_t"
	}
	return "struct " + tag
}

// Comment renders lines as a comment block ending in a newline.
// Fuchsia uses one // comment per line. Linux opens a /* block on the first
// line, indents continuation lines by three spaces and closes on its own line.
func (d Dialect) Comment(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	if d == Fuchsia {
		for _, line := range lines {
			b.WriteString("// " + line + "\n")
		}
		return b.String()
	}
	b.WriteString("/* " + lines[0] + "\n")
	for _, line := range lines[1:] {
		b.WriteString("   " + line + "\n")
	}
	b.WriteString(" */\n")
	return b.String()
}
