package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/virtio-magma/magmagen/internal/schema"
)

const (
	commandIDBase  = 0x1000
	responseIDBase = 0x2000
	errorIDBase    = 0x3000
	// maxIDCount bounds the whole control type id space.
	maxIDCount = 0x4000
)

var (
	// ErrIDCollision is returned when two control types resolve to the same id.
	ErrIDCollision = errors.New("control type id collision")
	// ErrIDOutOfRange is returned for an id outside the control type id space.
	ErrIDOutOfRange = errors.New("control type id out of range")
	// ErrOrdinalOutOfRange is returned for an ordinal not below next-free-ordinal.
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")
)

const (
	enumPrefix     = "VIRTIO_MAGMA_"
	commandPrefix  = enumPrefix + "CMD_"
	responsePrefix = enumPrefix + "RESP_"
	errorPrefix    = responsePrefix + "ERR_"

	// InvalidName is what the string lookup returns for unknown values.
	InvalidName = "[invalid virtio_magma_ctrl_type]"
)

// errorKinds are assigned errorIDBase+1 onwards in this order.
var errorKinds = []string{
	"UNIMPLEMENTED",
	"INTERNAL",
	"HOST_DISCONNECTED",
	"OUT_OF_MEMORY",
	"INVALID_COMMAND",
	"INVALID_ARGUMENT",
}

const (
	// InvalidCommandName is the value returned for commands without a response.
	InvalidCommandName = errorPrefix + "INVALID_COMMAND"
	// InvalidArgumentName is the invalid argument error response.
	InvalidArgumentName = errorPrefix + "INVALID_ARGUMENT"
)

// IDError describes a failed id assignment.
type IDError struct {
	Name string
	ID   int
	Err  error
}

func (e *IDError) Error() string {
	return fmt.Sprintf("%v: %s = %s", e.Err, e.Name, formatID(e.ID))
}

func (e *IDError) Unwrap() error {
	return e.Err
}

// EnumEntry is one value of virtio_magma_ctrl_type.
type EnumEntry struct {
	Name string
	ID   int
}

// Hex returns the id as it appears in the enum.
func (e EnumEntry) Hex() string {
	return formatID(e.ID)
}

// CallIDs pairs the command and response values of one export.
type CallIDs struct {
	Export   string
	Command  EnumEntry
	Response EnumEntry
}

// ControlTypes is the complete, collision-free set of control type values.
type ControlTypes struct {
	Calls  []CallIDs
	Errors []EnumEntry
}

func formatID(id int) string {
	return fmt.Sprintf("0x%04X", id)
}

// idTable records every id handed out during one generation run.
type idTable struct {
	used [maxIDCount]bool
}

func (t *idTable) assign(name string, id int) (EnumEntry, error) {
	if id < 0 || id >= maxIDCount {
		return EnumEntry{}, &IDError{Name: name, ID: id, Err: ErrIDOutOfRange}
	}
	if t.used[id] {
		return EnumEntry{}, &IDError{Name: name, ID: id, Err: ErrIDCollision}
	}
	t.used[id] = true
	return EnumEntry{Name: name, ID: id}, nil
}

// AssignControlTypes numbers every command, response and error value of iface.
// It stops at the first ordinal that is out of range or whose ids are taken.
func AssignControlTypes(iface *schema.Interface) (*ControlTypes, error) {
	var table idTable
	ct := &ControlTypes{}

	for _, export := range iface.Exports {
		if export.Ordinal >= iface.NextFreeOrdinal {
			return nil, fmt.Errorf("export '%s': %w: %d >= next-free-ordinal %d",
				export.Name, ErrOrdinalOutOfRange, export.Ordinal, iface.NextFreeOrdinal)
		}
		name := strings.ToUpper(export.BareName())
		cmd, err := table.assign(commandPrefix+name, commandIDBase+export.Ordinal)
		if err != nil {
			return nil, err
		}
		resp, err := table.assign(responsePrefix+name, responseIDBase+export.Ordinal)
		if err != nil {
			return nil, err
		}
		ct.Calls = append(ct.Calls, CallIDs{Export: export.Name, Command: cmd, Response: resp})
	}

	for i, kind := range errorKinds {
		entry, err := table.assign(errorPrefix+kind, errorIDBase+1+i)
		if err != nil {
			return nil, err
		}
		ct.Errors = append(ct.Errors, entry)
	}

	return ct, nil
}

// Lookup returns the name of the value with the given id, mirroring
// virtio_magma_ctrl_type_string. Unknown ids yield InvalidName.
func (ct *ControlTypes) Lookup(id int) string {
	for _, c := range ct.Calls {
		switch id {
		case c.Command.ID:
			return c.Command.Name
		case c.Response.ID:
			return c.Response.Name
		}
	}
	for _, e := range ct.Errors {
		if e.ID == id {
			return e.Name
		}
	}
	return InvalidName
}

// ExpectedResponse returns the response expected for a command id, mirroring
// virtio_magma_expected_response_type. Anything that is not a command yields
// the invalid command error.
func (ct *ControlTypes) ExpectedResponse(id int) EnumEntry {
	for _, c := range ct.Calls {
		if c.Command.ID == id {
			return c.Response
		}
	}
	return ct.errorEntry(InvalidCommandName)
}

func (ct *ControlTypes) errorEntry(name string) EnumEntry {
	for _, e := range ct.Errors {
		if e.Name == name {
			return e
		}
	}
	return EnumEntry{Name: name}
}

// Entries returns every value in enum declaration order: commands, responses, errors.
func (ct *ControlTypes) Entries() []EnumEntry {
	entries := make([]EnumEntry, 0, 2*len(ct.Calls)+len(ct.Errors))
	for _, c := range ct.Calls {
		entries = append(entries, c.Command)
	}
	for _, c := range ct.Calls {
		entries = append(entries, c.Response)
	}
	return append(entries, ct.Errors...)
}
