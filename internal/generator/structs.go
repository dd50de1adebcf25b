package generator

import (
	"github.com/virtio-magma/magmagen/internal/schema"
)

const (
	structPrefix = "virtio_magma_"
	ctrlHdrTag   = structPrefix + "ctrl_hdr"
	configTag    = structPrefix + "config"
	returnField  = "result_return"
)

// Field is one member of a packed struct.
type Field struct {
	Type string
	Name string
}

// Struct is a packed struct definition in dialect syntax.
type Struct struct {
	Name    string
	Fields  []Field
	Typedef bool
	Packed  string
	Indent  string
}

// FieldNames returns the member names in declaration order.
func (s Struct) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// CallStructs holds the request and response structs of one export.
type CallStructs struct {
	Request  Struct
	Response Struct
}

func (g *Generator) newStruct(tag string) Struct {
	return Struct{
		Name:    tag,
		Typedef: g.dialect.Typedef(),
		Packed:  g.dialect.Packed(),
		Indent:  g.dialect.Indent(),
	}
}

func (g *Generator) headerField() Field {
	return Field{Type: g.dialect.StructRef(ctrlHdrTag), Name: "hdr"}
}

func (g *Generator) appendArgs(s *Struct, args []schema.Argument) error {
	for _, a := range args {
		wt, err := g.types.WireType(a.Type)
		if err != nil {
			return err
		}
		s.Fields = append(s.Fields, Field{Type: wt, Name: a.Name})
	}
	return nil
}

// RequestStruct builds virtio_magma_<name>_ctrl: the control header followed by
// every input argument.
func (g *Generator) RequestStruct(e schema.Export) (Struct, error) {
	s := g.newStruct(structPrefix + e.BareName() + "_ctrl")
	s.Fields = append(s.Fields, g.headerField())
	if err := g.appendArgs(&s, e.Inputs()); err != nil {
		return Struct{}, err
	}
	return s, nil
}

// ResponseStruct builds virtio_magma_<name>_resp: the control header, every
// output argument and the return value unless the export returns void.
func (g *Generator) ResponseStruct(e schema.Export) (Struct, error) {
	s := g.newStruct(structPrefix + e.BareName() + "_resp")
	s.Fields = append(s.Fields, g.headerField())
	if err := g.appendArgs(&s, e.Outputs()); err != nil {
		return Struct{}, err
	}
	if e.HasReturn() {
		wt, err := g.types.WireType(e.Type)
		if err != nil {
			return Struct{}, err
		}
		s.Fields = append(s.Fields, Field{Type: wt, Name: returnField})
	}
	return s, nil
}

// CtrlHdrStruct builds the header that starts every request and response.
func (g *Generator) CtrlHdrStruct() (Struct, error) {
	s := g.newStruct(ctrlHdrTag)
	wt, err := g.types.wireTypeForWidth(4)
	if err != nil {
		return Struct{}, err
	}
	s.Fields = []Field{
		{Type: wt, Name: "type"},
		{Type: wt, Name: "flags"},
	}
	return s, nil
}

// ConfigStruct builds the device configuration space layout.
func (g *Generator) ConfigStruct() (Struct, error) {
	s := g.newStruct(configTag)
	wt, err := g.types.wireTypeForWidth(1)
	if err != nil {
		return Struct{}, err
	}
	s.Fields = []Field{{Type: wt, Name: "dummy"}}
	return s, nil
}
