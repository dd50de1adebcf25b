package generator

// enumBlock feeds enums.h.tmpl: the control type enum and both lookup functions.
type enumBlock struct {
	Indent          string
	Packed          string
	Calls           []CallIDs
	Errors          []EnumEntry
	InvalidName     string
	DefaultResponse string
}

func (g *Generator) enumBlock(ct *ControlTypes) enumBlock {
	return enumBlock{
		Indent:          g.dialect.Indent(),
		Packed:          g.dialect.Packed(),
		Calls:           ct.Calls,
		Errors:          ct.Errors,
		InvalidName:     InvalidName,
		DefaultResponse: InvalidCommandName,
	}
}
