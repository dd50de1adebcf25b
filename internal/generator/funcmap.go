package generator

import (
	"bytes"
	"text/template"

	"github.com/virtio-magma/magmagen/internal/dialect"
	"github.com/virtio-magma/magmagen/internal/templates"
)

const (
	headerTemplate = "virtio_magma.h.tmpl"
	structTemplate = "struct.h.tmpl"
	enumsTemplate  = "enums.h.tmpl"
)

// GetFuncMap returns the template functions bound to a dialect.
func GetFuncMap(d dialect.Dialect) template.FuncMap {
	return template.FuncMap{
		"comment": d.Comment,
	}
}

// parseTemplates loads the header template together with the section templates
// it invokes by name.
func parseTemplates(funcMap template.FuncMap) (*template.Template, error) {
	root := template.New(headerTemplate).Funcs(funcMap)
	for _, name := range []string{headerTemplate, structTemplate, enumsTemplate} {
		content, err := templates.Get(name)
		if err != nil {
			return nil, err
		}
		t := root
		if name != headerTemplate {
			t = root.New(name)
		}
		if _, err := t.Parse(content); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// executeTemplate runs the named template against data and returns the output.
func executeTemplate(t *template.Template, name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
