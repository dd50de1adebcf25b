package generator

import (
	"fmt"
	"log/slog"

	"github.com/virtio-magma/magmagen/internal/config"
	"github.com/virtio-magma/magmagen/internal/dialect"
	"github.com/virtio-magma/magmagen/internal/schema"
)

// licenseLines open every generated header.
var licenseLines = []string{
	"Copyright 2018 The Fuchsia Authors. All rights reserved.",
	"Use of this source code is governed by a BSD-style license that can be",
	"found in the LICENSE file.",
}

// Options contains the settings of one generation run.
type Options struct {
	// Dialect selects the header conventions.
	Dialect dialect.Dialect
	// GeneratorLabel is quoted in the autogeneration warning. Empty uses
	// config.DefaultGeneratorLabel.
	GeneratorLabel string
	// Types adds exact-name type widths on top of the built-in rules.
	Types map[string]int
}

// OptionsFromConfig builds Options for d from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, d dialect.Dialect) Options {
	return Options{
		Dialect:        d,
		GeneratorLabel: cfg.Gen.GeneratorLabel,
		Types:          cfg.Types,
	}
}

// Generator renders the virtio-magma header for one dialect.
type Generator struct {
	dialect dialect.Dialect
	types   *TypeResolver
	label   string
}

// New returns a Generator for opts.
func New(opts Options) *Generator {
	label := opts.GeneratorLabel
	if label == "" {
		label = config.DefaultGeneratorLabel
	}
	return &Generator{
		dialect: opts.Dialect,
		types:   NewTypeResolver(opts.Dialect, opts.Types),
		label:   label,
	}
}

// headerData feeds virtio_magma.h.tmpl.
type headerData struct {
	License      string
	Warning      string
	Guard        string
	GuardComment string
	Includes     []string
	LinkageBegin string
	LinkageEnd   string
	Config       Struct
	Enums        enumBlock
	CtrlHdr      Struct
	Calls        []CallStructs
}

// Render produces the complete header text for iface.
// Nothing is written; an id collision or unknown width aborts with an error.
func (g *Generator) Render(iface *schema.Interface) ([]byte, error) {
	ct, err := AssignControlTypes(iface)
	if err != nil {
		return nil, err
	}
	slog.Debug("Assigned control types", "calls", len(ct.Calls), "errors", len(ct.Errors))

	data, err := g.headerData(iface, ct)
	if err != nil {
		return nil, err
	}

	t, err := parseTemplates(GetFuncMap(g.dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	out, err := executeTemplate(t, headerTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render header: %w", err)
	}
	return out, nil
}

func (g *Generator) headerData(iface *schema.Interface, ct *ControlTypes) (*headerData, error) {
	d := g.dialect
	begin, end := d.LinkageGuards()
	data := &headerData{
		License: d.Comment(licenseLines...),
		Warning: d.Comment(
			"NOTE: DO NOT EDIT THIS FILE! It is generated automatically by:",
			"  "+g.label,
		),
		Guard:        d.Guard(),
		GuardComment: d.Comment(d.Guard()),
		Includes:     d.Includes(),
		LinkageBegin: begin,
		LinkageEnd:   end,
		Enums:        g.enumBlock(ct),
	}

	var err error
	if data.Config, err = g.ConfigStruct(); err != nil {
		return nil, err
	}
	if data.CtrlHdr, err = g.CtrlHdrStruct(); err != nil {
		return nil, err
	}

	for _, export := range iface.Exports {
		req, err := g.RequestStruct(export)
		if err != nil {
			return nil, fmt.Errorf("export '%s': %w", export.Name, err)
		}
		resp, err := g.ResponseStruct(export)
		if err != nil {
			return nil, fmt.Errorf("export '%s': %w", export.Name, err)
		}
		slog.Debug("Built structs", "export", export.Name, "request_fields", len(req.Fields), "response_fields", len(resp.Fields))
		data.Calls = append(data.Calls, CallStructs{Request: req, Response: resp})
	}
	return data, nil
}

// Generate renders the header for iface and replaces outputPath with it.
// The file is only touched once rendering has succeeded.
//
// Parameters:
//   - iface: The loaded interface definition.
//   - opts: Dialect and text settings.
//   - outputPath: Destination header path.
//
// Returns:
//   - error: An error if rendering or writing fails.
func Generate(iface *schema.Interface, opts Options, outputPath string) error {
	out, err := New(opts).Render(iface)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	slog.Info("Generated header", "dialect", opts.Dialect.String(), "exports", len(iface.Exports), "file", outputPath)
	return nil
}
