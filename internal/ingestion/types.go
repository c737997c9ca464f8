package ingestion

import (
	"context"
	"fmt"
)

// FieldType enumerates the value kinds a template field may declare.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
)

// Field declares one extractable value of a document template.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
}

// Template names a document shape and the fields expected from it.
type Template struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Validate checks an extracted document against the template: every required
// field must be present and no unknown fields are accepted.
func (t Template) Validate(doc Document) error {
	known := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		known[f.Name] = true
		if f.Required {
			if _, ok := doc.Fields[f.Name]; !ok {
				return fmt.Errorf("document is missing required field %q of template %q", f.Name, t.Name)
			}
		}
	}
	for name := range doc.Fields {
		if !known[name] {
			return fmt.Errorf("document carries field %q not declared by template %q", name, t.Name)
		}
	}
	return nil
}

// Document is the structured result of extracting a source file against a
// template.
type Document struct {
	Template string         `json:"template"`
	Source   string         `json:"source"`
	Fields   map[string]any `json:"fields"`
}

// Extractor turns raw document bytes into a structured Document. The PDF
// pipeline plugs in here; tests use table-driven fakes.
type Extractor interface {
	Extract(ctx context.Context, source string, data []byte, template Template) (Document, error)
}
