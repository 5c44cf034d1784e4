// Package presenter provides schema-aware text rendering for API entities.
// It sits between commands and the output writer, using declarative YAML
// schemas to turn generic payloads into readable terminal output.
package presenter

// EntitySchema describes how an entity wants to be presented.
// Schemas are declarative metadata loaded from embedded YAML files.
type EntitySchema struct {
	Entity   string               `yaml:"entity"`
	Identity Identity             `yaml:"identity"`
	Fields   map[string]FieldSpec `yaml:"fields"`
	Views    ViewSpecs            `yaml:"views"`
}

// Identity identifies the entity's label and ID fields.
type Identity struct {
	Label string `yaml:"label"`
	ID    string `yaml:"id"`
}

// FieldSpec describes how a single field should be presented.
type FieldSpec struct {
	Label  string            `yaml:"label"`
	Format string            `yaml:"format"`
	Labels map[string]string `yaml:"labels"`
}

// ViewSpecs declares which fields appear per presentation context.
type ViewSpecs struct {
	List   ListView   `yaml:"list"`
	Detail DetailView `yaml:"detail"`
}

// ListView configures the table presentation.
type ListView struct {
	Columns []string `yaml:"columns"`
}

// DetailView configures the single-entity presentation.
type DetailView struct {
	Sections []DetailSection `yaml:"sections"`
}

// DetailSection groups fields under an optional heading.
type DetailSection struct {
	Heading string   `yaml:"heading"`
	Fields  []string `yaml:"fields"`
}
