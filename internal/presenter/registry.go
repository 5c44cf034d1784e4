package presenter

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.yaml
var schemasFS embed.FS

// registry is the singleton schema registry.
var registry = &Registry{}

// Registry holds loaded entity schemas indexed by name.
type Registry struct {
	once    sync.Once
	byName  map[string]*EntitySchema
	loadErr error
}

// load parses all embedded YAML schemas.
func (r *Registry) load() {
	r.once.Do(func() {
		r.byName = make(map[string]*EntitySchema)

		entries, err := schemasFS.ReadDir("schemas")
		if err != nil {
			r.loadErr = fmt.Errorf("reading schemas dir: %w", err)
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			data, err := schemasFS.ReadFile("schemas/" + entry.Name())
			if err != nil {
				continue
			}

			schema := new(EntitySchema)
			if err := yaml.Unmarshal(data, schema); err != nil {
				continue
			}

			r.byName[schema.Entity] = schema
		}
	})
}

// Lookup returns a schema by entity name (e.g. "session").
func Lookup(name string) *EntitySchema {
	registry.load()
	return registry.byName[name]
}
