package presenter

import "io"

// Present attempts schema-aware rendering of the data. It returns true when a
// schema matched and rendering was handled, false when the caller should fall
// back to generic rendering.
func Present(w io.Writer, data any, entity string) bool {
	if entity == "" {
		return false
	}
	schema := Lookup(entity)
	if schema == nil {
		return false
	}

	switch d := data.(type) {
	case map[string]any:
		// List envelopes nest the collection under "items".
		if items, ok := d["items"].([]map[string]any); ok {
			return RenderList(w, schema, items) == nil
		}
		if items, ok := d["items"].([]any); ok {
			maps := make([]map[string]any, 0, len(items))
			for _, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					return false
				}
				maps = append(maps, m)
			}
			return RenderList(w, schema, maps) == nil
		}
		return RenderDetail(w, schema, d) == nil
	case []map[string]any:
		return RenderList(w, schema, d) == nil
	}
	return false
}
