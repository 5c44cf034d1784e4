package presenter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// RenderList writes entities as an aligned table using the schema's list
// columns.
func RenderList(w io.Writer, schema *EntitySchema, items []map[string]any) error {
	columns := schema.Views.List.Columns
	if len(columns) == 0 {
		return fmt.Errorf("schema %q has no list columns", schema.Entity)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = strings.ToUpper(fieldLabel(schema, col))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, item := range items {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatField(schema, col, lookupPath(item, col))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// RenderDetail writes a single entity as labeled sections.
func RenderDetail(w io.Writer, schema *EntitySchema, item map[string]any) error {
	sections := schema.Views.Detail.Sections
	if len(sections) == 0 {
		sections = []DetailSection{{Fields: sortedKeys(item)}}
	}

	if schema.Identity.Label != "" {
		if v := lookupPath(item, schema.Identity.Label); v != nil {
			fmt.Fprintln(w, formatValue(v, ""))
		}
	}

	for i, section := range sections {
		if section.Heading != "" {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s\n", section.Heading)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, field := range section.Fields {
			v := lookupPath(item, field)
			if v == nil {
				continue
			}
			fmt.Fprintf(tw, "  %s:\t%s\n", fieldLabel(schema, field), formatField(schema, field, v))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func fieldLabel(schema *EntitySchema, field string) string {
	if spec, ok := schema.Fields[field]; ok && spec.Label != "" {
		return spec.Label
	}
	// Last path segment, underscores to spaces.
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return strings.ReplaceAll(field, "_", " ")
}

func formatField(schema *EntitySchema, field string, v any) string {
	spec := schema.Fields[field]
	if s, ok := v.(string); ok && spec.Labels != nil {
		if mapped, ok := spec.Labels[s]; ok {
			return mapped
		}
	}
	return formatValue(v, spec.Format)
}

// lookupPath resolves a dotted path in a nested map.
func lookupPath(item map[string]any, path string) any {
	cur := any(item)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

func formatValue(v any, format string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		if format == "datetime" {
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				return t.Local().Format("2006-01-02 15:04")
			}
		}
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item, "")
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
