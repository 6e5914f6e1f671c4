package catalog

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TagList maps a Postgres text[] column to a string slice.
type TagList []string

// Value encodes the slice as a Postgres array literal.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(t))
	for i, tag := range t {
		escaped := strings.ReplaceAll(tag, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		parts[i] = `"` + escaped + `"`
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan decodes a Postgres array literal into the slice.
func (t *TagList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported type for TagList: %T", src)
	}

	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	if raw == "" {
		*t = TagList{}
		return nil
	}

	var (
		tags     []string
		current  strings.Builder
		inQuotes bool
		escaped  bool
	)
	for _, r := range raw {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			tags = append(tags, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tags = append(tags, current.String())

	*t = tags
	return nil
}
