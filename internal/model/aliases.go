package model

import (
	"encoding/json"
	"strings"
	"unicode"
)

// decodeAliased decodes a JSON object into v, accepting camelCase spellings of the
// snake_case field names (isPublished for is_published). A snake_case key wins when
// both are present.
func decodeAliased(data []byte, v any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return json.Unmarshal(data, v)
	}
	if fields == nil {
		return nil
	}

	normalized := make(map[string]json.RawMessage, len(fields))
	for k, raw := range fields {
		snake := toSnake(k)
		if snake != k {
			if _, exists := fields[snake]; exists {
				continue
			}
		}
		normalized[snake] = raw
	}

	b, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
