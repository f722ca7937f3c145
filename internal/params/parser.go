package params

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pkgmeta/internal/metadata"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Later pairs win over earlier ones with the same key.
//
// Example:
//
//	pairs, err := ParseKeyValuePairs([]string{"title=Hello", "images=3"})
//	// Returns: map[string]string{"title": "Hello", "images": "3"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("override %q is not in key=value format (example: --set title=Hello)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("override has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}

// Typed decodes each raw value as JSON when possible and keeps it as a
// string otherwise. Keys for which isText reports true always end up as
// strings: only a quoted JSON string is unquoted, so "title=123" stays "123".
// A nil isText decodes every key.
func Typed(raw map[string]string, isText func(key string) bool) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		decoded, ok := metadata.DecodeValue(value)
		if !ok {
			out[key] = value
			continue
		}
		if isText != nil && isText(key) {
			if s, isString := decoded.(string); isString {
				out[key] = s
			} else {
				out[key] = value
			}
			continue
		}
		out[key] = decoded
	}
	return out
}
