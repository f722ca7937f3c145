package params

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ParseValuesFile parses a values file: one KEY=VALUE per line.
//
// Format rules:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - Whitespace around the key and value is trimmed
//   - Values can be quoted with single or double quotes; the quotes are kept
//     for double quotes so that Typed reads them as a JSON string
//
// Variable expansion and multiline values are not supported.
func ParseValuesFile(content []byte) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format, expected KEY=VALUE", lineNum)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNum)
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
			value = value[1 : len(value)-1]
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading content: %w", err)
	}

	return result, nil
}
