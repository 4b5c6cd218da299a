package output

import (
	"fmt"
	"strings"
)

// OutputFormat specifies how a record is printed.
type OutputFormat string

const (
	// FormatText prints a human-readable summary.
	FormatText OutputFormat = "text"

	// FormatJSON prints indented JSON.
	FormatJSON OutputFormat = "json"

	// FormatYAML prints YAML.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}

// ParseOutputFormat parses a format name. The empty string means FormatText.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}
