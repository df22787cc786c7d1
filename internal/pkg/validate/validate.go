// Package validate holds tiny input checks shared across services.
package validate

import "strings"

// Required reports whether the value carries non-whitespace content.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
