// Package validation implements the field and record validators for account
// and contact submissions. Validators accumulate every failure instead of
// stopping at the first, so a single submission reports all of its problems
// at once.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to the reasons it was rejected.
type FieldErrors map[string][]string

// Add appends a failure reason for the given field.
func (e FieldErrors) Add(field, reason string) {
	e[field] = append(e[field], reason)
}

// Any reports whether at least one field failed.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// Error renders the failure set as a single string, fields in sorted order.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(e[f], ", "))
	}
	return b.String()
}
