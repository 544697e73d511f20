package sheetfmt

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

// maxFields is position, kind-or-array-index, kind-or-option, option.
const maxFields = 4

// splitFields splits a placeholder interior on ':' and trims each field.
func splitFields(text string) ([]string, error) {
	fields := strings.Split(text, ":")
	if len(fields) > maxFields {
		return nil, fmt.Errorf("%w: %d fields", ErrInvalidFormat, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// field returns fields[i], or "" when absent.
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// splitPipe recognizes a piped placeholder: one balanced {...} group
// followed by ":kind" or ":kind:option", where kind is a known kind name.
// src is the group with its braces, usable as a template.
//
// Anything else (an iteration body like "{0}, " or "{0}:note") is not a
// pipe. Pipes are only recognized inside an enclosing iteration body.
func splitPipe(text string) (src, kind, option string, ok bool) {
	if !strings.HasPrefix(text, "{") {
		return "", "", "", false
	}
	depth, end := 0, -1
	for i := 0; i < len(text) && end < 0; i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return "", "", "", false
	}

	rest := strings.TrimSpace(text[end+1:])
	if !strings.HasPrefix(rest, ":") || strings.ContainsAny(rest, "{}") {
		return "", "", "", false
	}
	parts := strings.Split(rest[1:], ":")
	if len(parts) > 2 {
		return "", "", "", false
	}
	kind = strings.TrimSpace(parts[0])
	if kind == "" {
		return "", "", "", false
	}
	if _, _, err := value.ParseKind(kind); err != nil {
		return "", "", "", false
	}
	if len(parts) == 2 {
		option = strings.TrimSpace(parts[1])
	}
	return text[:end+1], kind, option, true
}
