package testutil

import "strings"

// Unindent removes common leading whitespace from a multi-line string,
// allowing for readable, indented HCL snippets in Go tests.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")

	// Remove leading/trailing empty lines that are common with multi-line literals
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	for i, line := range lines {
		if len(line) >= minIndent {
			b.WriteString(line[minIndent:])
		} else {
			b.WriteString(strings.TrimSpace(line))
		}
		if i < len(lines)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
