package lint

import "strings"

// FormatMessage substitutes {{name}} placeholders in tmpl with values from
// data. Whitespace inside the braces is ignored. Placeholders without a value
// are left verbatim so missing data stays visible in the output.
func FormatMessage(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))
	rest := tmpl
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closing := strings.Index(rest[open+2:], "}}")
		if closing < 0 {
			b.WriteString(rest)
			break
		}
		closing += open + 2

		b.WriteString(rest[:open])
		key := strings.TrimSpace(rest[open+2 : closing])
		if v, ok := data[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[open : closing+2])
		}
		rest = rest[closing+2:]
	}
	return b.String()
}
