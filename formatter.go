package negarit

import "strings"

// FormatRecord formats a record for terminal display: the title, the
// description, then each part under its label in reading order.
func FormatRecord(rec *Record) string {
	if rec == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(rec.Title)
	b.WriteString("\n")
	if rec.Description != "" {
		b.WriteString("\n")
		b.WriteString(rec.Description)
		b.WriteString("\n")
	}
	for _, label := range PartLabels(rec.Parts) {
		b.WriteString("\n## ")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(rec.Parts[label])
		b.WriteString("\n")
	}
	return b.String()
}
