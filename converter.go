package negarit

// Converter converts marked-up gazette sources (e.g. HTML pages) to plain
// text before normalization.
type Converter interface {
	// Convert returns the text content of markup, one block per line.
	Convert(markup string) (string, error)
}
