package negarit

// Normalizer strips OCR and scan noise from raw gazette text.
type Normalizer interface {
	// Normalize returns the cleaned form of raw. It never fails: any input,
	// including empty or binary garbage, yields a (possibly empty) string.
	Normalize(raw string) string
}

// Extractor recognizes the structure of cleaned gazette text.
type Extractor interface {
	// Extract returns the title, description and parts of cleaned.
	// Missing markers degrade to empty fields; the parts map is never nil.
	Extract(cleaned string) *Record
}
