package mock

import "github.com/fwojciec/negarit"

// Compile-time interface verification.
var (
	_ negarit.Normalizer = (*Normalizer)(nil)
	_ negarit.Extractor  = (*Extractor)(nil)
)

// Normalizer is a mock implementation of negarit.Normalizer.
type Normalizer struct {
	NormalizeFn func(raw string) string
}

func (n *Normalizer) Normalize(raw string) string {
	return n.NormalizeFn(raw)
}

// Extractor is a mock implementation of negarit.Extractor.
type Extractor struct {
	ExtractFn func(cleaned string) *negarit.Record
}

func (e *Extractor) Extract(cleaned string) *negarit.Record {
	return e.ExtractFn(cleaned)
}
