package mock

import "github.com/fwojciec/negarit"

var _ negarit.Converter = (*Converter)(nil)

// Converter is a mock implementation of negarit.Converter.
type Converter struct {
	ConvertFn func(markup string) (string, error)
}

func (c *Converter) Convert(markup string) (string, error) {
	return c.ConvertFn(markup)
}
