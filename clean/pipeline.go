// Package clean implements the gazette normalizer: an ordered pipeline of
// string rewrite rules that strips OCR and scan noise from raw text.
package clean

import "github.com/fwojciec/negarit"

// Ensure Pipeline implements negarit.Normalizer at compile time.
var _ negarit.Normalizer = (*Pipeline)(nil)

// Rule is a single named rewrite step. Apply must be total.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Pipeline applies its rules left to right, each to the output of the
// previous one. A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	rules []Rule
}

// NewPipeline creates a pipeline from rules in application order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: append([]Rule(nil), rules...)}
}

// New creates the standard gazette pipeline for cfg.
func New(cfg negarit.CleanConfig) *Pipeline {
	return NewPipeline(Rules(cfg)...)
}

// Prepend returns a new pipeline with rules inserted before the existing ones.
func (p *Pipeline) Prepend(rules ...Rule) *Pipeline {
	combined := make([]Rule, 0, len(rules)+len(p.rules))
	combined = append(combined, rules...)
	combined = append(combined, p.rules...)
	return &Pipeline{rules: combined}
}

// Append returns a new pipeline with rules added after the existing ones.
func (p *Pipeline) Append(rules ...Rule) *Pipeline {
	combined := make([]Rule, 0, len(p.rules)+len(rules))
	combined = append(combined, p.rules...)
	combined = append(combined, rules...)
	return &Pipeline{rules: combined}
}

// Names returns the rule names in application order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

// Normalize runs raw through every rule in order.
func (p *Pipeline) Normalize(raw string) string {
	s := raw
	for _, r := range p.rules {
		s = r.Apply(s)
	}
	return s
}
