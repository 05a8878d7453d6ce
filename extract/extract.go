// Package extract recognizes the structure of cleaned gazette text: its era,
// title, preamble description and labeled parts.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/negarit"
)

// Ensure Extractor implements negarit.Extractor at compile time.
var _ negarit.Extractor = (*Extractor)(nil)

// Textual markers.
const (
	markerWhereas  = "WHEREAS"
	markerContents = "CONTENTS"
)

var (
	// partOnePattern marks a pre-2018 document.
	partOnePattern = regexp.MustCompile(`\bPART[ \t]+ONE\b`)

	// shortTitlePattern marks a post-2018 document: "1. Short Title" or,
	// once punctuation is cleaned away, "1 Short Title".
	shortTitlePattern = regexp.MustCompile(`\b1\.? Short Title`)

	// partHeaderPattern matches "PART ONE" through "PART TEN".
	partHeaderPattern = regexp.MustCompile(`\bPART[ \t]+(?:` + strings.Join(negarit.PartOrdinals, "|") + `)\b`)

	// proclamationPattern matches "PROCLAMATION No. 621/2009" and its
	// cleaned form "PROCLAMATION No 621 2009".
	proclamationPattern = regexp.MustCompile(`PROCLAMATION[ \t]+(?:N[Oo]\.?[ \t]*)?[0-9]+(?:[ \t]*/[ \t]*|[ \t]+)[0-9]+`)

	// sectionHeaderPattern matches a numbered section header on its own line,
	// e.g. "12. Definitions" or "12 Definitions".
	sectionHeaderPattern = regexp.MustCompile(`(?m)^[ \t]*([0-9]{1,3})\.?[ \t]+([A-Z][^\n]*)$`)
)

// Extractor extracts records from cleaned gazette text. It holds no
// per-document state and is safe for concurrent use.
type Extractor struct {
	maxSectionTitle int
}

// New creates an Extractor configured by cfg.
func New(cfg negarit.ExtractConfig) *Extractor {
	return &Extractor{maxSectionTitle: cfg.MaxSectionTitle}
}

// Extract detects the document era once and extracts title, description
// and parts accordingly. It never fails; unrecognized documents yield an
// empty description and no parts.
func (e *Extractor) Extract(cleaned string) *negarit.Record {
	rec := negarit.NewRecord()
	rec.Era = DetectEra(cleaned)
	rec.Title = extractTitle(cleaned, rec.Era)
	rec.Description = extractDescription(cleaned, rec.Era)

	switch rec.Era {
	case negarit.EraPre2018:
		extractParts(cleaned, rec.Parts)
	case negarit.EraPost2018:
		e.extractSections(cleaned, rec.Parts)
	}
	return rec
}

// DetectEra reports which structural schema text follows. A document
// carrying both markers is treated as pre-2018.
func DetectEra(text string) negarit.Era {
	switch {
	case partOnePattern.MatchString(text):
		return negarit.EraPre2018
	case shortTitlePattern.MatchString(text):
		return negarit.EraPost2018
	default:
		return negarit.EraUnknown
	}
}

// eraMarker returns the pattern that starts the substantive content of an
// era, or nil for an unknown era.
func eraMarker(era negarit.Era) *regexp.Regexp {
	switch era {
	case negarit.EraPre2018:
		return partOnePattern
	case negarit.EraPost2018:
		return shortTitlePattern
	}
	return nil
}

// extractTitle returns the first proclamation number span. Failing that, it
// returns the text before the earliest section marker, or the first
// non-blank line when the text has no markers at all.
func extractTitle(text string, era negarit.Era) string {
	if m := proclamationPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}

	end := -1
	for _, marker := range []string{markerContents, markerWhereas} {
		if i := strings.Index(text, marker); i >= 0 && (end < 0 || i < end) {
			end = i
		}
	}
	if re := eraMarker(era); re != nil {
		if loc := re.FindStringIndex(text); loc != nil && (end < 0 || loc[0] < end) {
			end = loc[0]
		}
	}
	if end >= 0 {
		return strings.TrimSpace(text[:end])
	}

	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// extractDescription returns the preamble between the first WHEREAS and the
// era marker that follows it.
func extractDescription(text string, era negarit.Era) string {
	re := eraMarker(era)
	if re == nil {
		return ""
	}

	i := strings.Index(text, markerWhereas)
	if i < 0 {
		return ""
	}
	start := i + len(markerWhereas)

	loc := re.FindStringIndex(text[start:])
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(text[start : start+loc[0]])
}

// extractParts splits text at "PART <ordinal>" headers. Each body runs to the
// next header or the end of text. A repeated label keeps the last body.
func extractParts(text string, parts map[string]string) {
	headers := partHeaderPattern.FindAllStringIndex(text, -1)
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		parts[text[h[0]:h[1]]] = strings.TrimSpace(text[h[1]:end])
	}
}

// sectionHeader is a numbered line within a section span.
type sectionHeader struct {
	n          int
	title      string
	label      string
	start, end int
}

// extractSections splits the text following the short-title marker at
// numbered section headers. Headers are scanned strictly forward; a header
// is accepted only when its number exceeds the previous accepted one and its
// title fits within the configured length.
//
// Numbered lines inside a section, such as definition lists, restart at 1
// after each header. A line continuing that enumeration is a sub-item
// unless it could also be the next header and no line with the same
// number follows before the next enumeration restart.
func (e *Extractor) extractSections(text string, parts map[string]string) {
	loc := shortTitlePattern.FindStringIndex(text)
	if loc == nil {
		return
	}
	span := text[loc[1]:]
	if end := partOnePattern.FindStringIndex(span); end != nil {
		span = span[:end[0]]
	}

	var candidates []sectionHeader
	for _, m := range sectionHeaderPattern.FindAllStringSubmatchIndex(span, -1) {
		n, err := strconv.Atoi(span[m[2]:m[3]])
		if err != nil {
			continue
		}
		candidates = append(candidates, sectionHeader{
			n:     n,
			title: strings.TrimSpace(span[m[4]:m[5]]),
			label: strings.TrimSpace(span[m[0]:m[1]]),
			start: m[0],
			end:   m[1],
		})
	}

	var headers []sectionHeader
	prev, sub := 1, 0
	for i, c := range candidates {
		fits := e.maxSectionTitle <= 0 || len(c.title) <= e.maxSectionTitle
		if c.n == sub+1 && (c.n <= prev || !fits || repeatsBeforeRestart(candidates[i+1:], c.n)) {
			sub = c.n
			continue
		}
		if c.n <= prev || !fits {
			continue
		}
		headers = append(headers, c)
		prev, sub = c.n, 0
	}

	for i, h := range headers {
		end := len(span)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		parts[h.label] = strings.TrimSpace(span[h.end:end])
	}
}

// repeatsBeforeRestart reports whether a line numbered n appears in rest
// before a line numbered 1.
func repeatsBeforeRestart(rest []sectionHeader, n int) bool {
	for _, c := range rest {
		switch c.n {
		case n:
			return true
		case 1:
			return false
		}
	}
	return false
}
