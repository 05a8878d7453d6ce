package clean

import (
	"regexp"
	"strings"

	"github.com/fwojciec/negarit"
)

// Rule names.
const (
	RuleHeaderTrim       = "header-trim"
	RuleSourceStamp      = "source-stamp"
	RuleShortLines       = "short-lines"
	RuleCharset          = "charset"
	RuleArtifactLines    = "artifact-lines"
	RuleCollapseNewlines = "collapse-newlines"
	RuleNumericLines     = "numeric-lines"
)

var (
	// disallowedPattern matches any character outside the cleaned alphabet.
	disallowedPattern = regexp.MustCompile(`[^A-Za-z0-9 \t\n]`)

	// spaceRunPattern matches runs of two or more spaces.
	spaceRunPattern = regexp.MustCompile(` {2,}`)

	// newlineRunPattern matches runs of two or more newlines.
	newlineRunPattern = regexp.MustCompile(`\n{2,}`)

	// digitsOnlyPattern matches a line made only of digits.
	digitsOnlyPattern = regexp.MustCompile(`^[0-9]+$`)

	// numericLinePattern matches page-number-like lines such as "12" or " 12 34 ".
	numericLinePattern = regexp.MustCompile(`^\s*[0-9]+(?:\s+[0-9]+)*\s*$`)
)

// Rules returns the standard pipeline for cfg: header trim, source-stamp
// removal and short-line removal in front of the core rules.
func Rules(cfg negarit.CleanConfig) []Rule {
	return append([]Rule{
		HeaderTrim(cfg.HeaderMarker, cfg.SourceStamps...),
		SourceStamp(cfg.SourceStamps...),
		ShortLines(cfg.MinLineLength),
	}, CoreRules(cfg)...)
}

// CoreRules returns the character and line cleanup rules that every
// pipeline ends with.
func CoreRules(cfg negarit.CleanConfig) []Rule {
	return []Rule{
		Charset(),
		ArtifactLines(cfg.NoiseToken),
		CollapseNewlines(),
		NumericLines(),
	}
}

// HeaderTrim discards everything before the first occurrence of marker.
// The marker's words may be separated by any run of punctuation or spaces.
// An occurrence whose remaining line contains one of stamps is skipped,
// since SourceStamp deletes that line. Text without the marker is returned
// unchanged.
func HeaderTrim(marker string, stamps ...string) Rule {
	words := strings.Fields(marker)
	if len(words) == 0 {
		return Rule{Name: RuleHeaderTrim, Apply: identity}
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := regexp.MustCompile(strings.Join(words, `[^A-Za-z0-9\n]+`))
	stamps = activeStamps(stamps)

	return Rule{
		Name: RuleHeaderTrim,
		Apply: func(s string) string {
			for _, loc := range pattern.FindAllStringIndex(s, -1) {
				rest := s[loc[0]:]
				if end := strings.IndexByte(rest, '\n'); end >= 0 {
					rest = rest[:end]
				}
				if !containsAny(rest, stamps) {
					return s[loc[0]:]
				}
			}
			return s
		},
	}
}

// SourceStamp deletes every line containing one of stamps.
func SourceStamp(stamps ...string) Rule {
	active := activeStamps(stamps)
	if len(active) == 0 {
		return Rule{Name: RuleSourceStamp, Apply: identity}
	}

	return Rule{
		Name: RuleSourceStamp,
		Apply: func(s string) string {
			return dropLines(s, func(line string) bool {
				return containsAny(line, active)
			})
		},
	}
}

// ShortLines deletes lines shorter than minLength once trimmed. Length is
// measured on the line as Charset would leave it, so a line kept here is
// never shortened below the threshold later.
func ShortLines(minLength int) Rule {
	if minLength <= 0 {
		return Rule{Name: RuleShortLines, Apply: identity}
	}

	return Rule{
		Name: RuleShortLines,
		Apply: func(s string) string {
			return dropLines(s, func(line string) bool {
				return len(strings.TrimSpace(normalizeCharset(line))) < minLength
			})
		},
	}
}

// Charset replaces every character outside [A-Za-z0-9 \t\n] with a space and
// squeezes runs of spaces to one.
func Charset() Rule {
	return Rule{Name: RuleCharset, Apply: normalizeCharset}
}

// ArtifactLines deletes blank lines, lines starting with noiseToken and
// lines made only of digits.
func ArtifactLines(noiseToken string) Rule {
	return Rule{
		Name: RuleArtifactLines,
		Apply: func(s string) string {
			return dropLines(s, func(line string) bool {
				if strings.TrimSpace(line) == "" {
					return true
				}
				if noiseToken != "" && strings.HasPrefix(line, noiseToken) {
					return true
				}
				return digitsOnlyPattern.MatchString(line)
			})
		},
	}
}

// CollapseNewlines collapses runs of newlines to a single newline.
func CollapseNewlines() Rule {
	return Rule{Name: RuleCollapseNewlines, Apply: collapseNewlines}
}

// NumericLines deletes page-number-like lines, including multi-token
// numeric sequences such as "12 34", then collapses newlines again.
func NumericLines() Rule {
	return Rule{
		Name: RuleNumericLines,
		Apply: func(s string) string {
			return collapseNewlines(dropLines(s, numericLinePattern.MatchString))
		},
	}
}

func identity(s string) string { return s }

func activeStamps(stamps []string) []string {
	var active []string
	for _, stamp := range stamps {
		if stamp != "" {
			active = append(active, stamp)
		}
	}
	return active
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func normalizeCharset(s string) string {
	return spaceRunPattern.ReplaceAllString(disallowedPattern.ReplaceAllString(s, " "), " ")
}

func collapseNewlines(s string) string {
	return newlineRunPattern.ReplaceAllString(s, "\n")
}

// dropLines removes every line for which drop returns true, together with
// its line separator.
func dropLines(s string, drop func(line string) bool) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !drop(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
