package negarit

import (
	"sort"
	"strconv"
	"strings"
)

// Era identifies which structural schema a gazette document follows.
type Era string

// Recognized document eras.
const (
	EraUnknown  Era = ""
	EraPre2018  Era = "pre-2018"
	EraPost2018 Era = "post-2018"
)

// String returns a printable era name.
func (e Era) String() string {
	if e == EraUnknown {
		return "unknown"
	}
	return string(e)
}

// PartOrdinals are the ordinal words recognized in pre-2018 "PART <ordinal>"
// headers, in document order. The set is closed; an eleventh part is not
// recognized.
var PartOrdinals = []string{
	"ONE", "TWO", "THREE", "FOUR", "FIVE",
	"SIX", "SEVEN", "EIGHT", "NINE", "TEN",
}

// Record is the structured result extracted from a cleaned gazette document.
type Record struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Parts       map[string]string `json:"parts"`

	// Era is the schema the record was extracted with.
	Era Era `json:"-"`
}

// NewRecord returns an empty record with a non-nil parts map.
func NewRecord() *Record {
	return &Record{Parts: make(map[string]string)}
}

// PartLabels returns the labels of parts in reading order: "PART <ordinal>"
// labels by ordinal, numbered sections by number, anything else lexically.
func PartLabels(parts map[string]string) []string {
	labels := make([]string, 0, len(parts))
	for label := range parts {
		labels = append(labels, label)
	}

	sort.Slice(labels, func(i, j int) bool {
		ki, ni := labelKey(labels[i])
		kj, nj := labelKey(labels[j])
		if ki != kj {
			return ki < kj
		}
		if ni != nj {
			return ni < nj
		}
		return labels[i] < labels[j]
	})
	return labels
}

// labelKey classifies a part label for ordering.
func labelKey(label string) (kind, n int) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 2, 0
	}
	if fields[0] == "PART" && len(fields) > 1 {
		for i, ord := range PartOrdinals {
			if fields[1] == ord {
				return 0, i + 1
			}
		}
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(fields[0], ".")); err == nil {
		return 1, n
	}
	return 2, 0
}

// maxSlugLen keeps generated file names well below common filesystem limits.
const maxSlugLen = 120

// Slug converts a title into a file-name-safe identifier: lowercased, with
// runs of whitespace and punctuation joined by single underscores.
// Example: "PROCLAMATION No 1234 2021" → "proclamation_no_1234_2021"
func Slug(title string) string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(title))

	slug := strings.Join(strings.Fields(mapped), "_")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "_")
	}
	return slug
}
