// Package textparse splits free-text form fields into ordered, trimmed items.
package textparse

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Mode selects how a raw string is split into items.
type Mode int

const (
	// ModeList splits comma, newline and "- " separated lists (skills, achievements).
	ModeList Mode = iota
	// ModeSentence splits prose into sentences and terminates each with punctuation.
	ModeSentence
	// ModeLines splits one item per line and strips a leading bullet marker.
	ModeLines
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeSentence:
		return "sentence"
	case ModeLines:
		return "lines"
	default:
		return "unknown"
	}
}

var (
	listDelim = regexp.MustCompile(`,\s*|\n\s*|- `)
	// RE2 has no lookbehind; the sentence boundary keeps its punctuation on the left token.
	sentenceDelim = regexp2.MustCompile(`(?<=[.!?])\s+`, regexp2.None)
	bulletMarker  = regexp.MustCompile(`^(?:[-*•][\s\p{Zs}]+)+`)
)

// Parse splits raw into non-empty trimmed items in document order.
// Blank input yields an empty, non-nil slice.
func Parse(raw string, mode Mode) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	switch mode {
	case ModeSentence:
		return sentences(raw)
	case ModeLines:
		return lines(raw)
	default:
		return list(raw)
	}
}

// List is Parse(raw, ModeList).
func List(raw string) []string { return Parse(raw, ModeList) }

// Sentences is Parse(raw, ModeSentence).
func Sentences(raw string) []string { return Parse(raw, ModeSentence) }

// Lines is Parse(raw, ModeLines).
func Lines(raw string) []string { return Parse(raw, ModeLines) }

// Join renders items back into text using the canonical delimiter of mode.
// Parse(Join(items, m), m) returns items unchanged for any output of Parse.
func Join(items []string, mode Mode) string {
	switch mode {
	case ModeSentence:
		return strings.Join(items, " ")
	case ModeLines:
		return strings.Join(items, "\n")
	default:
		return strings.Join(items, ", ")
	}
}

func list(raw string) []string {
	return compact(listDelim.Split(raw, -1), nil)
}

func lines(raw string) []string {
	return compact(strings.Split(raw, "\n"), stripBullets)
}

// stripBullets removes leading markers until none is left, so trimming never
// exposes another one.
func stripBullets(s string) string {
	for {
		next := strings.TrimSpace(bulletMarker.ReplaceAllString(s, ""))
		if next == s {
			return s
		}
		s = next
	}
}

func sentences(raw string) []string {
	return compact(splitRegexp2(sentenceDelim, raw), terminate)
}

// splitRegexp2 is regexp.Split for regexp2, which only exposes match iteration.
// Match offsets are rune indexes.
func splitRegexp2(re *regexp2.Regexp, s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		parts = append(parts, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = re.FindNextMatch(m)
	}
	return append(parts, string(runes[start:]))
}

func terminate(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

func compact(parts []string, fix func(string) string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if fix != nil && p != "" {
			p = strings.TrimSpace(fix(p))
		}
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
