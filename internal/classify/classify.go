// Package classify maps browser window titles to short site labels.
//
// Classification is an ordered pipeline: a table of known sites is consulted
// first (first match wins), then the text after the rightmost title separator,
// then a truncated copy of the title itself. An empty title maps to Unknown.
package classify

import (
	"strings"
	"unicode/utf8"
)

// Unknown is the label returned for an empty title.
const Unknown = "unknown"

// DefaultMaxLabelRunes is how much of a title is kept when no other rule applies.
const DefaultMaxLabelRunes = 30

// Source identifies which step of the pipeline produced a label.
type Source string

const (
	SourceKnown     Source = "known"
	SourceSeparator Source = "separator"
	SourceTruncated Source = "truncated"
	SourceUnknown   Source = "unknown"
)

// Rule maps any title containing Marker to Label.
type Rule struct {
	Label  string `yaml:"label"`
	Marker string `yaml:"marker"`
}

// Matches reports whether title contains the rule's marker (case-sensitive).
func (r Rule) Matches(title string) bool {
	return strings.Contains(title, r.Marker)
}

// DefaultRules returns the built-in known-site table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "youtube", Marker: "YouTube"},
		{Label: "google", Marker: "Google"},
		{Label: "github", Marker: "GitHub"},
		{Label: "qiita", Marker: "Qiita"},
		{Label: "stackoverflow", Marker: "Stack Overflow"},
	}
}

// Classifier holds an ordered known-site table. It is safe for concurrent
// use; Classify never mutates it.
type Classifier struct {
	rules    []Rule
	maxRunes int
}

// New builds a Classifier from rules, evaluated in the given order. Rules
// with an empty marker are dropped since they would match every title.
// A non-positive maxRunes selects DefaultMaxLabelRunes.
func New(rules []Rule, maxRunes int) *Classifier {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Marker == "" || r.Label == "" {
			continue
		}
		kept = append(kept, r)
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxLabelRunes
	}
	return &Classifier{rules: kept, maxRunes: maxRunes}
}

// Default returns a Classifier using DefaultRules.
func Default() *Classifier {
	return New(DefaultRules(), DefaultMaxLabelRunes)
}

// Rules returns a copy of the known-site table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the site label for title. It always returns a non-empty string.
func (c *Classifier) Classify(title string) string {
	label, _ := c.Match(title)
	return label
}

// Match is Classify that also reports which step produced the label.
func (c *Classifier) Match(title string) (string, Source) {
	for _, r := range c.rules {
		if r.Matches(title) {
			return r.Label, SourceKnown
		}
	}

	if site, ok := lastSegment(title); ok {
		return site, SourceSeparator
	}

	// Whitespace-only titles survive to here; they are non-empty labels.
	if title != "" {
		return truncate(title, c.maxRunes), SourceTruncated
	}

	return Unknown, SourceUnknown
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
