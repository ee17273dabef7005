// Package boilerplate strips source-specific header and footer text from pages.
//
// Matching is exact: literals are removed with strings.ReplaceAll and patterns
// with a compiled regular expression. Variant whitespace introduced by PDF
// extraction is not normalised, so text that differs from a literal is kept.
package boilerplate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// Ensure Cleaner implements the interface.
var _ driven.PageCleaner = (*Cleaner)(nil)

// GDPRTextProfile is the profile name for PDFs exported from gdpr-text.com.
const GDPRTextProfile = "gdpr-text"

// Rule removes either an exact literal or every match of a pattern.
type Rule struct {
	Literal string
	Pattern *regexp.Regexp
}

func (r Rule) apply(s string) string {
	if r.Pattern != nil {
		return r.Pattern.ReplaceAllString(s, "")
	}
	return strings.ReplaceAll(s, r.Literal, "")
}

// Profile is an ordered list of removal rules for one document format.
type Profile struct {
	Name  string
	Rules []Rule
}

// NewProfile builds a profile from literals followed by regular expressions.
func NewProfile(name string, literals, patterns []string) (Profile, error) {
	p := Profile{Name: name}
	for _, lit := range literals {
		p.Rules = append(p.Rules, Rule{Literal: lit})
	}
	for _, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return Profile{}, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		p.Rules = append(p.Rules, Rule{Pattern: re})
	}
	return p, nil
}

// GDPRText returns the gdpr-text.com profile: one header, two footers,
// then the "page N / M" counter.
func GDPRText() Profile {
	return Profile{
		Name: GDPRTextProfile,
		Rules: []Rule{
			{Literal: "www.gdpr-text.com/en"},
			{Literal: "www.data-privacy-\noffice.eu\nwww.gdpr-text.cominfo@data-privacy-\noffice.eu"},
			{Literal: "\nGDPR training, consulting and DPO outsourcing"},
			{Pattern: regexp.MustCompile(`page \d+ / \d+`)},
		},
	}
}

var profiles = map[string]func() Profile{
	GDPRTextProfile: GDPRText,
}

// Lookup returns a built-in profile by name.
func Lookup(name string) (Profile, bool) {
	fn, ok := profiles[name]
	if !ok {
		return Profile{}, false
	}
	return fn(), true
}

// Names lists the built-in profiles.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cleaner applies a profile's rules in order, trimming after each one.
type Cleaner struct {
	profile Profile
}

// New creates a cleaner for the given profile.
func New(profile Profile) *Cleaner {
	return &Cleaner{profile: profile}
}

// Name returns the profile name.
func (c *Cleaner) Name() string {
	return c.profile.Name
}

// Clean removes every rule's matches from text. Each rule sees the
// trimmed output of the previous one and runs once, so a match formed by
// splicing the text around a removed one is left in place.
func (c *Cleaner) Clean(text string) string {
	for _, rule := range c.profile.Rules {
		text = strings.TrimSpace(rule.apply(text))
	}
	return text
}
