// Package chat primes the assistant with the visitor's resolved profile
// and the content currently shown to them. The priming context carries
// only coarse profile facts; raw behavior (clicks, visit history, device
// details) never leaves the profile store.
package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kalambet/persona/internal/content"
	"github.com/kalambet/persona/internal/profile"
)

const maxContextChars = 2000

// BuildContext assembles the system priming for a chat session: who the
// visitor appears to be, what tone to use, and what the page is showing
// them. The result is capped at maxContextChars on a rune boundary.
func BuildContext(p profile.UserProfile, c content.PersonalizedContent, hints content.Hints, lang string) string {
	var sb strings.Builder

	sb.WriteString("You are the assistant on a personal portfolio website. Answer questions about the portfolio owner concisely and accurately.\n")

	sb.WriteString("\n[Visitor]\n")
	if p.Type != profile.TypeUnknown {
		fmt.Fprintf(&sb, "Visitor type: %s\n", p.Type)
	}
	if p.Source != profile.SourceUnknown {
		fmt.Fprintf(&sb, "Arrived via: %s\n", p.Source)
	}
	if p.Intent != profile.IntentUnknown {
		fmt.Fprintf(&sb, "Apparent intent: %s\n", p.Intent)
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(&sb, "Interests: %s\n", strings.Join(p.Interests, ", "))
	}
	if len(p.SearchKeywords) > 0 {
		fmt.Fprintf(&sb, "Search keywords: %s\n", strings.Join(p.SearchKeywords, ", "))
	}

	sb.WriteString("\n[Presentation]\n")
	fmt.Fprintf(&sb, "Tone: %s\n", hints.ContentTone)
	fmt.Fprintf(&sb, "Primary focus: %s\n", hints.PrimaryFocus)
	fmt.Fprintf(&sb, "Experience emphasis: %s\n", c.Experience.Emphasis)

	sb.WriteString("\n[Page Content]\n")
	fmt.Fprintf(&sb, "Headline: %s\n", c.Home.Greeting)
	fmt.Fprintf(&sb, "Tagline: %s\n", c.Home.Tagline)
	fmt.Fprintf(&sb, "Summary: %s\n", c.About.ProfessionalSummary)

	if lang != "" {
		fmt.Fprintf(&sb, "\nRespond in the language with code %q.\n", lang)
	}

	return truncate(sb.String(), maxContextChars)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
