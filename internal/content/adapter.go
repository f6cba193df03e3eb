// Package content projects a visitor profile onto the portfolio content.
// The adapter is pure: given the same profile, language, and clock it
// always returns the same fully populated content.
package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/kalambet/persona/internal/profile"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

const defaultProjectsCount = 10

// Adapter resolves personalized content from variant tables and base
// translations.
type Adapter struct {
	OwnerName string
	StartYear int
	Clock     Clock
}

// New creates an Adapter using the real clock.
func New(ownerName string, startYear int) *Adapter {
	return &Adapter{OwnerName: ownerName, StartYear: startYear, Clock: realClock{}}
}

// ResolveType picks the content variant for a profile. An explicit type
// wins; otherwise the source and intent signals are consulted in order.
func ResolveType(p profile.UserProfile) profile.VisitorType {
	if p.Type != profile.TypeUnknown {
		return p.Type
	}
	if p.Source == profile.SourceLinkedIn {
		return profile.TypeHeadHunter
	}
	if p.Source == profile.SourceGitHub {
		return profile.TypePeerDeveloper
	}
	if p.Intent == profile.IntentHiring {
		return profile.TypeHeadHunter
	}
	return profile.TypeUnknown
}

// Personalize builds the full content set for a profile in the given
// language. Unknown languages fall back to English. Every field of the
// result is populated.
func (a *Adapter) Personalize(p profile.UserProfile, lang string) PersonalizedContent {
	base := baseTranslation(lang)
	t := ResolveType(p)

	return PersonalizedContent{
		Home:       a.home(t, base),
		About:      a.about(t, base),
		Skills:     a.skills(t, base),
		Projects:   a.projects(t, base),
		Experience: a.experience(t, base),
		Contact:    a.contact(t, base),
		Meta:       a.meta(p, t, base),
	}
}

func (a *Adapter) home(t profile.VisitorType, base Translation) HomeContent {
	v, _ := variantFor(homeVariants, t)
	return HomeContent{
		Greeting: a.interpolate(orElse(v.Greeting, base.Home.Greeting), base),
		Tagline:  a.interpolate(orElse(v.Tagline, base.Home.Tagline), base),
		Intro:    a.interpolate(orElse(v.Intro, base.Home.Intro), base),
		CTAText:  a.interpolate(orElse(v.CTAText, base.Home.ViewWork), base),
	}
}

func (a *Adapter) about(t profile.VisitorType, base Translation) AboutContent {
	v, ok := variantFor(aboutVariants, t)
	if !ok {
		v = aboutVariant{}
	}
	highlights := v.KeyHighlights
	if len(highlights) == 0 {
		highlights = base.About.Highlights
	}
	return AboutContent{
		Title:               a.interpolate(orElse(v.Title, base.About.Title), base),
		ProfessionalSummary: a.interpolate(orElse(v.Summary, base.About.Summary), base),
		KeyHighlights:       a.interpolateAll(highlights, base),
	}
}

func (a *Adapter) skills(t profile.VisitorType, base Translation) SkillsContent {
	v, ok := variantFor(skillsVariants, t)
	if !ok {
		v = skillsVariant{}
	}
	focus := v.FocusAreas
	if len(focus) == 0 {
		focus = base.Skills.FocusAreas
	}
	order := v.PriorityOrder
	if len(order) == 0 {
		order = defaultSkillPriority
	}
	return SkillsContent{
		Title:         orElse(v.Title, base.Skills.Title),
		FocusAreas:    cloneStrings(focus),
		PriorityOrder: cloneStrings(order),
	}
}

func (a *Adapter) projects(t profile.VisitorType, base Translation) ProjectsContent {
	v, ok := variantFor(projectsVariants, t)
	if !ok {
		v = projectsVariant{}
	}
	featured := v.FeaturedProjects
	if len(featured) == 0 {
		featured = base.Projects.Items
	}
	return ProjectsContent{
		Title:            orElse(v.Title, base.Projects.Title),
		Description:      a.interpolate(orElse(v.Description, base.Projects.Description), base),
		FeaturedProjects: cloneStrings(featured),
	}
}

func (a *Adapter) experience(t profile.VisitorType, base Translation) ExperienceContent {
	emphasis := EmphasisResponsibilities
	switch t {
	case profile.TypeHeadHunter:
		emphasis = EmphasisAchievements
	case profile.TypeClient:
		emphasis = EmphasisImpact
	}
	return ExperienceContent{Title: base.Experience.Title, Emphasis: emphasis}
}

func (a *Adapter) contact(t profile.VisitorType, base Translation) ContactContent {
	msg, ok := contactMessages[t]
	if !ok {
		msg = contactMessages[profile.TypeUnknown]
	}
	cta, ok := contactCTAs[t]
	if !ok {
		cta = contactCTAs[profile.TypeUnknown]
	}
	return ContactContent{Title: base.Contact.Title, Message: msg, PrimaryCTA: cta}
}

func (a *Adapter) meta(p profile.UserProfile, t profile.VisitorType, base Translation) MetaContent {
	v, ok := variantFor(metaVariants, t)
	if !ok {
		v = metaVariant{}
	}
	baseKeywords := v.Keywords
	if len(baseKeywords) == 0 {
		baseKeywords = base.SEO.Keywords
	}
	return MetaContent{
		Title:       a.interpolate(orElse(v.Title, base.SEO.Title), base),
		Description: a.interpolate(orElse(v.Description, base.SEO.Description), base),
		Keywords:    generateKeywords(baseKeywords, p),
	}
}

// generateKeywords unions the variant keywords with the visitor's search
// keywords, source-derived keywords, and the standing industry set,
// deduplicated in first-seen order.
func generateKeywords(baseKeywords []string, p profile.UserProfile) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(words []string) {
		for _, w := range words {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	add(baseKeywords)
	add(p.SearchKeywords)
	add(sourceKeywords[p.Source])
	add(industryKeywords)
	return out
}

// DynamicCTA returns the call-to-action for the resolved visitor type.
func (a *Adapter) DynamicCTA(p profile.UserProfile) CTA {
	if cta, ok := dynamicCTAs[ResolveType(p)]; ok {
		return cta
	}
	return dynamicCTAs[profile.TypeUnknown]
}

// SectionPriority returns the page section ordering for the resolved
// visitor type.
func SectionPriority(p profile.UserProfile) []string {
	if order, ok := sectionPriorities[ResolveType(p)]; ok {
		return cloneStrings(order)
	}
	return cloneStrings(sectionPriorities[profile.TypeUnknown])
}

// Hints derives layout and emphasis signals from the profile.
func (a *Adapter) Hints(p profile.UserProfile) Hints {
	return Hints{
		PrimaryFocus:           primaryFocus(p),
		HighlightSections:      highlightSections(p),
		ContentTone:            contentTone(p),
		CallToAction:           callToAction(p),
		PreferredContactMethod: p.Preferences.ContactPreference,
		ShowMetrics:            p.Type == profile.TypeHeadHunter || p.Intent == profile.IntentHiring,
		EmphasizeProjects:      p.Type == profile.TypePeerDeveloper || p.Source == profile.SourceGitHub,
		ShowCertifications:     p.Type == profile.TypeHeadHunter || p.Intent == profile.IntentHiring,
		IndustryKeywords:       hintKeywords(p),
	}
}

func primaryFocus(p profile.UserProfile) string {
	switch {
	case p.Type == profile.TypeHeadHunter || p.Intent == profile.IntentHiring:
		return "professional-achievements"
	case p.Type == profile.TypePeerDeveloper:
		return "technical-skills"
	case p.Type == profile.TypeClient:
		return "business-results"
	}
	return "balanced"
}

func highlightSections(p profile.UserProfile) []string {
	switch {
	case p.Type == profile.TypeHeadHunter || p.Intent == profile.IntentHiring:
		return []string{"experience", "skills", "education", "certificates"}
	case p.Type == profile.TypePeerDeveloper:
		return []string{"projects", "skills", "publications"}
	case p.Type == profile.TypeClient:
		return []string{"projects", "experience", "contact"}
	}
	if len(p.Interests) > 0 {
		return cloneStrings(p.Interests)
	}
	return []string{"about", "skills", "projects"}
}

func contentTone(p profile.UserProfile) string {
	switch {
	case p.Type == profile.TypeHeadHunter:
		return "professional"
	case p.Type == profile.TypePeerDeveloper || p.Source == profile.SourceGitHub:
		return "technical"
	case p.Type == profile.TypeClient:
		return "business"
	}
	return "friendly"
}

func callToAction(p profile.UserProfile) string {
	switch {
	case p.Type == profile.TypeHeadHunter || p.Intent == profile.IntentHiring:
		return "hire-me"
	case p.Type == profile.TypePeerDeveloper:
		return "collaborate"
	case p.Type == profile.TypeClient:
		return "work-together"
	}
	return "get-in-touch"
}

func hintKeywords(p profile.UserProfile) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range append(cloneStrings(p.SearchKeywords), hintTechKeywords...) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// interpolate substitutes the {{years}}, {{projects_count}}, and {{name}}
// placeholders.
func (a *Adapter) interpolate(s string, base Translation) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	years := a.Clock.Now().Year() - a.StartYear
	count := len(base.Projects.Items)
	if count == 0 {
		count = defaultProjectsCount
	}
	r := strings.NewReplacer(
		"{{years}}", strconv.Itoa(years),
		"{{projects_count}}", strconv.Itoa(count),
		"{{name}}", a.OwnerName,
	)
	return r.Replace(s)
}

func (a *Adapter) interpolateAll(ss []string, base Translation) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = a.interpolate(s, base)
	}
	return out
}

func orElse(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
