package content

// PersonalizedContent is the fully resolved content for one render: a pure
// projection of the visitor profile through the variant tables. Every field
// is always populated; absent variant data falls through to the base
// translation for the requested language.
type PersonalizedContent struct {
	Home       HomeContent       `json:"home"`
	About      AboutContent      `json:"about"`
	Skills     SkillsContent     `json:"skills"`
	Projects   ProjectsContent   `json:"projects"`
	Experience ExperienceContent `json:"experience"`
	Contact    ContactContent    `json:"contact"`
	Meta       MetaContent       `json:"meta"`
}

type HomeContent struct {
	Greeting string `json:"greeting"`
	Tagline  string `json:"tagline"`
	Intro    string `json:"intro"`
	CTAText  string `json:"ctaText"`
}

type AboutContent struct {
	Title               string   `json:"title"`
	ProfessionalSummary string   `json:"professionalSummary"`
	KeyHighlights       []string `json:"keyHighlights"`
}

type SkillsContent struct {
	Title         string   `json:"title"`
	FocusAreas    []string `json:"focusAreas"`
	PriorityOrder []string `json:"priorityOrder"`
}

type ProjectsContent struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FeaturedProjects []string `json:"featuredProjects"`
}

// Emphasis selects how the experience section presents entries.
type Emphasis string

const (
	EmphasisAchievements     Emphasis = "achievements"
	EmphasisImpact           Emphasis = "impact"
	EmphasisResponsibilities Emphasis = "responsibilities"
)

type ExperienceContent struct {
	Title    string   `json:"title"`
	Emphasis Emphasis `json:"emphasis"`
}

type ContactContent struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	PrimaryCTA string `json:"primaryCTA"`
}

type MetaContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// CTA is the dynamic call-to-action for the current visitor.
type CTA struct {
	Text   string `json:"text"`
	Action string `json:"action"`
	Style  string `json:"style"` // "primary" or "secondary"
}

// Hints are coarse layout/emphasis signals derived from the profile,
// consumed by the presentation layer alongside the content itself.
type Hints struct {
	PrimaryFocus           string   `json:"primaryFocus"`
	HighlightSections      []string `json:"highlightSections"`
	ContentTone            string   `json:"contentTone"`
	CallToAction           string   `json:"callToAction"`
	PreferredContactMethod string   `json:"preferredContactMethod"`
	ShowMetrics            bool     `json:"showMetrics"`
	EmphasizeProjects      bool     `json:"emphasizeProjects"`
	ShowCertifications     bool     `json:"showCertifications"`
	IndustryKeywords       []string `json:"industryKeywords"`
}
