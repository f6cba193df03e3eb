// Package classify infers a visitor classification from the weak signals a
// browser can report: referrer, URL query parameters, and the URL fragment.
// Everything here is pure; misclassification is an accepted outcome and the
// fallback chain always ends in "unknown", never an error.
package classify

import (
	"net/url"
	"strings"
	"time"

	"github.com/kalambet/persona/internal/profile"
)

// Result is the partial profile produced by classification. Zero values
// ("", unknown, nil) mean "no signal"; Apply only writes stronger values.
type Result struct {
	Type           profile.VisitorType
	Source         profile.Source
	Intent         profile.Intent
	Interests      []string
	SearchKeywords []string
}

// contactDwellThreshold is the dwell time on the contact section in a prior
// visit that forces hiring intent.
const contactDwellThreshold = 30 * time.Second

// minKeywordLen filters search-query tokens; tokens this short carry no signal.
const minKeywordLen = 3

var (
	recruiterIndicators = []string{"talent", "recruit", "hiring", "hr"}
	jobSeekerIndicators = []string{"jobs", "career", "opportunity", "position"}
	hiringKeywords      = []string{"hire", "recruit", "developer", "engineer", "portfolio", "cv", "resume"}
	learningKeywords    = []string{"tutorial", "learn", "example", "code", "project"}

	// Sections a URL fragment may legitimately point at.
	interestSections = []string{"skills", "projects", "experience", "education"}
)

// Classify derives a Result from the session-start signals, in fixed order:
// source detection, keyword extraction, campaign metadata, source-based type
// refinement, fragment interests, then a behavioral override from the most
// recent visit. First match per field wins within each step.
func Classify(referrer string, params url.Values, fragment string, history []profile.VisitRecord) Result {
	r := Result{
		Type:   profile.TypeUnknown,
		Source: profile.SourceUnknown,
		Intent: profile.IntentUnknown,
	}

	r.Source = detectSource(referrer, params)
	if r.Source == profile.SourceGoogle {
		r.SearchKeywords = extractKeywords(params)
	}

	campaignTyped := applyCampaign(&r, params)
	refineTypeFromSource(&r, campaignTyped)

	if frag := strings.ToLower(strings.TrimPrefix(fragment, "#")); frag != "" {
		for _, section := range interestSections {
			if frag == section {
				r.Interests = append(r.Interests, section)
				break
			}
		}
	}

	// Behavioral override: a long look at the contact section last visit is
	// a stronger hiring signal than anything above.
	if len(history) > 0 {
		last := history[len(history)-1]
		if last.TimeSpentMs > contactDwellThreshold.Milliseconds() && contains(last.SectionsViewed, "contact") {
			r.Intent = profile.IntentHiring
		}
	}

	return r
}

// detectSource prefers explicit campaign parameters over referrer-domain
// sniffing; no referrer and no params means a direct visit.
func detectSource(referrer string, params url.Values) profile.Source {
	param := firstParam(params, "utm_source", "source", "ref")
	if param != "" {
		switch {
		case strings.Contains(param, "linkedin"):
			return profile.SourceLinkedIn
		case strings.Contains(param, "github"):
			return profile.SourceGitHub
		case strings.Contains(param, "google"):
			return profile.SourceGoogle
		case strings.Contains(param, "twitter"), strings.Contains(param, "facebook"):
			return profile.SourceSocial
		}
		return profile.SourceUnknown
	}

	ref := strings.ToLower(referrer)
	if ref != "" {
		switch {
		case strings.Contains(ref, "linkedin.com"):
			return profile.SourceLinkedIn
		case strings.Contains(ref, "github.com"):
			return profile.SourceGitHub
		case strings.Contains(ref, "google.com"), strings.Contains(ref, "bing.com"):
			return profile.SourceGoogle
		case strings.Contains(ref, "twitter.com"), strings.Contains(ref, "facebook.com"):
			return profile.SourceSocial
		}
		return profile.SourceUnknown
	}

	return profile.SourceDirect
}

// extractKeywords pulls search terms from the q/keywords parameter,
// filtered to tokens longer than two characters.
func extractKeywords(params url.Values) []string {
	query := firstParam(params, "q", "keywords")
	if query == "" {
		return nil
	}
	var out []string
	for _, token := range strings.Fields(query) {
		if len(token) >= minKeywordLen {
			out = append(out, token)
		}
	}
	return out
}

// applyCampaign reads utm_campaign/utm_medium substrings. Returns true when
// a campaign rule set the visitor type, which blocks the weaker defaults in
// refineTypeFromSource.
func applyCampaign(r *Result, params url.Values) bool {
	campaign := strings.ToLower(params.Get("utm_campaign"))
	medium := strings.ToLower(params.Get("utm_medium"))

	switch {
	case strings.Contains(campaign, "hiring") || strings.Contains(medium, "recruitment"):
		r.Intent = profile.IntentHiring
		r.Type = profile.TypeHeadHunter
		return true
	case strings.Contains(campaign, "network") || strings.Contains(medium, "connect"):
		r.Intent = profile.IntentNetworking
		return false
	case strings.Contains(campaign, "job") || strings.Contains(medium, "career"):
		r.Intent = profile.IntentHiring
		r.Type = profile.TypeJobSeeker
		return true
	}
	return false
}

// refineTypeFromSource derives type and intent from the traffic source and
// search keywords. A campaign-set type is more specific than the LinkedIn
// peer-developer default, so that default is skipped when campaignTyped;
// keyword matches still win because they are direct evidence.
func refineTypeFromSource(r *Result, campaignTyped bool) {
	switch r.Source {
	case profile.SourceLinkedIn:
		switch {
		case matchesAny(r.SearchKeywords, recruiterIndicators):
			r.Type = profile.TypeHeadHunter
		case matchesAny(r.SearchKeywords, jobSeekerIndicators):
			r.Type = profile.TypeJobSeeker
		case !campaignTyped:
			r.Type = profile.TypePeerDeveloper
		}

	case profile.SourceGitHub:
		r.Type = profile.TypePeerDeveloper
		r.Intent = profile.IntentCollaboration

	case profile.SourceGoogle:
		switch {
		case containsAny(r.SearchKeywords, hiringKeywords):
			r.Type = profile.TypeHeadHunter
			r.Intent = profile.IntentHiring
		case containsAny(r.SearchKeywords, learningKeywords):
			r.Type = profile.TypePeerDeveloper
			r.Intent = profile.IntentLearning
		}
	}
}

// Apply merges the classification into a profile: fields are only written
// when the result carries a signal, and interests are deduplicated.
func (r Result) Apply(p *profile.UserProfile) {
	if r.Type != profile.TypeUnknown {
		p.Type = r.Type
	}
	if r.Source != profile.SourceUnknown {
		p.Source = r.Source
	}
	if r.Intent != profile.IntentUnknown {
		p.Intent = r.Intent
	}
	for _, interest := range r.Interests {
		if !contains(p.Interests, interest) {
			p.Interests = append(p.Interests, interest)
		}
	}
	if len(r.SearchKeywords) > 0 {
		p.SearchKeywords = r.SearchKeywords
	}
}

// firstParam returns the first present parameter value, lowercased.
func firstParam(params url.Values, names ...string) string {
	for _, name := range names {
		if v := params.Get(name); v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}

// matchesAny reports whether any keyword contains any indicator substring.
func matchesAny(keywords, indicators []string) bool {
	for _, k := range keywords {
		for _, ind := range indicators {
			if strings.Contains(k, ind) {
				return true
			}
		}
	}
	return false
}

// containsAny reports whether any keyword equals any list entry.
func containsAny(keywords, list []string) bool {
	for _, k := range keywords {
		for _, entry := range list {
			if k == entry {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
