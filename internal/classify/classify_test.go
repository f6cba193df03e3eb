package classify

import (
	"net/url"
	"testing"
	"time"

	"github.com/kalambet/persona/internal/profile"
)

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parsing query %q: %v", raw, err)
	}
	return v
}

func TestDetectSource(t *testing.T) {
	cases := []struct {
		name     string
		referrer string
		query    string
		want     profile.Source
	}{
		{"linkedin referrer", "https://www.linkedin.com/feed/", "", profile.SourceLinkedIn},
		{"github referrer", "https://github.com/someone", "", profile.SourceGitHub},
		{"google referrer", "https://www.google.com/search", "", profile.SourceGoogle},
		{"bing referrer", "https://www.bing.com/search", "", profile.SourceGoogle},
		{"twitter referrer", "https://twitter.com/", "", profile.SourceSocial},
		{"facebook referrer", "https://facebook.com/", "", profile.SourceSocial},
		{"unknown referrer", "https://news.ycombinator.com/", "", profile.SourceUnknown},
		{"no signals", "", "", profile.SourceDirect},
		{"utm overrides referrer", "https://www.google.com/", "utm_source=LinkedIn", profile.SourceLinkedIn},
		{"source param", "", "source=github", profile.SourceGitHub},
		{"ref param", "", "ref=twitter", profile.SourceSocial},
		{"unrecognized param", "", "utm_source=newsletter", profile.SourceUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Classify(c.referrer, mustParseQuery(t, c.query), "", nil)
			if r.Source != c.want {
				t.Errorf("source: got %q, want %q", r.Source, c.want)
			}
		})
	}
}

func TestKeywordExtraction(t *testing.T) {
	r := Classify("https://www.google.com/", mustParseQuery(t, "q=go+backend+dev+js+of"), "", nil)
	want := []string{"backend", "dev"}
	if len(r.SearchKeywords) != len(want) {
		t.Fatalf("keywords: got %v, want %v", r.SearchKeywords, want)
	}
	for i := range want {
		if r.SearchKeywords[i] != want[i] {
			t.Errorf("keyword %d: got %q, want %q", i, r.SearchKeywords[i], want[i])
		}
	}

	// Keywords only extracted for the google source.
	r = Classify("https://www.linkedin.com/", mustParseQuery(t, "q=hire+developer"), "", nil)
	if len(r.SearchKeywords) != 0 {
		t.Errorf("keywords extracted for non-google source: %v", r.SearchKeywords)
	}
}

func TestCampaignMetadata(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantType   profile.VisitorType
		wantIntent profile.Intent
	}{
		{"hiring campaign", "utm_campaign=hiring2024", profile.TypeHeadHunter, profile.IntentHiring},
		{"recruitment medium", "utm_medium=recruitment", profile.TypeHeadHunter, profile.IntentHiring},
		{"network campaign", "utm_campaign=network-push", profile.TypeUnknown, profile.IntentNetworking},
		{"connect medium", "utm_medium=connect", profile.TypeUnknown, profile.IntentNetworking},
		{"job campaign", "utm_campaign=jobfair", profile.TypeJobSeeker, profile.IntentHiring},
		{"career medium", "utm_medium=career-site", profile.TypeJobSeeker, profile.IntentHiring},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Classify("", mustParseQuery(t, c.query), "", nil)
			if r.Type != c.wantType {
				t.Errorf("type: got %q, want %q", r.Type, c.wantType)
			}
			if r.Intent != c.wantIntent {
				t.Errorf("intent: got %q, want %q", r.Intent, c.wantIntent)
			}
		})
	}
}

func TestScenarioA_LinkedInHiringCampaign(t *testing.T) {
	r := Classify("https://www.linkedin.com/", mustParseQuery(t, "utm_campaign=hiring2024"), "", nil)

	if r.Source != profile.SourceLinkedIn {
		t.Errorf("source: got %q, want linkedin", r.Source)
	}
	if r.Intent != profile.IntentHiring {
		t.Errorf("intent: got %q, want hiring", r.Intent)
	}
	if r.Type != profile.TypeHeadHunter {
		t.Errorf("type: got %q, want head_hunter", r.Type)
	}
}

func TestScenarioB_DirectNoSignals(t *testing.T) {
	r := Classify("", url.Values{}, "", nil)

	if r.Source != profile.SourceDirect {
		t.Errorf("source: got %q, want direct", r.Source)
	}
	if r.Type != profile.TypeUnknown {
		t.Errorf("type: got %q, want unknown", r.Type)
	}
	if r.Intent != profile.IntentUnknown {
		t.Errorf("intent: got %q, want unknown", r.Intent)
	}
}

func TestLinkedInRefinement(t *testing.T) {
	// No keywords: defaults to peer developer.
	r := Classify("https://www.linkedin.com/", url.Values{}, "", nil)
	if r.Type != profile.TypePeerDeveloper {
		t.Errorf("linkedin default: got %q, want peer_developer", r.Type)
	}

	// Recruiter indicators win ties against job-seeker indicators.
	r = Result{Source: profile.SourceLinkedIn, SearchKeywords: []string{"talent", "jobs"}, Type: profile.TypeUnknown, Intent: profile.IntentUnknown}
	refineTypeFromSource(&r, false)
	if r.Type != profile.TypeHeadHunter {
		t.Errorf("recruiter tie-break: got %q, want head_hunter", r.Type)
	}

	r = Result{Source: profile.SourceLinkedIn, SearchKeywords: []string{"career"}, Type: profile.TypeUnknown, Intent: profile.IntentUnknown}
	refineTypeFromSource(&r, false)
	if r.Type != profile.TypeJobSeeker {
		t.Errorf("job-seeker keywords: got %q, want job_seeker", r.Type)
	}
}

func TestGitHubForcesPeerDeveloper(t *testing.T) {
	r := Classify("https://github.com/kalambet", url.Values{}, "", nil)
	if r.Type != profile.TypePeerDeveloper {
		t.Errorf("type: got %q, want peer_developer", r.Type)
	}
	if r.Intent != profile.IntentCollaboration {
		t.Errorf("intent: got %q, want collaboration", r.Intent)
	}
}

func TestGoogleKeywordRefinement(t *testing.T) {
	// Hiring keywords win ties against learning keywords.
	r := Classify("https://www.google.com/", mustParseQuery(t, "q=hire+tutorial"), "", nil)
	if r.Type != profile.TypeHeadHunter || r.Intent != profile.IntentHiring {
		t.Errorf("hiring tie-break: got type=%q intent=%q", r.Type, r.Intent)
	}

	r = Classify("https://www.google.com/", mustParseQuery(t, "q=golang+tutorial"), "", nil)
	if r.Type != profile.TypePeerDeveloper || r.Intent != profile.IntentLearning {
		t.Errorf("learning keywords: got type=%q intent=%q", r.Type, r.Intent)
	}
}

func TestFragmentInterests(t *testing.T) {
	r := Classify("", url.Values{}, "#projects", nil)
	if len(r.Interests) != 1 || r.Interests[0] != "projects" {
		t.Errorf("interests: got %v, want [projects]", r.Interests)
	}

	// Fragments outside the allow-list are ignored.
	r = Classify("", url.Values{}, "#admin", nil)
	if len(r.Interests) != 0 {
		t.Errorf("unexpected interests: %v", r.Interests)
	}
}

func TestBehavioralOverride(t *testing.T) {
	history := []profile.VisitRecord{{
		Timestamp:      time.Now(),
		TimeSpentMs:    45_000,
		SectionsViewed: []string{"home", "contact"},
	}}

	r := Classify("https://github.com/", url.Values{}, "", history)
	if r.Intent != profile.IntentHiring {
		t.Errorf("behavioral override: got intent %q, want hiring", r.Intent)
	}

	// Short visits do not trigger the override.
	history[0].TimeSpentMs = 10_000
	r = Classify("https://github.com/", url.Values{}, "", history)
	if r.Intent != profile.IntentCollaboration {
		t.Errorf("short dwell overrode intent: %q", r.Intent)
	}
}

func TestCampaignTypeNotOverwrittenByLinkedInDefault(t *testing.T) {
	r := Classify("https://www.linkedin.com/", mustParseQuery(t, "utm_campaign=jobfair"), "", nil)
	if r.Type != profile.TypeJobSeeker {
		t.Errorf("campaign type lost to linkedin default: got %q", r.Type)
	}
}

func TestApply(t *testing.T) {
	p := profile.UserProfile{
		Type:      profile.TypeClient,
		Source:    profile.SourceUnknown,
		Intent:    profile.IntentUnknown,
		Interests: []string{"projects"},
	}

	r := Result{
		Type:      profile.TypeUnknown, // no signal: must not reset client
		Source:    profile.SourceDirect,
		Intent:    profile.IntentUnknown,
		Interests: []string{"projects", "skills"},
	}
	r.Apply(&p)

	if p.Type != profile.TypeClient {
		t.Errorf("no-signal type overwrote existing: %q", p.Type)
	}
	if p.Source != profile.SourceDirect {
		t.Errorf("source not applied: %q", p.Source)
	}
	if len(p.Interests) != 2 {
		t.Errorf("interests not deduplicated: %v", p.Interests)
	}
}
