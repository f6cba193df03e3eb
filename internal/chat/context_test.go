package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/kalambet/persona/internal/content"
	"github.com/kalambet/persona/internal/profile"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testAdapter() *content.Adapter {
	return &content.Adapter{
		OwnerName: "Khalil Charfi",
		StartYear: 2019,
		Clock:     fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestBuildContextIncludesProfileFacts(t *testing.T) {
	a := testAdapter()
	p := profile.UserProfile{
		Type:      profile.TypeHeadHunter,
		Source:    profile.SourceLinkedIn,
		Intent:    profile.IntentHiring,
		Interests: []string{"experience", "skills"},
	}
	c := a.Personalize(p, "en")

	ctx := BuildContext(p, c, a.Hints(p), "en")

	for _, want := range []string{"head_hunter", "linkedin", "hiring", "experience, skills", "professional"} {
		if !strings.Contains(ctx, want) {
			t.Errorf("priming context missing %q", want)
		}
	}
}

func TestBuildContextOmitsUnknownSignals(t *testing.T) {
	a := testAdapter()
	p := profile.UserProfile{
		Type:   profile.TypeUnknown,
		Source: profile.SourceUnknown,
		Intent: profile.IntentUnknown,
	}
	ctx := BuildContext(p, a.Personalize(p, "en"), a.Hints(p), "en")

	if strings.Contains(ctx, "Visitor type:") || strings.Contains(ctx, "Arrived via:") {
		t.Errorf("unknown signals leaked into context:\n%s", ctx)
	}
}

func TestBuildContextDoesNotLeakBehavior(t *testing.T) {
	a := testAdapter()
	p := profile.UserProfile{
		Type: profile.TypePeerDeveloper,
		SessionData: profile.SessionData{
			ClickedElements: []string{"cta-button-1756300000000"},
		},
		VisitHistory: []profile.VisitRecord{
			{SessionID: "3e9c2a6e-8a0f-4a4a-9f7d-000000000000", Referrer: "https://linkedin.com/feed"},
		},
	}
	ctx := BuildContext(p, a.Personalize(p, "en"), a.Hints(p), "en")

	for _, leaked := range []string{"cta-button", "3e9c2a6e", "linkedin.com/feed"} {
		if strings.Contains(ctx, leaked) {
			t.Errorf("behavior data %q leaked into priming context", leaked)
		}
	}
}

func TestBuildContextBudget(t *testing.T) {
	a := testAdapter()
	interests := make([]string, 400)
	for i := range interests {
		interests[i] = "projects"
	}
	p := profile.UserProfile{Interests: interests}

	ctx := BuildContext(p, a.Personalize(p, "en"), a.Hints(p), "en")
	if len(ctx) > 2000 {
		t.Errorf("priming context exceeds budget: %d bytes", len(ctx))
	}
}
