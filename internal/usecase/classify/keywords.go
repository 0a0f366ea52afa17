package classify

import (
	"strings"

	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
)

// Category groups emergency keywords under a human-readable name.
type Category struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// Keywords is the heuristic matcher's term list. Category order is
// preserved so trigger output is deterministic.
type Keywords struct {
	Categories []Category `yaml:"categories"`
	Urgency    []string   `yaml:"urgency"`
}

// KeywordMatcher detects emergency intent by term lookup. It is the
// always-on half of the classifier: zero dependencies, zero latency.
type KeywordMatcher struct {
	kw Keywords
}

// NewKeywordMatcher builds a matcher over the given term list.
func NewKeywordMatcher(kw Keywords) *KeywordMatcher {
	for i := range kw.Categories {
		for j, t := range kw.Categories[i].Terms {
			kw.Categories[i].Terms[j] = strings.ToLower(strings.TrimSpace(t))
		}
	}
	for i, t := range kw.Urgency {
		kw.Urgency[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return &KeywordMatcher{kw: kw}
}

// TermCount reports how many category terms the matcher carries.
func (m *KeywordMatcher) TermCount() int {
	n := 0
	for _, c := range m.kw.Categories {
		n += len(c.Terms)
	}
	return n
}

// Match scans the normalized query for category terms and returns one
// trigger per hit plus a confidence built from hit counts. Urgency
// terms raise confidence but never trigger on their own.
func (m *KeywordMatcher) Match(normalized string) ([]mode.Trigger, float64) {
	var triggers []mode.Trigger
	for _, cat := range m.kw.Categories {
		for _, term := range cat.Terms {
			if term != "" && strings.Contains(normalized, term) {
				triggers = append(triggers, mode.KeywordTrigger(cat.Name, term))
			}
		}
	}
	if len(triggers) == 0 {
		return nil, 0
	}

	urgencyHits := 0
	for _, term := range m.kw.Urgency {
		if term != "" && strings.Contains(normalized, term) {
			urgencyHits++
		}
	}

	confidence := min64(0.3*float64(len(triggers)), 0.7) + min64(0.15*float64(urgencyHits), 0.3)
	return triggers, confidence
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// DefaultKeywords is the compiled-in term list, used when no keywords
// file is configured.
func DefaultKeywords() Keywords {
	return Keywords{
		Categories: []Category{
			{
				Name: "natural disaster",
				Terms: []string{
					"earthquake", "aftershock", "tremor", "tsunami", "hurricane",
					"typhoon", "cyclone", "tornado", "flood", "flash flood",
					"storm surge", "wildfire", "forest fire", "brush fire",
					"landslide", "mudslide", "avalanche", "volcano", "eruption",
					"blizzard", "hailstorm", "heat wave",
				},
			},
			{
				Name: "medical emergency",
				Terms: []string{
					"heart attack", "cardiac arrest", "stroke", "seizure",
					"overdose", "poisoning", "poison control", "choking",
					"anaphylaxis", "allergic reaction", "unconscious",
					"not breathing", "cpr", "severe bleeding", "hemorrhage",
					"heatstroke", "hypothermia", "snake bite", "broken bone",
					"severe burn",
				},
			},
			{
				Name: "public safety",
				Terms: []string{
					"active shooter", "shooting", "gunfire", "explosion",
					"bomb threat", "hostage", "terrorist attack", "riot",
					"looting", "kidnapping", "amber alert", "missing child",
					"armed robbery", "stabbing",
				},
			},
			{
				Name: "infrastructure hazard",
				Terms: []string{
					"gas leak", "power outage", "blackout", "chemical spill",
					"oil spill", "radiation leak", "nuclear accident",
					"building collapse", "bridge collapse", "train derailment",
					"plane crash", "water contamination", "boil water",
					"carbon monoxide", "downed power line", "sinkhole",
				},
			},
		},
		Urgency: []string{
			"now", "right now", "urgent", "urgently", "emergency", "help",
			"immediately", "asap", "near me", "tonight", "sos", "911",
		},
	}
}
