// Package local implements the first-priority tier: a small curated
// corpus of crisis resources served from memory. It never fails, so
// the discovery walk always has a floor to stand on.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

// Document is one curated corpus entry.
type Document struct {
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
	Snippet string `yaml:"snippet"`
}

type corpusFile struct {
	Documents []Document `yaml:"documents"`
}

// LoadCorpus reads curated documents from a YAML file.
func LoadCorpus(path string) ([]Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return f.Documents, nil
}

// Index serves the curated corpus as a provider tier.
type Index struct {
	name string
	docs []Document
}

// Compile-time check: Index implements provider.Adapter.
var _ provider.Adapter = (*Index)(nil)

// NewIndex builds the tier. Empty docs fall back to the compiled-in
// corpus so the tier works with no config tree at all.
func NewIndex(name string, docs []Document) *Index {
	if len(docs) == 0 {
		docs = DefaultCorpus()
	}
	return &Index{name: name, docs: docs}
}

// Name returns the tier identifier.
func (i *Index) Name() string { return i.name }

// Fetch scores corpus documents by query token overlap and returns the
// matches, best first, document order on ties.
func (i *Index) Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, nil
	}

	type scored struct {
		doc     Document
		overlap int
		pos     int
	}
	var matches []scored
	for pos, doc := range i.docs {
		text := strings.ToLower(doc.Title + " " + doc.Snippet)
		overlap := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, scored{doc: doc, overlap: overlap, pos: pos})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].overlap > matches[b].overlap
	})

	limit := c.MaxResults
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}
	out := make([]result.Result, 0, limit)
	for _, m := range matches[:limit] {
		out = append(out, result.New(m.doc.Title, m.doc.Link, m.doc.Snippet, "", nil, i.name))
	}
	return out, nil
}

// Vocabulary returns the unique lowercase terms of the corpus, used to
// seed the spell checker.
func (i *Index) Vocabulary() []string {
	seen := make(map[string]bool)
	var words []string
	for _, doc := range i.docs {
		for _, tok := range strings.Fields(strings.ToLower(doc.Title + " " + doc.Snippet)) {
			tok = strings.Trim(tok, ".,;:!?()'\"")
			if len(tok) < 3 || seen[tok] {
				continue
			}
			seen[tok] = true
			words = append(words, tok)
		}
	}
	sort.Strings(words)
	return words
}

// DefaultCorpus is the compiled-in crisis resource set.
func DefaultCorpus() []Document {
	return []Document{
		{
			Title:   "Find Open Emergency Shelters",
			Link:    "https://www.fema.gov/emergency-managers/practitioners/shelters",
			Snippet: "Locate open emergency shelters near you during a disaster, including earthquake, flood, and hurricane evacuation sites.",
		},
		{
			Title:   "Earthquake Safety: Drop, Cover, Hold On",
			Link:    "https://www.ready.gov/earthquakes",
			Snippet: "What to do before, during, and after an earthquake. Drop, cover, and hold on until the shaking stops.",
		},
		{
			Title:   "Flood Safety Tips and Warnings",
			Link:    "https://www.weather.gov/safety/flood",
			Snippet: "Flood and flash flood warnings, evacuation guidance, and how to stay safe when water is rising.",
		},
		{
			Title:   "Wildfire Smoke and Evacuation Guidance",
			Link:    "https://www.ready.gov/wildfires",
			Snippet: "Wildfire evacuation checklists, smoke protection, and alerts for active fire zones.",
		},
		{
			Title:   "Hurricane Preparedness Checklist",
			Link:    "https://www.ready.gov/hurricanes",
			Snippet: "Prepare for hurricane season: evacuation routes, supply kits, and storm surge warnings.",
		},
		{
			Title:   "First Aid Steps for Common Emergencies",
			Link:    "https://www.redcross.org/take-a-class/first-aid",
			Snippet: "First aid basics for bleeding, burns, choking, and heart attack symptoms while waiting for help.",
		},
		{
			Title:   "CPR Instructions: Hands-Only CPR",
			Link:    "https://www.redcross.org/take-a-class/cpr",
			Snippet: "Hands-only CPR steps for an unresponsive person not breathing normally. Call emergency services first.",
		},
		{
			Title:   "Poison Emergency Help",
			Link:    "https://www.poison.org",
			Snippet: "Free, expert poison control guidance for poisoning and overdose emergencies, available 24 hours.",
		},
		{
			Title:   "Heat Wave Safety for High Temperatures",
			Link:    "https://www.weather.gov/safety/heat",
			Snippet: "Heat stroke warning signs, cooling center locations, and extreme heat safety guidance.",
		},
		{
			Title:   "Winter Storm and Extreme Cold Safety",
			Link:    "https://www.weather.gov/safety/cold",
			Snippet: "Blizzard preparedness, frostbite and hypothermia warning signs, and power outage guidance.",
		},
		{
			Title:   "Disease Outbreak Updates and Guidance",
			Link:    "https://www.cdc.gov/outbreaks",
			Snippet: "Current infectious disease outbreak notices, symptoms, and pandemic preparedness guidance.",
		},
		{
			Title:   "Build an Emergency Supply Kit",
			Link:    "https://www.ready.gov/kit",
			Snippet: "Water, food, and supplies to keep ready for any disaster. A checklist for your household emergency kit.",
		},
		{
			Title:   "Tsunami Warnings and Coastal Evacuation",
			Link:    "https://www.tsunami.gov",
			Snippet: "Active tsunami warnings, coastal evacuation zones, and what to do after an undersea earthquake.",
		},
		{
			Title:   "Crisis Counseling and Distress Support",
			Link:    "https://www.samhsa.gov/find-help/disaster-distress-helpline",
			Snippet: "Free crisis counseling for emotional distress caused by natural or human-caused disasters.",
		},
	}
}
