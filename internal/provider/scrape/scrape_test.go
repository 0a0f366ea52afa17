package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HeckerOO1/Search-engine/internal/provider"
)

const fixture = `<html><body>
<li class="b_algo">
  <h2><a href="https://www.ready.gov/hurricanes">Hurricane Preparedness</a></h2>
  <div class="b_caption"><p>Evacuation routes and supply kits for hurricane season.</p></div>
</li>
<li class="b_algo">
  <h2><a href="/relative/path">Relative Result</a></h2>
  <div class="b_caption"><p>Link is relative to the page.</p></div>
</li>
<li class="b_algo">
  <h2><a href="javascript:void(0)">Junk Result</a></h2>
  <div class="b_caption"><p>Should be dropped.</p></div>
</li>
</body></html>`

func bingSelectors() Selectors {
	_, sel, _ := Preset("bing")
	return sel
}

func TestFetch_ExtractsBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hurricane prep" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	e, err := New("bing", srv.URL+"/search?q=%s", bingSelectors(), srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.Fetch(context.Background(), "hurricane prep", provider.Constraints{MaxResults: 10})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results (javascript link dropped), got %d", len(got))
	}
	if got[0].Title() != "Hurricane Preparedness" {
		t.Errorf("title = %q", got[0].Title())
	}
	if got[0].Link() != "https://www.ready.gov/hurricanes" {
		t.Errorf("link = %q", got[0].Link())
	}
	if got[0].Snippet() != "Evacuation routes and supply kits for hurricane season." {
		t.Errorf("snippet = %q", got[0].Snippet())
	}
	if got[1].Link() != srv.URL+"/relative/path" {
		t.Errorf("relative link not resolved: %q", got[1].Link())
	}
}

func TestFetch_MaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	e, err := New("bing", srv.URL+"/search?q=%s", bingSelectors(), srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.Fetch(context.Background(), "hurricane", provider.Constraints{MaxResults: 1})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("x", "https://example.com/no-placeholder", bingSelectors(), nil); err == nil {
		t.Error("expected error for missing query placeholder")
	}
	if _, err := New("x", "https://example.com/?q=%s", Selectors{}, nil); err == nil {
		t.Error("expected error for empty selectors")
	}
}

func TestNew_LinkDefaultsToTitle(t *testing.T) {
	e, err := New("x", "https://example.com/?q=%s", Selectors{Result: "div.r", Title: "a.t"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.sel.Link != "a.t" {
		t.Errorf("link selector = %q, want the title selector", e.sel.Link)
	}
}

func TestPreset_KnownEngines(t *testing.T) {
	for _, name := range []string{"brave", "bing", "yahoo", "ecosia", "ask"} {
		urlFormat, sel, ok := Preset(name)
		if !ok {
			t.Errorf("Preset(%q) missing", name)
			continue
		}
		if urlFormat == "" || sel.Result == "" || sel.Title == "" {
			t.Errorf("Preset(%q) incomplete", name)
		}
	}
	if _, _, ok := Preset("altavista"); ok {
		t.Error("unknown engine should not have a preset")
	}
}
