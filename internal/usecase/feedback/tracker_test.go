package feedback

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func TestRecordReturn_QuickReturnIsPogo(t *testing.T) {
	tr := NewTracker(10*time.Second, 0, 0, nil)

	tr.RecordClick("s-1", "https://a.example.com/one", t0)
	pogo, count := tr.RecordReturn("s-1", "https://a.example.com/one", t0.Add(5*time.Second))
	if !pogo {
		t.Fatal("5s return inside a 10s window must count as pogo")
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestRecordReturn_SlowReturnIsNotPogo(t *testing.T) {
	tr := NewTracker(10*time.Second, 0, 0, nil)

	tr.RecordClick("s-1", "https://a.example.com/one", t0)
	pogo, count := tr.RecordReturn("s-1", "https://a.example.com/one", t0.Add(60*time.Second))
	if pogo {
		t.Fatal("60s return must not count as pogo")
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestRecordReturn_WithoutClick(t *testing.T) {
	tr := NewTracker(0, 0, 0, nil)

	pogo, count := tr.RecordReturn("s-1", "https://a.example.com/one", t0)
	if pogo || count != 0 {
		t.Errorf("return without click: pogo=%v count=%d, want false 0", pogo, count)
	}
}

func TestRecordReturn_SecondReturnNeedsNewClick(t *testing.T) {
	tr := NewTracker(10*time.Second, 0, 0, nil)
	link := "https://a.example.com/one"

	tr.RecordClick("s-1", link, t0)
	tr.RecordReturn("s-1", link, t0.Add(2*time.Second))

	// The click was consumed; a bare repeat return changes nothing.
	pogo, count := tr.RecordReturn("s-1", link, t0.Add(3*time.Second))
	if pogo {
		t.Fatal("second return without a new click counted as pogo")
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 (no prior click state)", count)
	}

	tr.RecordClick("s-1", link, t0.Add(10*time.Second))
	pogo, count = tr.RecordReturn("s-1", link, t0.Add(12*time.Second))
	if !pogo || count != 2 {
		t.Errorf("pogo=%v count=%d, want true 2", pogo, count)
	}
}

func TestRecordClick_RepeatClickRestartsWindow(t *testing.T) {
	tr := NewTracker(10*time.Second, 0, 0, nil)
	link := "https://a.example.com/one"

	tr.RecordClick("s-1", link, t0)
	tr.RecordClick("s-1", link, t0.Add(30*time.Second))
	pogo, _ := tr.RecordReturn("s-1", link, t0.Add(35*time.Second))
	if !pogo {
		t.Error("return 5s after the second click must count as pogo")
	}
}

func TestPogoCount_IsolatedPerSession(t *testing.T) {
	tr := NewTracker(10*time.Second, 0, 0, nil)
	link := "https://a.example.com/one"

	tr.RecordClick("s-1", link, t0)
	tr.RecordReturn("s-1", link, t0.Add(time.Second))

	if got := tr.PogoCount("s-1", link); got != 1 {
		t.Errorf("s-1 count = %d, want 1", got)
	}
	if got := tr.PogoCount("s-2", link); got != 0 {
		t.Errorf("s-2 count = %d, want 0", got)
	}
	if got := tr.PogoCount("s-1", "https://other.example.com"); got != 0 {
		t.Errorf("other link count = %d, want 0", got)
	}
}

func TestSweep_RemovesIdleSessions(t *testing.T) {
	tr := NewTracker(0, 30*time.Minute, 0, nil)

	tr.RecordClick("old", "https://a.example.com", t0)
	tr.RecordClick("fresh", "https://a.example.com", t0.Add(25*time.Minute))

	removed := tr.Sweep(t0.Add(40 * time.Minute))
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if tr.ActiveSessions() != 1 {
		t.Errorf("active = %d, want 1", tr.ActiveSessions())
	}
	if got := tr.PogoCount("old", "https://a.example.com"); got != 0 {
		t.Errorf("expired session still answers with %d", got)
	}
}

func TestStartStop(t *testing.T) {
	tr := NewTracker(0, time.Minute, time.Millisecond, nil)
	tr.Start()
	time.Sleep(5 * time.Millisecond)
	tr.Stop()
	// Stop twice must not panic.
	tr.Stop()
}
