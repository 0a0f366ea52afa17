package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{Standard, Emergency}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "crisis", "STANDARD", "normal"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestTriggerReasons(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		want    string
	}{
		{"keyword", KeywordTrigger("natural disaster", "earthquake"), "natural disaster: earthquake"},
		{"model", ModelTrigger(0.87), "AI classifier, confidence=0.87"},
		{"forced", ForcedTrigger(), "forced by caller"},
		{"zero", Trigger{}, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trigger.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStandardDecision(t *testing.T) {
	d := StandardDecision()
	if d.Mode() != Standard {
		t.Errorf("Mode() = %q", d.Mode())
	}
	if d.IsEmergency() {
		t.Error("IsEmergency() = true")
	}
	if d.Confidence() != 0 {
		t.Errorf("Confidence() = %f", d.Confidence())
	}
	if len(d.Triggers()) != 0 {
		t.Errorf("Triggers() = %v", d.Triggers())
	}
}

func TestEmergencyDecision(t *testing.T) {
	d := EmergencyDecision(0.7, KeywordTrigger("medical crisis", "heart attack"), ModelTrigger(0.91))
	if !d.IsEmergency() {
		t.Error("IsEmergency() = false")
	}
	if d.Confidence() != 0.7 {
		t.Errorf("Confidence() = %f", d.Confidence())
	}
	reasons := d.Reasons()
	if len(reasons) != 2 {
		t.Fatalf("Reasons() = %v", reasons)
	}
	if reasons[0] != "medical crisis: heart attack" {
		t.Errorf("Reasons()[0] = %q", reasons[0])
	}
	if reasons[1] != "AI classifier, confidence=0.91" {
		t.Errorf("Reasons()[1] = %q", reasons[1])
	}
}

func TestTriggersCopy(t *testing.T) {
	d := EmergencyDecision(0.5, ForcedTrigger())
	got := d.Triggers()
	got[0] = KeywordTrigger("x", "y")
	if d.Triggers()[0].Kind() != TriggerForced {
		t.Error("mutating the returned slice changed the decision")
	}
}
