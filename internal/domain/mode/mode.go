// Package mode defines the search mode and the classifier's decision type.
package mode

import "fmt"

// Mode is the active ranking strategy.
type Mode string

// Search mode constants.
const (
	Standard Mode = "standard"
	// Emergency switches ranking to the crisis weight profile.
	Emergency Mode = "emergency"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Standard || m == Emergency
}

// TriggerKind discriminates the evidence behind a mode decision.
type TriggerKind string

// Trigger kind constants.
const (
	// TriggerNone marks a decision with no emergency evidence.
	TriggerNone TriggerKind = "none"
	// TriggerKeyword marks a curated keyword hit.
	TriggerKeyword TriggerKind = "keyword"
	// TriggerModel marks a probabilistic classifier hit.
	TriggerModel TriggerKind = "model"
	// TriggerForced marks an explicit caller override.
	TriggerForced TriggerKind = "forced"
)

// Trigger is one tagged piece of evidence behind a mode decision.
// Exactly the fields relevant to its kind are set.
type Trigger struct {
	kind       TriggerKind
	category   string
	term       string
	confidence float64
}

// KeywordTrigger records a curated keyword match.
func KeywordTrigger(category, term string) Trigger {
	return Trigger{kind: TriggerKeyword, category: category, term: term}
}

// ModelTrigger records a probabilistic classifier hit at the given confidence.
func ModelTrigger(confidence float64) Trigger {
	return Trigger{kind: TriggerModel, confidence: confidence}
}

// ForcedTrigger records an explicit caller override.
func ForcedTrigger() Trigger {
	return Trigger{kind: TriggerForced}
}

// Kind returns the trigger discriminator.
func (t Trigger) Kind() TriggerKind { return t.kind }

// Category returns the keyword category for keyword triggers.
func (t Trigger) Category() string { return t.category }

// Term returns the matched term for keyword triggers.
func (t Trigger) Term() string { return t.term }

// Confidence returns the model confidence for model triggers.
func (t Trigger) Confidence() float64 { return t.confidence }

// Reason renders the trigger as a human-readable explanation.
func (t Trigger) Reason() string {
	switch t.kind {
	case TriggerKeyword:
		return fmt.Sprintf("%s: %s", t.category, t.term)
	case TriggerModel:
		return fmt.Sprintf("AI classifier, confidence=%.2f", t.confidence)
	case TriggerForced:
		return "forced by caller"
	default:
		return "none"
	}
}

// Decision is the immutable outcome of classifying one query.
// It is made once, before scoring, and passed unchanged through the
// rest of the pipeline.
type Decision struct {
	mode       Mode
	confidence float64
	triggers   []Trigger
}

// StandardDecision is the zero-evidence standard-mode outcome.
func StandardDecision() Decision {
	return Decision{mode: Standard}
}

// EmergencyDecision builds an emergency-mode outcome from its evidence.
func EmergencyDecision(confidence float64, triggers ...Trigger) Decision {
	return Decision{mode: Emergency, confidence: confidence, triggers: triggers}
}

// Mode returns the decided mode.
func (d Decision) Mode() Mode { return d.mode }

// IsEmergency reports whether the decision is emergency mode.
func (d Decision) IsEmergency() bool { return d.mode == Emergency }

// Confidence returns the overall decision confidence in [0,1].
func (d Decision) Confidence() float64 { return d.confidence }

// Triggers returns a copy of the evidence list.
func (d Decision) Triggers() []Trigger {
	out := make([]Trigger, len(d.triggers))
	copy(out, d.triggers)
	return out
}

// Reasons renders all triggers as human-readable strings.
func (d Decision) Reasons() []string {
	out := make([]string, 0, len(d.triggers))
	for _, t := range d.triggers {
		out = append(out, t.Reason())
	}
	return out
}
