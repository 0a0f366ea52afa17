package classify

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Class labels the model distinguishes.
const (
	LabelEmergency = "emergency"
	LabelStandard  = "standard"
)

// Sample is one labeled training query.
type Sample struct {
	Text  string `yaml:"text"`
	Label string `yaml:"label"`
}

// Model is a multinomial naive Bayes text classifier with Laplace
// smoothing. It backs the enhanced classification path and catches
// emergency phrasing the keyword list does not cover.
type Model struct {
	classes    []string
	logPrior   map[string]float64
	logLikely  map[string]map[string]float64
	logUnseen  map[string]float64
	vocabulary map[string]bool
}

// Train fits the model on labeled samples. At least two classes with
// at least one sample each are required.
func Train(samples []Sample) (*Model, error) {
	docCount := make(map[string]int)
	tokenCount := make(map[string]map[string]int)
	totalTokens := make(map[string]int)
	vocabulary := make(map[string]bool)

	for _, s := range samples {
		label := strings.TrimSpace(strings.ToLower(s.Label))
		if label == "" {
			return nil, fmt.Errorf("sample %q has no label", s.Text)
		}
		tokens := tokenize(s.Text)
		if len(tokens) == 0 {
			continue
		}
		docCount[label]++
		if tokenCount[label] == nil {
			tokenCount[label] = make(map[string]int)
		}
		for _, tok := range tokens {
			tokenCount[label][tok]++
			totalTokens[label]++
			vocabulary[tok] = true
		}
	}
	if len(docCount) < 2 {
		return nil, fmt.Errorf("training set needs at least two classes, got %d", len(docCount))
	}

	classes := make([]string, 0, len(docCount))
	for c := range docCount {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	totalDocs := 0
	for _, n := range docCount {
		totalDocs += n
	}
	vocabSize := float64(len(vocabulary))

	m := &Model{
		classes:    classes,
		logPrior:   make(map[string]float64, len(classes)),
		logLikely:  make(map[string]map[string]float64, len(classes)),
		logUnseen:  make(map[string]float64, len(classes)),
		vocabulary: vocabulary,
	}
	for _, c := range classes {
		m.logPrior[c] = math.Log(float64(docCount[c]) / float64(totalDocs))
		denom := float64(totalTokens[c]) + vocabSize
		m.logUnseen[c] = math.Log(1 / denom)
		probs := make(map[string]float64, len(tokenCount[c]))
		for tok, n := range tokenCount[c] {
			probs[tok] = math.Log((float64(n) + 1) / denom)
		}
		m.logLikely[c] = probs
	}
	return m, nil
}

// Predict scores the tokens against every class and returns the best
// label with a softmax confidence. Tokens outside the training
// vocabulary are ignored.
func (m *Model) Predict(tokens []string) (string, float64) {
	scores := make([]float64, len(m.classes))
	for i, c := range m.classes {
		score := m.logPrior[c]
		for _, tok := range tokens {
			if !m.vocabulary[tok] {
				continue
			}
			if lp, ok := m.logLikely[c][tok]; ok {
				score += lp
			} else {
				score += m.logUnseen[c]
			}
		}
		scores[i] = score
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Softmax over log scores, shifted by the max for stability.
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	return m.classes[best], 1 / sum
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()'\"")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DefaultTraining is the compiled-in training corpus, used when no
// training file is configured.
func DefaultTraining() []Sample {
	emergency := []string{
		"earthquake shelter near me",
		"how to stop severe bleeding fast",
		"wildfire evacuation route tonight",
		"flood warning for my area right now",
		"active shooter downtown what to do",
		"gas leak smell in my house help",
		"signs of heart attack urgent",
		"tsunami warning for the coast",
		"when does the hurricane make landfall",
		"power outage across the entire city",
		"child swallowed poison what do i do",
		"cpr steps for unconscious person",
		"people trapped in building collapse",
		"chemical spill near the school",
		"tornado warning take cover where",
		"overdose symptoms what to do now",
		"severe storm damage emergency help",
		"missing child alert in my neighborhood",
		"snake bite treatment urgent",
		"carbon monoxide alarm going off",
		"aftershocks expected how to stay safe",
		"boil water notice is tap water safe",
	}
	standard := []string{
		"best pasta recipe for dinner",
		"cheap flights to rome in october",
		"how to learn guitar chords",
		"movie showtimes tonight near downtown",
		"python tutorial for beginners",
		"best running shoes this year",
		"coffee shops with good wifi",
		"how tall is mount everest",
		"football scores from yesterday",
		"easy knitting patterns for scarves",
		"top rated science fiction books",
		"how to make sourdough bread",
		"used car prices this month",
		"birthday gift ideas for a friend",
		"yoga routine for beginners",
		"history of the roman empire",
		"how do solar panels work",
		"best budget laptop for students",
		"garden plants that like full sun",
		"apps for learning spanish",
		"interview tips for software jobs",
		"weekend hiking trails with views",
	}

	out := make([]Sample, 0, len(emergency)+len(standard))
	for _, t := range emergency {
		out = append(out, Sample{Text: t, Label: LabelEmergency})
	}
	for _, t := range standard {
		out = append(out, Sample{Text: t, Label: LabelStandard})
	}
	return out
}
