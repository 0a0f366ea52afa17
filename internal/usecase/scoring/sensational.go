package scoring

import "strings"

var alarmistPhrases = []string{
	"shocking",
	"terrifying",
	"horrifying",
	"apocalypse",
	"apocalyptic",
	"nightmare",
	"catastrophic meltdown",
	"total collapse",
	"mass panic",
	"deadly secret",
	"exposed",
	"destroys",
	"slams",
	"breaking!!",
	"must see",
	"gone wrong",
	"unbelievable",
}

// sensationalism scores how alarmist the copy reads, 0 to 1. The
// emergency profile applies it as a penalty weight.
func sensationalism(title, snippet string) float64 {
	text := title + " " + snippet
	lower := strings.ToLower(text)

	hits := 0
	for _, p := range alarmistPhrases {
		if strings.Contains(lower, p) {
			hits++
		}
	}

	words := strings.Fields(text)
	capsRatio := 0.0
	if len(words) > 0 {
		capsRatio = float64(capsWordCount(text)) / float64(len(words))
	}

	exclaims := strings.Count(text, "!")

	score := 0.3*float64(hits) + 0.8*capsRatio + 0.15*float64(exclaims)
	if score > 1 {
		score = 1
	}
	return score
}
