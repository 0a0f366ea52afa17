package scoring

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain/candidate"
)

// freshnessScore buckets result age into a decay score. Emergency
// mode decays much faster than standard.
func freshnessScore(age time.Duration, emergency bool) float64 {
	h := age.Hours()
	if emergency {
		switch {
		case h <= 1:
			return 1.0
		case h <= 6:
			return 0.9
		case h <= 24:
			return 0.7
		case h <= 72:
			return 0.4
		case h <= 168:
			return 0.2
		default:
			return 0.1
		}
	}
	switch {
	case h <= 24:
		return 1.0
	case h <= 168:
		return 0.8
	case h <= 720:
		return 0.6
	case h <= 2160:
		return 0.4
	default:
		return 0.3
	}
}

// unknownFreshness is the score for results with no discoverable date.
func unknownFreshness(emergency bool) float64 {
	if emergency {
		return 0.3
	}
	return 0.5
}

// freshnessLabel buckets age for display.
func freshnessLabel(age time.Duration) candidate.FreshnessLabel {
	h := age.Hours()
	switch {
	case h < 1:
		return candidate.JustNow
	case h < 6:
		return candidate.VeryRecent
	case h < 24:
		return candidate.Today
	case h < 48:
		return candidate.Yesterday
	default:
		return candidate.Outdated
	}
}

var (
	reRelative = regexp.MustCompile(`(?i)\b(\d+)\s+(minute|hour|day|week|month)s?\s+ago\b`)
	reISODate  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reTextDate = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseSnippetDate extracts a publication time from snippet prose.
// Search engines often prefix snippets with "3 hours ago —" or a
// "Aug 22, 2026" stamp even when the feed metadata carries no date.
func parseSnippetDate(snippet string, now time.Time) (time.Time, bool) {
	if snippet == "" {
		return time.Time{}, false
	}

	if m := reRelative.FindStringSubmatch(snippet); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 0 {
			var d time.Duration
			switch strings.ToLower(m[2]) {
			case "minute":
				d = time.Duration(n) * time.Minute
			case "hour":
				d = time.Duration(n) * time.Hour
			case "day":
				d = time.Duration(n) * 24 * time.Hour
			case "week":
				d = time.Duration(n) * 7 * 24 * time.Hour
			case "month":
				d = time.Duration(n) * 30 * 24 * time.Hour
			}
			return now.Add(-d), true
		}
	}

	if m := reISODate.FindStringSubmatch(snippet); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	if m := reTextDate.FindStringSubmatch(snippet); m != nil {
		month := monthIndex[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}
