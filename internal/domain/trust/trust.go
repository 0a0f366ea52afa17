// Package trust classifies source domains into institutional trust tiers.
package trust

import "strings"

// Tier is the institutional reliability class of a source domain.
type Tier string

// Trust tier constants.
const (
	// Official marks government and intergovernmental sources.
	Official Tier = "official"
	// Verified marks established news organizations.
	Verified Tier = "verified"
	// SemiTrusted marks community or aggregator sources.
	SemiTrusted Tier = "semi-trusted"
	// Unknown is the conservative default for unlisted domains.
	Unknown Tier = "unknown"
)

// IsValid checks if the tier is one of the supported values.
func (t Tier) IsValid() bool {
	return t == Official || t == Verified || t == SemiTrusted || t == Unknown
}

// Score returns the tier's base trust score.
func (t Tier) Score() float64 {
	switch t {
	case Official:
		return 0.95
	case Verified:
		return 0.80
	case SemiTrusted:
		return 0.60
	default:
		return 0.40
	}
}

// Table is a read-only domain → tier mapping, loaded at process start.
type Table struct {
	entries map[string]Tier
}

// NewTable builds a lookup table from the given entries. Keys are
// lowercased; invalid tiers are dropped.
func NewTable(entries map[string]Tier) Table {
	m := make(map[string]Tier, len(entries))
	for domain, tier := range entries {
		if !tier.IsValid() || tier == Unknown {
			continue
		}
		m[strings.ToLower(strings.TrimSpace(domain))] = tier
	}
	return Table{entries: m}
}

// Lookup resolves a source domain to its tier. Subdomains inherit
// their nearest listed parent, so an entry for "gov" covers every
// .gov host. Unlisted domains resolve to Unknown.
func (t Table) Lookup(domain string) Tier {
	domain = strings.ToLower(strings.TrimSpace(domain))
	for domain != "" {
		if tier, ok := t.entries[domain]; ok {
			return tier
		}
		dot := strings.IndexByte(domain, '.')
		if dot < 0 {
			break
		}
		domain = domain[dot+1:]
	}
	return Unknown
}

// Len returns the number of listed domains.
func (t Table) Len() int { return len(t.entries) }

// DefaultTable is the compiled-in reference table used when no trust
// file is configured.
func DefaultTable() Table {
	return NewTable(map[string]Tier{
		"gov": Official,
		"mil": Official,

		"who.int":       Official,
		"un.org":        Official,
		"europa.eu":     Official,
		"redcross.org":  Official,
		"nhs.uk":        Official,
		"preventionweb.net": Official,

		"edu":             Verified,
		"reuters.com":     Verified,
		"apnews.com":      Verified,
		"bbc.com":         Verified,
		"bbc.co.uk":       Verified,
		"npr.org":         Verified,
		"theguardian.com": Verified,
		"nytimes.com":     Verified,
		"aljazeera.com":   Verified,
		"nature.com":      Verified,

		"wikipedia.org": SemiTrusted,
		"reddit.com":    SemiTrusted,
		"medium.com":    SemiTrusted,
		"quora.com":     SemiTrusted,
		"stackexchange.com": SemiTrusted,
	})
}
