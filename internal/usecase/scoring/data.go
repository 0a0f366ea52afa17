package scoring

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
)

type trustFile struct {
	Domains map[string]string `yaml:"domains"`
}

// LoadTrustTable reads a domain-to-tier mapping from a YAML file.
// Unknown tier names are rejected so a typo cannot silently demote a
// source.
func LoadTrustTable(path string) (trust.Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return trust.Table{}, fmt.Errorf("read trust table %s: %w", path, err)
	}
	var f trustFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return trust.Table{}, fmt.Errorf("parse trust table: %w", err)
	}
	if len(f.Domains) == 0 {
		return trust.Table{}, fmt.Errorf("trust table %s: no domains defined", path)
	}

	entries := make(map[string]trust.Tier, len(f.Domains))
	for domain, name := range f.Domains {
		tier := trust.Tier(name)
		if !tier.IsValid() {
			return trust.Table{}, fmt.Errorf("trust table %s: unknown tier %q for %s", path, name, domain)
		}
		entries[domain] = tier
	}
	return trust.NewTable(entries), nil
}
