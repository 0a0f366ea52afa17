package classify

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKeywords reads a keyword list from a YAML file.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords %s: %w", path, err)
	}
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords: %w", err)
	}
	total := 0
	for _, c := range kw.Categories {
		total += len(c.Terms)
	}
	if total == 0 {
		return Keywords{}, fmt.Errorf("keywords %s: no terms defined", path)
	}
	return kw, nil
}

type trainingFile struct {
	Samples []Sample `yaml:"samples"`
}

// LoadTraining reads labeled training samples from a YAML file.
func LoadTraining(path string) ([]Sample, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read training %s: %w", path, err)
	}
	var f trainingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse training: %w", err)
	}
	if len(f.Samples) == 0 {
		return nil, fmt.Errorf("training %s: no samples defined", path)
	}
	return f.Samples, nil
}
