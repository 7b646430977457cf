// Package listing holds the read-only job listings shown on the matches panel.
// The catalogue is loaded once at start up and never changes afterwards.
package listing

import (
	_ "embed"
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed listings.yaml
var defaultListings []byte

type JobListing struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Company  string `yaml:"company" json:"company"`
	Location string `yaml:"location" json:"location"`
	Type     string `yaml:"type" json:"type"`
	Salary   string `yaml:"salary" json:"salary"`
	Posted   string `yaml:"posted" json:"posted"`
	Match    int    `yaml:"match" json:"match"` // percentage, 0-100
}

type Stats struct {
	Count     int
	MeanMatch int
	MinMatch  int
	MaxMatch  int
}

type Catalogue struct {
	listings []JobListing
}

// Default returns the catalogue bundled with the binary.
func Default() (*Catalogue, error) {
	return Load(defaultListings)
}

func LoadFile(filePath string) (*Catalogue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file %s: %w", filePath, err)
	}
	return Load(data)
}

// Load parses a YAML catalogue. Listing text is reduced to plain text since
// operator supplied files may carry markup.
func Load(data []byte) (*Catalogue, error) {
	var doc struct {
		Listings []JobListing `yaml:"listings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings YAML: %w", err)
	}
	policy := bluemonday.StrictPolicy()
	seen := make(map[string]bool, len(doc.Listings))
	for i := range doc.Listings {
		l := &doc.Listings[i]
		for _, field := range []*string{&l.Title, &l.Company, &l.Location, &l.Type, &l.Salary, &l.Posted} {
			*field = plainText(policy, *field)
		}
		if l.ID == "" {
			return nil, fmt.Errorf("listing at index %d missing id", i)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate listing id %q", l.ID)
		}
		seen[l.ID] = true
		if l.Match < 0 || l.Match > 100 {
			return nil, fmt.Errorf("listing %q has match %d outside 0-100", l.ID, l.Match)
		}
	}
	return &Catalogue{listings: doc.Listings}, nil
}

func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

func (c *Catalogue) All() []JobListing {
	out := make([]JobListing, len(c.listings))
	copy(out, c.listings)
	return out
}

func (c *Catalogue) Len() int {
	return len(c.listings)
}

func (c *Catalogue) Stats() Stats {
	if len(c.listings) == 0 {
		return Stats{}
	}
	var sample stats.Sample
	for _, l := range c.listings {
		sample.Xs = append(sample.Xs, float64(l.Match))
	}
	min, max := sample.Bounds()
	return Stats{
		Count:     len(c.listings),
		MeanMatch: int(math.Round(sample.Mean())),
		MinMatch:  int(min),
		MaxMatch:  int(max),
	}
}
