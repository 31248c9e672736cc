// Package catalog holds the versioned MDR Annex VIII rule dataset and the
// process-wide provider that shares it, read-only, across classification
// requests.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/domain"
)

// Catalog is an immutable collection of classification rules plus the
// trigger rules for the Is/Im/Ir stability modifiers. Once published
// through a Provider it must never be mutated; updates replace the whole
// catalog.
type Catalog struct {
	Version       string                `json:"version"`
	Rules         []domain.Rule         `json:"rules"`
	ModifierRules []domain.ModifierRule `json:"modifierRules"`
}

// Validate checks structural integrity: non-empty rule set, well-formed
// rules, unique rule IDs.
func (c *Catalog) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("catalog validation: version is required")
	}
	if len(c.Rules) == 0 {
		return fmt.Errorf("catalog validation: %w", domain.ErrEmptyCatalog)
	}

	seen := make(map[string]bool, len(c.Rules))
	for i := range c.Rules {
		rule := &c.Rules[i]
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("catalog validation: %w", err)
		}
		if seen[rule.ID] {
			return fmt.Errorf("catalog validation: duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = true
	}

	for _, mr := range c.ModifierRules {
		if !mr.Modifier.IsValid() {
			return fmt.Errorf("catalog validation: invalid stability modifier %q", mr.Modifier)
		}
		if len(mr.Conditions) == 0 {
			return fmt.Errorf("catalog validation: modifier %s has no conditions", mr.Modifier)
		}
	}

	return nil
}

// Lint reports non-fatal authoring findings: sub-rules sharing a rule
// number with byte-identical condition sets. These never block loading;
// runtime overlap between sub-rules is detected (and logged) by the
// resolver when both actually match.
func (c *Catalog) Lint() []string {
	var findings []string
	byNumber := make(map[string][]*domain.Rule)
	for i := range c.Rules {
		rule := &c.Rules[i]
		byNumber[rule.Number] = append(byNumber[rule.Number], rule)
	}

	for number, siblings := range byNumber {
		for i := 0; i < len(siblings); i++ {
			for j := i + 1; j < len(siblings); j++ {
				if sameConditions(siblings[i].Conditions, siblings[j].Conditions) {
					findings = append(findings, fmt.Sprintf(
						"rule %s: sub-rules %s and %s have identical conditions",
						number, siblings[i].ID, siblings[j].ID))
				}
			}
		}
	}
	return findings
}

func sameConditions(a, b []domain.RuleCondition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Describe() != b[i].Describe() {
			return false
		}
	}
	return true
}

// FromJSON decodes and validates a serialized catalog, typically a
// customer-specific override of the builtin dataset.
func FromJSON(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return FromJSON(f)
}

// Provider publishes the current catalog to concurrent classification
// requests. Swaps replace the whole catalog reference atomically so
// in-flight evaluations always observe one consistent catalog version;
// rules are never mutated in place.
type Provider struct {
	current atomic.Pointer[Catalog]
	log     *logrus.Logger
}

// NewProvider validates the catalog, logs lint findings, and publishes it.
func NewProvider(c *Catalog, log *logrus.Logger) (*Provider, error) {
	p := &Provider{log: log}
	if err := p.Swap(c); err != nil {
		return nil, err
	}
	return p, nil
}

// Current returns the catalog visible to new evaluations. Callers must
// treat the returned catalog as read-only.
func (p *Provider) Current() *Catalog {
	return p.current.Load()
}

// Swap validates and publishes a new catalog version.
func (p *Provider) Swap(c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for _, finding := range c.Lint() {
		p.log.WithFields(logrus.Fields{
			"catalog_version": c.Version,
			"finding":         finding,
		}).Warn("Catalog integrity finding")
	}

	p.current.Store(c)
	p.log.WithFields(logrus.Fields{
		"catalog_version": c.Version,
		"rule_count":      len(c.Rules),
		"modifier_rules":  len(c.ModifierRules),
	}).Info("Catalog published")
	return nil
}
