package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/domain"
)

// ClassifierService runs the complete classification workflow: evaluate
// every catalog rule, resolve the class, assemble the result. Each run is
// a pure function of (profile, catalog) with no I/O, so results are cached
// by profile fingerprint. Determinism makes the cache transparent.
type ClassifierService struct {
	log       *logrus.Logger
	provider  *catalog.Provider
	evaluator *Evaluator
	resolver  *Resolver
	validator *StepValidator
	cache     *lru.Cache
}

// NewClassifierService creates the classification engine. cacheSize <= 0
// disables the result cache.
func NewClassifierService(log *logrus.Logger, provider *catalog.Provider, cacheSize int) (*ClassifierService, error) {
	evaluator := NewEvaluator(log)

	var cache *lru.Cache
	if cacheSize > 0 {
		var err error
		cache, err = lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
	}

	return &ClassifierService{
		log:       log,
		provider:  provider,
		evaluator: evaluator,
		resolver:  NewResolver(log, evaluator),
		validator: NewStepValidator(log),
		cache:     cache,
	}, nil
}

// Validator exposes the step validator sharing this engine's logger.
func (c *ClassifierService) Validator() *StepValidator {
	return c.validator
}

// Classify evaluates the profile against the current catalog and returns
// the immutable classification result. Synchronous and side-effect-free;
// safe for arbitrarily many concurrent callers.
func (c *ClassifierService) Classify(ctx context.Context, profile *domain.DeviceProfile) (*domain.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("classification: profile is required")
	}

	cat := c.provider.Current()

	key, err := fingerprint(profile, cat.Version)
	if err == nil && c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.(*domain.ClassificationResult), nil
		}
	}

	results := c.evaluator.Evaluate(profile, cat)
	resolution := c.resolver.Resolve(profile, cat, results)
	result := assembleResult(resolution, cat.Version)

	c.log.WithFields(result.LogFields()).Info("Device classification completed")

	if err == nil && c.cache != nil {
		c.cache.Add(key, result)
	}
	return result, nil
}

// fingerprint derives the cache key from the canonical JSON encoding of
// the profile plus the catalog version, so a catalog swap naturally
// invalidates prior entries.
func fingerprint(profile *domain.DeviceProfile, catalogVersion string) (string, error) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append(encoded, []byte(catalogVersion)...))
	return hex.EncodeToString(sum[:]), nil
}

// assembleResult composes the resolver output into the stable result shape
// consumed by the UI and export layers. Pure composition: no decision
// logic lives here, so resolver refactors never change the external
// contract.
func assembleResult(res *Resolution, catalogVersion string) *domain.ClassificationResult {
	applied := make([]domain.AppliedRule, 0, len(res.AppliedRules))
	for _, rule := range res.AppliedRules {
		applied = append(applied, domain.AppliedRule{
			ID:        rule.ID,
			Number:    rule.Number,
			Title:     rule.Title,
			Rationale: rule.Rationale,
		})
	}

	missing := make([]string, 0, len(res.MissingFields))
	for _, f := range res.MissingFields {
		missing = append(missing, f.Label())
	}

	return &domain.ClassificationResult{
		ResultingClass: domain.ClassLabel(res.Class, res.Modifiers),
		Class:          res.Class,
		Modifiers:      res.Modifiers,
		Confidence:     res.Confidence,
		AppliedRules:   applied,
		MissingData:    missing,
		Justification:  buildJustification(res),
		CatalogVersion: catalogVersion,
	}
}

// buildJustification assembles the narrative text: each cited rule's
// rationale followed by one line stating the winning-class logic.
func buildJustification(res *Resolution) string {
	if !res.Matched {
		return "Aucune règle de classification ne s'applique au profil fourni. " +
			"Classe retenue: I — classification par défaut la plus prudente pour un dispositif non invasif. " +
			"Complétez les données manquantes pour affiner la classification."
	}

	var b strings.Builder
	for _, rule := range res.AppliedRules {
		b.WriteString(fmt.Sprintf("Règle %s (%s): %s\n", rule.ID, rule.Title, rule.Rationale))
	}
	b.WriteString(fmt.Sprintf("Classe retenue: %s — règle la plus stricte parmi %d règles applicables.",
		res.Class, res.MatchedCount))
	return b.String()
}
