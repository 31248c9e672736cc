package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/domain"
)

func newTestClassifier(t *testing.T, cacheSize int) *ClassifierService {
	t.Helper()
	provider, err := catalog.NewProvider(catalog.AnnexVIII(), testLogger())
	require.NoError(t, err)
	svc, err := NewClassifierService(testLogger(), provider, cacheSize)
	require.NoError(t, err)
	return svc
}

func TestClassifyNonInvasiveTransient(t *testing.T) {
	svc := newTestClassifier(t, 0)

	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessNone),
		Duration:     strPtr(domain.DurationTransient),
	}
	result, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.ClassI, result.Class)
	require.Len(t, result.AppliedRules, 1)
	assert.Equal(t, "R1", result.AppliedRules[0].ID)
	assert.Contains(t, result.Justification, "Classe retenue: I")
	assert.Equal(t, catalog.AnnexVIIIVersion, result.CatalogVersion)
}

func TestClassifyImplantableCentralCirculatory(t *testing.T) {
	svc := newTestClassifier(t, 0)

	profile := &domain.DeviceProfile{
		Implantable:  boolPtr(true),
		ContactSites: []string{domain.SiteCentralCirculatory},
	}
	result, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.ClassIII, result.Class)
	assert.Equal(t, "III", result.ResultingClass)
	require.Len(t, result.AppliedRules, 1)
	assert.Equal(t, "R8b", result.AppliedRules[0].ID)
}

func TestClassifyLifeThreateningSoftware(t *testing.T) {
	svc := newTestClassifier(t, 0)

	profile := &domain.DeviceProfile{
		IsSoftware:       boolPtr(true),
		SoftwarePurposes: []string{domain.SoftwareLifeThreatening},
	}
	result, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.ClassIII, result.Class)
	require.Len(t, result.AppliedRules, 1)
	assert.Equal(t, "R22c", result.AppliedRules[0].ID)
}

func TestClassifyEmptyProfileFallsBack(t *testing.T) {
	svc := newTestClassifier(t, 0)

	result, err := svc.Classify(context.Background(), &domain.DeviceProfile{})
	require.NoError(t, err)

	assert.Equal(t, domain.ClassI, result.Class)
	assert.Equal(t, domain.ConfidenceLow, result.Confidence)
	assert.Empty(t, result.AppliedRules)
	assert.NotEmpty(t, result.MissingData)
	assert.Contains(t, result.Justification, "Aucune règle de classification")
}

func TestClassifyStabilityModifierLabel(t *testing.T) {
	svc := newTestClassifier(t, 0)

	profile := &domain.DeviceProfile{
		Invasiveness:         strPtr(domain.InvasivenessNone),
		ProvidedSterile:      boolPtr(true),
		HasMeasuringFunction: boolPtr(true),
	}
	result, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, "I (Is, Im)", result.ResultingClass)
	assert.Equal(t,
		[]domain.StabilityModifier{domain.ModifierSterile, domain.ModifierMeasuring},
		result.Modifiers)
}

func TestClassifyIsDeterministic(t *testing.T) {
	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessSurgical),
		Duration:     strPtr(domain.DurationShortTerm),
		ContactSites: []string{domain.SiteCentralNervous},
	}

	// Fresh service per run so no cache can mask a divergence.
	first, err := newTestClassifier(t, 0).Classify(context.Background(), profile)
	require.NoError(t, err)
	second, err := newTestClassifier(t, 0).Classify(context.Background(), profile)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON),
		"repeat classification must be byte-identical")
}

func TestClassifyResultCache(t *testing.T) {
	svc := newTestClassifier(t, 16)

	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessNone),
	}
	first, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)
	second, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)

	assert.Same(t, first, second, "second call is served from the cache")
}

func TestClassifyObservesCatalogSwap(t *testing.T) {
	provider, err := catalog.NewProvider(catalog.AnnexVIII(), testLogger())
	require.NoError(t, err)
	svc, err := NewClassifierService(testLogger(), provider, 16)
	require.NoError(t, err)

	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessNone),
	}
	before, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassI, before.Class)

	// Republish with the non-invasive baseline raised: subsequent runs
	// see the new catalog, and the version change bypasses cached results.
	next := catalog.AnnexVIII()
	next.Version = "MDR-2017-745-annexe-VIII-2025.1"
	next.Rules[0].Class = domain.ClassIIa
	require.NoError(t, provider.Swap(next))

	after, err := svc.Classify(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassIIa, after.Class)
	assert.Equal(t, "MDR-2017-745-annexe-VIII-2025.1", after.CatalogVersion)
}

func TestClassifyNilProfile(t *testing.T) {
	svc := newTestClassifier(t, 0)

	_, err := svc.Classify(context.Background(), nil)
	require.Error(t, err)
}

func TestClassifyCancelledContext(t *testing.T) {
	svc := newTestClassifier(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Classify(ctx, &domain.DeviceProfile{})
	require.ErrorIs(t, err, context.Canceled)
}
