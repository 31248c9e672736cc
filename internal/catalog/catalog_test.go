package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdr-device-classifier/internal/domain"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAnnexVIIICatalog(t *testing.T) {
	cat := AnnexVIII()

	require.NoError(t, cat.Validate())
	assert.Equal(t, AnnexVIIIVersion, cat.Version)
	assert.NotEmpty(t, cat.Rules)
	assert.Len(t, cat.ModifierRules, 3, "Is, Im and Ir triggers")

	// Sub-rules of the same number must not duplicate each other.
	assert.Empty(t, cat.Lint())
}

func TestAnnexVIIIReturnsFreshCopies(t *testing.T) {
	a := AnnexVIII()
	b := AnnexVIII()

	a.Rules[0].Title = "mutated"
	assert.NotEqual(t, "mutated", b.Rules[0].Title,
		"callers must not share underlying rule storage")
}

func TestCatalogValidateRejectsEmpty(t *testing.T) {
	cat := &Catalog{Version: "test-1"}
	err := cat.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestCatalogValidateRejectsDuplicateIDs(t *testing.T) {
	cat := &Catalog{
		Version: "test-1",
		Rules: []domain.Rule{
			{
				ID: "R1", Number: "1", Title: "a", Class: domain.ClassI,
				Conditions: []domain.RuleCondition{
					domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone),
				},
			},
			{
				ID: "R1", Number: "1", Title: "b", Class: domain.ClassIIa,
				Conditions: []domain.RuleCondition{
					domain.Equals(domain.FieldInvasiveness, domain.InvasivenessOrifice),
				},
			},
		},
	}

	err := cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule id")
}

func TestCatalogLintFlagsIdenticalSubRules(t *testing.T) {
	cond := domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone)
	cat := &Catalog{
		Version: "test-1",
		Rules: []domain.Rule{
			{ID: "R1", Number: "1", Title: "a", Class: domain.ClassI, Conditions: []domain.RuleCondition{cond}},
			{ID: "R1b", Number: "1", Title: "b", Class: domain.ClassIIa, Conditions: []domain.RuleCondition{cond}},
		},
	}

	require.NoError(t, cat.Validate())
	findings := cat.Lint()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "R1")
	assert.Contains(t, findings[0], "R1b")
}

func TestFromJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(AnnexVIII())
	require.NoError(t, err)

	cat, err := FromJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, AnnexVIIIVersion, cat.Version)
	assert.Len(t, cat.Rules, len(AnnexVIII().Rules))
}

func TestFromJSONRejectsInvalid(t *testing.T) {
	_, err := FromJSON(bytes.NewReader([]byte(`{"version":"x","rules":[]}`)))
	require.Error(t, err)

	_, err = FromJSON(bytes.NewReader([]byte(`not json`)))
	require.Error(t, err)
}

func TestProviderSwap(t *testing.T) {
	provider, err := NewProvider(AnnexVIII(), testLogger())
	require.NoError(t, err)
	assert.Equal(t, AnnexVIIIVersion, provider.Current().Version)

	next := AnnexVIII()
	next.Version = "MDR-2017-745-annexe-VIII-2025.1"
	require.NoError(t, provider.Swap(next))
	assert.Equal(t, "MDR-2017-745-annexe-VIII-2025.1", provider.Current().Version)
}

func TestProviderSwapRejectsInvalidCatalog(t *testing.T) {
	provider, err := NewProvider(AnnexVIII(), testLogger())
	require.NoError(t, err)

	err = provider.Swap(&Catalog{Version: "broken"})
	require.Error(t, err)

	// The previous catalog stays in service.
	assert.Equal(t, AnnexVIIIVersion, provider.Current().Version)
}

func TestNewProviderRejectsInvalidCatalog(t *testing.T) {
	_, err := NewProvider(&Catalog{}, testLogger())
	require.Error(t, err)
}
