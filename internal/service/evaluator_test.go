package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/domain"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestConditionAgainstUnsetFieldFails(t *testing.T) {
	e := NewEvaluator(testLogger())
	empty := &domain.DeviceProfile{}

	tests := []struct {
		name string
		cond domain.RuleCondition
	}{
		{"equals", domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone)},
		{"equals bool", domain.EqualsBool(domain.FieldImplantable, false)},
		{"not_equals", domain.NotEquals(domain.FieldInvasiveness, domain.InvasivenessSurgical)},
		{"includes", domain.Includes(domain.FieldFunctions, domain.FunctionAdministerEnergy)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, e.conditionSatisfied(empty, tt.cond),
				"a condition on an unset field must never hold")
		})
	}
}

func TestConditionOperators(t *testing.T) {
	e := NewEvaluator(testLogger())
	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessSurgical),
		Implantable:  boolPtr(true),
		IsActive:     boolPtr(false),
		Functions:    []string{domain.FunctionAdministerEnergy, domain.FunctionContraception},
	}

	tests := []struct {
		name     string
		cond     domain.RuleCondition
		expected bool
	}{
		{"equals matching enum", domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical), true},
		{"equals non-matching enum", domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone), false},
		{"equals true bool", domain.EqualsBool(domain.FieldImplantable, true), true},
		{"equals explicit false bool", domain.EqualsBool(domain.FieldIsActive, false), true},
		{"not_equals differing value", domain.NotEquals(domain.FieldInvasiveness, domain.InvasivenessNone), true},
		{"not_equals same value", domain.NotEquals(domain.FieldInvasiveness, domain.InvasivenessSurgical), false},
		{"includes present element", domain.Includes(domain.FieldFunctions, domain.FunctionContraception), true},
		{"includes absent element", domain.Includes(domain.FieldFunctions, domain.FunctionIonizingRadiation), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.conditionSatisfied(profile, tt.cond))
		})
	}
}

func TestConditionTypeMismatchFailsSafe(t *testing.T) {
	e := NewEvaluator(testLogger())
	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessSurgical),
		Functions:    []string{domain.FunctionAdministerEnergy},
	}

	// includes against a scalar field, equals against a set field: both
	// fail the condition instead of failing the run.
	assert.False(t, e.conditionSatisfied(profile,
		domain.Includes(domain.FieldInvasiveness, domain.InvasivenessSurgical)))
	assert.False(t, e.conditionSatisfied(profile,
		domain.Equals(domain.FieldFunctions, domain.FunctionAdministerEnergy)))
}

func TestRuleConditionsAreConjunctive(t *testing.T) {
	e := NewEvaluator(testLogger())
	rule := &domain.Rule{
		ID: "T1", Number: "1", Title: "test", Class: domain.ClassIIa,
		Conditions: []domain.RuleCondition{
			domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
			domain.Equals(domain.FieldDuration, domain.DurationTransient),
		},
	}

	partial := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessSurgical),
	}
	assert.False(t, e.ruleSatisfied(partial, rule), "one unmet condition fails the rule")

	full := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessSurgical),
		Duration:     strPtr(domain.DurationTransient),
	}
	assert.True(t, e.ruleSatisfied(full, rule))
}

func TestEvaluateReturnsEveryRuleInCatalogOrder(t *testing.T) {
	e := NewEvaluator(testLogger())
	cat := catalog.AnnexVIII()

	profile := &domain.DeviceProfile{
		Invasiveness: strPtr(domain.InvasivenessNone),
	}

	results := e.Evaluate(profile, cat)
	require.Len(t, results, len(cat.Rules),
		"evaluation is exhaustive; no rule excludes another")
	for i, res := range results {
		assert.Equal(t, cat.Rules[i].ID, res.Rule.ID)
	}
}
