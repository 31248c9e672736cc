package domain

import (
	"testing"
)

func TestRiskClassConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    RiskClass
		expected string
	}{
		{"Class I", ClassI, "I"},
		{"Class IIa", ClassIIa, "IIa"},
		{"Class IIb", ClassIIb, "IIb"},
		{"Class III", ClassIII, "III"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.value)
			}
		})
	}

	if RiskClass("IV").IsValid() {
		t.Error("Expected IV to be invalid")
	}
}

func TestRiskClassOrdering(t *testing.T) {
	ordered := []RiskClass{ClassI, ClassIIa, ClassIIb, ClassIII}

	for i := 1; i < len(ordered); i++ {
		lower, higher := ordered[i-1], ordered[i]
		if higher.Rank() <= lower.Rank() {
			t.Errorf("Expected %s to rank above %s", higher, lower)
		}
		if !higher.MoreRestrictiveThan(lower) {
			t.Errorf("Expected %s to be more restrictive than %s", higher, lower)
		}
		if lower.MoreRestrictiveThan(higher) {
			t.Errorf("Expected %s not to be more restrictive than %s", lower, higher)
		}
	}

	if ClassIIb.MoreRestrictiveThan(ClassIIb) {
		t.Error("A class must not be more restrictive than itself")
	}
}

func TestStabilityModifierConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    StabilityModifier
		expected string
	}{
		{"Sterile", ModifierSterile, "Is"},
		{"Measuring", ModifierMeasuring, "Im"},
		{"Reusable", ModifierReusable, "Ir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.value)
			}
		})
	}
}

func TestConfidenceLevelConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    ConfidenceLevel
		expected string
	}{
		{"High", ConfidenceHigh, "high"},
		{"Medium", ConfidenceMedium, "medium"},
		{"Low", ConfidenceLow, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
		})
	}
}

func TestOperatorValidity(t *testing.T) {
	valid := []Operator{OpEquals, OpNotEquals, OpIncludes, OpGreaterThan, OpLessThan}
	for _, op := range valid {
		if !op.IsValid() {
			t.Errorf("Expected %s to be valid", op)
		}
	}
	if Operator("matches").IsValid() {
		t.Error("Expected unknown operator to be invalid")
	}
}

func TestStepOrder(t *testing.T) {
	expected := []Step{
		StepGeneral,
		StepInvasiveness,
		StepDuration,
		StepAnatomicalSite,
		StepFunctionEnergy,
		StepSterility,
		StepSpecialCases,
		StepSoftware,
	}

	if len(Steps) != len(expected) {
		t.Fatalf("Expected %d steps, got %d", len(expected), len(Steps))
	}
	for i, step := range expected {
		if Steps[i] != step {
			t.Errorf("Expected step %d to be %s, got %s", i, step, Steps[i])
		}
		if !step.IsValid() {
			t.Errorf("Expected %s to be valid", step)
		}
	}

	if Step("review").IsValid() {
		t.Error("Expected unknown step to be invalid")
	}
}

func TestClassLabel(t *testing.T) {
	tests := []struct {
		name      string
		class     RiskClass
		modifiers []StabilityModifier
		expected  string
	}{
		{"no modifiers", ClassIIa, nil, "IIa"},
		{"one modifier", ClassI, []StabilityModifier{ModifierSterile}, "I (Is)"},
		{"two modifiers", ClassI, []StabilityModifier{ModifierSterile, ModifierMeasuring}, "I (Is, Im)"},
		{"all modifiers", ClassI, []StabilityModifier{ModifierSterile, ModifierMeasuring, ModifierReusable}, "I (Is, Im, Ir)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassLabel(tt.class, tt.modifiers)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
