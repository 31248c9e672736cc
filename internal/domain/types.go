// Package domain contains core business entities and types for medical device
// risk classification under the EU Medical Device Regulation (MDR 2017/745).
//
// Reference: Regulation (EU) 2017/745, Annex VIII (classification rules).
package domain

import (
	"errors"
)

// RiskClass represents the MDR risk class assigned to a medical device.
// Classes form a total order of increasing regulatory scrutiny:
// I < IIa < IIb < III. When several classification rules apply to the same
// device, the most restrictive class governs (MDR Annex VIII, implementing
// rule 3.5).
type RiskClass string

const (
	ClassI   RiskClass = "I"
	ClassIIa RiskClass = "IIa"
	ClassIIb RiskClass = "IIb"
	ClassIII RiskClass = "III"
)

// StabilityModifier represents the orthogonal class sub-qualifiers.
// They annotate the resolved class and are never part of the I<IIa<IIb<III
// ordering.
type StabilityModifier string

const (
	ModifierSterile   StabilityModifier = "Is" // provided sterile
	ModifierMeasuring StabilityModifier = "Im" // has a measuring function
	ModifierReusable  StabilityModifier = "Ir" // reusable surgical instrument
)

// ConfidenceLevel represents the confidence in a classification, driven by
// how much unanswered data could still change the outcome.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Operator represents the comparison operator of a rule condition.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpIncludes    Operator = "includes"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
)

// Step identifies one step of the classification wizard.
type Step string

const (
	StepGeneral        Step = "general"
	StepInvasiveness   Step = "invasiveness"
	StepDuration       Step = "duration"
	StepAnatomicalSite Step = "anatomical_site"
	StepFunctionEnergy Step = "function_energy"
	StepSterility      Step = "sterility"
	StepSpecialCases   Step = "special_cases"
	StepSoftware       Step = "software"
)

// Steps lists every wizard step in presentation order. The pre-submit check
// walks this list to aggregate missing fields across the whole profile.
var Steps = []Step{
	StepGeneral,
	StepInvasiveness,
	StepDuration,
	StepAnatomicalSite,
	StepFunctionEnergy,
	StepSterility,
	StepSpecialCases,
	StepSoftware,
}

// Validation errors for classification data integrity
var (
	ErrInvalidClass    = errors.New("invalid MDR risk class")
	ErrInvalidOperator = errors.New("invalid condition operator")
	ErrEmptyCatalog    = errors.New("rule catalog is empty")
)

// classRanks orders risk classes for the most-restrictive-wins policy.
var classRanks = map[RiskClass]int{
	ClassI:   0,
	ClassIIa: 1,
	ClassIIb: 2,
	ClassIII: 3,
}

// IsValid validates that the RiskClass is one of the four MDR classes.
// Critical for regulatory software: only valid classes may reach a report.
func (c RiskClass) IsValid() bool {
	_, ok := classRanks[c]
	return ok
}

// String returns the string representation of the risk class.
func (c RiskClass) String() string {
	return string(c)
}

// Rank returns the position of the class in the I < IIa < IIb < III order.
// Invalid classes rank below Class I so they can never win a resolution.
func (c RiskClass) Rank() int {
	rank, ok := classRanks[c]
	if !ok {
		return -1
	}
	return rank
}

// MoreRestrictiveThan reports whether c outranks other in the MDR ordering.
func (c RiskClass) MoreRestrictiveThan(other RiskClass) bool {
	return c.Rank() > other.Rank()
}

// LogFields returns structured logging fields for audit trails.
// Classification decisions in a regulatory tool must be traceable.
func (c RiskClass) LogFields() map[string]any {
	return map[string]any{
		"risk_class": string(c),
		"rank":       c.Rank(),
		"is_valid":   c.IsValid(),
	}
}

// IsValid validates the stability modifier.
func (m StabilityModifier) IsValid() bool {
	switch m {
	case ModifierSterile, ModifierMeasuring, ModifierReusable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the modifier.
func (m StabilityModifier) String() string {
	return string(m)
}

// IsValid validates the confidence level.
func (cl ConfidenceLevel) IsValid() bool {
	switch cl {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the confidence level.
func (cl ConfidenceLevel) String() string {
	return string(cl)
}

// IsValid validates the condition operator.
func (o Operator) IsValid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpIncludes, OpGreaterThan, OpLessThan:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// IsValid validates the wizard step identifier.
func (s Step) IsValid() bool {
	switch s {
	case StepGeneral, StepInvasiveness, StepDuration, StepAnatomicalSite,
		StepFunctionEnergy, StepSterility, StepSpecialCases, StepSoftware:
		return true
	default:
		return false
	}
}

// String returns the string representation of the step.
func (s Step) String() string {
	return string(s)
}
