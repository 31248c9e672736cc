package domain

import (
	"fmt"
)

// RuleCondition is one atomic test on a device profile field. A rule's
// conditions are AND-combined; a condition against an unset field is never
// satisfied.
type RuleCondition struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`

	// Exactly one of the value fields is used, selected by the operator:
	// equals/not_equals compare BoolValue or StrValue, includes tests
	// StrValue membership, greater_than/less_than compare NumValue.
	BoolValue *bool    `json:"boolValue,omitempty"`
	StrValue  string   `json:"strValue,omitempty"`
	NumValue  *float64 `json:"numValue,omitempty"`
}

// Equals builds an equality condition on an enum field.
func Equals(f Field, value string) RuleCondition {
	return RuleCondition{Field: f, Operator: OpEquals, StrValue: value}
}

// EqualsBool builds an equality condition on a boolean field.
func EqualsBool(f Field, value bool) RuleCondition {
	return RuleCondition{Field: f, Operator: OpEquals, BoolValue: &value}
}

// NotEquals builds an inequality condition on an enum field. The condition
// still fails when the field is unset: absence of an answer never counts
// as "different from".
func NotEquals(f Field, value string) RuleCondition {
	return RuleCondition{Field: f, Operator: OpNotEquals, StrValue: value}
}

// Includes builds a set-membership condition on a multi-select field.
func Includes(f Field, value string) RuleCondition {
	return RuleCondition{Field: f, Operator: OpIncludes, StrValue: value}
}

// GreaterThan builds a numeric comparison condition.
func GreaterThan(f Field, value float64) RuleCondition {
	return RuleCondition{Field: f, Operator: OpGreaterThan, NumValue: &value}
}

// LessThan builds a numeric comparison condition.
func LessThan(f Field, value float64) RuleCondition {
	return RuleCondition{Field: f, Operator: OpLessThan, NumValue: &value}
}

// Describe renders the condition for diagnostics and catalog reports.
func (c RuleCondition) Describe() string {
	switch {
	case c.BoolValue != nil:
		return fmt.Sprintf("%s %s %t", c.Field, c.Operator, *c.BoolValue)
	case c.NumValue != nil:
		return fmt.Sprintf("%s %s %g", c.Field, c.Operator, *c.NumValue)
	default:
		return fmt.Sprintf("%s %s %q", c.Field, c.Operator, c.StrValue)
	}
}

// Rule is one immutable MDR Annex VIII classification rule. Sub-rules share
// a Number (e.g. R8 and R8b) and must be kept mutually exclusive on their
// triggering conditions by the catalog author; the resolver tolerates
// overlap regardless via the most-restrictive-wins policy.
type Rule struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Title      string          `json:"title"`
	Conditions []RuleCondition `json:"conditions"`
	Class      RiskClass       `json:"resultingClass"`
	Rationale  string          `json:"rationale"`
}

// Validate checks the structural integrity of a catalog rule.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule validation: id is required")
	}
	if r.Number == "" {
		return fmt.Errorf("rule validation (%s): number is required", r.ID)
	}
	if !r.Class.IsValid() {
		return fmt.Errorf("rule validation (%s): %w", r.ID, ErrInvalidClass)
	}
	if len(r.Conditions) == 0 {
		return fmt.Errorf("rule validation (%s): at least one condition is required", r.ID)
	}
	for _, cond := range r.Conditions {
		if !cond.Field.IsValid() {
			return fmt.Errorf("rule validation (%s): unknown field %q", r.ID, cond.Field)
		}
		if !cond.Operator.IsValid() {
			return fmt.Errorf("rule validation (%s): %w: %q", r.ID, ErrInvalidOperator, cond.Operator)
		}
	}
	return nil
}

// ModifierRule triggers a stability modifier (Is/Im/Ir) independently of
// the main class resolution.
type ModifierRule struct {
	Modifier   StabilityModifier `json:"modifier"`
	Conditions []RuleCondition   `json:"conditions"`
	Rationale  string            `json:"rationale"`
}

// MatchResult records the outcome of evaluating one rule against one
// profile. Produced per rule per evaluation, never mutated afterwards.
type MatchResult struct {
	Rule      *Rule
	Satisfied bool
}
