// Package service implements the classification engine: rule evaluation,
// class resolution, step validation and result assembly.
package service

import (
	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/domain"
)

// Evaluator evaluates catalog rules against a device profile. It is pure:
// no rule excludes or consumes another, every rule is evaluated
// independently and unconditionally.
type Evaluator struct {
	log *logrus.Logger
}

// NewEvaluator creates a rule evaluator.
func NewEvaluator(log *logrus.Logger) *Evaluator {
	return &Evaluator{log: log}
}

// Evaluate runs every rule in the catalog against the profile and returns
// one MatchResult per rule, in catalog order.
func (e *Evaluator) Evaluate(profile *domain.DeviceProfile, cat *catalog.Catalog) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(cat.Rules))
	for i := range cat.Rules {
		rule := &cat.Rules[i]
		results = append(results, domain.MatchResult{
			Rule:      rule,
			Satisfied: e.ruleSatisfied(profile, rule),
		})
	}

	e.log.WithFields(logrus.Fields{
		"catalog_version": cat.Version,
		"total_rules":     len(results),
		"matched_rules":   countSatisfied(results),
	}).Debug("Completed rule evaluation")

	return results
}

// ruleSatisfied reports whether every condition of the rule holds.
// Conditions are AND-combined and evaluated left to right for predictable
// debugging; AND is commutative so ordering never affects the outcome.
func (e *Evaluator) ruleSatisfied(profile *domain.DeviceProfile, rule *domain.Rule) bool {
	for _, cond := range rule.Conditions {
		if !e.conditionSatisfied(profile, cond) {
			return false
		}
	}
	return true
}

// conditionSatisfied evaluates one atomic condition. An unset field fails
// every operator, including not_equals, so incomplete data can never
// produce a false-positive match. A type mismatch (e.g. includes against a
// scalar field) also fails the condition rather than the whole run: a
// degraded confidence signal is preferable to a hard failure in a
// regulatory tool.
func (e *Evaluator) conditionSatisfied(profile *domain.DeviceProfile, cond domain.RuleCondition) bool {
	value, ok := profile.Value(cond.Field)
	if !ok {
		return false
	}

	switch cond.Operator {
	case domain.OpEquals:
		return e.scalarEquals(value, cond)
	case domain.OpNotEquals:
		// Only a set answer can satisfy "different from".
		return e.scalarComparable(value, cond) && !e.scalarEquals(value, cond)
	case domain.OpIncludes:
		if value.Kind != domain.KindSet {
			e.logTypeMismatch(cond, value)
			return false
		}
		for _, item := range value.Set {
			if item == cond.StrValue {
				return true
			}
		}
		return false
	case domain.OpGreaterThan:
		return value.Kind == domain.KindNumber && cond.NumValue != nil && value.Num > *cond.NumValue
	case domain.OpLessThan:
		return value.Kind == domain.KindNumber && cond.NumValue != nil && value.Num < *cond.NumValue
	default:
		return false
	}
}

// scalarComparable reports whether the answer and the condition value are
// of the same scalar shape.
func (e *Evaluator) scalarComparable(value domain.FieldValue, cond domain.RuleCondition) bool {
	if cond.BoolValue != nil {
		return value.Kind == domain.KindBool
	}
	return value.Kind == domain.KindEnum || value.Kind == domain.KindText
}

func (e *Evaluator) scalarEquals(value domain.FieldValue, cond domain.RuleCondition) bool {
	switch {
	case cond.BoolValue != nil:
		if value.Kind != domain.KindBool {
			e.logTypeMismatch(cond, value)
			return false
		}
		return value.Bool == *cond.BoolValue
	case value.Kind == domain.KindEnum || value.Kind == domain.KindText:
		return value.Str == cond.StrValue
	default:
		e.logTypeMismatch(cond, value)
		return false
	}
}

func (e *Evaluator) logTypeMismatch(cond domain.RuleCondition, value domain.FieldValue) {
	e.log.WithFields(logrus.Fields{
		"condition":  cond.Describe(),
		"value_kind": int(value.Kind),
	}).Debug("Condition evaluated against incompatible field type, treated as unsatisfied")
}

func countSatisfied(results []domain.MatchResult) int {
	count := 0
	for _, r := range results {
		if r.Satisfied {
			count++
		}
	}
	return count
}
