package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/domain"
)

// Resolver reduces the set of matched rules to a single class. The core
// policy: the resolved class is the maximum of all matched rules' classes
// in the I < IIa < IIb < III order. Never first match, last match or most
// specific match: when several classification rules apply simultaneously,
// the strictest governs. Specificity only decides which rules are cited.
type Resolver struct {
	log       *logrus.Logger
	evaluator *Evaluator
}

// Resolution is the resolver's output, consumed by the result assembler.
type Resolution struct {
	Class         domain.RiskClass
	Matched       bool
	AppliedRules  []*domain.Rule
	MatchedCount  int
	Modifiers     []domain.StabilityModifier
	Confidence    domain.ConfidenceLevel
	MissingFields []domain.Field
}

// NewResolver creates a class resolver.
func NewResolver(log *logrus.Logger, evaluator *Evaluator) *Resolver {
	return &Resolver{log: log, evaluator: evaluator}
}

// Resolve applies the most-restrictive-wins policy to the evaluation
// results of one profile.
func (r *Resolver) Resolve(profile *domain.DeviceProfile, cat *catalog.Catalog, results []domain.MatchResult) *Resolution {
	matched := make([]*domain.Rule, 0, len(results))
	for _, res := range results {
		if res.Satisfied {
			matched = append(matched, res.Rule)
		}
	}

	res := &Resolution{
		Modifiers:    r.triggeredModifiers(profile, cat),
		MatchedCount: len(matched),
	}

	if len(matched) == 0 {
		// Safest non-invasive baseline, with confidence forced low and
		// every unanswered field that participates in any rule reported.
		res.Class = domain.ClassI
		res.Confidence = domain.ConfidenceLow
		res.MissingFields = r.unsetConditionFields(profile, cat.Rules)
		return res
	}

	res.Matched = true
	res.Class = matched[0].Class
	for _, rule := range matched[1:] {
		if rule.Class.MoreRestrictiveThan(res.Class) {
			res.Class = rule.Class
		}
	}

	r.warnOverlappingSubRules(matched)

	// Cite every matched rule whose class equals the resolved maximum,
	// ordered by rule number for stable display.
	for _, rule := range matched {
		if rule.Class == res.Class {
			res.AppliedRules = append(res.AppliedRules, rule)
		}
	}
	sortRulesByNumber(res.AppliedRules)

	res.MissingFields = r.outcomeChangingFields(profile, cat, results)
	res.Confidence = confidenceFor(len(res.MissingFields))

	return res
}

// triggeredModifiers evaluates the Is/Im/Ir trigger rules. Modifiers are
// independent annotations: they apply whichever main class won.
func (r *Resolver) triggeredModifiers(profile *domain.DeviceProfile, cat *catalog.Catalog) []domain.StabilityModifier {
	var modifiers []domain.StabilityModifier
	for _, mr := range cat.ModifierRules {
		satisfied := true
		for _, cond := range mr.Conditions {
			if !r.evaluator.conditionSatisfied(profile, cond) {
				satisfied = false
				break
			}
		}
		if satisfied {
			modifiers = append(modifiers, mr.Modifier)
		}
	}
	return modifiers
}

// warnOverlappingSubRules flags matched sub-rules that share a rule number
// but map to different classes. The catalog author is expected to keep
// sub-rules mutually exclusive; when they are not, the maximum class still
// wins and the finding goes to the diagnostic log only, never to the end
// user. It never blocks the result.
func (r *Resolver) warnOverlappingSubRules(matched []*domain.Rule) {
	byNumber := make(map[string][]*domain.Rule)
	for _, rule := range matched {
		byNumber[rule.Number] = append(byNumber[rule.Number], rule)
	}
	for number, group := range byNumber {
		if len(group) < 2 {
			continue
		}
		classes := make(map[domain.RiskClass]bool)
		ids := make([]string, 0, len(group))
		for _, rule := range group {
			classes[rule.Class] = true
			ids = append(ids, rule.ID)
		}
		if len(classes) > 1 {
			sort.Strings(ids)
			r.log.WithFields(logrus.Fields{
				"rule_number": number,
				"rule_ids":    strings.Join(ids, ","),
			}).Warn("Overlapping sub-rules matched with conflicting classes, most restrictive kept")
		}
	}
}

// outcomeChangingFields collects the unset fields referenced by matched or
// nearly-matched rules (all-but-one condition satisfied). Answering one of
// these could still change the outcome, so they drive both the confidence
// level and the missing-data report.
func (r *Resolver) outcomeChangingFields(profile *domain.DeviceProfile, cat *catalog.Catalog, results []domain.MatchResult) []domain.Field {
	relevant := make([]domain.Rule, 0, len(results))
	for _, res := range results {
		if res.Satisfied || r.unsatisfiedConditions(profile, res.Rule) == 1 {
			relevant = append(relevant, *res.Rule)
		}
	}
	return r.unsetConditionFields(profile, relevant)
}

// unsatisfiedConditions counts the rule's failing conditions.
func (r *Resolver) unsatisfiedConditions(profile *domain.DeviceProfile, rule *domain.Rule) int {
	count := 0
	for _, cond := range rule.Conditions {
		if !r.evaluator.conditionSatisfied(profile, cond) {
			count++
		}
	}
	return count
}

// unsetConditionFields returns the distinct unset fields referenced by the
// given rules' conditions, ordered by profile field declaration order so
// reports stay reproducible.
func (r *Resolver) unsetConditionFields(profile *domain.DeviceProfile, rules []domain.Rule) []domain.Field {
	unset := make(map[domain.Field]bool)
	for i := range rules {
		for _, cond := range rules[i].Conditions {
			if !profile.IsSet(cond.Field) {
				unset[cond.Field] = true
			}
		}
	}

	ordered := make([]domain.Field, 0, len(unset))
	for _, f := range domain.Fields {
		if unset[f] {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// confidenceFor maps the number of outcome-relevant unset fields to a
// confidence level: zero unset fields mean nothing left to answer could
// change the result.
func confidenceFor(unsetCount int) domain.ConfidenceLevel {
	switch {
	case unsetCount == 0:
		return domain.ConfidenceHigh
	case unsetCount <= 2:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// sortRulesByNumber orders rules by numeric rule number, then by ID so
// sub-rules of the same number sort deterministically.
func sortRulesByNumber(rules []*domain.Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		ni, errI := strconv.Atoi(rules[i].Number)
		nj, errJ := strconv.Atoi(rules[j].Number)
		if errI == nil && errJ == nil && ni != nj {
			return ni < nj
		}
		if rules[i].Number != rules[j].Number {
			return rules[i].Number < rules[j].Number
		}
		return rules[i].ID < rules[j].ID
	})
}
