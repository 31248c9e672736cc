package domain

import (
	"fmt"
	"strings"
)

// AppliedRule is one catalog rule cited in a classification result. Only
// rules whose resulting class equals the resolved class are cited.
type AppliedRule struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
}

// ClassificationResult is the final, immutable output of one classification
// run. A re-run fully replaces it; results are never merged across runs.
// The shape is the stable contract with the UI and export layers.
type ClassificationResult struct {
	ResultingClass string              `json:"resultingClass"`
	Class          RiskClass           `json:"class"`
	Modifiers      []StabilityModifier `json:"modifiers,omitempty"`
	Confidence     ConfidenceLevel     `json:"confidence"`
	AppliedRules   []AppliedRule       `json:"appliedRules"`
	MissingData    []string            `json:"missingData"`
	Justification  string              `json:"justification"`

	// CatalogVersion records the dataset the run was evaluated against.
	// No timestamp lives here: the result of classifying the same profile
	// against the same catalog must be byte-identical across runs. The
	// history store timestamps persisted runs instead.
	CatalogVersion string `json:"catalogVersion"`
}

// ClassLabel composes the display label for a resolved class with its
// stability modifiers, e.g. "I (Is, Im)" or "IIb". Modifiers annotate the
// label whichever main class won.
func ClassLabel(class RiskClass, modifiers []StabilityModifier) string {
	if len(modifiers) == 0 {
		return class.String()
	}
	parts := make([]string, len(modifiers))
	for i, m := range modifiers {
		parts[i] = m.String()
	}
	return fmt.Sprintf("%s (%s)", class, strings.Join(parts, ", "))
}

// LogFields returns structured logging fields for the classification audit
// trail.
func (r *ClassificationResult) LogFields() map[string]any {
	return map[string]any{
		"resulting_class": r.ResultingClass,
		"confidence":      r.Confidence.String(),
		"applied_rules":   len(r.AppliedRules),
		"missing_data":    len(r.MissingData),
		"catalog_version": r.CatalogVersion,
	}
}
