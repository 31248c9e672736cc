package domain

import (
	"context"
	"time"
)

// StepValidator gatekeeps what data may reach the classification engine.
// Both methods are pure: the returned descriptions are advisory, never an
// error, and the caller decides whether to block navigation.
type StepValidator interface {
	// ValidateStep returns the currently-missing requirements of one step,
	// in declaration order. An empty list means the step may advance.
	ValidateStep(step Step, profile *DeviceProfile) []string
	// ValidateAll re-runs validation across every step and returns the
	// de-duplicated union of missing requirements. This is the
	// authoritative pre-submit gate before classification runs.
	ValidateAll(profile *DeviceProfile) []string
}

// Classifier exposes the single engine operation consumed by the UI and
// export layers: synchronous, side-effect-free classification of a
// complete device profile.
type Classifier interface {
	Classify(ctx context.Context, profile *DeviceProfile) (*ClassificationResult, error)
}

// RunStore persists past classification runs for the audit history. The
// engine itself owns no persisted state; the API layer drives the store.
type RunStore interface {
	Save(ctx context.Context, run *ClassificationRun) error
	Get(ctx context.Context, id string) (*ClassificationRun, error)
	List(ctx context.Context, limit, offset int) ([]*ClassificationRun, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// ClassificationRun is one persisted classification, pairing the submitted
// profile with its immutable result.
type ClassificationRun struct {
	ID             string    `json:"id"`
	ProfileJSON    string    `json:"profile"`
	ResultingClass string    `json:"resultingClass"`
	Confidence     string    `json:"confidence"`
	Justification  string    `json:"justification"`
	CatalogVersion string    `json:"catalogVersion"`
	CreatedAt      time.Time `json:"createdAt"`
}
