package service

import (
	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/domain"
)

// requirement is one field a wizard step needs before it may advance.
// A nil trigger means the field is always required; otherwise the
// requirement only activates when the trigger holds against the current
// profile; a false or absent trigger never blocks validation.
type requirement struct {
	field   domain.Field
	trigger func(p *domain.DeviceProfile) bool
}

// stepSpec declares the requirement table of one wizard step. Conditional
// requirements are encoded as data rather than nested conditionals so the
// validator stays testable in isolation from the UI.
type stepSpec struct {
	step domain.Step
	// skip drops the whole step from validation, e.g. the software step
	// for a device that is not software.
	skip         func(p *domain.DeviceProfile) bool
	requirements []requirement
}

func hasFunction(p *domain.DeviceProfile, tag string) bool {
	for _, f := range p.Functions {
		if f == tag {
			return true
		}
	}
	return false
}

func hasContactSite(p *domain.DeviceProfile, site string) bool {
	for _, s := range p.ContactSites {
		if s == site {
			return true
		}
	}
	return false
}

// dangerTriggeringFunctions are the functional intents whose presence
// requires a danger-level answer.
var dangerTriggeringFunctions = []string{
	domain.FunctionAdministerEnergy,
	domain.FunctionDiagnosticMonitoring,
	domain.FunctionVitalMonitoring,
	domain.FunctionIonizingRadiation,
	domain.FunctionAdministerDrug,
}

func hasDangerTriggeringFunction(p *domain.DeviceProfile) bool {
	for _, tag := range dangerTriggeringFunctions {
		if hasFunction(p, tag) {
			return true
		}
	}
	return false
}

func isInvasive(p *domain.DeviceProfile) bool {
	return p.Invasiveness != nil && *p.Invasiveness != domain.InvasivenessNone
}

// stepSpecs is the declarative requirement table of the whole wizard, in
// step order. Requirement order within a step is declaration order and is
// part of the contract: validation messages must be reproducible.
var stepSpecs = []stepSpec{
	{
		step: domain.StepGeneral,
		requirements: []requirement{
			{field: domain.FieldDeviceType},
			{field: domain.FieldIsActive},
			{field: domain.FieldIsSoftware},
		},
	},
	{
		step: domain.StepInvasiveness,
		requirements: []requirement{
			{field: domain.FieldInvasiveness},
			{field: domain.FieldImplantable, trigger: isInvasive},
			{field: domain.FieldContactCNS, trigger: isInvasive},
			{field: domain.FieldContactCirculatory, trigger: isInvasive},
		},
	},
	{
		step: domain.StepDuration,
		requirements: []requirement{
			{field: domain.FieldDuration},
		},
	},
	{
		step: domain.StepAnatomicalSite,
		requirements: []requirement{
			{field: domain.FieldContactSites},
			{field: domain.FieldWoundDepth, trigger: func(p *domain.DeviceProfile) bool {
				return hasContactSite(p, domain.SiteBrokenSkin)
			}},
		},
	},
	{
		step: domain.StepFunctionEnergy,
		requirements: []requirement{
			{field: domain.FieldFunctions},
			{field: domain.FieldDangerLevel, trigger: hasDangerTriggeringFunction},
			{field: domain.FieldModifyCompositionSimple, trigger: func(p *domain.DeviceProfile) bool {
				return hasFunction(p, domain.FunctionModifyComposition)
			}},
			{field: domain.FieldDisinfectionTarget, trigger: func(p *domain.DeviceProfile) bool {
				return hasFunction(p, domain.FunctionSterilizeDevice)
			}},
			{field: domain.FieldOtherFunctionDescription, trigger: func(p *domain.DeviceProfile) bool {
				return hasFunction(p, domain.FunctionOther)
			}},
		},
	},
	{
		step: domain.StepSterility,
		requirements: []requirement{
			{field: domain.FieldProvidedSterile},
			{field: domain.FieldHasMeasuringFunction},
			{field: domain.FieldReusableSurgicalInstrument},
		},
	},
	{
		step: domain.StepSpecialCases,
		requirements: []requirement{
			{field: domain.FieldHighNanomaterialExposure, trigger: func(p *domain.DeviceProfile) bool {
				return p.ContainsNanomaterials != nil && *p.ContainsNanomaterials
			}},
		},
	},
	{
		step: domain.StepSoftware,
		skip: func(p *domain.DeviceProfile) bool {
			return p.IsSoftware != nil && !*p.IsSoftware
		},
		requirements: []requirement{
			{field: domain.FieldSoftwarePurposes, trigger: func(p *domain.DeviceProfile) bool {
				return p.IsSoftware != nil && *p.IsSoftware
			}},
			{field: domain.FieldDangerLevel, trigger: func(p *domain.DeviceProfile) bool {
				return p.IsSoftware != nil && *p.IsSoftware
			}},
		},
	},
}

// StepValidator is the state machine gating what data may reach the
// engine. Both methods are pure and deterministic; the returned
// descriptions are advisory and never an error; the UI decides whether to
// block navigation.
type StepValidator struct {
	log *logrus.Logger
}

// NewStepValidator creates a step validator.
func NewStepValidator(log *logrus.Logger) *StepValidator {
	return &StepValidator{log: log}
}

// ValidateStep returns the missing requirements of one step, in the step's
// declaration order. An empty list means the step may advance. Unknown
// steps validate empty rather than failing: the caller already rejects
// unknown step identifiers at the API boundary.
func (v *StepValidator) ValidateStep(step domain.Step, profile *domain.DeviceProfile) []string {
	for _, spec := range stepSpecs {
		if spec.step == step {
			return v.missingForSpec(spec, profile)
		}
	}
	return nil
}

// ValidateAll re-runs validation across every wizard step and returns the
// de-duplicated union of missing requirements, in step order. This is the
// authoritative pre-submit gate: classification must not run while this
// list is non-empty.
func (v *StepValidator) ValidateAll(profile *domain.DeviceProfile) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, spec := range stepSpecs {
		for _, m := range v.missingForSpec(spec, profile) {
			if seen[m] {
				continue
			}
			seen[m] = true
			missing = append(missing, m)
		}
	}

	if len(missing) > 0 {
		v.log.WithFields(logrus.Fields{
			"missing_count": len(missing),
		}).Debug("Profile incomplete at pre-submit validation")
	}
	return missing
}

func (v *StepValidator) missingForSpec(spec stepSpec, profile *domain.DeviceProfile) []string {
	if spec.skip != nil && spec.skip(profile) {
		return nil
	}
	var missing []string
	for _, req := range spec.requirements {
		if req.trigger != nil && !req.trigger(profile) {
			continue
		}
		if !profile.IsSet(req.field) {
			missing = append(missing, req.field.Label())
		}
	}
	return missing
}
