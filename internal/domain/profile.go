package domain

// Field identifies one answer of the device profile. Keeping fields as a
// closed enum (rather than free strings) gives the evaluator compile-time
// exhaustiveness over the profile and catches catalog typos in tests.
type Field string

const (
	FieldDeviceType                  Field = "deviceType"
	FieldIsActive                    Field = "isActive"
	FieldIsSoftware                  Field = "isSoftware"
	FieldInvasiveness                Field = "invasiveness"
	FieldImplantable                 Field = "implantable"
	FieldContactCNS                  Field = "contactCentralNervousSystem"
	FieldContactCirculatory          Field = "contactCentralCirculatorySystem"
	FieldDuration                    Field = "duration"
	FieldContactSites                Field = "contactSites"
	FieldWoundDepth                  Field = "woundDepth"
	FieldFunctions                   Field = "functions"
	FieldDangerLevel                 Field = "dangerLevel"
	FieldModifyCompositionSimple     Field = "modifyCompositionSimple"
	FieldDisinfectionTarget          Field = "disinfectionTarget"
	FieldOtherFunctionDescription    Field = "otherFunctionDescription"
	FieldProvidedSterile             Field = "providedSterile"
	FieldHasMeasuringFunction        Field = "hasMeasuringFunction"
	FieldReusableSurgicalInstrument  Field = "reusableSurgicalInstrument"
	FieldIncorporatesDrug            Field = "incorporatesDrug"
	FieldIncorporatesBloodDerivative Field = "incorporatesBloodDerivative"
	FieldContainsAbsorbableSubstance Field = "containsAbsorbableSubstance"
	FieldContainsNanomaterials       Field = "containsNanomaterials"
	FieldHighNanomaterialExposure    Field = "highInternalNanomaterialExposure"
	FieldContainsAnimalTissue        Field = "containsAnimalTissue"
	FieldHasBiologicalEffect         Field = "hasBiologicalEffect"
	FieldSoftwarePurposes            Field = "softwarePurposes"
)

// Fields lists every profile field in declaration order. Missing-data
// reports follow this order so output stays reproducible.
var Fields = []Field{
	FieldDeviceType,
	FieldIsActive,
	FieldIsSoftware,
	FieldInvasiveness,
	FieldImplantable,
	FieldContactCNS,
	FieldContactCirculatory,
	FieldDuration,
	FieldContactSites,
	FieldWoundDepth,
	FieldFunctions,
	FieldDangerLevel,
	FieldModifyCompositionSimple,
	FieldDisinfectionTarget,
	FieldOtherFunctionDescription,
	FieldProvidedSterile,
	FieldHasMeasuringFunction,
	FieldReusableSurgicalInstrument,
	FieldIncorporatesDrug,
	FieldIncorporatesBloodDerivative,
	FieldContainsAbsorbableSubstance,
	FieldContainsNanomaterials,
	FieldHighNanomaterialExposure,
	FieldContainsAnimalTissue,
	FieldHasBiologicalEffect,
	FieldSoftwarePurposes,
}

// Enum tokens carried over from the source questionnaire. They appear
// verbatim in rule conditions and classification reports.
const (
	DeviceTypeDevice    = "dispositif"
	DeviceTypeAccessory = "accessoire"

	InvasivenessNone     = "non-invasif"
	InvasivenessOrifice  = "orifice"
	InvasivenessSurgical = "chirurgical"

	DurationTransient = "transitoire" // ≤ 60 min
	DurationShortTerm = "court_terme" // ≤ 30 days
	DurationLongTerm  = "long_terme"  // > 30 days

	SiteIntactSkin         = "peau_intacte"
	SiteBrokenSkin         = "peau_lesee"
	SiteBodyOrifice        = "orifice_corporel"
	SiteCentralCirculatory = "systeme_circulatoire_central"
	SiteCentralNervous     = "systeme_nerveux_central"

	WoundSuperficial = "superficielle"
	WoundDeep        = "profonde"

	FunctionAdministerEnergy     = "administrer_energie"
	FunctionDiagnosticMonitoring = "diagnostic_surveillance"
	FunctionVitalMonitoring      = "surveillance_vitale"
	FunctionIonizingRadiation    = "rayonnement_ionisant"
	FunctionAdministerDrug       = "administrer_medicament"
	FunctionModifyComposition    = "modifier_composition"
	FunctionChannelStore         = "canalisation_stockage"
	FunctionSterilizeDevice      = "steriliser_dispositif"
	FunctionContraception        = "contraception"
	FunctionOther                = "autre"

	DangerNormal      = "normal"
	DangerPotentially = "potentiellement_dangereux"

	DisinfectionInstruments   = "instruments"
	DisinfectionContactLenses = "lentilles_contact"

	SoftwareDecisionSupport  = "decision_support"
	SoftwareCriticalDecision = "critical_decision"
	SoftwareLifeThreatening  = "life_threatening"
)

// DeviceProfile is the accumulating answer set collected across wizard
// steps. Every field is optional until the step validator has gated it;
// scalar answers use pointers so "unset" stays distinguishable from the
// zero value. The profile is a value threaded through the wizard session:
// each step transition produces a new profile, never an in-place mutation.
type DeviceProfile struct {
	DeviceType   *string `json:"deviceType,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	IsSoftware   *bool   `json:"isSoftware,omitempty"`
	Invasiveness *string `json:"invasiveness,omitempty"`

	Implantable        *bool `json:"implantable,omitempty"`
	ContactCNS         *bool `json:"contactCentralNervousSystem,omitempty"`
	ContactCirculatory *bool `json:"contactCentralCirculatorySystem,omitempty"`

	Duration     *string  `json:"duration,omitempty"`
	ContactSites []string `json:"contactSites,omitempty"`
	WoundDepth   *string  `json:"woundDepth,omitempty"`

	Functions                []string `json:"functions,omitempty"`
	DangerLevel              *string  `json:"dangerLevel,omitempty"`
	ModifyCompositionSimple  *bool    `json:"modifyCompositionSimple,omitempty"`
	DisinfectionTarget       *string  `json:"disinfectionTarget,omitempty"`
	OtherFunctionDescription *string  `json:"otherFunctionDescription,omitempty"`

	ProvidedSterile            *bool `json:"providedSterile,omitempty"`
	HasMeasuringFunction       *bool `json:"hasMeasuringFunction,omitempty"`
	ReusableSurgicalInstrument *bool `json:"reusableSurgicalInstrument,omitempty"`

	IncorporatesDrug                 *bool `json:"incorporatesDrug,omitempty"`
	IncorporatesBloodDerivative      *bool `json:"incorporatesBloodDerivative,omitempty"`
	ContainsAbsorbableSubstance      *bool `json:"containsAbsorbableSubstance,omitempty"`
	ContainsNanomaterials            *bool `json:"containsNanomaterials,omitempty"`
	HighInternalNanomaterialExposure *bool `json:"highInternalNanomaterialExposure,omitempty"`
	ContainsAnimalTissue             *bool `json:"containsAnimalTissue,omitempty"`
	HasBiologicalEffect              *bool `json:"hasBiologicalEffect,omitempty"`

	SoftwarePurposes []string `json:"softwarePurposes,omitempty"`
}

// ValueKind tags the runtime type of a profile answer.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindEnum
	KindSet
	KindText
	KindNumber
)

// FieldValue is the tagged value of one profile answer. The evaluator
// operates on FieldValue only, so rule conditions never see Go pointers.
type FieldValue struct {
	Kind ValueKind
	Bool bool
	Str  string
	Set  []string
	Num  float64
}

// BoolValue wraps a boolean answer.
func BoolValue(b bool) FieldValue { return FieldValue{Kind: KindBool, Bool: b} }

// EnumValue wraps a closed-set string answer.
func EnumValue(s string) FieldValue { return FieldValue{Kind: KindEnum, Str: s} }

// SetValue wraps a multi-select answer.
func SetValue(s []string) FieldValue { return FieldValue{Kind: KindSet, Set: s} }

// TextValue wraps a free-text answer.
func TextValue(s string) FieldValue { return FieldValue{Kind: KindText, Str: s} }

// Value returns the answer for the given field and whether it is set.
// Unset answers always report ok=false; rule conditions against them must
// fail (never wildcard-true), so incomplete data can never produce a
// false-positive classification. A set-typed field counts as set only when
// non-empty, matching the step validator's notion of "answered".
func (p *DeviceProfile) Value(f Field) (FieldValue, bool) {
	boolField := func(v *bool) (FieldValue, bool) {
		if v == nil {
			return FieldValue{}, false
		}
		return BoolValue(*v), true
	}
	enumField := func(v *string) (FieldValue, bool) {
		if v == nil || *v == "" {
			return FieldValue{}, false
		}
		return EnumValue(*v), true
	}
	setField := func(v []string) (FieldValue, bool) {
		if len(v) == 0 {
			return FieldValue{}, false
		}
		return SetValue(v), true
	}

	switch f {
	case FieldDeviceType:
		return enumField(p.DeviceType)
	case FieldIsActive:
		return boolField(p.IsActive)
	case FieldIsSoftware:
		return boolField(p.IsSoftware)
	case FieldInvasiveness:
		return enumField(p.Invasiveness)
	case FieldImplantable:
		return boolField(p.Implantable)
	case FieldContactCNS:
		return boolField(p.ContactCNS)
	case FieldContactCirculatory:
		return boolField(p.ContactCirculatory)
	case FieldDuration:
		return enumField(p.Duration)
	case FieldContactSites:
		return setField(p.ContactSites)
	case FieldWoundDepth:
		return enumField(p.WoundDepth)
	case FieldFunctions:
		return setField(p.Functions)
	case FieldDangerLevel:
		return enumField(p.DangerLevel)
	case FieldModifyCompositionSimple:
		return boolField(p.ModifyCompositionSimple)
	case FieldDisinfectionTarget:
		return enumField(p.DisinfectionTarget)
	case FieldOtherFunctionDescription:
		if p.OtherFunctionDescription == nil || *p.OtherFunctionDescription == "" {
			return FieldValue{}, false
		}
		return TextValue(*p.OtherFunctionDescription), true
	case FieldProvidedSterile:
		return boolField(p.ProvidedSterile)
	case FieldHasMeasuringFunction:
		return boolField(p.HasMeasuringFunction)
	case FieldReusableSurgicalInstrument:
		return boolField(p.ReusableSurgicalInstrument)
	case FieldIncorporatesDrug:
		return boolField(p.IncorporatesDrug)
	case FieldIncorporatesBloodDerivative:
		return boolField(p.IncorporatesBloodDerivative)
	case FieldContainsAbsorbableSubstance:
		return boolField(p.ContainsAbsorbableSubstance)
	case FieldContainsNanomaterials:
		return boolField(p.ContainsNanomaterials)
	case FieldHighNanomaterialExposure:
		return boolField(p.HighInternalNanomaterialExposure)
	case FieldContainsAnimalTissue:
		return boolField(p.ContainsAnimalTissue)
	case FieldHasBiologicalEffect:
		return boolField(p.HasBiologicalEffect)
	case FieldSoftwarePurposes:
		return setField(p.SoftwarePurposes)
	default:
		return FieldValue{}, false
	}
}

// IsSet reports whether the field has an answer.
func (p *DeviceProfile) IsSet(f Field) bool {
	_, ok := p.Value(f)
	return ok
}

// fieldLabels map profile fields to the user-facing requirement wording of
// the source questionnaire. Used verbatim in validation messages and
// missing-data reports.
var fieldLabels = map[Field]string{
	FieldDeviceType:                  "Type de produit (dispositif ou accessoire)",
	FieldIsActive:                    "Le dispositif est-il actif ?",
	FieldIsSoftware:                  "Le dispositif est-il un logiciel ?",
	FieldInvasiveness:                "Niveau d'invasivité du dispositif",
	FieldImplantable:                 "Le dispositif est-il implantable ?",
	FieldContactCNS:                  "Contact avec le système nerveux central",
	FieldContactCirculatory:          "Contact avec le système circulatoire central",
	FieldDuration:                    "Durée d'utilisation du dispositif",
	FieldContactSites:                "Sites anatomiques en contact avec le dispositif",
	FieldWoundDepth:                  "Profondeur de la plaie en contact",
	FieldFunctions:                   "Fonctions assurées par le dispositif",
	FieldDangerLevel:                 "Niveau de dangerosité de la fonction",
	FieldModifyCompositionSimple:     "La modification se limite-t-elle à une filtration, centrifugation ou un échange de gaz ou de chaleur ?",
	FieldDisinfectionTarget:          "Type de dispositifs désinfectés ou stérilisés",
	FieldOtherFunctionDescription:    "Description de la fonction « autre »",
	FieldProvidedSterile:             "Le dispositif est-il fourni stérile ?",
	FieldHasMeasuringFunction:        "Le dispositif a-t-il une fonction de mesurage ?",
	FieldReusableSurgicalInstrument:  "Le dispositif est-il un instrument chirurgical réutilisable ?",
	FieldIncorporatesDrug:            "Le dispositif incorpore-t-il une substance médicamenteuse ?",
	FieldIncorporatesBloodDerivative: "Le dispositif incorpore-t-il un dérivé du sang ?",
	FieldContainsAbsorbableSubstance: "Le dispositif contient-il des substances absorbées par le corps ?",
	FieldContainsNanomaterials:       "Le dispositif contient-il des nanomatériaux ?",
	FieldHighNanomaterialExposure:    "Exposition interne élevée aux nanomatériaux",
	FieldContainsAnimalTissue:        "Le dispositif contient-il des tissus d'origine animale ?",
	FieldHasBiologicalEffect:         "Le dispositif a-t-il un effet biologique ?",
	FieldSoftwarePurposes:            "Finalités du logiciel",
}

// Label returns the user-facing description of the field.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// IsValid reports whether the field is part of the device profile.
func (f Field) IsValid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// String returns the string representation of the field.
func (f Field) String() string {
	return string(f)
}
