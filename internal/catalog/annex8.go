package catalog

import (
	"github.com/mdr-device-classifier/internal/domain"
)

// AnnexVIIIVersion identifies the builtin rule dataset. Bump on any change
// to the rules below; persisted runs record the version they were
// classified against.
const AnnexVIIIVersion = "MDR-2017-745-annexe-VIII-2024.1"

// AnnexVIII returns the builtin MDR Annex VIII classification catalog.
// Sub-rules share a rule number and refine the base rule with additional
// triggering conditions; the base rule still matches when its refinement
// does, and the resolver keeps only the most restrictive citation.
//
// A fresh copy is returned on every call so published catalogs can never
// be mutated through a retained slice.
func AnnexVIII() *Catalog {
	return &Catalog{
		Version:       AnnexVIIIVersion,
		Rules:         annexVIIIRules(),
		ModifierRules: modifierRules(),
	}
}

func annexVIIIRules() []domain.Rule {
	return []domain.Rule{
		// Règle 1 : dispositifs non invasifs
		{
			ID:     "R1",
			Number: "1",
			Title:  "Dispositifs non invasifs",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone),
			},
			Class:     domain.ClassI,
			Rationale: "Tous les dispositifs non invasifs relèvent de la classe I, sauf si une règle plus spécifique s'applique.",
		},

		// Règle 2 : canalisation ou stockage en vue d'une administration
		{
			ID:     "R2",
			Number: "2",
			Title:  "Canalisation ou stockage de liquides corporels",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessNone),
				domain.Includes(domain.FieldFunctions, domain.FunctionChannelStore),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs non invasifs destinés à la canalisation ou au stockage de sang, de liquides ou de tissus corporels en vue d'une administration relèvent de la classe IIa.",
		},

		// Règle 3 : modification de la composition biologique ou chimique
		{
			ID:     "R3",
			Number: "3",
			Title:  "Modification de la composition de liquides corporels",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionModifyComposition),
				domain.EqualsBool(domain.FieldModifyCompositionSimple, false),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs destinés à modifier la composition biologique ou chimique de tissus ou de liquides corporels relèvent de la classe IIb.",
		},
		{
			ID:     "R3b",
			Number: "3",
			Title:  "Modification par filtration, centrifugation ou échange de gaz ou de chaleur",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionModifyComposition),
				domain.EqualsBool(domain.FieldModifyCompositionSimple, true),
			},
			Class:     domain.ClassIIa,
			Rationale: "Lorsque le traitement consiste en une filtration, une centrifugation ou un échange de gaz ou de chaleur, le dispositif relève de la classe IIa.",
		},

		// Règle 4 : contact avec une peau lésée
		{
			ID:     "R4",
			Number: "4",
			Title:  "Contact avec une peau ou une muqueuse lésée",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldContactSites, domain.SiteBrokenSkin),
			},
			Class:     domain.ClassI,
			Rationale: "Les dispositifs en contact avec une peau lésée utilisés comme barrière mécanique relèvent de la classe I.",
		},
		{
			ID:     "R4b",
			Number: "4",
			Title:  "Plaies avec atteinte du derme",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldContactSites, domain.SiteBrokenSkin),
				domain.Equals(domain.FieldWoundDepth, domain.WoundDeep),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs destinés principalement à des plaies comportant une destruction du derme relèvent de la classe IIb.",
		},
		{
			ID:     "R4c",
			Number: "4",
			Title:  "Plaies superficielles",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldContactSites, domain.SiteBrokenSkin),
				domain.Equals(domain.FieldWoundDepth, domain.WoundSuperficial),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs destinés à la prise en charge du microenvironnement d'une plaie superficielle relèvent de la classe IIa.",
		},

		// Règle 5 : invasion par un orifice du corps
		{
			ID:     "R5",
			Number: "5",
			Title:  "Orifice du corps, usage temporaire",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessOrifice),
				domain.Equals(domain.FieldDuration, domain.DurationTransient),
			},
			Class:     domain.ClassI,
			Rationale: "Les dispositifs invasifs en rapport avec les orifices du corps, destinés à un usage temporaire, relèvent de la classe I.",
		},
		{
			ID:     "R5b",
			Number: "5",
			Title:  "Orifice du corps, usage à court terme",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessOrifice),
				domain.Equals(domain.FieldDuration, domain.DurationShortTerm),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs invasifs en rapport avec les orifices du corps, destinés à un usage à court terme, relèvent de la classe IIa.",
		},
		{
			ID:     "R5c",
			Number: "5",
			Title:  "Orifice du corps, usage à long terme",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessOrifice),
				domain.Equals(domain.FieldDuration, domain.DurationLongTerm),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs invasifs en rapport avec les orifices du corps, destinés à un usage à long terme, relèvent de la classe IIb.",
		},

		// Règle 6 : invasion chirurgicale temporaire
		{
			ID:     "R6",
			Number: "6",
			Title:  "Invasion chirurgicale, usage temporaire",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
				domain.Equals(domain.FieldDuration, domain.DurationTransient),
				domain.EqualsBool(domain.FieldReusableSurgicalInstrument, false),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs invasifs de type chirurgical destinés à un usage temporaire relèvent de la classe IIa.",
		},
		{
			ID:     "R6b",
			Number: "6",
			Title:  "Instruments chirurgicaux réutilisables",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
				domain.Equals(domain.FieldDuration, domain.DurationTransient),
				domain.EqualsBool(domain.FieldReusableSurgicalInstrument, true),
			},
			Class:     domain.ClassI,
			Rationale: "Les instruments chirurgicaux réutilisables relèvent de la classe I.",
		},

		// Règle 7 : invasion chirurgicale à court terme
		{
			ID:     "R7",
			Number: "7",
			Title:  "Invasion chirurgicale, usage à court terme",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
				domain.Equals(domain.FieldDuration, domain.DurationShortTerm),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs invasifs de type chirurgical destinés à un usage à court terme relèvent de la classe IIa.",
		},
		{
			ID:     "R7b",
			Number: "7",
			Title:  "Usage à court terme en contact avec le système circulatoire central",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
				domain.Equals(domain.FieldDuration, domain.DurationShortTerm),
				domain.Includes(domain.FieldContactSites, domain.SiteCentralCirculatory),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs invasifs de type chirurgical à court terme destinés spécifiquement au système circulatoire central relèvent de la classe III.",
		},
		{
			ID:     "R7c",
			Number: "7",
			Title:  "Usage à court terme en contact avec le système nerveux central",
			Conditions: []domain.RuleCondition{
				domain.Equals(domain.FieldInvasiveness, domain.InvasivenessSurgical),
				domain.Equals(domain.FieldDuration, domain.DurationShortTerm),
				domain.Includes(domain.FieldContactSites, domain.SiteCentralNervous),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs invasifs de type chirurgical à court terme destinés spécifiquement au système nerveux central relèvent de la classe III.",
		},

		// Règle 8 : dispositifs implantables et invasifs à long terme
		{
			ID:     "R8",
			Number: "8",
			Title:  "Dispositifs implantables",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldImplantable, true),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs implantables et les dispositifs invasifs à long terme de type chirurgical relèvent de la classe IIb.",
		},
		{
			ID:     "R8b",
			Number: "8",
			Title:  "Implantables en contact avec le système circulatoire central",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldImplantable, true),
				domain.Includes(domain.FieldContactSites, domain.SiteCentralCirculatory),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs implantables en contact direct avec le cœur ou le système circulatoire central relèvent de la classe III.",
		},
		{
			ID:     "R8c",
			Number: "8",
			Title:  "Implantables en contact avec le système nerveux central",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldImplantable, true),
				domain.Includes(domain.FieldContactSites, domain.SiteCentralNervous),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs implantables en contact direct avec le système nerveux central relèvent de la classe III.",
		},
		{
			ID:     "R8d",
			Number: "8",
			Title:  "Implantables à effet biologique",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldImplantable, true),
				domain.EqualsBool(domain.FieldHasBiologicalEffect, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs implantables ayant un effet biologique ou absorbés en totalité ou en grande partie relèvent de la classe III.",
		},
		{
			ID:     "R8e",
			Number: "8",
			Title:  "Implantables absorbés par le corps",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldImplantable, true),
				domain.EqualsBool(domain.FieldContainsAbsorbableSubstance, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs implantables dont les substances sont absorbées par le corps humain relèvent de la classe III.",
		},

		// Règle 9 : dispositifs actifs administrant ou échangeant de l'énergie
		{
			ID:     "R9",
			Number: "9",
			Title:  "Administration ou échange d'énergie",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionAdministerEnergy),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs actifs thérapeutiques destinés à administrer ou à échanger de l'énergie relèvent de la classe IIa.",
		},
		{
			ID:     "R9b",
			Number: "9",
			Title:  "Administration d'énergie potentiellement dangereuse",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionAdministerEnergy),
				domain.Equals(domain.FieldDangerLevel, domain.DangerPotentially),
			},
			Class:     domain.ClassIIb,
			Rationale: "Lorsque l'administration ou l'échange d'énergie peut s'effectuer de manière potentiellement dangereuse, le dispositif relève de la classe IIb.",
		},

		// Règle 10 : dispositifs actifs de diagnostic et de surveillance
		{
			ID:     "R10",
			Number: "10",
			Title:  "Diagnostic et surveillance",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionDiagnosticMonitoring),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs actifs destinés au diagnostic et à la surveillance relèvent de la classe IIa.",
		},
		{
			ID:     "R10b",
			Number: "10",
			Title:  "Surveillance de paramètres physiologiques vitaux",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionVitalMonitoring),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs destinés à surveiller des paramètres physiologiques vitaux dont les variations peuvent présenter un danger immédiat relèvent de la classe IIb.",
		},
		{
			ID:     "R10c",
			Number: "10",
			Title:  "Émission de rayonnements ionisants",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionIonizingRadiation),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs actifs émettant des rayonnements ionisants à des fins de diagnostic ou de thérapie relèvent de la classe IIb.",
		},

		// Règle 12 : administration ou retrait de médicaments
		{
			ID:     "R12",
			Number: "12",
			Title:  "Administration de médicaments ou de substances",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionAdministerDrug),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs actifs destinés à administrer des médicaments ou d'autres substances dans le corps, ou à les en retirer, relèvent de la classe IIa.",
		},
		{
			ID:     "R12b",
			Number: "12",
			Title:  "Administration potentiellement dangereuse de médicaments",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
				domain.Includes(domain.FieldFunctions, domain.FunctionAdministerDrug),
				domain.Equals(domain.FieldDangerLevel, domain.DangerPotentially),
			},
			Class:     domain.ClassIIb,
			Rationale: "Lorsque l'administration s'effectue de manière potentiellement dangereuse, le dispositif relève de la classe IIb.",
		},

		// Règle 13 : autres dispositifs actifs
		{
			ID:     "R13",
			Number: "13",
			Title:  "Autres dispositifs actifs",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsActive, true),
			},
			Class:     domain.ClassI,
			Rationale: "Tous les autres dispositifs actifs relèvent de la classe I.",
		},

		// Règle 14 : incorporation d'une substance médicamenteuse
		{
			ID:     "R14",
			Number: "14",
			Title:  "Incorporation d'une substance médicamenteuse",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIncorporatesDrug, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs incorporant comme partie intégrante une substance qui, utilisée séparément, serait un médicament relèvent de la classe III.",
		},
		{
			ID:     "R14b",
			Number: "14",
			Title:  "Incorporation d'un dérivé du sang",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIncorporatesBloodDerivative, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs incorporant un dérivé du sang ou du plasma humain relèvent de la classe III.",
		},

		// Règle 15 : contraception et prévention des MST
		{
			ID:     "R15",
			Number: "15",
			Title:  "Contraception ou prévention des maladies sexuellement transmissibles",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionContraception),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs destinés à la contraception ou à la prévention de la transmission de maladies sexuellement transmissibles relèvent de la classe IIb.",
		},
		{
			ID:     "R15b",
			Number: "15",
			Title:  "Contraception par dispositif implantable",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionContraception),
				domain.EqualsBool(domain.FieldImplantable, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Lorsqu'il s'agit de dispositifs implantables ou invasifs à long terme, ils relèvent de la classe III.",
		},

		// Règle 16 : désinfection et stérilisation d'autres dispositifs
		{
			ID:     "R16",
			Number: "16",
			Title:  "Désinfection ou stérilisation de dispositifs médicaux",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionSterilizeDevice),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs destinés spécifiquement à désinfecter ou à stériliser des dispositifs médicaux relèvent de la classe IIa.",
		},
		{
			ID:     "R16b",
			Number: "16",
			Title:  "Désinfection de lentilles de contact",
			Conditions: []domain.RuleCondition{
				domain.Includes(domain.FieldFunctions, domain.FunctionSterilizeDevice),
				domain.Equals(domain.FieldDisinfectionTarget, domain.DisinfectionContactLenses),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs destinés à désinfecter, nettoyer ou hydrater des lentilles de contact relèvent de la classe IIb.",
		},

		// Règle 18 : tissus d'origine animale
		{
			ID:     "R18",
			Number: "18",
			Title:  "Tissus ou cellules d'origine animale",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldContainsAnimalTissue, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs fabriqués à partir de tissus ou de cellules d'origine animale ou humaine, ou de leurs dérivés, relèvent de la classe III.",
		},

		// Règle 19 : nanomatériaux
		{
			ID:     "R19",
			Number: "19",
			Title:  "Incorporation de nanomatériaux",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldContainsNanomaterials, true),
				domain.EqualsBool(domain.FieldHighNanomaterialExposure, false),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les dispositifs incorporant un nanomatériau ou constitués d'un nanomatériau présentant un potentiel d'exposition interne faible ou négligeable relèvent de la classe IIa.",
		},
		{
			ID:     "R19b",
			Number: "19",
			Title:  "Exposition interne élevée aux nanomatériaux",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldContainsNanomaterials, true),
				domain.EqualsBool(domain.FieldHighNanomaterialExposure, true),
			},
			Class:     domain.ClassIII,
			Rationale: "Les dispositifs présentant un potentiel d'exposition interne aux nanomatériaux élevé ou moyen relèvent de la classe III.",
		},

		// Règle 21 : substances absorbées par le corps
		{
			ID:     "R21",
			Number: "21",
			Title:  "Substances absorbées ou dispersées localement",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldContainsAbsorbableSubstance, true),
			},
			Class:     domain.ClassIIb,
			Rationale: "Les dispositifs composés de substances destinées à être absorbées par le corps humain ou à y être dispersées localement relèvent de la classe IIb.",
		},

		// Règle 22 : logiciels
		{
			ID:     "R22",
			Number: "22",
			Title:  "Logiciel d'aide à la décision",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsSoftware, true),
				domain.Includes(domain.FieldSoftwarePurposes, domain.SoftwareDecisionSupport),
			},
			Class:     domain.ClassIIa,
			Rationale: "Les logiciels destinés à fournir des informations utilisées pour prendre des décisions à des fins thérapeutiques ou diagnostiques relèvent de la classe IIa.",
		},
		{
			ID:     "R22b",
			Number: "22",
			Title:  "Logiciel influençant des décisions critiques",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsSoftware, true),
				domain.Includes(domain.FieldSoftwarePurposes, domain.SoftwareCriticalDecision),
			},
			Class:     domain.ClassIIb,
			Rationale: "Lorsque ces décisions peuvent entraîner une grave détérioration de l'état de santé d'une personne ou une intervention chirurgicale, le logiciel relève de la classe IIb.",
		},
		{
			ID:     "R22c",
			Number: "22",
			Title:  "Logiciel influençant des décisions vitales",
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldIsSoftware, true),
				domain.Includes(domain.FieldSoftwarePurposes, domain.SoftwareLifeThreatening),
			},
			Class:     domain.ClassIII,
			Rationale: "Lorsque ces décisions peuvent entraîner la mort ou une détérioration irréversible de l'état de santé d'une personne, le logiciel relève de la classe III.",
		},
	}
}

func modifierRules() []domain.ModifierRule {
	return []domain.ModifierRule{
		{
			Modifier: domain.ModifierSterile,
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldProvidedSterile, true),
			},
			Rationale: "Dispositif fourni stérile (classe Is).",
		},
		{
			Modifier: domain.ModifierMeasuring,
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldHasMeasuringFunction, true),
			},
			Rationale: "Dispositif avec fonction de mesurage (classe Im).",
		},
		{
			Modifier: domain.ModifierReusable,
			Conditions: []domain.RuleCondition{
				domain.EqualsBool(domain.FieldReusableSurgicalInstrument, true),
			},
			Rationale: "Instrument chirurgical réutilisable (classe Ir).",
		},
	}
}
