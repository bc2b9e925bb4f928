package semantic

// knownFHIRTypes is the set of type names a Parent/InstanceOf/only-rule type
// reference may legitimately name without resolving to a local definition:
// the FHIR R4 primitive types, general-purpose and metadata complex types,
// and base resource types. Anything outside this set and outside the
// project's own symbols is reported as invalid-fhir-type rather than the
// generic unresolved-reference, mirroring the distinction the original
// implementation's ReferenceType::Type / ReferenceType::Parent draw between
// "points at a FHIR type" and "points at another named thing".
var knownFHIRTypes = buildKnownFHIRTypes()

func buildKnownFHIRTypes() map[string]bool {
	names := []string{
		// Primitive types.
		"base64Binary", "boolean", "canonical", "code", "date", "dateTime",
		"decimal", "id", "instant", "integer", "integer64", "markdown", "oid",
		"positiveInt", "string", "time", "unsignedInt", "uri", "url", "uuid",
		"xhtml",

		// General-purpose complex types.
		"Address", "Age", "Annotation", "Attachment", "BackboneElement",
		"CodeableConcept", "CodeableReference", "Coding", "ContactDetail",
		"ContactPoint", "Contributor", "Count", "DataRequirement", "Distance",
		"Dosage", "Duration", "Element", "ElementDefinition", "Expression",
		"Extension", "HumanName", "Identifier", "MarketingStatus", "Meta",
		"Money", "MoneyQuantity", "Narrative", "ParameterDefinition", "Period",
		"Population", "ProdCharacteristic", "ProductShelfLife", "Quantity",
		"Range", "Ratio", "RatioRange", "Reference", "RelatedArtifact",
		"SampledData", "Signature", "SimpleQuantity", "Timing",
		"TriggerDefinition", "UsageContext",

		// Base types.
		"Resource", "DomainResource", "Base", "BackboneType", "PrimitiveType",
		"DataType",

		// Base resource types (FHIR R4).
		"Account", "ActivityDefinition", "AdverseEvent",
		"AllergyIntolerance", "Appointment", "AppointmentResponse",
		"AuditEvent", "Basic", "Binary", "BiologicallyDerivedProduct",
		"BodyStructure", "Bundle", "CapabilityStatement", "CarePlan",
		"CareTeam", "CatalogEntry", "ChargeItem", "ChargeItemDefinition",
		"Claim", "ClaimResponse", "ClinicalImpression", "CodeSystem",
		"Communication", "CommunicationRequest", "CompartmentDefinition",
		"Composition", "ConceptMap", "Condition", "Consent", "Contract",
		"Coverage", "CoverageEligibilityRequest", "CoverageEligibilityResponse",
		"DetectedIssue", "Device", "DeviceDefinition", "DeviceMetric",
		"DeviceRequest", "DeviceUseStatement", "DiagnosticReport",
		"DocumentManifest", "DocumentReference", "EffectEvidenceSynthesis",
		"Encounter", "Endpoint", "EnrollmentRequest", "EnrollmentResponse",
		"EpisodeOfCare", "EventDefinition", "Evidence", "EvidenceVariable",
		"ExampleScenario", "ExplanationOfBenefit", "FamilyMemberHistory",
		"Flag", "Goal", "GraphDefinition", "Group", "GuidanceResponse",
		"HealthcareService", "ImagingStudy", "Immunization",
		"ImmunizationEvaluation", "ImmunizationRecommendation",
		"ImplementationGuide", "InsurancePlan", "Invoice", "Library",
		"Linkage", "List", "Location", "Measure", "MeasureReport", "Media",
		"Medication", "MedicationAdministration", "MedicationDispense",
		"MedicationKnowledge", "MedicationRequest", "MedicationStatement",
		"MedicinalProduct", "MedicinalProductAuthorization",
		"MedicinalProductContraindication", "MedicinalProductIndication",
		"MedicinalProductIngredient", "MedicinalProductInteraction",
		"MedicinalProductManufactured", "MedicinalProductPackaged",
		"MedicinalProductPharmaceutical", "MedicinalProductUndesirableEffect",
		"MessageDefinition", "MessageHeader", "MolecularSequence",
		"NamingSystem", "NutritionOrder", "Observation", "ObservationDefinition",
		"OperationDefinition", "OperationOutcome", "Organization",
		"OrganizationAffiliation", "Parameters", "Patient", "PaymentNotice",
		"PaymentReconciliation", "Person", "PlanDefinition", "Practitioner",
		"PractitionerRole", "Procedure", "Provenance", "Questionnaire",
		"QuestionnaireResponse", "RelatedPerson", "RequestGroup",
		"ResearchDefinition", "ResearchElementDefinition", "ResearchStudy",
		"ResearchSubject", "RiskAssessment", "RiskEvidenceSynthesis",
		"Schedule", "SearchParameter", "ServiceRequest", "Slot", "Specimen",
		"SpecimenDefinition", "StructureDefinition", "StructureMap",
		"Subscription", "Substance", "SubstanceNucleicAcid",
		"SubstancePolymer", "SubstanceProtein", "SubstanceReferenceInformation",
		"SubstanceSourceMaterial", "SubstanceSpecification", "SupplyDelivery",
		"SupplyRequest", "Task", "TerminologyCapabilities", "TestReport",
		"TestScript", "ValueSet", "VerificationResult", "VisionPrescription",
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// isKnownFHIRType reports whether name is one of the base FHIR R4 types a
// Parent, InstanceOf, or only-rule type target may legitimately name without
// being defined anywhere in the project (core resources, complex types, and
// primitives resolved implicitly through the FHIR core package rather than
// through Fishable at build time).
func isKnownFHIRType(name string) bool {
	return knownFHIRTypes[name]
}
