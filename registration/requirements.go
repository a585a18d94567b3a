package registration

import (
	"strings"

	"exim/models"
)

// Document slot vocabulary. Every slot a step can ever require is named here;
// the resolver never returns a name outside this set.
const (
	SlotPanCard        = "panCard"
	SlotAadharCard     = "aadharCard"
	SlotPhotograph     = "photograph"
	SlotProofOfAddress = "proofOfAddress"

	SlotAuthorizationLetter        = "authorizationLetter"
	SlotPartnershipDeed            = "partnershipDeed"
	SlotLLPAgreement               = "llpAgreement"
	SlotCertificateOfIncorporation = "certificateOfIncorporation"
	SlotMoaAoa                     = "moaAoa"

	SlotCancelledCheque = "cancelledCheque"

	SlotRentAgreement        = "rentAgreement"
	SlotElectricityBill      = "electricityBill"
	SlotNOC                  = "noc"
	SlotPropertyProof        = "propertyProof"
	SlotElectricityBillOwned = "electricityBillOwned"

	SlotGSTCertificate       = "gstCertificate"
	SlotIECCertificate       = "iecCertificate"
	SlotDSCCertificate       = "dscCertificate"
	SlotICEGATECertificate   = "icegateCertificate"
	SlotADCodeLetterFromBank = "adCodeLetterFromBank"
)

// SlotVocabulary is the closed set of valid slot names.
var SlotVocabulary = map[string]bool{
	SlotPanCard:        true,
	SlotAadharCard:     true,
	SlotPhotograph:     true,
	SlotProofOfAddress: true,

	SlotAuthorizationLetter:        true,
	SlotPartnershipDeed:            true,
	SlotLLPAgreement:               true,
	SlotCertificateOfIncorporation: true,
	SlotMoaAoa:                     true,

	SlotCancelledCheque: true,

	SlotRentAgreement:        true,
	SlotElectricityBill:      true,
	SlotNOC:                  true,
	SlotPropertyProof:        true,
	SlotElectricityBillOwned: true,

	SlotGSTCertificate:       true,
	SlotIECCertificate:       true,
	SlotDSCCertificate:       true,
	SlotICEGATECertificate:   true,
	SlotADCodeLetterFromBank: true,
}

// User-chosen options stored in step details.
const (
	PremiseRented = "rented"
	PremiseOwned  = "owned"

	DSCIndividual   = "individual"
	DSCOrganization = "organization"
)

// Step detail field keys.
const (
	FieldBusinessAddress  = "businessAddress"
	FieldPremiseType      = "premiseType"
	FieldCertificateType  = "certificateType"
	FieldOrganizationName = "organizationName"
	FieldOrganizationPan  = "organizationPan"
	FieldBankName         = "bankName"
	FieldAccountNo        = "accountNo"
	FieldIFSCCode         = "ifscCode"
)

// RequiredSlot is one document slot a step requires. AlwaysRequired is false
// for slots that depend on the business entity type or a user choice such as
// the GST premise type.
type RequiredSlot struct {
	Name           string `json:"slotName"`
	AlwaysRequired bool   `json:"alwaysRequired"`
}

// ResolverOptions carries the user choices that condition the slot list.
type ResolverOptions struct {
	PremiseType     string // rented (default) or owned
	CertificateType string // individual (default) or organization, DSC only
}

// OptionsFromDetails extracts resolver options from a step's details map,
// falling back to the defaults for anything missing.
func OptionsFromDetails(details map[string]interface{}) ResolverOptions {
	opts := ResolverOptions{PremiseType: PremiseRented, CertificateType: DSCIndividual}
	if v, ok := details[FieldPremiseType].(string); ok && strings.ToLower(v) == PremiseOwned {
		opts.PremiseType = PremiseOwned
	}
	if v, ok := details[FieldCertificateType].(string); ok && strings.ToLower(v) == DSCOrganization {
		opts.CertificateType = DSCOrganization
	}
	return opts
}

// NormalizeBusinessType maps a raw business entity value to one of the known
// types. Unknown input defaults to individual, it never fails.
func NormalizeBusinessType(businessType string) string {
	switch strings.ToLower(strings.TrimSpace(businessType)) {
	case models.EntityPartnership:
		return models.EntityPartnership
	case models.EntityLLP:
		return models.EntityLLP
	case models.EntityPrivateLtd:
		return models.EntityPrivateLtd
	case models.EntityOther:
		return models.EntityOther
	default:
		return models.EntityIndividual
	}
}

// RequiredSlots returns the ordered document slots required for a step, given
// the business entity type and the user choices recorded on the step.
func RequiredSlots(businessType string, stepID int, opts ResolverOptions) []RequiredSlot {
	businessType = NormalizeBusinessType(businessType)

	// Profile documents are required for every step and sourced from the
	// user profile, not re-uploaded per step.
	slots := []RequiredSlot{
		{Name: SlotPanCard, AlwaysRequired: true},
		{Name: SlotAadharCard, AlwaysRequired: true},
		{Name: SlotPhotograph, AlwaysRequired: true},
		{Name: SlotProofOfAddress, AlwaysRequired: true},
	}

	// Business entity documents.
	if businessType != models.EntityIndividual {
		slots = append(slots, RequiredSlot{Name: SlotAuthorizationLetter})
	}
	switch businessType {
	case models.EntityPartnership:
		if stepID == models.StepGST || stepID == models.StepIEC {
			slots = append(slots, RequiredSlot{Name: SlotPartnershipDeed})
		}
	case models.EntityLLP:
		slots = append(slots, RequiredSlot{Name: SlotLLPAgreement})
	case models.EntityPrivateLtd:
		slots = append(slots,
			RequiredSlot{Name: SlotCertificateOfIncorporation},
			RequiredSlot{Name: SlotMoaAoa},
		)
	}

	// Step-specific slots.
	switch stepID {
	case models.StepGST:
		if opts.PremiseType == PremiseOwned {
			slots = append(slots,
				RequiredSlot{Name: SlotPropertyProof},
				RequiredSlot{Name: SlotElectricityBillOwned},
			)
		} else {
			slots = append(slots,
				RequiredSlot{Name: SlotRentAgreement},
				RequiredSlot{Name: SlotElectricityBill},
				RequiredSlot{Name: SlotNOC},
			)
		}
	case models.StepICEGATE:
		slots = append(slots,
			RequiredSlot{Name: SlotIECCertificate, AlwaysRequired: true},
			RequiredSlot{Name: SlotADCodeLetterFromBank, AlwaysRequired: true},
			RequiredSlot{Name: SlotGSTCertificate, AlwaysRequired: true},
		)
	case models.StepADCode:
		slots = append(slots,
			RequiredSlot{Name: SlotIECCertificate, AlwaysRequired: true},
			RequiredSlot{Name: SlotDSCCertificate, AlwaysRequired: true},
			RequiredSlot{Name: SlotADCodeLetterFromBank, AlwaysRequired: true},
		)
	}

	return slots
}

// RequiredFields returns the free-text detail fields a step requires.
func RequiredFields(stepID int, opts ResolverOptions) []string {
	switch stepID {
	case models.StepGST:
		return []string{FieldBusinessAddress, FieldPremiseType}
	case models.StepIEC:
		return []string{FieldBusinessAddress}
	case models.StepDSC:
		fields := []string{FieldCertificateType}
		if opts.CertificateType == DSCOrganization {
			fields = append(fields, FieldOrganizationName, FieldOrganizationPan)
		}
		return fields
	default:
		return nil
	}
}

// OptionalSections returns the field groups a step offers but does not
// require. An untouched section is ignored by the progress calculation; a
// partially filled one counts in full.
func OptionalSections(stepID int) []OptionalSection {
	switch stepID {
	case models.StepIEC, models.StepADCode:
		return []OptionalSection{{
			Name:   "bankDetails",
			Fields: []string{FieldBankName, FieldAccountNo, FieldIFSCCode},
		}}
	default:
		return nil
	}
}
