package registration

import (
	"testing"

	"exim/models"

	"github.com/stretchr/testify/assert"
)

func slotNames(slots []RequiredSlot) []string {
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.Name)
	}
	return names
}

func TestNormalizeBusinessType(t *testing.T) {
	assert.Equal(t, models.EntityPartnership, NormalizeBusinessType(" Partnership "))
	assert.Equal(t, models.EntityLLP, NormalizeBusinessType("LLP"))
	assert.Equal(t, models.EntityPrivateLtd, NormalizeBusinessType("private_limited"))
	assert.Equal(t, models.EntityOther, NormalizeBusinessType("other"))

	// Unknown input falls back to individual instead of failing
	assert.Equal(t, models.EntityIndividual, NormalizeBusinessType("sole proprietor"))
	assert.Equal(t, models.EntityIndividual, NormalizeBusinessType(""))
}

func TestRequiredSlotsStayWithinVocabulary(t *testing.T) {
	types := []string{
		models.EntityIndividual,
		models.EntityPartnership,
		models.EntityLLP,
		models.EntityPrivateLtd,
		models.EntityOther,
	}
	options := []ResolverOptions{
		{PremiseType: PremiseRented, CertificateType: DSCIndividual},
		{PremiseType: PremiseOwned, CertificateType: DSCOrganization},
	}

	for _, businessType := range types {
		for stepID := models.StepGST; stepID <= models.StepADCode; stepID++ {
			for _, opts := range options {
				for _, slot := range RequiredSlots(businessType, stepID, opts) {
					assert.True(t, SlotVocabulary[slot.Name],
						"slot %q for %s step %d is outside the vocabulary", slot.Name, businessType, stepID)
				}
			}
		}
	}
}

func TestRequiredSlotsDeterministic(t *testing.T) {
	opts := ResolverOptions{PremiseType: PremiseRented, CertificateType: DSCIndividual}
	for stepID := models.StepGST; stepID <= models.StepADCode; stepID++ {
		first := RequiredSlots(models.EntityPartnership, stepID, opts)
		second := RequiredSlots(models.EntityPartnership, stepID, opts)
		assert.Equal(t, first, second, "step %d resolution must be stable", stepID)
	}
}

func TestProfileDocumentsRequiredEverywhere(t *testing.T) {
	opts := ResolverOptions{PremiseType: PremiseRented, CertificateType: DSCIndividual}
	for stepID := models.StepGST; stepID <= models.StepADCode; stepID++ {
		names := slotNames(RequiredSlots(models.EntityIndividual, stepID, opts))
		assert.Contains(t, names, SlotPanCard)
		assert.Contains(t, names, SlotAadharCard)
		assert.Contains(t, names, SlotPhotograph)
		assert.Contains(t, names, SlotProofOfAddress)
	}
}

func TestEntityDocumentsByBusinessType(t *testing.T) {
	opts := ResolverOptions{PremiseType: PremiseRented, CertificateType: DSCIndividual}

	individual := slotNames(RequiredSlots(models.EntityIndividual, models.StepGST, opts))
	assert.NotContains(t, individual, SlotAuthorizationLetter)

	partnership := slotNames(RequiredSlots(models.EntityPartnership, models.StepGST, opts))
	assert.Contains(t, partnership, SlotAuthorizationLetter)
	assert.Contains(t, partnership, SlotPartnershipDeed)

	// The partnership deed is only asked for on GST and IEC
	partnershipDSC := slotNames(RequiredSlots(models.EntityPartnership, models.StepDSC, opts))
	assert.NotContains(t, partnershipDSC, SlotPartnershipDeed)

	llp := slotNames(RequiredSlots(models.EntityLLP, models.StepIEC, opts))
	assert.Contains(t, llp, SlotLLPAgreement)

	pvtLtd := slotNames(RequiredSlots(models.EntityPrivateLtd, models.StepIEC, opts))
	assert.Contains(t, pvtLtd, SlotCertificateOfIncorporation)
	assert.Contains(t, pvtLtd, SlotMoaAoa)
}

func TestGSTPremiseTypeSwitchesDocuments(t *testing.T) {
	rented := slotNames(RequiredSlots(models.EntityIndividual, models.StepGST,
		ResolverOptions{PremiseType: PremiseRented}))
	assert.Contains(t, rented, SlotRentAgreement)
	assert.Contains(t, rented, SlotElectricityBill)
	assert.Contains(t, rented, SlotNOC)
	assert.NotContains(t, rented, SlotPropertyProof)

	owned := slotNames(RequiredSlots(models.EntityIndividual, models.StepGST,
		ResolverOptions{PremiseType: PremiseOwned}))
	assert.Contains(t, owned, SlotPropertyProof)
	assert.Contains(t, owned, SlotElectricityBillOwned)
	assert.NotContains(t, owned, SlotRentAgreement)
	assert.NotContains(t, owned, SlotNOC)
}

func TestLaterStepsRequireEarlierCertificates(t *testing.T) {
	opts := ResolverOptions{PremiseType: PremiseRented, CertificateType: DSCIndividual}

	icegate := slotNames(RequiredSlots(models.EntityIndividual, models.StepICEGATE, opts))
	assert.Contains(t, icegate, SlotIECCertificate)
	assert.Contains(t, icegate, SlotADCodeLetterFromBank)
	assert.Contains(t, icegate, SlotGSTCertificate)

	adCode := slotNames(RequiredSlots(models.EntityIndividual, models.StepADCode, opts))
	assert.Contains(t, adCode, SlotIECCertificate)
	assert.Contains(t, adCode, SlotDSCCertificate)
	assert.Contains(t, adCode, SlotADCodeLetterFromBank)
}

func TestRequiredFieldsPerStep(t *testing.T) {
	assert.Equal(t, []string{FieldBusinessAddress, FieldPremiseType},
		RequiredFields(models.StepGST, ResolverOptions{}))
	assert.Equal(t, []string{FieldBusinessAddress},
		RequiredFields(models.StepIEC, ResolverOptions{}))
	assert.Nil(t, RequiredFields(models.StepICEGATE, ResolverOptions{}))

	individual := RequiredFields(models.StepDSC, ResolverOptions{CertificateType: DSCIndividual})
	assert.Equal(t, []string{FieldCertificateType}, individual)

	organization := RequiredFields(models.StepDSC, ResolverOptions{CertificateType: DSCOrganization})
	assert.Contains(t, organization, FieldOrganizationName)
	assert.Contains(t, organization, FieldOrganizationPan)
}

func TestOptionalSectionsOnlyOnIECAndADCode(t *testing.T) {
	for stepID := models.StepGST; stepID <= models.StepADCode; stepID++ {
		sections := OptionalSections(stepID)
		if stepID == models.StepIEC || stepID == models.StepADCode {
			assert.Len(t, sections, 1, "step %d", stepID)
			assert.Equal(t, "bankDetails", sections[0].Name)
		} else {
			assert.Empty(t, sections, "step %d", stepID)
		}
	}
}

func TestOptionsFromDetails(t *testing.T) {
	opts := OptionsFromDetails(map[string]interface{}{})
	assert.Equal(t, PremiseRented, opts.PremiseType)
	assert.Equal(t, DSCIndividual, opts.CertificateType)

	opts = OptionsFromDetails(map[string]interface{}{
		FieldPremiseType:     "Owned",
		FieldCertificateType: "ORGANIZATION",
	})
	assert.Equal(t, PremiseOwned, opts.PremiseType)
	assert.Equal(t, DSCOrganization, opts.CertificateType)

	// Non-string garbage keeps the defaults
	opts = OptionsFromDetails(map[string]interface{}{FieldPremiseType: 42})
	assert.Equal(t, PremiseRented, opts.PremiseType)
}
