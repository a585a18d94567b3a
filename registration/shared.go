package registration

import "exim/models"

// globalSlots are the upload-once slots: profile documents, business entity
// documents, the cancelled cheque and the certificates issued by completing
// a step. Everything else is step-scoped and never propagates, even when the
// same file is uploaded twice.
var globalSlots = map[string]bool{
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

	SlotGSTCertificate:       true,
	SlotIECCertificate:       true,
	SlotDSCCertificate:       true,
	SlotICEGATECertificate:   true,
	SlotADCodeLetterFromBank: true,
}

// IsGlobalSlot reports whether a slot is reusable across steps once uploaded
// anywhere.
func IsGlobalSlot(name string) bool {
	return globalSlots[name]
}

// profileCacheUrl returns the denormalized profile URL for a profile slot,
// or "" for any other slot.
func profileCacheUrl(user *models.User, slot string) string {
	switch slot {
	case SlotPanCard:
		return user.PanCardUrl
	case SlotAadharCard:
		return user.AadharCardUrl
	case SlotPhotograph:
		return user.PhotographUrl
	case SlotProofOfAddress:
		return user.ProofOfAddressUrl
	}
	return ""
}

// setProfileCache updates the denormalized profile URL field for a profile
// slot and returns the matching column name, or "" if the slot is not a
// profile document.
func setProfileCache(user *models.User, slot, url string) string {
	switch slot {
	case SlotPanCard:
		user.PanCardUrl = url
		return "pan_card_url"
	case SlotAadharCard:
		user.AadharCardUrl = url
		return "aadhar_card_url"
	case SlotPhotograph:
		user.PhotographUrl = url
		return "photograph_url"
	case SlotProofOfAddress:
		user.ProofOfAddressUrl = url
		return "proof_of_address_url"
	}
	return ""
}
