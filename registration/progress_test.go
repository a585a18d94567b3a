package registration

import (
	"testing"

	"exim/models"

	"github.com/stretchr/testify/assert"
)

func TestSlotSatisfied(t *testing.T) {
	assert.False(t, SlotSatisfied(SlotState{}))
	assert.False(t, SlotSatisfied(SlotState{Status: models.DocUploaded}))
	assert.True(t, SlotSatisfied(SlotState{Url: "https://cdn/x.pdf", Status: models.DocUploaded}))
	assert.True(t, SlotSatisfied(SlotState{Url: "https://cdn/x.pdf", Status: models.DocVerified}))

	// A rejected slot keeps its URL but no longer counts
	assert.False(t, SlotSatisfied(SlotState{Url: "https://cdn/x.pdf", Status: models.DocRejected}))
}

func TestProgressEmptyRequirements(t *testing.T) {
	assert.Equal(t, 0, Progress(nil, nil, nil, nil, nil))
}

func TestProgressCountsSlotsAndFields(t *testing.T) {
	slots := []RequiredSlot{{Name: SlotPanCard}, {Name: SlotAadharCard}}
	fields := []string{FieldBusinessAddress, FieldPremiseType}

	docs := map[string]SlotState{
		SlotPanCard: {Url: "https://cdn/pan.pdf", Status: models.DocUploaded},
	}
	values := map[string]string{
		FieldBusinessAddress: "12 Marine Drive, Mumbai",
		FieldPremiseType:     "   ", // whitespace is not a value
	}

	assert.Equal(t, 50, Progress(slots, fields, nil, values, docs))
}

func TestProgressRoundsHalfUp(t *testing.T) {
	slots := []RequiredSlot{{Name: SlotPanCard}, {Name: SlotAadharCard}, {Name: SlotPhotograph}}
	docs := map[string]SlotState{
		SlotPanCard: {Url: "u", Status: models.DocUploaded},
	}
	assert.Equal(t, 33, Progress(slots, nil, nil, nil, docs))

	docs[SlotAadharCard] = SlotState{Url: "u", Status: models.DocUploaded}
	assert.Equal(t, 67, Progress(slots, nil, nil, nil, docs))

	docs[SlotPhotograph] = SlotState{Url: "u", Status: models.DocUploaded}
	assert.Equal(t, 100, Progress(slots, nil, nil, nil, docs))
}

func TestProgressRejectedSlotDrops(t *testing.T) {
	slots := []RequiredSlot{{Name: SlotPanCard}, {Name: SlotAadharCard}}
	docs := map[string]SlotState{
		SlotPanCard:    {Url: "u", Status: models.DocVerified},
		SlotAadharCard: {Url: "u", Status: models.DocUploaded},
	}
	assert.Equal(t, 100, Progress(slots, nil, nil, nil, docs))

	docs[SlotAadharCard] = SlotState{Url: "u", Status: models.DocRejected}
	assert.Equal(t, 50, Progress(slots, nil, nil, nil, docs))
}

func TestProgressOptionalSectionUntouched(t *testing.T) {
	slots := []RequiredSlot{{Name: SlotPanCard}}
	sections := []OptionalSection{{
		Name:   "bankDetails",
		Fields: []string{FieldBankName, FieldAccountNo, FieldIFSCCode},
	}}
	docs := map[string]SlotState{
		SlotPanCard: {Url: "u", Status: models.DocUploaded},
	}

	// Untouched section is invisible: 1/1
	assert.Equal(t, 100, Progress(slots, nil, sections, map[string]string{}, docs))
}

func TestProgressOptionalSectionPartiallyFilled(t *testing.T) {
	slots := []RequiredSlot{{Name: SlotPanCard}}
	sections := []OptionalSection{{
		Name:   "bankDetails",
		Fields: []string{FieldBankName, FieldAccountNo, FieldIFSCCode},
	}}
	docs := map[string]SlotState{
		SlotPanCard: {Url: "u", Status: models.DocUploaded},
	}

	// One bank field filled pulls the whole section into the denominator:
	// completed 2 of 4
	values := map[string]string{FieldBankName: "State Bank of India"}
	assert.Equal(t, 50, Progress(slots, nil, sections, values, docs))

	// Filling the section completes it again
	values[FieldAccountNo] = "123456789012"
	values[FieldIFSCCode] = "SBIN0001234"
	assert.Equal(t, 100, Progress(slots, nil, sections, values, docs))
}

func TestProgressMonotonicUnderUploads(t *testing.T) {
	slots := RequiredSlots(models.EntityIndividual, models.StepGST,
		ResolverOptions{PremiseType: PremiseRented})
	fields := RequiredFields(models.StepGST, ResolverOptions{})

	docs := map[string]SlotState{}
	values := map[string]string{}

	previous := Progress(slots, fields, nil, values, docs)
	for _, slot := range slots {
		docs[slot.Name] = SlotState{Url: "u", Status: models.DocUploaded}
		current := Progress(slots, fields, nil, values, docs)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
	for _, field := range fields {
		values[field] = "filled"
		current := Progress(slots, fields, nil, values, docs)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
	assert.Equal(t, 100, previous)
}
