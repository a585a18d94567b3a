package registration

import (
	"math"
	"strings"
)

// SlotState is the observed state of one document slot.
type SlotState struct {
	Url    string `json:"url"`
	Status string `json:"status"`
}

// OptionalSection is a group of detail fields that only counts toward
// progress once the user has started filling any of them.
type OptionalSection struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// SlotSatisfied reports whether a slot counts as complete: a URL is on file
// and the document has not been rejected. A rejected slot keeps its URL for
// display but must be re-uploaded.
func SlotSatisfied(s SlotState) bool {
	return s.Url != "" && s.Status != "rejected"
}

// Progress computes the 0-100 completion percentage for a step.
//
// total is the required slot count plus the required field count. Optional
// sections contribute nothing while untouched; once any field in a section
// is filled, every field of that section becomes required for this pass.
// An empty requirement set yields 0, and the result rounds half up.
func Progress(slots []RequiredSlot, requiredFields []string, sections []OptionalSection, values map[string]string, docs map[string]SlotState) int {
	total := len(slots) + len(requiredFields)
	completed := 0

	for _, slot := range slots {
		if SlotSatisfied(docs[slot.Name]) {
			completed++
		}
	}
	for _, field := range requiredFields {
		if strings.TrimSpace(values[field]) != "" {
			completed++
		}
	}

	for _, section := range sections {
		touched := false
		for _, field := range section.Fields {
			if strings.TrimSpace(values[field]) != "" {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}
		total += len(section.Fields)
		for _, field := range section.Fields {
			if strings.TrimSpace(values[field]) != "" {
				completed++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
