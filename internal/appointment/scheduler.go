package appointment

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// externalIDPrefix marks participants outside the patient roster; the prefix
// keeps synthesized ids from ever colliding with roster ids.
const externalIDPrefix = "external-"

// NewExternalPatientID synthesizes an identifier for a non-roster patient.
func NewExternalPatientID() string {
	return externalIDPrefix + uuid.NewString()
}

// IsExternalPatient reports whether an id was synthesized for a non-roster
// participant.
func IsExternalPatient(id string) bool {
	return strings.HasPrefix(id, externalIDPrefix)
}

// CheckConflict reports whether any appointment in existing, other than the
// one matching excludeID, occupies the same date and time as the candidate.
// For a single-practitioner agenda the (date, time) pair is the whole slot;
// practitioner and location are deliberately ignored.
func CheckConflict(candidate Appointment, existing []Appointment, excludeID string) bool {
	for _, a := range existing {
		if a.ID == excludeID {
			continue
		}
		if a.Date == candidate.Date && a.Time == candidate.Time {
			return true
		}
	}
	return false
}

// Merge folds the candidate into the collection: with editingID set the
// matching entry is replaced in place, otherwise the candidate is appended
// and the whole collection re-sorted ascending by date then time. The input
// slice is never mutated.
func Merge(candidate Appointment, existing []Appointment, editingID string) []Appointment {
	out := make([]Appointment, len(existing))
	copy(out, existing)
	if editingID != "" {
		for i := range out {
			if out[i].ID == editingID {
				out[i] = candidate
			}
		}
		return out
	}
	out = append(out, candidate)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}
