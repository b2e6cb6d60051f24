package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nutricare-server/internal/patient"
)

var (
	// ErrConflict marks a (date, time) collision. It is advisory, not a hard
	// stop: repeating the save with confirm set books the slot anyway.
	ErrConflict   = errors.New("appointment: time slot already booked")
	ErrNotFound   = errors.New("appointment: not found")
	ErrValidation = errors.New("appointment: invalid input")
)

// Roster resolves live patient names at save time. After the save the name
// is frozen on the appointment.
type Roster interface {
	List(ctx context.Context) ([]patient.Patient, error)
}

type Service interface {
	List(ctx context.Context) ([]Appointment, error)
	// Save books or, when editingID is set, rewrites an appointment. A
	// colliding slot returns ErrConflict unless confirm is true.
	Save(ctx context.Context, a Appointment, editingID string, confirm bool) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	roster Roster
}

func NewService(repo Repository, roster Roster) Service {
	return &service{repo: repo, roster: roster}
}

func (s *service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *service) Save(ctx context.Context, a Appointment, editingID string, confirm bool) (*Appointment, error) {
	if a.Date == "" || a.Time == "" {
		return nil, fmt.Errorf("%w: date and time are required", ErrValidation)
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if editingID != "" && !contains(existing, editingID) {
		return nil, ErrNotFound
	}
	if CheckConflict(a, existing, editingID) && !confirm {
		return nil, ErrConflict
	}

	if err := s.bindPatient(ctx, &a); err != nil {
		return nil, err
	}
	if editingID != "" {
		a.ID = editingID
	} else if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Type == "" {
		a.Type = TypeOnline
	}

	if err := s.repo.Replace(ctx, Merge(a, existing, editingID)); err != nil {
		return nil, err
	}
	return &a, nil
}

// Deleting is unconditional: no conflict or cascade checks.
func (s *service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]Appointment, 0, len(existing))
	found := false
	for _, a := range existing {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Replace(ctx, kept)
}

// bindPatient resolves a roster reference to its live name, or synthesizes
// an external id for a free-text participant.
func (s *service) bindPatient(ctx context.Context, a *Appointment) error {
	if a.PatientID != "" && !IsExternalPatient(a.PatientID) {
		roster, err := s.roster.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range roster {
			if p.ID == a.PatientID {
				a.PatientName = p.FullName
				return nil
			}
		}
		// A stale roster id degrades to an external reference rather than
		// blocking the booking.
	}
	if a.PatientID == "" {
		a.PatientID = NewExternalPatientID()
	}
	if strings.TrimSpace(a.PatientName) == "" {
		a.PatientName = "Sem Nome"
	}
	return nil
}

func contains(appointments []Appointment, id string) bool {
	for _, a := range appointments {
		if a.ID == id {
			return true
		}
	}
	return false
}
