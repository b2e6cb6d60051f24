// Package dashboard aggregates practice-wide counters for the overview
// screen.
package dashboard

import (
	"context"
	"time"

	"nutricare-server/internal/appointment"
	"nutricare-server/internal/patient"
)

// Summary is the overview payload. StatusCounts breaks patients down by
// clinical-status tag; a patient carrying several tags is counted once per
// tag.
type Summary struct {
	TotalPatients         int            `json:"totalPatients"`
	TodaysAppointments    int            `json:"todaysAppointments"`
	CompletedAppointments int            `json:"completedAppointments"`
	AttentionCount        int            `json:"attentionCount"`
	StatusCounts          map[string]int `json:"statusCounts"`
}

// PatientLister is the slice of the patient service the dashboard reads.
type PatientLister interface {
	List(ctx context.Context, query, filter string) ([]patient.Patient, error)
}

// AppointmentLister is the slice of the agenda the dashboard reads.
type AppointmentLister interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
}

type Service struct {
	patients     PatientLister
	appointments AppointmentLister
	now          func() time.Time
}

func NewService(patients PatientLister, appointments AppointmentLister) *Service {
	return &Service{patients: patients, appointments: appointments, now: time.Now}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	patients, err := s.patients.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalPatients: len(patients),
		StatusCounts:  make(map[string]int),
	}

	for _, p := range patients {
		if p.NeedsAttention() {
			summary.AttentionCount++
		}
		if p.Anamnesis == nil {
			continue
		}
		for _, st := range p.Anamnesis.ClinicalStatus {
			summary.StatusCounts[string(st)]++
		}
	}

	today := s.now().Format("2006-01-02")
	for _, a := range appointments {
		if a.Date == today {
			summary.TodaysAppointments++
		}
		if a.Status == appointment.StatusCompleted {
			summary.CompletedAppointments++
		}
	}
	return summary, nil
}
