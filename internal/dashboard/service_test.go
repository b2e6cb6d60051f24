package dashboard

import (
	"context"
	"testing"
	"time"

	"nutricare-server/internal/appointment"
	"nutricare-server/internal/patient"
)

type stubPatients struct {
	patients []patient.Patient
}

func (s *stubPatients) List(_ context.Context, _, _ string) ([]patient.Patient, error) {
	return s.patients, nil
}

type stubAppointments struct {
	appointments []appointment.Appointment
}

func (s *stubAppointments) List(_ context.Context) ([]appointment.Appointment, error) {
	return s.appointments, nil
}

func TestSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	patients := []patient.Patient{
		{ID: "1", Anamnesis: &patient.Anamnesis{ClinicalStatus: []patient.Status{patient.StatusActive}}},
		{ID: "2", Anamnesis: &patient.Anamnesis{ClinicalStatus: []patient.Status{patient.StatusBedridden, patient.StatusHomeCare}}},
		{ID: "3"},
	}
	appointments := []appointment.Appointment{
		{ID: "a1", Date: "2026-03-10", Time: "09:00", Status: appointment.StatusScheduled},
		{ID: "a2", Date: "2026-03-10", Time: "14:00", Status: appointment.StatusCompleted},
		{ID: "a3", Date: "2026-03-11", Time: "10:00", Status: appointment.StatusCompleted},
	}

	svc := NewService(&stubPatients{patients: patients}, &stubAppointments{appointments: appointments})
	svc.now = func() time.Time { return now }

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalPatients != 3 {
		t.Errorf("TotalPatients = %d, want 3", got.TotalPatients)
	}
	if got.TodaysAppointments != 2 {
		t.Errorf("TodaysAppointments = %d, want 2", got.TodaysAppointments)
	}
	if got.CompletedAppointments != 2 {
		t.Errorf("CompletedAppointments = %d, want 2", got.CompletedAppointments)
	}
	if got.AttentionCount != 1 {
		t.Errorf("AttentionCount = %d, want 1", got.AttentionCount)
	}
	if got.StatusCounts["Acamado"] != 1 || got.StatusCounts["Home Care"] != 1 || got.StatusCounts["Ativo"] != 1 {
		t.Errorf("StatusCounts = %v", got.StatusCounts)
	}
}

func TestSummaryEmptyPractice(t *testing.T) {
	svc := NewService(&stubPatients{}, &stubAppointments{})
	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPatients != 0 || got.TodaysAppointments != 0 || got.AttentionCount != 0 {
		t.Errorf("summary = %+v, want zeros", got)
	}
	if got.StatusCounts == nil {
		t.Error("StatusCounts should be non-nil for JSON encoding")
	}
}
