package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nutricare-server/internal/store"
)

type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	Replace(ctx context.Context, appointments []Appointment) error
}

type recordsRepo struct {
	records store.Records
}

func NewRepository(records store.Records) Repository {
	return &recordsRepo{records: records}
}

func (r *recordsRepo) List(ctx context.Context) ([]Appointment, error) {
	doc, ok, err := r.records.Load(ctx, store.Appointments)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Seed(), nil
	}
	var appointments []Appointment
	if err := json.Unmarshal(doc, &appointments); err != nil {
		return nil, fmt.Errorf("unmarshal appointments: %w", err)
	}
	return appointments, nil
}

func (r *recordsRepo) Replace(ctx context.Context, appointments []Appointment) error {
	doc, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("marshal appointments: %w", err)
	}
	return r.records.Save(ctx, store.Appointments, doc)
}

// Seed is the illustrative booking a fresh installation starts with.
func Seed() []Appointment {
	return []Appointment{
		{
			ID:          "101",
			PatientID:   "1",
			PatientName: "Maria Silva",
			Date:        time.Now().Format("2006-01-02"),
			Time:        "14:00",
			Type:        TypeOnline,
			Location:    "Meet",
			Status:      StatusScheduled,
		},
	}
}
