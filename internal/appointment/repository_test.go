package appointment

import (
	"context"
	"reflect"
	"testing"

	"nutricare-server/internal/store"
)

func TestRepositorySeedsWhenAbsent(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	appointments, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(appointments) != 1 || appointments[0].ID != "101" {
		t.Errorf("seed = %+v", appointments)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	ctx := context.Background()
	saved := []Appointment{
		{
			ID:          "a1",
			PatientID:   "1",
			PatientName: "Maria Silva",
			Date:        "2026-04-02",
			Time:        "09:30",
			Type:        TypeClinic,
			Location:    "Consultório Central",
			Status:      StatusScheduled,
			IsReturn:    true,
		},
		{
			ID:          "a2",
			PatientID:   "external-abc",
			PatientName: "João Pereira",
			Date:        "2026-04-02",
			Time:        "11:00",
			Type:        TypeOnline,
			Location:    "Meet",
			Status:      StatusCompleted,
		},
	}
	if err := repo.Replace(ctx, saved); err != nil {
		t.Fatal(err)
	}
	loaded, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}
