package appointment

import (
	"context"
	"errors"
	"testing"

	"nutricare-server/internal/patient"
	"nutricare-server/internal/store"
)

type stubRoster struct {
	patients []patient.Patient
}

func (r *stubRoster) List(_ context.Context) ([]patient.Patient, error) {
	return r.patients, nil
}

func newTestService() (Service, Repository) {
	repo := NewRepository(store.NewMemory())
	roster := &stubRoster{patients: []patient.Patient{{ID: "1", FullName: "Maria Silva"}}}
	return NewService(repo, roster), repo
}

func TestSaveRequiresDateAndTime(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Save(context.Background(), Appointment{Date: "2024-05-20"}, "", false)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestSaveConflictIsAdvisory(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seed := []Appointment{{ID: "a1", Date: "2024-05-20", Time: "14:00", Status: StatusScheduled}}
	if err := repo.Replace(ctx, seed); err != nil {
		t.Fatal(err)
	}

	candidate := Appointment{Date: "2024-05-20", Time: "14:00", PatientName: "Carlos"}
	_, err := svc.Save(ctx, candidate, "", false)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	// The refused save must not touch the collection.
	stored, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("collection mutated by refused save: %d entries", len(stored))
	}

	// Explicit confirmation books the slot anyway.
	saved, err := svc.Save(ctx, candidate, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Error("no id minted")
	}
	stored, _ = repo.List(ctx)
	if len(stored) != 2 {
		t.Errorf("confirmed save not persisted: %d entries", len(stored))
	}
}

func TestSaveEditOfSelfSkipsOwnSlot(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seed := []Appointment{{ID: "a1", Date: "2024-05-20", Time: "14:00"}}
	if err := repo.Replace(ctx, seed); err != nil {
		t.Fatal(err)
	}
	updated, err := svc.Save(ctx, Appointment{Date: "2024-05-20", Time: "14:00", Location: "Sala 2"}, "a1", false)
	if err != nil {
		t.Fatalf("self-edit reported conflict: %v", err)
	}
	if updated.ID != "a1" || updated.Location != "Sala 2" {
		t.Errorf("unexpected result: %+v", updated)
	}
}

func TestSaveResolvesRosterNameAndFreezesIt(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if err := repo.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}

	saved, err := svc.Save(ctx, Appointment{PatientID: "1", Date: "2024-06-01", Time: "10:00"}, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if saved.PatientName != "Maria Silva" {
		t.Errorf("name = %q, want resolved roster name", saved.PatientName)
	}

	// The stored name is a frozen snapshot, independent of later renames.
	stored, _ := repo.List(ctx)
	if stored[0].PatientName != "Maria Silva" {
		t.Errorf("stored name = %q", stored[0].PatientName)
	}
}

func TestSaveSynthesizesExternalPatient(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if err := repo.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}

	saved, err := svc.Save(ctx, Appointment{PatientName: "Convidado", Date: "2024-06-01", Time: "10:00"}, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if !IsExternalPatient(saved.PatientID) {
		t.Errorf("patientId = %q, want synthesized external id", saved.PatientID)
	}

	unnamed, err := svc.Save(ctx, Appointment{Date: "2024-06-02", Time: "10:00"}, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if unnamed.PatientName != "Sem Nome" {
		t.Errorf("name = %q, want fallback", unnamed.PatientName)
	}
}

func TestSaveDefaults(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if err := repo.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}
	saved, err := svc.Save(ctx, Appointment{Date: "2024-06-01", Time: "10:00"}, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Status != StatusScheduled || saved.Type != TypeOnline {
		t.Errorf("defaults not applied: %+v", saved)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seed := []Appointment{{ID: "a1", Date: "2024-05-20", Time: "14:00"}}
	if err := repo.Replace(ctx, seed); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "a1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEditUnknownAppointment(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if err := repo.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Save(ctx, Appointment{Date: "2024-06-01", Time: "10:00"}, "ghost", false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
