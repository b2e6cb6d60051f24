package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"nutricare-server/internal/store"
)

// Repository reads and replaces the whole patient collection. Entities are
// never partially persisted: a save always writes the complete in-memory
// collection.
type Repository interface {
	List(ctx context.Context) ([]Patient, error)
	Replace(ctx context.Context, patients []Patient) error
}

type recordsRepo struct {
	records store.Records
}

func NewRepository(records store.Records) Repository {
	return &recordsRepo{records: records}
}

func (r *recordsRepo) List(ctx context.Context) ([]Patient, error) {
	doc, ok, err := r.records.Load(ctx, store.Patients)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Seed(), nil
	}
	var patients []Patient
	if err := json.Unmarshal(doc, &patients); err != nil {
		return nil, fmt.Errorf("unmarshal patients: %w", err)
	}
	return patients, nil
}

func (r *recordsRepo) Replace(ctx context.Context, patients []Patient) error {
	doc, err := json.Marshal(patients)
	if err != nil {
		return fmt.Errorf("marshal patients: %w", err)
	}
	return r.records.Save(ctx, store.Patients, doc)
}

// Seed is the illustrative record a fresh installation starts with.
func Seed() []Patient {
	return []Patient{
		{
			ID:       "1",
			FullName: "Maria Silva",
			DOB:      "1980-05-15",
			Age:      44,
			Gender:   GenderFemale,
			Contact: ContactInfo{
				Email:             "maria@email.com",
				Phone:             "1199999999",
				Address:           "Rua A, 123",
				City:              "São Paulo",
				LivingArrangement: "Marido e 2 filhos",
			},
			Anamnesis: &Anamnesis{
				Date:              "2024-05-20",
				Weight:            70,
				Height:            165,
				BodyDistribution:  "Ginoide",
				AgeAssessment:     "Compatível",
				ClinicalStatus:    []Status{StatusActive},
				MobilityNotes:     "Sem restrições",
				FinancialStatus:   "Média",
				FoodRestrictions:  []string{"Lactose"},
				FoodPreferences:   []string{"Frutas", "Peixe"},
				DietType:          "Natural",
				Goals:             []string{"Perda de peso", "Reeducação alimentar"},
				LiquidRequirement: 2500,
				MealsPerDay:       5,
			},
			InitialContact: &InitialContact{
				Date:          "2024-05-10",
				Notes:         "Paciente procura melhora na qualidade de vida.",
				PaymentMethod: "Pix",
				PricingAgreed: "R$ 300,00",
				NFCGenerated:  true,
			},
		},
	}
}
