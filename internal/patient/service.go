package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nutricare-server/internal/dietplan"
)

var (
	ErrNotFound   = errors.New("patient: not found")
	ErrValidation = errors.New("patient: invalid input")
	ErrNoPlan     = errors.New("patient: no current diet plan")
	// ErrRemote marks a failed or malformed remote generator call. The flow
	// that hit it reports once and leaves stored state untouched.
	ErrRemote = errors.New("patient: remote generator failure")
)

// FoodSuggestion is one generator-proposed food with its rationale.
type FoodSuggestion struct {
	Food   string `json:"food"`
	Reason string `json:"reason"`
}

// PlanGenerator is the slice of the remote generator the patient flows use.
// Defined here to decouple from the concrete client implementation.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, p Patient, a Anamnesis) (dietplan.DietPlan, error)
	AnalyzePlan(ctx context.Context, plan dietplan.DietPlan, a Anamnesis) (dietplan.Analysis, error)
	SuggestFoods(ctx context.Context, a Anamnesis) ([]FoodSuggestion, error)
}

type Service interface {
	List(ctx context.Context, query, filter string) ([]Patient, error)
	Get(ctx context.Context, id string) (*Patient, error)
	Create(ctx context.Context, p Patient) (*Patient, error)
	Update(ctx context.Context, p Patient) (*Patient, error)
	Delete(ctx context.Context, id string) error

	SavePlan(ctx context.Context, id string, plan dietplan.DietPlan) (*Patient, error)
	CreateBlankPlan(ctx context.Context, id string) (*Patient, error)
	GeneratePlan(ctx context.Context, id string) (*Patient, error)
	AnalyzePlan(ctx context.Context, id string) (*Patient, error)
	ApplyPlanEdit(ctx context.Context, id string, edit dietplan.Edit) (*Patient, error)
	SuggestFoods(ctx context.Context, id string) ([]FoodSuggestion, error)
}

type service struct {
	repo      Repository
	generator PlanGenerator
	now       func() time.Time
}

func NewService(repo Repository, generator PlanGenerator) Service {
	return &service{repo: repo, generator: generator, now: time.Now}
}

func (s *service) List(ctx context.Context, query, filter string) ([]Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if query != "" && !strings.Contains(strings.ToLower(p.FullName), query) {
			continue
		}
		if filter == "attention" && !p.NeedsAttention() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) Create(ctx context.Context, p Patient) (*Patient, error) {
	if strings.TrimSpace(p.FullName) == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.DOB != "" {
		p.Age = AgeAt(p.DOB, s.now())
	}
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	patients = append(patients, p)
	if err := s.repo.Replace(ctx, patients); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) Update(ctx context.Context, p Patient) (*Patient, error) {
	if strings.TrimSpace(p.FullName) == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	if p.DOB != "" {
		p.Age = AgeAt(p.DOB, s.now())
	}
	return s.replacePatient(ctx, p.ID, func(Patient) (Patient, error) {
		return p, nil
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := patients[:0]
	found := false
	for _, p := range patients {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Replace(ctx, kept)
}

// SavePlan replaces the patient's whole plan with a manually authored or
// edited one.
func (s *service) SavePlan(ctx context.Context, id string, plan dietplan.DietPlan) (*Patient, error) {
	if len(plan.Weeks) != len(dietplan.Weekdays) {
		return nil, fmt.Errorf("%w: plan must have exactly %d days", ErrValidation, len(dietplan.Weekdays))
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = s.now().UTC()
	}
	return s.replacePlan(ctx, id, plan)
}

func (s *service) CreateBlankPlan(ctx context.Context, id string) (*Patient, error) {
	return s.replacePlan(ctx, id, dietplan.NewBlankPlan())
}

// GeneratePlan asks the remote generator for a weekly plan. The response is
// untrusted: it is sanitized and normalized before it replaces the current
// plan, and any failure leaves the stored patient untouched.
func (s *service) GeneratePlan(ctx context.Context, id string) (*Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Anamnesis == nil {
		return nil, fmt.Errorf("%w: anamnesis is required before generating a plan", ErrValidation)
	}
	raw, err := s.generator.GeneratePlan(ctx, *p, *p.Anamnesis)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", id).Msg("diet plan generation failed")
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	plan := dietplan.NormalizeWeek(dietplan.Sanitize(raw))
	plan.ID = uuid.NewString()
	plan.CreatedAt = s.now().UTC()
	return s.replacePlan(ctx, id, plan)
}

// AnalyzePlan attaches a generator-estimated justification and daily-average
// macros to the current (possibly hand-authored) plan.
func (s *service) AnalyzePlan(ctx context.Context, id string) (*Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CurrentDietPlan == nil {
		return nil, ErrNoPlan
	}
	if p.Anamnesis == nil {
		return nil, fmt.Errorf("%w: anamnesis is required to analyze a plan", ErrValidation)
	}
	analysis, err := s.generator.AnalyzePlan(ctx, *p.CurrentDietPlan, *p.Anamnesis)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", id).Msg("diet plan analysis failed")
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	plan := *p.CurrentDietPlan
	plan.Explanation = analysis.Explanation
	macros := analysis.Macros
	plan.Macros = &macros
	return s.replacePlan(ctx, id, plan)
}

func (s *service) ApplyPlanEdit(ctx context.Context, id string, edit dietplan.Edit) (*Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CurrentDietPlan == nil {
		return nil, ErrNoPlan
	}
	plan, err := dietplan.Apply(*p.CurrentDietPlan, edit)
	if err != nil {
		return nil, err
	}
	return s.replacePlan(ctx, id, plan)
}

func (s *service) SuggestFoods(ctx context.Context, id string) ([]FoodSuggestion, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Anamnesis == nil {
		return nil, fmt.Errorf("%w: anamnesis is required for food suggestions", ErrValidation)
	}
	foods, err := s.generator.SuggestFoods(ctx, *p.Anamnesis)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", id).Msg("food suggestion failed")
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	return foods, nil
}

func (s *service) replacePlan(ctx context.Context, id string, plan dietplan.DietPlan) (*Patient, error) {
	return s.replacePatient(ctx, id, func(p Patient) (Patient, error) {
		p.CurrentDietPlan = &plan
		return p, nil
	})
}

func (s *service) replacePatient(ctx context.Context, id string, mutate func(Patient) (Patient, error)) (*Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID != id {
			continue
		}
		updated, err := mutate(patients[i])
		if err != nil {
			return nil, err
		}
		patients[i] = updated
		if err := s.repo.Replace(ctx, patients); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, ErrNotFound
}
