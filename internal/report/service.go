package report

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/signintech/gopdf"

	"nutricare-server/internal/dietplan"
	"nutricare-server/internal/patient"
)

// Page geometry in points (A4 is 595.28 x 841.89).
const (
	textWidth    = 500.0
	pageBreakAt  = 780.0
	headerMargin = 40.0
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// RenderPlan lays out the weekly diet plan as a printable PDF, one section
// per day with meals and their items, followed by the macro summary and the
// nutritionist notes.
func (s *Service) RenderPlan(p patient.Patient, plan dietplan.DietPlan) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// DejaVuSans covers the accented characters in Portuguese food names.
	// Try the common distro paths.
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		log.Error().Err(fontErr).Msg("no DejaVu font found for PDF export")
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	r := &renderer{pdf: &pdf}

	if err := r.setFont(20); err != nil {
		return nil, err
	}
	r.line("Plano Alimentar", 30)

	if err := r.setFont(12); err != nil {
		return nil, err
	}
	r.line(fmt.Sprintf("Paciente: %s", p.FullName), 15)
	r.line(fmt.Sprintf("Data: %s", plan.CreatedAt.Format("02/01/2006")), 25)

	for _, day := range plan.Weeks {
		if err := r.setFont(14); err != nil {
			return nil, err
		}
		r.line(day.DayOfWeek, 16)

		if err := r.setFont(11); err != nil {
			return nil, err
		}
		if len(day.Meals) == 0 {
			r.line("- Sem refeições cadastradas.", 14)
		}
		for _, meal := range day.Meals {
			r.line(fmt.Sprintf("%s (%s)", meal.Name, meal.Time), 13)
			for _, item := range meal.Items {
				entry := fmt.Sprintf("  - %s: %s %s", item.Food, item.Portion, item.Unit)
				if item.Calories != nil {
					entry = fmt.Sprintf("%s (%.0f kcal)", entry, *item.Calories)
				}
				r.wrapped(entry, 12)
			}
			r.space(4)
		}
		r.space(8)
	}

	if plan.Macros != nil {
		if err := r.setFont(14); err != nil {
			return nil, err
		}
		r.line("Resumo Nutricional (média diária)", 16)
		if err := r.setFont(11); err != nil {
			return nil, err
		}
		m := plan.Macros
		r.line(fmt.Sprintf("Calorias: %.0f kcal | Proteínas: %.0fg | Carboidratos: %.0fg | Gorduras: %.0fg",
			m.Calories, m.Protein, m.Carbs, m.Fats), 20)
	}

	if plan.Notes != "" {
		if err := r.setFont(14); err != nil {
			return nil, err
		}
		r.line("Observações", 16)
		if err := r.setFont(11); err != nil {
			return nil, err
		}
		r.wrapped(plan.Notes, 12)
	}

	if plan.Explanation != "" {
		r.space(8)
		if err := r.setFont(14); err != nil {
			return nil, err
		}
		r.line("Justificativa", 16)
		if err := r.setFont(11); err != nil {
			return nil, err
		}
		r.wrapped(plan.Explanation, 12)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// renderer wraps the cursor-style gopdf API with automatic page breaks.
type renderer struct {
	pdf *gopdf.GoPdf
}

func (r *renderer) setFont(size float64) error {
	return r.pdf.SetFont("DejaVu", "", size)
}

func (r *renderer) breakPage() {
	if r.pdf.GetY() > pageBreakAt {
		r.pdf.AddPage()
		r.pdf.SetY(headerMargin)
	}
}

func (r *renderer) line(text string, br float64) {
	r.breakPage()
	r.pdf.Cell(nil, text)
	r.pdf.Br(br)
}

func (r *renderer) wrapped(text string, br float64) {
	lines, err := r.pdf.SplitText(text, textWidth)
	if err != nil {
		lines = []string{text}
	}
	for _, l := range lines {
		r.line(l, br)
	}
}

func (r *renderer) space(h float64) {
	r.pdf.Br(h)
}
