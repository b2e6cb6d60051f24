package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nutricare-server/internal/dietplan"
)

// PlanExporter renders a finalized plan into a printable document.
type PlanExporter interface {
	RenderPlan(p Patient, plan dietplan.DietPlan) ([]byte, error)
}

type Handler struct {
	svc      Service
	exporter PlanExporter
}

func NewHandler(svc Service, exporter PlanExporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.svc.List(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.svc.Create(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := h.svc.Update(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	var plan dietplan.DietPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	p, err := h.svc.SavePlan(r.Context(), chi.URLParam(r, "id"), plan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateBlankPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.CreateBlankPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GeneratePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) AnalyzePlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.AnalyzePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ApplyPlanEdit(w http.ResponseWriter, r *http.Request) {
	var edit dietplan.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	p, err := h.svc.ApplyPlanEdit(r.Context(), chi.URLParam(r, "id"), edit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) SuggestFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.svc.SuggestFoods(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *Handler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if p.CurrentDietPlan == nil {
		writeError(w, ErrNoPlan)
		return
	}
	doc, err := h.exporter.RenderPlan(*p, *p.CurrentDietPlan)
	if err != nil {
		http.Error(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="plano_%s.pdf"`, p.ID))
	w.Write(doc)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/patients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Get("/food-suggestions", h.SuggestFoods)
			r.Route("/diet-plan", func(r chi.Router) {
				r.Post("/", h.SavePlan)
				r.Post("/blank", h.CreateBlankPlan)
				r.Post("/generate", h.GeneratePlan)
				r.Post("/analyze", h.AnalyzePlan)
				r.Post("/edits", h.ApplyPlanEdit)
				r.Get("/export", h.ExportPlan)
			})
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, dietplan.ErrInvalidIndex), errors.Is(err, ErrNoPlan):
		status = http.StatusBadRequest
	case errors.Is(err, ErrRemote):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
