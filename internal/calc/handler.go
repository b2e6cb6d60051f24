package calc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type bmiRequest struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

func (h *Handler) BMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	bmi, err := BMI(req.Height, req.Weight)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bmi":      bmi,
		"category": BMICategory(bmi),
	})
}

type energyRequest struct {
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Age      int     `json:"age"`
	Sex      string  `json:"sex"`
	Activity float64 `json:"activity"`
}

func (h *Handler) Energy(w http.ResponseWriter, r *http.Request) {
	var req energyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	bmr, err := BMR(req.Sex, req.Weight, req.Height, req.Age)
	if err != nil {
		writeError(w, err)
		return
	}
	tdee, err := TDEE(bmr, req.Activity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bmr":  bmr,
		"tdee": tdee,
	})
}

type anthroRequest struct {
	ArmCircumference float64 `json:"cb"`
	TricepsSkinfold  float64 `json:"dct"`
}

func (h *Handler) Anthropometry(w http.ResponseWriter, r *http.Request) {
	var req anthroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmb, err := CMB(req.ArmCircumference, req.TricepsSkinfold)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cmb":    cmb,
		"status": CMBStatus(cmb),
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculators", func(r chi.Router) {
		r.Post("/bmi", h.BMI)
		r.Post("/energy", h.Energy)
		r.Post("/anthropometry", h.Anthropometry)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrValidation) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
