package patient

import (
	"time"

	"nutricare-server/internal/dietplan"
)

type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Feminino"
	GenderOther  Gender = "Outro"
)

// Status is one clinical-status tag. Tags are not mutually exclusive: a
// patient may be simultaneously Acamado and Inconsciente.
type Status string

const (
	StatusActive       Status = "Ativo"
	StatusInactive     Status = "Inativo"
	StatusBedridden    Status = "Acamado"
	StatusHospitalized Status = "Hospitalizado"
	StatusConscious    Status = "Consciente"
	StatusUnconscious  Status = "Inconsciente"
	StatusHomeCare     Status = "Home Care"
)

// attentionStatuses flag patients that surface on the dashboard attention
// card and the ?filter=attention listing.
var attentionStatuses = map[Status]bool{
	StatusBedridden:    true,
	StatusHospitalized: true,
	StatusHomeCare:     true,
}

type ContactInfo struct {
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	LivingArrangement string `json:"livingArrangement"`
}

type ResponsibleParty struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Contact  string `json:"contact"`
}

type InitialContact struct {
	Notes         string `json:"notes"`
	PricingAgreed string `json:"pricingAgreed"`
	PaymentMethod string `json:"paymentMethod"`
	NFCGenerated  bool   `json:"nfcGenerated"`
	Date          string `json:"date"`
}

// Anamnesis is the structured clinical/social intake snapshot of a patient.
type Anamnesis struct {
	Date             string  `json:"date"`
	Weight           float64 `json:"weight"`
	Height           float64 `json:"height"`
	BodyDistribution string  `json:"bodyDistribution"`
	// AgeAssessment is captured on intake forms but carries no derived
	// behavior anywhere; kept for data compatibility.
	AgeAssessment     string   `json:"ageAssessment"`
	ClinicalStatus    []Status `json:"clinicalStatus"`
	MobilityNotes     string   `json:"mobilityNotes"`
	FinancialStatus   string   `json:"financialStatus"`
	FoodRestrictions  []string `json:"foodRestrictions"`
	FoodPreferences   []string `json:"foodPreferences"`
	DietType          string   `json:"dietType"`
	Goals             []string `json:"goals"`
	LiquidRequirement float64  `json:"liquidRequirement"`
	MealsPerDay       int      `json:"mealsPerDay"`
	MealScheduleNotes string   `json:"mealScheduleNotes"`
}

// ToggleStatus adds s when absent and removes it when present, keeping
// ClinicalStatus a de-duplicated set.
func (a *Anamnesis) ToggleStatus(s Status) {
	for i, cur := range a.ClinicalStatus {
		if cur == s {
			a.ClinicalStatus = append(a.ClinicalStatus[:i:i], a.ClinicalStatus[i+1:]...)
			return
		}
	}
	a.ClinicalStatus = append(a.ClinicalStatus, s)
}

// Patient is the aggregate root. It owns its Anamnesis and current DietPlan
// exclusively; replacing the plan discards the previous one.
type Patient struct {
	ID              string             `json:"id"`
	FullName        string             `json:"fullName"`
	DOB             string             `json:"dob"`
	Age             int                `json:"age"`
	Gender          Gender             `json:"gender"`
	Contact         ContactInfo        `json:"contact"`
	Responsible     *ResponsibleParty  `json:"responsible,omitempty"`
	InitialContact  *InitialContact    `json:"initialContact,omitempty"`
	Anamnesis       *Anamnesis         `json:"anamnesis,omitempty"`
	CurrentDietPlan *dietplan.DietPlan `json:"currentDietPlan,omitempty"`
}

// NeedsAttention reports whether any clinical-status tag marks the patient
// for close follow-up.
func (p *Patient) NeedsAttention() bool {
	if p.Anamnesis == nil {
		return false
	}
	for _, s := range p.Anamnesis.ClinicalStatus {
		if attentionStatuses[s] {
			return true
		}
	}
	return false
}

// AgeAt derives whole completed years between an ISO date of birth and now.
// A birthday not yet reached this year does not count.
func AgeAt(dob string, now time.Time) int {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
