package appointment

// Type is the consultation modality.
type Type string

const (
	TypeOnline Type = "Online"
	TypeClinic Type = "Presencial (Consultório)"
	TypeHome   Type = "Presencial (Domicílio)"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Appointment is one agenda entry. PatientName is a denormalized snapshot
// frozen at save time; renaming a roster patient later never rewrites it.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"` // ISO calendar date, YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
	Type        Type   `json:"type"`
	Location    string `json:"location"`
	Status      Status `json:"status"`
	IsReturn    bool   `json:"isReturn,omitempty"`
}
