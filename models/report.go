package models

// ReportSubmission represents one citizen report as received from the intake
// endpoint. Either Complaint or Image (or both) must be present; after image
// processing the complaint text must be non-empty or the submission is
// rejected.
type ReportSubmission struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Complaint string  `json:"complaint"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Image     []byte  `json:"-"`
}

// Classification is the category + urgency decision for one complaint.
// Produced once per submission, never mutated afterward.
type Classification struct {
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
}

// ReportResponse is the caller-visible result of a successful intake.
// AIDescription is set only when the complaint text was derived from a
// submitted photo.
type ReportResponse struct {
	Status        string `json:"status"`
	ID            string `json:"id"`
	Department    string `json:"department"`
	Urgency       string `json:"urgency"`
	AIDescription string `json:"ai_description,omitempty"`
}
