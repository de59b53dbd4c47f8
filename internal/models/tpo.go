package models

// TPORecord is a training-and-placement-officer contact entry.
type TPORecord struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	College   string `json:"college"`
	Email     string `json:"email"` // unique across records
	ContactNo string `json:"contact_no"`
}
