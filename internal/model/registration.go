package model

// Registration is the persisted registration entry. It is created only by the
// submit pipeline, never mutated afterwards, and destroyed only by the admin
// clear-all operation. JSON tags match the stored layout, so changing them
// breaks previously persisted data (there is no versioning or migration path).
type Registration struct {
	ID          int64  `json:"id"` // epoch milliseconds at save time
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"` // canonical "+212 xxx xxx xxx"
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Major       string `json:"major"`
	Year        string `json:"year"`
	Notes       string `json:"notes"`
	Timestamp   string `json:"timestamp"` // RFC3339, derived from the same instant as ID
}

// FormData is the raw field mapping submitted by the registration form.
// Nothing here is trusted; validation happens in the pipeline.
type FormData struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Major       string `json:"major"`
	Year        string `json:"year"`
	Notes       string `json:"notes"`
}
