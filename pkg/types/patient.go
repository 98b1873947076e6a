package types

// Patient represents a patient registered at the clinic.
//
// The cedula (national identity number) is informational only; uniqueness is
// not enforced across the collection.
type Patient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Cedula          string `json:"cedula"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	BirthDate       string `json:"birthDate,omitempty"`
	Gender          string `json:"gender,omitempty"`
	BloodType       string `json:"bloodType,omitempty"`
	Allergies       string `json:"allergies,omitempty"`
	ChronicDiseases string `json:"chronicDiseases,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// PatientUpdates represents a partial update to a patient. Nil fields are
// left unchanged; the record id can never be overwritten.
type PatientUpdates struct {
	Name            *string `json:"name,omitempty"`
	Cedula          *string `json:"cedula,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	BirthDate       *string `json:"birthDate,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	BloodType       *string `json:"bloodType,omitempty"`
	Allergies       *string `json:"allergies,omitempty"`
	ChronicDiseases *string `json:"chronicDiseases,omitempty"`
}
