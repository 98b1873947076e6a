package types

// Urgency represents the urgency level of a consultation
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// VitalSigns holds the vital signs captured during a consultation
type VitalSigns struct {
	BloodPressure    string `json:"bloodPressure,omitempty"`
	HeartRate        string `json:"heartRate,omitempty"`
	Temperature      string `json:"temperature,omitempty"`
	Weight           string `json:"weight,omitempty"`
	Height           string `json:"height,omitempty"`
	OxygenSaturation string `json:"oxygenSaturation,omitempty"`
}

// MedicalRecord represents a clinical consultation entry for a patient.
//
// PatientID and DoctorID are weak references: they are looked up on read and
// may point at rows that no longer exist. Readers must tolerate dangling ids.
type MedicalRecord struct {
	ID         string     `json:"id"`
	PatientID  string     `json:"patientId"`
	DoctorID   string     `json:"doctorId"`
	Date       string     `json:"date"`
	Reason     string     `json:"reason"`
	Symptoms   string     `json:"symptoms,omitempty"`
	Diagnosis  string     `json:"diagnosis,omitempty"`
	Treatment  string     `json:"treatment,omitempty"`
	VitalSigns VitalSigns `json:"vitalSigns"`
	Urgency    Urgency    `json:"urgency,omitempty"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}

// MedicalRecordUpdates represents a partial update to a medical record
type MedicalRecordUpdates struct {
	Date       *string     `json:"date,omitempty"`
	Reason     *string     `json:"reason,omitempty"`
	Symptoms   *string     `json:"symptoms,omitempty"`
	Diagnosis  *string     `json:"diagnosis,omitempty"`
	Treatment  *string     `json:"treatment,omitempty"`
	VitalSigns *VitalSigns `json:"vitalSigns,omitempty"`
	Urgency    *Urgency    `json:"urgency,omitempty"`
}
