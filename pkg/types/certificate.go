package types

// CertificateType represents the kind of medical certificate issued
type CertificateType string

const (
	CertificateIncapacidad CertificateType = "incapacidad"
	CertificateConstancia  CertificateType = "constancia"
	CertificateReposo      CertificateType = "reposo"
	CertificateMedico      CertificateType = "certificado_medico"
)

// MedicalCertificate represents a certificate issued by a doctor for a patient
type MedicalCertificate struct {
	ID          string          `json:"id"`
	PatientID   string          `json:"patientId"`
	DoctorID    string          `json:"doctorId"`
	Type        CertificateType `json:"type"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate,omitempty"`
	Days        int             `json:"days,omitempty"`
	Diagnosis   string          `json:"diagnosis,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// MedicalCertificateUpdates represents a partial update to a certificate
type MedicalCertificateUpdates struct {
	Type        *CertificateType `json:"type,omitempty"`
	StartDate   *string          `json:"startDate,omitempty"`
	EndDate     *string          `json:"endDate,omitempty"`
	Days        *int             `json:"days,omitempty"`
	Diagnosis   *string          `json:"diagnosis,omitempty"`
	Description *string          `json:"description,omitempty"`
}
