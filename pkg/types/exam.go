package types

// LaboratoryExam represents a laboratory exam and its results.
// FileData carries an optional base64-encoded attachment (result PDF, image).
type LaboratoryExam struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	ExamType  string `json:"examType"`
	ExamName  string `json:"examName"`
	Date      string `json:"date"`
	Results   string `json:"results,omitempty"`
	FileData  string `json:"fileData,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	FileType  string `json:"fileType,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LaboratoryExamUpdates represents a partial update to a laboratory exam
type LaboratoryExamUpdates struct {
	ExamType *string `json:"examType,omitempty"`
	ExamName *string `json:"examName,omitempty"`
	Date     *string `json:"date,omitempty"`
	Results  *string `json:"results,omitempty"`
	FileData *string `json:"fileData,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	FileType *string `json:"fileType,omitempty"`
}
