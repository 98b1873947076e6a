package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func examKey(id string) string { return prefixExams + id }

// AddLaboratoryExam assigns an id and timestamps, persists the exam and
// returns the stored copy
func (s *Store) AddLaboratoryExam(e *types.LaboratoryExam) (*types.LaboratoryExam, error) {
	now := timestamp()
	created := *e
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(examKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"exam_id":    created.ID,
		"patient_id": created.PatientID,
		"exam_type":  created.ExamType,
	}).Info("laboratory exam created")
	return &created, nil
}

// GetLaboratoryExams returns every laboratory exam in the collection
func (s *Store) GetLaboratoryExams() ([]*types.LaboratoryExam, error) {
	return listJSON[types.LaboratoryExam](s, prefixExams)
}

// GetLaboratoryExamByID returns one exam or a not found error
func (s *Store) GetLaboratoryExamByID(id string) (*types.LaboratoryExam, error) {
	return getJSON[types.LaboratoryExam](s, examKey(id))
}

// GetLaboratoryExamsByPatient returns all exams for one patient
func (s *Store) GetLaboratoryExamsByPatient(patientID string) ([]*types.LaboratoryExam, error) {
	exams, err := s.GetLaboratoryExams()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.LaboratoryExam
	for _, e := range exams {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, err
}

// GetLaboratoryExamsByDoctor returns all exams ordered by one doctor
func (s *Store) GetLaboratoryExamsByDoctor(doctorID string) ([]*types.LaboratoryExam, error) {
	exams, err := s.GetLaboratoryExams()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.LaboratoryExam
	for _, e := range exams {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	return out, err
}

// UpdateLaboratoryExam shallow-merges the provided fields and re-stamps
// updatedAt. Returns a not found error if the exam does not exist.
func (s *Store) UpdateLaboratoryExam(id string, updates *types.LaboratoryExamUpdates) (*types.LaboratoryExam, error) {
	existing, err := s.GetLaboratoryExamByID(id)
	if err != nil {
		return nil, err
	}

	if updates.ExamType != nil {
		existing.ExamType = *updates.ExamType
	}
	if updates.ExamName != nil {
		existing.ExamName = *updates.ExamName
	}
	if updates.Date != nil {
		existing.Date = *updates.Date
	}
	if updates.Results != nil {
		existing.Results = *updates.Results
	}
	if updates.FileData != nil {
		existing.FileData = *updates.FileData
	}
	if updates.FileName != nil {
		existing.FileName = *updates.FileName
	}
	if updates.FileType != nil {
		existing.FileType = *updates.FileType
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(examKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("exam_id", id).Info("laboratory exam updated")
	return existing, nil
}
