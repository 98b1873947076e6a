package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func recordKey(id string) string { return prefixRecords + id }

// AddMedicalRecord assigns an id and timestamps, persists the record and
// returns the stored copy
func (s *Store) AddMedicalRecord(r *types.MedicalRecord) (*types.MedicalRecord, error) {
	now := timestamp()
	created := *r
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(recordKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"record_id":  created.ID,
		"patient_id": created.PatientID,
	}).Info("medical record created")
	return &created, nil
}

// GetMedicalRecords returns every medical record in the collection
func (s *Store) GetMedicalRecords() ([]*types.MedicalRecord, error) {
	return listJSON[types.MedicalRecord](s, prefixRecords)
}

// GetMedicalRecordByID returns one medical record or a not found error
func (s *Store) GetMedicalRecordByID(id string) (*types.MedicalRecord, error) {
	return getJSON[types.MedicalRecord](s, recordKey(id))
}

// GetMedicalRecordsByPatient returns all records for one patient
func (s *Store) GetMedicalRecordsByPatient(patientID string) ([]*types.MedicalRecord, error) {
	records, err := s.GetMedicalRecords()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.MedicalRecord
	for _, r := range records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, err
}

// GetMedicalRecordsByDoctor returns all records authored by one doctor
func (s *Store) GetMedicalRecordsByDoctor(doctorID string) ([]*types.MedicalRecord, error) {
	records, err := s.GetMedicalRecords()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.MedicalRecord
	for _, r := range records {
		if r.DoctorID == doctorID {
			out = append(out, r)
		}
	}
	return out, err
}

// UpdateMedicalRecord shallow-merges the provided fields and re-stamps
// updatedAt. Returns a not found error if the record does not exist.
func (s *Store) UpdateMedicalRecord(id string, updates *types.MedicalRecordUpdates) (*types.MedicalRecord, error) {
	existing, err := s.GetMedicalRecordByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Date != nil {
		existing.Date = *updates.Date
	}
	if updates.Reason != nil {
		existing.Reason = *updates.Reason
	}
	if updates.Symptoms != nil {
		existing.Symptoms = *updates.Symptoms
	}
	if updates.Diagnosis != nil {
		existing.Diagnosis = *updates.Diagnosis
	}
	if updates.Treatment != nil {
		existing.Treatment = *updates.Treatment
	}
	if updates.VitalSigns != nil {
		existing.VitalSigns = *updates.VitalSigns
	}
	if updates.Urgency != nil {
		existing.Urgency = *updates.Urgency
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(recordKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("record_id", id).Info("medical record updated")
	return existing, nil
}
