package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func patientKey(id string) string { return prefixPatients + id }

// AddPatient assigns an id and timestamps, persists the patient and returns
// the stored record. The input is not mutated.
func (s *Store) AddPatient(p *types.Patient) (*types.Patient, error) {
	now := timestamp()
	created := *p
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(patientKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithField("patient_id", created.ID).Info("patient created")
	return &created, nil
}

// GetPatients returns every patient in the collection
func (s *Store) GetPatients() ([]*types.Patient, error) {
	return listJSON[types.Patient](s, prefixPatients)
}

// GetPatientByID returns one patient or a not found error
func (s *Store) GetPatientByID(id string) (*types.Patient, error) {
	return getJSON[types.Patient](s, patientKey(id))
}

// GetPatientByCedula returns the first patient with the given cedula.
// Cedula uniqueness is not enforced, so duplicates resolve to the first in
// key order.
func (s *Store) GetPatientByCedula(cedula string) (*types.Patient, error) {
	patients, err := s.GetPatients()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}
	for _, p := range patients {
		if p.Cedula == cedula {
			return p, nil
		}
	}
	return nil, types.NewNotFoundError(types.ErrCodeNotFound, "patient not found")
}

// UpdatePatient shallow-merges the provided fields over the stored record,
// re-stamps updatedAt and persists. The id is never overwritten. Returns a
// not found error if the patient does not exist.
func (s *Store) UpdatePatient(id string, updates *types.PatientUpdates) (*types.Patient, error) {
	existing, err := s.GetPatientByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		existing.Name = *updates.Name
	}
	if updates.Cedula != nil {
		existing.Cedula = *updates.Cedula
	}
	if updates.Email != nil {
		existing.Email = *updates.Email
	}
	if updates.Phone != nil {
		existing.Phone = *updates.Phone
	}
	if updates.Address != nil {
		existing.Address = *updates.Address
	}
	if updates.BirthDate != nil {
		existing.BirthDate = *updates.BirthDate
	}
	if updates.Gender != nil {
		existing.Gender = *updates.Gender
	}
	if updates.BloodType != nil {
		existing.BloodType = *updates.BloodType
	}
	if updates.Allergies != nil {
		existing.Allergies = *updates.Allergies
	}
	if updates.ChronicDiseases != nil {
		existing.ChronicDiseases = *updates.ChronicDiseases
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(patientKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("patient_id", id).Info("patient updated")
	return existing, nil
}

// DeletePatient hard-deletes a patient and reports whether a row was removed.
// Records, appointments, certificates and exams referencing the patient are
// left in place; their patientId becomes a dangling weak reference.
func (s *Store) DeletePatient(id string) (bool, error) {
	existed, err := s.deleteKey(patientKey(id))
	if err != nil {
		return false, err
	}
	if existed {
		s.logger.WithField("patient_id", id).Info("patient deleted")
	}
	return existed, nil
}
