package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func certificateKey(id string) string { return prefixCertificates + id }

// AddCertificate assigns an id and timestamps, persists the certificate and
// returns the stored copy
func (s *Store) AddCertificate(c *types.MedicalCertificate) (*types.MedicalCertificate, error) {
	now := timestamp()
	created := *c
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(certificateKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"certificate_id": created.ID,
		"patient_id":     created.PatientID,
		"type":           created.Type,
	}).Info("certificate created")
	return &created, nil
}

// GetCertificates returns every certificate in the collection
func (s *Store) GetCertificates() ([]*types.MedicalCertificate, error) {
	return listJSON[types.MedicalCertificate](s, prefixCertificates)
}

// GetCertificateByID returns one certificate or a not found error
func (s *Store) GetCertificateByID(id string) (*types.MedicalCertificate, error) {
	return getJSON[types.MedicalCertificate](s, certificateKey(id))
}

// GetCertificatesByPatient returns all certificates issued to one patient
func (s *Store) GetCertificatesByPatient(patientID string) ([]*types.MedicalCertificate, error) {
	certificates, err := s.GetCertificates()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.MedicalCertificate
	for _, c := range certificates {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, err
}

// GetCertificatesByDoctor returns all certificates issued by one doctor
func (s *Store) GetCertificatesByDoctor(doctorID string) ([]*types.MedicalCertificate, error) {
	certificates, err := s.GetCertificates()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.MedicalCertificate
	for _, c := range certificates {
		if c.DoctorID == doctorID {
			out = append(out, c)
		}
	}
	return out, err
}

// UpdateCertificate shallow-merges the provided fields and re-stamps
// updatedAt. Returns a not found error if the certificate does not exist.
func (s *Store) UpdateCertificate(id string, updates *types.MedicalCertificateUpdates) (*types.MedicalCertificate, error) {
	existing, err := s.GetCertificateByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Type != nil {
		existing.Type = *updates.Type
	}
	if updates.StartDate != nil {
		existing.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		existing.EndDate = *updates.EndDate
	}
	if updates.Days != nil {
		existing.Days = *updates.Days
	}
	if updates.Diagnosis != nil {
		existing.Diagnosis = *updates.Diagnosis
	}
	if updates.Description != nil {
		existing.Description = *updates.Description
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(certificateKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("certificate_id", id).Info("certificate updated")
	return existing, nil
}
